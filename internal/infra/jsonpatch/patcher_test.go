package jsonpatch

import (
	"context"
	"testing"
)

func TestApplyPatch(t *testing.T) {
	doc := []byte(`{"name":"genres","public":true}`)
	patch := []byte(`[{"op":"replace","path":"/name","value":"genres v2"}]`)

	out, err := (Patcher{}).Apply(context.Background(), doc, patch)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if string(out) != `{"name":"genres v2","public":true}` {
		t.Fatalf("unexpected output: %s", string(out))
	}
}

func TestApplyRejectsMalformedOps(t *testing.T) {
	doc := []byte(`{"name":"genres"}`)
	if _, err := (Patcher{}).Apply(context.Background(), doc, []byte(`{"not":"a patch"}`)); err == nil {
		t.Fatalf("expected error for malformed ops")
	}
}
