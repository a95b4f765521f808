package canonicaljson

import (
	"context"
	"testing"
)

func TestCanonicalizeSortsKeys(t *testing.T) {
	input := []byte(`{"public":true,"name":"genres","classes":[]}`)
	out, err := (Canonicalizer{}).Canonicalize(context.Background(), input)
	if err != nil {
		t.Fatalf("Canonicalize returned error: %v", err)
	}

	expected := `{"classes":[],"name":"genres","public":true}`
	if string(out) != expected {
		t.Fatalf("expected %s, got %s", expected, string(out))
	}
}

func TestCanonicalizeRejectsInvalidJSON(t *testing.T) {
	if _, err := (Canonicalizer{}).Canonicalize(context.Background(), []byte(`{"name":`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
