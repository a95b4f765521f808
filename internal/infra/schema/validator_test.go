package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/osvaldoandrade/datasetdb/internal/app/dataset"
)

const mbidA = "e5e36093-6c18-4b40-9fc5-0f39b2a1bfd5"
const mbidB = "1c8b3c17-09c1-4b33-be5c-0bddba6c47e1"

func TestValidateBase(t *testing.T) {
	validator := JSONSchemaValidator{}
	ctx := context.Background()

	tests := []struct {
		name     string
		document string
		wantErr  bool
	}{
		{
			name:     "minimal valid",
			document: `{"name":"genres","public":true,"classes":[]}`,
		},
		{
			name:     "class with recordings",
			document: `{"name":"genres","public":false,"classes":[{"name":"rock","recordings":["` + mbidA + `"]}]}`,
		},
		{
			name:     "null descriptions",
			document: `{"name":"genres","description":null,"public":true,"classes":[{"name":"rock","description":null,"recordings":[]}]}`,
		},
		{
			name:     "unknown fields tolerated",
			document: `{"name":"genres","public":true,"classes":[],"extra":1}`,
		},
		{
			name:     "missing name",
			document: `{"public":true,"classes":[]}`,
			wantErr:  true,
		},
		{
			name:     "empty name",
			document: `{"name":"","public":true,"classes":[]}`,
			wantErr:  true,
		},
		{
			name:     "name too long",
			document: `{"name":"` + strings.Repeat("x", 101) + `","public":true,"classes":[]}`,
			wantErr:  true,
		},
		{
			name:     "public not boolean",
			document: `{"name":"genres","public":"yes","classes":[]}`,
			wantErr:  true,
		},
		{
			name:     "missing classes",
			document: `{"name":"genres","public":true}`,
			wantErr:  true,
		},
		{
			name:     "class missing recordings",
			document: `{"name":"genres","public":true,"classes":[{"name":"rock"}]}`,
			wantErr:  true,
		},
		{
			name:     "malformed recording id",
			document: `{"name":"genres","public":true,"classes":[{"name":"rock","recordings":["not-a-uuid"]}]}`,
			wantErr:  true,
		},
		{
			name:     "document not an object",
			document: `[1,2,3]`,
			wantErr:  true,
		},
		{
			name:     "invalid json",
			document: `{`,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(ctx, []byte(tt.document), dataset.SchemaBase)
			if tt.wantErr {
				if !errors.Is(err, dataset.ErrInvalidDocument) {
					t.Fatalf("expected ErrInvalidDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
		})
	}
}

func TestValidateCompleteBoundary(t *testing.T) {
	validator := JSONSchemaValidator{}
	ctx := context.Background()

	oneClass := `{"name":"genres","public":true,"classes":[{"name":"rock","recordings":["` + mbidA + `","` + mbidB + `"]}]}`
	oneRecording := `{"name":"genres","public":true,"classes":[` +
		`{"name":"rock","recordings":["` + mbidA + `","` + mbidB + `"]},` +
		`{"name":"jazz","recordings":["` + mbidA + `"]}]}`
	full := `{"name":"genres","public":true,"classes":[` +
		`{"name":"rock","recordings":["` + mbidA + `","` + mbidB + `"]},` +
		`{"name":"jazz","recordings":["` + mbidB + `","` + mbidA + `"]}]}`

	for name, document := range map[string]string{"one class": oneClass, "one recording": oneRecording} {
		if err := validator.Validate(ctx, []byte(document), dataset.SchemaBase); err != nil {
			t.Fatalf("%s must pass base validation: %v", name, err)
		}
		if err := validator.Validate(ctx, []byte(document), dataset.SchemaComplete); !errors.Is(err, dataset.ErrInvalidDocument) {
			t.Fatalf("%s must fail complete validation, got %v", name, err)
		}
	}

	if err := validator.Validate(ctx, []byte(full), dataset.SchemaComplete); err != nil {
		t.Fatalf("two classes with two recordings each must pass complete validation: %v", err)
	}
}

func TestValidateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := JSONSchemaValidator{}.Validate(ctx, []byte(`{}`), dataset.SchemaBase)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
