package domain

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestIsValidMBID(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"e5e36093-6c18-4b40-9fc5-0f39b2a1bfd5", true},
		{"E5E36093-6C18-4B40-9FC5-0F39B2A1BFD5", true},
		{"e5e36093-6c18-4b40-9fc5-0f39b2a1bfd", false},
		{"e5e360936c184b409fc50f39b2a1bfd5", false},
		{"g5e36093-6c18-4b40-9fc5-0f39b2a1bfd5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidMBID(tt.value); got != tt.want {
			t.Fatalf("IsValidMBID(%q) = %t, want %t", tt.value, got, tt.want)
		}
	}
}

func TestDatasetValidate(t *testing.T) {
	valid := Dataset{
		ID:     "c6e7b1a0-1111-4222-8333-444455556666",
		Name:   "genres",
		Author: "user-1",
		Classes: []Class{
			{
				ID:          "01ARZ3NDEKTSV4RRFFQ69G5FAV",
				Name:        "rock",
				Description: strPtr("guitar heavy"),
				Recordings:  []string{"e5e36093-6c18-4b40-9fc5-0f39b2a1bfd5"},
			},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr error
	}{
		{"missing id", func(d *Dataset) { d.ID = "" }, ErrDatasetIDRequired},
		{"missing name", func(d *Dataset) { d.Name = "" }, ErrInvalidName},
		{"long name", func(d *Dataset) { d.Name = strings.Repeat("x", 101) }, ErrInvalidName},
		{"missing author", func(d *Dataset) { d.Author = "" }, ErrAuthorRequired},
		{"missing class id", func(d *Dataset) { d.Classes[0].ID = "" }, ErrClassIDRequired},
		{"bad class name", func(d *Dataset) { d.Classes[0].Name = "" }, ErrInvalidName},
		{"bad mbid", func(d *Dataset) { d.Classes[0].Recordings = []string{"nope"} }, ErrInvalidMBID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := valid
			ds.Classes = []Class{valid.Classes[0]}
			tt.mutate(&ds)
			if err := ds.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// Name length is measured in runes, matching the schema's maxLength. A
// 100-rune multibyte name is over 100 bytes but still valid.
func TestDatasetValidateCountsRunes(t *testing.T) {
	ds := Dataset{
		ID:     "c6e7b1a0-1111-4222-8333-444455556666",
		Name:   strings.Repeat("é", MaxNameLength),
		Author: "user-1",
		Classes: []Class{
			{
				ID:         "01ARZ3NDEKTSV4RRFFQ69G5FAV",
				Name:       strings.Repeat("ü", MaxNameLength),
				Recordings: []string{"e5e36093-6c18-4b40-9fc5-0f39b2a1bfd5"},
			},
		},
	}
	if err := ds.Validate(); err != nil {
		t.Fatalf("Validate rejected 100-rune names: %v", err)
	}

	ds.Name = strings.Repeat("é", MaxNameLength+1)
	if err := ds.Validate(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected %v for 101-rune dataset name, got %v", ErrInvalidName, err)
	}

	ds.Name = "moods"
	ds.Classes[0].Name = strings.Repeat("ü", MaxNameLength+1)
	if err := ds.Validate(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected %v for 101-rune class name, got %v", ErrInvalidName, err)
	}
}
