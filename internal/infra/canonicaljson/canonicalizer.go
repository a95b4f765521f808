// Package canonicaljson rewrites dataset documents and patch operations into
// RFC 8785 canonical form, so key order, whitespace and duplicate members in
// caller input never affect validation or what gets stored.
package canonicaljson

import (
	"context"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// Canonicalizer is the normalization step the dataset service runs on every
// document and patch before schema validation and decoding.
type Canonicalizer struct{}

func (Canonicalizer) Canonicalize(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value := jsontext.Value(append([]byte(nil), input...))
	if err := value.Canonicalize(); err != nil {
		return nil, fmt.Errorf("canonicalize json: %w", err)
	}

	return []byte(value), nil
}
