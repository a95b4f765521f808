package filesystem

import (
	"context"
	"fmt"
	"os"
)

// DocumentSource reads dataset documents and patch operations from disk for
// the CLI layer.
type DocumentSource struct{}

func (DocumentSource) ReadDocument(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
