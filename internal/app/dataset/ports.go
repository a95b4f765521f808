package dataset

import (
	"context"
	"time"

	"github.com/osvaldoandrade/datasetdb/internal/domain"
)

type SchemaVariant string

const (
	SchemaBase     SchemaVariant = "base"
	SchemaComplete SchemaVariant = "complete"
)

type Validator interface {
	Validate(ctx context.Context, document []byte, variant SchemaVariant) error
}

type Canonicalizer interface {
	Canonicalize(ctx context.Context, input []byte) ([]byte, error)
}

type Patcher interface {
	Apply(ctx context.Context, doc, patch []byte) ([]byte, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() (string, error)
}

type Store interface {
	Insert(ctx context.Context, ds domain.Dataset) error
	Replace(ctx context.Context, ds domain.Dataset) error
	Get(ctx context.Context, id string) (domain.Dataset, bool, error)
	ListByAuthor(ctx context.Context, author string, publicOnly bool) ([]domain.DatasetSummary, error)
	Delete(ctx context.Context, id string) error
}
