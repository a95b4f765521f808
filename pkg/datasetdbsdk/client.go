package datasetdbsdk

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	datasetapp "github.com/osvaldoandrade/datasetdb/internal/app/dataset"
	"github.com/osvaldoandrade/datasetdb/internal/domain"
	"github.com/osvaldoandrade/datasetdb/internal/infra/canonicaljson"
	"github.com/osvaldoandrade/datasetdb/internal/infra/ident"
	"github.com/osvaldoandrade/datasetdb/internal/infra/jsonpatch"
	"github.com/osvaldoandrade/datasetdb/internal/infra/schema"
	"github.com/osvaldoandrade/datasetdb/internal/infra/sqlitestore"
	"github.com/osvaldoandrade/datasetdb/internal/platform"
)

// Dataset is the full nested view returned by Get.
type Dataset struct {
	ID          string
	Name        string
	Description *string
	Public      bool
	Author      string
	Created     time.Time
	Classes     []Class
}

// Class holds a class's recordings. Class ids are reassigned on every
// update; do not persist them across calls.
type Class struct {
	ID          string
	Name        string
	Description *string
	Recordings  []string
}

// DatasetSummary is the listing view, without classes.
type DatasetSummary struct {
	ID          string
	Name        string
	Description *string
	Author      string
	Created     time.Time
}

// Client provides direct access to the dataset store and validator.
type Client struct {
	cfg Config

	mu      sync.Mutex
	store   *sqlitestore.Store
	service *datasetapp.Service
}

// Open creates a client and opens (or creates) the SQLite database.
func Open(ctx context.Context, cfg Config) (*Client, error) {
	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	store, err := sqlitestore.OpenWithOptions(normalized.DBPath, sqlitestore.OpenOptions{Fast: normalized.Fast})
	if err != nil {
		return nil, err
	}
	if err := store.DB().PingContext(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	service := datasetapp.NewService(
		store,
		schema.JSONSchemaValidator{},
		canonicaljson.Canonicalizer{},
		jsonpatch.Patcher{},
		platform.RealClock{},
		ident.NewUUIDGenerator(),
		ident.NewULIDGenerator(),
	)

	return &Client{cfg: normalized, store: store, service: service}, nil
}

// Close releases the SQLite database.
func (c *Client) Close() error {
	c.mu.Lock()
	store := c.store
	c.store = nil
	c.service = nil
	c.mu.Unlock()

	if store != nil {
		return store.Close()
	}
	return nil
}

// DB exposes the SQLite database handle for ad-hoc queries.
func (c *Client) DB() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil, ErrClosed
	}
	return c.store.DB(), nil
}

// Create validates the document and stores a new dataset. Returns its id.
func (c *Client) Create(ctx context.Context, document []byte, authorID string) (string, error) {
	service, err := c.serviceHandle()
	if err != nil {
		return "", err
	}
	return service.Create(ctx, document, authorID)
}

// Update replaces the dataset's fields and classes with the document's.
func (c *Client) Update(ctx context.Context, id string, document []byte, authorID string) error {
	service, err := c.serviceHandle()
	if err != nil {
		return err
	}
	return mapNotFound(service.Update(ctx, id, document, authorID))
}

// Patch applies RFC 6902 operations to the dataset's document form.
func (c *Client) Patch(ctx context.Context, id string, ops []byte) error {
	service, err := c.serviceHandle()
	if err != nil {
		return err
	}
	return mapNotFound(service.Patch(ctx, id, ops))
}

// Get returns the dataset with its classes and recordings.
func (c *Client) Get(ctx context.Context, id string) (Dataset, error) {
	service, err := c.serviceHandle()
	if err != nil {
		return Dataset{}, err
	}
	ds, err := service.Get(ctx, id)
	if err != nil {
		return Dataset{}, mapNotFound(err)
	}

	out := Dataset{
		ID:          ds.ID,
		Name:        ds.Name,
		Description: ds.Description,
		Public:      ds.Public,
		Author:      ds.Author,
		Created:     ds.Created,
		Classes:     make([]Class, 0, len(ds.Classes)),
	}
	for _, cls := range ds.Classes {
		out.Classes = append(out.Classes, Class{
			ID:          cls.ID,
			Name:        cls.Name,
			Description: cls.Description,
			Recordings:  cls.Recordings,
		})
	}
	return out, nil
}

// List returns summaries of datasets owned by the author.
func (c *Client) List(ctx context.Context, authorID string, publicOnly bool) ([]DatasetSummary, error) {
	service, err := c.serviceHandle()
	if err != nil {
		return nil, err
	}
	summaries, err := service.ListByAuthor(ctx, authorID, publicOnly)
	if err != nil {
		return nil, err
	}
	out := make([]DatasetSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, DatasetSummary{
			ID:          summary.ID,
			Name:        summary.Name,
			Description: summary.Description,
			Author:      summary.Author,
			Created:     summary.Created,
		})
	}
	return out, nil
}

// Delete removes the dataset and its classes. Idempotent.
func (c *Client) Delete(ctx context.Context, id string) error {
	service, err := c.serviceHandle()
	if err != nil {
		return err
	}
	return service.Delete(ctx, id)
}

// Check validates a document against the base schema, or the complete
// variant when complete is set, without storing anything.
func (c *Client) Check(ctx context.Context, document []byte, complete bool) error {
	service, err := c.serviceHandle()
	if err != nil {
		return err
	}
	return service.Check(ctx, document, complete)
}

func (c *Client) serviceHandle() (*datasetapp.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.service == nil {
		return nil, ErrClosed
	}
	return c.service, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, domain.ErrDatasetNotFound) {
		return ErrNotFound
	}
	return err
}
