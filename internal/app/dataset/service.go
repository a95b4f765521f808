package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osvaldoandrade/datasetdb/internal/domain"
)

type Service struct {
	store         Store
	validator     Validator
	canonicalizer Canonicalizer
	patcher       Patcher
	clock         Clock
	datasetIDs    IDGenerator
	classIDs      IDGenerator
}

func NewService(store Store, validator Validator, canonicalizer Canonicalizer, patcher Patcher, clock Clock, datasetIDs, classIDs IDGenerator) *Service {
	return &Service{
		store:         store,
		validator:     validator,
		canonicalizer: canonicalizer,
		patcher:       patcher,
		clock:         clock,
		datasetIDs:    datasetIDs,
		classIDs:      classIDs,
	}
}

// Create validates the document against the base schema and inserts the
// dataset, its classes and their members in a single transaction. Returns
// the generated dataset id.
func (s *Service) Create(ctx context.Context, document []byte, authorID string) (string, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return "", ErrAuthorRequired
	}

	doc, err := s.decodeDocument(ctx, document)
	if err != nil {
		return "", err
	}

	datasetID, err := s.datasetIDs.NewID()
	if err != nil {
		return "", err
	}

	ds, err := s.assemble(doc, datasetID, authorID)
	if err != nil {
		return "", err
	}
	ds.Created = s.clock.Now().UTC()

	if err := s.store.Insert(ctx, ds); err != nil {
		return "", err
	}
	return datasetID, nil
}

// Update replaces the dataset's fields and its entire class set with the
// document's contents. The dataset id and created timestamp are preserved.
// Class ids are reassigned; callers must not hold on to them across updates.
func (s *Service) Update(ctx context.Context, id string, document []byte, authorID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrDatasetIDRequired
	}
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return ErrAuthorRequired
	}

	doc, err := s.decodeDocument(ctx, document)
	if err != nil {
		return err
	}

	ds, err := s.assemble(doc, id, authorID)
	if err != nil {
		return err
	}
	return s.store.Replace(ctx, ds)
}

// Patch loads the dataset, applies an RFC 6902 patch to its document form,
// re-validates the result and runs the usual update protocol. The author is
// left unchanged.
func (s *Service) Patch(ctx context.Context, id string, ops []byte) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrDatasetIDRequired
	}
	if len(ops) == 0 {
		return ErrPatchRequired
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	currentDoc, err := json.Marshal(DocumentFromDataset(current))
	if err != nil {
		return fmt.Errorf("encode current document: %w", err)
	}

	canonicalOps, err := s.canonicalizer.Canonicalize(ctx, ops)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	patched, err := s.patcher.Apply(ctx, currentDoc, canonicalOps)
	if err != nil {
		return err
	}

	doc, err := s.decodeDocument(ctx, patched)
	if err != nil {
		return err
	}

	ds, err := s.assemble(doc, id, current.Author)
	if err != nil {
		return err
	}
	return s.store.Replace(ctx, ds)
}

// Get fetches the dataset and reconstructs the full nested structure. Class
// and recording order is storage-defined.
func (s *Service) Get(ctx context.Context, id string) (domain.Dataset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Dataset{}, ErrDatasetIDRequired
	}

	ds, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Dataset{}, err
	}
	if !ok {
		return domain.Dataset{}, domain.ErrDatasetNotFound
	}
	return ds, nil
}

// ListByAuthor returns summaries of datasets owned by the author. When
// publicOnly is set, private datasets are excluded.
func (s *Service) ListByAuthor(ctx context.Context, authorID string, publicOnly bool) ([]domain.DatasetSummary, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, ErrAuthorRequired
	}
	return s.store.ListByAuthor(ctx, authorID, publicOnly)
}

// Delete removes the dataset; classes and members go with it. Deleting a
// nonexistent id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrDatasetIDRequired
	}
	return s.store.Delete(ctx, id)
}

// Check validates a document without touching the store. With complete set,
// the stricter schema variant is used (at least two classes with at least
// two recordings each).
func (s *Service) Check(ctx context.Context, document []byte, complete bool) error {
	if len(document) == 0 {
		return ErrDocumentRequired
	}
	variant := SchemaBase
	if complete {
		variant = SchemaComplete
	}
	canonical, err := s.canonicalizer.Canonicalize(ctx, document)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return s.validator.Validate(ctx, canonical, variant)
}

func (s *Service) decodeDocument(ctx context.Context, document []byte) (Document, error) {
	if len(document) == 0 {
		return Document{}, ErrDocumentRequired
	}

	canonical, err := s.canonicalizer.Canonicalize(ctx, document)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := s.validator.Validate(ctx, canonical, SchemaBase); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(canonical, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func (s *Service) assemble(doc Document, id, author string) (domain.Dataset, error) {
	ds := domain.Dataset{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		Public:      doc.Public,
		Author:      author,
		Classes:     make([]domain.Class, 0, len(doc.Classes)),
	}
	for _, cls := range doc.Classes {
		classID, err := s.classIDs.NewID()
		if err != nil {
			return domain.Dataset{}, err
		}
		ds.Classes = append(ds.Classes, domain.Class{
			ID:          classID,
			Name:        cls.Name,
			Description: cls.Description,
			Recordings:  cls.Recordings,
		})
	}
	return ds, nil
}
