package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/osvaldoandrade/datasetdb/internal/domain"
)

type Store struct {
	db *sql.DB
}

type OpenOptions struct {
	Fast bool
}

func Open(path string) (*Store, error) {
	return OpenWithOptions(path, OpenOptions{})
}

func OpenWithOptions(path string, opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}

	if shouldCreateDir(path) {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.applyPragmas(context.Background(), opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying database handle for ad-hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Insert writes the dataset, its classes and their members in one
// transaction. Nothing persists unless every insert succeeds.
func (s *Store) Insert(ctx context.Context, ds domain.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO dataset (id, name, description, public, author, created)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ds.ID, ds.Name, ds.Description, boolToInt(ds.Public), ds.Author, ds.Created.UnixNano()); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	if err := insertClasses(ctx, tx, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// Replace updates the dataset row in place and swaps its entire class set
// for the given one, all in one transaction. Member rows of the old classes
// are removed by the delete cascade. The created timestamp is untouched.
// Returns domain.ErrDatasetNotFound when the id matches no dataset.
func (s *Store) Replace(ctx context.Context, ds domain.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE dataset SET name = ?, description = ?, public = ?, author = ?
		WHERE id = ?
	`, ds.Name, ds.Description, boolToInt(ds.Public), ds.Author, ds.ID)
	if err != nil {
		return fmt.Errorf("update dataset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update dataset: %w", err)
	}
	if affected == 0 {
		return domain.ErrDatasetNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM dataset_class WHERE dataset = ?", ds.ID); err != nil {
		return fmt.Errorf("delete classes: %w", err)
	}

	if err := insertClasses(ctx, tx, ds); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Get reads the dataset row and reconstructs the nested class and member
// collections. The second return value reports whether the dataset exists.
func (s *Store) Get(ctx context.Context, id string) (domain.Dataset, bool, error) {
	var ds domain.Dataset
	var description sql.NullString
	var public int
	var created int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, public, author, created
		FROM dataset WHERE id = ?
	`, id).Scan(&ds.ID, &ds.Name, &description, &public, &ds.Author, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Dataset{}, false, nil
		}
		return domain.Dataset{}, false, fmt.Errorf("read dataset: %w", err)
	}
	ds.Description = nullableString(description)
	ds.Public = public != 0
	ds.Created = time.Unix(0, created).UTC()

	classes, err := s.readClasses(ctx, ds.ID)
	if err != nil {
		return domain.Dataset{}, false, err
	}
	ds.Classes = classes
	return ds, true, nil
}

// ListByAuthor returns summaries of datasets owned by the author, optionally
// restricted to public ones. Classes are not loaded.
func (s *Store) ListByAuthor(ctx context.Context, author string, publicOnly bool) ([]domain.DatasetSummary, error) {
	query := `
		SELECT id, name, description, author, created
		FROM dataset WHERE author = ?
	`
	if publicOnly {
		query += " AND public = 1"
	}
	rows, err := s.db.QueryContext(ctx, query, author)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var summaries []domain.DatasetSummary
	for rows.Next() {
		var summary domain.DatasetSummary
		var description sql.NullString
		var created int64
		if err := rows.Scan(&summary.ID, &summary.Name, &description, &summary.Author, &created); err != nil {
			return nil, fmt.Errorf("scan dataset summary: %w", err)
		}
		summary.Description = nullableString(description)
		summary.Created = time.Unix(0, created).UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dataset summaries: %w", err)
	}
	return summaries, nil
}

// Delete removes the dataset row; classes and members go with it via the
// delete cascade. Deleting a nonexistent id affects zero rows and is not an
// error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM dataset WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

func (s *Store) readClasses(ctx context.Context, datasetID string) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM dataset_class WHERE dataset = ?
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("read classes: %w", err)
	}
	var classes []domain.Class
	for rows.Next() {
		var cls domain.Class
		var description sql.NullString
		if err := rows.Scan(&cls.ID, &cls.Name, &description); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan class: %w", err)
		}
		cls.Description = nullableString(description)
		classes = append(classes, cls)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close class rows: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class rows: %w", err)
	}

	for i := range classes {
		recordings, err := s.readRecordings(ctx, classes[i].ID)
		if err != nil {
			return nil, err
		}
		classes[i].Recordings = recordings
	}
	return classes, nil
}

func (s *Store) readRecordings(ctx context.Context, classID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT mbid FROM dataset_class_member WHERE class = ?", classID)
	if err != nil {
		return nil, fmt.Errorf("read class members: %w", err)
	}
	defer rows.Close()

	recordings := []string{}
	for rows.Next() {
		var mbid string
		if err := rows.Scan(&mbid); err != nil {
			return nil, fmt.Errorf("scan class member: %w", err)
		}
		recordings = append(recordings, mbid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class members: %w", err)
	}
	return recordings, nil
}

func insertClasses(ctx context.Context, tx *sql.Tx, ds domain.Dataset) error {
	for _, cls := range ds.Classes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dataset_class (id, name, description, dataset)
			VALUES (?, ?, ?, ?)
		`, cls.ID, cls.Name, cls.Description, ds.ID); err != nil {
			return fmt.Errorf("insert class %s: %w", cls.Name, err)
		}
		for _, mbid := range cls.Recordings {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO dataset_class_member (class, mbid) VALUES (?, ?)
			`, cls.ID, mbid); err != nil {
				return fmt.Errorf("insert class member: %w", err)
			}
		}
	}
	return nil
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dataset (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			public INTEGER NOT NULL CHECK (public IN (0, 1)),
			author TEXT NOT NULL,
			created INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create dataset table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_class (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			dataset TEXT NOT NULL REFERENCES dataset (id) ON DELETE CASCADE
		)
	`); err != nil {
		return fmt.Errorf("create class table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_class_member (
			class TEXT NOT NULL REFERENCES dataset_class (id) ON DELETE CASCADE,
			mbid TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create class member table: %w", err)
	}
	for _, stmt := range []string{
		"CREATE INDEX IF NOT EXISTS dataset_author_idx ON dataset (author)",
		"CREATE INDEX IF NOT EXISTS dataset_class_dataset_idx ON dataset_class (dataset)",
		"CREATE INDEX IF NOT EXISTS dataset_class_member_class_idx ON dataset_class_member (class)",
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

func (s *Store) applyPragmas(ctx context.Context, opts OpenOptions) error {
	if !opts.Fast {
		return nil
	}
	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		return fmt.Errorf("set journal_mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA synchronous = NORMAL"); err != nil {
		return fmt.Errorf("set synchronous: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA temp_store = MEMORY"); err != nil {
		return fmt.Errorf("set temp_store: %w", err)
	}
	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func shouldCreateDir(path string) bool {
	if path == ":memory:" {
		return false
	}
	if strings.HasPrefix(path, "file:") {
		return false
	}
	return true
}
