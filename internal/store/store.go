package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-dresscode/pkg/model"
)

// ErrNotFound is returned when an id has no stored record.
var ErrNotFound = errors.New("store: not found")

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store holds the three persisted collections. A Store is safe for
// concurrent use.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger

	Templates    *Collection[model.Template]
	Environments *Collection[model.Environment]
	Profiles     *Collection[model.Profile]
}

// Option customises a Store.
type Option func(*Store)

// WithLogger attaches a logger for schema and import events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open creates or opens the SQLite database at path and applies migrations.
func Open(ctx context.Context, path string, options ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: database path is required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.logger.Debug("store opened", zap.String("path", path))

	s.Templates = newCollection(db, tableTemplates, s.logger,
		func(t model.Template) string { return t.ID },
		func(t *model.Template, id string) { t.ID = id },
	)
	s.Environments = newCollection(db, tableEnvironments, s.logger,
		func(e model.Environment) string { return e.ID },
		func(e *model.Environment, id string) { e.ID = id },
	)
	s.Profiles = newCollection(db, tableProfiles, s.logger,
		func(p model.Profile) string { return p.ID },
		func(p *model.Profile, id string) { p.ID = id },
	)
	return s, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Template returns the stored template with id.
func (s *Store) Template(ctx context.Context, id string) (model.Template, error) {
	return s.Templates.Get(ctx, id)
}

// Environment returns the stored environment with id.
func (s *Store) Environment(ctx context.Context, id string) (model.Environment, error) {
	return s.Environments.Get(ctx, id)
}

// Profile returns the stored profile with id.
func (s *Store) Profile(ctx context.Context, id string) (model.Profile, error) {
	return s.Profiles.Get(ctx, id)
}
