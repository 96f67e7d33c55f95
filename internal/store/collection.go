package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collection is a keyed set of JSON records backed by one table. The whole
// table is read into memory on first use and kept in sync by every write.
type Collection[T any] struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
	idOf   func(T) string
	setID  func(*T, string)

	mu     sync.RWMutex
	items  []T
	loaded bool
}

func newCollection[T any](db *sql.DB, table string, logger *zap.Logger, idOf func(T) string, setID func(*T, string)) *Collection[T] {
	return &Collection[T]{db: db, table: table, logger: logger, idOf: idOf, setID: setID}
}

// Name returns the backing table name.
func (c *Collection[T]) Name() string {
	return c.table
}

// Load returns every record in insertion order. The table is read once.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

// Get returns the record stored under id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], nil
	}
	return zero, fmt.Errorf("%w: %s %q", ErrNotFound, c.table, id)
}

// Upsert stores item, generating an id when it has none, and returns the
// stored record. An existing entry is replaced in place.
func (c *Collection[T]) Upsert(ctx context.Context, item T) (T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return item, err
	}
	c.assignID(&item)
	if err := c.write(ctx, c.db, item); err != nil {
		return item, err
	}

	c.mu.Lock()
	c.put(item)
	c.mu.Unlock()
	return item, nil
}

// ImportMany upserts items in a single transaction. Either every record is
// stored or none is.
func (c *Collection[T]) ImportMany(ctx context.Context, items []T) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	stored := make([]T, len(items))
	copy(stored, items)
	for i := range stored {
		c.assignID(&stored[i])
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin import %s: %w", c.table, err)
	}
	for _, item := range stored {
		if err := c.write(ctx, tx, item); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit import %s: %w", c.table, err)
	}

	c.mu.Lock()
	for _, item := range stored {
		c.put(item)
	}
	c.mu.Unlock()
	c.logger.Info("imported records", zap.String("collection", c.table), zap.Int("count", len(stored)))
	return stored, nil
}

// Remove deletes the record stored under id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", c.table), id)
	if err != nil {
		return fmt.Errorf("store: delete from %s: %w", c.table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s %q", ErrNotFound, c.table, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (c *Collection[T]) write(ctx context.Context, db execer, item T) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("store: encode %s record: %w", c.table, err)
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (id, payload) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, c.table)
	if _, err := db.ExecContext(ctx, stmt, c.idOf(item), string(payload)); err != nil {
		return fmt.Errorf("store: write %s %q: %w", c.table, c.idOf(item), err)
	}
	return nil
}

func (c *Collection[T]) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf("SELECT id, payload FROM %s ORDER BY rowid", c.table))
	if err != nil {
		return fmt.Errorf("store: query %s: %w", c.table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return fmt.Errorf("store: scan %s: %w", c.table, err)
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return fmt.Errorf("store: decode %s %q: %w", c.table, id, err)
		}
		c.setID(&item, id)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: iterate %s: %w", c.table, err)
	}

	c.items = items
	c.loaded = true
	return nil
}

func (c *Collection[T]) assignID(item *T) {
	if c.idOf(*item) == "" {
		c.setID(item, uuid.NewString())
	}
}

// put replaces the cached entry with the same id or appends it. Callers hold
// the write lock.
func (c *Collection[T]) put(item T) {
	if i := c.indexOf(c.idOf(item)); i >= 0 {
		c.items[i] = item
		return
	}
	c.items = append(c.items, item)
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.idOf(item) == id {
			return i
		}
	}
	return -1
}
