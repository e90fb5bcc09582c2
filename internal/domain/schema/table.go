package schema

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/engine"
)

// slot holds one row position. Removing a row without renumbering
// leaves its slot in place with present=false.
type slot struct {
	row     data.Row
	present bool
}

// Table is an in-memory table: an ordered column list plus an ordered
// row store, with an optional strict check that every row carries
// exactly the table's columns.
type Table struct {
	mu       sync.RWMutex
	ID       uuid.UUID // instance identifier, used for tracing only
	name     string
	columns  []string
	slots    []slot
	live     int // number of present slots
	strict   bool
	logger   *slog.Logger
	notifier engine.Notifier
}

// Option configures a Table at construction
type Option func(*Table)

// WithLogger sets the logger used for table diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithStrictMode sets the initial strict mode (default true)
func WithStrictMode(strict bool) Option {
	return func(t *Table) {
		t.strict = strict
	}
}

// WithObserver registers an observer for mutation events
func WithObserver(observer engine.Observer) Option {
	return func(t *Table) {
		t.notifier.AddObserver(observer)
	}
}

// NewTable creates an empty table. name may be empty.
func NewTable(name string, opts ...Option) *Table {
	t := &Table{
		ID:     uuid.New(),
		name:   name,
		strict: true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TableName returns the table name
func (t *Table) TableName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

// SetTableName renames the table. Names are descriptive only.
func (t *Table) SetTableName(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}

// StrictMode reports whether rows are validated against the columns
func (t *Table) StrictMode() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.strict
}

// SetStrictMode turns row validation on or off for this table only.
// Rows already stored are not re-checked.
func (t *Table) SetStrictMode(strict bool) {
	t.mu.Lock()
	t.strict = strict
	t.mu.Unlock()
}

// AddObserver registers an observer for mutation events
func (t *Table) AddObserver(observer engine.Observer) {
	t.mu.Lock()
	t.notifier.AddObserver(observer)
	t.mu.Unlock()
}

// RemoveObserver unregisters an observer
func (t *Table) RemoveObserver(observer engine.Observer) {
	t.mu.Lock()
	t.notifier.RemoveObserver(observer)
	t.mu.Unlock()
}

// CloneSchema returns a new table with the same name and a copy of the
// column list, but no rows. The clone gets a fresh ID, the default strict
// mode and no observers; the logger is shared.
func (t *Table) CloneSchema() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clone := NewTable(t.name, WithLogger(t.logger))
	clone.columns = make([]string, len(t.columns))
	copy(clone.columns, t.columns)

	t.logger.Debug("table schema cloned",
		slog.String("table", t.name),
		slog.String("source_id", t.ID.String()),
		slog.String("clone_id", clone.ID.String()),
		slog.Int("columns", len(clone.columns)),
	)
	return clone
}

// Dispose clears the name, columns and rows. The table stays usable
// afterwards, as if freshly constructed; strict mode and observers are kept.
func (t *Table) Dispose() {
	t.mu.Lock()
	name := t.name
	t.name = ""
	t.columns = nil
	t.slots = nil
	t.live = 0
	t.mu.Unlock()

	t.logger.Debug("table disposed", slog.String("table", name), slog.String("table_id", t.ID.String()))
	t.notify(engine.EventTableDisposed, name, nil)
}

// notify must be called without holding the table lock, so observers may
// read the table.
func (t *Table) notify(eventType engine.EventType, name string, payload interface{}) {
	t.mu.RLock()
	observers := t.notifier.Observers()
	t.mu.RUnlock()

	engine.Dispatch(observers, engine.Event{
		Type:    eventType,
		TableID: t.ID,
		Table:   name,
		Data:    payload,
	})
}
