package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Engine owns the registry of live entities keyed by "<Kind>.<id>" and
// persists it as a whole through a Backend.
type Engine struct {
	backend Backend
	objects map[string]types.Entity
	logger  *slog.Logger

	// dirty is set when the registry gains or loses an entry and cleared by
	// a successful Save. Close flushes only when it is set.
	dirty bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger the engine reports saves and reloads to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an empty engine persisting through backend. Call Reload
// to populate it from the backend.
func NewEngine(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		objects: make(map[string]types.Entity),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open validates cfg, creates the data directory if needed, selects the
// backend, and reloads the registry from it.
func Open(cfg types.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(dataDir, cfg.FileName())
	var backend Backend
	switch cfg.Backend {
	case types.BackendSQLite:
		backend = NewSQLiteFile(path)
	default:
		backend = NewJSONFile(path)
	}

	e := NewEngine(backend, opts...)
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Backend returns the backend the engine persists through.
func (e *Engine) Backend() Backend { return e.backend }

// All returns the live registry. The map is not a copy: later calls to New,
// Delete, or Reload change what it holds.
func (e *Engine) All() map[string]types.Entity {
	return e.objects
}

// New registers ent under its composite key, replacing any entry with the
// same kind and id.
func (e *Engine) New(ent types.Entity) {
	e.objects[types.KeyOf(ent)] = ent
	e.dirty = true
}

// Create constructs a fresh entity of kind and registers it.
// Returns ErrUnknownKind if kind is not registered.
func (e *Engine) Create(kind string) (types.Entity, error) {
	ent, err := types.New(kind)
	if err != nil {
		return nil, err
	}
	e.New(ent)
	return ent, nil
}

// Get returns the entity registered under kind and id.
// Returns ErrNotFound if there is none.
func (e *Engine) Get(kind, id string) (types.Entity, error) {
	ent, ok := e.objects[types.Key(kind, id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, types.Key(kind, id))
	}
	return ent, nil
}

// Delete removes the entity registered under kind and id. The change
// reaches the backend on the next Save.
// Returns ErrNotFound if there is none.
func (e *Engine) Delete(kind, id string) error {
	key := types.Key(kind, id)
	if _, ok := e.objects[key]; !ok {
		return fmt.Errorf("%w: %s", types.ErrNotFound, key)
	}
	delete(e.objects, key)
	e.dirty = true
	return nil
}

// Select returns the entities of kind sorted by composite key. An empty kind
// selects every entity.
func (e *Engine) Select(kind string) []types.Entity {
	keys := make([]string, 0, len(e.objects))
	for key, ent := range e.objects {
		if kind == "" || ent.Kind() == kind {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	out := make([]types.Entity, len(keys))
	for i, key := range keys {
		out[i] = e.objects[key]
	}
	return out
}

// Count returns the number of entities of kind.
func (e *Engine) Count(kind string) int {
	n := 0
	for _, ent := range e.objects {
		if ent.Kind() == kind {
			n++
		}
	}
	return n
}

// Save writes every registered entity to the backend, replacing what was
// stored before. Errors are returned as is; nothing is retried.
func (e *Engine) Save() error {
	snap := make(Snapshot, len(e.objects))
	for key, ent := range e.objects {
		snap[key] = types.ToDict(ent)
	}
	if err := e.backend.Store(snap); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	e.dirty = false
	e.logger.Debug("saved registry", "backend", e.backend, "objects", len(snap))
	return nil
}

// Persist refreshes ent's UpdatedAt, makes sure it is registered, and saves
// the whole registry.
func (e *Engine) Persist(ent types.Entity) error {
	ent.Meta().Touch()
	e.New(ent)
	return e.Save()
}

// Reload registers every entity stored in the backend, rebuilding each one
// from its __class__ tag. When the backend holds nothing this is a no-op.
// A record with a missing or unknown tag aborts the reload with
// ErrUnknownKind; records registered before it stay registered.
func (e *Engine) Reload() error {
	snap, ok, err := e.backend.Load()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if !ok {
		e.logger.Debug("nothing to reload", "backend", e.backend)
		return nil
	}

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	wasDirty := e.dirty
	for _, key := range keys {
		rec := snap[key]
		kind, ok := rec[types.KeyKind].(string)
		if !ok {
			return fmt.Errorf("reload %s: %w: missing %s", key, types.ErrUnknownKind, types.KeyKind)
		}
		ent, err := types.FromDict(kind, rec)
		if err != nil {
			return fmt.Errorf("reload %s: %w", key, err)
		}
		e.New(ent)
	}
	e.dirty = wasDirty

	e.logger.Debug("reloaded registry", "backend", e.backend, "objects", len(snap))
	return nil
}

// Close flushes the registry if entries were added or removed since the
// last Save. It is the engine's exit hook; the engine stays usable.
func (e *Engine) Close() error {
	if !e.dirty {
		return nil
	}
	return e.Save()
}
