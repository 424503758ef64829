// Package registry is the append-only store for generated statements,
// consolidations, and subsidiaries. Entries are created exactly once and
// never mutated; there is no update or delete.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/finrep-dev/finrep/internal/model"
)

// ErrNotFound is returned when a registry key does not exist.
var ErrNotFound = errors.New("not found")

// Registry holds three independent keyed maps. Safe for concurrent use:
// the only hazard is an insert racing a lookup on the same key.
type Registry struct {
	mu             sync.RWMutex
	reports        map[string]model.Statement
	consolidations map[string]model.Consolidation
	subsidiaries   map[string]model.Subsidiary
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		reports:        make(map[string]model.Statement),
		consolidations: make(map[string]model.Consolidation),
		subsidiaries:   make(map[string]model.Subsidiary),
	}
}

// PutReport inserts a statement under its ID.
func (r *Registry) PutReport(s model.Statement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[s.ID] = s
}

// Report returns a stored statement, or ErrNotFound.
func (r *Registry) Report(id string) (model.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.reports[id]
	if !ok {
		return model.Statement{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return s, nil
}

// PutConsolidation inserts a consolidation under its ID.
func (r *Registry) PutConsolidation(c model.Consolidation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consolidations[c.ID] = c
}

// Consolidation returns a stored consolidation, or ErrNotFound.
func (r *Registry) Consolidation(id string) (model.Consolidation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.consolidations[id]
	if !ok {
		return model.Consolidation{}, fmt.Errorf("consolidation %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// PutSubsidiary inserts a subsidiary under its ID.
func (r *Registry) PutSubsidiary(s model.Subsidiary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subsidiaries[s.ID] = s
}

// Subsidiary returns a stored subsidiary, or ErrNotFound.
func (r *Registry) Subsidiary(id string) (model.Subsidiary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subsidiaries[id]
	if !ok {
		return model.Subsidiary{}, fmt.Errorf("subsidiary %s: %w", id, ErrNotFound)
	}
	return s, nil
}

// Subsidiaries returns all registered subsidiaries in unspecified order.
func (r *Registry) Subsidiaries() []model.Subsidiary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]model.Subsidiary, 0, len(r.subsidiaries))
	for _, s := range r.subsidiaries {
		subs = append(subs, s)
	}
	return subs
}
