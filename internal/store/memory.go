package store

import (
	"context"
	"sort"
	"sync"

	"github.com/linford/necronet/internal/model"
)

var _ ArtifactStore = (*Memory)(nil)

// Memory is an in-process artifact store. It has no durability guarantee
// across restarts and exists so the service stays functional without a
// configured database. Safe for concurrent use by overlapping background
// runs and read endpoints.
type Memory struct {
	mu        sync.RWMutex
	artifacts map[string]model.Artifact
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{artifacts: make(map[string]model.Artifact)}
}

// Put inserts or replaces an artifact by id.
func (m *Memory) Put(_ context.Context, a model.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[a.ArtifactID] = a
	return nil
}

// Get returns the artifact with the given id, or ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (*model.Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artifacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

// Patch merges the set fields into the record. A missing record is a no-op,
// not an error.
func (m *Memory) Patch(_ context.Context, id string, p ArtifactPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artifacts[id]
	if !ok {
		return nil
	}
	p.Apply(&a)
	m.artifacts[id] = a
	return nil
}

// List returns artifacts ordered by created_at descending within the
// requested offset/limit window.
func (m *Memory) List(_ context.Context, limit, offset int) ([]model.Artifact, error) {
	m.mu.RLock()
	all := make([]model.Artifact, 0, len(m.artifacts))
	for _, a := range m.artifacts {
		all = append(all, a)
	}
	m.mu.RUnlock()

	// RFC3339 timestamps sort lexicographically.
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })

	if offset >= len(all) {
		return []model.Artifact{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
