package store

import (
	"context"
	"errors"

	"github.com/linford/necronet/internal/model"
)

// ErrNotFound is returned by Get when no artifact exists for the given id.
var ErrNotFound = errors.New("artifact not found")

// ArtifactPatch holds a partial update of an artifact record. Nil fields are
// left untouched.
type ArtifactPatch struct {
	Status            *string
	GhostNarrationURL *string
	ErrorMessage      *string
}

// Fields returns the set fields as a column→value map, keyed by the wire
// (and database) column names.
func (p ArtifactPatch) Fields() map[string]any {
	m := make(map[string]any, 3)
	if p.Status != nil {
		m["status"] = *p.Status
	}
	if p.GhostNarrationURL != nil {
		m["ghost_narration_url"] = *p.GhostNarrationURL
	}
	if p.ErrorMessage != nil {
		m["error_message"] = *p.ErrorMessage
	}
	return m
}

// Apply merges the patch into an artifact in place.
func (p ArtifactPatch) Apply(a *model.Artifact) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.GhostNarrationURL != nil {
		v := *p.GhostNarrationURL
		a.GhostNarrationURL = &v
	}
	if p.ErrorMessage != nil {
		v := *p.ErrorMessage
		a.ErrorMessage = &v
	}
}

// ArtifactStore provides access to artifact persistence.
type ArtifactStore interface {
	// Put inserts or replaces an artifact by its id.
	Put(ctx context.Context, a model.Artifact) error
	// Get returns the artifact with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Artifact, error)
	// Patch merges the set fields into an existing record.
	Patch(ctx context.Context, id string, p ArtifactPatch) error
	// List returns artifacts ordered by created_at descending, paginated by
	// offset/limit.
	List(ctx context.Context, limit, offset int) ([]model.Artifact, error)
}
