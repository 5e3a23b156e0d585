package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/linford/necronet/internal/model"
)

var _ ArtifactStore = (*Fallback)(nil)

// Fallback wraps an optional primary store with an in-memory fallback.
// Every operation tries the primary first; on any error (including a primary
// that was never configured) it logs and serves from the fallback instead.
// Get also falls through when the primary reports not-found, so records
// written during a primary outage stay readable.
type Fallback struct {
	primary  ArtifactStore // nil when no database is configured
	fallback *Memory
}

// NewFallback creates a store with the given primary (may be nil) backed by
// the in-memory fallback.
func NewFallback(primary ArtifactStore, fallback *Memory) *Fallback {
	if fallback == nil {
		fallback = NewMemory()
	}
	return &Fallback{primary: primary, fallback: fallback}
}

// Primary reports whether a primary store is configured.
func (f *Fallback) Primary() bool { return f.primary != nil }

func (f *Fallback) Put(ctx context.Context, a model.Artifact) error {
	if f.primary != nil {
		err := f.primary.Put(ctx, a)
		if err == nil {
			return nil
		}
		slog.Error("primary store put failed, using fallback", "artifact_id", a.ArtifactID, "error", err)
	}
	return f.fallback.Put(ctx, a)
}

func (f *Fallback) Get(ctx context.Context, id string) (*model.Artifact, error) {
	if f.primary != nil {
		a, err := f.primary.Get(ctx, id)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrNotFound) {
			slog.Error("primary store get failed, using fallback", "artifact_id", id, "error", err)
		}
	}
	return f.fallback.Get(ctx, id)
}

func (f *Fallback) Patch(ctx context.Context, id string, p ArtifactPatch) error {
	if f.primary != nil {
		err := f.primary.Patch(ctx, id, p)
		if err == nil {
			return nil
		}
		slog.Error("primary store patch failed, using fallback", "artifact_id", id, "error", err)
	}
	return f.fallback.Patch(ctx, id, p)
}

func (f *Fallback) List(ctx context.Context, limit, offset int) ([]model.Artifact, error) {
	if f.primary != nil {
		artifacts, err := f.primary.List(ctx, limit, offset)
		if err == nil {
			return artifacts, nil
		}
		slog.Error("primary store list failed, using fallback", "error", err)
	}
	return f.fallback.List(ctx, limit, offset)
}
