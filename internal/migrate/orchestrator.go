package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linford/necronet/internal/model"
	"github.com/linford/necronet/internal/narration"
	"github.com/linford/necronet/internal/storage"
	"github.com/linford/necronet/internal/store"
)

// Orchestrator drives one artifact through uploaded → migrating → ready|failed.
// Exactly one Run is scheduled per artifact, right after the upload response;
// the outcome is observable only through the persisted record.
type Orchestrator struct {
	store   store.ArtifactStore
	objects storage.ObjectStore // nil when no object store is configured
	tts     *narration.Client   // nil when narration is disabled entirely
	delay   time.Duration
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(s store.ArtifactStore, objects storage.ObjectStore, tts *narration.Client, delay time.Duration) *Orchestrator {
	return &Orchestrator{store: s, objects: objects, tts: tts, delay: delay}
}

// Run executes the migration for one artifact. Any fault marks the record
// failed with the fault's description; nothing is retried.
func (o *Orchestrator) Run(ctx context.Context, a model.Artifact) {
	slog.Info("migration started", "artifact_id", a.ArtifactID, "artifact_type", a.ArtifactType)

	if err := o.run(ctx, a); err != nil {
		slog.Error("migration failed", "artifact_id", a.ArtifactID, "error", err)
		failed := model.StatusFailed
		msg := err.Error()
		patch := store.ArtifactPatch{Status: &failed, ErrorMessage: &msg}
		if perr := o.store.Patch(ctx, a.ArtifactID, patch); perr != nil {
			slog.Error("failed to record migration failure", "artifact_id", a.ArtifactID, "error", perr)
		}
		return
	}

	slog.Info("migration complete", "artifact_id", a.ArtifactID)
}

func (o *Orchestrator) run(ctx context.Context, a model.Artifact) error {
	migrating := model.StatusMigrating
	if err := o.store.Patch(ctx, a.ArtifactID, store.ArtifactPatch{Status: &migrating}); err != nil {
		return fmt.Errorf("mark migrating: %w", err)
	}

	// Stand-in for artifact-specific transformation work.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.delay):
	}

	ghostURL, err := o.narrate(ctx, a)
	if err != nil {
		return err
	}

	ready := model.StatusReady
	patch := store.ArtifactPatch{Status: &ready, GhostNarrationURL: ghostURL}
	if err := o.store.Patch(ctx, a.ArtifactID, patch); err != nil {
		return fmt.Errorf("mark ready: %w", err)
	}
	return nil
}

// narrate synthesizes and stores the ghost narration. A nil URL with nil
// error means narration was skipped; only a failed audio upload fails the
// run, since by then the synthesized audio has nowhere to live.
func (o *Orchestrator) narrate(ctx context.Context, a model.Artifact) (*string, error) {
	if o.tts == nil {
		return nil, nil
	}
	if o.objects == nil {
		slog.Warn("narration skipped: no object store to hold the audio", "artifact_id", a.ArtifactID)
		return nil, nil
	}

	audio, err := o.tts.Synthesize(ctx, a.Name, a.ArtifactType)
	if err != nil {
		// Narration is optional enrichment; synthesis failures never fail the run.
		slog.Error("narration synthesis failed", "artifact_id", a.ArtifactID, "error", err)
		return nil, nil
	}
	if audio == nil {
		return nil, nil
	}

	key := "narrations/" + a.ArtifactID + "_ghost.mp3"
	url, err := o.objects.Upload(ctx, key, audio, "audio/mpeg")
	if err != nil {
		return nil, fmt.Errorf("store narration audio: %w", err)
	}
	slog.Info("ghost narration uploaded", "artifact_id", a.ArtifactID, "url", url)
	return &url, nil
}
