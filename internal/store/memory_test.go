package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/linford/necronet/internal/model"
)

func ptr(s string) *string { return &s }

func artifactAt(id string, createdAt time.Time) model.Artifact {
	return model.Artifact{
		ArtifactID:   id,
		Name:         id + ".swf",
		ArtifactType: model.TypeFlash,
		StorageKey:   "artifacts/flash/" + id + "/" + id + ".swf",
		Status:       model.StatusUploaded,
		CreatedAt:    createdAt.UTC().Format(time.RFC3339),
	}
}

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a := artifactAt("a1", time.Now())
	if err := m.Put(ctx, a); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := m.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a1.swf" || got.Status != model.StatusUploaded {
		t.Errorf("got = %+v", got)
	}

	// Replace by id.
	a.Status = model.StatusReady
	if err := m.Put(ctx, a); err != nil {
		t.Fatalf("put replace: %v", err)
	}
	got, _ = m.Get(ctx, "a1")
	if got.Status != model.StatusReady {
		t.Errorf("status after replace = %q, want ready", got.Status)
	}
}

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemory_Patch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Put(ctx, artifactAt("a1", time.Now()))

	err := m.Patch(ctx, "a1", ArtifactPatch{
		Status:            ptr(model.StatusReady),
		GhostNarrationURL: ptr("https://cdn.test/narrations/a1_ghost.mp3"),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	got, _ := m.Get(ctx, "a1")
	if got.Status != model.StatusReady {
		t.Errorf("status = %q, want ready", got.Status)
	}
	if got.GhostNarrationURL == nil || *got.GhostNarrationURL != "https://cdn.test/narrations/a1_ghost.mp3" {
		t.Errorf("ghost_narration_url = %v", got.GhostNarrationURL)
	}
	// Unset fields stay untouched.
	if got.ErrorMessage != nil {
		t.Errorf("error_message = %v, want nil", got.ErrorMessage)
	}
	if got.Name != "a1.swf" {
		t.Errorf("name = %q, patch must not touch it", got.Name)
	}
}

func TestMemory_PatchMissingIsNoop(t *testing.T) {
	m := NewMemory()
	if err := m.Patch(context.Background(), "nope", ArtifactPatch{Status: ptr(model.StatusReady)}); err != nil {
		t.Errorf("patch of missing record should be a no-op, got %v", err)
	}
}

func TestMemory_ListOrderAndWindow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		m.Put(ctx, artifactAt(fmt.Sprintf("a%d", i), base.Add(time.Duration(i)*time.Minute)))
	}

	all, err := m.List(ctx, 50, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	// Newest first.
	for i, want := range []string{"a4", "a3", "a2", "a1", "a0"} {
		if all[i].ArtifactID != want {
			t.Errorf("all[%d] = %q, want %q", i, all[i].ArtifactID, want)
		}
	}

	page, _ := m.List(ctx, 2, 1)
	if len(page) != 2 || page[0].ArtifactID != "a3" || page[1].ArtifactID != "a2" {
		t.Errorf("page = %v", page)
	}

	empty, _ := m.List(ctx, 10, 99)
	if len(empty) != 0 {
		t.Errorf("offset past end should return empty page, got %d", len(empty))
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c%d", i)
			m.Put(ctx, artifactAt(id, time.Now()))
			m.Patch(ctx, id, ArtifactPatch{Status: ptr(model.StatusReady)})
			m.Get(ctx, id)
			m.List(ctx, 10, 0)
		}(i)
	}
	wg.Wait()

	all, _ := m.List(ctx, 50, 0)
	if len(all) != 20 {
		t.Errorf("len = %d, want 20", len(all))
	}
}
