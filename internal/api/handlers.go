package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/linford/necronet/internal/migrate"
	"github.com/linford/necronet/internal/model"
	"github.com/linford/necronet/internal/storage"
	"github.com/linford/necronet/internal/store"
)

// ---------------------------------------------------------------------------
// GET /
// ---------------------------------------------------------------------------

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "NecroNet Backend",
		"version": "1.0.0",
		"health":  "/health",
	})
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func (s *Server) supabaseStatus() string {
	if s.deps.SupabaseConfigured {
		return "connected"
	}
	return "not_configured"
}

func (s *Server) s3Status() string {
	if s.deps.S3Configured {
		return "connected"
	}
	return "not_configured"
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	tts := "not_configured"
	if s.deps.TTS != nil && s.deps.TTS.Configured() {
		tts = "configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"supabase":  s.supabaseStatus(),
		"s3":        s.s3Status(),
		"tts":       tts,
	})
}

// ---------------------------------------------------------------------------
// GET /health/tts
// ---------------------------------------------------------------------------

func (s *Server) handleHealthTTS(w http.ResponseWriter, r *http.Request) {
	tts := "not_configured"
	if s.deps.TTS != nil {
		vs := s.deps.TTS.CheckVoice(r.Context())
		tts = vs.Status
		if vs.VoiceName != "" {
			tts += " (" + vs.VoiceName + ")"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"supabase":  s.supabaseStatus(),
		"s3":        s.s3Status(),
		"tts":       tts,
	})
}

// ---------------------------------------------------------------------------
// POST /api/artifacts/upload
// ---------------------------------------------------------------------------

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "no filename provided")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	artifactType := migrate.DetectType(header.Filename, contentType)
	artifactID := uuid.New().String()
	storageKey := fmt.Sprintf("artifacts/%s/%s/%s", artifactType, artifactID, header.Filename)

	// A synchronous storage failure is fatal to the upload: no record is
	// created.
	if s.deps.Objects == nil {
		writeError(w, http.StatusInternalServerError, "storage upload failed: "+storage.ErrNotConfigured.Error())
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.deps.Objects.Upload(r.Context(), storageKey, data, contentType); err != nil {
		slog.Error("artifact upload failed", "key", storageKey, "error", err)
		writeError(w, http.StatusInternalServerError, "storage upload failed")
		return
	}

	artifact := model.NewArtifact(artifactID, header.Filename, artifactType, storageKey)
	if v := r.FormValue("original_url"); v != "" {
		artifact.OriginalURL = &v
	}
	if v := r.FormValue("description"); v != "" {
		artifact.Description = &v
	}

	if err := s.deps.Store.Put(r.Context(), artifact); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store artifact")
		return
	}

	// Schedule the background migration run. The artifact stays "uploaded"
	// if the pool is saturated.
	scheduled := s.deps.Pool.Submit(func(ctx context.Context) {
		s.deps.Orchestrator.Run(ctx, artifact)
	})
	if !scheduled {
		slog.Warn("migration run not scheduled", "artifact_id", artifactID)
	}

	slog.Info("artifact uploaded", "artifact_id", artifactID, "artifact_type", artifactType)
	writeJSON(w, http.StatusCreated, artifact)
}

// ---------------------------------------------------------------------------
// POST /api/artifacts/migrate
// ---------------------------------------------------------------------------

type migrateRequest struct {
	ArtifactType string `json:"artifact_type"`
}

func (s *Server) handleMigratePlan(w http.ResponseWriter, r *http.Request) {
	var req migrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ArtifactType == "" {
		writeError(w, http.StatusBadRequest, "artifact_type is required")
		return
	}
	writeJSON(w, http.StatusOK, migrate.PlanFor(req.ArtifactType, ""))
}

// ---------------------------------------------------------------------------
// GET /api/artifacts/{id}
// ---------------------------------------------------------------------------

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	artifact, err := s.deps.Store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

// ---------------------------------------------------------------------------
// GET /api/artifacts
// ---------------------------------------------------------------------------

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	artifacts, err := s.deps.Store.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}
	if artifacts == nil {
		artifacts = []model.Artifact{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"artifacts": artifacts,
		"total":     len(artifacts),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
