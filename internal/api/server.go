package api

import (
	"encoding/json"
	"net/http"

	"github.com/linford/necronet/internal/migrate"
	"github.com/linford/necronet/internal/narration"
	"github.com/linford/necronet/internal/storage"
	"github.com/linford/necronet/internal/store"
	"github.com/linford/necronet/internal/worker"
)

// maxRequestBody is the maximum allowed request body size (50 MB), sized for
// multipart artifact uploads.
const maxRequestBody int64 = 50 << 20

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Store        store.ArtifactStore
	Objects      storage.ObjectStore // nil when no object store is configured
	TTS          *narration.Client
	Pool         *worker.Pool
	Orchestrator *migrate.Orchestrator

	// SupabaseConfigured / S3Configured feed the health endpoints.
	SupabaseConfigured bool
	S3Configured       bool

	// FilesDir, when set, is served under /files (local object store mode).
	FilesDir string

	// CORSOrigin is the allowed CORS origin.
	CORSOrigin string
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	deps Deps
	mux  *http.ServeMux
}

// New creates a new API server.
func New(d Deps) *Server {
	srv := &Server{deps: d, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.deps.CORSOrigin, limitBody(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /health/tts", s.handleHealthTTS)
	s.mux.HandleFunc("POST /api/artifacts/upload", s.handleUpload)
	s.mux.HandleFunc("POST /api/artifacts/migrate", s.handleMigratePlan)
	s.mux.HandleFunc("GET /api/artifacts", s.handleListArtifacts)
	s.mux.HandleFunc("GET /api/artifacts/{id}", s.handleGetArtifact)
	if s.deps.FilesDir != "" {
		s.mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(s.deps.FilesDir))))
	}
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// corsMiddleware sets CORS headers for the given origin.
func corsMiddleware(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitBody restricts the request body to maxRequestBody bytes.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
