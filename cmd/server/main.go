package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/linford/necronet/internal/api"
	"github.com/linford/necronet/internal/config"
	"github.com/linford/necronet/internal/migrate"
	"github.com/linford/necronet/internal/narration"
	"github.com/linford/necronet/internal/storage"
	"github.com/linford/necronet/internal/store"
	"github.com/linford/necronet/internal/worker"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistence: Supabase when configured, else local SQLite, else memory
	// only. Everything is wrapped in the in-memory fallback so the service
	// keeps working when the primary store misbehaves.
	var primary store.ArtifactStore
	switch {
	case cfg.SupabaseConfigured():
		slog.Info("using supabase store", "url", cfg.SupabaseURL)
		primary = store.NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey)
	case cfg.DBPath != "":
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		s, err := store.New(db)
		if err != nil {
			log.Fatalf("init store: %v", err)
		}
		slog.Info("using sqlite store", "path", cfg.DBPath)
		primary = s
	default:
		slog.Warn("no database configured, artifacts are held in memory only")
	}
	artifacts := store.NewFallback(primary, store.NewMemory())

	// Object storage: S3 with credentials, else an optional local directory.
	var objects storage.ObjectStore
	var filesDir string
	switch {
	case cfg.S3Configured():
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("init s3: %v", err)
		}
		slog.Info("using s3 object store", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
		objects = s3Store
	case cfg.StorageDir != "":
		dirStore, err := storage.NewDirStore(cfg.StorageDir, "http://localhost:"+cfg.Port+"/files")
		if err != nil {
			log.Fatalf("init local storage: %v", err)
		}
		slog.Info("using local object store", "dir", cfg.StorageDir)
		objects = dirStore
		filesDir = dirStore.Root()
	default:
		slog.Warn("no object storage configured, uploads will fail")
	}

	// Ghost narration.
	tts := narration.NewClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID,
		narration.WithModelID(cfg.TTSModel),
		narration.WithTimeout(cfg.TTSTimeout),
	)
	if !tts.Configured() {
		slog.Warn("elevenlabs not configured, artifacts will have no narration")
	}

	// Background migration runs.
	orch := migrate.NewOrchestrator(artifacts, objects, tts, cfg.MigrateDelay)
	pool := worker.NewPool(cfg.Workers, cfg.Workers*4)
	pool.Start(ctx)

	srv := api.New(api.Deps{
		Store:              artifacts,
		Objects:            objects,
		TTS:                tts,
		Pool:               pool,
		Orchestrator:       orch,
		SupabaseConfigured: cfg.SupabaseConfigured(),
		S3Configured:       cfg.S3Configured(),
		FilesDir:           filesDir,
		CORSOrigin:         cfg.CORSOrigin,
	})
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Handler(),
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down...")
		cancel()
		httpServer.Shutdown(context.Background())
	}()

	fmt.Printf("necronet server listening on http://localhost:%s\n", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	pool.Wait()
}
