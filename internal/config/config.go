// Package config provides centralized configuration for the necronet server.
// All configurable values are loaded from environment variables with sensible
// defaults; a local .env file fills in variables not already set.
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all server configuration values.
type Config struct {
	// Port is the HTTP server listen port.
	Port string

	// SupabaseURL is the Supabase project URL. Together with SupabaseKey it
	// enables the primary persistence backend.
	SupabaseURL string

	// SupabaseKey is the Supabase project API key.
	SupabaseKey string

	// DBPath is an optional local SQLite database path, used as the primary
	// store when Supabase is not configured.
	DBPath string

	// AWSAccessKeyID / AWSSecretAccessKey enable the S3 object store.
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// S3Bucket is the bucket artifacts and narrations are written to.
	S3Bucket string

	// S3Region is the bucket's region.
	S3Region string

	// S3Endpoint is an optional S3-compatible endpoint override.
	S3Endpoint string

	// StorageDir is an optional local directory used as the object store when
	// no AWS credentials are configured.
	StorageDir string

	// ElevenLabsKey is the ElevenLabs API key for ghost narration.
	ElevenLabsKey string

	// ElevenLabsVoiceID is the narrator voice.
	ElevenLabsVoiceID string

	// TTSModel is the ElevenLabs model identifier.
	TTSModel string

	// TTSTimeout bounds a single synthesis call.
	TTSTimeout time.Duration

	// MigrateDelay is the simulated processing delay inside a migration run.
	MigrateDelay time.Duration

	// Workers is the background pool size for migration runs.
	Workers int

	// CORSOrigin is the allowed CORS origin. Defaults to "*".
	CORSOrigin string
}

// Load reads configuration from the environment, applying defaults. A .env
// file in the working directory is read first; real environment variables
// take precedence over it.
func Load() Config {
	loadEnvFile(".env")
	return Config{
		Port:               envOr("PORT", "8000"),
		SupabaseURL:        strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseKey:        strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		DBPath:             os.Getenv("DB_PATH"),
		AWSAccessKeyID:     strings.TrimSpace(os.Getenv("AWS_ACCESS_KEY_ID")),
		AWSSecretAccessKey: strings.TrimSpace(os.Getenv("AWS_SECRET_ACCESS_KEY")),
		S3Bucket:           envOr("AWS_S3_BUCKET", "necronet-artifacts-linford"),
		S3Region:           envOr("AWS_S3_REGION", "eu-north-1"),
		S3Endpoint:         strings.TrimSpace(os.Getenv("AWS_S3_ENDPOINT")),
		StorageDir:         os.Getenv("STORAGE_DIR"),
		ElevenLabsKey:      strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		ElevenLabsVoiceID:  strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID")),
		TTSModel:           envOr("ELEVENLABS_MODEL_ID", "eleven_turbo_v2_5"),
		TTSTimeout:         envDuration("TTS_TIMEOUT", 60*time.Second),
		MigrateDelay:       envDuration("MIGRATE_DELAY", 3*time.Second),
		Workers:            envInt("WORKERS", 4),
		CORSOrigin:         envOr("CORS_ORIGIN", "*"),
	}
}

// SupabaseConfigured reports whether the Supabase backend can be used.
func (c Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// S3Configured reports whether the S3 object store can be used.
func (c Config) S3Configured() bool {
	return c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != ""
}

// TTSConfigured reports whether ghost narration can be synthesized.
func (c Config) TTSConfigured() bool {
	return c.ElevenLabsKey != "" && c.ElevenLabsVoiceID != ""
}

// loadEnvFile sets environment variables from a KEY=VALUE file. Variables
// already present in the real environment are left untouched. A missing file
// is not an error.
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, value)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
