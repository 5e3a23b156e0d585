package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SUPABASE_URL", "SUPABASE_KEY", "DB_PATH",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_S3_BUCKET",
		"AWS_S3_REGION", "AWS_S3_ENDPOINT", "STORAGE_DIR",
		"ELEVENLABS_API_KEY", "ELEVENLABS_VOICE_ID", "ELEVENLABS_MODEL_ID",
		"TTS_TIMEOUT", "MIGRATE_DELAY", "WORKERS", "CORS_ORIGIN",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.S3Bucket != "necronet-artifacts-linford" {
		t.Errorf("S3Bucket = %q", cfg.S3Bucket)
	}
	if cfg.S3Region != "eu-north-1" {
		t.Errorf("S3Region = %q", cfg.S3Region)
	}
	if cfg.TTSModel != "eleven_turbo_v2_5" {
		t.Errorf("TTSModel = %q", cfg.TTSModel)
	}
	if cfg.TTSTimeout != 60*time.Second {
		t.Errorf("TTSTimeout = %v", cfg.TTSTimeout)
	}
	if cfg.MigrateDelay != 3*time.Second {
		t.Errorf("MigrateDelay = %v", cfg.MigrateDelay)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q", cfg.CORSOrigin)
	}
	if cfg.SupabaseConfigured() || cfg.S3Configured() || cfg.TTSConfigured() {
		t.Error("nothing should be configured from an empty environment")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-key")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA123")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("ELEVENLABS_API_KEY", "el-key")
	t.Setenv("ELEVENLABS_VOICE_ID", "voice-1")
	t.Setenv("MIGRATE_DELAY", "250ms")
	t.Setenv("WORKERS", "8")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if !cfg.SupabaseConfigured() {
		t.Error("SupabaseConfigured() = false")
	}
	if !cfg.S3Configured() {
		t.Error("S3Configured() = false")
	}
	if !cfg.TTSConfigured() {
		t.Error("TTSConfigured() = false")
	}
	if cfg.MigrateDelay != 250*time.Millisecond {
		t.Errorf("MigrateDelay = %v", cfg.MigrateDelay)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment line
PORT=7000

SUPABASE_URL="https://quoted.supabase.co"
ELEVENLABS_VOICE_ID='voice-2'
not-a-pair
=empty-key
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// Real environment takes precedence over the file.
	t.Setenv("PORT", "8888")
	t.Setenv("SUPABASE_URL", "")
	os.Unsetenv("SUPABASE_URL")
	t.Setenv("ELEVENLABS_VOICE_ID", "")
	os.Unsetenv("ELEVENLABS_VOICE_ID")

	loadEnvFile(path)

	if got := os.Getenv("PORT"); got != "8888" {
		t.Errorf("PORT = %q, real environment must win", got)
	}
	if got := os.Getenv("SUPABASE_URL"); got != "https://quoted.supabase.co" {
		t.Errorf("SUPABASE_URL = %q", got)
	}
	if got := os.Getenv("ELEVENLABS_VOICE_ID"); got != "voice-2" {
		t.Errorf("ELEVENLABS_VOICE_ID = %q", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	// Must be a no-op, not a panic.
	loadEnvFile(filepath.Join(t.TempDir(), "does-not-exist.env"))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TTS_TIMEOUT", "bogus")
	if got := envDuration("TTS_TIMEOUT", 5*time.Second); got != 5*time.Second {
		t.Errorf("invalid duration should fall back, got %v", got)
	}
	t.Setenv("TTS_TIMEOUT", "90s")
	if got := envDuration("TTS_TIMEOUT", 5*time.Second); got != 90*time.Second {
		t.Errorf("got %v", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("WORKERS", "nope")
	if got := envInt("WORKERS", 4); got != 4 {
		t.Errorf("invalid int should fall back, got %d", got)
	}
	t.Setenv("WORKERS", "12")
	if got := envInt("WORKERS", 4); got != 12 {
		t.Errorf("got %d", got)
	}
}
