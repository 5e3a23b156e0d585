package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linford/necronet/internal/model"
)

var _ ArtifactStore = (*Store)(nil)

// Store provides artifact persistence backed by a SQLite database. It is the
// durable local alternative when no Supabase project is configured.
type Store struct {
	db *sql.DB
}

// New creates a new Store and initialises the schema.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// currentSchemaVersion is bumped whenever the schema changes.
// Add a new migration function in the migrations slice below.
const currentSchemaVersion = 1

func (s *Store) migrate() error {
	// Ensure the schema_version table exists.
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		// Fresh database: initialize to version 0.
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("init schema version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	// migrations is an ordered list of migration functions.
	// Index 0 = migration from v0 to v1, etc.
	migrations := []func() error{
		s.migrateV1, // v0 → v1: initial schema
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](); err != nil {
			return fmt.Errorf("migration v%d→v%d: %w", i, i+1, err)
		}
		if _, err := s.db.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			return fmt.Errorf("update schema version to %d: %w", i+1, err)
		}
	}

	return nil
}

// migrateV1 creates the initial schema (v0 → v1).
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		artifact_id         TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		artifact_type       TEXT NOT NULL,
		storage_key         TEXT NOT NULL,
		status              TEXT NOT NULL,
		created_at          TEXT NOT NULL,
		ghost_narration_url TEXT,
		error_message       TEXT,
		original_url        TEXT,
		description         TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_artifacts_created ON artifacts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_artifacts_status ON artifacts(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

const artifactColumns = `artifact_id, name, artifact_type, storage_key, status, created_at, ghost_narration_url, error_message, original_url, description`

// Put inserts or replaces an artifact by id.
func (s *Store) Put(ctx context.Context, a model.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (`+artifactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(artifact_id) DO UPDATE SET
			name = excluded.name,
			artifact_type = excluded.artifact_type,
			storage_key = excluded.storage_key,
			status = excluded.status,
			created_at = excluded.created_at,
			ghost_narration_url = excluded.ghost_narration_url,
			error_message = excluded.error_message,
			original_url = excluded.original_url,
			description = excluded.description`,
		a.ArtifactID, a.Name, a.ArtifactType, a.StorageKey, a.Status, a.CreatedAt,
		a.GhostNarrationURL, a.ErrorMessage, a.OriginalURL, a.Description,
	)
	return err
}

// Get returns the artifact with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE artifact_id = ?`, id)
	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// Patch merges the set fields into an existing record. Patching a missing
// record is a no-op.
func (s *Store) Patch(ctx context.Context, id string, p ArtifactPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	// Build SET clauses in a stable order.
	var sets []string
	var args []any
	for _, col := range []string{"status", "ghost_narration_url", "error_message"} {
		if v, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, v)
		}
	}
	args = append(args, id)
	_, err := s.db.ExecContext(ctx,
		`UPDATE artifacts SET `+strings.Join(sets, ", ")+` WHERE artifact_id = ?`, args...)
	return err
}

// List returns artifacts ordered by created_at descending.
func (s *Store) List(ctx context.Context, limit, offset int) ([]model.Artifact, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+artifactColumns+` FROM artifacts ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artifacts := []model.Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, *a)
	}
	return artifacts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row scanner) (*model.Artifact, error) {
	var a model.Artifact
	err := row.Scan(&a.ArtifactID, &a.Name, &a.ArtifactType, &a.StorageKey, &a.Status,
		&a.CreatedAt, &a.GhostNarrationURL, &a.ErrorMessage, &a.OriginalURL, &a.Description)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
