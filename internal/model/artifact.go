package model

import "time"

// Artifact status constants. Transitions are one-directional:
// uploaded → migrating → ready | failed.
const (
	StatusUploaded  = "uploaded"
	StatusMigrating = "migrating"
	StatusReady     = "ready"
	StatusFailed    = "failed"
)

// Artifact type constants.
const (
	TypeFlash   = "flash"
	TypeHTML    = "html"
	TypeImage   = "image"
	TypeArchive = "archive"
	TypeOther   = "other"
)

// Artifact represents an uploaded legacy file together with its migration
// metadata and lifecycle status.
type Artifact struct {
	ArtifactID        string  `json:"artifact_id"`
	Name              string  `json:"name"`
	ArtifactType      string  `json:"artifact_type"`
	StorageKey        string  `json:"storage_key"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	GhostNarrationURL *string `json:"ghost_narration_url"`
	ErrorMessage      *string `json:"error_message"`
	OriginalURL       *string `json:"original_url"`
	Description       *string `json:"description"`
}

// NewArtifact creates a freshly uploaded Artifact.
func NewArtifact(id, name, artifactType, storageKey string) Artifact {
	return Artifact{
		ArtifactID:   id,
		Name:         name,
		ArtifactType: artifactType,
		StorageKey:   storageKey,
		Status:       StatusUploaded,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// TerminalStatus reports whether status is one of the terminal states.
func TerminalStatus(status string) bool {
	return status == StatusReady || status == StatusFailed
}
