package model

// MigrationPlan is an informational checklist of steps for resurrecting a
// given artifact category. Plans are computed on demand and never persisted.
type MigrationPlan struct {
	ArtifactID               string   `json:"artifact_id"`
	ArtifactType             string   `json:"artifact_type"`
	Strategy                 string   `json:"strategy"`
	Steps                    []string `json:"steps"`
	EstimatedDurationSeconds int      `json:"estimated_duration_seconds"`
}
