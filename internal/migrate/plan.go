package migrate

import (
	"github.com/google/uuid"

	"github.com/linford/necronet/internal/model"
)

// plans holds the fixed per-category migration strategies.
var plans = map[string]model.MigrationPlan{
	model.TypeFlash: {
		ArtifactType: model.TypeFlash,
		Strategy:     "ruffle_embed",
		Steps: []string{
			"1. Validate .swf",
			"2. Generate Ruffle embed",
			"3. Create exhibit",
			"4. Test playback",
			"5. Generate narration",
		},
		EstimatedDurationSeconds: 45,
	},
	model.TypeHTML: {
		ArtifactType: model.TypeHTML,
		Strategy:     "html_sanitize",
		Steps: []string{
			"1. Sanitize HTML",
			"2. Apply CSS fallback",
			"3. Refactor styles",
			"4. Add a11y",
			"5. Generate narration",
		},
		EstimatedDurationSeconds: 30,
	},
	model.TypeImage: {
		ArtifactType: model.TypeImage,
		Strategy:     "image_optimize",
		Steps: []string{
			"1. Optimize image",
			"2. Generate thumbnail",
			"3. Extract metadata",
			"4. Create entry",
			"5. Generate narration",
		},
		EstimatedDurationSeconds: 20,
	},
}

// PlanFor returns the migration plan for an artifact category. Unknown
// categories get the generic plan. When artifactID is empty a fresh id is
// generated, matching plan requests made before any upload exists.
func PlanFor(artifactType, artifactID string) model.MigrationPlan {
	if artifactID == "" {
		artifactID = uuid.New().String()
	}

	plan, ok := plans[artifactType]
	if !ok {
		plan = model.MigrationPlan{
			ArtifactType:             artifactType,
			Strategy:                 "generic",
			Steps:                    []string{"1. Analyze", "2. Store", "3. Narrate"},
			EstimatedDurationSeconds: 15,
		}
	}
	plan.ArtifactID = artifactID
	// Copy the steps so callers cannot mutate the shared table.
	plan.Steps = append([]string(nil), plan.Steps...)
	return plan
}
