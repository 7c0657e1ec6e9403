package domain

import "time"

// Stage names used in catalog entries, logs and tagged errors.
const (
	StageIngestion      = "data_ingestion"
	StageValidation     = "data_validation"
	StageTransformation = "data_transformation"
)

// CatalogEntry records one stage artifact of one run.
type CatalogEntry struct {
	RunID        string    `json:"run_id"`
	RunTimestamp string    `json:"run_timestamp"`
	Stage        string    `json:"stage"`
	Artifact     any       `json:"artifact"`
	RecordedAt   time.Time `json:"recorded_at"`
}
