package networksecurity

import (
	"github.com/SaiBhavadeesh/network-security/internal/app/pipeline"
	"github.com/SaiBhavadeesh/network-security/internal/dataprep"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/failure"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

// Table is the raw record grid handed from a Source to ingestion.
type Table = domain.Table

// IngestionArtifact points at the train/test CSVs.
type IngestionArtifact = domain.IngestionArtifact

// ValidationArtifact reports schema checks and drift status.
type ValidationArtifact = domain.ValidationArtifact

// TransformationArtifact points at the arrays and the fitted imputer.
type TransformationArtifact = domain.TransformationArtifact

// DriftReport maps column name to its KS outcome.
type DriftReport = domain.DriftReport

// CatalogEntry is one recorded stage artifact.
type CatalogEntry = domain.CatalogEntry

// Result holds the artifacts of a run.
type Result = pipeline.Result

// Source loads the full raw dataset (MongoDB, CSV, or anything else).
type Source = ports.Source

// Catalog records stage artifacts somewhere queryable.
type Catalog = ports.Catalog

// Observability emits logs and metrics about each stage.
type Observability = ports.Observability

// Field is a structured log field used by Observability implementations.
type Field = ports.Field

// Error is the tagged error every stage returns.
type Error = failure.Error

// KNNImputer is the fitted preprocessing object persisted by transformation.
type KNNImputer = dataprep.KNNImputer

const (
	StageIngestion      = domain.StageIngestion
	StageValidation     = domain.StageValidation
	StageTransformation = domain.StageTransformation
)

var (
	ErrEmptySource    = pipeline.ErrEmptySource
	ErrSchemaMismatch = pipeline.ErrSchemaMismatch
	ErrColumnMissing  = pipeline.ErrColumnMissing
	ErrMissingTarget  = pipeline.ErrMissingTarget
	ErrShapeMismatch  = pipeline.ErrShapeMismatch
	ErrNonNumeric     = pipeline.ErrNonNumeric
	ErrSplitTooSmall  = dataprep.ErrSplitTooSmall
)

// NewTable builds a Table, checking row widths against the header.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	return domain.NewTable(columns, rows)
}

// ReadDriftReport loads a drift report written by validation.
func ReadDriftReport(path string) (DriftReport, error) {
	return pipeline.ReadDriftReport(path)
}

// LoadImputer reads the preprocessing object written by transformation.
func LoadImputer(path string) (*KNNImputer, error) {
	return dataprep.LoadImputer(path)
}

// StageOf reports which stage produced a tagged error.
func StageOf(err error) (string, bool) {
	return failure.StageOf(err)
}
