package networksecurity

import (
	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/schema"
)

// Config re-exports the root configuration struct so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// SourceConfig selects where raw records come from.
	SourceConfig = config.SourceConfig
	// IngestionSettings controls the train/test split.
	IngestionSettings = config.IngestionSettings
	// ValidationSettings controls drift detection and the schema policy.
	ValidationSettings = config.ValidationSettings
	// TransformSettings configures the KNN imputer.
	TransformSettings = config.TransformSettings
	// MetricsConfig toggles the metrics textfile.
	MetricsConfig = config.MetricsConfig
	// CatalogConfig points at the artifact catalog database.
	CatalogConfig = config.CatalogConfig
	// RunConfig carries the timestamp and ID shared by every stage of a run.
	RunConfig = config.RunConfig
	// Schema is the immutable declared dataset shape.
	Schema = schema.Schema
	// SchemaColumn is one declared column.
	SchemaColumn = schema.Column
)

const (
	SourceMongo      = config.SourceMongo
	SourceCSV        = config.SourceCSV
	PolicyPermissive = config.PolicyPermissive
	PolicyStrict     = config.PolicyStrict
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadSchema reads a schema file; an empty path selects the built-in
// phishing dataset schema.
func LoadSchema(path string) (Schema, error) {
	return schema.Load(path)
}

// NewSchema builds a schema in code, e.g. for tests or synthetic data.
func NewSchema(columns []SchemaColumn, numerical []string) (Schema, error) {
	return schema.New(columns, numerical)
}
