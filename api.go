package networksecurity

import (
	"context"
	"time"

	base "github.com/SaiBhavadeesh/network-security/pkg/networksecurity"
)

// Re-exported errors for convenience.
var (
	ErrEmptySource          = base.ErrEmptySource
	ErrSchemaMismatch       = base.ErrSchemaMismatch
	ErrColumnMissing        = base.ErrColumnMissing
	ErrMissingTarget        = base.ErrMissingTarget
	ErrShapeMismatch        = base.ErrShapeMismatch
	ErrNonNumeric           = base.ErrNonNumeric
	ErrSplitTooSmall        = base.ErrSplitTooSmall
	ErrChannelCatalogClosed = base.ErrChannelCatalogClosed
)

const (
	StageIngestion      = base.StageIngestion
	StageValidation     = base.StageValidation
	StageTransformation = base.StageTransformation
	SourceMongo         = base.SourceMongo
	SourceCSV           = base.SourceCSV
	PolicyPermissive    = base.PolicyPermissive
	PolicyStrict        = base.PolicyStrict
)

// Type aliases so consumers can import github.com/SaiBhavadeesh/network-security directly.
type (
	Config                 = base.Config
	SourceConfig           = base.SourceConfig
	IngestionSettings      = base.IngestionSettings
	ValidationSettings     = base.ValidationSettings
	TransformSettings      = base.TransformSettings
	MetricsConfig          = base.MetricsConfig
	CatalogConfig          = base.CatalogConfig
	RunConfig              = base.RunConfig
	Schema                 = base.Schema
	SchemaColumn           = base.SchemaColumn
	Flow                   = base.Flow
	FlowOption             = base.FlowOption
	IngestOption           = base.IngestOption
	PublishOption          = base.PublishOption
	Runtime                = base.Runtime
	RuntimeOption          = base.RuntimeOption
	Result                 = base.Result
	Table                  = base.Table
	IngestionArtifact      = base.IngestionArtifact
	ValidationArtifact     = base.ValidationArtifact
	TransformationArtifact = base.TransformationArtifact
	DriftReport            = base.DriftReport
	CatalogEntry           = base.CatalogEntry
	CatalogFunc            = base.CatalogFunc
	Source                 = base.Source
	Catalog                = base.Catalog
	Observability          = base.Observability
	Field                  = base.Field
	Error                  = base.Error
	KNNImputer             = base.KNNImputer
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

func DefaultConfig() *Config {
	return base.DefaultConfig()
}

func LoadSchema(path string) (Schema, error) {
	return base.LoadSchema(path)
}

func NewSchema(columns []SchemaColumn, numerical []string) (Schema, error) {
	return base.NewSchema(columns, numerical)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return base.WithFlowOptions(opts...)
}

func IngestSource(src Source) IngestOption {
	return base.IngestSource(src)
}

func IngestCSV(path string) IngestOption {
	return base.IngestCSV(path)
}

func IngestSchema(sc Schema) IngestOption {
	return base.IngestSchema(sc)
}

func PublishCatalog(c Catalog) PublishOption {
	return base.PublishCatalog(c)
}

func PublishCallback(name string, fn CatalogFunc) PublishOption {
	return base.PublishCallback(name, fn)
}

func PublishObservability(obs Observability) PublishOption {
	return base.PublishObservability(obs)
}

// Runtime and options.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}

func WithSource(src Source) RuntimeOption {
	return base.WithSource(src)
}

func WithCatalog(c Catalog) RuntimeOption {
	return base.WithCatalog(c)
}

func WithObservability(obs Observability) RuntimeOption {
	return base.WithObservability(obs)
}

func WithSchema(sc Schema) RuntimeOption {
	return base.WithSchema(sc)
}

func WithClock(now func() time.Time) RuntimeOption {
	return base.WithClock(now)
}

func WithEnvFile(path string) RuntimeOption {
	return base.WithEnvFile(path)
}

// Catalog adapters.
func NewCallbackCatalog(name string, fn CatalogFunc) Catalog {
	return base.NewCallbackCatalog(name, fn)
}

func NewChannelCatalog(name string, buffer int) (Catalog, <-chan CatalogEntry, func()) {
	return base.NewChannelCatalog(name, buffer)
}

// Artifact helpers.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	return base.NewTable(columns, rows)
}

func ReadDriftReport(path string) (DriftReport, error) {
	return base.ReadDriftReport(path)
}

func LoadImputer(path string) (*KNNImputer, error) {
	return base.LoadImputer(path)
}

func StageOf(err error) (string, bool) {
	return base.StageOf(err)
}

func SeedCollection(ctx context.Context, cfg *Config, path, envFile string) (int, error) {
	return base.SeedCollection(ctx, cfg, path, envFile)
}
