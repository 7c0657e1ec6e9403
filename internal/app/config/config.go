package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/mongostore"
)

const (
	SourceMongo = "mongo"
	SourceCSV   = "csv"

	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

type Config struct {
	PipelineName   string             `yaml:"pipeline_name"`
	ArtifactDir    string             `yaml:"artifact_dir"`
	TargetColumn   string             `yaml:"target_column"`
	SchemaPath     string             `yaml:"schema_path"`
	Source         SourceConfig       `yaml:"source"`
	Ingestion      IngestionSettings  `yaml:"ingestion"`
	Validation     ValidationSettings `yaml:"validation"`
	Transformation TransformSettings  `yaml:"transformation"`
	Metrics        MetricsConfig      `yaml:"metrics"`
	Catalog        CatalogConfig      `yaml:"catalog"`
}

type SourceConfig struct {
	Kind    string `yaml:"kind"`
	URLEnv  string `yaml:"url_env"`
	CSVPath string `yaml:"csv_path"`

	mongostore.Config `yaml:",inline"`
}

type IngestionSettings struct {
	SplitRatio float64 `yaml:"split_ratio"`
	Seed       *int64  `yaml:"seed"`
}

type ValidationSettings struct {
	DriftThreshold float64 `yaml:"drift_threshold"`
	Policy         string  `yaml:"policy"`
	PlotDrift      bool    `yaml:"plot_drift"`
}

type TransformSettings struct {
	NNeighbors    int    `yaml:"n_neighbors"`
	Weights       string `yaml:"weights"`
	MissingValues string `yaml:"missing_values"`
}

type MetricsConfig struct {
	Textfile *bool `yaml:"textfile"`
}

// Enabled reports whether the metrics textfile is written; it defaults to on.
func (m MetricsConfig) Enabled() bool { return m.Textfile == nil || *m.Textfile }

type CatalogConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

// Load reads a YAML config. Relative schema_path, artifact_dir and
// source.csv_path values are resolved against the directory holding the file;
// defaults filled in afterwards stay relative to the working directory.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	cfg.SchemaPath = rebase(base, cfg.SchemaPath)
	cfg.ArtifactDir = rebase(base, cfg.ArtifactDir)
	cfg.Source.CSVPath = rebase(base, cfg.Source.CSVPath)

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func rebase(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate re-checks a config assembled in code.
func (c *Config) Validate() error {
	c.applyDefaults()
	return c.validate()
}

func (c *Config) applyDefaults() {
	if c.PipelineName == "" {
		c.PipelineName = "NetworkSecurity"
	}
	if c.ArtifactDir == "" {
		c.ArtifactDir = "Artifacts"
	}
	if c.TargetColumn == "" {
		c.TargetColumn = "Result"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceMongo
	}
	if c.Source.URLEnv == "" {
		c.Source.URLEnv = "MONGO_DB_URL"
	}
	if c.Source.Database == "" {
		c.Source.Database = "data_science"
	}
	if c.Source.Collection == "" {
		c.Source.Collection = "network_data"
	}
	if c.Ingestion.SplitRatio == 0 {
		c.Ingestion.SplitRatio = 0.2
	}
	if c.Ingestion.Seed == nil {
		seed := int64(42)
		c.Ingestion.Seed = &seed
	}
	if c.Validation.DriftThreshold == 0 {
		c.Validation.DriftThreshold = 0.05
	}
	if c.Validation.Policy == "" {
		c.Validation.Policy = PolicyPermissive
	}
	if c.Transformation.NNeighbors == 0 {
		c.Transformation.NNeighbors = 3
	}
	if c.Transformation.Weights == "" {
		c.Transformation.Weights = "uniform"
	}
	if c.Transformation.MissingValues == "" {
		c.Transformation.MissingValues = "nan"
	}
	if c.Catalog.Table == "" {
		c.Catalog.Table = "pipeline_artifacts"
	}

	c.Source.ApplyDefaults()
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceMongo:
		if err := c.Source.Config.Validate(); err != nil {
			return fmt.Errorf("source config: %w", err)
		}
	case SourceCSV:
		if c.Source.CSVPath == "" {
			return errors.New("source.csv_path is required for a csv source")
		}
	default:
		return fmt.Errorf("source.kind %q is not one of mongo, csv", c.Source.Kind)
	}
	if r := c.Ingestion.SplitRatio; r <= 0 || r >= 1 {
		return fmt.Errorf("ingestion.split_ratio must be in (0,1), got %v", r)
	}
	if th := c.Validation.DriftThreshold; th <= 0 || th >= 1 {
		return fmt.Errorf("validation.drift_threshold must be in (0,1), got %v", th)
	}
	switch c.Validation.Policy {
	case PolicyPermissive, PolicyStrict:
	default:
		return fmt.Errorf("validation.policy %q is not one of permissive, strict", c.Validation.Policy)
	}
	if c.Transformation.NNeighbors < 1 {
		return fmt.Errorf("transformation.n_neighbors must be >= 1, got %d", c.Transformation.NNeighbors)
	}
	switch c.Transformation.Weights {
	case "uniform", "distance":
	default:
		return fmt.Errorf("transformation.weights %q is not one of uniform, distance", c.Transformation.Weights)
	}
	if _, err := c.Transformation.MissingMarker(); err != nil {
		return err
	}
	if c.Catalog.ConnString != "" && c.Catalog.Table == "" {
		return errors.New("catalog.table is required")
	}
	return nil
}

// SeedValue returns the configured split seed.
func (s IngestionSettings) SeedValue() int64 {
	if s.Seed == nil {
		return 42
	}
	return *s.Seed
}

// MissingMarker parses missing_values: "nan" means NaN, anything else must
// be a number.
func (t TransformSettings) MissingMarker() (float64, error) {
	return parseMarker(t.MissingValues)
}

func parseMarker(raw string) (float64, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("transformation.missing_values %q is neither nan nor a number", raw)
	}
	return v, nil
}
