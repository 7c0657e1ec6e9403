package config

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/SaiBhavadeesh/network-security/internal/domain"
)

// TimestampLayout names the per-run artifact directory.
const TimestampLayout = "01_02_2006_15_04_05"

// RunConfig is created once per run; every stage derives its paths from it.
type RunConfig struct {
	PipelineName string
	RunID        string
	Timestamp    string
	ArtifactDir  string
}

func NewRunConfig(cfg *Config, now time.Time) RunConfig {
	ts := now.Format(TimestampLayout)
	return RunConfig{
		PipelineName: cfg.PipelineName,
		RunID:        uuid.NewString(),
		Timestamp:    ts,
		ArtifactDir:  filepath.Join(cfg.ArtifactDir, ts),
	}
}

// MetricsPath is where the run's metrics textfile lands.
func (r RunConfig) MetricsPath() string {
	return filepath.Join(r.ArtifactDir, "metrics.prom")
}

type IngestionConfig struct {
	Dir              string
	FeatureStorePath string
	TrainPath        string
	TestPath         string
	SplitRatio       float64
	Seed             int64
}

func NewIngestionConfig(run RunConfig, cfg *Config) IngestionConfig {
	dir := filepath.Join(run.ArtifactDir, domain.StageIngestion)
	return IngestionConfig{
		Dir:              dir,
		FeatureStorePath: filepath.Join(dir, "feature_store", "phisingData.csv"),
		TrainPath:        filepath.Join(dir, "ingested", "train.csv"),
		TestPath:         filepath.Join(dir, "ingested", "test.csv"),
		SplitRatio:       cfg.Ingestion.SplitRatio,
		Seed:             cfg.Ingestion.SeedValue(),
	}
}

type ValidationConfig struct {
	Dir              string
	ValidTrainPath   string
	ValidTestPath    string
	InvalidTrainPath string
	InvalidTestPath  string
	DriftReportPath  string
	DriftThreshold   float64
	Strict           bool
	PlotDrift        bool
}

func NewValidationConfig(run RunConfig, cfg *Config) ValidationConfig {
	dir := filepath.Join(run.ArtifactDir, domain.StageValidation)
	return ValidationConfig{
		Dir:              dir,
		ValidTrainPath:   filepath.Join(dir, "validated", "train.csv"),
		ValidTestPath:    filepath.Join(dir, "validated", "test.csv"),
		InvalidTrainPath: filepath.Join(dir, "invalid", "train.csv"),
		InvalidTestPath:  filepath.Join(dir, "invalid", "test.csv"),
		DriftReportPath:  filepath.Join(dir, "drift_report", "report.yaml"),
		DriftThreshold:   cfg.Validation.DriftThreshold,
		Strict:           cfg.Validation.Policy == PolicyStrict,
		PlotDrift:        cfg.Validation.PlotDrift,
	}
}

// PlotDir holds the per-column drift histograms.
func (v ValidationConfig) PlotDir() string {
	return filepath.Join(filepath.Dir(v.DriftReportPath), "plots")
}

type TransformationConfig struct {
	Dir            string
	TrainArrayPath string
	TestArrayPath  string
	ObjectPath     string
	TargetColumn   string
	NNeighbors     int
	Weights        string
	MissingValues  string
}

func NewTransformationConfig(run RunConfig, cfg *Config) TransformationConfig {
	dir := filepath.Join(run.ArtifactDir, domain.StageTransformation)
	return TransformationConfig{
		Dir:            dir,
		TrainArrayPath: filepath.Join(dir, "transformed", "train.npy"),
		TestArrayPath:  filepath.Join(dir, "transformed", "test.npy"),
		ObjectPath:     filepath.Join(dir, "transformed_object", "preprocessing.gob"),
		TargetColumn:   cfg.TargetColumn,
		NNeighbors:     cfg.Transformation.NNeighbors,
		Weights:        cfg.Transformation.Weights,
		MissingValues:  cfg.Transformation.MissingValues,
	}
}

// MissingMarker parses MissingValues the same way the file config does.
func (t TransformationConfig) MissingMarker() (float64, error) {
	return parseMarker(t.MissingValues)
}
