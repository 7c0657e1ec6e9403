package pipeline

import (
	"context"
	"time"

	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
	"github.com/SaiBhavadeesh/network-security/internal/schema"
)

// Result collects the artifacts of one complete run.
type Result struct {
	RunID          string
	Ingestion      domain.IngestionArtifact
	Validation     domain.ValidationArtifact
	Transformation domain.TransformationArtifact
}

// TrainingPipeline chains the three stages for one run.
type TrainingPipeline struct {
	run     config.RunConfig
	ingest  *Ingestion
	valid   *Validation
	trans   *Transformation
	catalog ports.Catalog
	obs     ports.Observability
	now     func() time.Time
}

func NewTrainingPipeline(cfg *config.Config, run config.RunConfig, src ports.Source, sc schema.Schema, cat ports.Catalog, obs ports.Observability) *TrainingPipeline {
	return &TrainingPipeline{
		run:     run,
		ingest:  NewIngestion(config.NewIngestionConfig(run, cfg), src, obs),
		valid:   NewValidation(config.NewValidationConfig(run, cfg), sc, obs),
		trans:   NewTransformation(config.NewTransformationConfig(run, cfg), obs),
		catalog: cat,
		obs:     obs,
		now:     time.Now,
	}
}

// RunConfig returns the run this pipeline writes under.
func (p *TrainingPipeline) RunConfig() config.RunConfig { return p.run }

// Run executes ingestion, validation and transformation in order and stops
// at the first failure. The returned Result holds every artifact produced
// before the failure.
func (p *TrainingPipeline) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: p.run.RunID}
	p.obs.LogInfo("training_pipeline_started",
		ports.Field{Key: "run_id", Value: p.run.RunID},
		ports.Field{Key: "artifact_dir", Value: p.run.ArtifactDir},
	)

	ing, err := p.ingest.Run(ctx)
	if err != nil {
		p.obs.LogError("data_ingestion_failed", err)
		return res, err
	}
	res.Ingestion = ing
	p.record(ctx, domain.StageIngestion, ing)

	val, err := p.valid.Run(ctx, ing)
	if err != nil {
		p.obs.LogError("data_validation_failed", err)
		return res, err
	}
	res.Validation = val
	p.record(ctx, domain.StageValidation, val)

	tr, err := p.trans.Run(ctx, val)
	if err != nil {
		p.obs.LogError("data_transformation_failed", err)
		return res, err
	}
	res.Transformation = tr
	p.record(ctx, domain.StageTransformation, tr)

	p.obs.LogInfo("training_pipeline_completed", ports.Field{Key: "run_id", Value: p.run.RunID})
	return res, nil
}

// record is best effort; the artifacts on disk stay authoritative.
func (p *TrainingPipeline) record(ctx context.Context, stage string, artifact any) {
	if p.catalog == nil {
		return
	}
	err := p.catalog.Record(ctx, domain.CatalogEntry{
		RunID:        p.run.RunID,
		RunTimestamp: p.run.Timestamp,
		Stage:        stage,
		Artifact:     artifact,
		RecordedAt:   p.now(),
	})
	if err != nil {
		p.obs.LogError("catalog_record_failed", err,
			ports.Field{Key: "catalog", Value: p.catalog.Name()},
			ports.Field{Key: "stage", Value: stage},
		)
	}
}
