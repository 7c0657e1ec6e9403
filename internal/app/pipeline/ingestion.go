package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvstore"
	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/dataprep"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/failure"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

// idColumn is the document key every store adds on insert.
const idColumn = "_id"

type Ingestion struct {
	cfg config.IngestionConfig
	src ports.Source
	obs ports.Observability
}

func NewIngestion(cfg config.IngestionConfig, src ports.Source, obs ports.Observability) *Ingestion {
	return &Ingestion{cfg: cfg, src: src, obs: obs}
}

// Run exports the source into the feature store and splits it into train
// and test CSVs.
func (s *Ingestion) Run(ctx context.Context) (domain.IngestionArtifact, error) {
	start := time.Now()
	art, err := s.run(ctx)
	s.obs.ObserveLatency(ports.StageDurationMetric(domain.StageIngestion), time.Since(start).Seconds())
	if err != nil {
		s.obs.IncCounter(ports.MetricStageFailures, 1)
		return domain.IngestionArtifact{}, failure.Wrap(domain.StageIngestion, err)
	}
	return art, nil
}

func (s *Ingestion) run(ctx context.Context) (domain.IngestionArtifact, error) {
	s.obs.LogInfo("data_ingestion_started", ports.Field{Key: "source", Value: s.src.Name()})

	tbl, err := s.src.Fetch(ctx)
	if err != nil {
		return domain.IngestionArtifact{}, fmt.Errorf("fetch from %s: %w", s.src.Name(), err)
	}
	if tbl == nil || tbl.Len() == 0 {
		return domain.IngestionArtifact{}, ErrEmptySource
	}
	tbl = tbl.DropColumn(idColumn)
	replaced := tbl.ReplaceLiteral("na", domain.Missing)

	if err := csvstore.Write(s.cfg.FeatureStorePath, tbl); err != nil {
		return domain.IngestionArtifact{}, fmt.Errorf("write feature store: %w", err)
	}
	s.obs.IncCounter(ports.MetricRowsIngested, float64(tbl.Len()))

	trainIdx, testIdx, err := dataprep.TrainTestSplit(tbl.Len(), s.cfg.SplitRatio, s.cfg.Seed)
	if err != nil {
		return domain.IngestionArtifact{}, err
	}
	if err := csvstore.Write(s.cfg.TrainPath, tbl.Subset(trainIdx)); err != nil {
		return domain.IngestionArtifact{}, fmt.Errorf("write train split: %w", err)
	}
	if err := csvstore.Write(s.cfg.TestPath, tbl.Subset(testIdx)); err != nil {
		return domain.IngestionArtifact{}, fmt.Errorf("write test split: %w", err)
	}
	s.obs.SetGauge(ports.MetricTrainRows, float64(len(trainIdx)))
	s.obs.SetGauge(ports.MetricTestRows, float64(len(testIdx)))

	s.obs.LogInfo("data_ingestion_completed",
		ports.Field{Key: "rows", Value: tbl.Len()},
		ports.Field{Key: "na_replaced", Value: replaced},
		ports.Field{Key: "train_rows", Value: len(trainIdx)},
		ports.Field{Key: "test_rows", Value: len(testIdx)},
	)
	return domain.IngestionArtifact{TrainFilePath: s.cfg.TrainPath, TestFilePath: s.cfg.TestPath}, nil
}
