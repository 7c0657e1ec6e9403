package pipeline

import (
	"context"
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/arrayio"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

func TestTrainingPipelineEndToEnd(t *testing.T) {
	cfg, run := testConfig(t)
	obs := newMockObs()
	cat := &mockCatalog{}
	p := NewTrainingPipeline(cfg, run, &stubSource{tbl: syntheticTable(t)}, numericSchema(t, "f1", "f2", "Result"), cat, obs)

	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if res.RunID != run.RunID {
		t.Fatalf("expected run id %s, got %s", run.RunID, res.RunID)
	}
	if len(res.Validation.SchemaErrors) != 0 {
		t.Fatalf("unexpected schema errors %v", res.Validation.SchemaErrors)
	}

	report, err := ReadDriftReport(res.Validation.DriftReportFilePath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(report) != 3 {
		t.Fatalf("expected a report entry per column, got %v", report)
	}
	if res.Validation.ValidationStatus != (report.Drifted() == 0) {
		t.Fatalf("status %v does not match %d drifted columns", res.Validation.ValidationStatus, report.Drifted())
	}

	train, err := arrayio.Load(res.Transformation.TransformedTrainFilePath)
	if err != nil {
		t.Fatalf("load train: %v", err)
	}
	test, err := arrayio.Load(res.Transformation.TransformedTestFilePath)
	if err != nil {
		t.Fatalf("load test: %v", err)
	}
	trainRows, cols := train.Dims()
	testRows, _ := test.Dims()
	if trainRows+testRows != 100 || cols != 3 {
		t.Fatalf("unexpected shapes %dx%d and %d rows", trainRows, cols, testRows)
	}
	for _, m := range []*mat.Dense{train, test} {
		rows, _ := m.Dims()
		for i := 0; i < rows; i++ {
			if y := m.At(i, 2); y != 0 && y != 1 {
				t.Fatalf("target %v outside {0,1}", y)
			}
		}
	}
	if obs.counters[ports.MetricValuesImputed] != 1 {
		t.Fatalf("expected the single na cell imputed, got %v", obs.counters[ports.MetricValuesImputed])
	}

	wantStages := []string{domain.StageIngestion, domain.StageValidation, domain.StageTransformation}
	if len(cat.entries) != len(wantStages) {
		t.Fatalf("expected %d catalog entries, got %d", len(wantStages), len(cat.entries))
	}
	for i, e := range cat.entries {
		if e.Stage != wantStages[i] || e.RunID != run.RunID || e.RunTimestamp != run.Timestamp {
			t.Fatalf("unexpected catalog entry %+v", e)
		}
	}
}

func TestTrainingPipelineStopsAtFirstFailure(t *testing.T) {
	cfg, run := testConfig(t)
	cat := &mockCatalog{}
	obs := newMockObs()
	p := NewTrainingPipeline(cfg, run, &stubSource{err: errors.New("down")}, numericSchema(t, "a"), cat, obs)

	res, err := p.Run(context.Background())
	if err == nil {
		t.Fatalf("expected failure")
	}
	if res.Ingestion.TrainFilePath != "" || len(cat.entries) != 0 {
		t.Fatalf("no artifact may be recorded after a failed stage")
	}
	if len(obs.errors) != 1 || obs.errors[0] != "data_ingestion_failed" {
		t.Fatalf("expected one logged stage failure, got %v", obs.errors)
	}
}

func TestTrainingPipelineCatalogErrorIsNotFatal(t *testing.T) {
	cfg, run := testConfig(t)
	cat := &mockCatalog{err: errors.New("catalog down")}
	obs := newMockObs()
	p := NewTrainingPipeline(cfg, run, &stubSource{tbl: syntheticTable(t)}, numericSchema(t, "f1", "f2", "Result"), cat, obs)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("catalog failures must not fail the run: %v", err)
	}
	if len(obs.errors) != 3 {
		t.Fatalf("expected one logged catalog failure per stage, got %v", obs.errors)
	}
}
