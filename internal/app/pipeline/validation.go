package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvstore"
	"github.com/SaiBhavadeesh/network-security/internal/adapters/plots"
	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/failure"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
	"github.com/SaiBhavadeesh/network-security/internal/schema"
	"github.com/SaiBhavadeesh/network-security/internal/stats"
)

type Validation struct {
	cfg    config.ValidationConfig
	schema schema.Schema
	obs    ports.Observability
}

func NewValidation(cfg config.ValidationConfig, sc schema.Schema, obs ports.Observability) *Validation {
	return &Validation{cfg: cfg, schema: sc, obs: obs}
}

// Run checks both splits against the schema, writes the drift report and
// copies the splits to the validated (or, under a strict policy, invalid)
// location.
func (s *Validation) Run(ctx context.Context, in domain.IngestionArtifact) (domain.ValidationArtifact, error) {
	start := time.Now()
	art, err := s.run(ctx, in)
	s.obs.ObserveLatency(ports.StageDurationMetric(domain.StageValidation), time.Since(start).Seconds())
	if err != nil {
		s.obs.IncCounter(ports.MetricStageFailures, 1)
		return domain.ValidationArtifact{}, failure.Wrap(domain.StageValidation, err)
	}
	return art, nil
}

func (s *Validation) run(ctx context.Context, in domain.IngestionArtifact) (domain.ValidationArtifact, error) {
	train, err := csvstore.Read(in.TrainFilePath)
	if err != nil {
		return domain.ValidationArtifact{}, fmt.Errorf("read train split: %w", err)
	}
	test, err := csvstore.Read(in.TestFilePath)
	if err != nil {
		return domain.ValidationArtifact{}, fmt.Errorf("read test split: %w", err)
	}

	problems := s.checkSchema(train, test)
	for _, p := range problems {
		s.obs.LogError("schema_check_failed", errors.New(p), ports.Field{Key: "policy", Value: s.policy()})
	}
	if len(problems) > 0 && s.cfg.Strict {
		if err := csvstore.Write(s.cfg.InvalidTrainPath, train); err != nil {
			return domain.ValidationArtifact{}, fmt.Errorf("write invalid train: %w", err)
		}
		if err := csvstore.Write(s.cfg.InvalidTestPath, test); err != nil {
			return domain.ValidationArtifact{}, fmt.Errorf("write invalid test: %w", err)
		}
		return domain.ValidationArtifact{}, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
	}
	if err := ctx.Err(); err != nil {
		return domain.ValidationArtifact{}, err
	}

	report, err := DetectDrift(train, test, s.cfg.DriftThreshold)
	if err != nil {
		return domain.ValidationArtifact{}, err
	}
	if err := WriteDriftReport(s.cfg.DriftReportPath, report); err != nil {
		return domain.ValidationArtifact{}, err
	}
	if s.cfg.PlotDrift {
		s.plotDrift(train, test, report)
	}

	if err := csvstore.Write(s.cfg.ValidTrainPath, train); err != nil {
		return domain.ValidationArtifact{}, fmt.Errorf("write validated train: %w", err)
	}
	if err := csvstore.Write(s.cfg.ValidTestPath, test); err != nil {
		return domain.ValidationArtifact{}, fmt.Errorf("write validated test: %w", err)
	}

	drifted := report.Drifted()
	status := drifted == 0
	s.obs.IncCounter(ports.MetricDriftedColumns, float64(drifted))
	if status {
		s.obs.SetGauge(ports.MetricValidationState, 1)
	} else {
		s.obs.SetGauge(ports.MetricValidationState, 0)
	}
	s.obs.LogInfo("data_validation_completed",
		ports.Field{Key: "columns", Value: len(report)},
		ports.Field{Key: "drifted", Value: drifted},
		ports.Field{Key: "schema_errors", Value: len(problems)},
	)

	return domain.ValidationArtifact{
		ValidationStatus:    status,
		ValidTrainFilePath:  s.cfg.ValidTrainPath,
		ValidTestFilePath:   s.cfg.ValidTestPath,
		DriftReportFilePath: s.cfg.DriftReportPath,
		SchemaErrors:        problems,
	}, nil
}

func (s *Validation) policy() string {
	if s.cfg.Strict {
		return config.PolicyStrict
	}
	return config.PolicyPermissive
}

// checkSchema returns one message per failed check. Column counts are
// checked on both splits, the numeric column set on train only.
func (s *Validation) checkSchema(train, test *domain.Table) []string {
	var problems []string
	want := s.schema.ColumnCount()
	for _, split := range []struct {
		name string
		tbl  *domain.Table
	}{{"train", train}, {"test", test}} {
		if got := len(split.tbl.Columns); got != want {
			problems = append(problems, fmt.Sprintf("%s has %d columns, schema declares %d", split.name, got, want))
		}
	}
	missing, unexpected := s.schema.NumericDiff(train.NumericColumns())
	if len(missing) > 0 {
		problems = append(problems, "train lacks numeric columns "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		problems = append(problems, "train has undeclared numeric columns "+strings.Join(unexpected, ", "))
	}
	return problems
}

// DetectDrift runs a two-sample KS test per train column against the test
// column of the same name. Missing cells are skipped. A column drifts when
// its p-value is below threshold or undefined.
func DetectDrift(train, test *domain.Table, threshold float64) (domain.DriftReport, error) {
	report := make(domain.DriftReport, len(train.Columns))
	for i, col := range train.Columns {
		j := test.ColumnIndex(col)
		if j < 0 {
			return nil, fmt.Errorf("%w: %q", ErrColumnMissing, col)
		}
		if !train.IsNumeric(i) || !test.IsNumeric(j) {
			return nil, fmt.Errorf("%w: %q", ErrNonNumeric, col)
		}
		a, err := train.Observed(col)
		if err != nil {
			return nil, err
		}
		b, err := test.Observed(col)
		if err != nil {
			return nil, err
		}
		res := stats.KolmogorovSmirnov2(a, b)
		report[col] = domain.ColumnDrift{
			PValue:        res.PValue,
			DriftDetected: !(res.PValue >= threshold),
		}
	}
	return report, nil
}

// WriteDriftReport replaces any report already at path.
func WriteDriftReport(path string, report domain.DriftReport) error {
	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode drift report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// ReadDriftReport loads a report written by WriteDriftReport.
func ReadDriftReport(path string) (domain.DriftReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report domain.DriftReport
	if err := yaml.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode drift report: %w", err)
	}
	return report, nil
}

// plotDrift is best effort; a failed plot never fails the stage.
func (s *Validation) plotDrift(train, test *domain.Table, report domain.DriftReport) {
	for _, col := range train.Columns {
		d := report[col]
		if !d.DriftDetected {
			continue
		}
		a, _ := train.Observed(col)
		b, _ := test.Observed(col)
		if len(a) == 0 || len(b) == 0 {
			continue
		}
		if _, err := plots.DriftHistogram(s.cfg.PlotDir(), col, a, b, d.PValue); err != nil {
			s.obs.LogError("drift_plot_failed", err, ports.Field{Key: "column", Value: col})
		}
	}
}
