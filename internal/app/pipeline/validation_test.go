package pipeline

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/failure"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
	"github.com/SaiBhavadeesh/network-security/internal/stats"
)

// driftCSVs writes train (80 rows) and test (20 rows) where "same" follows
// one distribution in both and "shifted" moves by 50 in test.
func driftCSVs(t *testing.T, dir string) domain.IngestionArtifact {
	t.Helper()
	var train, test strings.Builder
	train.WriteString("same,shifted\n")
	test.WriteString("same,shifted\n")
	for i := 0; i < 80; i++ {
		v := strconv.Itoa(i % 10)
		train.WriteString(v + "," + v + "\n")
	}
	for i := 0; i < 20; i++ {
		v := i % 10
		test.WriteString(strconv.Itoa(v) + "," + strconv.Itoa(v+50) + "\n")
	}
	return domain.IngestionArtifact{
		TrainFilePath: writeFile(t, filepath.Join(dir, "train.csv"), train.String()),
		TestFilePath:  writeFile(t, filepath.Join(dir, "test.csv"), test.String()),
	}
}

func TestValidationFlagsShiftedColumn(t *testing.T) {
	cfg, run := testConfig(t)
	vcfg := config.NewValidationConfig(run, cfg)
	obs := newMockObs()
	in := driftCSVs(t, t.TempDir())

	art, err := NewValidation(vcfg, numericSchema(t, "same", "shifted"), obs).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("validation: %v", err)
	}
	report, err := ReadDriftReport(art.DriftReportFilePath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !report["shifted"].DriftDetected {
		t.Fatalf("expected shifted column to drift, got %+v", report["shifted"])
	}
	if report["same"].DriftDetected {
		t.Fatalf("expected same column not to drift, got %+v", report["same"])
	}
	if art.ValidationStatus {
		t.Fatalf("validation status must be false when a column drifted")
	}
	if art.ValidationStatus != (report.Drifted() == 0) {
		t.Fatalf("status does not match drifted count")
	}
	if art.ValidTrainFilePath != vcfg.ValidTrainPath || !fileExists(art.ValidTestFilePath) {
		t.Fatalf("expected validated copies at the validation paths, got %+v", art)
	}
	if art.InvalidTrainFilePath != nil || art.InvalidTestFilePath != nil {
		t.Fatalf("expected no invalid paths")
	}
	if obs.counters[ports.MetricDriftedColumns] != 1 || obs.gauges[ports.MetricValidationState] != 0 {
		t.Fatalf("unexpected metrics %+v %+v", obs.counters, obs.gauges)
	}
}

func TestValidationStatusTrueWithoutDrift(t *testing.T) {
	cfg, run := testConfig(t)
	dir := t.TempDir()
	body := "a\n1\n2\n3\n4\n"
	in := domain.IngestionArtifact{
		TrainFilePath: writeFile(t, filepath.Join(dir, "train.csv"), body),
		TestFilePath:  writeFile(t, filepath.Join(dir, "test.csv"), body),
	}
	art, err := NewValidation(config.NewValidationConfig(run, cfg), numericSchema(t, "a"), newMockObs()).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("validation: %v", err)
	}
	if !art.ValidationStatus || len(art.SchemaErrors) != 0 {
		t.Fatalf("expected clean validation, got %+v", art)
	}
}

func TestValidationPermissivePolicyContinues(t *testing.T) {
	cfg, run := testConfig(t)
	obs := newMockObs()
	in := driftCSVs(t, t.TempDir())

	// The schema declares a third column the data does not have.
	art, err := NewValidation(config.NewValidationConfig(run, cfg), numericSchema(t, "same", "shifted", "extra"), obs).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("permissive validation must not fail: %v", err)
	}
	if len(art.SchemaErrors) != 3 {
		t.Fatalf("expected train count, test count and numeric set errors, got %v", art.SchemaErrors)
	}
	if !fileExists(art.ValidTrainFilePath) {
		t.Fatalf("expected validated train to be written")
	}
	if len(obs.errors) != 3 {
		t.Fatalf("expected every check failure logged, got %v", obs.errors)
	}
}

func TestValidationStrictPolicyFails(t *testing.T) {
	cfg, run := testConfig(t)
	cfg.Validation.Policy = config.PolicyStrict
	vcfg := config.NewValidationConfig(run, cfg)
	in := driftCSVs(t, t.TempDir())

	_, err := NewValidation(vcfg, numericSchema(t, "same", "shifted", "extra"), newMockObs()).Run(context.Background(), in)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if stage, ok := failure.StageOf(err); !ok || stage != domain.StageValidation {
		t.Fatalf("expected tagged validation error, got %v", err)
	}
	if !fileExists(vcfg.InvalidTrainPath) || !fileExists(vcfg.InvalidTestPath) {
		t.Fatalf("expected invalid copies written")
	}
	if fileExists(vcfg.ValidTrainPath) || fileExists(vcfg.DriftReportPath) {
		t.Fatalf("strict failure must not produce validated output")
	}
}

func TestValidationStrictPolicyPassesMatchingSchema(t *testing.T) {
	cfg, run := testConfig(t)
	cfg.Validation.Policy = config.PolicyStrict
	in := driftCSVs(t, t.TempDir())

	art, err := NewValidation(config.NewValidationConfig(run, cfg), numericSchema(t, "shifted", "same"), newMockObs()).Run(context.Background(), in)
	if err != nil {
		t.Fatalf("strict validation with matching schema: %v", err)
	}
	if len(art.SchemaErrors) != 0 {
		t.Fatalf("unexpected schema errors %v", art.SchemaErrors)
	}
}

func TestValidationPlotsDriftedColumns(t *testing.T) {
	cfg, run := testConfig(t)
	cfg.Validation.PlotDrift = true
	vcfg := config.NewValidationConfig(run, cfg)
	in := driftCSVs(t, t.TempDir())

	if _, err := NewValidation(vcfg, numericSchema(t, "same", "shifted"), newMockObs()).Run(context.Background(), in); err != nil {
		t.Fatalf("validation: %v", err)
	}
	if !fileExists(filepath.Join(vcfg.PlotDir(), "shifted.png")) {
		t.Fatalf("expected a plot for the drifted column")
	}
	if fileExists(filepath.Join(vcfg.PlotDir(), "same.png")) {
		t.Fatalf("did not expect a plot for a stable column")
	}
}

func mustTable(t *testing.T, cols []string, rows ...[]string) *domain.Table {
	t.Helper()
	tbl, err := domain.NewTable(cols, rows)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return tbl
}

func TestDetectDriftIgnoresColumnOrder(t *testing.T) {
	train := mustTable(t, []string{"a", "b"}, []string{"1", "10"}, []string{"2", "20"}, []string{"3", ""}, []string{"4", "40"})
	test := mustTable(t, []string{"a", "b"}, []string{"9", "10"}, []string{"8", "30"}, []string{"7", "20"})
	permTrain := mustTable(t, []string{"b", "a"}, []string{"10", "1"}, []string{"20", "2"}, []string{"", "3"}, []string{"40", "4"})
	permTest := mustTable(t, []string{"b", "a"}, []string{"10", "9"}, []string{"30", "8"}, []string{"20", "7"})

	base, err := DetectDrift(train, test, 0.05)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	for _, pair := range [][2]*domain.Table{{permTrain, test}, {train, permTest}, {permTrain, permTest}} {
		got, err := DetectDrift(pair[0], pair[1], 0.05)
		if err != nil {
			t.Fatalf("drift: %v", err)
		}
		if !reflect.DeepEqual(base, got) {
			t.Fatalf("report depends on column order: %+v vs %+v", base, got)
		}
	}
}

func TestDetectDriftErrors(t *testing.T) {
	train := mustTable(t, []string{"a", "b"}, []string{"1", "x"})
	if _, err := DetectDrift(train, mustTable(t, []string{"a"}, []string{"1"}), 0.05); !errors.Is(err, ErrColumnMissing) {
		t.Fatalf("expected ErrColumnMissing, got %v", err)
	}
	if _, err := DetectDrift(train, mustTable(t, []string{"a", "b"}, []string{"1", "y"}), 0.05); !errors.Is(err, ErrNonNumeric) {
		t.Fatalf("expected ErrNonNumeric, got %v", err)
	}
}

func TestDetectDriftEmptySideDrifts(t *testing.T) {
	train := mustTable(t, []string{"a"}, []string{"1"}, []string{"2"})
	test := mustTable(t, []string{"a"}, []string{""})
	report, err := DetectDrift(train, test, 0.05)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if !report["a"].DriftDetected {
		t.Fatalf("undefined p-value must count as drift")
	}
}

func TestDetectDriftThresholdIsStrict(t *testing.T) {
	train := mustTable(t, []string{"a"}, []string{"1"}, []string{"2"}, []string{"3"}, []string{"4"}, []string{"5"})
	test := mustTable(t, []string{"a"}, []string{"4"}, []string{"5"}, []string{"6"}, []string{"7"}, []string{"8"})
	p := stats.KolmogorovSmirnov2([]float64{1, 2, 3, 4, 5}, []float64{4, 5, 6, 7, 8}).PValue
	if !(p > 0 && p < 1) {
		t.Fatalf("expected an interior p-value, got %v", p)
	}

	report, err := DetectDrift(train, test, p)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if report["a"].DriftDetected {
		t.Fatalf("p equal to the threshold must not count as drift")
	}
	report, err = DetectDrift(train, test, math.Nextafter(p, 1))
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if !report["a"].DriftDetected {
		t.Fatalf("p just below the threshold must count as drift")
	}
}

func TestDriftReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift_report", "report.yaml")
	want := domain.DriftReport{
		"having_IP_Address": {PValue: 0.731, DriftDetected: false},
		"URL_Length":        {PValue: 0.0012, DriftDetected: true},
	}
	if err := WriteDriftReport(path, domain.DriftReport{"stale": {PValue: 1}}); err != nil {
		t.Fatalf("write stale report: %v", err)
	}
	if err := WriteDriftReport(path, want); err != nil {
		t.Fatalf("write report: %v", err)
	}
	got, err := ReadDriftReport(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch: %+v vs %+v", want, got)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "drift_detected: true") || !strings.Contains(string(raw), "p_value:") {
		t.Fatalf("unexpected report layout:\n%s", raw)
	}
}
