package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SaiBhavadeesh/network-security/internal/adapters/arrayio"
	"github.com/SaiBhavadeesh/network-security/internal/adapters/csvstore"
	"github.com/SaiBhavadeesh/network-security/internal/app/config"
	"github.com/SaiBhavadeesh/network-security/internal/dataprep"
	"github.com/SaiBhavadeesh/network-security/internal/domain"
	"github.com/SaiBhavadeesh/network-security/internal/failure"
	"github.com/SaiBhavadeesh/network-security/internal/ports"
)

type Transformation struct {
	cfg config.TransformationConfig
	obs ports.Observability
}

func NewTransformation(cfg config.TransformationConfig, obs ports.Observability) *Transformation {
	return &Transformation{cfg: cfg, obs: obs}
}

// Run imputes the validated splits with a KNN imputer fit on train only and
// writes [features..., target] arrays plus the fitted imputer.
func (s *Transformation) Run(ctx context.Context, in domain.ValidationArtifact) (domain.TransformationArtifact, error) {
	start := time.Now()
	art, err := s.run(ctx, in)
	s.obs.ObserveLatency(ports.StageDurationMetric(domain.StageTransformation), time.Since(start).Seconds())
	if err != nil {
		s.obs.IncCounter(ports.MetricStageFailures, 1)
		return domain.TransformationArtifact{}, failure.Wrap(domain.StageTransformation, err)
	}
	return art, nil
}

func (s *Transformation) run(ctx context.Context, in domain.ValidationArtifact) (domain.TransformationArtifact, error) {
	train, err := csvstore.Read(in.ValidTrainFilePath)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("read validated train: %w", err)
	}
	test, err := csvstore.Read(in.ValidTestFilePath)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("read validated test: %w", err)
	}

	yTrain, trainFeat, err := splitTarget(train, s.cfg.TargetColumn)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("train: %w", err)
	}
	yTest, testFeat, err := splitTarget(test, s.cfg.TargetColumn)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("test: %w", err)
	}
	if err := sameFeatures(trainFeat.Columns, testFeat.Columns); err != nil {
		return domain.TransformationArtifact{}, err
	}

	features := trainFeat.Columns
	xTrain, err := featureMatrix(trainFeat, features)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("train: %w", err)
	}
	xTest, err := featureMatrix(testFeat, features)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("test: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.TransformationArtifact{}, err
	}

	marker, err := s.cfg.MissingMarker()
	if err != nil {
		return domain.TransformationArtifact{}, err
	}
	imputer, err := dataprep.NewKNNImputer(s.cfg.NNeighbors, dataprep.Weighting(s.cfg.Weights), marker)
	if err != nil {
		return domain.TransformationArtifact{}, err
	}
	if err := imputer.Fit(features, xTrain); err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("fit imputer: %w", err)
	}
	trainOut, trainFilled, err := imputer.Transform(xTrain)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("impute train: %w", err)
	}
	testOut, testFilled, err := imputer.Transform(xTest)
	if err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("impute test: %w", err)
	}
	s.obs.IncCounter(ports.MetricValuesImputed, float64(trainFilled+testFilled))

	if err := saveArray(s.cfg.TrainArrayPath, trainOut, yTrain); err != nil {
		return domain.TransformationArtifact{}, err
	}
	if err := saveArray(s.cfg.TestArrayPath, testOut, yTest); err != nil {
		return domain.TransformationArtifact{}, err
	}
	if err := imputer.Save(s.cfg.ObjectPath); err != nil {
		return domain.TransformationArtifact{}, fmt.Errorf("save imputer: %w", err)
	}

	s.obs.LogInfo("data_transformation_completed",
		ports.Field{Key: "features", Value: len(features)},
		ports.Field{Key: "imputed", Value: trainFilled + testFilled},
	)
	return domain.TransformationArtifact{
		TransformedTrainFilePath:  s.cfg.TrainArrayPath,
		TransformedTestFilePath:   s.cfg.TestArrayPath,
		TransformedObjectFilePath: s.cfg.ObjectPath,
	}, nil
}

// splitTarget separates the label column, mapping the -1 class to 0.
// Missing labels stay NaN.
func splitTarget(t *domain.Table, target string) ([]float64, *domain.Table, error) {
	if t.ColumnIndex(target) < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingTarget, target)
	}
	y, err := t.Floats(target)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNonNumeric, err)
	}
	for i, v := range y {
		if v == -1 {
			y[i] = 0
		}
	}
	return y, t.DropColumn(target), nil
}

func sameFeatures(train, test []string) error {
	a := append([]string(nil), train...)
	b := append([]string(nil), test...)
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		return fmt.Errorf("%w: train has %d features, test has %d", ErrShapeMismatch, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("%w: %q vs %q", ErrShapeMismatch, a[i], b[i])
		}
	}
	return nil
}

// featureMatrix returns row-major values in the given column order.
func featureMatrix(t *domain.Table, columns []string) ([][]float64, error) {
	cols := make([][]float64, len(columns))
	for j, name := range columns {
		if !t.IsNumeric(t.ColumnIndex(name)) {
			return nil, fmt.Errorf("%w: %q", ErrNonNumeric, name)
		}
		v, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		cols[j] = v
	}
	rows := make([][]float64, t.Len())
	for i := range rows {
		r := make([]float64, len(columns))
		for j := range columns {
			r[j] = cols[j][i]
		}
		rows[i] = r
	}
	return rows, nil
}

func saveArray(path string, features [][]float64, target []float64) error {
	rows := make([][]float64, len(features))
	for i, f := range features {
		r := make([]float64, 0, len(f)+1)
		r = append(r, f...)
		rows[i] = append(r, target[i])
	}
	m, err := arrayio.FromRows(rows)
	if err != nil {
		return fmt.Errorf("build array %s: %w", path, err)
	}
	return arrayio.Save(path, m)
}
