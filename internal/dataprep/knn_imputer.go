package dataprep

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// Weighting selects how donor values are averaged.
type Weighting string

const (
	Uniform  Weighting = "uniform"
	Distance Weighting = "distance"
)

// ErrNotFitted is returned when Transform or Save run before Fit.
var ErrNotFitted = errors.New("dataprep: imputer not fitted")

// KNNImputer fills missing values with the mean of the k nearest training
// rows that observe the missing feature, measured by nan-euclidean distance.
// Only Fit changes its state; Transform never reads the rows it imputes back
// into the model.
type KNNImputer struct {
	NNeighbors   int
	Weights      Weighting
	MissingValue float64 // NaN marks missing by default

	Features []string
	FitX     [][]float64
	Means    []float64
	Fitted   bool
}

// NewKNNImputer configures an unfitted imputer.
func NewKNNImputer(k int, w Weighting, missing float64) (*KNNImputer, error) {
	if k < 1 {
		return nil, fmt.Errorf("dataprep: n_neighbors must be >= 1, got %d", k)
	}
	switch w {
	case Uniform, Distance:
	default:
		return nil, fmt.Errorf("dataprep: unknown weighting %q", w)
	}
	return &KNNImputer{NNeighbors: k, Weights: w, MissingValue: missing}, nil
}

func (m *KNNImputer) isMissing(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return !math.IsNaN(m.MissingValue) && v == m.MissingValue
}

// Fit stores a NaN-normalized copy of X and the per-feature means. A feature
// with no observed value is kept rather than dropped, so the output width
// always equals the input width, and its cells are imputed with 0.
func (m *KNNImputer) Fit(features []string, X [][]float64) error {
	if len(X) == 0 {
		return errors.New("dataprep: cannot fit imputer on zero rows")
	}
	width := len(features)
	fit := make([][]float64, len(X))
	sums := make([]float64, width)
	counts := make([]int, width)
	for i, row := range X {
		if len(row) != width {
			return fmt.Errorf("dataprep: fit row %d has %d values, expected %d", i, len(row), width)
		}
		cp := make([]float64, width)
		for j, v := range row {
			if m.isMissing(v) {
				cp[j] = math.NaN()
				continue
			}
			cp[j] = v
			sums[j] += v
			counts[j]++
		}
		fit[i] = cp
	}
	means := make([]float64, width)
	for j := range means {
		if counts[j] > 0 {
			means[j] = sums[j] / float64(counts[j])
		}
	}

	m.Features = append([]string(nil), features...)
	m.FitX = fit
	m.Means = means
	m.Fitted = true
	return nil
}

// Transform returns an imputed copy of X and the number of filled cells.
func (m *KNNImputer) Transform(X [][]float64) ([][]float64, int, error) {
	if !m.Fitted {
		return nil, 0, ErrNotFitted
	}
	width := len(m.Features)
	out := make([][]float64, len(X))
	filled := 0
	for i, row := range X {
		if len(row) != width {
			return nil, 0, fmt.Errorf("dataprep: row %d has %d values, imputer expects %d", i, len(row), width)
		}
		cp := make([]float64, width)
		copy(cp, row)

		var dists []float64
		for j, v := range cp {
			if !m.isMissing(v) {
				continue
			}
			if dists == nil {
				dists = m.distances(row)
			}
			cp[j] = m.impute(j, dists)
			filled++
		}
		out[i] = cp
	}
	return out, filled, nil
}

// distances returns the nan-euclidean distance from row to every fit row:
// sqrt(width/present * sum of squared differences over coordinates observed
// in both). Rows sharing no observed coordinate get NaN.
func (m *KNNImputer) distances(row []float64) []float64 {
	width := float64(len(m.Features))
	out := make([]float64, len(m.FitX))
	for d, donor := range m.FitX {
		var sum float64
		present := 0
		for j, v := range row {
			if m.isMissing(v) || math.IsNaN(donor[j]) {
				continue
			}
			diff := v - donor[j]
			sum += diff * diff
			present++
		}
		if present == 0 {
			out[d] = math.NaN()
			continue
		}
		out[d] = math.Sqrt(width / float64(present) * sum)
	}
	return out
}

type donor struct {
	dist  float64
	value float64
}

func (m *KNNImputer) impute(col int, dists []float64) float64 {
	donors := make([]donor, 0, len(m.FitX))
	for d, fitRow := range m.FitX {
		if math.IsNaN(fitRow[col]) || math.IsNaN(dists[d]) {
			continue
		}
		donors = append(donors, donor{dist: dists[d], value: fitRow[col]})
	}
	if len(donors) == 0 {
		return m.Means[col]
	}
	sort.SliceStable(donors, func(a, b int) bool { return donors[a].dist < donors[b].dist })
	if len(donors) > m.NNeighbors {
		donors = donors[:m.NNeighbors]
	}

	if m.Weights == Distance {
		return weightedMean(donors)
	}
	var sum float64
	for _, d := range donors {
		sum += d.value
	}
	return sum / float64(len(donors))
}

// weightedMean uses 1/dist weights; exact matches, when present, take all
// the weight equally.
func weightedMean(donors []donor) float64 {
	var exact, exactN float64
	for _, d := range donors {
		if d.dist == 0 {
			exact += d.value
			exactN++
		}
	}
	if exactN > 0 {
		return exact / exactN
	}
	var num, den float64
	for _, d := range donors {
		w := 1 / d.dist
		num += w * d.value
		den += w
	}
	return num / den
}

// MarshalBinary implements encoding.BinaryMarshaler using gob.
func (m *KNNImputer) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(imputerState(*m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler using gob.
func (m *KNNImputer) UnmarshalBinary(data []byte) error {
	var st imputerState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return err
	}
	*m = KNNImputer(st)
	return nil
}

// imputerState drops the methods so gob does not recurse into MarshalBinary.
type imputerState KNNImputer

// Save writes the fitted imputer to path, creating parent directories.
func (m *KNNImputer) Save(path string) error {
	if !m.Fitted {
		return ErrNotFitted
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode imputer: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// LoadImputer reads an imputer written by Save.
func LoadImputer(path string) (*KNNImputer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m KNNImputer
	if err := m.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decode imputer: %w", err)
	}
	return &m, nil
}
