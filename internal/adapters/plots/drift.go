// Package plots renders drift diagnostics with gonum/plot.
package plots

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"regexp"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const bins = 20

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// DriftHistogram overlays the normalized train and test distributions of one
// column and saves them as a PNG under dir. It returns the written path.
func DriftHistogram(dir, column string, train, test []float64, pValue float64) (string, error) {
	if len(train) == 0 || len(test) == 0 {
		return "", errors.New("plots: both samples must be non-empty")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (KS p=%.4g)", column, pValue)
	p.X.Label.Text = column
	p.Y.Label.Text = "Density"

	trainHist, err := plotter.NewHist(plotter.Values(train), bins)
	if err != nil {
		return "", fmt.Errorf("train histogram: %w", err)
	}
	trainHist.Normalize(1)
	trainHist.FillColor = color.RGBA{B: 255, R: 50, G: 50, A: 120}
	p.Add(trainHist)

	testHist, err := plotter.NewHist(plotter.Values(test), bins)
	if err != nil {
		return "", fmt.Errorf("test histogram: %w", err)
	}
	testHist.Normalize(1)
	testHist.FillColor = color.RGBA{R: 255, A: 120}
	p.Add(testHist)

	p.Legend.Add("train", trainHist)
	p.Legend.Add("test", testHist)
	p.Legend.Top = true

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, unsafeName.ReplaceAllString(column, "_")+".png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", err
	}
	return path, nil
}
