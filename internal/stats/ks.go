// Package stats implements the two-sample Kolmogorov-Smirnov test used for
// drift detection.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// exactLimit is the largest sample size for which the exact Smirnov
// distribution is used; beyond it the asymptotic Kolmogorov distribution
// takes over.
const exactLimit = 10000

// KSResult is the outcome of a two-sided two-sample test.
type KSResult struct {
	Statistic float64
	PValue    float64
}

// KolmogorovSmirnov2 compares the empirical distributions of a and b.
// Inputs are not modified. When either sample is empty both fields are NaN.
func KolmogorovSmirnov2(a, b []float64) KSResult {
	if len(a) == 0 || len(b) == 0 {
		return KSResult{Statistic: math.NaN(), PValue: math.NaN()}
	}
	x := sortedCopy(a)
	y := sortedCopy(b)

	d := stat.KolmogorovSmirnov(x, nil, y, nil)
	n, m := len(x), len(y)

	var p float64
	if n <= exactLimit && m <= exactLimit {
		p = 1 - smirnovCDF(d, n, m)
	} else {
		en := math.Sqrt(float64(n) * float64(m) / float64(n+m))
		p = kolmogorovQ(en * d)
	}
	return KSResult{Statistic: d, PValue: clamp01(p)}
}

// smirnovCDF returns P(D < d) for samples of size m and n without ties.
// It walks the m x n lattice carrying the probability that a uniformly
// random path reaches each point without leaving the band |i/m - j/n| <= q,
// so every cell stays within [0, 1] for any sample size.
func smirnovCDF(d float64, m, n int) float64 {
	if m > n {
		m, n = n, m
	}
	md, nd := float64(m), float64(n)
	q := (0.5 + math.Floor(d*md*nd-1e-7)) / (md * nd)
	inside := func(i, j int) bool {
		return math.Abs(float64(i)/md-float64(j)/nd) <= q
	}
	if !inside(0, 0) {
		return 0
	}

	total := m + n
	v := make([]float64, n+1)
	v[0] = 1
	for j := 1; j <= n; j++ {
		if inside(0, j) {
			v[j] = v[j-1] * float64(n-j+1) / float64(total-j+1)
		}
	}
	for i := 1; i <= m; i++ {
		down := float64(m - i + 1)
		if inside(i, 0) {
			v[0] *= down / float64(total-i+1)
		} else {
			v[0] = 0
		}
		for j := 1; j <= n; j++ {
			if !inside(i, j) {
				v[j] = 0
				continue
			}
			rem := float64(total - i - j + 1)
			v[j] = (v[j]*down + v[j-1]*float64(n-j+1)) / rem
		}
	}
	return v[n]
}

// kolmogorovQ is the survival function of the Kolmogorov distribution.
func kolmogorovQ(z float64) float64 {
	if z <= 0 {
		return 1
	}
	if z < 1.18 {
		y := math.Exp(-1.23370055013616983 / (z * z))
		cdf := 2.25675833419102515 * math.Sqrt(-math.Log(y)) *
			(y + math.Pow(y, 9) + math.Pow(y, 25) + math.Pow(y, 49))
		return 1 - cdf
	}
	x := math.Exp(-2 * z * z)
	return 2 * (x - math.Pow(x, 4) + math.Pow(x, 9))
}

func sortedCopy(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	sort.Float64s(out)
	return out
}

func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
