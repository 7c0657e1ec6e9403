package stats

import (
	"math"
	"math/rand"
	"testing"
)

func TestKolmogorovSmirnov2Separated(t *testing.T) {
	// scipy.stats.ks_2samp([1, 2, 3], [4, 5, 6]) -> statistic 1.0, pvalue 0.1
	res := KolmogorovSmirnov2([]float64{1, 2, 3}, []float64{4, 5, 6})
	if res.Statistic != 1 {
		t.Fatalf("expected statistic 1, got %f", res.Statistic)
	}
	if math.Abs(res.PValue-0.1) > 1e-9 {
		t.Fatalf("expected p-value 0.1, got %f", res.PValue)
	}
}

func TestKolmogorovSmirnov2Identical(t *testing.T) {
	a := []float64{3, 1, 2, 5, 4}
	res := KolmogorovSmirnov2(a, a)
	if res.Statistic != 0 {
		t.Fatalf("expected statistic 0, got %f", res.Statistic)
	}
	if res.PValue != 1 {
		t.Fatalf("expected p-value 1, got %f", res.PValue)
	}
	if a[0] != 3 {
		t.Fatalf("input was reordered")
	}
}

func TestKolmogorovSmirnov2Empty(t *testing.T) {
	res := KolmogorovSmirnov2(nil, []float64{1})
	if !math.IsNaN(res.PValue) || !math.IsNaN(res.Statistic) {
		t.Fatalf("expected NaN result, got %+v", res)
	}
}

func TestKolmogorovSmirnov2ShiftDetected(t *testing.T) {
	base := make([]float64, 80)
	same := make([]float64, 20)
	shifted := make([]float64, 20)
	for i := range base {
		base[i] = (float64(i) + 0.5) / 80
	}
	for i := range same {
		same[i] = (float64(i) + 0.5) / 20
		shifted[i] = same[i] + 5
	}

	if res := KolmogorovSmirnov2(base, shifted); res.PValue >= 0.05 {
		t.Fatalf("expected shifted sample to drift, p=%f", res.PValue)
	}
	if res := KolmogorovSmirnov2(base, same); res.PValue < 0.05 {
		t.Fatalf("expected same-distribution sample not to drift, p=%f", res.PValue)
	}
}

func TestKolmogorovSmirnov2ExactMidSize(t *testing.T) {
	// Exact integer path count: D = 1/5, p = 0.04338097851149257. The
	// asymptotic approximation would report roughly 0.05 here.
	a := make([]float64, 200)
	b := make([]float64, 60)
	for i := range a {
		a[i] = float64(i) + 0.25
	}
	for j := range b {
		b[j] = 40 + float64(j)*2.5 + 0.1
	}
	res := KolmogorovSmirnov2(a, b)
	if math.Abs(res.Statistic-0.2) > 1e-12 {
		t.Fatalf("expected statistic 0.2, got %v", res.Statistic)
	}
	if math.Abs(res.PValue-0.04338097851149257) > 1e-9 {
		t.Fatalf("expected exact p-value 0.043381, got %v", res.PValue)
	}
}

func TestKolmogorovSmirnov2ExactLargeSamples(t *testing.T) {
	train := make([]float64, 8844)
	for i := range train {
		train[i] = float64(i)
	}
	apart := make([]float64, 2211)
	near := make([]float64, 2211)
	for j := range apart {
		apart[j] = 20000 + float64(j)
		near[j] = 4*float64(j) + 0.5
	}

	if res := KolmogorovSmirnov2(train, apart); res.Statistic != 1 || res.PValue > 1e-9 {
		t.Fatalf("expected disjoint samples to give p~0, got %+v", res)
	}
	if res := KolmogorovSmirnov2(train, near); res.PValue < 0.99 {
		t.Fatalf("expected interleaved samples to give p~1, got %+v", res)
	}
}

func TestKolmogorovSmirnov2Asymptotic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := make([]float64, exactLimit+1)
	b := make([]float64, 200)
	for i := range a {
		a[i] = rng.Float64()
	}
	for i := range b {
		b[i] = rng.Float64() + 0.5
	}
	res := KolmogorovSmirnov2(a, b)
	if res.PValue < 0 || res.PValue > 1e-6 {
		t.Fatalf("expected tiny p-value on large shifted samples, got %g", res.PValue)
	}
}

func TestKolmogorovQBounds(t *testing.T) {
	if q := kolmogorovQ(0); q != 1 {
		t.Fatalf("expected Q(0)=1, got %f", q)
	}
	// Q(1.36) is the classical 5% critical value.
	if q := kolmogorovQ(1.36); math.Abs(q-0.05) > 0.002 {
		t.Fatalf("expected Q(1.36)~0.05, got %f", q)
	}
}
