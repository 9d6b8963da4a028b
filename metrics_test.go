package trade

import (
	"math"
	"testing"

	"github.com/ygoncloud/YG-trade/date"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) != math.IsNaN(want) || math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func equitySeries(start string, values ...float64) *date.History[float64] {
	h := &date.History[float64]{}
	d := date.MustParse(start)
	for i, v := range values {
		h.Append(d.Add(i), v)
	}
	return h
}

func TestReturns(t *testing.T) {
	h := equitySeries("2024-08-05", 100, 110, 99)
	r := Returns(h)
	if r.Len() != 2 {
		t.Fatalf("returns len = %d, want 2", r.Len())
	}
	v, _ := r.Get(date.MustParse("2024-08-06"))
	approx(t, "first return", v, 0.1, 1e-12)
	v, _ = r.Get(date.MustParse("2024-08-07"))
	approx(t, "second return", v, -0.1, 1e-12)
}

func TestMaxDrawdown(t *testing.T) {
	h := equitySeries("2024-08-05", 100, 110, 99, 105)
	dd, day := MaxDrawdown(h)
	approx(t, "max drawdown", dd, 99.0/110.0-1, 1e-12)
	if day != date.MustParse("2024-08-07") {
		t.Errorf("drawdown date = %v, want 2024-08-07", day)
	}
}

func TestMaxDrawdownMonotonicSeries(t *testing.T) {
	h := equitySeries("2024-08-05", 100, 105, 110)
	dd, _ := MaxDrawdown(h)
	approx(t, "max drawdown", dd, 0, 1e-12)
}

func TestComputeMetricsRatios(t *testing.T) {
	// zero risk-free rate keeps the arithmetic checkable by hand
	h := equitySeries("2024-08-05", 100, 110, 99)
	m := ComputeMetrics(h, &date.History[float64]{}, 0, math.NaN())

	if m.NDays != 2 {
		t.Fatalf("NDays = %d, want 2", m.NDays)
	}
	approx(t, "FinalEquity", m.FinalEquity, 99, 1e-12)
	approx(t, "PeriodReturn", m.PeriodReturn, -0.01, 1e-12)

	// mean 0, sample std sqrt(0.02)
	std := math.Sqrt(0.02)
	approx(t, "SharpePeriod", m.SharpePeriod, -0.01/(std*math.Sqrt(2)), 1e-12)
	approx(t, "SharpeAnnual", m.SharpeAnnual, 0, 1e-12)

	// downside deviation sqrt(0.01/2)
	dd := math.Sqrt(0.005)
	approx(t, "SortinoPeriod", m.SortinoPeriod, -0.01/(dd*math.Sqrt(2)), 1e-12)

	// no benchmark: CAPM and normalization stay NaN
	if !math.IsNaN(m.Beta) || !math.IsNaN(m.BenchmarkValue) {
		t.Errorf("benchmark-free metrics leaked: beta %v, value %v", m.Beta, m.BenchmarkValue)
	}
}

func TestComputeMetricsShortSample(t *testing.T) {
	h := equitySeries("2024-08-05", 100)
	m := ComputeMetrics(h, &date.History[float64]{}, DefaultRiskFreeRate, 100)
	approx(t, "FinalEquity", m.FinalEquity, 100, 1e-12)
	if !math.IsNaN(m.SharpePeriod) || !math.IsNaN(m.PeriodReturn) {
		t.Errorf("single-point series produced ratios: %+v", m)
	}
}

func TestComputeMetricsCAPM(t *testing.T) {
	// portfolio returns are exactly 2*market + 10bp: beta 2, perfect fit
	mktReturns := []float64{0.01, -0.02, 0.005}
	start := date.MustParse("2024-08-05")

	bench := &date.History[float64]{}
	equity := &date.History[float64]{}
	b, e := 100.0, 100.0
	bench.Append(start, b)
	equity.Append(start, e)
	for i, rm := range mktReturns {
		b *= 1 + rm
		e *= 1 + (2*rm + 0.001)
		bench.Append(start.Add(i+1), b)
		equity.Append(start.Add(i+1), e)
	}

	m := ComputeMetrics(equity, bench, 0, 100)
	if m.NObs != 3 {
		t.Fatalf("NObs = %d, want 3", m.NObs)
	}
	approx(t, "Beta", m.Beta, 2, 1e-9)
	approx(t, "AlphaAnnual", m.AlphaAnnual, math.Pow(1.001, 252)-1, 1e-6)
	approx(t, "R2", m.R2, 1, 1e-9)
	if !m.Unstable() {
		t.Error("3 observations should flag the fit as unstable")
	}

	_, lastClose := bench.Latest()
	approx(t, "BenchmarkValue", m.BenchmarkValue, 100/100.0*lastClose, 1e-9)
}

func TestLeastSquares(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{3, 5, 7, 9} // y = 2x + 1
	slope, intercept := leastSquares(x, y)
	approx(t, "slope", slope, 2, 1e-12)
	approx(t, "intercept", intercept, 1, 1e-12)
}

func TestUnstable(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		want bool
	}{
		{"long clean sample", Metrics{NObs: 100, R2: 0.5}, false},
		{"short sample", Metrics{NObs: 10, R2: 0.9}, true},
		{"low r2", Metrics{NObs: 100, R2: 0.1}, true},
		{"nan r2 long sample", Metrics{NObs: 100, R2: math.NaN()}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Unstable(); got != tc.want {
				t.Errorf("Unstable() = %v, want %v", got, tc.want)
			}
		})
	}
}
