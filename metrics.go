package trade

import (
	"math"

	"github.com/ygoncloud/YG-trade/date"
)

// Default risk model: US T-bill-ish annual rate over 252 trading sessions.
const (
	DefaultRiskFreeRate = 0.045
	sessionsPerYear     = 252
)

// Metrics is the risk and return summary computed from the equity series.
// Fields that cannot be computed from the available sample are NaN.
type Metrics struct {
	FinalEquity float64

	MaxDrawdown     float64 // most negative peak-to-trough fraction
	MaxDrawdownDate date.Date

	NDays        int // return observations
	PeriodReturn float64

	SharpePeriod  float64
	SharpeAnnual  float64
	SortinoPeriod float64
	SortinoAnnual float64

	Beta        float64
	AlphaAnnual float64
	R2          float64
	NObs        int // overlapping portfolio/benchmark observations

	BenchmarkValue float64 // starting equity invested in the benchmark instead
}

// Unstable reports whether the CAPM fit rests on a sample too short or too
// noisy to trust.
func (m Metrics) Unstable() bool {
	return m.NObs < 60 || (!math.IsNaN(m.R2) && m.R2 < 0.20)
}

// Returns converts a value series into daily simple returns, keyed by the
// later session's date.
func Returns(h *date.History[float64]) *date.History[float64] {
	out := &date.History[float64]{}
	prev := math.NaN()
	for day, v := range h.Values() {
		if !math.IsNaN(prev) && prev != 0 {
			out.Append(day, v/prev-1)
		}
		prev = v
	}
	return out
}

// MaxDrawdown returns the most negative drawdown of the series and the date
// it bottomed.
func MaxDrawdown(equity *date.History[float64]) (float64, date.Date) {
	if equity.Len() == 0 {
		return math.NaN(), date.Date{}
	}
	peak := math.Inf(-1)
	worst, worstDay := 0.0, date.Date{}
	for day, v := range equity.Values() {
		if v > peak {
			peak = v
		}
		dd := v/peak - 1
		if dd < worst || worstDay.IsZero() {
			worst, worstDay = dd, day
		}
	}
	return worst, worstDay
}

// ComputeMetrics derives the full risk and return summary from the equity
// series, with CAPM regressed against the benchmark close series. The
// benchmark history and startingEquity only feed the CAPM and normalization
// figures; pass an empty history to skip them.
func ComputeMetrics(equity, benchmark *date.History[float64], rfAnnual, startingEquity float64) Metrics {
	m := Metrics{
		FinalEquity:    math.NaN(),
		MaxDrawdown:    math.NaN(),
		PeriodReturn:   math.NaN(),
		SharpePeriod:   math.NaN(),
		SharpeAnnual:   math.NaN(),
		SortinoPeriod:  math.NaN(),
		SortinoAnnual:  math.NaN(),
		Beta:           math.NaN(),
		AlphaAnnual:    math.NaN(),
		R2:             math.NaN(),
		BenchmarkValue: math.NaN(),
	}
	if equity.Len() == 0 {
		return m
	}
	_, m.FinalEquity = equity.Latest()
	m.MaxDrawdown, m.MaxDrawdownDate = MaxDrawdown(equity)

	r := Returns(equity)
	m.NDays = r.Len()
	if m.NDays < 2 {
		return m
	}

	rfDaily := math.Pow(1+rfAnnual, 1.0/sessionsPerYear) - 1
	rfPeriod := math.Pow(1+rfDaily, float64(m.NDays)) - 1

	var rs []float64
	for _, v := range r.Values() {
		rs = append(rs, v)
	}
	meanDaily := mean(rs)
	stdDaily := stddev(rs, meanDaily)

	period := 1.0
	for _, v := range rs {
		period *= 1 + v
	}
	m.PeriodReturn = period - 1

	if stdDaily > 0 {
		m.SharpePeriod = (m.PeriodReturn - rfPeriod) / (stdDaily * math.Sqrt(float64(m.NDays)))
		m.SharpeAnnual = (meanDaily - rfDaily) / stdDaily * math.Sqrt(sessionsPerYear)
	}
	if dd := downsideDeviation(rs, rfDaily); dd > 0 {
		m.SortinoPeriod = (m.PeriodReturn - rfPeriod) / (dd * math.Sqrt(float64(m.NDays)))
		m.SortinoAnnual = (meanDaily - rfDaily) / dd * math.Sqrt(sessionsPerYear)
	}

	if benchmark.Len() >= 2 {
		m.capm(r, Returns(benchmark), rfDaily)

		_, last := benchmark.Latest()
		_, first := benchmark.Oldest()
		if first > 0 && !math.IsNaN(startingEquity) {
			m.BenchmarkValue = startingEquity / first * last
		}
	}
	return m
}

// capm fits excess portfolio returns against excess market returns on the
// dates both series share.
func (m *Metrics) capm(r, mkt *date.History[float64], rfDaily float64) {
	var x, y []float64
	for day, rp := range r.Values() {
		rm, ok := mkt.Get(day)
		if !ok {
			continue
		}
		x = append(x, rm-rfDaily)
		y = append(y, rp-rfDaily)
	}
	if len(x) < 2 {
		return
	}
	m.NObs = len(x)
	if stddev(x, mean(x)) == 0 {
		return
	}
	beta, alphaDaily := leastSquares(x, y)
	m.Beta = beta
	m.AlphaAnnual = math.Pow(1+alphaDaily, sessionsPerYear) - 1
	c := correlation(x, y)
	m.R2 = c * c
}

func mean(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64, mu float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += (x - mu) * (x - mu)
	}
	return math.Sqrt(s / float64(len(xs)-1))
}

// downsideDeviation is the root mean square of returns below the minimum
// acceptable return.
func downsideDeviation(xs []float64, mar float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		if d := x - mar; d < 0 {
			s += d * d
		}
	}
	return math.Sqrt(s / float64(len(xs)))
}

// leastSquares fits y = slope*x + intercept.
func leastSquares(x, y []float64) (slope, intercept float64) {
	mx, my := mean(x), mean(y)
	var sxy, sxx float64
	for i := range x {
		sxy += (x[i] - mx) * (y[i] - my)
		sxx += (x[i] - mx) * (x[i] - mx)
	}
	if sxx == 0 {
		return 0, my
	}
	slope = sxy / sxx
	return slope, my - slope*mx
}

func correlation(x, y []float64) float64 {
	mx, my := mean(x), mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		sxy += (x[i] - mx) * (y[i] - my)
		sxx += (x[i] - mx) * (x[i] - mx)
		syy += (y[i] - my) * (y[i] - my)
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	return sxy / math.Sqrt(sxx*syy)
}
