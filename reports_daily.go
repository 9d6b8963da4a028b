package trade

import (
	"math"

	"github.com/ygoncloud/YG-trade/date"
	"github.com/ygoncloud/YG-trade/marketdata"
)

// DailyReport is the end-of-session summary: a price and volume table for
// the held tickers and configured benchmarks, the holdings snapshot, and the
// risk and return metrics computed from the equity history.
type DailyReport struct {
	Date     date.Date
	Currency string

	Quotes   []QuoteLine
	Holdings []HoldingLine

	Cash    Money
	Equity  Money
	Metrics Metrics

	CAPMBenchmark  string
	StartingEquity float64
}

// QuoteLine is one row of the price and volume table. OK is false when the
// ticker had fewer than two sessions of data in the window.
type QuoteLine struct {
	Ticker string
	Close  float64
	Change Percent
	Volume float64
	Source marketdata.Source
	OK     bool
}

// HoldingLine is one open position marked at the latest available close.
type HoldingLine struct {
	Position
	Price Money
	Value Money
	PnL   Money
}

// NewDailyReport assembles the report for the last trading day on or before
// the clock's today. Quotes are fetched over a five calendar day window so
// two sessions survive weekends and single holidays.
func NewDailyReport(cfg *Config, ledger *Ledger, snapshots []SnapshotRow, q Quoter, clock date.Clock, opt marketdata.Options) *DailyReport {
	day := date.LastTradingDay(clock.Today())
	window := date.NewWindow(day.Add(-4), day.Add(1))

	r := &DailyReport{
		Date:           day,
		Currency:       cfg.Currency,
		Cash:           ledger.Cash().Round(),
		CAPMBenchmark:  cfg.CAPMBenchmark,
		StartingEquity: cfg.StartingEquity,
	}

	closes := make(map[string]float64)
	var tickers []string
	for _, p := range ledger.Positions() {
		tickers = append(tickers, p.Ticker)
	}
	tickers = append(tickers, cfg.Benchmarks...)
	for _, ticker := range tickers {
		line := QuoteLine{Ticker: ticker, Close: math.NaN(), Volume: math.NaN()}
		res := q.Fetch(ticker, window, opt)
		if len(res.Rows) >= 2 {
			last := res.Rows[len(res.Rows)-1]
			prev := res.Rows[len(res.Rows)-2]
			line.Close = last.Close
			line.Volume = last.Volume
			line.Change = PercentOfRatio(last.Close/prev.Close - 1)
			line.Source = res.Source
			line.OK = !math.IsNaN(last.Close) && !math.IsNaN(prev.Close) && prev.Close != 0
		}
		r.Quotes = append(r.Quotes, line)
		if line.OK {
			closes[ticker] = line.Close
		}
	}

	value := M(0, cfg.Currency)
	for _, p := range ledger.Positions() {
		line := HoldingLine{Position: p}
		if c, ok := closes[p.Ticker]; ok {
			line.Price = M(c, cfg.Currency).Round()
			line.Value = line.Price.Mul(p.Shares).Round()
			line.PnL = line.Price.Sub(p.BuyPrice).Mul(p.Shares).Round()
			value = value.Add(line.Value)
		}
		r.Holdings = append(r.Holdings, line)
	}
	r.Equity = r.Cash.Add(value)

	equity := EquityHistory(snapshots)
	benchmark := &date.History[float64]{}
	if equity.Len() > 0 {
		first, _ := equity.Oldest()
		last, _ := equity.Latest()
		res := q.Fetch(cfg.CAPMBenchmark, date.NewWindow(first.Add(-1), last.Add(2)), opt)
		for _, row := range res.Rows {
			if !math.IsNaN(row.Close) {
				benchmark.Append(row.Date, row.Close)
			}
		}
	}
	r.Metrics = ComputeMetrics(equity, benchmark, cfg.RiskFreeRate, cfg.StartingEquity)
	return r
}
