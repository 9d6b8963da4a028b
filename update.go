package trade

import (
	"math"

	"github.com/ygoncloud/YG-trade/date"
	"github.com/ygoncloud/YG-trade/marketdata"
)

// Quoter is the slice of the market data fetcher the portfolio needs.
// *marketdata.Fetcher satisfies it.
type Quoter interface {
	Fetch(ticker string, w date.Window, opt marketdata.Options) marketdata.Result
	FetchRecent(ticker string, days int, opt marketdata.Options) marketdata.Result
}

// ProcessDay marks every position to market for the given trading day and
// sweeps stop losses. A position whose session low touched its stop is sold
// in full, at the open when the session gapped below the stop, otherwise at
// the stop itself. Positions without quotes are carried unchanged with a NO
// DATA row. The returned snapshot ends with the day's TOTAL row; fills
// record the triggered sells for the trade log.
func ProcessDay(ledger *Ledger, q Quoter, day date.Date, opt marketdata.Options) ([]SnapshotRow, []Fill) {
	var rows []SnapshotRow
	var fills []Fill

	for _, p := range ledger.Positions() {
		res := q.FetchRecent(p.Ticker, 1, opt)
		bar, ok := lastBar(res)
		if !ok {
			rows = append(rows, SnapshotRow{
				Date:         day,
				Ticker:       p.Ticker,
				Shares:       p.Shares,
				BuyPrice:     p.BuyPrice,
				CostBasis:    p.CostBasis,
				StopLoss:     p.StopLoss,
				CurrentPrice: math.NaN(),
				TotalValue:   math.NaN(),
				PnL:          math.NaN(),
				Action:       "NO DATA",
			})
			continue
		}

		open := bar.Open
		if math.IsNaN(open) {
			open = bar.Close
		}

		if p.HasStop() && !math.IsNaN(bar.Low) && bar.Low <= p.StopLoss.AsFloat() {
			price := p.StopLoss
			if open <= p.StopLoss.AsFloat() {
				price = M(open, ledger.cash.Currency())
			}
			fill, err := ledger.fillSell(p.Ticker, p.Shares, price.Round(), "AUTOMATED SELL - STOPLOSS TRIGGERED")
			if err == nil {
				fills = append(fills, fill)
				rows = append(rows, SnapshotRow{
					Date:         day,
					Ticker:       p.Ticker,
					Shares:       fill.Shares,
					BuyPrice:     p.BuyPrice,
					CostBasis:    p.CostBasis,
					StopLoss:     p.StopLoss,
					CurrentPrice: fill.Price.AsFloat(),
					TotalValue:   fill.Price.Mul(fill.Shares).Round().AsFloat(),
					PnL:          fill.PnL.AsFloat(),
					Action:       "SELL - Stop Loss Triggered",
				})
				continue
			}
		}

		price := M(bar.Close, ledger.cash.Currency()).Round()
		rows = append(rows, SnapshotRow{
			Date:         day,
			Ticker:       p.Ticker,
			Shares:       p.Shares,
			BuyPrice:     p.BuyPrice,
			CostBasis:    p.CostBasis,
			StopLoss:     p.StopLoss,
			CurrentPrice: price.AsFloat(),
			TotalValue:   price.Mul(p.Shares).Round().AsFloat(),
			PnL:          price.Sub(p.BuyPrice).Mul(p.Shares).Round().AsFloat(),
			Action:       "HOLD",
		})
	}

	rows = append(rows, totalRow(day, rows, ledger.cash))
	return rows, fills
}

// lastBar picks the most recent bar with a usable close.
func lastBar(res marketdata.Result) (marketdata.Row, bool) {
	for i := len(res.Rows) - 1; i >= 0; i-- {
		if !math.IsNaN(res.Rows[i].Close) {
			return res.Rows[i], true
		}
	}
	return marketdata.Row{}, false
}

// totalRow sums the day's held positions into the TOTAL row. Stop sells
// already moved their proceeds to cash, so only HOLD rows count.
func totalRow(day date.Date, rows []SnapshotRow, cash Money) SnapshotRow {
	var value, pnl float64
	for _, r := range rows {
		if r.Action != "HOLD" {
			continue
		}
		value += r.TotalValue
		pnl += r.PnL
	}
	return SnapshotRow{
		Date:        day,
		Ticker:      "TOTAL",
		TotalValue:  value,
		PnL:         pnl,
		CashBalance: cash.Round(),
		TotalEquity: cash.Add(M(value, cash.Currency())).Round(),
	}
}
