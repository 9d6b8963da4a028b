package renderer

import (
	"bytes"
	"fmt"
	"math"

	md "github.com/nao1215/markdown"

	"github.com/ygoncloud/YG-trade"
)

// DailyMarkdown renders the daily report: quotes, risk and return metrics,
// the CAPM fit, the holdings snapshot and the standing instructions.
func DailyMarkdown(r *trade.DailyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Daily Results %s", r.Date))

	doc.H2("Price & Volume")
	quotes := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Close", "% Chg", "Volume"},
	}
	for _, q := range r.Quotes {
		if !q.OK {
			quotes.Rows = append(quotes.Rows, []string{q.Ticker, na, na, na})
			continue
		}
		quotes.Rows = append(quotes.Rows, []string{
			q.Ticker,
			float(q.Close, 2),
			q.Change.SignedString(),
			volume(q.Volume),
		})
	}
	doc.Table(quotes)

	m := r.Metrics
	doc.H2("Risk & Return")
	mdd := ratio(m.MaxDrawdown, 2)
	if !m.MaxDrawdownDate.IsZero() {
		mdd = fmt.Sprintf("%s on %s", mdd, m.MaxDrawdownDate)
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Max Drawdown", mdd},
			{"Sharpe Ratio (period)", float(m.SharpePeriod, 4)},
			{"Sharpe Ratio (annualized)", float(m.SharpeAnnual, 4)},
			{"Sortino Ratio (period)", float(m.SortinoPeriod, 4)},
			{"Sortino Ratio (annualized)", float(m.SortinoAnnual, 4)},
		},
	})

	doc.H2(fmt.Sprintf("CAPM vs %s", r.CAPMBenchmark))
	if m.NObs > 0 {
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Metric", "Value"},
			Rows: [][]string{
				{"Beta (daily)", float(m.Beta, 4)},
				{"Alpha (annualized)", ratio(m.AlphaAnnual, 2)},
				{"R² (fit quality)", float(m.R2, 3)},
				{"Observations", fmt.Sprintf("%d", m.NObs)},
			},
		})
		if m.Unstable() {
			doc.PlainText("Note: short sample and/or low R², alpha and beta may be unstable.")
		}
	} else {
		doc.PlainText("Beta/Alpha: insufficient overlapping data.")
	}

	doc.H2("Snapshot")
	snapshot := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Equity"), md.Bold(r.Equity.String())},
		Rows: [][]string{
			{"Cash Balance", r.Cash.String()},
		},
	}
	if !math.IsNaN(m.BenchmarkValue) {
		snapshot.Rows = append(snapshot.Rows, []string{
			fmt.Sprintf("%s in %s (same window)", float(r.StartingEquity, 2), r.CAPMBenchmark),
			float(m.BenchmarkValue, 2),
		})
	}
	doc.Table(snapshot)

	if len(r.Holdings) > 0 {
		doc.H2("Holdings")
		holdings := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Shares", "Buy Price", "Stop Loss", "Price", "Value", "PnL"},
		}
		for _, h := range r.Holdings {
			stop := na
			if h.HasStop() {
				stop = h.StopLoss.String()
			}
			price, value, pnl := na, na, na
			if !h.Price.IsZero() {
				price, value, pnl = h.Price.String(), h.Value.String(), h.PnL.SignedString()
			}
			holdings.Rows = append(holdings.Rows, []string{
				h.Ticker, h.Shares.String(), h.BuyPrice.String(), stop, price, value, pnl,
			})
		}
		doc.Table(holdings)
	}

	doc.H2("Your Instructions")
	doc.PlainText(
		"Use this info to make decisions regarding your portfolio. " +
			"You have complete control over every decision; make any changes you believe are beneficial. " +
			"Deep research is not permitted. " +
			"If you do not clearly indicate position changes immediately after this message, the portfolio remains unchanged for tomorrow.")

	return doc.String()
}
