package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/ygoncloud/YG-trade"
)

// LogMarkdown renders the trade log, newest first.
func LogMarkdown(records []trade.TradeLogRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trade Log")
	if len(records) == 0 {
		doc.PlainText("No trades recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Ticker", "Side", "Shares", "Price", "PnL", "Reason"},
	}
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		side, pnl := "BUY", ""
		if r.Sell {
			side, pnl = "SELL", r.PnL.SignedString()
		}
		table.Rows = append(table.Rows, []string{
			r.Date.String(), r.Ticker, side, r.Shares.String(), r.Price.String(), pnl, r.Reason,
		})
	}
	doc.Table(table)

	return doc.String()
}
