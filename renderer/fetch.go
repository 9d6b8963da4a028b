package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/ygoncloud/YG-trade/marketdata"
)

// FetchMarkdown renders the raw rows of a market data lookup, with the
// provider that served them.
func FetchMarkdown(ticker string, r marketdata.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Price Data %s", ticker))
	if r.IsEmpty() {
		doc.PlainText("No provider returned data.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("Source: %s", r.Source))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.Date.String(),
			float(row.Open, 2),
			float(row.High, 2),
			float(row.Low, 2),
			float(row.Close, 2),
			float(row.AdjClose, 2),
			volume(row.Volume),
		})
	}
	doc.Table(table)

	return doc.String()
}
