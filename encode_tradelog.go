package trade

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ygoncloud/YG-trade/date"
)

// The trade log is a flat append-only CSV. Buys fill the bought columns,
// sells the sold columns; both keep the reason that triggered the order.

var tradeLogHeader = []string{
	"Date", "Ticker", "Shares Bought", "Buy Price", "Cost Basis", "PnL",
	"Reason", "Shares Sold", "Sell Price",
}

// TradeLogRecord is one executed order in the trade log.
type TradeLogRecord struct {
	Date      date.Date
	Ticker    string
	Shares    Quantity
	Price     Money
	CostBasis Money
	PnL       Money
	Reason    string
	Sell      bool
}

// NewTradeLogRecord converts an executed fill into its log record.
func NewTradeLogRecord(day date.Date, f Fill) TradeLogRecord {
	return TradeLogRecord{
		Date:      day,
		Ticker:    f.Ticker,
		Shares:    f.Shares,
		Price:     f.Price.Round(),
		CostBasis: f.Cost,
		PnL:       f.PnL,
		Reason:    f.Reason,
		Sell:      f.Sell,
	}
}

// EncodeTradeLog writes the full trade log CSV.
func EncodeTradeLog(w io.Writer, records []TradeLogRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tradeLogHeader); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{r.Date.String(), r.Ticker, "", "", "", "", r.Reason, "", ""}
		if r.Sell {
			rec[4] = r.CostBasis.Plain()
			rec[5] = r.PnL.Plain()
			rec[7] = r.Shares.String()
			rec[8] = r.Price.Plain()
		} else {
			rec[2] = r.Shares.String()
			rec[3] = r.Price.Plain()
			rec[4] = r.CostBasis.Plain()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTradeLog reads the trade log CSV. An empty reader yields no records.
func DecodeTradeLog(r io.Reader, currency string) ([]TradeLogRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trade log csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	get := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	var out []TradeLogRecord
	for _, rec := range records[1:] {
		d, err := date.Parse(get(rec, "Date"))
		if err != nil {
			return nil, fmt.Errorf("invalid trade log date %q: %w", get(rec, "Date"), err)
		}
		row := TradeLogRecord{
			Date:      d,
			Ticker:    get(rec, "Ticker"),
			CostBasis: csvMoney(get(rec, "Cost Basis"), currency),
			Reason:    get(rec, "Reason"),
		}
		if s := get(rec, "Shares Sold"); s != "" {
			row.Sell = true
			if row.Shares, err = ParseQuantity(s); err != nil {
				return nil, fmt.Errorf("invalid sold share count %q: %w", s, err)
			}
			row.Price = csvMoney(get(rec, "Sell Price"), currency)
			row.PnL = csvMoney(get(rec, "PnL"), currency)
		} else {
			if s := get(rec, "Shares Bought"); s != "" {
				if row.Shares, err = ParseQuantity(s); err != nil {
					return nil, fmt.Errorf("invalid bought share count %q: %w", s, err)
				}
			}
			row.Price = csvMoney(get(rec, "Buy Price"), currency)
		}
		out = append(out, row)
	}
	return out, nil
}
