package trade

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/ygoncloud/YG-trade/date"
)

// The portfolio file is an append-only CSV of daily snapshots. Each day
// contributes one row per holding plus a TOTAL row carrying the cash balance
// and total equity. Re-running a day replaces that day's rows.

var snapshotHeader = []string{
	"Date", "Ticker", "Shares", "Buy Price", "Cost Basis", "Stop Loss",
	"Current Price", "Total Value", "PnL", "Action", "Cash Balance", "Total Equity",
}

// SnapshotRow is one line of the portfolio CSV. Price, value and pnl are NaN
// when the day's quotes were unavailable; cash and equity are only set on the
// TOTAL row.
type SnapshotRow struct {
	Date         date.Date
	Ticker       string
	Shares       Quantity
	BuyPrice     Money
	CostBasis    Money
	StopLoss     Money
	CurrentPrice float64
	TotalValue   float64
	PnL          float64
	Action       string
	CashBalance  Money
	TotalEquity  Money
}

// IsTotal reports whether this is a day's TOTAL row.
func (r SnapshotRow) IsTotal() bool { return r.Ticker == "TOTAL" }

// EncodeSnapshots writes the portfolio CSV.
func EncodeSnapshots(w io.Writer, rows []SnapshotRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Date.String(),
			r.Ticker,
			"", "", "", "", "", "", "",
			r.Action,
			"", "",
		}
		if r.IsTotal() {
			rec[7] = csvFloat(r.TotalValue)
			rec[8] = csvFloat(r.PnL)
			rec[10] = r.CashBalance.Plain()
			rec[11] = r.TotalEquity.Plain()
		} else {
			rec[2] = r.Shares.String()
			rec[3] = r.BuyPrice.Plain()
			rec[4] = r.CostBasis.Plain()
			if !r.StopLoss.IsZero() {
				rec[5] = r.StopLoss.Plain()
			}
			rec[6] = csvFloat(r.CurrentPrice)
			rec[7] = csvFloat(r.TotalValue)
			rec[8] = csvFloat(r.PnL)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSnapshots reads the portfolio CSV. An empty reader yields no rows.
func DecodeSnapshots(r io.Reader, currency string) ([]SnapshotRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading portfolio csv: %w", err)
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
	var rows []SnapshotRow
	for _, rec := range records[1:] {
		d, err := date.Parse(get(rec, "Date"))
		if err != nil {
			return nil, fmt.Errorf("invalid portfolio row date %q: %w", get(rec, "Date"), err)
		}
		row := SnapshotRow{
			Date:         d,
			Ticker:       get(rec, "Ticker"),
			Action:       get(rec, "Action"),
			CurrentPrice: csvParseFloat(get(rec, "Current Price")),
			TotalValue:   csvParseFloat(get(rec, "Total Value")),
			PnL:          csvParseFloat(get(rec, "PnL")),
		}
		if row.IsTotal() {
			row.CashBalance = csvMoney(get(rec, "Cash Balance"), currency)
			row.TotalEquity = csvMoney(get(rec, "Total Equity"), currency)
		} else {
			if s := get(rec, "Shares"); s != "" {
				q, err := ParseQuantity(s)
				if err != nil {
					return nil, fmt.Errorf("invalid share count %q for %s: %w", s, row.Ticker, err)
				}
				row.Shares = q
			}
			row.BuyPrice = csvMoney(get(rec, "Buy Price"), currency)
			row.CostBasis = csvMoney(get(rec, "Cost Basis"), currency)
			row.StopLoss = csvMoney(get(rec, "Stop Loss"), currency)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReplaceDay removes any existing rows for the given day and appends the new
// ones, so re-running a day is idempotent.
func ReplaceDay(rows []SnapshotRow, day date.Date, fresh []SnapshotRow) []SnapshotRow {
	out := make([]SnapshotRow, 0, len(rows)+len(fresh))
	for _, r := range rows {
		if r.Date != day {
			out = append(out, r)
		}
	}
	return append(out, fresh...)
}

// LatestLedger rebuilds the ledger from the most recent snapshot day. Rows
// recording a sell carry no open position and are skipped. Empty history
// yields an empty ledger funded with startingCash.
func LatestLedger(rows []SnapshotRow, startingCash Money) (*Ledger, date.Date, error) {
	var last date.Date
	for _, r := range rows {
		if last.Before(r.Date) {
			last = r.Date
		}
	}
	if last.IsZero() {
		return NewLedger(startingCash), date.Date{}, nil
	}
	ledger := NewLedger(M(0, startingCash.Currency()))
	for _, r := range rows {
		if r.Date != last {
			continue
		}
		if r.IsTotal() {
			ledger.cash = r.CashBalance
			continue
		}
		if len(r.Action) >= 4 && r.Action[:4] == "SELL" {
			continue
		}
		if r.Shares.IsZero() {
			continue
		}
		ledger.addShares(r.Ticker, r.Shares, r.BuyPrice, r.CostBasis, r.StopLoss)
	}
	return ledger, last, nil
}

// EquityHistory extracts the total-equity series from the TOTAL rows.
func EquityHistory(rows []SnapshotRow) *date.History[float64] {
	h := &date.History[float64]{}
	for _, r := range rows {
		if r.IsTotal() {
			h.Append(r.Date, r.TotalEquity.AsFloat())
		}
	}
	return h
}

func csvFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func csvParseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func csvMoney(s, currency string) Money {
	if s == "" {
		return M(0, currency)
	}
	m, err := ParseMoney(s, currency)
	if err != nil {
		return M(0, currency)
	}
	return m
}
