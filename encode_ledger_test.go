package trade

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ygoncloud/YG-trade/date"
)

func TestSnapshotsRoundTrip(t *testing.T) {
	day := date.MustParse("2024-08-09")
	rows := []SnapshotRow{
		{
			Date: day, Ticker: "ABC", Shares: Q(10),
			BuyPrice: M(10, "USD"), CostBasis: M(100, "USD"), StopLoss: M(9, "USD"),
			CurrentPrice: 11, TotalValue: 110, PnL: 10, Action: "HOLD",
		},
		{
			Date: day, Ticker: "NOD", Shares: Q(2),
			BuyPrice: M(5, "USD"), CostBasis: M(10, "USD"),
			CurrentPrice: math.NaN(), TotalValue: math.NaN(), PnL: math.NaN(), Action: "NO DATA",
		},
		{
			Date: day, Ticker: "TOTAL", TotalValue: 110, PnL: 10,
			CashBalance: M(890, "USD"), TotalEquity: M(1000, "USD"),
		},
	}

	var buf bytes.Buffer
	if err := EncodeSnapshots(&buf, rows); err != nil {
		t.Fatalf("EncodeSnapshots: %v", err)
	}

	got, err := DecodeSnapshots(&buf, "USD")
	if err != nil {
		t.Fatalf("DecodeSnapshots: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("decoded %d rows, want 3", len(got))
	}

	abc := got[0]
	if abc.Ticker != "ABC" || !abc.Shares.Equal(Q(10)) || abc.Action != "HOLD" {
		t.Errorf("ABC row = %+v", abc)
	}
	if !abc.BuyPrice.Equal(M(10, "USD")) || !abc.StopLoss.Equal(M(9, "USD")) {
		t.Errorf("ABC prices = buy %s stop %s", abc.BuyPrice.Plain(), abc.StopLoss.Plain())
	}
	if abc.CurrentPrice != 11 || abc.TotalValue != 110 {
		t.Errorf("ABC price/value = %v/%v", abc.CurrentPrice, abc.TotalValue)
	}

	nod := got[1]
	if !math.IsNaN(nod.CurrentPrice) || !math.IsNaN(nod.TotalValue) || !math.IsNaN(nod.PnL) {
		t.Errorf("NO DATA cells decoded as numbers: %+v", nod)
	}
	if !nod.StopLoss.IsZero() {
		t.Errorf("absent stop decoded as %s", nod.StopLoss.Plain())
	}

	total := got[2]
	if !total.IsTotal() {
		t.Fatal("third row is not the TOTAL row")
	}
	if !total.CashBalance.Equal(M(890, "USD")) || !total.TotalEquity.Equal(M(1000, "USD")) {
		t.Errorf("TOTAL cash/equity = %s/%s", total.CashBalance.Plain(), total.TotalEquity.Plain())
	}
}

func TestDecodeSnapshotsEmpty(t *testing.T) {
	got, err := DecodeSnapshots(strings.NewReader(""), "USD")
	if err != nil {
		t.Fatalf("DecodeSnapshots: %v", err)
	}
	if got != nil {
		t.Errorf("got %d rows from empty input", len(got))
	}
}

func TestReplaceDay(t *testing.T) {
	d1 := date.MustParse("2024-08-08")
	d2 := date.MustParse("2024-08-09")
	rows := []SnapshotRow{
		{Date: d1, Ticker: "ABC"},
		{Date: d1, Ticker: "TOTAL"},
		{Date: d2, Ticker: "ABC", Action: "stale"},
		{Date: d2, Ticker: "TOTAL", Action: "stale"},
	}
	fresh := []SnapshotRow{
		{Date: d2, Ticker: "ABC", Action: "HOLD"},
		{Date: d2, Ticker: "TOTAL"},
	}
	got := ReplaceDay(rows, d2, fresh)
	if len(got) != 4 {
		t.Fatalf("got %d rows, want 4", len(got))
	}
	for _, r := range got {
		if r.Action == "stale" {
			t.Error("stale row for the replaced day survived")
		}
	}
	if got[0].Date != d1 || got[2].Date != d2 {
		t.Errorf("row order broken: %v then %v", got[0].Date, got[2].Date)
	}
}

func TestLatestLedger(t *testing.T) {
	d1 := date.MustParse("2024-08-08")
	d2 := date.MustParse("2024-08-09")
	rows := []SnapshotRow{
		// older day must be ignored entirely
		{Date: d1, Ticker: "OLD", Shares: Q(99), BuyPrice: M(1, "USD"), CostBasis: M(99, "USD"), Action: "HOLD"},
		{Date: d1, Ticker: "TOTAL", CashBalance: M(1, "USD"), TotalEquity: M(100, "USD")},

		{Date: d2, Ticker: "ABC", Shares: Q(10), BuyPrice: M(10, "USD"), CostBasis: M(100, "USD"), StopLoss: M(9, "USD"), Action: "HOLD"},
		{Date: d2, Ticker: "GONE", Shares: Q(5), BuyPrice: M(20, "USD"), CostBasis: M(100, "USD"), Action: "SELL - Stop Loss Triggered"},
		{Date: d2, Ticker: "TOTAL", CashBalance: M(890, "USD"), TotalEquity: M(1000, "USD")},
	}

	ledger, last, err := LatestLedger(rows, M(0, "USD"))
	if err != nil {
		t.Fatalf("LatestLedger: %v", err)
	}
	if last != d2 {
		t.Errorf("latest day = %v, want %v", last, d2)
	}
	if !ledger.Cash().Equal(M(890, "USD")) {
		t.Errorf("cash = %s, want 890", ledger.Cash().Plain())
	}
	if l := ledger.Len(); l != 1 {
		t.Fatalf("positions = %d, want 1", l)
	}
	if _, ok := ledger.Get("GONE"); ok {
		t.Error("sold position resurrected")
	}
	p, _ := ledger.Get("ABC")
	if !p.StopLoss.Equal(M(9, "USD")) {
		t.Errorf("stop = %s, want 9", p.StopLoss.Plain())
	}
}

func TestLatestLedgerEmptyHistory(t *testing.T) {
	ledger, last, err := LatestLedger(nil, M(100, "USD"))
	if err != nil {
		t.Fatalf("LatestLedger: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("latest day = %v, want zero", last)
	}
	if !ledger.Cash().Equal(M(100, "USD")) {
		t.Errorf("cash = %s, want starting 100", ledger.Cash().Plain())
	}
}

func TestEquityHistory(t *testing.T) {
	rows := []SnapshotRow{
		{Date: date.MustParse("2024-08-08"), Ticker: "ABC"},
		{Date: date.MustParse("2024-08-08"), Ticker: "TOTAL", TotalEquity: M(100, "USD")},
		{Date: date.MustParse("2024-08-09"), Ticker: "TOTAL", TotalEquity: M(110, "USD")},
	}
	h := EquityHistory(rows)
	if h.Len() != 2 {
		t.Fatalf("history len = %d, want 2", h.Len())
	}
	day, v := h.Latest()
	if day != date.MustParse("2024-08-09") || v != 110 {
		t.Errorf("latest = %v %v, want 2024-08-09 110", day, v)
	}
}
