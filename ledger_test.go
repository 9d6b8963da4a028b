package trade

import (
	"testing"
)

func TestLedgerBuyMergesIntoAverageCost(t *testing.T) {
	l := NewLedger(M(1000, "USD"))

	l.addShares("abc", Q(10), M(10, "USD"), M(100, "USD"), M(9, "USD"))
	l.addShares("ABC", Q(10), M(12, "USD"), M(120, "USD"), M(11, "USD"))

	p, ok := l.Get("ABC")
	if !ok {
		t.Fatal("ABC not in ledger")
	}
	if !p.Shares.Equal(Q(20)) {
		t.Errorf("shares = %s, want 20", p.Shares)
	}
	if !p.CostBasis.Equal(M(220, "USD")) {
		t.Errorf("cost basis = %s, want 220", p.CostBasis.Plain())
	}
	if !p.BuyPrice.Equal(M(11, "USD")) {
		t.Errorf("buy price = %s, want 11", p.BuyPrice.Plain())
	}
	// newest stop wins
	if !p.StopLoss.Equal(M(11, "USD")) {
		t.Errorf("stop loss = %s, want 11", p.StopLoss.Plain())
	}
	if l.Len() != 1 {
		t.Errorf("positions = %d, want 1", l.Len())
	}
}

func TestLedgerPartialSellKeepsBuyPrice(t *testing.T) {
	l := NewLedger(M(0, "USD"))
	l.addShares("ABC", Q(10), M(10, "USD"), M(100, "USD"), Money{})

	if err := l.removeShares("ABC", Q(4)); err != nil {
		t.Fatalf("removeShares: %v", err)
	}
	p, _ := l.Get("ABC")
	if !p.Shares.Equal(Q(6)) {
		t.Errorf("shares = %s, want 6", p.Shares)
	}
	if !p.BuyPrice.Equal(M(10, "USD")) {
		t.Errorf("buy price = %s, want 10", p.BuyPrice.Plain())
	}
	if !p.CostBasis.Equal(M(60, "USD")) {
		t.Errorf("cost basis = %s, want 60", p.CostBasis.Plain())
	}
}

func TestLedgerFullSellRemovesPosition(t *testing.T) {
	l := NewLedger(M(0, "USD"))
	l.addShares("ABC", Q(10), M(10, "USD"), M(100, "USD"), Money{})
	l.addShares("XYZ", Q(5), M(20, "USD"), M(100, "USD"), Money{})

	if err := l.removeShares("ABC", Q(10)); err != nil {
		t.Fatalf("removeShares: %v", err)
	}
	if _, ok := l.Get("ABC"); ok {
		t.Error("ABC still in ledger after full sell")
	}
	if l.Len() != 1 {
		t.Errorf("positions = %d, want 1", l.Len())
	}
	if _, ok := l.Get("XYZ"); !ok {
		t.Error("XYZ evicted by ABC's sell")
	}
}

func TestLedgerRejectsOversellAndUnknown(t *testing.T) {
	l := NewLedger(M(0, "USD"))
	l.addShares("ABC", Q(10), M(10, "USD"), M(100, "USD"), Money{})

	if err := l.removeShares("ABC", Q(11)); err == nil {
		t.Error("oversell accepted")
	}
	if err := l.removeShares("ZZZ", Q(1)); err == nil {
		t.Error("sell of unknown ticker accepted")
	}
}

func TestLedgerDebitChecksBalance(t *testing.T) {
	l := NewLedger(M(100, "USD"))
	if err := l.debit(M(150, "USD")); err == nil {
		t.Error("overdraft accepted")
	}
	if err := l.debit(M(100, "USD")); err != nil {
		t.Errorf("exact debit rejected: %v", err)
	}
	if !l.Cash().IsZero() {
		t.Errorf("cash = %s, want 0", l.Cash().Plain())
	}
}
