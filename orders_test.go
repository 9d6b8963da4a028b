package trade

import (
	"errors"
	"math"
	"testing"

	"github.com/ygoncloud/YG-trade/marketdata"
)

func bar(open, high, low, close float64) marketdata.Row {
	return marketdata.Row{Open: open, High: high, Low: low, Close: close}
}

func TestBuyMOO(t *testing.T) {
	l := NewLedger(M(1000, "USD"))

	fill, err := l.BuyMOO("abc", Q(10), M(9, "USD"), bar(10, 12, 9.5, 11))
	if err != nil {
		t.Fatalf("BuyMOO: %v", err)
	}
	if !fill.Price.Equal(M(10, "USD")) {
		t.Errorf("fill price = %s, want open 10", fill.Price.Plain())
	}
	if !l.Cash().Equal(M(900, "USD")) {
		t.Errorf("cash = %s, want 900", l.Cash().Plain())
	}
	p, _ := l.Get("ABC")
	if !p.Shares.Equal(Q(10)) || !p.StopLoss.Equal(M(9, "USD")) {
		t.Errorf("position = %+v, want 10 shares stop 9", p)
	}
}

func TestBuyMOOFallsBackToClose(t *testing.T) {
	l := NewLedger(M(1000, "USD"))
	fill, err := l.BuyMOO("ABC", Q(10), Money{}, bar(math.NaN(), 12, 9.5, 11))
	if err != nil {
		t.Fatalf("BuyMOO: %v", err)
	}
	if !fill.Price.Equal(M(11, "USD")) {
		t.Errorf("fill price = %s, want close 11", fill.Price.Plain())
	}
}

func TestBuyMOORejectsInsufficientCash(t *testing.T) {
	l := NewLedger(M(50, "USD"))
	if _, err := l.BuyMOO("ABC", Q(10), Money{}, bar(10, 12, 9.5, 11)); err == nil {
		t.Error("buy exceeding cash accepted")
	}
	if !l.Cash().Equal(M(50, "USD")) {
		t.Errorf("cash changed on rejected buy: %s", l.Cash().Plain())
	}
	if l.Len() != 0 {
		t.Error("position created on rejected buy")
	}
}

func TestBuyLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     float64
		bar       marketdata.Row
		wantPrice float64
		notFilled bool
	}{
		{"gap below limit fills at open", 10.5, bar(10, 12, 9.5, 11), 10, false},
		{"touch during session fills at limit", 9.8, bar(10, 12, 9.5, 11), 9.8, false},
		{"never reached", 9, bar(10, 12, 9.5, 11), 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(M(1000, "USD"))
			fill, err := l.BuyLimit("ABC", Q(10), M(tc.limit, "USD"), Money{}, tc.bar)
			if tc.notFilled {
				if !errors.Is(err, ErrNotFilled) {
					t.Fatalf("err = %v, want ErrNotFilled", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuyLimit: %v", err)
			}
			if !fill.Price.Equal(M(tc.wantPrice, "USD")) {
				t.Errorf("fill price = %s, want %v", fill.Price.Plain(), tc.wantPrice)
			}
		})
	}
}

func TestSellLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     float64
		bar       marketdata.Row
		wantPrice float64
		notFilled bool
	}{
		{"gap above limit fills at open", 9.5, bar(10, 12, 9.5, 11), 10, false},
		{"touch during session fills at limit", 11.5, bar(10, 12, 9.5, 11), 11.5, false},
		{"never reached", 12.5, bar(10, 12, 9.5, 11), 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(M(1000, "USD"))
			l.addShares("ABC", Q(10), M(8, "USD"), M(80, "USD"), Money{})
			fill, err := l.SellLimit("ABC", Q(10), M(tc.limit, "USD"), tc.bar)
			if tc.notFilled {
				if !errors.Is(err, ErrNotFilled) {
					t.Fatalf("err = %v, want ErrNotFilled", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SellLimit: %v", err)
			}
			if !fill.Price.Equal(M(tc.wantPrice, "USD")) {
				t.Errorf("fill price = %s, want %v", fill.Price.Plain(), tc.wantPrice)
			}
			if !fill.Sell {
				t.Error("sell fill not flagged as sell")
			}
		})
	}
}

func TestSellLimitCreditsProceedsAndPnL(t *testing.T) {
	l := NewLedger(M(100, "USD"))
	l.addShares("ABC", Q(10), M(8, "USD"), M(80, "USD"), Money{})

	fill, err := l.SellLimit("ABC", Q(4), M(9, "USD"), bar(10, 12, 9.5, 11))
	if err != nil {
		t.Fatalf("SellLimit: %v", err)
	}
	// gap above the limit, filled at the open
	if !fill.Price.Equal(M(10, "USD")) {
		t.Fatalf("fill price = %s, want 10", fill.Price.Plain())
	}
	if !fill.PnL.Equal(M(8, "USD")) {
		t.Errorf("pnl = %s, want (10-8)*4 = 8", fill.PnL.Plain())
	}
	if !l.Cash().Equal(M(140, "USD")) {
		t.Errorf("cash = %s, want 140", l.Cash().Plain())
	}
	p, _ := l.Get("ABC")
	if !p.Shares.Equal(Q(6)) {
		t.Errorf("shares = %s, want 6", p.Shares)
	}
}

func TestSellLimitRejectsOversell(t *testing.T) {
	l := NewLedger(M(0, "USD"))
	l.addShares("ABC", Q(10), M(8, "USD"), M(80, "USD"), Money{})
	if _, err := l.SellLimit("ABC", Q(11), M(9, "USD"), bar(10, 12, 9.5, 11)); err == nil {
		t.Error("oversell accepted")
	}
	if _, err := l.SellLimit("ZZZ", Q(1), M(9, "USD"), bar(10, 12, 9.5, 11)); err == nil {
		t.Error("sell of unknown ticker accepted")
	}
}
