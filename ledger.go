package trade

import (
	"fmt"
	"strings"
)

// Position is one open holding: a share count, the average buy price, the
// accumulated cost basis, and an optional stop-loss level (zero means none).
type Position struct {
	Ticker    string
	Shares    Quantity
	StopLoss  Money
	BuyPrice  Money
	CostBasis Money
}

// HasStop reports whether a stop-loss level is set.
func (p Position) HasStop() bool { return !p.StopLoss.IsZero() }

// MarketValue returns the position value at the given price per share.
func (p Position) MarketValue(price Money) Money { return price.Mul(p.Shares) }

// UnrealizedPnL returns the gain at the given price per share.
func (p Position) UnrealizedPnL(price Money) Money {
	return price.Sub(p.BuyPrice).Mul(p.Shares)
}

// Ledger is the current portfolio state: open positions in entry order plus
// the cash balance. It is loaded from the latest snapshot day of the
// portfolio CSV and written back as a new snapshot.
type Ledger struct {
	positions []*Position
	index     map[string]*Position
	cash      Money
}

// NewLedger returns an empty ledger holding only cash.
func NewLedger(cash Money) *Ledger {
	return &Ledger{index: make(map[string]*Position), cash: cash}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// Len returns the number of open positions.
func (l *Ledger) Len() int { return len(l.positions) }

// Get returns the position for a ticker, or false.
func (l *Ledger) Get(ticker string) (Position, bool) {
	p, ok := l.index[strings.ToUpper(ticker)]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns a copy of the open positions, in entry order.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	return out
}

// credit and debit move cash.

func (l *Ledger) credit(m Money) { l.cash = l.cash.Add(m) }

func (l *Ledger) debit(m Money) error {
	if m.GreaterThan(l.cash) {
		return fmt.Errorf("cost %s exceeds cash balance %s", m, l.cash)
	}
	l.cash = l.cash.Sub(m)
	return nil
}

// addShares merges a fill into the position for the ticker, creating it if
// needed. Repeated buys average into the buy price; the newest stop wins.
func (l *Ledger) addShares(ticker string, shares Quantity, price, cost, stop Money) {
	ticker = strings.ToUpper(ticker)
	p, ok := l.index[ticker]
	if !ok {
		p = &Position{Ticker: ticker, Shares: shares, StopLoss: stop, BuyPrice: price, CostBasis: cost}
		l.positions = append(l.positions, p)
		l.index[ticker] = p
		return
	}
	p.Shares = p.Shares.Add(shares)
	p.CostBasis = p.CostBasis.Add(cost)
	if !p.Shares.IsZero() {
		p.BuyPrice = p.CostBasis.Div(p.Shares)
	}
	p.StopLoss = stop
}

// removeShares takes shares out of a position. A full sell removes the row;
// a partial sell keeps the buy price and recomputes the cost basis.
func (l *Ledger) removeShares(ticker string, shares Quantity) error {
	ticker = strings.ToUpper(ticker)
	p, ok := l.index[ticker]
	if !ok {
		return fmt.Errorf("ticker %s not in portfolio", ticker)
	}
	if shares.GreaterThan(p.Shares) {
		return fmt.Errorf("trying to sell %s shares but only own %s", shares, p.Shares)
	}
	if shares.Equal(p.Shares) {
		delete(l.index, ticker)
		for i, q := range l.positions {
			if q == p {
				l.positions = append(l.positions[:i], l.positions[i+1:]...)
				break
			}
		}
		return nil
	}
	p.Shares = p.Shares.Sub(shares)
	p.CostBasis = p.BuyPrice.Mul(p.Shares)
	return nil
}
