package trade

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ygoncloud/YG-trade/marketdata"
)

// ErrNotFilled is returned by limit orders whose price was never touched
// during the session.
var ErrNotFilled = errors.New("limit not reached")

// Fill records an executed order, as appended to the trade log.
type Fill struct {
	Ticker string
	Shares Quantity
	Price  Money
	Cost   Money // buys: cash spent; sells: cost basis of the sold shares
	PnL    Money // sells only
	Reason string
	Sell   bool
}

// openOrClose returns the session open, falling back to the close when the
// feed has no open for the day.
func (l *Ledger) openOrClose(bar marketdata.Row) (Money, error) {
	px := bar.Open
	if math.IsNaN(px) {
		px = bar.Close
	}
	if math.IsNaN(px) || px <= 0 {
		return Money{}, errors.New("no usable session price")
	}
	return M(px, l.cash.Currency()), nil
}

// BuyMOO executes a market-on-open buy at the session open, debiting cash and
// merging the shares into the position.
func (l *Ledger) BuyMOO(ticker string, shares Quantity, stop Money, bar marketdata.Row) (Fill, error) {
	price, err := l.openOrClose(bar)
	if err != nil {
		return Fill{}, err
	}
	return l.fillBuy(ticker, shares, price, stop, "MANUAL BUY MOO - Filled")
}

// BuyLimit executes a limit buy against the session bar. A gap below the
// limit fills at the open; a touch during the session fills at the limit.
func (l *Ledger) BuyLimit(ticker string, shares Quantity, limit, stop Money, bar marketdata.Row) (Fill, error) {
	if math.IsNaN(bar.Open) || math.IsNaN(bar.Low) {
		return Fill{}, errors.New("no usable session price")
	}
	open := M(bar.Open, l.cash.Currency())
	low := M(bar.Low, l.cash.Currency())
	var price Money
	switch {
	case open.LessThanOrEqual(limit):
		price = open
	case low.LessThanOrEqual(limit):
		price = limit
	default:
		return Fill{}, ErrNotFilled
	}
	return l.fillBuy(ticker, shares, price, stop, "MANUAL BUY LIMIT - Filled")
}

// SellLimit executes a limit sell against the session bar. A gap above the
// limit fills at the open; a touch during the session fills at the limit.
func (l *Ledger) SellLimit(ticker string, shares Quantity, limit Money, bar marketdata.Row) (Fill, error) {
	if math.IsNaN(bar.Open) || math.IsNaN(bar.High) {
		return Fill{}, errors.New("no usable session price")
	}
	open := M(bar.Open, l.cash.Currency())
	high := M(bar.High, l.cash.Currency())
	var price Money
	switch {
	case open.GreaterThanOrEqual(limit):
		price = open
	case high.GreaterThanOrEqual(limit):
		price = limit
	default:
		return Fill{}, ErrNotFilled
	}
	return l.fillSell(ticker, shares, price, "MANUAL SELL LIMIT - Filled")
}

func (l *Ledger) fillBuy(ticker string, shares Quantity, price, stop Money, reason string) (Fill, error) {
	if !shares.IsPositive() {
		return Fill{}, fmt.Errorf("share count %s must be positive", shares)
	}
	cost := price.Mul(shares).Round()
	if err := l.debit(cost); err != nil {
		return Fill{}, err
	}
	l.addShares(ticker, shares, price, cost, stop)
	return Fill{Ticker: strings.ToUpper(ticker), Shares: shares, Price: price, Cost: cost, Reason: reason}, nil
}

func (l *Ledger) fillSell(ticker string, shares Quantity, price Money, reason string) (Fill, error) {
	if !shares.IsPositive() {
		return Fill{}, fmt.Errorf("share count %s must be positive", shares)
	}
	p, ok := l.Get(ticker)
	if !ok {
		return Fill{}, fmt.Errorf("ticker %s not in portfolio", ticker)
	}
	if shares.GreaterThan(p.Shares) {
		return Fill{}, fmt.Errorf("trying to sell %s shares but only own %s", shares, p.Shares)
	}
	proceeds := price.Mul(shares).Round()
	basis := p.BuyPrice.Mul(shares).Round()
	if err := l.removeShares(ticker, shares); err != nil {
		return Fill{}, err
	}
	l.credit(proceeds)
	return Fill{
		Ticker: p.Ticker,
		Shares: shares,
		Price:  price,
		Cost:   basis,
		PnL:    proceeds.Sub(basis),
		Reason: reason,
		Sell:   true,
	}, nil
}
