package date

import (
	"fmt"
	"time"
)

// Window is a half-open interval [Start, End) over calendar dates.
//
// All market-data providers are queried with this convention; each adapter
// translates it to the endpoint's own inclusive or exclusive end date.
type Window struct{ Start, End Date }

// NewWindow returns the half-open window [start, end).
func NewWindow(start, end Date) Window { return Window{Start: start, End: end} }

// Contains reports whether the date belongs to the window.
func (w Window) Contains(d Date) bool { return !d.Before(w.Start) && d.Before(w.End) }

// Days returns the number of calendar days covered by the window.
func (w Window) Days() int { return w.End.Sub(w.Start) }

// IsZero reports whether the window is the zero value.
func (w Window) IsZero() bool { return w == Window{} }

func (w Window) String() string { return fmt.Sprintf("[%s, %s)", w.Start, w.End) }

// LastTradingDay maps a date to the last completed trading session:
// Saturday and Sunday roll back to the preceding Friday, any weekday maps to
// itself. Market holidays are not special-cased; providers simply have no
// row for them.
func LastTradingDay(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.Add(-1)
	case time.Sunday:
		return d.Add(-2)
	}
	return d
}

// TradingDayWindow returns the [day, day+1) window for the last trading day
// relative to d.
func TradingDayWindow(d Date) Window {
	t := LastTradingDay(d)
	return NewWindow(t, t.Add(1))
}

// LookbackWindow returns a window ending after the last trading day relative
// to d and starting the given number of days before it.
func LookbackWindow(d Date, days int) Window {
	t := LastTradingDay(d)
	return NewWindow(t.Add(-days), t.Add(1))
}
