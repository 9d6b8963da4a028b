package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// time.Time values are not comparable in general (timezone pointer),
		// this checks the canonical representation keeps that property.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	// Day overflow rolls into the next month.
	if got := New(2024, 1, 32); got != New(2024, 2, 1) {
		t.Errorf("New(2024, 1, 32) = %s, want 2024-02-01", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2024-01-02", New(2024, 1, 2), false},
		{"2025-7-1", New(2025, 7, 1), false},
		{"not-a-date", Date{}, true},
		{"2024/01/02", Date{}, true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAddSub(t *testing.T) {
	d := New(2024, 2, 28)
	if got := d.Add(1); got != New(2024, 2, 29) {
		t.Errorf("Add(1) = %s, want 2024-02-29 (leap year)", got)
	}
	if got := New(2024, 3, 1).Sub(d); got != 2 {
		t.Errorf("Sub() = %d, want 2", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2024, 8, 9)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `"2024-08-09"` {
		t.Errorf("MarshalJSON() = %s, want %q", b, `"2024-08-09"`)
	}
	var got Date
	if err := got.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %s, want %s", got, d)
	}
}

func TestClockToday(t *testing.T) {
	c := At(New(2025, 8, 23))
	if got := c.Today(); got != New(2025, 8, 23) {
		t.Errorf("Today() = %s, want 2025-08-23", got)
	}
	if c().Hour() != 0 {
		t.Errorf("fixed clock should be at midnight UTC, got %v", c())
	}
	if sys := System().Today(); sys.IsZero() {
		t.Error("System().Today() returned the zero date")
	}
}

func TestLastTradingDay(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want Date
	}{
		{"saturday rolls to friday", New(2024, 8, 10), New(2024, 8, 9)},
		{"sunday rolls to friday", New(2024, 8, 11), New(2024, 8, 9)},
		{"monday is itself", New(2024, 8, 12), New(2024, 8, 12)},
		{"friday is itself", New(2024, 8, 9), New(2024, 8, 9)},
		{"midweek is itself", New(2024, 8, 7), New(2024, 8, 7)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LastTradingDay(tc.in); got != tc.want {
				t.Errorf("LastTradingDay(%s) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestTradingDayWindow(t *testing.T) {
	// A Sunday maps to the [Friday, Saturday) window.
	w := TradingDayWindow(New(2024, 8, 11))
	if w.Start != New(2024, 8, 9) || w.End != New(2024, 8, 10) {
		t.Errorf("TradingDayWindow() = %s, want [2024-08-09, 2024-08-10)", w)
	}
	if w.Start.Weekday() != time.Friday {
		t.Errorf("window start weekday = %s, want Friday", w.Start.Weekday())
	}
}

func TestWindowContains(t *testing.T) {
	w := NewWindow(New(2024, 1, 2), New(2024, 1, 5))
	if !w.Contains(New(2024, 1, 2)) {
		t.Error("start date must be included")
	}
	if !w.Contains(New(2024, 1, 4)) {
		t.Error("inner date must be included")
	}
	if w.Contains(New(2024, 1, 5)) {
		t.Error("end date must be excluded")
	}
	if got := w.Days(); got != 3 {
		t.Errorf("Days() = %d, want 3", got)
	}
}
