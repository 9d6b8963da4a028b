package date

import "time"

// Clock supplies the current time. Every date-dependent computation takes a
// Clock instead of calling time.Now directly, so "today" can be fixed for a
// given run (the -asof flag) or a test.
type Clock func() time.Time

// System returns a clock backed by the machine's wall clock.
func System() Clock { return time.Now }

// At returns a clock frozen on the given day.
func At(d Date) Clock {
	t := d.time()
	return func() time.Time { return t }
}

// Today returns the current date according to the clock.
func (c Clock) Today() Date { return New(c().Date()) }
