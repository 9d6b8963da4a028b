// Package marketdata fetches daily OHLCV data for a ticker with a
// multi-provider fallback chain.
//
// Providers are tried in a fixed priority order until one returns rows:
// Yahoo's chart endpoint first, then Stooq queried with an explicit date
// range, then Stooq's bulk history export, and finally Yahoo again with a
// registered liquid-ETF proxy symbol. A provider outage is never an error
// for the caller: all transport and decode failures collapse to "that stage
// produced no data" and the chain moves on.
package marketdata

import (
	"math"
	"strings"

	"github.com/ygoncloud/YG-trade/date"
)

// Row is one trading session for one ticker. Columns a provider does not
// supply are NaN, except AdjClose which defaults to Close.
type Row struct {
	Date     date.Date
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Source records which provider satisfied a request. It is diagnostic only
// and never influences downstream logic.
type Source string

const (
	SourceYahoo      Source = "yahoo"
	SourceStooqRange Source = "stooq-range"
	SourceStooqBulk  Source = "stooq-bulk"
	SourceEmpty      Source = "empty"
)

// proxySource tags a result obtained by substituting a proxy symbol, e.g.
// "yahoo:SPY-proxy", so callers can detect the substitution.
func proxySource(proxy string) Source { return Source("yahoo:" + proxy + "-proxy") }

// IsEmpty reports whether the source means no provider had data.
func (s Source) IsEmpty() bool { return s == SourceEmpty }

// IsProxy reports whether the rows come from a proxy substitution.
func (s Source) IsProxy() bool { return strings.HasSuffix(string(s), "-proxy") }

// Result is the outcome of a fetch: normalized rows in chronological order
// with no duplicate dates, or no rows at all when Source is empty.
type Result struct {
	Rows   []Row
	Source Source
}

// IsEmpty reports whether the fetch yielded no rows.
func (r Result) IsEmpty() bool { return len(r.Rows) == 0 }

// Latest returns the most recent row.
func (r Result) Latest() (Row, bool) {
	if len(r.Rows) == 0 {
		return Row{}, false
	}
	return r.Rows[len(r.Rows)-1], true
}

// Options are hints forwarded to the provider clients. They never influence
// the fallback logic itself.
type Options struct {
	// Quiet suppresses the per-stage diagnostic logging.
	Quiet bool
	// Threads is a parallel-download hint for provider clients. Adapters
	// that download a single payload per request ignore it.
	Threads int
}

// nan is the "column not supplied" sentinel.
var nan = math.NaN()
