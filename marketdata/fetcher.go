package marketdata

import (
	"log"
	"net/http"

	"github.com/ygoncloud/YG-trade/date"
)

// Fetcher resolves (ticker, window) to daily OHLCV rows through the ordered
// provider chain. It holds no mutable state between calls: every Fetch is
// independent and reentrant, so concurrent calls for different tickers are
// safe without locking.
type Fetcher struct {
	clock   date.Clock
	primary lookbackProvider
	chain   []provider
	proxies map[string]string
}

// NewFetcher assembles the chain with the given clock and symbol tables.
// A nil client gets the default disk-caching one.
func NewFetcher(clock date.Clock, symbols Symbols, client *http.Client) *Fetcher {
	if client == nil {
		client = newCachingClient(clock, 0)
	}
	yahoo := newYahooProvider(client)
	return &Fetcher{
		clock:   clock,
		primary: yahoo,
		chain: []provider{
			yahoo,
			newStooqProvider(client, symbols, false),
			newStooqProvider(client, symbols, true),
		},
		proxies: symbols.Proxies,
	}
}

// Fetch walks the fallback chain for the half-open window and returns the
// first non-empty, normalized result. It never fails: when every stage
// errors or comes back empty the result simply has Source = empty. Transport
// and decode errors are logged and swallowed; the chain's purpose is
// resilience, so a single provider outage must not abort the caller's
// workflow.
func (f *Fetcher) Fetch(ticker string, w date.Window, opt Options) Result {
	for _, p := range f.chain {
		rows, err := p.tryFetch(ticker, w, opt)
		if err != nil {
			if !opt.Quiet {
				log.Printf("%s: %s %s: %v", p.source(), ticker, w, err)
			}
			continue
		}
		if len(rows) == 0 {
			continue
		}
		return Result{Rows: normalize(rows), Source: p.source()}
	}

	// Last resort: retry the primary with the registered liquid-ETF proxy.
	if proxy, ok := f.proxies[ticker]; ok {
		rows, err := f.primary.tryFetch(proxy, w, opt)
		if err != nil && !opt.Quiet {
			log.Printf("%s: %s %s: %v", proxySource(proxy), ticker, w, err)
		}
		if err == nil && len(rows) > 0 {
			return Result{Rows: normalize(rows), Source: proxySource(proxy)}
		}
	}

	return Result{Source: SourceEmpty}
}

// FetchRecent returns the most recent bars without an explicit window. It
// asks the primary provider with a relative lookback first and only falls
// back to the full chain, over a window recomputed from the trading-day
// calendar, when that comes back empty.
func (f *Fetcher) FetchRecent(ticker string, days int, opt Options) Result {
	if days < 1 {
		days = 1
	}
	rows, err := f.primary.tryLookback(ticker, days, opt)
	if err != nil && !opt.Quiet {
		log.Printf("%s: %s lookback %dd: %v", f.primary.source(), ticker, days, err)
	}
	if err == nil && len(rows) > 0 {
		return Result{Rows: normalize(rows), Source: f.primary.source()}
	}

	return f.Fetch(ticker, date.LookbackWindow(f.clock.Today(), days), opt)
}
