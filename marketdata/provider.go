package marketdata

import "github.com/ygoncloud/YG-trade/date"

// provider is one stage of the fallback chain. Implementations keep their
// endpoint quirks (symbol aliasing, inclusive vs exclusive end date) to
// themselves so each stage stays independently testable.
type provider interface {
	// source identifies the stage in Result.Source and in logs.
	source() Source
	// tryFetch returns the rows for the window, unsorted and unnormalized.
	// Returning no rows and no error means the provider has nothing for
	// this ticker; both outcomes make the chain fall through.
	tryFetch(ticker string, w date.Window, opt Options) ([]Row, error)
}

// lookbackProvider is a provider that can also answer "the last n days"
// without an explicit window. Only the primary stage needs to.
type lookbackProvider interface {
	provider
	tryLookback(ticker string, days int, opt Options) ([]Row, error)
}

// Symbols holds the per-provider symbol tables. The zero value means "no
// remapping at all"; Defaults returns the compiled-in tables.
type Symbols struct {
	// StooqAliases remaps a ticker to the symbol Stooq knows it under,
	// e.g. the S&P 500 index is ^GSPC on Yahoo but ^SPX on Stooq.
	StooqAliases map[string]string `yaml:"stooq_aliases"`
	// StooqBlocklist lists tickers Stooq does not carry; both Stooq stages
	// are skipped entirely for them.
	StooqBlocklist []string `yaml:"stooq_blocklist"`
	// Proxies maps an otherwise-unavailable ticker to a liquid ETF that
	// tracks it, retried on the primary provider as a last resort.
	Proxies map[string]string `yaml:"proxies"`
}

// Defaults returns the compiled-in symbol tables.
func Defaults() Symbols {
	return Symbols{
		StooqAliases: map[string]string{
			"^GSPC": "^SPX",  // S&P 500
			"^DJI":  "^DJI",  // Dow Jones
			"^IXIC": "^IXIC", // Nasdaq Composite
			// ^RUT is not on Stooq, see StooqBlocklist.
		},
		StooqBlocklist: []string{"^RUT"},
		Proxies: map[string]string{
			"^RUT":  "IWM",
			"^GSPC": "SPY",
		},
	}
}

func (s Symbols) blocked(ticker string) bool {
	for _, t := range s.StooqBlocklist {
		if t == ticker {
			return true
		}
	}
	return false
}

func (s Symbols) alias(ticker string) string {
	if mapped, ok := s.StooqAliases[ticker]; ok {
		return mapped
	}
	return ticker
}
