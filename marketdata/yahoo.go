package marketdata

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/ygoncloud/YG-trade/date"
)

// yahooProvider is the primary stage: Yahoo Finance's v8 chart endpoint.
// Its period2 parameter is exclusive, matching the shared half-open window,
// so the window's end is passed through untouched.
type yahooProvider struct {
	client *http.Client
	base   string // endpoint base, overridable in tests
}

const yahooBase = "https://query1.finance.yahoo.com/v8/finance/chart"

func newYahooProvider(client *http.Client) *yahooProvider {
	return &yahooProvider{client: client, base: yahooBase}
}

func (y *yahooProvider) source() Source { return SourceYahoo }

func (y *yahooProvider) tryFetch(ticker string, w date.Window, opt Options) ([]Row, error) {
	addr := fmt.Sprintf("%s/%s?interval=1d&includeAdjustedClose=true&period1=%d&period2=%d",
		y.base, url.PathEscape(ticker), w.Start.Unix(), w.End.Unix())
	return y.fetchChart(addr)
}

// tryLookback queries with a relative range parameter instead of an explicit
// window. Cheaper for the common "just give me today's bar" case.
func (y *yahooProvider) tryLookback(ticker string, days int, opt Options) ([]Row, error) {
	addr := fmt.Sprintf("%s/%s?interval=1d&includeAdjustedClose=true&range=%s",
		y.base, url.PathEscape(ticker), rangeForDays(days))
	return y.fetchChart(addr)
}

// rangeForDays maps a day count to the coarser ranges the endpoint accepts.
func rangeForDays(days int) string {
	switch {
	case days <= 1:
		return "1d"
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (y *yahooProvider) fetchChart(addr string) ([]Row, error) {
	var jobj any
	if err := jwget(y.client, addr, &jobj); err != nil {
		return nil, err
	}

	// The payload nests the series under chart.result[0]; the error member
	// is null on success.
	if jerr, err := jsonpath.Get("$.chart.error", jobj); err == nil && jerr != nil {
		return nil, fmt.Errorf("yahoo api error: %v", jerr)
	}

	timestamps, err := jsonpathSlice(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, fmt.Errorf("yahoo: no timestamps: %w", err)
	}

	opens, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.quote[0].open")
	highs, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.quote[0].high")
	lows, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.quote[0].low")
	closes, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.quote[0].close")
	volumes, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.quote[0].volume")
	// adjclose is its own indicator and is absent for some instruments
	adjcloses, _ := jsonpathSlice(jobj, "$.chart.result[0].indicators.adjclose[0].adjclose")

	rows := make([]Row, 0, len(timestamps))
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			continue
		}
		r := Row{
			Date:     date.FromUnix(int64(ts)),
			Open:     asFloat(at(opens, i)),
			High:     asFloat(at(highs, i)),
			Low:      asFloat(at(lows, i)),
			Close:    asFloat(at(closes, i)),
			AdjClose: asFloat(at(adjcloses, i)),
			Volume:   asFloat(at(volumes, i)),
		}
		// skip null bars (holidays etc.)
		if isNaN(r.Open) && isNaN(r.High) && isNaN(r.Low) && isNaN(r.Close) {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// jsonpathSlice evaluates a path expected to yield a JSON array.
func jsonpathSlice(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("path %q: not an array: %T", path, jval)
	}
	return jlist, nil
}

func at(list []any, i int) any {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

// asFloat reads a JSON value as a float, NaN when null or missing.
func asFloat(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return nan
	}
	return f
}

func isNaN(f float64) bool { return f != f }
