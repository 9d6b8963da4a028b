package marketdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ygoncloud/YG-trade/date"
)

// stooqProvider covers the two Stooq stages. The ranged stage passes the
// window to the endpoint; the bulk stage downloads the full daily history
// export and filters locally. Both honor the Stooq symbol aliases and the
// blocklist of tickers Stooq does not carry.
type stooqProvider struct {
	client  *http.Client
	base    string // endpoint base, overridable in tests
	symbols Symbols
	bulk    bool
}

const stooqBase = "https://stooq.com/q/d/l/"

func newStooqProvider(client *http.Client, symbols Symbols, bulk bool) *stooqProvider {
	return &stooqProvider{client: client, base: stooqBase, symbols: symbols, bulk: bulk}
}

func (s *stooqProvider) source() Source {
	if s.bulk {
		return SourceStooqBulk
	}
	return SourceStooqRange
}

// stooqSymbol translates a ticker to Stooq's naming: aliases first, then
// lowercase, and a ".us" suffix for equities and ETFs (indices keep their
// ^ prefix).
func stooqSymbol(symbols Symbols, ticker string) string {
	t := symbols.alias(ticker)
	sym := strings.ToLower(t)
	if !strings.HasPrefix(sym, "^") && !strings.HasSuffix(sym, ".us") {
		sym += ".us"
	}
	return sym
}

func (s *stooqProvider) tryFetch(ticker string, w date.Window, opt Options) ([]Row, error) {
	if s.symbols.blocked(ticker) {
		return nil, nil
	}

	sym := stooqSymbol(s.symbols, ticker)
	addr := fmt.Sprintf("%s?s=%s&i=d", s.base, url.QueryEscape(sym))
	if !s.bulk {
		// the endpoint's d1/d2 bounds are both inclusive, so the half-open
		// window's end becomes end-1day
		addr = fmt.Sprintf("%s&d1=%s&d2=%s", addr, w.Start.Format("20060102"), w.End.Add(-1).Format("20060102"))
	}

	body, err := wget(s.client, addr)
	if err != nil {
		return nil, err
	}
	rows, err := parseStooqCSV(body)
	if err != nil {
		return nil, err
	}
	if s.bulk {
		// bulk export is the full history, keep [start, end) only
		kept := rows[:0]
		for _, r := range rows {
			if w.Contains(r.Date) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	return rows, nil
}

// parseStooqCSV decodes Stooq's daily export. The header is
// Date,Open,High,Low,Close,Volume; indices come without a Volume column.
func parseStooqCSV(body []byte) ([]Row, error) {
	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "No data") {
		return nil, nil
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("stooq: reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["Date"]; !ok {
		return nil, fmt.Errorf("stooq: unexpected header %q", header)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stooq: reading record: %w", err)
		}
		on, err := date.Parse(field(record, col, "Date"))
		if err != nil {
			return nil, fmt.Errorf("stooq: %w", err)
		}
		rows = append(rows, Row{
			Date:   on,
			Open:   parseFloat(field(record, col, "Open")),
			High:   parseFloat(field(record, col, "High")),
			Low:    parseFloat(field(record, col, "Low")),
			Close:  parseFloat(field(record, col, "Close")),
			Volume: parseFloat(field(record, col, "Volume")),
			// Stooq has no adjusted close; normalization backfills it.
			AdjClose: nan,
		})
	}
	return rows, nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseFloat reads a CSV cell as a float, NaN when empty or malformed.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nan
	}
	return f
}
