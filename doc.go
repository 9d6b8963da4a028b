// Package trade maintains a small equities/ETF portfolio: a CSV-persisted
// ledger of positions and cash, simple order-execution rules (market-on-open
// buys, limit buys and sells, stop-loss triggers), and descriptive
// performance metrics (max drawdown, Sharpe, Sortino, CAPM beta and alpha).
//
// Market data comes from the marketdata subpackage, which hides provider
// outages behind a fallback chain; this package only ever sees normalized
// rows or an empty result.
package trade
