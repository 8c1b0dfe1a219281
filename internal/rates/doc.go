// Package rates supplies best-effort USD conversion rates.
//
// Two independent sources back the provider:
//   - a dense daily ETH/USD series fetched once per run from a public
//     history endpoint (bounded lookback, no credentials)
//   - a sparse monthly multi-currency table loaded from a static file,
//     keyed YYYY-MM -> currency code -> units per USD
//
// Lookups never fail: a missing day falls back to the nearest available
// day, a missing month to the latest available month, and an unknown
// currency to the 0 sentinel, which callers treat as "unpriceable" and
// skip the record's financial contribution.
package rates
