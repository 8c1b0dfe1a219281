// Package ingest implements the Incremental Ingestion Engine.
//
// Each configured source maps to one paginated endpoint and one watermark
// entry. A pass fetches only pages that can still contain unseen items,
// persists every page as an immutable blob, and advances the watermark
// only after the page is durably stored, so a crash at any point leaves
// the store in a consistent resume-from-here position.
//
// The engine relies on one upstream invariant: items arrive in strictly
// descending identifier order within and across pages. The early stop in
// the pagination loop is only correct under that assumption.
package ingest
