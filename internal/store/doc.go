// Package store implements the on-disk Record Store.
//
// The store owns a single data directory holding:
//   - one immutable JSON blob per fetched page, named
//     <SOURCE>_<bucket>_<page>.json where the bucket is the ingestion
//     pass's high-water id, or the day for history sources
//   - latest_id.json, the watermark file mapping each source to the highest
//     identifier durably ingested, plus optional resume entries
//
// Blobs are append-only: a page is written once and never updated. The
// watermark file is the only mutable state and its writes are idempotent,
// which is what makes interrupted ingestion runs safe to re-run.
package store
