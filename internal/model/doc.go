// Package model defines the event-record types shared across the pipeline.
//
// Upstream delivers heterogeneous activity items inside paginated envelopes.
// Classification into a tagged Record happens exactly once, when a stored page
// is read back; downstream code switches on Record.Kind instead of probing
// optional JSON fields.
//
// Conventions:
//   - Timestamps: time.Time parsed from the upstream RFC 3339 createTime
//   - Amounts: float64 in the record's own currency, converted to USD later
//   - IDs: int64 numeric id, or createTime milliseconds for mini-game sources
package model
