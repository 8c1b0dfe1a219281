// Package aggregate reduces the record store into multi-dimensional USD
// statistics.
//
// Aggregate folds classified records in two explicit phases: phase one
// takes the primary activity pages (game actions, mini-game results),
// phase two takes the secondary pages (rewards, claims, notifications).
// The phase order is part of the contract rather than a file-listing
// accident: reward months extend the months the play activity established.
//
// Every accumulator belongs to the Result of a single pass; nothing is
// carried across runs.
package aggregate
