// Package report turns an aggregation pass into sorted, presentation-ready
// rows. It performs no I/O; the renderer consumes its output directly.
package report
