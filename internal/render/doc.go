// Package render writes the prepared report as a standalone HTML page.
package render
