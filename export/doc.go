// Package export writes the current match set as CSV.
package export
