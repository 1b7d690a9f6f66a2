// Package color assigns display colors to search terms and parties.
package color
