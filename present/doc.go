// Package present renders search results for the terminal.
//
// Section HTML is never interpreted: Sanitize reduces it to plain text,
// Highlight splits that text into matched and unmatched runs, and the
// Renderer styles the runs with lipgloss. Output to a non-terminal, or with
// NO_COLOR set, carries no escape sequences.
package present
