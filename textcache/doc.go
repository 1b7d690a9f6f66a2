// Package textcache turns section HTML into searchable plain text.
//
// Each string-valued section of a loaded document is extracted exactly once,
// when the document is added, and the result is kept for the life of the
// corpus. Searches read cached text only.
package textcache
