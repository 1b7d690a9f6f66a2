// Package corpus loads candidate documents and keeps them in memory.
//
// A Source names the documents, a Loader fetches and decodes them on a
// bounded worker pool, and a Store memoizes the resulting Corpus so the
// first search pays the loading cost and every later search reuses it.
// Each Corpus carries a text cache built at load time and the number of
// documents per party.
package corpus
