// Package fetch opens corpus resources, party feeds and manifests.
//
// An Opener reads http(s) locations with an HTTP client and everything else
// from the local filesystem, so the same corpus can be served from a static
// site or from a checkout. Open retries transient failures with exponential
// backoff; Fetch performs a single attempt and is what the corpus loader uses,
// since a failed document is dropped rather than retried.
package fetch
