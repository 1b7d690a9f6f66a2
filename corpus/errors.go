package corpus

import "errors"

var (
	// ErrFetcherRequired is returned when a Loader is created without a fetcher.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrLoaderRequired is returned when a Store is created without a loader.
	ErrLoaderRequired = errors.New("loader required")

	// ErrSourceRequired is returned when a Store is created without a source.
	ErrSourceRequired = errors.New("location source required")

	// ErrNoLocations is returned when a Source names no corpus locations.
	ErrNoLocations = errors.New("no corpus locations configured")

	// ErrNotObject is returned when a corpus resource is not a JSON object.
	ErrNotObject = errors.New("document is not a JSON object")

	// ErrTrailingData is returned when a corpus resource has content after its object.
	ErrTrailingData = errors.New("unexpected data after JSON object")

	// ErrInvalidManifest is returned when a JSON manifest is not an array of strings.
	ErrInvalidManifest = errors.New("manifest must be a JSON array of strings")
)
