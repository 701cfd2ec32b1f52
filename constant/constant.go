package constant

const (
	// ProjectName is the application part of the identity triple.
	ProjectName = "indranet-explorer"
	// Organization is the vendor part of the identity triple.
	Organization = "infohazards"
	// Qualifier is the reverse-domain part of the identity triple.
	Qualifier = "org"

	// DataFileName is the single file kept under the cache directory.
	DataFileName = "data.json"
	// DefaultPayload is what a load returns when nothing usable is on disk.
	DefaultPayload = "{}"

	// EnvPrefix prefixes environment overrides for the host configuration.
	EnvPrefix = "INDRANET"
)
