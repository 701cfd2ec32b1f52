package store

// Store persists one opaque payload.
type Store interface {
	// Save replaces the persisted payload. An error is unrecoverable for the
	// caller: the payload was not stored.
	Save(payload string) error
	// Load returns the persisted payload, or "{}" when there is none or it
	// cannot be read.
	Load() string
}
