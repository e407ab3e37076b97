package storage

// Store is a durable string-keyed, string-valued store that survives
// process restarts. Calls are synchronous; the request interceptor reads
// from it on the hot path and must not block on I/O beyond a local lookup.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes or replaces the value for key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases any underlying resources.
	Close() error
}
