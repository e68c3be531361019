package store

// KV is the minimal persistent key-value contract the services depend on.
// Semantics mirror a browser localStorage: string keys and values, absent
// reads are not errors, writes can fail (quota, serialization) and callers
// decide whether that is fatal
type KV interface {
	// Get returns the stored value and whether the key was present
	Get(key string) (string, bool, error)
	// Set stores or replaces the value under key
	Set(key, value string) error
	// Remove deletes the key; removing an absent key is not an error
	Remove(key string) error
}
