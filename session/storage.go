package session

// Storage is the key/value persistence backend behind a [Store]. Values are
// opaque serialized text; keys arrive already namespaced. Implementations
// must be safe for concurrent use.
type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	// Set writes or overwrites a value.
	Set(key, value string) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys lists every stored key that starts with prefix.
	Keys(prefix string) ([]string, error)
}

// Watcher is implemented by backends that can observe a key being deleted by
// another store instance (another process or device logging out). The
// callback must not fire for deletions performed through this instance.
type Watcher interface {
	// Watch invokes fn whenever key is externally deleted. The returned stop
	// function cancels the watch.
	Watch(key string, fn func()) (stop func(), err error)
}
