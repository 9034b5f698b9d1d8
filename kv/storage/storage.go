package storage

// Storage represents the key-value mapping behind the service. Implementations own the mapping and
// whatever locks guard it; nothing outside a Storage reads or mutates the mapping directly.
//
// A missing key is not an error: Get reports it with found == false and Delete with found == false.
// Every string, the empty one included, is a valid key.
type Storage interface {
	Start() error
	Stop() error
	// Get returns the value stored for key.
	Get(key string) (value string, found bool, err error)
	// Put inserts or overwrites key. A nil error means the write is visible to every later Get.
	Put(key, value string) error
	// Delete removes key and reports whether it was present.
	Delete(key string) (found bool, err error)
	// Len returns the number of entries.
	Len() int
}
