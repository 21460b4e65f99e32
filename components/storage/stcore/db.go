package stcore

// Blob is an opaque piece of persisted data.
type Blob struct {
	Data []byte
}

// DB is a key-value database to store blobs of data.
//
// Remarks:
//   - Implementation should be thread-safe.
//   - There is no delete operation: the persisted tree is additive-only.
type DB interface {
	// Read reads a blob from the database.
	//
	// Remarks:
	//  - Implementation should return status.StatusNoData if blob doesn't exist.
	Read(key string) (Blob, error)

	// Write write a blob to the database.
	Write(key string, blob Blob) error

	// ForEach iterates over all data in the database.
	ForEach(fn func(key string, b Blob) error) error

	// Close releases all resources for the database.
	Close() error
}
