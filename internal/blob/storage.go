// Package blob abstracts the object store that holds product images.
// Every stored object lives under a path namespaced by product id and is
// addressable through a public URL.
package blob

import (
	"io"
	"os"
)

// Storage defines the behavior the image store must implement.
type Storage interface {
	// Save writes contents under path and returns the public URL the
	// object is reachable at.
	Save(path string, contents io.Reader) (string, error)

	// Open returns the stored object for reading.
	Open(path string) (*os.File, error)

	// Delete removes the object at path.
	Delete(path string) error

	// PublicURL maps a storage path to its public URL.
	PublicURL(path string) string

	// ParseURL maps a public URL back to a storage path. It reports
	// false for URLs outside the store's namespace; those belong to
	// someone else and must be left untouched.
	ParseURL(url string) (string, bool)
}
