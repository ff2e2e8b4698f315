// Package storage abstracts where uploaded files live.
//
// Two drivers are available:
//   - "local"  — files under a root directory, served by the app itself
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once at startup with Connect(), then write through the default
// disk:
//
//	storage.Put("images/gummy-001.jpg", file)
//	url := storage.URL("images/gummy-001.jpg")
//
// or address a named disk:
//
//	storage.Use("s3").Put("backups/ameya.db.gz", file)
package storage

import "io"

// Disk is one storage backend.
type Disk interface {
	// Put streams r into the file at path, creating parents as needed.
	Put(path string, r io.Reader) error

	// Open returns the file's content. Caller closes it.
	Open(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
