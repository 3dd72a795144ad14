// Package storage abstracts the file store behind the invoice archive
// and product imagery. Two drivers ship with the storefront:
//
//   - "local" writes under STORAGE_LOCAL_ROOT (the default)
//   - "s3" talks to any S3-compatible bucket (AWS, MinIO, R2)
//
// Boot once, then use the package-level helpers against the default
// disk, or pick one explicitly:
//
//	storage.Connect()
//	storage.Put("invoices/SAN202608310001.html", html)
//	storage.Use("s3").Put("exports/catalog.csv", data)
package storage

import "io"

// Disk is implemented by every storage driver.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser the caller must close.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Missing is the inverse of Exists.
	Missing(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. A missing file is not an error.
	Delete(path string) error

	// Files lists the files directly inside directory.
	Files(directory string) ([]string, error)

	// AllFiles lists every file under directory, recursively.
	AllFiles(directory string) ([]string, error)
}
