// Package mediastore stores uploaded images and issues retrievable URLs for
// stored keys. Only opaque keys are persisted on documents; URL resolution
// happens at read time.
package mediastore

import "io"

type MediaStore interface {
	// SaveImage uploads the file body and returns the opaque object key.
	SaveImage(bucket, prefix, filename string, body io.Reader) (string, error)
	// GetImageURL resolves a stored key to a time limited retrievable URL.
	GetImageURL(bucket, key string) (string, error)
}
