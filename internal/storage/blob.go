package storage

import (
	"errors"
	"io"
)

var ErrInvalidKey = errors.New("invalid blob key")

// BlobStore holds rendered quiz documents.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
	Delete(key string) error
}
