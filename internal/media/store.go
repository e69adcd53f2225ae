package media

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUploadFailed = errors.New("image upload failed")
	ErrInvalidImage = errors.New("unsupported image")
	ErrTooLarge     = errors.New("image too large")
	ErrInvalidURL   = errors.New("url does not address a stored image")
	ErrBlobNotFound = errors.New("image not found")
)

// BlobStore is the remote object store holding screenshots. Objects are
// addressed by name inside the store and by public URL outside of it.
type BlobStore interface {
	// Put writes data under name and returns a publicly resolvable URL.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, name string) error
	// NameFromURL maps a URL produced by Put back to the object name.
	NameFromURL(rawURL string) (string, error)
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

type BlobInfo struct {
	Name    string
	Created time.Time
}
