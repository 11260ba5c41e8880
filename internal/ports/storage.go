package ports

import (
	"context"
	"io"
)

// ObjectStorage keeps uploaded files under slash-separated keys such as
// "doctors/3f2a_photo.jpg".
type ObjectStorage interface {
	// Save writes the object, replacing an existing one with the same key.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object; a missing object is not an error.
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
