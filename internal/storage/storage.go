// Package storage provides keyed access to a public blob store for artifact
// payloads and narration audio.
package storage

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no object store credentials were ever
// provided.
var ErrNotConfigured = errors.New("object storage not configured")

// ObjectStore uploads opaque byte payloads under a key and derives the public
// retrieval URL for them.
type ObjectStore interface {
	// Upload writes the payload under key with the given content type and
	// returns the public URL of the object. No ACL is applied; bucket-level
	// policy governs readability.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// PublicURL derives the public URL for a key without any I/O. It must be
	// consistent with the URL returned by a successful Upload of the same key.
	PublicURL(key string) string
}
