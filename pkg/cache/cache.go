// Package cache provides byte-level caching for generated footprint
// artifacts.
//
// The pipeline stores rendered board files and preview images keyed by
// the content that produced them, so regenerating an unchanged part is
// a read instead of a rebuild. Keys are produced by a [Keyer] and are
// content-addressed: the same family, part and spec hash always map to
// the same key.
//
// Two implementations ship with the package: [FileCache] persists
// entries on disk for CLI runs, [NullCache] disables caching entirely.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// TTLs per artifact class. Keys are content-addressed, so entries never
// serve stale data; the TTL only bounds disk growth from abandoned
// revisions.
const (
	// TTLPart applies to rendered .kicad_mod files.
	TTLPart = 30 * 24 * time.Hour

	// TTLPreview applies to rendered preview images.
	TTLPreview = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Implementations must tolerate concurrent use. A Get miss is not an
// error: the boolean result distinguishes absence from failure.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was
	// present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A TTL of zero
	// means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultDir returns the default cache directory, ~/.cache/kicadfp.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "kicadfp"), nil
}
