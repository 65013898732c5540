// Package cache stores converted artifacts so repeated PNG and PDF exports
// of the same composition can skip the external converter.
//
// An artifact is addressed by a [Key]: the SHA-256 digest of the SVG source
// plus the conversion settings that change the output bytes. [FileStore]
// keeps artifacts as plain files under a directory (the CLI uses
// ~/.cache/mondrian) and [Null] stores nothing.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// DefaultMaxAge is how long the CLI keeps an artifact after writing it.
const DefaultMaxAge = 7 * 24 * time.Hour

// Key identifies one conversion of one SVG document.
type Key struct {
	Digest string  // hex SHA-256 of the SVG source
	Format string  // target format, e.g. "png"
	Scale  float64 // raster scale; zero for vector formats
}

// KeyFor returns the key for converting svg to format at scale.
func KeyFor(svg []byte, format string, scale float64) Key {
	sum := sha256.Sum256(svg)
	return Key{Digest: hex.EncodeToString(sum[:]), Format: format, Scale: scale}
}

// String returns the key as a file name, e.g. "3f0a...@2x.png".
func (k Key) String() string {
	name := k.Digest
	if k.Scale != 0 {
		name += "@" + strconv.FormatFloat(k.Scale, 'f', -1, 64) + "x"
	}
	return name + "." + k.Format
}

// Store holds artifacts.
type Store interface {
	// Get returns the artifact for k and whether it was present.
	Get(ctx context.Context, k Key) ([]byte, bool, error)
	// Put stores data under k, replacing any previous artifact.
	Put(ctx context.Context, k Key, data []byte) error
	// Close releases resources held by the store.
	Close() error
}

// Null is a Store that never holds anything. The CLI uses it for --no-cache.
type Null struct{}

func (Null) Get(context.Context, Key) ([]byte, bool, error) { return nil, false, nil }
func (Null) Put(context.Context, Key, []byte) error         { return nil }
func (Null) Close() error                                   { return nil }

var _ Store = Null{}
