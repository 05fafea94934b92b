// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pdiddy/coalseam/pkg/types"
)

// Loader reads datasets through an in-memory cache so repeated assessments
// of the same unchanged file parse it once. Cached datasets are shared and
// must be treated as read-only.
type Loader struct {
	cache *gocache.Cache
}

// NewLoader creates a Loader whose entries expire after ttl.
func NewLoader(ttl time.Duration) *Loader {
	return &Loader{cache: gocache.New(ttl, 2*ttl)}
}

// Load returns the cached dataset for path, reading it when the file is new
// or has changed since it was cached.
func (l *Loader) Load(path string) (*types.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	key := cacheKey(path, info)

	if v, ok := l.cache.Get(key); ok {
		return v.(*types.Dataset), nil
	}

	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.cache.SetDefault(key, ds)
	return ds, nil
}

// Len returns the number of cached datasets.
func (l *Loader) Len() int {
	return l.cache.ItemCount()
}

// cacheKey derives a key from the path, size and modification time.
func cacheKey(path string, info os.FileInfo) string {
	raw := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
	hash := sha256.Sum256([]byte(raw))
	return "coalseam:v1:" + hex.EncodeToString(hash[:])
}
