package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oascompat"
	"github.com/erraggy/oascompat/internal/options"
	"github.com/erraggy/oascompat/loader"
)

// specInput represents the three ways a Swagger document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a Swagger 2.0 document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// cacheEntry holds a loaded document with LRU ordering and TTL expiry.
type cacheEntry struct {
	spec      *loader.Spec
	usedAt    time.Time
	expiresAt time.Time
}

// specCacheStore is a session-scoped cache of loaded documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash and URL inputs by the URL. A loaded Spec is read-only, so
// concurrent tool calls share entries.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *loader.Spec {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.usedAt = time.Now()
	return e.spec
}

// putWithTTL stores a document, evicting the least recently used entry when
// the cache is full.
func (c *specCacheStore) putWithTTL(key string, spec *loader.Spec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{spec: spec, usedAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.usedAt.Before(oldest) {
				oldestKey, oldest = k, e.usedAt
			}
		}
		delete(c.entries, oldestKey)
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only the first of concurrent calls starts a goroutine.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns the cache key of s, or "" when s cannot be cached.
// Documents loaded with DefaultTypeToObject are cached separately.
func makeCacheKey(s specInput, defaultTypeToObject bool) string {
	var key string
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		key = fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		key = "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		key = "url:" + s.URL
	default:
		return ""
	}
	if defaultTypeToObject {
		key += ":object"
	}
	return key
}

// resolve loads the document from whichever input was provided, using the
// cache when enabled.
func (s specInput) resolve(ctx context.Context, defaultTypeToObject bool) (*loader.Spec, error) {
	if err := options.ExactlyOne("spec",
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "url", Set: s.URL != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	); err != nil {
		return nil, err
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASCOMPAT_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, defaultTypeToObject)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []loader.Option{
		loader.WithContext(ctx),
		loader.WithUserAgent(oascompat.UserAgent()),
		loader.WithDefaultTypeToObject(defaultTypeToObject),
	}
	switch {
	case s.File != "":
		opts = append(opts, loader.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, loader.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, loader.WithHTTPClient(newSafeHTTPClient()))
		}
	default:
		opts = append(opts, loader.WithBytes([]byte(s.Content)), loader.WithSourceName("<content>"))
	}

	spec, err := loader.LoadWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, spec, ttl)
	}
	return spec, nil
}
