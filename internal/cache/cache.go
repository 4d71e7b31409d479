// Package cache is the file-view cache the tool surface uses to avoid
// rereading unchanged files and to compute "what changed since you last
// opened this" diffs, grounded on state.rs's file_cache (an LRU keyed by
// path) generalized to the version-hashed key scheme spec §4.9 commits to.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the number of entries kept when no explicit capacity
// is configured.
const DefaultCapacity = 50

// Cache is an LRU of canonical_path#version_hash -> file contents.
type Cache struct {
	lru *lru.Cache[string, string]
}

// New builds a Cache with the given capacity, or DefaultCapacity when
// capacity <= 0.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("constructing file cache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// VersionHash truncates a sha256 of content to 40 bits, rendered as 10
// hex characters — enough to detect drift between tool calls without
// carrying a full hash around in every response.
func VersionHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:5])
}

// Key builds the cache key for a canonical path and its version hash.
func Key(canonicalPath, versionHash string) string {
	return canonicalPath + "#" + versionHash
}

// Put stores content under its canonical path and derived version hash,
// returning the key so callers can report it back to the client.
func (c *Cache) Put(canonicalPath, content string) string {
	key := Key(canonicalPath, VersionHash(content))
	c.lru.Add(key, content)
	return key
}

// Get retrieves content previously stored under this exact key.
func (c *Cache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// GetByPathAndContent recomputes the key for canonicalPath/content and
// looks it up — a convenience for the common "do I already have exactly
// this version" check.
func (c *Cache) GetByPathAndContent(canonicalPath, content string) (string, bool) {
	return c.Get(Key(canonicalPath, VersionHash(content)))
}
