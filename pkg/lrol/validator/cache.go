package validator

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of reports kept by NewCache(0).
const DefaultCacheSize = 1024

// Cache keeps recent reports keyed by file path and content digest. Reports
// carry source locations, so identical content under another path is a
// miss. It is safe for concurrent use.
type Cache struct {
	reports *lru.Cache[cacheKey, *Report]
}

type cacheKey struct {
	path   string
	digest string
}

// NewCache creates a cache holding up to size reports.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	reports, err := lru.New[cacheKey, *Report](size)
	if err != nil {
		return nil, err
	}
	return &Cache{reports: reports}, nil
}

// Get returns the report cached for path with content digest.
func (c *Cache) Get(digest, path string) (*Report, bool) {
	return c.reports.Get(cacheKey{path: path, digest: digest})
}

// Add stores report under its path and digest.
func (c *Cache) Add(report *Report) {
	if report.Digest == "" {
		return
	}
	c.reports.Add(cacheKey{path: report.FilePath, digest: report.Digest}, report)
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	return c.reports.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.reports.Purge()
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
