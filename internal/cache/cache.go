// Package cache memoizes analysis results across repeated lookups. Two
// tiers: a short-lived per-file tier for rapid repeat requests on the same
// file, and a longer-lived per-package-directory tier shared by all files of
// a package. Expiry is checked on read; there are no background sweepers.
package cache

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/implhint/implhint/internal/facts"
)

// DefaultFileTTL is how long a per-file entry stays fresh.
const DefaultFileTTL = 30 * time.Second

// DefaultPackageTTL is how long a per-package entry stays fresh.
const DefaultPackageTTL = 5 * time.Minute

// Options configures a Cache. The zero value selects the defaults and the
// real clock. Tests inject Now to control expiry deterministically.
type Options struct {
	FileTTL    time.Duration
	PackageTTL time.Duration
	Now        func() time.Time
}

type entry struct {
	result   *facts.Result
	storedAt time.Time
}

// Cache is a two-tier TTL store for analysis results. Both tiers hold the
// full package result; the file tier is keyed by the requested file path,
// the package tier by package directory.
type Cache struct {
	mu       sync.Mutex
	files    map[string]entry
	packages map[string]entry

	fileTTL    time.Duration
	packageTTL time.Duration
	now        func() time.Time
}

// New returns an empty cache.
func New(opts Options) *Cache {
	if opts.FileTTL <= 0 {
		opts.FileTTL = DefaultFileTTL
	}
	if opts.PackageTTL <= 0 {
		opts.PackageTTL = DefaultPackageTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		files:      make(map[string]entry),
		packages:   make(map[string]entry),
		fileTTL:    opts.FileTTL,
		packageTTL: opts.PackageTTL,
		now:        opts.Now,
	}
}

// GetFile returns the cached result for a file path, if still fresh.
func (c *Cache) GetFile(path string) (*facts.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(c.files, path, c.fileTTL)
}

// GetPackage returns the cached result for a package directory, if still
// fresh.
func (c *Cache) GetPackage(dir string) (*facts.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(c.packages, dir, c.packageTTL)
}

func (c *Cache) lookup(tier map[string]entry, key string, ttl time.Duration) (*facts.Result, bool) {
	e, ok := tier[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > ttl {
		delete(tier, key)
		return nil, false
	}
	return e.result, true
}

// Put stores a result in both tiers: under the requested file path and
// under its owning package directory.
func (c *Cache) Put(path string, result *facts.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{result: result, storedAt: c.now()}
	c.files[path] = e
	c.packages[filepath.Dir(path)] = e
}

// InvalidateFile drops a file's entry along with its owning package's
// entry, so neither tier can serve facts the other no longer backs.
func (c *Cache) InvalidateFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	delete(c.packages, filepath.Dir(path))
}

// InvalidateAll clears both tiers.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = make(map[string]entry)
	c.packages = make(map[string]entry)
}

// Len reports the number of live entries per tier. Intended for logging.
func (c *Cache) Len() (files, packages int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files), len(c.packages)
}
