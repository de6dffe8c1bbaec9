// Package hostcache holds probe results for the lifetime of one invocation.
// The cache is an explicit object owned by the caller and passed to whoever
// needs probe results — there is no hidden module-level state. Population is
// idempotent: racing writers store equal values, so last-writer-wins is safe.
package hostcache

import (
	"sync"

	"github.com/WyattAu/omnicpp/internal/types"
)

// Cache memoizes the three probe result sets. The zero value is ready to use.
// Each result set has its own lock so the independent probes can fill
// concurrently. There is no automatic invalidation: the environment is
// assumed stable for one invocation, and callers who change it (say, after
// installing a missing tool) call Invalidate explicitly.
type Cache struct {
	platformMu sync.Mutex
	platform   *types.PlatformRecord

	toolchainMu sync.Mutex
	toolchains  []types.ToolchainCandidate

	backendMu sync.Mutex
	backends  []types.BackendRecord
}

// Platform returns the cached platform record, running fill on first use.
func (c *Cache) Platform(fill func() types.PlatformRecord) types.PlatformRecord {
	c.platformMu.Lock()
	defer c.platformMu.Unlock()
	if c.platform == nil {
		rec := fill()
		c.platform = &rec
	}
	return *c.platform
}

// Toolchains returns the cached toolchain candidates, running fill on first use.
func (c *Cache) Toolchains(fill func() []types.ToolchainCandidate) []types.ToolchainCandidate {
	c.toolchainMu.Lock()
	defer c.toolchainMu.Unlock()
	if c.toolchains == nil {
		c.toolchains = fill()
	}
	return c.toolchains
}

// Backends returns the cached backend records, running fill on first use.
func (c *Cache) Backends(fill func() []types.BackendRecord) []types.BackendRecord {
	c.backendMu.Lock()
	defer c.backendMu.Unlock()
	if c.backends == nil {
		c.backends = fill()
	}
	return c.backends
}

// Invalidate clears every cached result so the next query re-probes.
func (c *Cache) Invalidate() {
	c.platformMu.Lock()
	c.platform = nil
	c.platformMu.Unlock()

	c.toolchainMu.Lock()
	c.toolchains = nil
	c.toolchainMu.Unlock()

	c.backendMu.Lock()
	c.backends = nil
	c.backendMu.Unlock()
}
