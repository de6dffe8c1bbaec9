package hostcache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WyattAu/omnicpp/internal/types"
)

func TestCache_FillsOnce(t *testing.T) {
	var c Cache
	calls := 0
	fill := func() types.PlatformRecord {
		calls++
		return types.PlatformRecord{OSFamily: types.OSLinux}
	}

	first := c.Platform(fill)
	second := c.Platform(fill)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestCache_InvalidateForcesReprobe(t *testing.T) {
	var c Cache
	calls := 0
	fill := func() []types.BackendRecord {
		calls++
		return []types.BackendRecord{{Kind: types.BackendConan, Available: true}}
	}

	c.Backends(fill)
	c.Invalidate()
	c.Backends(fill)

	assert.Equal(t, 2, calls)
}

func TestCache_ConcurrentReadersSeeOneFill(t *testing.T) {
	var c Cache
	var calls atomic.Int32
	fill := func() []types.ToolchainCandidate {
		calls.Add(1)
		return []types.ToolchainCandidate{{Family: types.FamilyGCC, Status: types.StatusAvailable}}
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Toolchains(fill)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
