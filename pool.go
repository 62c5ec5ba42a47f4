package wikirt

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one chain is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent chains; transformer state is cheap but
	// unbounded pipelines in a pathological log should not fan out
	// unbounded goroutine-owned chains.
	MaxPoolSize = 16

	// cpuDivisor leaves headroom for the rest of the process.
	cpuDivisor = 2
)

// ChainPool manages reusable transformer chains for parallel pipeline
// replay. Each acquired chain is reset to top-level state, so every
// pipeline gets exactly one fresh state instance and no two pipelines ever
// share one. Chains are created lazily on first acquire.
type ChainPool struct {
	size     int
	newChain func() *Chain
	sem      chan *Chain
	mu       sync.Mutex
	created  int
}

// NewChainPool creates a pool with capacity for n chains built by factory.
func NewChainPool(n int, factory func() *Chain) *ChainPool {
	if n < 1 {
		n = 1
	}
	return &ChainPool{
		size:     n,
		newChain: factory,
		sem:      make(chan *Chain, n),
	}
}

// Acquire gets a chain from the pool, creating one if capacity allows.
// Blocks if all chains are in use. The returned chain is reset for a fresh
// top-level document.
func (p *ChainPool) Acquire() *Chain {
	// Try to get an existing chain (non-blocking)
	select {
	case c := <-p.sem:
		c.ResetState(ResetOptions{TopLevel: true})
		return c
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Build outside the lock; construction may compile patterns.
		c := p.newChain()
		c.ResetState(ResetOptions{TopLevel: true})
		return c
	}
	p.mu.Unlock()

	// All chains created, wait for one to be released
	c := <-p.sem
	c.ResetState(ResetOptions{TopLevel: true})
	return c
}

// Release returns a chain to the pool.
func (p *ChainPool) Release(c *Chain) {
	p.sem <- c
}

// Size returns the pool capacity.
func (p *ChainPool) Size() int { return p.size }

// ResolvePoolSize determines the pool size to use.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
