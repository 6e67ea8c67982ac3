package textures

import (
	"fmt"
	"sync"
)

// TargetPool owns the render targets a backend draws into, keyed by name.
// A target is reallocated only when the requested size changes.
type TargetPool struct {
	targets map[string]*Texture
	mu      sync.RWMutex

	allocations int
}

// NewTargetPool creates an empty pool.
func NewTargetPool() *TargetPool {
	return &TargetPool{
		targets: make(map[string]*Texture),
	}
}

// Acquire returns the named target at the given size, reusing the cached
// one when the size matches. The second result reports a fresh allocation,
// whose contents are zero.
func (tp *TargetPool) Acquire(name string, width, height int) (*Texture, bool, error) {
	tp.mu.RLock()
	if tex, ok := tp.targets[name]; ok && tex.Width == width && tex.Height == height {
		tp.mu.RUnlock()
		return tex, false, nil
	}
	tp.mu.RUnlock()

	tex, err := NewTexture(name, width, height)
	if err != nil {
		return nil, false, fmt.Errorf("allocate target: %w", err)
	}

	tp.mu.Lock()
	tp.targets[name] = tex
	tp.allocations++
	tp.mu.Unlock()

	return tex, true, nil
}

// Lookup returns the named target if it exists.
func (tp *TargetPool) Lookup(name string) (*Texture, bool) {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	tex, ok := tp.targets[name]
	return tex, ok
}

// Allocations reports how many targets the pool has created.
func (tp *TargetPool) Allocations() int {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.allocations
}

// Release drops every target.
func (tp *TargetPool) Release() {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.targets = make(map[string]*Texture)
}
