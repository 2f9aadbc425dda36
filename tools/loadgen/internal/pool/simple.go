package pool

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// SimpleParameterPool guards everything with a single RWMutex. It is the
// easy-to-reason-about variant; workers that hammer the pool should use
// ShardedParameterPool instead.
type SimpleParameterPool struct {
	mu      sync.RWMutex
	values  map[SemanticType][]*ParameterValue
	config  PoolConfig
	startAt time.Time

	hitCount      atomic.Int64
	missCount     atomic.Int64
	addCount      atomic.Int64
	evictionCount atomic.Int64
	expireCount   atomic.Int64

	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	closed        atomic.Bool

	rng *rand.Rand
}

// NewSimpleParameterPool builds a pool and, when CleanupInterval is set,
// starts the background expiry sweep.
func NewSimpleParameterPool(config PoolConfig) *SimpleParameterPool {
	p := &SimpleParameterPool{
		values:      make(map[SemanticType][]*ParameterValue),
		config:      config,
		startAt:     time.Now(),
		cleanupDone: make(chan struct{}),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if config.CleanupInterval > 0 {
		p.cleanupTicker = time.NewTicker(config.CleanupInterval)
		go p.sweepLoop()
	}

	return p
}

// Add stores a value, evicting one entry of the same type first when the
// per-type cap is reached.
func (p *SimpleParameterPool) Add(ctx context.Context, value *ParameterValue) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.addCount.Add(1)

	evicted := 0
	if p.config.MaxValuesPerType > 0 && len(p.values[value.SemanticType]) >= p.config.MaxValuesPerType {
		evicted = p.evictLocked(value.SemanticType)
	}
	p.values[value.SemanticType] = append(p.values[value.SemanticType], value)

	return evicted, nil
}

// evictLocked drops one value per the configured policy. Caller holds the
// write lock.
func (p *SimpleParameterPool) evictLocked(semanticType SemanticType) int {
	values := p.values[semanticType]
	if len(values) == 0 {
		return 0
	}

	victim := 0
	switch p.config.EvictionPolicy {
	case EvictionFIFO:
		// oldest entry sits at the front
	case EvictionLRU:
		coldest := values[0].LastAccessedAt()
		for i, v := range values {
			if v.LastAccessedAt().Before(coldest) {
				coldest = v.LastAccessedAt()
				victim = i
			}
		}
	case EvictionRandom:
		victim = p.rng.Intn(len(values))
	}

	p.values[semanticType] = append(values[:victim], values[victim+1:]...)
	p.evictionCount.Add(1)
	return 1
}

// Get returns the first live value for the type, or nil when none exist.
func (p *SimpleParameterPool) Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, v := range p.values[semanticType] {
		if !v.IsExpired() {
			v.Touch()
			p.hitCount.Add(1)
			return v, nil
		}
	}

	p.missCount.Add(1)
	return nil, nil
}

// GetRandom returns a uniformly random live value for the type.
func (p *SimpleParameterPool) GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	values := p.values[semanticType]
	live := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			live = append(live, v)
		}
	}
	if len(live) == 0 {
		p.missCount.Add(1)
		return nil, nil
	}

	v := live[p.rng.Intn(len(live))]
	v.Touch()
	p.hitCount.Add(1)
	return v, nil
}

// GetAll returns every live value for the type.
func (p *SimpleParameterPool) GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	values := p.values[semanticType]
	result := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			result = append(result, v)
		}
	}
	return result, nil
}

// Count reports how many values (live or expired) the type holds.
func (p *SimpleParameterPool) Count(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.values[semanticType]), nil
}

// Remove deletes the exact value (pointer identity) from the pool.
func (p *SimpleParameterPool) Remove(ctx context.Context, value *ParameterValue) (bool, error) {
	if p.closed.Load() {
		return false, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	values := p.values[value.SemanticType]
	for i, v := range values {
		if v == value {
			p.values[value.SemanticType] = append(values[:i], values[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clear drops every value of the given type.
func (p *SimpleParameterPool) Clear(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	count := len(p.values[semanticType])
	delete(p.values, semanticType)
	return count, nil
}

// ClearAll empties the pool.
func (p *SimpleParameterPool) ClearAll(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.values = make(map[SemanticType][]*ParameterValue)
	return nil
}

// Cleanup drops expired values and reports how many were removed.
func (p *SimpleParameterPool) Cleanup(ctx context.Context) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	removed := 0
	for st, values := range p.values {
		kept := values[:0:0]
		for _, v := range values {
			if v.IsExpired() {
				removed++
				continue
			}
			kept = append(kept, v)
		}
		if len(kept) != len(values) {
			p.values[st] = kept
		}
	}

	p.expireCount.Add(int64(removed))
	return removed, nil
}

func (p *SimpleParameterPool) sweepLoop() {
	for {
		select {
		case <-p.cleanupTicker.C:
			_, _ = p.Cleanup(context.Background())
		case <-p.cleanupDone:
			return
		}
	}
}

// Stats snapshots the pool counters.
func (p *SimpleParameterPool) Stats(ctx context.Context) (Stats, error) {
	if p.closed.Load() {
		return Stats{}, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := Stats{
		ValuesByType:  make(map[SemanticType]int64),
		HitCount:      p.hitCount.Load(),
		MissCount:     p.missCount.Load(),
		EvictionCount: p.evictionCount.Load(),
		ExpiredCount:  p.expireCount.Load(),
		AddCount:      p.addCount.Load(),
		Uptime:        time.Since(p.startAt),
	}
	for st, values := range p.values {
		count := int64(len(values))
		stats.TotalValues += count
		stats.ValuesByType[st] = count
	}
	return stats, nil
}

// Types lists the semantic types that currently hold values.
func (p *SimpleParameterPool) Types(ctx context.Context) ([]SemanticType, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	types := make([]SemanticType, 0, len(p.values))
	for st, values := range p.values {
		if len(values) > 0 {
			types = append(types, st)
		}
	}
	return types, nil
}

// Close stops the sweep goroutine. Subsequent operations fail with
// ErrPoolClosed.
func (p *SimpleParameterPool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}

	if p.cleanupTicker != nil {
		p.cleanupTicker.Stop()
		close(p.cleanupDone)
	}
	return nil
}

// EvictionCount exposes the eviction counter for tests and reporting.
func (p *SimpleParameterPool) EvictionCount() int64 {
	return p.evictionCount.Load()
}
