package pool

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"
)

// shard holds the ring buffers for the semantic types hashed to it,
// together with its own hit/miss counters.
type shard struct {
	mu      sync.RWMutex
	buffers map[SemanticType]*RingBuffer

	hitCount    atomic.Int64
	missCount   atomic.Int64
	addCount    atomic.Int64
	expireCount atomic.Int64
}

// ShardedParameterPool hashes semantic types across independent shards so
// concurrent workers rarely contend on the same lock. Each type's values
// live in a fixed-capacity ring buffer.
type ShardedParameterPool struct {
	shards    []*shard
	shardMask uint64 // len(shards)-1; shard index via bitwise AND

	config  PoolConfig
	startAt time.Time

	evictionCount atomic.Int64

	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	closed        atomic.Bool
}

// NewShardedParameterPool builds the pool. ShardCount is rounded up to a
// power of two so the mask trick works.
func NewShardedParameterPool(config PoolConfig) *ShardedParameterPool {
	shardCount := config.ShardCount
	if shardCount <= 0 {
		shardCount = 16
	}
	shardCount = nextPowerOfTwo(shardCount)

	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{buffers: make(map[SemanticType]*RingBuffer)}
	}

	p := &ShardedParameterPool{
		shards:      shards,
		shardMask:   uint64(shardCount - 1),
		config:      config,
		startAt:     time.Now(),
		cleanupDone: make(chan struct{}),
	}

	if config.CleanupInterval > 0 {
		p.cleanupTicker = time.NewTicker(config.CleanupInterval)
		go p.sweepLoop()
	}

	return p
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

func (p *ShardedParameterPool) shardFor(semanticType SemanticType) *shard {
	h := fnv.New64a()
	h.Write([]byte(semanticType))
	return p.shards[h.Sum64()&p.shardMask]
}

// bufferLocked returns the type's ring buffer, creating it on first use.
// Caller holds the shard write lock.
func (s *shard) bufferLocked(semanticType SemanticType, maxValues int, policy EvictionPolicy) *RingBuffer {
	rb, ok := s.buffers[semanticType]
	if !ok {
		if maxValues <= 0 {
			maxValues = 1000
		}
		rb = NewRingBuffer(maxValues, policy)
		s.buffers[semanticType] = rb
	}
	return rb
}

// Add stores a value in its type's ring buffer, reporting how many
// entries the buffer evicted to make room.
func (p *ShardedParameterPool) Add(ctx context.Context, value *ParameterValue) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	s := p.shardFor(value.SemanticType)

	s.mu.Lock()
	rb := s.bufferLocked(value.SemanticType, p.config.MaxValuesPerType, p.config.EvictionPolicy)
	evicted := rb.Add(value)
	s.addCount.Add(1)
	s.mu.Unlock()

	if evicted > 0 {
		p.evictionCount.Add(int64(evicted))
	}
	return evicted, nil
}

// Get returns the buffer's next value for the type, or nil when empty.
func (p *ShardedParameterPool) Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	s := p.shardFor(semanticType)

	s.mu.RLock()
	rb, ok := s.buffers[semanticType]
	s.mu.RUnlock()

	if !ok {
		s.missCount.Add(1)
		return nil, nil
	}

	value := rb.Get()
	if value == nil || value.IsExpired() {
		s.missCount.Add(1)
		return nil, nil
	}

	s.hitCount.Add(1)
	return value, nil
}

// GetRandom returns a random live value for the type.
func (p *ShardedParameterPool) GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	s := p.shardFor(semanticType)

	s.mu.RLock()
	rb, ok := s.buffers[semanticType]
	s.mu.RUnlock()

	if !ok {
		s.missCount.Add(1)
		return nil, nil
	}

	value := rb.GetRandom()
	if value == nil || value.IsExpired() {
		s.missCount.Add(1)
		return nil, nil
	}

	s.hitCount.Add(1)
	return value, nil
}

// GetAll returns every live value for the type.
func (p *ShardedParameterPool) GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	s := p.shardFor(semanticType)

	s.mu.RLock()
	rb, ok := s.buffers[semanticType]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	values := rb.GetAll()
	result := make([]*ParameterValue, 0, len(values))
	for _, v := range values {
		if !v.IsExpired() {
			result = append(result, v)
		}
	}
	return result, nil
}

// Count reports the number of buffered values for the type.
func (p *ShardedParameterPool) Count(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	s := p.shardFor(semanticType)

	s.mu.RLock()
	rb, ok := s.buffers[semanticType]
	s.mu.RUnlock()

	if !ok {
		return 0, nil
	}
	return rb.Count(), nil
}

// Remove deletes the exact value (pointer identity) from its buffer.
func (p *ShardedParameterPool) Remove(ctx context.Context, value *ParameterValue) (bool, error) {
	if p.closed.Load() {
		return false, ErrPoolClosed
	}

	s := p.shardFor(value.SemanticType)

	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.buffers[value.SemanticType]
	if !ok {
		return false, nil
	}
	return rb.Remove(value), nil
}

// Clear drops the type's entire buffer.
func (p *ShardedParameterPool) Clear(ctx context.Context, semanticType SemanticType) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	s := p.shardFor(semanticType)

	s.mu.Lock()
	defer s.mu.Unlock()

	rb, ok := s.buffers[semanticType]
	if !ok {
		return 0, nil
	}
	cleared := rb.Clear()
	delete(s.buffers, semanticType)
	return cleared, nil
}

// ClearAll empties every shard.
func (p *ShardedParameterPool) ClearAll(ctx context.Context) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	for _, s := range p.shards {
		s.mu.Lock()
		for st, rb := range s.buffers {
			rb.Clear()
			delete(s.buffers, st)
		}
		s.mu.Unlock()
	}
	return nil
}

// Cleanup walks every buffer dropping expired values.
func (p *ShardedParameterPool) Cleanup(ctx context.Context) (int, error) {
	if p.closed.Load() {
		return 0, ErrPoolClosed
	}

	total := 0
	for _, s := range p.shards {
		s.mu.Lock()
		for _, rb := range s.buffers {
			removed := rb.RemoveExpired()
			total += removed
			s.expireCount.Add(int64(removed))
		}
		s.mu.Unlock()
	}
	return total, nil
}

func (p *ShardedParameterPool) sweepLoop() {
	for {
		select {
		case <-p.cleanupTicker.C:
			_, _ = p.Cleanup(context.Background())
		case <-p.cleanupDone:
			return
		}
	}
}

// Stats aggregates counters across all shards.
func (p *ShardedParameterPool) Stats(ctx context.Context) (Stats, error) {
	if p.closed.Load() {
		return Stats{}, ErrPoolClosed
	}

	stats := Stats{
		ValuesByType:  make(map[SemanticType]int64),
		EvictionCount: p.evictionCount.Load(),
		Uptime:        time.Since(p.startAt),
	}

	for _, s := range p.shards {
		s.mu.RLock()
		stats.HitCount += s.hitCount.Load()
		stats.MissCount += s.missCount.Load()
		stats.AddCount += s.addCount.Load()
		stats.ExpiredCount += s.expireCount.Load()

		for st, rb := range s.buffers {
			count := int64(rb.Count())
			stats.TotalValues += count
			stats.ValuesByType[st] += count
		}
		s.mu.RUnlock()
	}
	return stats, nil
}

// Types lists the semantic types with at least one buffered value.
func (p *ShardedParameterPool) Types(ctx context.Context) ([]SemanticType, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}

	types := make([]SemanticType, 0)
	seen := make(map[SemanticType]bool)
	for _, s := range p.shards {
		s.mu.RLock()
		for st, rb := range s.buffers {
			if rb.Count() > 0 && !seen[st] {
				types = append(types, st)
				seen[st] = true
			}
		}
		s.mu.RUnlock()
	}
	return types, nil
}

// Close stops the sweep goroutine. Subsequent operations fail with
// ErrPoolClosed.
func (p *ShardedParameterPool) Close() error {
	if p.closed.Swap(true) {
		return ErrPoolClosed
	}

	if p.cleanupTicker != nil {
		p.cleanupTicker.Stop()
		close(p.cleanupDone)
	}
	return nil
}

// ShardCount reports the effective (rounded) number of shards.
func (p *ShardedParameterPool) ShardCount() int {
	return len(p.shards)
}

// EvictionCount exposes the eviction counter for tests and reporting.
func (p *ShardedParameterPool) EvictionCount() int64 {
	return p.evictionCount.Load()
}
