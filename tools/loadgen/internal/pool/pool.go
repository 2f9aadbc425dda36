package pool

import (
	"context"
	"time"
)

// EvictionPolicy selects which value to drop when a pool or buffer
// reaches its per-type cap.
type EvictionPolicy int

const (
	// EvictionFIFO drops the oldest stored value.
	EvictionFIFO EvictionPolicy = iota

	// EvictionLRU drops the value whose last retrieval is furthest in
	// the past.
	EvictionLRU

	// EvictionRandom drops an arbitrary value.
	EvictionRandom
)

func (e EvictionPolicy) String() string {
	switch e {
	case EvictionFIFO:
		return "FIFO"
	case EvictionLRU:
		return "LRU"
	case EvictionRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// ParseEvictionPolicy maps a config string to a policy; unrecognized
// values fall back to FIFO.
func ParseEvictionPolicy(s string) EvictionPolicy {
	switch s {
	case "LRU", "lru":
		return EvictionLRU
	case "Random", "random", "RANDOM":
		return EvictionRandom
	default:
		return EvictionFIFO
	}
}

// Stats is a point-in-time snapshot of a pool's counters.
type Stats struct {
	// TotalValues is the number of values currently stored
	TotalValues int64

	// ValuesByType breaks TotalValues down per semantic type
	ValuesByType map[SemanticType]int64

	// HitCount counts Get/GetRandom calls that returned a value
	HitCount int64

	// MissCount counts Get/GetRandom calls that came back empty
	MissCount int64

	// EvictionCount counts values dropped to make room
	EvictionCount int64

	// ExpiredCount counts values dropped because their TTL elapsed
	ExpiredCount int64

	// AddCount counts every value ever added
	AddCount int64

	// Uptime is the time since the pool was created
	Uptime time.Duration
}

// HitRate is the percentage of retrievals that found a value.
func (s Stats) HitRate() float64 {
	total := s.HitCount + s.MissCount
	if total == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(total) * 100
}

// ParameterPool stores values harvested from API responses, keyed by
// semantic type, so later requests can reference earlier entities.
type ParameterPool interface {
	// Add stores a value for its semantic type and reports how many
	// values were evicted to make room.
	Add(ctx context.Context, value *ParameterValue) (evicted int, err error)

	// Get returns a value for the type, or nil when none is available.
	Get(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetRandom returns a random value for the type, or nil when none
	// is available.
	GetRandom(ctx context.Context, semanticType SemanticType) (*ParameterValue, error)

	// GetAll returns every live value for the type.
	GetAll(ctx context.Context, semanticType SemanticType) ([]*ParameterValue, error)

	// Count reports the number of stored values for the type.
	Count(ctx context.Context, semanticType SemanticType) (int, error)

	// Remove deletes a specific value, reporting whether it was found.
	Remove(ctx context.Context, value *ParameterValue) (bool, error)

	// Clear drops all values of the type and reports how many.
	Clear(ctx context.Context, semanticType SemanticType) (int, error)

	// ClearAll empties the pool.
	ClearAll(ctx context.Context) error

	// Cleanup drops expired values and reports how many.
	Cleanup(ctx context.Context) (int, error)

	// Stats snapshots the pool counters.
	Stats(ctx context.Context) (Stats, error)

	// Types lists the semantic types that currently hold values.
	Types(ctx context.Context) ([]SemanticType, error)

	// Close stops background work; subsequent calls fail with
	// ErrPoolClosed.
	Close() error
}

// PoolConfig tunes pool capacity, expiry and sharding.
type PoolConfig struct {
	// DefaultTTL is the value lifetime (0 disables expiration)
	DefaultTTL time.Duration

	// MaxValuesPerType caps stored values per semantic type (0 means
	// unlimited for the simple pool)
	MaxValuesPerType int

	// EvictionPolicy picks the victim when a type is at its cap
	EvictionPolicy EvictionPolicy

	// CleanupInterval is the period of the background expiry sweep
	// (0 disables it)
	CleanupInterval time.Duration

	// ShardCount is the shard fan-out for ShardedParameterPool,
	// rounded up to a power of two
	ShardCount int
}

// DefaultPoolConfig matches a typical load-test run: five-minute TTLs
// and a thousand values per type.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		DefaultTTL:       5 * time.Minute,
		MaxValuesPerType: 1000,
		EvictionPolicy:   EvictionFIFO,
		CleanupInterval:  1 * time.Minute,
		ShardCount:       16,
	}
}
