package pool

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// RingBuffer is a fixed-capacity circular store for ParameterValues.
// When full it evicts per the configured policy; reads do not consume.
type RingBuffer struct {
	mu       sync.RWMutex
	items    []*ParameterValue
	head     int // next write slot
	tail     int // oldest occupied slot
	count    int
	capacity int

	evictionPolicy EvictionPolicy
	evictionCount  atomic.Int64

	// accessOrder holds slot indices ordered oldest-access first; only
	// maintained under the LRU policy.
	accessOrder []int

	rng *rand.Rand
}

// NewRingBuffer allocates a buffer. Non-positive capacities fall back
// to 1000.
func NewRingBuffer(capacity int, policy EvictionPolicy) *RingBuffer {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingBuffer{
		items:          make([]*ParameterValue, capacity),
		capacity:       capacity,
		evictionPolicy: policy,
		accessOrder:    make([]int, 0, capacity),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add stores a value, evicting one entry first if the buffer is full.
// Returns the number of values evicted.
func (rb *RingBuffer) Add(value *ParameterValue) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	evicted := 0
	if rb.count >= rb.capacity {
		evicted = rb.evictLocked()
	}

	rb.items[rb.head] = value
	if rb.evictionPolicy == EvictionLRU {
		rb.accessOrder = append(rb.accessOrder, rb.head)
	}
	rb.head = (rb.head + 1) % rb.capacity
	rb.count++

	return evicted
}

// evictLocked frees one slot per the policy. Caller holds the write lock.
func (rb *RingBuffer) evictLocked() int {
	if rb.count == 0 {
		return 0
	}

	var victim int
	switch rb.evictionPolicy {
	case EvictionFIFO:
		victim = rb.tail
		rb.tail = (rb.tail + 1) % rb.capacity

	case EvictionLRU:
		if len(rb.accessOrder) > 0 {
			victim = rb.accessOrder[0]
			rb.accessOrder = rb.accessOrder[1:]
			if victim == rb.tail {
				rb.tail = (rb.tail + 1) % rb.capacity
			}
		} else {
			victim = rb.tail
			rb.tail = (rb.tail + 1) % rb.capacity
		}

	case EvictionRandom:
		victim = rb.randomOccupiedSlot()
		if victim == rb.tail {
			rb.tail = (rb.tail + 1) % rb.capacity
		}
	}

	rb.items[victim] = nil
	rb.count--
	rb.evictionCount.Add(1)
	return 1
}

// randomOccupiedSlot picks a random slot holding a value. Caller holds
// the lock and guarantees count > 0.
func (rb *RingBuffer) randomOccupiedSlot() int {
	start := (rb.tail + rb.rng.Intn(rb.count)) % rb.capacity
	for i := 0; i < rb.capacity; i++ {
		idx := (start + i) % rb.capacity
		if rb.items[idx] != nil {
			return idx
		}
	}
	return rb.tail
}

// Get returns the oldest value without removing it, or nil when empty.
func (rb *RingBuffer) Get() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}

	for i := 0; i < rb.capacity; i++ {
		idx := (rb.tail + i) % rb.capacity
		if rb.items[idx] != nil {
			value := rb.items[idx]
			value.Touch()
			rb.markAccessed(idx)
			return value
		}
	}
	return nil
}

// GetRandom returns a random value without removing it, or nil when empty.
func (rb *RingBuffer) GetRandom() *ParameterValue {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.count == 0 {
		return nil
	}

	start := rb.rng.Intn(rb.capacity)
	for i := 0; i < rb.capacity; i++ {
		idx := (start + i) % rb.capacity
		if rb.items[idx] != nil {
			value := rb.items[idx]
			value.Touch()
			rb.markAccessed(idx)
			return value
		}
	}
	return nil
}

// markAccessed moves the slot to the back of the LRU order. Caller holds
// the lock.
func (rb *RingBuffer) markAccessed(idx int) {
	if rb.evictionPolicy != EvictionLRU {
		return
	}
	rb.dropFromAccessOrder(idx)
	rb.accessOrder = append(rb.accessOrder, idx)
}

func (rb *RingBuffer) dropFromAccessOrder(idx int) {
	for i, slot := range rb.accessOrder {
		if slot == idx {
			rb.accessOrder = append(rb.accessOrder[:i], rb.accessOrder[i+1:]...)
			return
		}
	}
}

// GetAll returns every stored value.
func (rb *RingBuffer) GetAll() []*ParameterValue {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]*ParameterValue, 0, rb.count)
	for _, item := range rb.items {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}

// Count returns the number of stored values.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Capacity returns the fixed buffer size.
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// EvictionCount returns how many values the buffer has evicted.
func (rb *RingBuffer) EvictionCount() int64 {
	return rb.evictionCount.Load()
}

// Remove deletes the exact value (pointer identity). Returns whether it
// was found.
func (rb *RingBuffer) Remove(value *ParameterValue) bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i, item := range rb.items {
		if item == value {
			rb.items[i] = nil
			rb.count--
			if rb.evictionPolicy == EvictionLRU {
				rb.dropFromAccessOrder(i)
			}
			return true
		}
	}
	return false
}

// Clear empties the buffer and returns how many values were dropped.
func (rb *RingBuffer) Clear() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := rb.count
	for i := range rb.items {
		rb.items[i] = nil
	}
	rb.head = 0
	rb.tail = 0
	rb.count = 0
	rb.accessOrder = rb.accessOrder[:0]
	return removed
}

// RemoveExpired drops every expired value and returns the count removed.
func (rb *RingBuffer) RemoveExpired() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	removed := 0
	for i, item := range rb.items {
		if item != nil && item.IsExpired() {
			rb.items[i] = nil
			rb.count--
			removed++
			if rb.evictionPolicy == EvictionLRU {
				rb.dropFromAccessOrder(i)
			}
		}
	}
	return removed
}

// IsFull reports whether the buffer is at capacity.
func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count >= rb.capacity
}

// IsEmpty reports whether the buffer holds no values.
func (rb *RingBuffer) IsEmpty() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count == 0
}
