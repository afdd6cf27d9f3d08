package cache

import (
	"context"
	"sync"
	"time"

	"github.com/airparadise/chatbot/internal/domain"
)

type memoryEntry struct {
	flights   []domain.Flight
	expiresAt time.Time
}

// Memory is a capacity-bounded in-memory query cache. When full, the entry
// inserted earliest among the currently present keys is evicted (FIFO, not
// LRU: reads never refresh an entry's position). Expired entries are removed
// on lookup.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	order    []string
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func NewMemory(capacity int, ttl time.Duration) *Memory {
	return &Memory{
		entries:  make(map[string]memoryEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *Memory) GetFlights(_ context.Context, signature string) ([]domain.Flight, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[signature]
	if !ok {
		return nil, nil
	}
	if c.now().After(e.expiresAt) {
		c.deleteLocked(signature)
		return nil, nil
	}
	// Hand out a copy so callers cannot mutate the cached rows.
	return append([]domain.Flight(nil), e.flights...), nil
}

func (c *Memory) SetFlights(_ context.Context, signature string, flights []domain.Flight) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := append([]domain.Flight(nil), flights...)

	if _, ok := c.entries[signature]; ok {
		// Refreshing a present key keeps its insertion position.
		c.entries[signature] = memoryEntry{flights: stored, expiresAt: c.now().Add(c.ttl)}
		return nil
	}

	if c.capacity > 0 && len(c.entries) >= c.capacity {
		c.deleteLocked(c.order[0])
	}

	c.entries[signature] = memoryEntry{flights: stored, expiresAt: c.now().Add(c.ttl)}
	c.order = append(c.order, signature)
	return nil
}

func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Memory) deleteLocked(signature string) {
	delete(c.entries, signature)
	for i, key := range c.order {
		if key == signature {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
