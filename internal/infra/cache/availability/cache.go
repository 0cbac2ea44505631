package availability

import (
	"sync"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Key identifies one cached availability computation.
type Key struct {
	SpecialistID       int64
	Date               string // domain.DateFormat
	GranularityMinutes int
}

// Entry is a cached availability result.
type Entry struct {
	Offers      []types.TimeString
	NotWorking  bool
	FullyBooked bool
}

// Cache is an invalidate-on-write availability cache.
//
// Correctness, not staleness tolerance, is the requirement: entries never
// expire by time, they are dropped explicitly whenever a shift, facility
// hours or booking write touches the data they were computed from.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewCache creates an empty availability cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]Entry),
	}
}

// Get returns the cached entry for the key, if present.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}

	// Копию наружу - кэш не должен делить слайс с вызывающим кодом
	offers := make([]types.TimeString, len(entry.Offers))
	copy(offers, entry.Offers)
	entry.Offers = offers

	return entry, true
}

// Set stores the entry for the key.
func (c *Cache) Set(key Key, entry Entry) {
	offers := make([]types.TimeString, len(entry.Offers))
	copy(offers, entry.Offers)
	entry.Offers = offers

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// InvalidateDay drops every cached granularity for one (specialist, date).
// Called on shift writes and booking writes for that day.
func (c *Cache) InvalidateDay(specialistID int64, date time.Time) {
	dateKey := date.Format(domain.DateFormat)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.SpecialistID == specialistID && key.Date == dateKey {
			delete(c.entries, key)
		}
	}
}

// InvalidateSpecialist drops every cached day of one specialist.
// Called on bulk schedule materialization.
func (c *Cache) InvalidateSpecialist(specialistID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.SpecialistID == specialistID {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll drops the whole cache.
// Called on facility-wide writes: default hours or granularity changes.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]Entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
