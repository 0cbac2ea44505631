package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache()
	key := Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, Entry{Offers: []types.TimeString{"09:00", "09:30"}})

	entry, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, entry.Offers)
}

func TestCache_CopiesOffers(t *testing.T) {
	c := NewCache()
	key := Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}

	stored := []types.TimeString{"09:00", "09:30"}
	c.Set(key, Entry{Offers: stored})

	// Мутация исходного слайса не должна трогать кэш
	stored[0] = "XX:XX"
	entry, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("09:00"), entry.Offers[0])

	// Мутация полученного слайса не должна трогать кэш
	entry.Offers[1] = "YY:YY"
	again, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("09:30"), again.Offers[1])
}

func TestCache_GranularityIsPartOfKey(t *testing.T) {
	c := NewCache()

	c.Set(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}, Entry{FullyBooked: true})

	_, ok := c.Get(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 60})
	assert.False(t, ok)
}

func TestCache_InvalidateDay(t *testing.T) {
	c := NewCache()
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	// Разные гранулярности одного дня и соседний день
	c.Set(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}, Entry{})
	c.Set(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 60}, Entry{})
	c.Set(Key{SpecialistID: 1, Date: "2026-03-17", GranularityMinutes: 30}, Entry{})
	c.Set(Key{SpecialistID: 2, Date: "2026-03-16", GranularityMinutes: 30}, Entry{})

	c.InvalidateDay(1, date)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(Key{SpecialistID: 1, Date: "2026-03-17", GranularityMinutes: 30})
	assert.True(t, ok, "other days of the specialist survive")
	_, ok = c.Get(Key{SpecialistID: 2, Date: "2026-03-16", GranularityMinutes: 30})
	assert.True(t, ok, "other specialists survive")
}

func TestCache_InvalidateSpecialist(t *testing.T) {
	c := NewCache()

	c.Set(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}, Entry{})
	c.Set(Key{SpecialistID: 1, Date: "2026-03-17", GranularityMinutes: 30}, Entry{})
	c.Set(Key{SpecialistID: 2, Date: "2026-03-16", GranularityMinutes: 30}, Entry{})

	c.InvalidateSpecialist(1)

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(Key{SpecialistID: 2, Date: "2026-03-16", GranularityMinutes: 30})
	assert.True(t, ok)
}

func TestCache_InvalidateAll(t *testing.T) {
	c := NewCache()

	c.Set(Key{SpecialistID: 1, Date: "2026-03-16", GranularityMinutes: 30}, Entry{})
	c.Set(Key{SpecialistID: 2, Date: "2026-03-17", GranularityMinutes: 60}, Entry{})

	c.InvalidateAll()

	assert.Equal(t, 0, c.Len())
}
