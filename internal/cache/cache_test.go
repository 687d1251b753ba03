package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
)

func TestStore_PutGet(t *testing.T) {
	store := New()
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	store.Put("10384", domain.ForecastResult{Station: "10384", RecordCount: 3}, at)

	entry, ok := store.Get("10384")
	require.True(t, ok)
	assert.Equal(t, "10384", entry.Result.Station)
	assert.Equal(t, 3, entry.Result.RecordCount)
	assert.Equal(t, at, entry.CapturedAt)
}

func TestStore_GetUnknownStation(t *testing.T) {
	store := New()

	_, ok := store.Get("10384")

	assert.False(t, ok)
}

func TestStore_PutOverwrites(t *testing.T) {
	store := New()
	first := time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	store.Put("10384", domain.ForecastResult{Station: "10384", RecordCount: 1}, first)
	store.Put("10384", domain.ForecastResult{Station: "10384", RecordCount: 5}, second)

	entry, ok := store.Get("10384")
	require.True(t, ok)
	assert.Equal(t, 5, entry.Result.RecordCount)
	assert.Equal(t, second, entry.CapturedAt)
}

func TestStore_EntriesAreIndependentPerStation(t *testing.T) {
	store := New()
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	store.Put("10384", domain.ForecastResult{Station: "10384"}, at)
	store.Put("10641", domain.ForecastResult{Station: "10641"}, at)

	entry, ok := store.Get("10641")
	require.True(t, ok)
	assert.Equal(t, "10641", entry.Result.Station)
}
