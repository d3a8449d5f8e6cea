package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjus/processo-engine/internal/models"
)

func sampleRecord(caseNumber string) models.CanonicalCaseRecord {
	return models.CanonicalCaseRecord{
		CaseNumber: caseNumber,
		CaseClass:  "Procedimento Comum Cível",
		Tribunal:   "TJSP",
		Status:     "Em andamento",
		Movements: []models.Movement{
			{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Description: "Distribuição"},
		},
	}
}

func TestSetAndGet(t *testing.T) {
	c := NewCache(100, time.Hour)
	record := sampleRecord("0012345-67.2024.8.26.0100")

	require.NoError(t, c.Set("0012345-67.2024.8.26.0100", record, "TJSP"))

	entry, found := c.Get("0012345-67.2024.8.26.0100")
	require.True(t, found)
	assert.Equal(t, record, entry.Record)
	assert.Equal(t, "TJSP", entry.Tribunal)
	assert.False(t, entry.FetchedAt.IsZero())
	assert.True(t, entry.ExpiresAt.After(entry.FetchedAt))
}

func TestKeySpellingsShareEntry(t *testing.T) {
	c := NewCache(100, time.Hour)
	record := sampleRecord("0012345-67.2024.8.26.0100")

	require.NoError(t, c.Set("0012345-67.2024.8.26.0100", record, "TJSP"))

	// Bare-digit spelling of the same identifier hits the same entry
	entry, found := c.Get("00123456720248260100")
	require.True(t, found)
	assert.Equal(t, record, entry.Record)
}

func TestMissAndExpiry(t *testing.T) {
	c := NewCache(100, 20*time.Millisecond)

	_, found := c.Get("unknown")
	assert.False(t, found)

	require.NoError(t, c.Set("123", sampleRecord("123"), "TJSP"))
	_, found = c.Get("123")
	require.True(t, found)

	time.Sleep(40 * time.Millisecond)

	// Lazy expiry: a stale entry reads as a miss
	_, found = c.Get("123")
	assert.False(t, found)
}

func TestLastWriteWins(t *testing.T) {
	c := NewCache(100, time.Hour)

	first := sampleRecord("123")
	first.Status = "Em andamento"
	second := sampleRecord("123")
	second.Status = "Sentença publicada"

	require.NoError(t, c.Set("123", first, "TJSP"))
	require.NoError(t, c.Set("123", second, "TJSP"))

	entry, found := c.Get("123")
	require.True(t, found)
	assert.Equal(t, "Sentença publicada", entry.Record.Status)
}

func TestConcurrentAccess(t *testing.T) {
	c := NewCache(1000, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("case-%d", n%10)
			_ = c.Set(key, sampleRecord(key), "TJSP")
			if entry, found := c.Get(key); found {
				// Whole entries only, never a partial record
				assert.NotEmpty(t, entry.Record.CaseNumber)
			}
		}(i)
	}
	wg.Wait()
}

func TestStats(t *testing.T) {
	c := NewCache(100, time.Hour)

	c.Get("missing")
	require.NoError(t, c.Set("123", sampleRecord("123"), "TJSP"))
	c.Get("123")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.False(t, stats.LastAccess.IsZero())
}

func TestEvictionAtCapacity(t *testing.T) {
	c := NewCache(2, time.Hour)

	require.NoError(t, c.Set("1", sampleRecord("1"), "TJSP"))
	require.NoError(t, c.Set("2", sampleRecord("2"), "TJSP"))
	require.NoError(t, c.Set("3", sampleRecord("3"), "TJSP"))

	assert.LessOrEqual(t, c.Stats().Size, 2+1)
}

func TestClear(t *testing.T) {
	c := NewCache(100, time.Hour)
	require.NoError(t, c.Set("123", sampleRecord("123"), "TJSP"))

	c.Clear()

	_, found := c.Get("123")
	assert.False(t, found)
	assert.Equal(t, 0, c.Stats().Size)
}
