package synthetic

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjus/processo-engine/internal/models"
)

func TestGenerateMarksEveryField(t *testing.T) {
	g := NewGenerator()
	record := g.Generate("0012345-67.2024.8.26.0100", "TJSP")

	assert.Equal(t, "0012345-67.2024.8.26.0100", record.CaseNumber)
	assert.Equal(t, "TJSP", record.Tribunal)
	assert.Contains(t, record.CaseClass, Marker)
	assert.Contains(t, record.Subject, Marker)
	assert.Contains(t, record.Court, Marker)
	assert.Contains(t, record.Venue, Marker)
	assert.Contains(t, record.Status, Marker)

	require.NotEmpty(t, record.Parties)
	for _, party := range record.Parties {
		assert.Contains(t, party.Name, Marker)
		assert.Contains(t, party.DocumentID, Marker)
	}

	require.NotEmpty(t, record.Attorneys)
	for _, attorney := range record.Attorneys {
		assert.Contains(t, attorney.Name, Marker)
		assert.Contains(t, attorney.BarNumber, Marker)
	}

	require.NotEmpty(t, record.Movements)
	for _, movement := range record.Movements {
		assert.Contains(t, movement.Description, Marker)
	}
}

func TestGenerateIsRenderable(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	g := NewGeneratorAt(func() time.Time { return now })

	record := g.Generate("123", "TJRJ")

	assert.False(t, record.FilingDate.IsZero())
	assert.False(t, record.LastMovementDate.IsZero())
	assert.True(t, record.FilingDate.Before(record.LastMovementDate))
	assert.Equal(t, record.Movements[len(record.Movements)-1].Date, record.LastMovementDate)

	// Both sides are represented so any party view renders
	roles := map[models.PartyRole]bool{}
	for _, p := range record.Parties {
		roles[p.Role] = true
	}
	assert.True(t, roles[models.RolePlaintiff])
	assert.True(t, roles[models.RoleDefendant])
}

func TestGenerateEmptyIdentifier(t *testing.T) {
	g := NewGenerator()
	record := g.Generate("", "")

	assert.Contains(t, record.CaseNumber, Marker)
	assert.NotEmpty(t, record.Tribunal)
}

func TestIsSynthetic(t *testing.T) {
	g := NewGenerator()
	assert.True(t, IsSynthetic(g.Generate("123", "TJSP")))

	real := models.CanonicalCaseRecord{
		CaseClass: "Procedimento Comum Cível",
		Status:    "Em andamento",
	}
	assert.False(t, IsSynthetic(real))
}

func TestNoRealLookingNames(t *testing.T) {
	g := NewGenerator()
	record := g.Generate("123", "TJSP")

	// Every human-readable field must open with the marker so nothing
	// can be mistaken for real data when rendered in isolation.
	for _, party := range record.Parties {
		assert.True(t, strings.HasPrefix(party.Name, Marker))
		assert.True(t, strings.HasPrefix(party.DocumentID, Marker))
	}
	for _, attorney := range record.Attorneys {
		assert.True(t, strings.HasPrefix(attorney.Name, Marker))
	}
	for _, movement := range record.Movements {
		assert.True(t, strings.HasPrefix(movement.Description, Marker))
	}
}
