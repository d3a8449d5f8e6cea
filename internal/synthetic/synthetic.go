package synthetic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openjus/processo-engine/internal/models"
	"github.com/openjus/processo-engine/internal/normalize"
)

// Marker is stamped into every human-readable field of a synthetic
// record. Callers must always be able to tell placeholder data from a
// real record; this generator is never allowed to look real.
const Marker = "[DADOS SIMULADOS]"

// Generator produces placeholder records when no backend yields a real
// answer. The product requirement is that something displayable is
// always returned, with its provenance flagged, never a hard error.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt pins the clock, for tests
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate builds a fully-populated placeholder record for the given
// identifier. Every party, attorney and movement description carries
// the simulation marker.
func (g *Generator) Generate(identifier, tribunal string) models.CanonicalCaseRecord {
	now := g.now()
	caseNumber := strings.TrimSpace(identifier)
	if caseNumber == "" {
		caseNumber = fmt.Sprintf("%s 0000000-00.%d.0.00.0000", Marker, now.Year())
	}
	if tribunal == "" {
		tribunal = normalize.NotInformed
	}

	simID := func() string {
		return fmt.Sprintf("%s %s", Marker, uuid.NewString()[:8])
	}

	filing := now.AddDate(0, -6, 0)
	movements := []models.Movement{
		{
			Date:        filing,
			Description: fmt.Sprintf("%s Distribuição do processo", Marker),
		},
		{
			Date:        now.AddDate(0, -3, 0),
			Description: fmt.Sprintf("%s Juntada de documentos", Marker),
		},
		{
			Date:        now.AddDate(0, 0, -15),
			Description: fmt.Sprintf("%s Aguardando manifestação das partes", Marker),
		},
	}

	return models.CanonicalCaseRecord{
		CaseNumber:       caseNumber,
		CaseClass:        fmt.Sprintf("%s Procedimento Comum Cível", Marker),
		Subject:          fmt.Sprintf("%s Assunto indisponível", Marker),
		Tribunal:         tribunal,
		Court:            fmt.Sprintf("%s Vara não identificada", Marker),
		Venue:            fmt.Sprintf("%s Comarca não identificada", Marker),
		FilingDate:       filing,
		LastMovementDate: movements[len(movements)-1].Date,
		Status:           fmt.Sprintf("%s Em andamento", Marker),
		ClaimValue:       0,
		Parties: []models.Party{
			{
				Name:       fmt.Sprintf("%s Parte Autora", Marker),
				Role:       models.RolePlaintiff,
				DocumentID: simID(),
			},
			{
				Name:       fmt.Sprintf("%s Parte Ré", Marker),
				Role:       models.RoleDefendant,
				DocumentID: simID(),
			},
		},
		Attorneys: []models.Attorney{
			{
				Name:            fmt.Sprintf("%s Advogado(a)", Marker),
				BarNumber:       simID(),
				RepresentedRole: models.RolePlaintiff,
			},
		},
		Movements: movements,
	}
}

// IsSynthetic reports whether a record came from this generator
func IsSynthetic(record models.CanonicalCaseRecord) bool {
	return strings.Contains(record.Status, Marker) || strings.Contains(record.CaseClass, Marker)
}
