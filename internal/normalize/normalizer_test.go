package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjus/processo-engine/internal/models"
)

func decode(t *testing.T, payload string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeFullPayload(t *testing.T) {
	raw := decode(t, `{
		"numeroProcesso": "00123456720248260100",
		"classe": {"codigo": 436, "nome": "Procedimento Comum Cível"},
		"assuntos": [{"codigo": 7698, "nome": "Rescisão de contrato"}],
		"tribunal": "TJSP",
		"orgaoJulgador": {"nome": "1ª Vara Cível", "municipio": "São Paulo"},
		"dataAjuizamento": "2024-01-10T00:00:00.000Z",
		"valorCausa": 15000.5,
		"polos": [
			{
				"polo": "1",
				"partes": [
					{
						"nome": "Maria da Silva",
						"documento": "12345678901",
						"advogados": [{"nome": "Dr. João Souza", "numeroOAB": "SP123456"}]
					}
				]
			},
			{
				"polo": "2",
				"partes": [{"nome": "Empresa XYZ Ltda", "documento": "11222333000144"}]
			}
		],
		"movimentos": [
			{"dataHora": "2024-03-05T10:00:00.000Z", "nome": "Juntada de petição"},
			{"dataHora": "2024-01-10T09:00:00.000Z", "nome": "Distribuição"},
			{"dataHora": "2024-05-20T14:30:00.000Z", "nome": "Conclusos para decisão",
			 "complementosTabelados": [{"nome": "despacho"}]}
		]
	}`)

	n := NewNormalizer(20)
	record := n.Normalize(raw, "TJXX")

	assert.Equal(t, "00123456720248260100", record.CaseNumber)
	assert.Equal(t, "Procedimento Comum Cível", record.CaseClass)
	assert.Equal(t, "Rescisão de contrato", record.Subject)
	assert.Equal(t, "TJSP", record.Tribunal)
	assert.Equal(t, "1ª Vara Cível", record.Court)
	assert.Equal(t, "São Paulo", record.Venue)
	assert.Equal(t, 15000.5, record.ClaimValue)
	assert.Equal(t, 2024, record.FilingDate.Year())

	require.Len(t, record.Parties, 2)
	assert.Equal(t, "Maria da Silva", record.Parties[0].Name)
	assert.Equal(t, models.RolePlaintiff, record.Parties[0].Role)
	assert.Equal(t, models.RoleDefendant, record.Parties[1].Role)

	require.Len(t, record.Attorneys, 1)
	assert.Equal(t, "Dr. João Souza", record.Attorneys[0].Name)
	assert.Equal(t, "SP123456", record.Attorneys[0].BarNumber)
	assert.Equal(t, models.RolePlaintiff, record.Attorneys[0].RepresentedRole)

	// Movements come back chronologically ordered
	require.Len(t, record.Movements, 3)
	assert.Equal(t, "Distribuição", record.Movements[0].Description)
	assert.Equal(t, "Conclusos para decisão", record.Movements[2].Description)
	assert.Equal(t, "despacho", record.Movements[2].Note)
	assert.Equal(t, record.Movements[2].Date, record.LastMovementDate)
}

func TestNormalizeAbsentFields(t *testing.T) {
	n := NewNormalizer(20)
	record := n.Normalize(map[string]interface{}{}, "TJSP")

	assert.Equal(t, NotInformed, record.CaseNumber)
	assert.Equal(t, NotInformed, record.CaseClass)
	assert.Equal(t, NotInformed, record.Subject)
	assert.Equal(t, "TJSP", record.Tribunal)
	assert.Equal(t, NotInformed, record.Status)
	assert.Zero(t, record.ClaimValue)
	assert.True(t, record.FilingDate.IsZero())
	assert.Empty(t, record.Parties)
	assert.Empty(t, record.Movements)
}

func TestNormalizeNilHit(t *testing.T) {
	n := NewNormalizer(20)
	record := n.Normalize(nil, "TJRJ")
	assert.Equal(t, NotInformed, record.CaseNumber)
	assert.Equal(t, "TJRJ", record.Tribunal)
}

func TestNormalizePoloObjectShape(t *testing.T) {
	raw := decode(t, `{
		"numero_processo": "0001111-22.2023.8.19.0001",
		"poloAtivo": {"partes": [{"nome": "Autor Um", "cpf": "98765432100"}]},
		"poloPassivo": {"partes": [
			{"nome": "Réu Um", "cnpj": "99888777000166",
			 "advogados": [{"nome": "Dra. Ana Lima", "oab": "RJ54321"}]}
		]}
	}`)

	n := NewNormalizer(20)
	record := n.Normalize(raw, "TJRJ")

	require.Len(t, record.Parties, 2)
	assert.Equal(t, models.RolePlaintiff, record.Parties[0].Role)
	assert.Equal(t, "98765432100", record.Parties[0].DocumentID)
	assert.Equal(t, models.RoleDefendant, record.Parties[1].Role)

	require.Len(t, record.Attorneys, 1)
	assert.Equal(t, models.RoleDefendant, record.Attorneys[0].RepresentedRole)
}

func TestNormalizeFlatPartyList(t *testing.T) {
	raw := decode(t, `{
		"partes": [
			{"nome": "Requerente", "polo": "AT"},
			{"nome": "Requerido", "polo": "PA"}
		]
	}`)

	n := NewNormalizer(20)
	record := n.Normalize(raw, "TJMG")

	require.Len(t, record.Parties, 2)
	assert.Equal(t, models.RolePlaintiff, record.Parties[0].Role)
	assert.Equal(t, models.RoleDefendant, record.Parties[1].Role)
}

func TestNormalizeMovementWindow(t *testing.T) {
	movements := make([]interface{}, 0, 30)
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		movements = append(movements, map[string]interface{}{
			"dataHora": base.AddDate(0, 0, i).Format(time.RFC3339),
			"nome":     "Movimento",
		})
	}

	n := NewNormalizer(10)
	record := n.Normalize(map[string]interface{}{"movimentos": movements}, "TJSP")

	require.Len(t, record.Movements, 10)
	// The window keeps the most recent entries
	assert.Equal(t, base.AddDate(0, 0, 20), record.Movements[0].Date)
	assert.Equal(t, base.AddDate(0, 0, 29), record.Movements[9].Date)
}

func TestNormalizeClaimValueAsString(t *testing.T) {
	raw := decode(t, `{"valorCausa": "2500,75"}`)
	n := NewNormalizer(20)
	record := n.Normalize(raw, "TJSP")
	assert.Equal(t, 2500.75, record.ClaimValue)
}

func TestNormalizeDoubleNestedSubject(t *testing.T) {
	raw := decode(t, `{"assuntos": [[{"nome": "Dano moral"}]]}`)
	n := NewNormalizer(20)
	record := n.Normalize(raw, "TJSP")
	assert.Equal(t, "Dano moral", record.Subject)
}

func TestNormalizeProducesFreshRecords(t *testing.T) {
	raw := decode(t, `{"numeroProcesso": "123", "movimentos": [{"data": "2024-01-01", "nome": "Distribuição"}]}`)

	n := NewNormalizer(20)
	first := n.Normalize(raw, "TJSP")
	second := n.Normalize(raw, "TJSP")

	assert.Equal(t, first, second)

	// Mutating one snapshot must not leak into the next
	first.Movements[0].Description = "changed"
	third := n.Normalize(raw, "TJSP")
	assert.Equal(t, "Distribuição", third.Movements[0].Description)
}
