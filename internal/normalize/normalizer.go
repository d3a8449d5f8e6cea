package normalize

import (
	"sort"
	"strings"

	"github.com/openjus/processo-engine/internal/models"
)

// Normalizer converts raw backend hits into canonical case records.
// Backend schemas drift and are not contractually guaranteed, so every
// nested access reads-or-defaults instead of assuming shape.
type Normalizer struct {
	movementWindow int
}

// NewNormalizer creates a normalizer that retains at most window
// movements per record.
func NewNormalizer(movementWindow int) *Normalizer {
	if movementWindow <= 0 {
		movementWindow = 20
	}
	return &Normalizer{movementWindow: movementWindow}
}

// Normalize maps one raw hit into a fresh canonical record. It never
// fails: absent fields become explicit sentinels, unparseable nested
// collections become empty slices.
func (n *Normalizer) Normalize(raw map[string]interface{}, fallbackTribunal string) models.CanonicalCaseRecord {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	record := models.CanonicalCaseRecord{
		CaseNumber: str(raw, "numeroProcesso", "numero_processo", "numero"),
		CaseClass:  n.caseClass(raw),
		Subject:    n.subject(raw),
		Tribunal:   strOr(raw, fallbackTribunal, "tribunal", "siglaTribunal"),
		Court:      n.court(raw),
		Venue:      n.venue(raw),
		FilingDate: date(raw, "dataAjuizamento", "data_ajuizamento", "dataDistribuicao", "dataHoraUltimaAtualizacao"),
		Status:     str(raw, "situacao", "status", "statusProcesso"),
		ClaimValue: num(raw, "valorCausa", "valor_causa", "valorDaCausa", "valorAcao"),
	}

	record.Parties, record.Attorneys = n.parties(raw)
	record.Movements = n.movements(raw)

	if len(record.Movements) > 0 {
		record.LastMovementDate = record.Movements[len(record.Movements)-1].Date
	}

	return record
}

// caseClass handles both the nested {"classe":{"nome":...}} shape and
// flat string variants.
func (n *Normalizer) caseClass(raw map[string]interface{}) string {
	if classe := obj(raw, "classe", "classeProcessual"); classe != nil {
		return str(classe, "nome", "descricao")
	}
	return str(raw, "classe", "classeProcessual", "natureza")
}

// subject reads the first entry of the subject collection, which some
// backends nest one level deeper than others.
func (n *Normalizer) subject(raw map[string]interface{}) string {
	entries := arr(raw, "assuntos", "assunto")
	for _, entry := range entries {
		switch v := entry.(type) {
		case map[string]interface{}:
			if s := str(v, "nome", "descricao"); s != NotInformed {
				return s
			}
		case []interface{}:
			// Double-nested variant: assuntos: [[{...}]]
			for _, inner := range v {
				if m := asObj(inner); m != nil {
					if s := str(m, "nome", "descricao"); s != NotInformed {
						return s
					}
				}
			}
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return NotInformed
}

func (n *Normalizer) court(raw map[string]interface{}) string {
	if orgao := obj(raw, "orgaoJulgador", "orgao_julgador"); orgao != nil {
		return str(orgao, "nome", "descricao")
	}
	return str(raw, "orgaoJulgador", "vara", "juizo")
}

func (n *Normalizer) venue(raw map[string]interface{}) string {
	if orgao := obj(raw, "orgaoJulgador", "orgao_julgador"); orgao != nil {
		if v := str(orgao, "municipio", "comarca", "localidade"); v != NotInformed {
			return v
		}
	}
	return str(raw, "comarca", "municipio", "foro")
}

// parties walks the nested party-group collections. Groups carry a polo
// code classifying the side ("1"/"AT"/"ATIVO" is the plaintiff side);
// attorneys hang off each party and inherit the group's side.
func (n *Normalizer) parties(raw map[string]interface{}) ([]models.Party, []models.Attorney) {
	parties := []models.Party{}
	attorneys := []models.Attorney{}

	appendGroup := func(group map[string]interface{}, role models.PartyRole) {
		for _, entry := range arr(group, "partes", "parte", "pessoas") {
			member := asObj(entry)
			if member == nil {
				continue
			}
			parties = append(parties, models.Party{
				Name:       str(member, "nome", "nomeParte", "name"),
				Role:       role,
				DocumentID: str(member, "documento", "numeroDocumentoPrincipal", "cpf", "cnpj"),
			})
			for _, a := range arr(member, "advogados", "advogado", "representantes") {
				adv := asObj(a)
				if adv == nil {
					continue
				}
				attorneys = append(attorneys, models.Attorney{
					Name:            str(adv, "nome", "name"),
					BarNumber:       str(adv, "numeroOAB", "oab", "inscricao"),
					RepresentedRole: role,
				})
			}
		}
	}

	// Shape 1: a flat list of groups, each tagged with a polo code.
	if groups := arr(raw, "polos", "polo"); groups != nil {
		for _, g := range groups {
			group := asObj(g)
			if group == nil {
				continue
			}
			appendGroup(group, roleFromPolo(str(group, "polo", "codigo", "tipo")))
		}
		return parties, attorneys
	}

	// Shape 2: named active/passive pole objects.
	if ativo := obj(raw, "poloAtivo", "polo_ativo"); ativo != nil {
		appendGroup(ativo, models.RolePlaintiff)
	}
	if passivo := obj(raw, "poloPassivo", "polo_passivo"); passivo != nil {
		appendGroup(passivo, models.RoleDefendant)
	}
	if len(parties) > 0 {
		return parties, attorneys
	}

	// Shape 3: a flat party list with a per-party polo code.
	for _, entry := range arr(raw, "partes", "parte") {
		member := asObj(entry)
		if member == nil {
			continue
		}
		role := roleFromPolo(str(member, "polo", "tipoParte", "tipo"))
		parties = append(parties, models.Party{
			Name:       str(member, "nome", "nomeParte", "name"),
			Role:       role,
			DocumentID: str(member, "documento", "numeroDocumentoPrincipal", "cpf", "cnpj"),
		})
		for _, a := range arr(member, "advogados", "advogado") {
			adv := asObj(a)
			if adv == nil {
				continue
			}
			attorneys = append(attorneys, models.Attorney{
				Name:            str(adv, "nome", "name"),
				BarNumber:       str(adv, "numeroOAB", "oab", "inscricao"),
				RepresentedRole: role,
			})
		}
	}

	return parties, attorneys
}

// roleFromPolo maps the enumerated polo code to a side. Code "1" and
// the AT/ATIVO spellings mark the plaintiff side; everything else is
// treated as the defendant side.
func roleFromPolo(code string) models.PartyRole {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "1", "AT", "A", "ATIVO", "POLO ATIVO", "REQUERENTE", "AUTOR":
		return models.RolePlaintiff
	}
	return models.RoleDefendant
}

// movements converts the movement list, sorts it chronologically and
// truncates to the most recent window entries.
func (n *Normalizer) movements(raw map[string]interface{}) []models.Movement {
	entries := arr(raw, "movimentos", "movimento", "movimentacoes", "andamentos")
	movements := make([]models.Movement, 0, len(entries))

	for _, entry := range entries {
		m := asObj(entry)
		if m == nil {
			continue
		}
		movement := models.Movement{
			Date:        date(m, "dataHora", "data_hora", "data", "dataMovimento"),
			Description: str(m, "nome", "descricao", "movimento", "texto"),
			Note:        n.movementNote(m),
		}
		if movement.Date.IsZero() && movement.Description == NotInformed {
			continue
		}
		movements = append(movements, movement)
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date)
	})

	if len(movements) > n.movementWindow {
		movements = movements[len(movements)-n.movementWindow:]
	}
	return movements
}

func (n *Normalizer) movementNote(m map[string]interface{}) string {
	if v := str(m, "complemento", "observacao"); v != NotInformed {
		return v
	}
	for _, entry := range arr(m, "complementosTabelados", "complementos") {
		if c := asObj(entry); c != nil {
			if v := str(c, "nome", "descricao", "valor"); v != NotInformed {
				return v
			}
		}
	}
	return ""
}
