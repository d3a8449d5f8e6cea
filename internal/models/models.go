package models

import "time"

// LookupMode selects how the search term is interpreted
type LookupMode string

const (
	ByNumber     LookupMode = "number"
	ByPartyName  LookupMode = "party"
	ByDocumentID LookupMode = "document"
)

// Valid reports whether the mode is one of the three supported values
func (m LookupMode) Valid() bool {
	switch m {
	case ByNumber, ByPartyName, ByDocumentID:
		return true
	}
	return false
}

// Provenance indicates how a returned record was obtained
type Provenance string

const (
	ProvenanceCache     Provenance = "cache"
	ProvenanceLive      Provenance = "live"
	ProvenanceSynthetic Provenance = "synthetic"
)

// PartyRole classifies which side of the case a party is on
type PartyRole string

const (
	RolePlaintiff PartyRole = "plaintiff"
	RoleDefendant PartyRole = "defendant"
)

// Phase is the inferred procedural stage of a case
type Phase string

const (
	PhaseIntake           Phase = "intake"
	PhaseDiscovery        Phase = "discovery"
	PhaseBriefing         Phase = "briefing"
	PhaseAwaitingDecision Phase = "awaiting_decision"
	PhaseDecided          Phase = "decided"
)

// LookupQuery is the single inbound request shape
type LookupQuery struct {
	Mode         LookupMode `json:"mode" binding:"required"`
	Term         string     `json:"term" binding:"required"`
	TribunalHint string     `json:"tribunal_hint"`
	UseCache     *bool      `json:"use_cache"`
}

// CacheEnabled returns the use_cache flag, defaulting to true
func (q LookupQuery) CacheEnabled() bool {
	return q.UseCache == nil || *q.UseCache
}

// Party is one litigant in a case
type Party struct {
	Name       string    `json:"name"`
	Role       PartyRole `json:"role"`
	DocumentID string    `json:"document_id"`
}

// Attorney represents counsel attached to one side of a case
type Attorney struct {
	Name            string    `json:"name"`
	BarNumber       string    `json:"bar_number"`
	RepresentedRole PartyRole `json:"represented_role"`
}

// Movement is a single procedural step, ordered chronologically
type Movement struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Note        string    `json:"note,omitempty"`
}

// Analytics is the derived numeric/phase summary of a case
type Analytics struct {
	TotalDurationDays     int       `json:"total_duration_days"`
	MovementCount         int       `json:"movement_count"`
	AvgIntervalDays       float64   `json:"avg_interval_days"`
	CurrentPhase          Phase     `json:"current_phase"`
	DaysInCurrentPhase    int       `json:"days_in_current_phase"`
	PredictedDecisionDate time.Time `json:"predicted_decision_date"`
}

// CanonicalCaseRecord is the normalized shape every backend response
// is converted into. Produced fresh on every normalization and never
// mutated afterwards.
type CanonicalCaseRecord struct {
	CaseNumber       string     `json:"case_number"`
	CaseClass        string     `json:"case_class"`
	Subject          string     `json:"subject"`
	Tribunal         string     `json:"tribunal"`
	Court            string     `json:"court"`
	Venue            string     `json:"venue"`
	FilingDate       time.Time  `json:"filing_date"`
	LastMovementDate time.Time  `json:"last_movement_date"`
	Status           string     `json:"status"`
	ClaimValue       float64    `json:"claim_value"`
	Parties          []Party    `json:"parties"`
	Attorneys        []Attorney `json:"attorneys"`
	Movements        []Movement `json:"movements"`
	Analytics        Analytics  `json:"analytics"`
}

// CacheEntry wraps a cached canonical record with its lifecycle timestamps
type CacheEntry struct {
	Key       string              `json:"key"`
	Record    CanonicalCaseRecord `json:"record"`
	Tribunal  string              `json:"tribunal"`
	FetchedAt time.Time           `json:"fetched_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

// Expired reports whether the entry is past its TTL at the given instant
func (e CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// LookupResult is the only artifact returned to callers
type LookupResult struct {
	LookupID   string                `json:"lookup_id"`
	Records    []CanonicalCaseRecord `json:"records"`
	Provenance Provenance            `json:"provenance"`
	Warnings   []string              `json:"warnings,omitempty"`
}
