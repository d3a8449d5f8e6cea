package jurimetrics

import (
	"strings"
	"time"

	"github.com/openjus/processo-engine/internal/models"
)

// PhaseRule maps a keyword found in a movement description to a
// procedural phase.
type PhaseRule struct {
	Keyword string
	Phase   models.Phase
}

// DefaultPhaseRules is the ordered keyword list used to infer the
// current procedural phase from the most recent movement. Order is
// behaviorally significant: rules are tried top to bottom and the first
// case-insensitive substring match wins, so more advanced stages are
// listed first ("conclus" covers conclusão/conclusos). The list is a
// heuristic, not an authoritative taxonomy; callers may replace it
// wholesale.
var DefaultPhaseRules = []PhaseRule{
	{Keyword: "sentença", Phase: models.PhaseDecided},
	{Keyword: "conclus", Phase: models.PhaseAwaitingDecision},
	{Keyword: "contestação", Phase: models.PhaseBriefing},
	{Keyword: "audiência", Phase: models.PhaseDiscovery},
}

// Deriver computes case analytics from filing date and movement
// history. Derive is pure: identical inputs always yield identical
// output.
type Deriver struct {
	rules   []PhaseRule
	horizon time.Duration
}

// NewDeriver creates a deriver with the default phase rules and the
// given decision horizon.
func NewDeriver(horizon time.Duration) *Deriver {
	return &Deriver{rules: DefaultPhaseRules, horizon: horizon}
}

// WithRules replaces the phase keyword rules
func (d *Deriver) WithRules(rules []PhaseRule) *Deriver {
	d.rules = rules
	return d
}

// Derive computes the analytics summary for a case as of now.
//
// The predicted decision date is a fixed-horizon projection, not a
// model; it exists so callers always have a renderable estimate.
func (d *Deriver) Derive(filingDate time.Time, movements []models.Movement, now time.Time) models.Analytics {
	analytics := models.Analytics{
		MovementCount:         len(movements),
		CurrentPhase:          models.PhaseIntake,
		PredictedDecisionDate: now.Add(d.horizon),
	}

	if !filingDate.IsZero() && filingDate.Before(now) {
		analytics.TotalDurationDays = daysBetween(filingDate, now)
	}

	if analytics.MovementCount > 1 {
		analytics.AvgIntervalDays = float64(analytics.TotalDurationDays) / float64(analytics.MovementCount)
	}

	if len(movements) > 0 {
		latest := movements[len(movements)-1]
		analytics.CurrentPhase = d.inferPhase(latest.Description)
		if !latest.Date.IsZero() && latest.Date.Before(now) {
			analytics.DaysInCurrentPhase = daysBetween(latest.Date, now)
		}
	}

	return analytics
}

// inferPhase returns the phase of the first rule whose keyword appears
// in the description, defaulting to intake.
func (d *Deriver) inferPhase(description string) models.Phase {
	lowered := strings.ToLower(description)
	for _, rule := range d.rules {
		if strings.Contains(lowered, rule.Keyword) {
			return rule.Phase
		}
	}
	return models.PhaseIntake
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
