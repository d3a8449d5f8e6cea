package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openjus/processo-engine/internal/cache"
	"github.com/openjus/processo-engine/internal/config"
	"github.com/openjus/processo-engine/internal/database"
	"github.com/openjus/processo-engine/internal/datajud"
	"github.com/openjus/processo-engine/internal/jurimetrics"
	"github.com/openjus/processo-engine/internal/models"
	"github.com/openjus/processo-engine/internal/normalize"
	"github.com/openjus/processo-engine/internal/synthetic"
	"github.com/openjus/processo-engine/internal/tribunal"
	"github.com/openjus/processo-engine/pkg/logger"
)

// Structurally invalid queries are the only hard errors a lookup can
// produce; everything else degrades gracefully.
var (
	ErrEmptyTerm   = errors.New("lookup term must not be empty")
	ErrInvalidMode = errors.New("lookup mode must be number, party or document")
)

// Dispatcher is the outbound-query surface the resolver depends on
type Dispatcher interface {
	Search(ctx context.Context, partition tribunal.Partition, query models.LookupQuery) ([]datajud.RawHit, error)
	FanOut(ctx context.Context, partitions []tribunal.Partition, query models.LookupQuery) []datajud.BackendResult
}

// Resolver orchestrates one lookup: cache, tribunal selection,
// dispatch, normalization, analytics, synthetic fallback and the audit
// log.
type Resolver struct {
	cfg        *config.Config
	dispatcher Dispatcher
	cache      cache.Cache
	db         *gorm.DB
	normalizer *normalize.Normalizer
	deriver    *jurimetrics.Deriver
	fallback   *synthetic.Generator
	logger     *logger.Logger
	now        func() time.Time
}

func New(cfg *config.Config, dispatcher Dispatcher, c cache.Cache, db *gorm.DB, log *logger.Logger) *Resolver {
	return &Resolver{
		cfg:        cfg,
		dispatcher: dispatcher,
		cache:      c,
		db:         db,
		normalizer: normalize.NewNormalizer(cfg.MovementWindow),
		deriver:    jurimetrics.NewDeriver(cfg.DecisionHorizon),
		fallback:   synthetic.NewGenerator(),
		logger:     log,
		now:        time.Now,
	}
}

// Lookup resolves a query into a result that always carries an explicit
// provenance. The only hard error is a structurally invalid query.
func (r *Resolver) Lookup(ctx context.Context, query models.LookupQuery, actor string) (*models.LookupResult, error) {
	if strings.TrimSpace(query.Term) == "" {
		return nil, ErrEmptyTerm
	}
	if !query.Mode.Valid() {
		return nil, ErrInvalidMode
	}

	var result *models.LookupResult
	if query.Mode == models.ByNumber {
		result = r.lookupByNumber(ctx, query)
	} else {
		result = r.lookupFreeText(ctx, query)
	}
	result.LookupID = uuid.NewString()

	r.logQuery(query, actor, result)
	return result, nil
}

// lookupByNumber targets exactly one backend, selected from the
// identifier's embedded branch code or the hint, consulting the cache
// first.
func (r *Resolver) lookupByNumber(ctx context.Context, query models.LookupQuery) *models.LookupResult {
	partition := tribunal.Resolve(query.Term, query.TribunalHint, r.cfg.DefaultTribunal)

	if query.CacheEnabled() {
		if entry, found := r.cache.Get(query.Term); found {
			r.logger.Info("Cache hit", "case_number", query.Term, "tribunal", entry.Tribunal)
			return &models.LookupResult{
				Records:    []models.CanonicalCaseRecord{entry.Record},
				Provenance: models.ProvenanceCache,
			}
		}
	}

	hits, err := r.dispatcher.Search(ctx, partition, query)
	if err != nil {
		r.logger.Warn("Backend query failed, degrading to synthetic data",
			"partition", partition.ShortCode,
			"error", err,
		)
		return r.synthesize(query.Term, partition,
			fmt.Sprintf("real API query to %s failed: %v; returning simulated data", partition.ShortCode, err))
	}
	if len(hits) == 0 {
		return r.synthesize(query.Term, partition,
			fmt.Sprintf("no records found on %s for this identifier; returning simulated data", partition.ShortCode))
	}

	record := r.normalizer.Normalize(hits[0], partition.ShortCode)
	record.Analytics = r.deriver.Derive(record.FilingDate, record.Movements, r.now())

	if query.CacheEnabled() {
		if err := r.cache.Set(query.Term, record, partition.ShortCode); err != nil {
			// Cache failures never fail the lookup.
			r.logger.Warn("Failed to cache record", "case_number", query.Term, "error", err)
		}
	}

	return &models.LookupResult{
		Records:    []models.CanonicalCaseRecord{record},
		Provenance: models.ProvenanceLive,
	}
}

// lookupFreeText fans out to a bounded subset of registry partitions.
// Per-backend failures degrade the result set; they never abort sibling
// calls or the lookup.
func (r *Resolver) lookupFreeText(ctx context.Context, query models.LookupQuery) *models.LookupResult {
	partitions := r.fanoutTargets(query.TribunalHint)

	var records []models.CanonicalCaseRecord
	var warnings []string

	for _, backendResult := range r.dispatcher.FanOut(ctx, partitions, query) {
		if backendResult.Err != nil {
			warnings = append(warnings,
				fmt.Sprintf("backend %s excluded from results: %v", backendResult.Partition.ShortCode, backendResult.Err))
			continue
		}
		for _, hit := range backendResult.Hits {
			record := r.normalizer.Normalize(hit, backendResult.Partition.ShortCode)
			record.Analytics = r.deriver.Derive(record.FilingDate, record.Movements, r.now())
			records = append(records, record)
		}
	}

	if len(records) == 0 {
		reason := "no backend returned records for this search; returning simulated data"
		result := r.synthesize(query.Term, tribunal.Resolve("", query.TribunalHint, r.cfg.DefaultTribunal), reason)
		result.Warnings = append(result.Warnings, warnings...)
		return result
	}

	return &models.LookupResult{
		Records:    records,
		Provenance: models.ProvenanceLive,
		Warnings:   warnings,
	}
}

// fanoutTargets picks the partitions for a free-text query: the hinted
// tribunal when it resolves, otherwise the configured fan-out list,
// always truncated to the concurrency cap.
func (r *Resolver) fanoutTargets(hint string) []tribunal.Partition {
	if hint != "" {
		if p, ok := tribunal.Lookup(hint); ok {
			return []tribunal.Partition{p}
		}
	}

	var partitions []tribunal.Partition
	for _, code := range r.cfg.FanoutTribunals {
		if p, ok := tribunal.Lookup(code); ok {
			partitions = append(partitions, p)
		}
		if len(partitions) == r.cfg.FanoutLimit {
			break
		}
	}
	if len(partitions) == 0 {
		partitions = []tribunal.Partition{tribunal.Resolve("", "", r.cfg.DefaultTribunal)}
	}
	return partitions
}

func (r *Resolver) synthesize(identifier string, partition tribunal.Partition, warning string) *models.LookupResult {
	record := r.fallback.Generate(identifier, partition.ShortCode)
	record.Analytics = r.deriver.Derive(record.FilingDate, record.Movements, r.now())

	return &models.LookupResult{
		Records:    []models.CanonicalCaseRecord{record},
		Provenance: models.ProvenanceSynthetic,
		Warnings:   []string{warning},
	}
}

// logQuery appends the audit record asynchronously. Failures are logged
// and swallowed; the caller's result is never delayed or failed by the
// log.
func (r *Resolver) logQuery(query models.LookupQuery, actor string, result *models.LookupResult) {
	if r.db == nil {
		return
	}

	entry := &database.QueryLog{
		LookupID:     result.LookupID,
		Actor:        actor,
		Mode:         string(query.Mode),
		Term:         query.Term,
		TribunalHint: query.TribunalHint,
		Provenance:   string(result.Provenance),
		HitCount:     len(result.Records),
		QueryTime:    r.now(),
	}

	go func() {
		if err := r.db.Create(entry).Error; err != nil {
			r.logger.Warn("Failed to write query log", "lookup_id", entry.LookupID, "error", err)
		}
	}()
}
