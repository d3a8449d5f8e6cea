package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/openjus/processo-engine/internal/config"
	"github.com/openjus/processo-engine/internal/models"
	"github.com/openjus/processo-engine/internal/tribunal"
	"github.com/openjus/processo-engine/pkg/logger"
)

// RawHit is the raw _source object of one search hit. No schema beyond
// "parseable JSON" may be assumed; the normalizer walks it defensively.
type RawHit map[string]interface{}

// BackendResult is the settled outcome of one backend call
type BackendResult struct {
	Partition tribunal.Partition
	Hits      []RawHit
	Err       error
}

// Client issues search queries against the per-tribunal judicial
// record endpoints.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a client with the configured per-call timeout
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.DispatchTimeout},
		logger:     log,
	}
}

// searchEnvelope is the fraction of the response envelope we rely on;
// everything under _source stays schemaless.
type searchEnvelope struct {
	Hits struct {
		Hits []struct {
			Source RawHit `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search issues one query against one backend partition. Non-2xx
// responses, timeouts and undecodable bodies all surface as an error
// with zero hits; callers fold that into "no live data".
func (c *Client) Search(ctx context.Context, partition tribunal.Partition, query models.LookupQuery) ([]RawHit, error) {
	body, err := buildRequestBody(query)
	if err != nil {
		return nil, fmt.Errorf("failed to build search body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", strings.TrimRight(c.cfg.DataJudBaseURL, "/"), partition.Alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	// The external services reject calls without these headers.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.DataJudAPIKey != "" {
		req.Header.Set("Authorization", "APIKey "+c.cfg.DataJudAPIKey)
	}

	c.logger.Debug("Dispatching backend query",
		"partition", partition.ShortCode,
		"mode", string(query.Mode),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s unreachable: %w", partition.ShortCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("backend %s returned status %d", partition.ShortCode, resp.StatusCode)
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("backend %s returned unparseable body: %w", partition.ShortCode, err)
	}

	hits := make([]RawHit, 0, len(envelope.Hits.Hits))
	for _, h := range envelope.Hits.Hits {
		if h.Source != nil {
			hits = append(hits, h.Source)
		}
	}
	return hits, nil
}

// FanOut queries multiple partitions concurrently, bounded by the
// configured limit. It waits for every call to settle; a per-backend
// failure is recorded in its slot and never aborts sibling calls.
func (c *Client) FanOut(ctx context.Context, partitions []tribunal.Partition, query models.LookupQuery) []BackendResult {
	if len(partitions) > c.cfg.FanoutLimit {
		partitions = partitions[:c.cfg.FanoutLimit]
	}

	results := make([]BackendResult, len(partitions))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.cfg.FanoutLimit)

	for i, partition := range partitions {
		wg.Add(1)
		go func(index int, p tribunal.Partition) {
			defer wg.Done()

			// Acquire semaphore
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			hits, err := c.Search(ctx, p, query)
			if err != nil {
				c.logger.Warn("Backend query failed",
					"partition", p.ShortCode,
					"error", err,
				)
			}
			results[index] = BackendResult{Partition: p, Hits: hits, Err: err}
		}(i, partition)
	}

	wg.Wait()
	return results
}

// buildRequestBody produces the structured search query for the given
// lookup mode: an exact match on the case-number field, or a
// multi-field match over party name/document fields.
func buildRequestBody(query models.LookupQuery) ([]byte, error) {
	term := strings.TrimSpace(query.Term)

	var match map[string]interface{}
	switch query.Mode {
	case models.ByNumber:
		match = map[string]interface{}{
			"match": map[string]interface{}{
				"numeroProcesso": digitsOnly(term),
			},
		}
	case models.ByDocumentID:
		match = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": digitsOnly(term),
				"fields": []string{
					"partes.documento",
					"poloAtivo.partes.documento",
					"poloPassivo.partes.documento",
				},
			},
		}
	default:
		match = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     term,
				"fuzziness": "AUTO",
				"fields": []string{
					"partes.nome",
					"poloAtivo.partes.nome",
					"poloPassivo.partes.nome",
				},
			},
		}
	}

	return json.Marshal(map[string]interface{}{
		"size":  10,
		"query": match,
	})
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return s
	}
	return b.String()
}
