// Package memoryclient is the thin HTTP capability the core uses to talk
// to the external Memory API (spec §4.2, component C2): hybrid search,
// entity get/upsert, skill search/promote/status, reflection upsert. The
// service itself is a black box (spec §1, §6); non-2xx responses are
// non-fatal — callers degrade to their own defaults.
package memoryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nexuscore/reasoning/internal/retry"
	"github.com/nexuscore/reasoning/pkg/models"
)

// Client is a stateless HTTP capability; instances may be shared freely
// across concurrent pipeline runs (spec §5).
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	retryCfg retry.Config
}

// New creates a Client bound to baseURL with the given request timeout.
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; 4xx responses are treated as permanent.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		retryCfg: retry.Exponential(3, 100*time.Millisecond, 2*time.Second),
	}
}

// do sends one logical request, retrying transient failures per retryCfg.
// A 4xx response or a request-construction/decode error is permanent and
// returns on the first attempt.
func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) (int, error) {
	var raw []byte
	if reqBody != nil {
		var err error
		raw, err = json.Marshal(reqBody)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
	}

	var status int
	result := retry.Do(ctx, c.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
		if err != nil {
			return retry.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()
		status = resp.StatusCode

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := fmt.Errorf("%s %s: non-2xx status %d", method, path, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return retry.Permanent(statusErr)
			}
			return statusErr
		}

		if respBody != nil {
			if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
				return retry.Permanent(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	})

	return status, result.Err
}

// HybridSearchResult wraps the memory service's "items|results" response
// shape (spec §6 notes both field names appear across versions).
type HybridSearchResult struct {
	Items   []models.RelevantItem `json:"items"`
	Results []models.RelevantItem `json:"results"`
}

// Normalized returns the populated field, preferring Items.
func (r HybridSearchResult) Normalized() []models.RelevantItem {
	if len(r.Items) > 0 {
		return r.Items
	}
	return r.Results
}

// HybridSearch runs a hybrid (lexical + vector) search against the memory
// store. Errors are returned to the caller (the retriever decides how to
// degrade); scores are passed through unclamped (spec §4.3).
func (c *Client) HybridSearch(ctx context.Context, query string, limit int) ([]models.RelevantItem, error) {
	var out HybridSearchResult
	_, err := c.do(ctx, http.MethodPost, "/v1/search/hybrid", map[string]any{
		"q":     query,
		"limit": limit,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Normalized(), nil
}

// GetUserEntity fetches an entity by its canonical ID ("user:<authorId>").
// A 404-style non-2xx response is reported as (nil, nil) — non-fatal per
// spec §4.2 ("returns entity or null; non-fatal on failure").
func (c *Client) GetUserEntity(ctx context.Context, canonicalID string) (*models.UserEntity, error) {
	var entity models.UserEntity
	status, err := c.do(ctx, http.MethodGet, "/v1/entities/"+canonicalID, nil, &entity)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// UpsertUserEntity idempotently merges partial traits into an entity.
func (c *Client) UpsertUserEntity(ctx context.Context, canonicalID string, traits models.EntityTraits) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/entities/"+canonicalID, map[string]any{
		"traits": traits,
	}, nil)
	return err
}

// SkillSearch returns ranked skill matches for a query.
func (c *Client) SkillSearch(ctx context.Context, query string, limit int) ([]models.SkillSearchHit, error) {
	var hits []models.SkillSearchHit
	_, err := c.do(ctx, http.MethodPost, "/v1/skills/search", map[string]any{
		"query": query,
		"limit": limit,
	}, &hits)
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// SkillPromote submits a candidate for promotion into a persisted skill.
// Returns nil only on a 2xx response.
func (c *Client) SkillPromote(ctx context.Context, skill models.Skill) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/skills", map[string]any{"skill": skill}, nil)
	return err
}

// SkillStatusPatch idempotently updates a persisted skill's status.
func (c *Client) SkillStatusPatch(ctx context.Context, skillID string, status models.SkillStatus, reason string) error {
	_, err := c.do(ctx, http.MethodPatch, "/v1/skills/"+skillID, map[string]any{
		"status": status,
		"reason": reason,
	}, nil)
	return err
}

// ReflectionScope names which bucket a reflection is filed under.
type ReflectionScope string

const (
	ReflectScopeUser    ReflectionScope = "user"
	ReflectScopeChannel ReflectionScope = "channel"
	ReflectScopeGuild   ReflectionScope = "guild"
)

// ReflectUpsert persists a reflection entry.
func (c *Client) ReflectUpsert(ctx context.Context, text string, scope ReflectionScope, scopeID string, meta map[string]any) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/reflections", map[string]any{
		"text":    text,
		"scope":   scope,
		"scopeId": scopeID,
		"meta":    meta,
	}, nil)
	return err
}
