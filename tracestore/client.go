/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package tracestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"chainguard.dev/agenteval/spans"
	"github.com/chainguard-dev/clog"
)

// Config carries the trace store connection settings.
type Config struct {
	BaseURL string        `env:"TRACE_STORE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"TRACE_STORE_TIMEOUT, default=30s"`
}

// Client is an HTTP client for the trace store API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a Client for the given configuration.
func New(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}
}

// get issues a GET against the store and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("trace store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trace store returned %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode trace store response: %w", err)
	}
	return nil
}

// TracesBySession fetches the raw spans recorded for one session.
func (c *Client) TracesBySession(ctx context.Context, sessionID string) ([]spans.RawSpan, error) {
	var raw []spans.RawSpan
	params := url.Values{"table_name": {"traces_raw"}}
	if err := c.get(ctx, "/traces/session/"+url.PathEscape(sessionID), params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SessionIDs lists the session ids the store saw between start and end,
// most recent first. Times are ISO 8601 UTC strings.
func (c *Client) SessionIDs(ctx context.Context, startTime, endTime string) ([]string, error) {
	var sessions []struct {
		ID string `json:"id"`
	}
	params := url.Values{
		"start_time": {startTime},
		"end_time":   {endTime},
	}
	if err := c.get(ctx, "/traces/sessions", params, &sessions); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// TracesByTime fetches the raw spans for every session in the time range,
// keyed by session id.
func (c *Client) TracesByTime(ctx context.Context, startTime, endTime string) (map[string][]spans.RawSpan, error) {
	ids, err := c.SessionIDs(ctx, startTime, endTime)
	if err != nil {
		return nil, err
	}
	return c.tracesForSessions(ctx, ids)
}

// LastNSessions fetches the raw spans for the n most recent sessions,
// looking back over a 30 day window.
func (c *Client) LastNSessions(ctx context.Context, n int) (map[string][]spans.RawSpan, error) {
	end := time.Now().UTC()
	start := end.Add(-30 * 24 * time.Hour)

	ids, err := c.SessionIDs(ctx, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	if n < len(ids) {
		ids = ids[:n]
	}
	return c.tracesForSessions(ctx, ids)
}

func (c *Client) tracesForSessions(ctx context.Context, ids []string) (map[string][]spans.RawSpan, error) {
	log := clog.FromContext(ctx)
	bySession := make(map[string][]spans.RawSpan, len(ids))
	for _, id := range ids {
		raw, err := c.TracesBySession(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching traces for session %s: %w", id, err)
		}
		log.Debugf("fetched %d spans for session %s", len(raw), id)
		bySession[id] = raw
	}
	return bySession, nil
}
