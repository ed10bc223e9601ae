package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/dinoguessr/internal/log"

	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
)

const hintsCacheKey = "dinosaurs"

// hintRecord is one element of the facts API response.
type hintRecord struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// RemoteHints fetches dinosaur descriptions over HTTP and keeps them for a TTL.
type RemoteHints struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
	cache   *cache.Cache
}

// RemoteHintsOption configures RemoteHints.
type RemoteHintsOption func(*RemoteHints)

// WithHTTPClient replaces the fasthttp client, e.g. with one dialing an in-memory listener.
func WithHTTPClient(c *fasthttp.Client) RemoteHintsOption {
	return func(r *RemoteHints) { r.client = c }
}

// NewRemoteHints creates a hint source for url. Responses are cached for ttl.
func NewRemoteHints(url string, timeout, ttl time.Duration, opts ...RemoteHintsOption) *RemoteHints {
	r := &RemoteHints{
		url:     url,
		timeout: timeout,
		client: &fasthttp.Client{
			Name:                "dinoguessr",
			MaxIdleConnDuration: 30 * time.Second,
		},
		cache: cache.New(ttl, 2*ttl),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hints implements HintSource. Successful responses are served from cache until the TTL expires.
func (r *RemoteHints) Hints(ctx context.Context) (map[string]string, error) {
	if cached, ok := r.cache.Get(hintsCacheKey); ok {
		return cached.(map[string]string), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	if err := r.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("fetching hints: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("fetching hints: unexpected status %d", resp.StatusCode())
	}

	var records []hintRecord
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decoding hints: %w", err)
	}

	hints := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Name != "" && rec.Description != "" {
			hints[rec.Name] = rec.Description
		}
	}

	r.cache.Set(hintsCacheKey, hints, cache.DefaultExpiration)
	log.Debug(log.CatQuiz, "Fetched hints", "count", len(hints), "duration", time.Since(start))
	return hints, nil
}
