// Package http provides a crates.io API client implementing
// cratedoc.Registry.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/cratedoc"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public crates.io registry.
const DefaultBaseURL = "https://crates.io"

// DefaultTimeout is the default timeout for registry requests.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent identifies the client; crates.io rejects requests
// without a User-Agent.
const DefaultUserAgent = "cratedoc (https://github.com/fwojciec/cratedoc)"

// DefaultRate is the request rate allowed by the crates.io crawler policy.
const DefaultRate = 1.0

// maxBodySize bounds the response body read from the registry.
const maxBodySize = 4 << 20

// Ensure Registry implements cratedoc.Registry at compile time.
var _ cratedoc.Registry = (*Registry)(nil)

// Registry looks up crates through the crates.io JSON API.
// Requests from one Registry are paced by a shared token bucket, so it is
// safe to use from concurrent resolutions.
type Registry struct {
	client    *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout sets the timeout for registry requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.timeout = d
	}
}

// WithBaseURL points the client at another registry, e.g. a mirror or a
// test server.
func WithBaseURL(u string) Option {
	return func(r *Registry) {
		r.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *Registry) {
		r.userAgent = ua
	}
}

// WithRate limits requests per second. A non-positive rate disables pacing.
func WithRate(rps float64) Option {
	return func(r *Registry) {
		if rps <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewRegistry creates a new crates.io client.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRate), 1),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

type crateResponse struct {
	Crate *cratedoc.Crate `json:"crate"`
}

// FindCrate fetches /api/v1/crates/<name>. The request is made once;
// a 404 or a response without a crate object is reported as ENOTFOUND.
func (r *Registry) FindCrate(ctx context.Context, name string) (*cratedoc.Crate, error) {
	if name == "" {
		return nil, cratedoc.Errorf(cratedoc.EINVALID, "crate name required")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := r.baseURL + "/api/v1/crates/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, cratedoc.Errorf(cratedoc.ENOTFOUND, "crate %q not found in registry", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	var cr crateResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, cratedoc.Errorf(cratedoc.EINVALID, "decode registry response: %v", err)
	}
	if cr.Crate == nil {
		return nil, cratedoc.Errorf(cratedoc.ENOTFOUND, "crate %q not found in registry", name)
	}
	return cr.Crate, nil
}
