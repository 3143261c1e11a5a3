// Package media resolves opaque storage keys to displayable URLs through an
// external lookup service.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "kycdesk/pkg/domain-errors"
	"kycdesk/pkg/platform/tracer"
)

// Resolver turns a storage key into a display URL. A nil/absent URL upstream
// is returned as the empty string.
type Resolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// HTTPResolver implements Resolver against the media lookup endpoint.
type HTTPResolver struct {
	baseURL    string
	httpClient *http.Client
	tracer     tracer.Tracer
}

// HTTPResolverOption configures the HTTPResolver.
type HTTPResolverOption func(*HTTPResolver)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPResolverOption {
	return func(r *HTTPResolver) {
		r.httpClient = client
	}
}

// WithTracer sets the tracer for resolver calls.
func WithTracer(t tracer.Tracer) HTTPResolverOption {
	return func(r *HTTPResolver) {
		r.tracer = t
	}
}

// NewHTTPResolver creates a resolver client for the given lookup service.
func NewHTTPResolver(baseURL string, timeout time.Duration, opts ...HTTPResolverOption) *HTTPResolver {
	r := &HTTPResolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type resolveRequest struct {
	Key string `json:"key"`
}

type resolveResponse struct {
	URL *string `json:"url"`
}

// Resolve looks up the display URL for one storage key.
func (r *HTTPResolver) Resolve(ctx context.Context, key string) (url string, err error) {
	ctx, span := r.tracer.Start(ctx, "media.resolve", tracer.String("key", key))
	defer func() { span.End(err) }()

	body, err := json.Marshal(resolveRequest{Key: key})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal resolve request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/media/resolve", bytes.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create resolve request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", dErrors.Wrap(err, dErrors.CodeTimeout, "media resolver timeout")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "media resolver unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("media resolver returned status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read resolver response")
	}

	var decoded resolveResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to decode resolver response")
	}
	if decoded.URL == nil {
		return "", nil
	}
	return *decoded.URL, nil
}
