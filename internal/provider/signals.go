package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultSignalsBaseURL = "https://farcaster.maxxit.ai"
	signalsPath           = "/lunarcrush"
)

// RawRecord is one opaque server record. The feed's shape is not contractually
// fixed, so decoding stays schemaless until normalization.
type RawRecord map[string]any

// SignalsProvider fetches the full signal batch from the analytics server.
type SignalsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewSignalsProvider creates a provider for the given base URL. An empty
// baseURL falls back to the hosted default. Calls are rate limited to
// 30 requests per minute.
func NewSignalsProvider(tracer trace.Tracer, baseURL string) *SignalsProvider {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultSignalsBaseURL
	}
	return &SignalsProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tracer:  tracer,
		limiter: NewRateLimiter(30, 2*time.Second),
	}
}

// FetchRaw fetches the signal batch as opaque records. A non-2xx response is
// an error carrying the status code and status text.
func (p *SignalsProvider) FetchRaw(ctx context.Context) ([]RawRecord, error) {
	_, span := p.tracer.Start(ctx, "signals-provider.fetch-raw")
	defer span.End()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+signalsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch signals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("signals API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var records []RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("parse signals: %w", err)
	}
	return records, nil
}
