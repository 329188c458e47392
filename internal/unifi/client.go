package unifi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gatewatch/console-api/internal/config"
)

// networkFailureMessage is surfaced when the probe cannot reach the device
// at all (DNS, TLS, connection refused, CORS when proxied).
const networkFailureMessage = "Connection failed. Check that the URL is correct, " +
	"that the device is reachable on the network, and that the protocol matches " +
	"(HTTP vs HTTPS/CORS)."

// ProbeResult is the outcome of a single connectivity probe.
type ProbeResult struct {
	Success    bool   `json:"success"`
	SiteCount  int    `json:"siteCount"`
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message"`
}

// Client issues reachability probes against gateway integration APIs.
// It is stateless per call and safe for concurrent use.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a probe client with the configured timeout.
func NewClient(cfg *config.ProbeConfig) *Client {
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ProbeSites issues exactly one GET to <normalized>/sites with the API key
// attached. No retries, no caching; both arguments must be non-empty and
// the URL must have been validated by the caller.
//
// The outcome encodes all failure modes rather than returning an error:
// an unreachable device is an expected result of a probe, not a fault of
// the caller.
func (c *Client) ProbeSites(ctx context.Context, rawURL, apiKey string) ProbeResult {
	endpoint := NormalizeAPIURL(rawURL) + "/sites"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ProbeResult{Success: false, Message: networkFailureMessage}
	}
	req.Header.Set("X-API-KEY", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ProbeResult{Success: false, Message: networkFailureMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ProbeResult{
			Success:    false,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	// Any success body that is not a JSON array degrades to a count of 0.
	count := 0
	var sites []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&sites); err == nil {
		count = len(sites)
	}

	return ProbeResult{
		Success:    true,
		SiteCount:  count,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Connected successfully. %d site(s) found.", count),
	}
}
