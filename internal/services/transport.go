// HTTP plumbing shared by the YouTube and YouTube Music backends
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/ytsrc/internal/shared"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.132 Safari/537.36"

// transport performs requests against a backend and converts every failure into a [*shared.TransportError].
type transport struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// newTransport builds a transport. A non-positive rps disables pacing.
func newTransport(client *http.Client, userAgent string, timeout time.Duration, rps float64) *transport {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	t := &transport{httpClient: client, userAgent: userAgent, timeout: timeout}
	if rps > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return t
}

// get fetches rawURL and returns the body.
func (t *transport) get(ctx context.Context, rawURL string) ([]byte, error) {
	return t.do(ctx, http.MethodGet, rawURL, nil, nil)
}

// postJSON sends body as JSON to endpoint with params in the query string and decodes the reply into out.
func (t *transport) postJSON(ctx context.Context, endpoint string, params url.Values, body any, headers map[string]string, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	hdrs := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		hdrs[k] = v
	}

	raw, err := t.do(ctx, http.MethodPost, endpoint, data, hdrs)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &shared.TransportError{Message: "failed to decode response", Body: raw, Err: err}
	}
	return nil
}

func (t *transport) do(ctx context.Context, method, rawURL string, body []byte, headers map[string]string) ([]byte, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, &shared.TransportError{Message: err.Error(), Err: err}
		}
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &shared.TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &shared.TransportError{
			Message:    "failed to read response",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &shared.TransportError{
			Message:    fmt.Sprintf("unexpected status %s", resp.Status),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       raw,
		}
	}

	return raw, nil
}
