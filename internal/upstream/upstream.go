// Package upstream holds the request plumbing shared by the third-party API
// clients.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clover/internal/apperr"
	"clover/internal/logger"

	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 4 << 10

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Service string
	// Authorize decorates every outgoing request, typically with credentials.
	Authorize func(req *http.Request)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// NewRequest builds a request against BaseURL+path with a JSON body when in
// is not nil.
func (c *Client) NewRequest(ctx context.Context, method, path string, in interface{}) (*http.Request, error) {
	if in == nil {
		return c.NewBodyRequest(ctx, method, path, nil, "")
	}

	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", c.Service, err)
	}
	return c.NewBodyRequest(ctx, method, path, bytes.NewReader(b), "application/json")
}

// NewBodyRequest builds a request with an arbitrary body, such as a multipart
// form.
func (c *Client) NewBodyRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, body)
	if err != nil {
		return nil, fmt.Errorf("constructing %s request: %w", c.Service, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Do sends req and decodes a successful JSON answer into out. Non-2xx answers
// become apperr values via CheckResponse.
func (c *Client) Do(req *http.Request, out interface{}) error {
	if c.Authorize != nil {
		c.Authorize(req)
	}

	logger.Debugf("%s %s %s", c.Service, req.Method, req.URL.Path)

	res, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", c.Service, err)
	}
	defer res.Body.Close()

	if err := CheckResponse(c.Service, res); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", c.Service, err)
	}

	return nil
}

func (c *Client) DoJSON(ctx context.Context, method, path string, in, out interface{}) error {
	req, err := c.NewRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// CheckResponse returns nil for a 2xx answer and otherwise an error carrying
// the status and the upstream message.
func CheckResponse(service string, res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return apperr.FromStatus(service, res.StatusCode, errorMessage(body))
}

// errorMessage pulls the human readable part out of the usual JSON error
// shapes, falling back to the raw body.
func errorMessage(body []byte) string {
	var shaped struct {
		Message string `json:"message"`
		Error   json.RawMessage
	}
	if err := json.Unmarshal(body, &shaped); err == nil {
		if shaped.Message != "" {
			return shaped.Message
		}
		var s string
		if json.Unmarshal(shaped.Error, &s) == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(shaped.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return strings.TrimSpace(string(body))
}

type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient paces outgoing requests to perSecond with the given
// burst, on top of the base client's transport.
func NewRateLimitedHTTPClient(base *http.Client, perSecond float64, burst int) *http.Client {
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}

	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	limited := *base
	limited.Transport = &rateLimitedTransport{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
	}
	return &limited
}
