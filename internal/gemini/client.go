// Package gemini performs grounded web searches through the Gemini
// generateContent REST API. Each call sends the query as a single user turn
// with the built-in Google Search tool enabled and returns the first text
// fragment of the first candidate.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jpl-au/gemini-search/internal/config"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NoResults is returned as the search text when the response carries no text.
const NoResults = "No results found"

// ErrInvalidJSON is returned when the response body is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON in response body")

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch struct{} `json:"googleSearch"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools"`
}

// Client issues search requests. It is safe for concurrent use; the only
// state it holds is the configuration it was built with.
type Client struct {
	cfg     config.Config
	http    *http.Client
	limiter *rate.Limiter // nil when unlimited
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client bound to cfg.
func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RateLimit > 0 {
		burst := max(int(cfg.RateLimit), 1)
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.cfg.Model }

// Endpoint returns the generateContent URL including the key parameter.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, escapeModel(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))
}

// escapeModel escapes each segment so names like tunedModels/x keep their slash.
func escapeModel(model string) string {
	segs := strings.Split(model, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// Search sends query upstream and returns the generated text, or NoResults
// when the response has no text at candidates[0].content.parts[0].text.
// The HTTP status is not inspected: transport and decoding failures are
// the only errors.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: query}}}},
		Tools:    []tool{{}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", scrub(err, c.cfg.APIKey)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("upstream returned error status", "status", resp.StatusCode, "model", c.cfg.Model)
	}

	text, ok, err := FirstText(data)
	if err != nil {
		return "", err
	}
	if !ok {
		return NoResults, nil
	}
	return text, nil
}

// scrub removes the API key from transport errors, which embed the request URL.
func scrub(err error, key string) error {
	var ue *url.Error
	if key == "" || !errors.As(err, &ue) {
		return err
	}
	return fmt.Errorf("%s %s: %w", ue.Op, redactURL(ue.URL), ue.Err)
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
