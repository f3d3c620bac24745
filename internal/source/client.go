// Package source fetches raw job payloads from the public endpoints of the
// supported applicant tracking systems. Everything returned here is untyped;
// the normalizer owns field mapping.
package source

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSourceUnavailable marks a board that could not be fetched. Ingest
// isolates these per board instead of failing the run.
var ErrSourceUnavailable = errors.New("source unavailable")

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "jobscout/1.0"
)

// Client talks to all four platforms. Base URLs are fields so tests can
// point them at httptest servers.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	GreenhouseBase string
	LeverBase      string
	AshbyBase      string
	WorkableBase   string
}

// NewClient returns a client wired to the public endpoints.
func NewClient() *Client {
	return &Client{
		HTTPClient:     &http.Client{Timeout: defaultTimeout},
		UserAgent:      defaultUserAgent,
		GreenhouseBase: "https://boards-api.greenhouse.io",
		LeverBase:      "https://api.lever.co",
		AshbyBase:      "https://api.ashbyhq.com",
		WorkableBase:   "https://apply.workable.com",
	}
}

// getJSON fetches a URL and decodes its JSON body into out. Responses are
// requested and transparently handled gzip-compressed.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", ErrSourceUnavailable, url, resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: bad gzip body: %v", ErrSourceUnavailable, err)
		}
		defer gz.Close()
		body = gz
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrSourceUnavailable, url, err)
	}
	return nil
}
