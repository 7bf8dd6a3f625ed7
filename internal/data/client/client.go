// Package client talks to the baggage backend over HTTP.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/util"
)

const specialBaggagePath = "/get-special-baggage"

// ErrUnexpectedStatus is returned for any non-200 response
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client fetches loading records for a time window
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at baseURL. A zero timeout uses the
// default request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSpecialBaggage requests every record departing within [from, to].
// Bounds are sent as RFC 3339 UTC timestamps.
func (c *Client) FetchSpecialBaggage(ctx context.Context, from, to time.Time) ([]model.LoadingRecord, error) {
	endpoint := c.requestURL(from, to)
	util.LogDebugf("Fetching special baggage: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch special baggage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var records []model.LoadingRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse special baggage: %w", err)
	}
	if records == nil {
		records = []model.LoadingRecord{}
	}

	if unknown := countUnknown(records); unknown > 0 {
		util.LogWarnf("Backend returned %d records with unknown baggage type or status", unknown)
	}
	util.LogDebugf("Fetched %d special baggage records", len(records))
	return records, nil
}

func (c *Client) requestURL(from, to time.Time) string {
	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	return c.baseURL + specialBaggagePath + "?" + q.Encode()
}

func countUnknown(records []model.LoadingRecord) int {
	n := 0
	for _, r := range records {
		if !r.BaggageType.Valid() || !r.Status.Valid() {
			n++
		}
	}
	return n
}
