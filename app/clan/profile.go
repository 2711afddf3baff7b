package clan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultProfileURL = "https://apps.runescape.com/runemetrics/profile/profile"

const (
	defaultBackoffBase = 1 * time.Second
	defaultBackoffMax  = 30 * time.Second
)

// ProfileClient fetches per-member activity feeds with bounded concurrency.
// Transient failures (timeouts, connection errors, 5xx, empty or malformed
// bodies) are retried with exponential backoff; permanent failures (4xx)
// and exhausted retries degrade to a per-member skip. A single member's
// failure never aborts the batch.
type ProfileClient struct {
	client      *resty.Client
	baseURL     string
	concurrency int
	maxRetries  int
	backoffBase time.Duration
	backoffMax  time.Duration
}

func NewProfileClient(client *resty.Client, baseURL string, concurrency, maxRetries int) *ProfileClient {
	if concurrency <= 0 {
		concurrency = 10
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseURL == "" {
		baseURL = DefaultProfileURL
	}

	return &ProfileClient{
		client:      client,
		baseURL:     baseURL,
		concurrency: concurrency,
		maxRetries:  maxRetries,
		backoffBase: defaultBackoffBase,
		backoffMax:  defaultBackoffMax,
	}
}

// SetBackoff overrides the retry delay schedule.
func (c *ProfileClient) SetBackoff(base, max time.Duration) {
	c.backoffBase = base
	c.backoffMax = max
}

// FetchAll fetches the activity feed of every member. Results are returned
// in input order regardless of completion order.
func (c *ProfileClient) FetchAll(ctx context.Context, names []string, depth int) []ProfileResult {
	results := make([]ProfileResult, len(names))

	// Counting admission gate shared by all requests of the run.
	gate := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			gate <- struct{}{}
			defer func() { <-gate }()

			results[i] = c.fetchOne(ctx, name, depth)
		}(i, name)
	}

	wg.Wait()

	return results
}

func (c *ProfileClient) fetchOne(ctx context.Context, name string, depth int) ProfileResult {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoffBase << uint(attempt-1)
			if delay > c.backoffMax {
				delay = c.backoffMax
			}

			select {
			case <-ctx.Done():
				return ProfileResult{Member: name, Skipped: true, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		profile, retryable, err := c.request(ctx, name, depth)
		if err == nil {
			return ProfileResult{Member: name, Profile: profile}
		}

		lastErr = err
		if !retryable {
			slog.Warn("Profile fetch failed permanently", "member", name, "error", err)
			return ProfileResult{Member: name, Skipped: true, Err: err}
		}

		slog.Debug("Profile fetch attempt failed", "member", name, "attempt", attempt+1, "error", err)
	}

	slog.Warn("Profile fetch failed after retries", "member", name, "retries", c.maxRetries, "error", lastErr)

	return ProfileResult{Member: name, Skipped: true, Err: lastErr}
}

// request performs a single fetch attempt. The second return value reports
// whether the failure is transient and worth retrying.
func (c *ProfileClient) request(ctx context.Context, name string, depth int) (*Profile, bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("user", name).
		SetQueryParam("activities", strconv.Itoa(depth)).
		Get(c.baseURL)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	default:
		return nil, false, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, true, errors.New("empty response body")
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, true, fmt.Errorf("malformed profile body: %w", err)
	}

	if profile.Name == "" {
		profile.Name = name
	}

	return &profile, false, nil
}
