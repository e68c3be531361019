// Package github provides a resilient GitHub REST v3 client for the
// analysis service
package github

import (
	"context"
	"net/http"
	"time"

	perr "commitmetrics/internal/platform/errors"
	"commitmetrics/internal/platform/logger"
	"commitmetrics/internal/platform/netcheck"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 20 * time.Second
	defaultUA        = "commitmetrics"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is a personal access token; empty means tokenless which is
	// very low quota so not recommended
	Token string

	// Retry config for transient network failures
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a minimal GitHub REST client with bounded retries and
// offline pre-flight checks
type Client struct {
	http   *http.Client
	opts   Options
	log    logger.Logger
	now    func() time.Time
	sleep  func(time.Duration)
	online func() bool
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		log:    *logger.Named("github"),
		now:    time.Now,
		sleep:  time.Sleep,
		online: netcheck.Online,
	}
}

// Do issues a request with auth headers, bounded retries, and failure
// classification. The device-online check runs before the first attempt;
// an offline host fails immediately without consuming a retry.
// Non-2xx responses become protocol failures carrying the upstream message;
// only transport-level failures are retried
func (c *Client) Do(ctx context.Context, method, path string) (*http.Response, error) {
	if !c.online() {
		return nil, perr.Offlinef("network unavailable; check the connection and try again")
	}

	url := c.opts.BaseURL + path
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return nil, perr.Wrapf(ctx.Err(), perr.ErrorCodeTransient, "github request canceled")
		default:
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "token "+c.opts.Token)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			// transport failure: dial, DNS, timeout
			if !c.shouldRetry(attempt) {
				return nil, perr.Wrapf(err, perr.ErrorCodeTransient, "github unreachable after %d attempts", attempt+1)
			}
			back := c.backoff(attempt)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempt).Msg("github transport error retrying")
			c.sleep(back)
			attempt++
			continue
		}

		rem, reset, retryAfter := parseRateHeaders(resp.Header)
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("latency", lat).
			Int("rate_remaining", rem).
			Time("rate_reset", reset).
			Int("retry_after_s", retryAfter).
			Msg("github http response")

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		// upstream rejected the request; pass the server message through
		msg := readErrorMessage(resp)
		if resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode == http.StatusForbidden && rem == 0) {
			return nil, perr.RateLimitedf("github rate limited: %s", msg)
		}
		return nil, perr.Protocolf("%s", msg)
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}
