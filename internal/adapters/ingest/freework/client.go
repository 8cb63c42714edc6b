// Package freework fetches contractor job postings from the free-work.com API
package freework

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "tjmwatch/internal/platform/errors"
	"tjmwatch/internal/platform/logger"
)

const (
	baseURLDefault      = "https://www.free-work.com/api"
	userAgentDefault    = "tjmwatch-ingest"
	defaultTimeout      = 30 * time.Second
	defaultMaxRetry     = 4
	defaultRetryBase    = 500 * time.Millisecond
	defaultItemsPerPage = 1000
	maxBackoff          = 30 * time.Second
	maxBody             = 64 << 20
)

// DefaultKeywords is the search keyword list sent with every fetch
var DefaultKeywords = []string{
	"développeur", "developer", "dev", "devops", "backend", "frontend",
	"full-stack", "fullstack", "pentest", "rssi", "cybersécurité", "react",
	"nodejs", "go", "c", "c++", "rust", "typescript", "golang", "python",
	"flutter", "react native", "swift", "sql", "mobile", "cto", "lead dev",
	"javascript", "aws", "gcp", "azure", "architecte",
}

// Options configures the client
type Options struct {
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	RetryBase    time.Duration
	Keywords     []string
	ItemsPerPage int
	HTTPClient   *http.Client
}

func (o *Options) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = userAgentDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if len(o.Keywords) == 0 {
		o.Keywords = DefaultKeywords
	}
	if o.ItemsPerPage <= 0 {
		o.ItemsPerPage = defaultItemsPerPage
	}
}

// Client talks to the free-work job_postings endpoint
type Client struct {
	http  *http.Client
	opts  Options
	log   *logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient returns a Client with defaults applied
func NewClient(opts Options) *Client {
	opts.defaults()
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		http:  hc,
		opts:  opts,
		log:   logger.Named("freework"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// FetchRecent returns the contractor postings published in the last 24 hours
// that match any configured keyword, along with the upstream total
func (c *Client) FetchRecent(ctx context.Context) ([]JobPosting, int, error) {
	q := url.Values{}
	q.Set("itemsPerPage", strconv.Itoa(c.opts.ItemsPerPage))
	q.Set("contracts", "contractor")
	q.Set("publishedSince", "less_than_24_hours")
	q.Set("searchKeywords", strings.Join(c.opts.Keywords, ","))

	body, err := c.get(ctx, c.opts.BaseURL+"/job_postings?"+q.Encode())
	if err != nil {
		return nil, 0, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, 0, perr.Wrap(err, perr.ErrorCodeUpstream, "freework: decode job_postings")
	}
	if page.Members == nil {
		page.Members = []JobPosting{}
	}
	c.log.Debug().Int("members", len(page.Members)).Int("total", page.Total).Msg("fetched job postings")
	return page.Members, page.Total, nil
}

// get performs a GET with retry on transport errors, 429 and 5xx
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var attempt int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "freework: build request")
		}
		req.Header.Set("Accept", "application/ld+json")
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !c.shouldRetry(attempt) {
				return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "freework: request failed")
			}
			if err := c.wait(ctx, attempt, c.backoff(attempt), "transport"); err != nil {
				return nil, err
			}
			attempt++
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			b, rerr := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			closeBody(c.log, resp.Body)
			if rerr != nil {
				return nil, perr.Wrap(rerr, perr.ErrorCodeUpstream, "freework: read body")
			}
			return b, nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			d := retryAfter(resp.Header.Get("Retry-After"))
			if d <= 0 {
				d = c.backoff(attempt)
			}
			status := resp.StatusCode
			closeBody(c.log, resp.Body)
			if !c.shouldRetry(attempt) {
				return nil, perr.Upstreamf("freework: status %d after %d attempts", status, attempt+1)
			}
			if err := c.wait(ctx, attempt, d, strconv.Itoa(status)); err != nil {
				return nil, err
			}
			attempt++

		default:
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			closeBody(c.log, resp.Body)
			return nil, perr.Upstreamf("freework: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		}
	}
}

func (c *Client) wait(ctx context.Context, attempt int, d time.Duration, reason string) error {
	c.log.Warn().Int("attempt", attempt+1).Dur("wait", d).Str("reason", reason).Msg("retrying job_postings")
	return c.sleep(ctx, d)
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << attempt
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool { return attempt < c.opts.MaxRetries }

func retryAfter(h string) time.Duration {
	if h == "" {
		return 0
	}
	if sec, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && sec > 0 {
		d := time.Duration(sec) * time.Second
		if d > maxBackoff {
			return maxBackoff
		}
		return d
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func closeBody(log *logger.Logger, rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	if err := rc.Close(); err != nil {
		log.Error().Err(err).Msg("closing response body")
	}
}
