package scraper

import (
	"context"
	"fmt"
	"snowreport/internal/providers"
	"snowreport/internal/structures"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// StatusError is returned for any answer outside the 2xx range.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// FetchError carries the last failure once every attempt is used up or the
// failure was not worth retrying.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s failed after %d attempt(s): %s", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Page struct {
	URL      string
	Body     string
	Attempts int
}

type FetcherInterface interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

type Fetcher struct {
	http   *resty.Client
	policy Policy
	logger providers.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewFetcher(conf *structures.Config, logger providers.Logger) *Fetcher {
	client := resty.New()
	client.SetTimeout(conf.Scraper.Timeout)
	client.SetHeader("User-Agent", conf.Scraper.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")

	if rps := conf.Scraper.RequestsPerSecond; rps > 0 {
		limiter := rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	policy := DefaultPolicy(conf.Scraper.BackoffBase)
	policy.Attempts = conf.Scraper.Attempts
	if conf.Scraper.RetryAll {
		policy.Retryable = RetryAll
	}

	return &Fetcher{
		http:   client,
		policy: policy,
		logger: logger,
		sleep:  sleepContext,
	}
}

// WithPolicy replaces the retry policy.
func (f *Fetcher) WithPolicy(p Policy) *Fetcher {
	f.policy = p
	return f
}

// Fetch returns the body of url, retrying failed attempts according to the
// policy. The delay before attempt n+1 is policy.Delay(n).
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	attempts := f.policy.attempts()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := f.get(ctx, url)
		if err == nil {
			return &Page{URL: url, Body: body, Attempts: attempt}, nil
		}
		lastErr = err

		if attempt == attempts || !f.policy.retryable(err) {
			return nil, &FetchError{URL: url, Attempts: attempt, Err: lastErr}
		}

		wait := f.policy.delay(attempt)
		f.logger.Warnf(providers.TypeScrape, "Attempt %d/%d for %s failed: %s, retrying in %s", attempt, attempts, url, err, wait)
		if err := f.sleep(ctx, wait); err != nil {
			return nil, &FetchError{URL: url, Attempts: attempt, Err: err}
		}
	}

	return nil, &FetchError{URL: url, Attempts: attempts, Err: lastErr}
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	resp, err := f.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", &StatusError{Code: resp.StatusCode(), URL: url}
	}
	return resp.String(), nil
}

var _ FetcherInterface = (*Fetcher)(nil)
