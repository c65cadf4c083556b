package scraper

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Policy decides how often and how patiently a fetch is retried.
type Policy struct {
	Attempts  int
	Delay     func(attempt int) time.Duration
	Retryable func(err error) bool
}

// LinearBackoff waits base, 2*base, 3*base... after the first, second,
// third failed attempt.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// RetryAll treats every failure as transient.
func RetryAll(error) bool { return true }

// DefaultRetryable retries transport failures, timeouts, throttling and
// server errors. Other 4xx answers will not change on a second try.
func DefaultRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusRequestTimeout, se.Code == http.StatusTooManyRequests:
			return true
		case se.Code >= 400 && se.Code < 500:
			return false
		}
	}
	return true
}

func DefaultPolicy(base time.Duration) Policy {
	return Policy{
		Attempts:  3,
		Delay:     LinearBackoff(base),
		Retryable: DefaultRetryable,
	}
}

func (p Policy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Delay == nil {
		return 0
	}
	return p.Delay(attempt)
}

func (p Policy) retryable(err error) bool {
	if p.Retryable == nil {
		return true
	}
	return p.Retryable(err)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
