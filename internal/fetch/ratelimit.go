package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const quotaWindow = 24 * time.Hour

// ErrDailyLimitReached means the upstream's daily call budget is spent.
var ErrDailyLimitReached = errors.New("daily upstream call limit reached")

// RateLimiter paces calls to one upstream with a token bucket and, when
// configured, caps them per rolling 24-hour window.
type RateLimiter struct {
	bucket *rate.Limiter
	budget int64 // 0 means no daily cap
	now    func() time.Time

	mu      sync.Mutex
	used    int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the clock. Intended for tests.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = f
	}
}

// NewRateLimiter allows perSecond calls with the given burst. A non-positive
// maxDaily leaves the daily budget unlimited.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		budget: max(maxDaily, 0),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.now().Add(quotaWindow)
	return r
}

// Wait claims one call from the daily budget, then blocks for a token. The
// claim is returned when ctx ends before a token arrives.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.claim(); err != nil {
		return err
	}

	if err := r.bucket.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("waiting for rate limit token: %w", err)
	}
	return nil
}

func (r *RateLimiter) claim() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if r.budget > 0 && r.used >= r.budget {
		return fmt.Errorf("%w (%d/%d, resets %s)",
			ErrDailyLimitReached, r.used, r.budget, r.resetAt.UTC().Format(time.RFC3339))
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.used > 0 {
		r.used--
	}
}

// rollLocked starts a fresh window once the current one has expired.
func (r *RateLimiter) rollLocked() {
	if now := r.now(); now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(quotaWindow)
	}
}

// MaxDaily returns the daily budget, 0 when unlimited.
func (r *RateLimiter) MaxDaily() int64 {
	return r.budget
}

// DailyCount returns the calls admitted in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Remaining returns the calls left in the current window, or -1 when the
// budget is unlimited.
func (r *RateLimiter) Remaining() int64 {
	if r.budget == 0 {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return max(r.budget-r.used, 0)
}

// ResetAt returns when the current window expires.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}
