package voyage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// rateLimiter enforces the client-side budgets before a request goes out:
// a cap on concurrent in-flight calls and per-minute request and token
// budgets. The remote API enforces its own limits too; staying inside the
// local budgets avoids burning retry attempts on predictable 429s.
type rateLimiter struct {
	sem *semaphore.Weighted // nil when concurrency is unlimited

	mu             sync.Mutex
	window         time.Duration
	requestBudget  int // 0 disables
	tokenBudget    int // 0 disables
	windowStart    time.Time
	requestsUsed   int
	tokensReserved int
}

func newRateLimiter(cfg *Config) *rateLimiter {
	r := &rateLimiter{
		window:        time.Minute,
		requestBudget: cfg.RequestsPerMinute,
		tokenBudget:   cfg.TokensPerMinute,
		windowStart:   time.Now(),
	}
	if cfg.MaxConcurrentRequests > 0 {
		r.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentRequests))
	}
	return r
}

// acquire blocks until the request fits the budgets and a concurrency slot
// is free, then reserves estimatedTokens against the token budget. The
// returned release function must be called once the HTTP call has finished.
//
// The budgets are acquired before the semaphore: a call sleeping for the
// next window must not hold a concurrency slot that calls with budget left
// could use.
func (r *rateLimiter) acquire(ctx context.Context, estimatedTokens int) (func(), error) {
	for {
		r.mu.Lock()
		r.rollWindowLocked()

		requestOK := r.requestBudget == 0 || r.requestsUsed < r.requestBudget
		// A single over-budget request must still pass on a fresh window,
		// otherwise it could never be sent at all.
		tokenOK := r.tokenBudget == 0 ||
			r.tokensReserved+estimatedTokens <= r.tokenBudget ||
			r.tokensReserved == 0

		if requestOK && tokenOK {
			r.requestsUsed++
			r.tokensReserved += estimatedTokens
			r.mu.Unlock()
			break
		}

		wait := r.window - time.Since(r.windowStart)
		r.mu.Unlock()

		if err := sleepCtx(ctx, wait); err != nil {
			return nil, err
		}
	}

	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			r.unreserve(estimatedTokens)
			return nil, err
		}
	}

	return func() {
		if r.sem != nil {
			r.sem.Release(1)
		}
	}, nil
}

// unreserve returns a reservation that never turned into a request.
func (r *rateLimiter) unreserve(estimatedTokens int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.requestsUsed > 0 {
		r.requestsUsed--
	}
	r.tokensReserved -= estimatedTokens
	if r.tokensReserved < 0 {
		r.tokensReserved = 0
	}
}

// recordUsage corrects the reserved estimate with the billed token count
// reported by the API.
func (r *rateLimiter) recordUsage(estimatedTokens, actualTokens int) {
	if actualTokens <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollWindowLocked()
	r.tokensReserved += actualTokens - estimatedTokens
	if r.tokensReserved < 0 {
		r.tokensReserved = 0
	}
}

// rollWindowLocked resets the budgets when the rolling window has elapsed.
// Callers must hold mu.
func (r *rateLimiter) rollWindowLocked() {
	if time.Since(r.windowStart) >= r.window {
		r.windowStart = time.Now()
		r.requestsUsed = 0
		r.tokensReserved = 0
	}
}
