package voyage

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterDisabledBudgets(t *testing.T) {
	r := newRateLimiter(&Config{})

	for i := 0; i < 10; i++ {
		release, err := r.acquire(context.Background(), 1000)
		if err != nil {
			t.Fatalf("acquire %d failed: %v", i, err)
		}
		release()
	}
}

func TestRateLimiterRequestBudgetBlocks(t *testing.T) {
	r := newRateLimiter(&Config{RequestsPerMinute: 1})

	release, err := r.acquire(context.Background(), 0)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.acquire(ctx, 0)
	if err == nil {
		t.Fatal("expected the second acquire to block until ctx expiry")
	}
}

func TestRateLimiterWindowRollsOver(t *testing.T) {
	r := newRateLimiter(&Config{RequestsPerMinute: 1})
	r.window = 15 * time.Millisecond

	release, err := r.acquire(context.Background(), 0)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	release, err = r.acquire(ctx, 0)
	if err != nil {
		t.Fatalf("second acquire failed: %v", err)
	}
	release()

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("expected the budget to refill within the window, waited %v", elapsed)
	}
}

func TestRateLimiterOverBudgetRequestPassesOnFreshWindow(t *testing.T) {
	r := newRateLimiter(&Config{TokensPerMinute: 100})

	// A single request larger than the whole budget must still go through,
	// otherwise it could never be sent.
	release, err := r.acquire(context.Background(), 1000)
	if err != nil {
		t.Fatalf("over-budget acquire on fresh window failed: %v", err)
	}
	release()
}

func TestRateLimiterTokenBudgetBlocks(t *testing.T) {
	r := newRateLimiter(&Config{TokensPerMinute: 100})

	release, err := r.acquire(context.Background(), 80)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.acquire(ctx, 80)
	if err == nil {
		t.Fatal("expected the second acquire to block until ctx expiry")
	}
}

func TestRateLimiterRecordUsageCorrectsEstimate(t *testing.T) {
	r := newRateLimiter(&Config{TokensPerMinute: 100})

	release, err := r.acquire(context.Background(), 90)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	release()

	// The API billed far fewer tokens than estimated; the freed budget must
	// admit the next request immediately.
	r.recordUsage(90, 10)

	release, err = r.acquire(context.Background(), 80)
	if err != nil {
		t.Fatalf("acquire after correction failed: %v", err)
	}
	release()
}

func TestRateLimiterBudgetWaitDoesNotHoldConcurrencySlot(t *testing.T) {
	r := newRateLimiter(&Config{MaxConcurrentRequests: 1, TokensPerMinute: 100})

	release, err := r.acquire(context.Background(), 90)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	release()

	// This call cannot fit the remaining token budget and has to wait for
	// the next window. While waiting it must not occupy the single
	// concurrency slot.
	blockedCtx, cancelBlocked := context.WithCancel(context.Background())
	defer cancelBlocked()
	started := make(chan struct{})
	go func() {
		close(started)
		r.acquire(blockedCtx, 80)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	release, err = r.acquire(ctx, 5)
	if err != nil {
		t.Fatalf("cheap call starved by a budget-blocked call: %v", err)
	}
	release()
}

func TestRateLimiterConcurrencyCap(t *testing.T) {
	r := newRateLimiter(&Config{MaxConcurrentRequests: 1})

	release, err := r.acquire(context.Background(), 0)
	if err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := r.acquire(ctx, 0); err == nil {
		t.Fatal("expected the second acquire to wait for the slot")
	}

	release()

	if _, err := r.acquire(context.Background(), 0); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
}
