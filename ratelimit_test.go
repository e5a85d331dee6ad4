package lingocache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testLimiter(limit int, window time.Duration) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(RateLimitConfig{RequestsPerWindow: limit, Window: window})
	now := time.Now()
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_RejectsOverLimit(t *testing.T) {
	rl, _ := testLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("client-a")
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := rl.Allow("client-a")
	if ok {
		t.Fatal("6th request in the window should be rejected")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retry-after hint out of range: %v", retryAfter)
	}
}

func TestRateLimiter_WindowRollover(t *testing.T) {
	rl, now := testLimiter(2, time.Minute)

	rl.Allow("client-a")
	rl.Allow("client-a")
	if ok, _ := rl.Allow("client-a"); ok {
		t.Fatal("expected rejection within the window")
	}

	*now = now.Add(61 * time.Second)
	if ok, _ := rl.Allow("client-a"); !ok {
		t.Error("request after the window elapsed should be admitted")
	}
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	rl, _ := testLimiter(1, time.Minute)

	rl.Allow("client-a")
	if ok, _ := rl.Allow("client-a"); ok {
		t.Fatal("client-a over budget")
	}
	if ok, _ := rl.Allow("client-b"); !ok {
		t.Error("client-b must not share client-a's window")
	}
}

func TestRateLimiter_ConcurrentAdmitsExactly(t *testing.T) {
	rl, _ := testLimiter(50, time.Minute)

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("client-a"); ok {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 50 {
		t.Errorf("expected exactly 50 admissions, got %d", got)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := testLimiter(10, time.Minute)

	rl.Allow("stale-client")
	*now = now.Add(time.Hour)
	rl.Cleanup(30 * time.Minute)

	if _, ok := rl.clients.Load("stale-client"); ok {
		t.Error("stale window should have been removed")
	}
}
