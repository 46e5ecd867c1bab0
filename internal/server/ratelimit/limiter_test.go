package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_BurstThenReject(t *testing.T) {
	l := NewLimiter(60, time.Minute, 3)
	defer l.Close()

	for i := 0; i < 3; i++ {
		if r := l.Allow("ip:1.2.3.4"); !r.Allowed {
			t.Fatalf("request %d within burst was rejected", i)
		}
	}
	r := l.Allow("ip:1.2.3.4")
	if r.Allowed {
		t.Fatal("expected the request over the burst to be rejected")
	}
	if r.RetryAfter <= 0 {
		t.Errorf("expected a retry hint, got %v", r.RetryAfter)
	}
	if r.Limit != 60 {
		t.Errorf("expected limit 60, got %d", r.Limit)
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := NewLimiter(60, time.Minute, 1)
	defer l.Close()

	if r := l.Allow("ip:1.1.1.1"); !r.Allowed {
		t.Fatal("first request for first key rejected")
	}
	if r := l.Allow("ip:1.1.1.1"); r.Allowed {
		t.Fatal("second request for first key allowed")
	}
	if r := l.Allow("ip:2.2.2.2"); !r.Allowed {
		t.Fatal("first request for second key rejected")
	}
}

func TestLimiter_Refills(t *testing.T) {
	// 10 tokens per second, so a drained bucket recovers quickly.
	l := NewLimiter(10, time.Second, 1)
	defer l.Close()

	if r := l.Allow("k"); !r.Allowed {
		t.Fatal("first request rejected")
	}
	if r := l.Allow("k"); r.Allowed {
		t.Fatal("drained bucket allowed a request")
	}
	time.Sleep(150 * time.Millisecond)
	if r := l.Allow("k"); !r.Allowed {
		t.Fatal("bucket did not refill")
	}
}
