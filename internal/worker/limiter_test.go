package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://abc.supabase.co/rest/v1/materials"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://other.supabase.co/rest/v1/etchants"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	rawURL := "https://abc.supabase.co/rest/v1/materials"

	if !limiter.Allow(rawURL) {
		t.Fatal("first request should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, rawURL); err == nil {
		t.Error("expected error when the deadline is shorter than the wait")
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}
	if limiter.Allow("http://example.com/other/path") {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}
	if !limiter.Allow("http://other.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("http://example.com") {
			t.Fatalf("request %d throttled with rate disabled", i)
		}
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetHostRate("slow.com", 0.1, 1)

	if !limiter.Allow("http://slow.com") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("http://slow.com") {
		t.Errorf("second request should fail")
	}
	if !limiter.Allow("http://fast.com") {
		t.Errorf("other host should pass")
	}
}

func TestHostOf(t *testing.T) {
	host, err := hostOf("https://abc.supabase.co:8443/rest/v1/materials")
	if err != nil {
		t.Fatalf("hostOf failed: %v", err)
	}
	if host != "abc.supabase.co:8443" {
		t.Errorf("expected abc.supabase.co:8443, got %s", host)
	}

	if _, err := hostOf("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
