package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newTestRetry(p Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	})
	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	r.jitter = func() float64 { return 0 }
	return r, &waits
}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrRateLimit{}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	r, waits := newTestRetry(mock, 3)

	resp, err := r.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(*waits) != 2 || (*waits)[0] != want[0] || (*waits)[1] != want[1] {
		t.Errorf("waits = %v, want %v", *waits, want)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider()
	r, waits := newTestRetry(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if n := len(mock.Calls()); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
	if len(*waits) != 2 {
		t.Errorf("waits = %v, want 2 sleeps", *waits)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad")}
	mock := NewMockProvider(
		MockResponse{Err: invalid},
		MockResponse{Err: invalid},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r, _ := newTestRetry(mock, 5)

	_, err := r.Generate(context.Background(), Request{})
	if !errors.Is(err, invalid) {
		t.Fatalf("err = %v, want the invalid response error", err)
	}
	if n := len(mock.Calls()); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	r, _ := newTestRetry(mock, 3)

	_, err := r.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("err = %v", err)
	}
	if n := len(mock.Calls()); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestRetry_HonorsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 7 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r, waits := newTestRetry(mock, 2)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if len(*waits) != 1 || (*waits)[0] != 7*time.Second {
		t.Errorf("waits = %v", *waits)
	}
}

func TestRetry_BackoffCappedWithJitter(t *testing.T) {
	r, _ := newTestRetry(NewMockProvider(), 5)
	r.jitter = func() float64 { return 1 }

	got := r.backoff(4, errors.New("x"))
	want := time.Duration(float64(300*time.Millisecond) * 1.2)
	if got != want {
		t.Errorf("backoff = %v, want %v", got, want)
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	mock := NewMockProvider()
	r := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
