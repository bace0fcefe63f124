package httputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

var errFlaky = errors.New("connection reset")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errFlaky)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, errFlaky) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if err.Error() != errFlaky.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(errFlaky) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		attempts  int
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 3, 0, true, 1, false},
		{"succeeds after retry", 3, 2, true, 3, false},
		{"exhausts attempts", 3, 5, true, 3, true},
		{"non-retryable stops", 3, 5, false, 1, true},
		{"zero attempts runs once", 0, 0, true, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return Retryable(errFlaky)
					}
					return errFlaky
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Retry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errFlaky)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRateLimitReset(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name    string
		headers map[string]string
		want    time.Duration
	}{
		{"reset in future", map[string]string{HeaderRateLimitReset: "1700000090"}, 90 * time.Second},
		{"reset in past", map[string]string{HeaderRateLimitReset: "1699999990"}, 0},
		{"retry after", map[string]string{HeaderRetryAfter: "30"}, 30 * time.Second},
		{"reset wins over retry after", map[string]string{HeaderRateLimitReset: "1700000010", HeaderRetryAfter: "30"}, 10 * time.Second},
		{"garbage falls back", map[string]string{HeaderRateLimitReset: "soon"}, time.Minute},
		{"no headers", nil, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			if got := RateLimitReset(h, now, time.Minute); got != tt.want {
				t.Errorf("RateLimitReset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSleepUntil(t *testing.T) {
	if err := SleepUntil(context.Background(), time.Millisecond); err != nil {
		t.Errorf("SleepUntil() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := SleepUntil(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("SleepUntil() error = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("SleepUntil should return as soon as the context is done")
	}
}
