package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := withRetry(context.Background(), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected ok, got %q", result)
	}
	// Two retries on top of the initial attempt.
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	attempts := 0
	lastErr := errors.New("still broken")
	_, err := withRetry(context.Background(), func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("earlier failure")
		}
		return 0, lastErr
	})
	if !errors.Is(err, lastErr) {
		t.Fatalf("expected last error to propagate, got %v", err)
	}
	if attempts != maxRetries+1 {
		t.Fatalf("expected %d attempts, got %d", maxRetries+1, attempts)
	}
}

func TestWithRetry_CanceledContextAbortsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	start := time.Now()
	_, err := withRetry(ctx, func() (int, error) {
		attempts++
		return 0, errors.New("should not run")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected no attempts on canceled context, got %d", attempts)
	}
	if time.Since(start) > initialRetryDelay {
		t.Fatal("canceled context should not wait out the retry delay")
	}
}

func TestWithRetry_CancellationErrorNotRetried(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), func() (int, error) {
		attempts++
		return 0, context.DeadlineExceeded
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("cancellation errors must not retry, got %d attempts", attempts)
	}
}

func TestResponseText(t *testing.T) {
	resp := &generateResponse{Candidates: []candidate{{
		Content: content{Parts: []part{{Text: "hello "}, {Text: "world"}}},
	}}}
	text, err := responseText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("expected concatenated parts, got %q", text)
	}

	if _, err := responseText(&generateResponse{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
