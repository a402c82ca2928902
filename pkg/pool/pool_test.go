package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestForEach_ProcessesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var sum int64

	err := ForEach(context.Background(), items, 3, func(ctx context.Context, item int) error {
		atomic.AddInt64(&sum, int64(item))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum != 36 {
		t.Errorf("expected every item processed, sum = %d", sum)
	}
}

func TestForEach_CollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4}
	wantErr := errors.New("odd item")

	err := ForEach(context.Background(), items, 2, func(ctx context.Context, item int) error {
		if item%2 == 1 {
			return wantErr
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected joined errors")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("expected joined error to contain %v, got %v", wantErr, err)
	}
}

func TestForEach_EmptyItems(t *testing.T) {
	if err := ForEach(context.Background(), nil, 2, func(ctx context.Context, item int) error {
		t.Error("worker should never run with no items")
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForEach_StopsFeedingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	items := make([]int, 100)
	var processed int64
	var once sync.Once

	_ = ForEach(ctx, items, 1, func(ctx context.Context, item int) error {
		atomic.AddInt64(&processed, 1)
		once.Do(cancel)
		time.Sleep(5 * time.Millisecond)
		return nil
	})

	if n := atomic.LoadInt64(&processed); n >= 100 {
		t.Errorf("expected cancellation to stop feeding items, processed %d", n)
	}
}

func TestForEach_ClampsWorkerCount(t *testing.T) {
	var processed int64
	err := ForEach(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, item int) error {
		atomic.AddInt64(&processed, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if processed != 3 {
		t.Errorf("expected 3 items processed, got %d", processed)
	}
}
