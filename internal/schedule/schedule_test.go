package schedule

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestEvery_ReturnsStoppableHandle(t *testing.T) {
	s := NewCron(nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	handle, err := s.Every(time.Second, func() {})
	if err != nil {
		t.Fatalf("Every() err=%v, want nil", err)
	}
	if handle == nil {
		t.Fatalf("Every() handle=nil, want handle")
	}

	handle.Stop()
	// Stop is idempotent.
	handle.Stop()
}

func TestHandle_ConcurrentStop(t *testing.T) {
	s := NewCron(nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	handle, err := s.Every(time.Second, func() {})
	if err != nil {
		t.Fatalf("Every() err=%v, want nil", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle.Stop()
		}()
	}
	wg.Wait()
}

func TestEvery_IndependentHandles(t *testing.T) {
	s := NewCron(nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	first, err := s.Every(time.Second, func() {})
	if err != nil {
		t.Fatalf("Every() err=%v, want nil", err)
	}
	second, err := s.Every(4*time.Second, func() {})
	if err != nil {
		t.Fatalf("Every() err=%v, want nil", err)
	}

	// Cancelling one schedule must not disturb the other.
	first.Stop()
	second.Stop()
}
