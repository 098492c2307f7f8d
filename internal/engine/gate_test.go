package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGateCapsConcurrency(t *testing.T) {
	gate := NewGate(4)

	var inFlight, maxSeen int64
	var wg sync.WaitGroup
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := gate.Acquire(ctx); err != nil {
				t.Errorf("Acquire error: %v", err)
				return
			}
			defer gate.Release()

			n := atomic.AddInt64(&inFlight, 1)
			for {
				old := atomic.LoadInt64(&maxSeen)
				if n <= old || atomic.CompareAndSwapInt64(&maxSeen, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
		}()
	}
	wg.Wait()

	if maxSeen > 4 {
		t.Errorf("observed %d concurrent holders, gate size is 4", maxSeen)
	}
}

func TestGateAcquireHonorsCancel(t *testing.T) {
	gate := NewGate(1)

	ctx := context.Background()
	if err := gate.Acquire(ctx); err != nil {
		t.Fatalf("Acquire error: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- gate.Acquire(cancelCtx)
	}()

	cancel()
	select {
	case err := <-errCh:
		if err == nil {
			t.Error("Acquire succeeded on cancelled context, want error")
			gate.Release()
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after cancel")
	}

	gate.Release()
}

func TestNewGateClampsSize(t *testing.T) {
	gate := NewGate(0)

	// A zero-size gate would deadlock immediately; a clamped one admits
	// a single holder.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := gate.Acquire(ctx); err != nil {
		t.Fatalf("Acquire on clamped gate error: %v", err)
	}
	gate.Release()
}
