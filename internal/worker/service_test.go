package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func TestServiceSweepsUntilCanceled(t *testing.T) {
	sweeper := &countingSweeper{}
	svc, err := NewService(sweeper, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeper should run repeatedly, calls=%d", sweeper.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("start should return nil after cancel, got %v", err)
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := svc.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestNewServiceRequiresSweeper(t *testing.T) {
	if _, err := NewService(nil, time.Second); err == nil {
		t.Fatalf("expected error for nil sweeper")
	}
	svc, err := NewService(&countingSweeper{}, 0)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if svc.interval != defaultSweepInterval || svc.Name() != "cart_sweeper" {
		t.Fatalf("unexpected defaults: interval=%s name=%s", svc.interval, svc.Name())
	}
}
