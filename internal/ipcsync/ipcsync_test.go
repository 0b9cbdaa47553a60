package ipcsync

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/msgqueue/api"
)

func TestChanSemaphoreWaitPost(t *testing.T) {
	s := NewChanSemaphore(1, 2)
	if err := s.Wait(api.WaitForever); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if err := s.Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if err := s.Post(); err != nil {
		t.Fatalf("Post: %v", err)
	}
	// Now at max (2). A third Post with nothing waiting must fail rather
	// than silently exceed capacity.
	if err := s.Post(); err == nil {
		t.Fatal("expected overflow error posting beyond capacity")
	}
}

func TestChanSemaphoreTimesOut(t *testing.T) {
	s := NewChanSemaphore(0, 1)
	start := time.Now()
	err := s.Wait(20)
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("Wait returned too early after %s", elapsed)
	}
	if !errors.Is(err, api.ErrTimedOut) {
		t.Fatalf("expected ErrTimedOut, got %v", err)
	}
}

func TestChanSemaphoreNonBlockingWhenEmpty(t *testing.T) {
	s := NewChanSemaphore(0, 1)
	err := s.Wait(0)
	if !errors.Is(err, api.ErrTimedOut) {
		t.Fatalf("expected immediate ErrTimedOut, got %v", err)
	}
}

func TestInprocMutexExcludes(t *testing.T) {
	m := NewInprocMutex()
	if err := m.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	unlocked := make(chan struct{})
	go func() {
		if err := m.Lock(); err != nil {
			t.Errorf("second Lock: %v", err)
		}
		close(unlocked)
		m.Unlock()
	}()

	select {
	case <-unlocked:
		t.Fatal("second goroutine acquired the mutex while it was held")
	case <-time.After(20 * time.Millisecond):
	}

	if err := m.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	<-unlocked
}
