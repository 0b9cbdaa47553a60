//go:build linux
// +build linux

package msgqueue

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/momentics/msgqueue/api"
)

// createOrSkipNamed attempts to create a named queue and skips the test if
// the sandbox denies the underlying System V IPC calls (common in
// restricted containers).
func createOrSkipNamed(t *testing.T, maxMsgs, maxLen int, name string) *Queue {
	t.Helper()
	q, err := Create(maxMsgs, maxLen, api.FIFO, name)
	if err != nil {
		t.Skipf("named queue backend unavailable in this environment: %v", err)
	}
	return q
}

func TestNamedQueueCreateThenOpenShareState(t *testing.T) {
	name := fmt.Sprintf("msgq-test-%d", os.Getpid())
	creator := createOrSkipNamed(t, 4, 16, name)
	defer creator.Delete()

	opener, err := Open(name)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer opener.Delete()

	if err := creator.Send([]byte("hello"), api.WaitForever, api.Normal); err != nil {
		t.Fatalf("Send via creator: %v", err)
	}

	buf := make([]byte, 16)
	n, err := opener.Receive(buf, api.WaitForever)
	if err != nil {
		t.Fatalf("Receive via opener: %v", err)
	}
	if got := string(buf[:n]); got != "hello" {
		t.Fatalf("received %q, want %q", got, "hello")
	}
}

func TestNamedQueueOpenRejectsUnknownName(t *testing.T) {
	name := fmt.Sprintf("msgq-test-missing-%d", os.Getpid())
	_, err := Open(name)
	if err == nil {
		t.Fatal("expected error opening a queue that was never created")
	}
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNamedQueueSecondCreatorAttachesToExistingRegion(t *testing.T) {
	name := fmt.Sprintf("msgq-test-second-%d", os.Getpid())
	first := createOrSkipNamed(t, 3, 8, name)
	defer first.Delete()

	second, err := Create(3, 8, api.FIFO, name)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	defer second.Delete()

	if err := first.Send([]byte("x"), api.WaitForever, api.Normal); err != nil {
		t.Fatalf("send: %v", err)
	}
	st, err := second.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.MsgNum != 1 {
		t.Fatalf("second handle sees MsgNum=%d, want 1 (region should be shared)", st.MsgNum)
	}
}

// TestNamedQueueDeleteReleasesNameForReuse checks that once every handle
// to a named queue has been deleted, the name is free for a fresh
// Create to reinitialize from scratch rather than attaching to leaked
// kernel state from the previous lifetime.
func TestNamedQueueDeleteReleasesNameForReuse(t *testing.T) {
	name := fmt.Sprintf("msgq-test-reuse-%d", os.Getpid())

	first := createOrSkipNamed(t, 2, 8, name)
	if err := first.Send([]byte("x"), api.WaitForever, api.Normal); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := first.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	second, err := Create(2, 8, api.FIFO, name)
	if err != nil {
		t.Fatalf("Create after Delete: %v", err)
	}
	defer second.Delete()

	st, err := second.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.MsgNum != 0 {
		t.Fatalf("MsgNum = %d after reusing a deleted name, want 0 (fresh region)", st.MsgNum)
	}
}
