package mangler

import (
	"strings"
	"testing"

	"github.com/momentics/msgqueue/api"
)

func TestMangleProducesFourDistinctNames(t *testing.T) {
	names, err := Mangle("orders")
	if err != nil {
		t.Fatalf("Mangle: %v", err)
	}
	got := map[string]string{
		"semP":  names.SemP,
		"semC":  names.SemC,
		"mutex": names.Mutex,
		"shmem": names.Shmem,
	}
	seen := make(map[string]bool)
	for label, name := range got {
		if seen[name] {
			t.Fatalf("%s produced a duplicate name %q", label, name)
		}
		seen[name] = true
		if !strings.HasSuffix(name, "orders") {
			t.Fatalf("%s = %q does not end in the base name", label, name)
		}
	}
	if !strings.HasPrefix(names.SemP, PrefixSemP) {
		t.Fatalf("SemP prefix mismatch: %q", names.SemP)
	}
	if !strings.HasPrefix(names.Shmem, PrefixShmem) {
		t.Fatalf("Shmem prefix mismatch: %q", names.Shmem)
	}
}

func TestMangleRejectsEmptyName(t *testing.T) {
	_, err := Mangle("")
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if ae, ok := err.(*api.Error); !ok || ae.Code != api.ErrCodeInvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestMangleRejectsOversizedName(t *testing.T) {
	huge := strings.Repeat("x", 1024)
	_, err := Mangle(huge)
	if err == nil {
		t.Fatal("expected error for oversized name")
	}
}

func TestIPCKeyIsDeterministicAndDistinct(t *testing.T) {
	k1 := IPCKey("_MSG_Q_SHMEM_orders")
	k2 := IPCKey("_MSG_Q_SHMEM_orders")
	if k1 != k2 {
		t.Fatalf("IPCKey not deterministic: %d != %d", k1, k2)
	}
	k3 := IPCKey("_MSG_Q_SHMEM_invoices")
	if k1 == k3 {
		t.Fatalf("IPCKey collided for distinct names: %d", k1)
	}
	if k1 < 0 {
		t.Fatalf("IPCKey must be non-negative, got %d", k1)
	}
}
