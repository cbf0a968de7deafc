package metrics

import (
	"testing"
	"time"
)

func TestRegistryLifecycle(t *testing.T) {
	defer resetRegistry()

	if IsEnabled() {
		t.Fatal("expected metrics disabled before InitRegistry")
	}
	if Registry() != nil {
		t.Fatal("expected nil registry before InitRegistry")
	}
	if Handler() != nil {
		t.Fatal("expected nil handler before InitRegistry")
	}

	InitRegistry()

	if !IsEnabled() {
		t.Fatal("expected metrics enabled after InitRegistry")
	}
	if Registry() == nil {
		t.Fatal("expected registry after InitRegistry")
	}
	if Handler() == nil {
		t.Fatal("expected handler after InitRegistry")
	}

	// Second init is a no-op
	reg := Registry()
	InitRegistry()
	if Registry() != reg {
		t.Fatal("expected InitRegistry to be idempotent")
	}
}

func TestNilHelpersAreNoOps(t *testing.T) {
	// All helpers must tolerate nil metrics (metrics disabled)
	ObserveRequest(nil, OutcomeHit)
	ObserveLoad(nil, 1024, time.Millisecond, StatusOK)
	SetQueueDepth(nil, "critical", 1)
	SetInFlight(nil, 1)

	RecordInsert(nil, 1024)
	RecordEviction(nil, ReasonTTL, 1)
	SetSize(nil, 1024)
	SetEntries(nil, 1)
}
