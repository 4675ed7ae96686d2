package inmemory

import (
	"testing"

	"wildcraft/internal/app/ports"
	"wildcraft/internal/domain/survival"
)

var _ ports.CommandMetrics = (*Recorder)(nil)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("move")
	r.RecordSuccess("move")
	r.RecordFailure("craft")
	r.RecordEvent(survival.EventMoved)
	r.RecordEvent(survival.EventMoved)
	r.RecordEvent(survival.EventCraftFailed)

	s := r.Snapshot()
	if s.CommandTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.CommandTotal)
	}
	if s.CommandSuccess != 2 || s.CommandFailure != 1 {
		t.Fatalf("success/failure mismatch: got=%d/%d want=2/1", s.CommandSuccess, s.CommandFailure)
	}
	if s.ByCommand["move"] != 2 || s.ByCommand["craft"] != 1 {
		t.Fatalf("by command mismatch: %+v", s.ByCommand)
	}
	if s.FailedCommand["craft"] != 1 || s.FailedCommand["move"] != 0 {
		t.Fatalf("failed by command mismatch: %+v", s.FailedCommand)
	}
	if s.ByEventType[survival.EventMoved] != 2 || s.ByEventType[survival.EventCraftFailed] != 1 {
		t.Fatalf("by event mismatch: %+v", s.ByEventType)
	}
}

func TestRecorderSnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("use")
	s := r.Snapshot()
	s.ByCommand["use"] = 99
	if got := r.Snapshot().ByCommand["use"]; got != 1 {
		t.Fatalf("snapshot leaked internal map: got=%d want=1", got)
	}
}
