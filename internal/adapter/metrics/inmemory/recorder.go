package inmemory

import "sync"

type Snapshot struct {
	CommandTotal   uint64            `json:"command_total"`
	CommandSuccess uint64            `json:"command_success"`
	CommandFailure uint64            `json:"command_failure"`
	ByCommand      map[string]uint64 `json:"by_command"`
	FailedCommand  map[string]uint64 `json:"failed_by_command"`
	ByEventType    map[string]uint64 `json:"by_event_type"`
}

// Recorder counts commands and journaled events for the metrics endpoint.
type Recorder struct {
	mu       sync.Mutex
	success  uint64
	failure  uint64
	byCmd    map[string]uint64
	failedBy map[string]uint64
	byEvent  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCmd:    map[string]uint64{},
		failedBy: map[string]uint64{},
		byEvent:  map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byCmd[command]++
}

func (r *Recorder) RecordFailure(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byCmd[command]++
	r.failedBy[command]++
}

func (r *Recorder) RecordEvent(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byEvent[eventType]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		CommandSuccess: r.success,
		CommandFailure: r.failure,
		CommandTotal:   r.success + r.failure,
		ByCommand:      copyCounts(r.byCmd),
		FailedCommand:  copyCounts(r.failedBy),
		ByEventType:    copyCounts(r.byEvent),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
