package session

import (
	"container/heap"
	"time"

	"wildcraft/internal/domain/world"
)

type respawnTask struct {
	due      time.Time
	seq      uint64
	epoch    uint64
	section  int
	at       world.Point
	instance world.ResourceInstance
}

// respawnHeap orders tasks by due time, then by scheduling order.
type respawnHeap []*respawnTask

func (h respawnHeap) Len() int { return len(h) }

func (h respawnHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h respawnHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *respawnHeap) Push(x any) {
	*h = append(*h, x.(*respawnTask))
}

func (h *respawnHeap) Pop() any {
	old := *h
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return task
}

// RespawnQueue is the delayed-task queue that returns collected resources to
// their tiles. Tasks carry the epoch they were scheduled in; Reset bumps the
// epoch so nothing scheduled against a discarded world can fire.
type RespawnQueue struct {
	tasks respawnHeap
	seq   uint64
	epoch uint64
}

func (q *RespawnQueue) Schedule(due time.Time, section int, at world.Point, inst world.ResourceInstance) {
	q.seq++
	heap.Push(&q.tasks, &respawnTask{
		due:      due,
		seq:      q.seq,
		epoch:    q.epoch,
		section:  section,
		at:       at,
		instance: inst,
	})
}

// Due pops every task whose time has come, earliest first.
func (q *RespawnQueue) Due(now time.Time) []respawnTask {
	var out []respawnTask
	for len(q.tasks) > 0 {
		next := q.tasks[0]
		if now.Before(next.due) {
			break
		}
		heap.Pop(&q.tasks)
		if next.epoch != q.epoch {
			continue
		}
		out = append(out, *next)
	}
	return out
}

// Next reports when the earliest pending task is due.
func (q *RespawnQueue) Next() (time.Time, bool) {
	if len(q.tasks) == 0 {
		return time.Time{}, false
	}
	return q.tasks[0].due, true
}

func (q *RespawnQueue) Len() int { return len(q.tasks) }

func (q *RespawnQueue) Epoch() uint64 { return q.epoch }

// Reset drops every pending task and starts a new epoch.
func (q *RespawnQueue) Reset() {
	for i := range q.tasks {
		q.tasks[i] = nil
	}
	q.tasks = q.tasks[:0]
	q.epoch++
}
