// Package engine is the event loop (component D): a priority queue of
// collapse events ordered by (time, triangle type descending, triangle id),
// an Immediate FIFO for same-instant cascades, and the handlers that mutate
// the kinetic data structure and re-invoke the oracle on affected triangles
// (spec.md §4.4-§4.7).
package engine

import (
	"container/heap"

	"github.com/strskel/strskel/skeleton"
)

// eventHeap is a container/heap priority queue over *skeleton.Event,
// ordered by (time ascending, triangle type descending, triangle info
// ascending) for deterministic tie-breaking (spec.md §4.4).
type eventHeap struct {
	events []*skeleton.Event
}

func (h *eventHeap) Len() int { return len(h.events) }

func (h *eventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	ti, tj := ei.Triangle.Type(), ej.Triangle.Type()
	if ti != tj {
		return ti > tj
	}
	return ei.Triangle.Info < ej.Triangle.Info
}

func (h *eventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *eventHeap) Push(x any) { h.events = append(h.events, x.(*skeleton.Event)) }

func (h *eventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

// EventQueue pairs the heap-ordered queue Q with the Immediate FIFO (spec.md
// §4.4): cascading events triggered by the event currently being handled are
// drained from Immediate before the clock is allowed to advance again.
type EventQueue struct {
	q         eventHeap
	immediate []*skeleton.Event
}

func NewEventQueue() *EventQueue {
	q := &EventQueue{}
	heap.Init(&q.q)
	return q
}

// Schedule adds an event to the time-ordered queue.
func (q *EventQueue) Schedule(ev *skeleton.Event) {
	heap.Push(&q.q, ev)
}

// ScheduleImmediate appends an event to the FIFO that must be drained
// before the clock advances again.
func (q *EventQueue) ScheduleImmediate(ev *skeleton.Event) {
	q.immediate = append(q.immediate, ev)
}

// Empty reports whether both the time-ordered queue and the Immediate FIFO
// are empty.
func (q *EventQueue) Empty() bool {
	return q.q.Len() == 0 && len(q.immediate) == 0
}

// Pop returns the next event to process and whether the simulated clock
// should advance to its time: Immediate events never advance the clock,
// time-ordered events always do.
func (q *EventQueue) Pop() (ev *skeleton.Event, advancesClock bool, ok bool) {
	if len(q.immediate) > 0 {
		ev = q.immediate[0]
		q.immediate = q.immediate[1:]
		return ev, false, true
	}
	if q.q.Len() == 0 {
		return nil, false, false
	}
	return heap.Pop(&q.q).(*skeleton.Event), true, true
}
