package skeleton

import "math"

// journalEntry records that ref was the neighbour valid over [start, stop).
// stop is +Inf while the entry is still current. This backs the time-indexed
// left/right neighbour lists of spec.md §3 invariant 4 with a small
// contiguous per-vertex vector (DESIGN NOTES: "Time-indexed left/right lists
// on KVs" re-architecture) instead of the original's unbounded append-only
// log shared as mutable state with the oracle.
type journalEntry struct {
	start, stop float64
	ref         *KineticVertex
}

// neighborJournal is the append-only (but small, typically length 1-4)
// history of a single left/right neighbour slot.
type neighborJournal struct {
	entries []journalEntry
}

// current returns the presently active reference, or nil if none has ever
// been set.
func (j *neighborJournal) current() *KineticVertex {
	if len(j.entries) == 0 {
		return nil
	}
	return j.entries[len(j.entries)-1].ref
}

// at returns the reference valid at time t, or nil if none covers t.
func (j *neighborJournal) at(t float64) *KineticVertex {
	for _, e := range j.entries {
		if e.start <= t && t < e.stop {
			return e.ref
		}
	}
	return nil
}

// set closes the previous entry's validity interval at now and appends a
// new entry (ref, now, +Inf).
func (j *neighborJournal) set(ref *KineticVertex, now float64) {
	if n := len(j.entries); n > 0 {
		j.entries[n-1].stop = now
	}
	j.entries = append(j.entries, journalEntry{start: now, stop: math.Inf(1), ref: ref})
}
