package lumen

import (
	"slices"
	"time"
)

// pendingAction is a callback due at a point on a timeline.
type pendingAction struct {
	due time.Duration
	seq uint64
	fn  func()
}

// timeline runs delayed callbacks on the frame loop. It has no goroutines
// and no wall clock: time only moves when advance is called, so delays are
// deterministic under test and never race with the frame.
type timeline struct {
	now     time.Duration
	seq     uint64
	pending []pendingAction
	due     []pendingAction
}

// after schedules fn to run once the timeline has advanced by at least d.
// Actions sharing a deadline run in scheduling order.
func (tl *timeline) after(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	tl.seq++
	tl.pending = append(tl.pending, pendingAction{due: tl.now + d, seq: tl.seq, fn: fn})
}

// advance moves the clock forward by dt and runs every action that came due,
// earliest first. Actions scheduled by a running action are considered on the
// next advance.
func (tl *timeline) advance(dt time.Duration) {
	tl.now += dt

	tl.due = tl.due[:0]
	kept := tl.pending[:0]
	for _, a := range tl.pending {
		if a.due <= tl.now {
			tl.due = append(tl.due, a)
		} else {
			kept = append(kept, a)
		}
	}
	// Clear the tail so dropped closures can be collected.
	clear(tl.pending[len(kept):])
	tl.pending = kept

	if len(tl.due) == 0 {
		return
	}
	slices.SortFunc(tl.due, func(a, b pendingAction) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		if a.seq < b.seq {
			return -1
		}
		return 1
	})
	for _, a := range tl.due {
		a.fn()
	}
	clear(tl.due)
}

// len returns the number of actions still waiting.
func (tl *timeline) len() int {
	return len(tl.pending)
}
