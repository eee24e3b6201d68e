package engine

import (
	"sync/atomic"
	"time"
)

const pollInterval = 5 * time.Millisecond

// stopWatch is a real sync/atomic flag, actively kept up to date by a
// background goroutine that wakes up every pollInterval and compares the
// current time against a deadline, rather than the teacher's
// time_control.go atomicFlag (a plain bool behind a mutex) and its lazy
// time.Now()-vs-deadline check inside Stopped(). The search checks
// Stopped() at every node; the polling goroutine means that check is a
// single atomic load, not a clock read.
type stopWatch struct {
	stopped atomic.Bool
	done    chan struct{}
}

// newStopWatch starts a goroutine that sets stopped once deadline passes,
// or immediately if deadline is already in the past. Call Close when the
// search using it is done, to stop the goroutine.
func newStopWatch(deadline time.Time) *stopWatch {
	sw := &stopWatch{done: make(chan struct{})}
	go sw.run(deadline)
	return sw
}

func (sw *stopWatch) run(deadline time.Time) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if time.Now().After(deadline) {
			sw.stopped.Store(true)
			return
		}
		select {
		case <-ticker.C:
		case <-sw.done:
			return
		}
	}
}

// Stop marks the search as stopped immediately (e.g. on a UCI "stop").
func (sw *stopWatch) Stop() { sw.stopped.Store(true) }

// Stopped reports whether the search should stop.
func (sw *stopWatch) Stopped() bool { return sw.stopped.Load() }

// Close releases the polling goroutine.
func (sw *stopWatch) Close() { close(sw.done) }

// TimeControl derives a single thinking-time budget from UCI's time
// controls and drives a stopWatch for the search to poll. Pondering is
// not supported (ponderhit/PonderHit/ponder deadline from the teacher's
// TimeControl are dropped, as is SMP; this module's search is single
// threaded and only ever searches on its own clock).
type TimeControl struct {
	WTime, WInc time.Duration
	BTime, BInc time.Duration
	MovesToGo   int
	Depth       int // maximum depth to search, inclusive; 0 means the engine's cap, maxSupportedDepth

	sideToMove Color
	watch      *stopWatch
}

const defaultMovesToGo = 30

// NewTimeControl builds a TimeControl for pos with no time limit and no
// depth limit; callers fill in WTime/BTime/... (and Depth for a fixed
// search depth) before calling Start.
func NewTimeControl(pos *Position) *TimeControl {
	return &TimeControl{
		WTime:      time.Duration(1<<63 - 1),
		BTime:      time.Duration(1<<63 - 1),
		MovesToGo:  defaultMovesToGo,
		sideToMove: pos.SideToMove(),
	}
}

// thinkingTime splits remaining time t (plus increment i) over the
// expected remaining moves, the same formula the teacher's
// time_control.go uses (favor spending more of the clock now and relying
// on the increment later), without its branch-factor adjustment (this
// module has no iterative-deepening branch-factor estimate to feed it).
func (tc *TimeControl) thinkingTime(t, i time.Duration) time.Duration {
	n := time.Duration(tc.MovesToGo)
	if n <= 0 {
		n = 1
	}
	if tt := (t + (n-1)*i) / n; tt < t {
		return tt
	}
	return t
}

// Start computes the search deadline and launches the polling stopWatch.
func (tc *TimeControl) Start() {
	var t, i time.Duration
	if tc.sideToMove == White {
		t, i = tc.WTime, tc.WInc
	} else {
		t, i = tc.BTime, tc.BInc
	}
	budget := tc.thinkingTime(t, i)
	tc.watch = newStopWatch(time.Now().Add(budget))
}

// Stop marks the search as stopped immediately.
func (tc *TimeControl) Stop() {
	if tc.watch != nil {
		tc.watch.Stop()
	}
}

// Stopped reports whether the allotted time has elapsed or Stop was
// called.
func (tc *TimeControl) Stopped() bool {
	return tc.watch != nil && tc.watch.Stopped()
}

// Close releases the polling goroutine once the search is done.
func (tc *TimeControl) Close() {
	if tc.watch != nil {
		tc.watch.Close()
	}
}
