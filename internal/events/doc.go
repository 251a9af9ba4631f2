// Package events delivers notifications from any goroutine to a single
// externally registered callback.
//
// A Bridge owns an unbounded FIFO queue and at most one worker goroutine. The
// worker is started by the first Register and invokes the callback
// synchronously, one event at a time, in the order Publish enqueued them.
// Publish never waits for the callback. Events published before any Register
// are dropped, not buffered.
//
// A callback that panics is recovered and logged; delivery continues with the
// next event.
//
// Hub groups the two bridges the mobile boundary uses: free-text messages and
// structured log records. They share nothing, so a burst on one does not delay
// the other.
package events
