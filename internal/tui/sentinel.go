package tui

import "github.com/glabrego/inkbook/internal/tui/state"

// sentinelDistance is how many rows before the end of the revealed list the
// sentinel counts as near the viewport.
const sentinelDistance = 3

// sentinel stands in for the marker row after the last revealed image. It is
// the gallery's proximity source: the model reports the rendered window after
// every event and the sentinel fires when the window reaches it.
type sentinel struct {
	distance int
	notify   func()
}

func newSentinel(distance int) *sentinel {
	return &sentinel{distance: distance}
}

func (s *sentinel) NotifyNear(fn func()) {
	s.notify = fn
}

func (s *sentinel) observe(windowEnd, revealed int) bool {
	if s.notify == nil || !state.NearEnd(windowEnd, revealed, s.distance) {
		return false
	}
	s.notify()
	return true
}
