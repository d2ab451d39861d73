package gesture

import "math"

// longPressMoveTolerance is the movement that cancels an armed long
// press. Fixed rather than configurable: it models finger jitter, not
// a UX preference.
const longPressMoveTolerance = 10.0

// session tracks one continuous single-contact interaction from press
// to release or cancel. Exactly one session exists at a time; it is
// mutually exclusive with multi-touch tracking.
type session struct {
	start Sample
	last  Sample
	// Largest absolute displacement seen per axis, for the
	// direction-ratio tests.
	maxDX, maxDY float64
	vx, vy       float64
	tracker      velocityTracker
	// longPressFired suppresses tap/swipe for the rest of the session.
	longPressFired bool
}

func newSession(start Sample) *session {
	s := &session{start: start, last: start}
	s.tracker.update(start.X, start.Y, start.Time)
	return s
}

// observe folds a move sample into the session state.
func (s *session) observe(smp Sample) {
	s.vx, s.vy = s.tracker.update(smp.X, smp.Y, smp.Time)
	if dx := math.Abs(smp.X - s.start.X); dx > s.maxDX {
		s.maxDX = dx
	}
	if dy := math.Abs(smp.Y - s.start.Y); dy > s.maxDY {
		s.maxDY = dy
	}
	s.last = smp
}

// moved reports whether the contact drifted past the long-press
// tolerance.
func (s *session) moved() bool {
	return s.maxDX > longPressMoveTolerance || s.maxDY > longPressMoveTolerance
}

func (s *session) deltas() (dx, dy float64) {
	return s.last.X - s.start.X, s.last.Y - s.start.Y
}

func (s *session) distance() float64 {
	dx, dy := s.deltas()
	return math.Hypot(dx, dy)
}
