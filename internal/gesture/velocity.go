package gesture

import "time"

// velocityTracker estimates instantaneous velocity from consecutive
// samples of one session. The estimate is a plain first difference,
// deliberately unsmoothed: the inertia decision only needs the most
// recent interval, and smoothing would add latency.
type velocityTracker struct {
	hasLast      bool
	lastX, lastY float64
	lastT        time.Time
	vx, vy       float64
}

// update records a sample and returns the current velocity in
// units per millisecond. A zero time delta keeps the previous
// estimate rather than dividing by zero.
func (v *velocityTracker) update(x, y float64, t time.Time) (vx, vy float64) {
	if !v.hasLast {
		v.hasLast = true
		v.lastX, v.lastY, v.lastT = x, y, t
		return v.vx, v.vy
	}
	dt := float64(t.Sub(v.lastT).Microseconds()) / 1000.0
	if dt > 0 {
		v.vx = (x - v.lastX) / dt
		v.vy = (y - v.lastY) / dt
	}
	v.lastX, v.lastY, v.lastT = x, y, t
	return v.vx, v.vy
}
