package gesture

import "math"

// multiTouch tracks exactly two concurrent contacts and derives pinch
// scale and rotation deltas relative to the moment the second contact
// appeared. It accepts both full touch frames and per-contact pointer
// streams: observe merges whatever subset of the pair an event carries.
type multiTouch struct {
	ids           [2]int
	last          [2]Sample
	startDistance float64
	startAngle    float64
}

func newMultiTouch(a, b Sample) *multiTouch {
	return &multiTouch{
		ids:           [2]int{a.ID, b.ID},
		last:          [2]Sample{a, b},
		startDistance: math.Hypot(b.X-a.X, b.Y-a.Y),
		startAngle:    math.Atan2(b.Y-a.Y, b.X-a.X),
	}
}

// observe folds matching samples into the tracked pair.
func (m *multiTouch) observe(samples []Sample) {
	for _, smp := range samples {
		switch smp.ID {
		case m.ids[0]:
			m.last[0] = smp
		case m.ids[1]:
			m.last[1] = smp
		}
	}
}

// emit recomputes pinch and rotation and fires past-threshold
// callbacks. Both are level-triggered: re-emitted on every qualifying
// move, not just on the first crossing.
func (m *multiTouch) emit(cfg Config, cb Callbacks) {
	a, b := m.last[0], m.last[1]
	cx := (a.X + b.X) / 2
	cy := (a.Y + b.Y) / 2

	if m.startDistance > 0 {
		scale := math.Hypot(b.X-a.X, b.Y-a.Y) / m.startDistance
		if math.Abs(scale-1) > cfg.PinchZoomThreshold && cb.OnPinchZoom != nil {
			cb.OnPinchZoom(scale, cx, cy)
		}
	}

	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	deg := normalizeDegrees((angle - m.startAngle) * 180 / math.Pi)
	if math.Abs(deg) > cfg.RotationThreshold && cb.OnRotate != nil {
		cb.OnRotate(deg, cx, cy)
	}
}

// normalizeDegrees folds an angle into (-180, 180].
func normalizeDegrees(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}
