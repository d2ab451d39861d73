package gesture

import (
	"math"
	"time"
)

// Result is the outcome of classifying a single-contact session.
type Result struct {
	Type      Type
	Direction SwipeDirection
	// Distance is the dominant-axis displacement for swipes, total
	// displacement otherwise.
	Distance float64
	// Velocity is the absolute dominant-axis velocity in units/ms.
	Velocity float64
	// DeltaX and DeltaY are the signed start-to-last displacements.
	DeltaX, DeltaY float64
	// X and Y are the session start coordinates, container-relative.
	X, Y float64
}

// Classify reduces a completed sequence of same-contact samples to a
// gesture. It is the functional companion to Engine for call sites
// that already hold a full sample trace (replay tools, tests) and do
// not need animation or page-turn plumbing.
func Classify(samples []Sample, now time.Time, cfg Config) Result {
	if len(samples) == 0 {
		return Result{Type: TypeNone}
	}
	s := newSession(samples[0])
	for _, smp := range samples[1:] {
		if smp.ID != s.start.ID {
			continue
		}
		s.observe(smp)
	}
	return classifySession(s, now, cfg)
}

// classifySession decides among tap, swipe, long press, drag, and
// none. The misfire filter runs before any tap or swipe is honored:
// duration outside [MinTouchDuration, MaxTouchDuration] resolves to
// none, the primary defense against scroll bleed-through and
// accidental taps during text selection.
func classifySession(s *session, now time.Time, cfg Config) Result {
	dx, dy := s.deltas()
	res := Result{
		DeltaX: dx,
		DeltaY: dy,
		X:      s.start.X,
		Y:      s.start.Y,
	}

	duration := now.Sub(s.start.Time)
	if duration > cfg.LongPressThreshold && !s.moved() {
		res.Type = TypeLongPress
		return res
	}
	if duration < cfg.MinTouchDuration || duration > cfg.MaxTouchDuration {
		res.Type = TypeNone
		return res
	}

	distance := s.distance()
	if distance < cfg.TapThreshold {
		if distance > cfg.MaxMoveDistance {
			res.Type = TypeNone
			return res
		}
		res.Type = TypeTap
		res.Distance = distance
		return res
	}

	dir := detectSwipeDirection(s, cfg)
	if dir != SwipeNone {
		res.Type = TypeSwipe
		res.Direction = dir
		if dir == SwipeLeft || dir == SwipeRight {
			res.Distance = math.Abs(dx)
			res.Velocity = math.Abs(s.vx)
		} else {
			res.Distance = math.Abs(dy)
			res.Velocity = math.Abs(s.vy)
		}
		return res
	}

	res.Type = TypeDrag
	res.Distance = distance
	return res
}

// detectSwipeDirection runs the dominant-axis test. An axis dominates
// when its peak displacement exceeds the other axis by DirectionRatio
// and either the displacement clears SwipeThreshold or the release
// velocity clears SwipeVelocityThreshold (inertia). The signed delta
// must still clear DirectionMin to pick a direction.
func detectSwipeDirection(s *session, cfg Config) SwipeDirection {
	dx, dy := s.deltas()
	switch {
	case s.maxDX > s.maxDY*cfg.DirectionRatio:
		if s.maxDX < cfg.SwipeThreshold && math.Abs(s.vx) < cfg.SwipeVelocityThreshold {
			return SwipeNone
		}
		if dx > cfg.DirectionMin {
			return SwipeRight
		}
		if dx < -cfg.DirectionMin {
			return SwipeLeft
		}
	case s.maxDY > s.maxDX*cfg.DirectionRatio:
		if s.maxDY < cfg.SwipeThreshold && math.Abs(s.vy) < cfg.SwipeVelocityThreshold {
			return SwipeNone
		}
		if dy > cfg.DirectionMin {
			return SwipeDown
		}
		if dy < -cfg.DirectionMin {
			return SwipeUp
		}
	}
	return SwipeNone
}
