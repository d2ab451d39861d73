// Package gesture turns raw touch, pointer, and mouse input into
// page-navigation intents for a paginated viewer: taps, swipes, long
// presses, pinch/rotate, drags, and debounced page turns.
//
// The engine is single-threaded and clock-free: events carry their own
// timestamps and the host drives timers by calling Tick from its event
// loop. Coordinates and thresholds share whatever unit the host feeds
// in (screen pixels, terminal cells); only their ratios matter.
package gesture

// Type identifies a classified gesture.
type Type uint8

const (
	// TypeNone is an input sequence that resolved to no gesture.
	TypeNone Type = iota
	// TypeTap is a short stationary touch.
	TypeTap
	// TypeSwipe is a fast directional movement.
	TypeSwipe
	// TypeLongPress is a stationary touch held past the threshold.
	TypeLongPress
	// TypePinch is a two-finger scale gesture.
	TypePinch
	// TypeRotate is a two-finger rotation gesture.
	TypeRotate
	// TypeDrag is a movement that is neither tap nor swipe.
	TypeDrag
)

// SwipeDirection is the dominant movement direction of a swipe.
type SwipeDirection uint8

const (
	SwipeNone SwipeDirection = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

// TurnDirection selects the previous or next page.
type TurnDirection uint8

const (
	TurnPrev TurnDirection = iota
	TurnNext
)

// Edge labels the content boundary that blocked a page turn.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Axis is the page-turn axis.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Method selects how page turns are requested.
type Method uint8

const (
	// MethodSwipe turns pages on qualifying swipes.
	MethodSwipe Method = iota
	// MethodClick turns pages on clicks and taps by viewport hemisphere.
	MethodClick
)

// Haptic is a feedback strength hint passed to OnHaptic.
type Haptic uint8

const (
	HapticLight Haptic = iota
	HapticMedium
)

// Point is a position in host coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle, Min inclusive, Max exclusive.
type Rect struct {
	Min, Max Point
}

// Dx returns the rectangle width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the rectangle height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Callbacks is the surface the engine calls into. Every field is
// optional; a nil callback is a no-op. AtBoundary and InteractiveAreas
// are consulted fresh on every use, never cached.
type Callbacks struct {
	OnTap            func(x, y float64)
	OnSwipe          func(dir SwipeDirection, distance, velocity float64)
	OnLongPress      func(x, y float64)
	OnPageTurn       func(dir TurnDirection)
	OnPinchZoom      func(scale, centerX, centerY float64)
	OnRotate         func(angle, centerX, centerY float64)
	OnDrag           func(deltaX, deltaY float64)
	OnEdgeReached    func(edge Edge)
	OnShowNavigation func()
	OnHaptic         func(strength Haptic)

	// AtBoundary answers whether there is no more content in the given
	// direction. Missing oracle means no boundary anywhere.
	AtBoundary func(dir TurnDirection) bool

	// InteractiveAreas returns the container-relative regions the
	// engine must not intercept (links, buttons, inputs).
	InteractiveAreas func() []Rect
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeTap:
		return "tap"
	case TypeSwipe:
		return "swipe"
	case TypeLongPress:
		return "longpress"
	case TypePinch:
		return "pinch"
	case TypeRotate:
		return "rotate"
	case TypeDrag:
		return "drag"
	default:
		return "unknown"
	}
}

func (d SwipeDirection) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	default:
		return "none"
	}
}

func (d TurnDirection) String() string {
	if d == TurnPrev {
		return "prev"
	}
	return "next"
}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	default:
		return "bottom"
	}
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

func (m Method) String() string {
	if m == MethodSwipe {
		return "swipe"
	}
	return "click"
}

// turnFor maps a swipe direction to a page-turn direction on the given
// axis. Rightward and downward motion mean "previous": the content
// visually follows the finger.
func turnFor(dir SwipeDirection, axis Axis) (TurnDirection, bool) {
	switch axis {
	case Horizontal:
		switch dir {
		case SwipeRight:
			return TurnPrev, true
		case SwipeLeft:
			return TurnNext, true
		}
	case Vertical:
		switch dir {
		case SwipeDown:
			return TurnPrev, true
		case SwipeUp:
			return TurnNext, true
		}
	}
	return TurnPrev, false
}

// edgeFor labels the boundary blocking a turn on the given axis.
func edgeFor(dir TurnDirection, axis Axis) Edge {
	if axis == Horizontal {
		if dir == TurnPrev {
			return EdgeLeft
		}
		return EdgeRight
	}
	if dir == TurnPrev {
		return EdgeTop
	}
	return EdgeBottom
}
