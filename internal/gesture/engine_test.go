package gesture

import (
	"testing"
	"time"
)

type recorder struct {
	taps       []Point
	swipes     []SwipeDirection
	longPress  int
	turns      []TurnDirection
	edges      []Edge
	drags      int
	showNav    int
	haptics    []Haptic
	atBoundary func(TurnDirection) bool
	areas      []Rect
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnTap:            func(x, y float64) { r.taps = append(r.taps, Point{x, y}) },
		OnSwipe:          func(dir SwipeDirection, distance, velocity float64) { r.swipes = append(r.swipes, dir) },
		OnLongPress:      func(x, y float64) { r.longPress++ },
		OnPageTurn:       func(dir TurnDirection) { r.turns = append(r.turns, dir) },
		OnEdgeReached:    func(edge Edge) { r.edges = append(r.edges, edge) },
		OnDrag:           func(dx, dy float64) { r.drags++ },
		OnShowNavigation: func() { r.showNav++ },
		OnHaptic:         func(h Haptic) { r.haptics = append(r.haptics, h) },
		AtBoundary: func(dir TurnDirection) bool {
			if r.atBoundary == nil {
				return false
			}
			return r.atBoundary(dir)
		},
		InteractiveAreas: func() []Rect { return r.areas },
	}
}

func testBounds() Rect {
	return Rect{Max: Point{X: 400, Y: 600}}
}

func newTestEngine(r *recorder, cfg Config) *Engine {
	return New(testBounds(), r.callbacks(), cfg)
}

func press(e *Engine, id int, x, y float64, t time.Time) {
	e.Handle(TouchEvent(KindPress, []RawPoint{{ID: id, X: x, Y: y}}, t))
}

func move(e *Engine, id int, x, y float64, t time.Time) {
	e.Handle(TouchEvent(KindMove, []RawPoint{{ID: id, X: x, Y: y}}, t))
}

func release(e *Engine, t time.Time) {
	e.Handle(TouchEvent(KindRelease, nil, t))
}

func TestEngineTapCallback(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	move(e, 1, 202, 301, now.Add(75*time.Millisecond))
	release(e, now.Add(150*time.Millisecond))

	if len(r.taps) != 1 {
		t.Fatalf("expected one tap, got %d", len(r.taps))
	}
	if r.taps[0] != (Point{200, 300}) {
		t.Fatalf("tap must report start coordinates, got %v", r.taps[0])
	}
	if len(r.turns) != 0 {
		t.Fatalf("a plain tap must not turn pages")
	}
}

func TestEngineMisfireIsSilent(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	release(e, now.Add(50*time.Millisecond))

	if len(r.taps)+len(r.swipes)+r.drags+len(r.turns) != 0 {
		t.Fatalf("misfires must produce no callbacks")
	}
}

func TestEngineSwipeTurnsPage(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 300, 300, now)
	move(e, 1, 200, 300, now.Add(100*time.Millisecond))
	move(e, 1, 150, 300, now.Add(200*time.Millisecond))
	release(e, now.Add(250*time.Millisecond))

	if len(r.swipes) != 1 || r.swipes[0] != SwipeLeft {
		t.Fatalf("expected one left swipe, got %v", r.swipes)
	}
	e.Tick(now.Add(600 * time.Millisecond))
	if len(r.turns) != 1 || r.turns[0] != TurnNext {
		t.Fatalf("left swipe must turn next, got %v", r.turns)
	}
}

func TestEngineBoundaryGate(t *testing.T) {
	r := &recorder{}
	r.atBoundary = func(dir TurnDirection) bool { return dir == TurnNext }
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 300, 300, now)
	move(e, 1, 150, 300, now.Add(150*time.Millisecond))
	release(e, now.Add(200*time.Millisecond))
	e.Tick(now.Add(time.Second))

	if len(r.turns) != 0 {
		t.Fatalf("boundary-blocked turn must never invoke OnPageTurn")
	}
	if len(r.edges) != 1 || r.edges[0] != EdgeRight {
		t.Fatalf("expected one right-edge signal, got %v", r.edges)
	}
	if len(r.haptics) != 1 || r.haptics[0] != HapticLight {
		t.Fatalf("boundary bump should give light haptic feedback, got %v", r.haptics)
	}
}

func TestEngineDebounceAcrossPathways(t *testing.T) {
	cfg := testConfig()
	cfg.PageTurnMethod = MethodClick
	cfg.ClickToTurn = true
	cfg.AnimationDuration = 0
	cfg.DebounceTime = 300 * time.Millisecond

	r := &recorder{}
	e := newTestEngine(r, cfg)
	now := time.Now()

	e.Handle(MouseEvent(KindClick, 350, 300, now))
	e.Tick(now.Add(time.Millisecond))
	e.Handle(MouseEvent(KindClick, 350, 300, now.Add(100*time.Millisecond)))
	e.Tick(now.Add(200 * time.Millisecond))

	if len(r.turns) != 1 || r.turns[0] != TurnNext {
		t.Fatalf("two requests inside the debounce window must commit exactly once, got %v", r.turns)
	}
}

func TestEngineClickHemispheres(t *testing.T) {
	cfg := testConfig()
	cfg.PageTurnMethod = MethodClick
	cfg.AnimationDuration = 0
	cfg.DebounceTime = 0

	r := &recorder{}
	e := newTestEngine(r, cfg)
	now := time.Now()

	e.Handle(MouseEvent(KindClick, 100, 300, now))
	e.Tick(now.Add(time.Millisecond))
	e.Handle(MouseEvent(KindClick, 300, 300, now.Add(50*time.Millisecond)))
	e.Tick(now.Add(51 * time.Millisecond))

	if len(r.turns) != 2 || r.turns[0] != TurnPrev || r.turns[1] != TurnNext {
		t.Fatalf("left half must turn prev, right half next, got %v", r.turns)
	}
}

func TestEngineClickIgnoredInSwipeMode(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	e.Handle(MouseEvent(KindClick, 100, 300, now))
	e.Tick(now.Add(time.Second))

	if len(r.turns) != 0 {
		t.Fatalf("click pathway must be inert unless pageTurnMethod is click")
	}
}

func TestEngineLongPressSuppressesTap(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	e.Tick(now.Add(600 * time.Millisecond))
	release(e, now.Add(650*time.Millisecond))

	if r.longPress != 1 {
		t.Fatalf("expected one long press, got %d", r.longPress)
	}
	if r.showNav != 1 {
		t.Fatalf("long press must show navigation chrome once, got %d", r.showNav)
	}
	if len(r.haptics) != 1 || r.haptics[0] != HapticMedium {
		t.Fatalf("long press should give medium haptic feedback, got %v", r.haptics)
	}
	if len(r.taps) != 0 {
		t.Fatalf("release after a fired long press must not also tap")
	}
}

func TestEngineLongPressFiresOnReleaseWithoutTicks(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	release(e, now.Add(600*time.Millisecond))

	if r.longPress != 1 {
		t.Fatalf("untracked hold must still long-press at release, got %d", r.longPress)
	}
	if len(r.taps) != 0 {
		t.Fatalf("no tap after a long press")
	}
}

func TestEngineMovementCancelsLongPress(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	move(e, 1, 230, 300, now.Add(100*time.Millisecond))
	e.Tick(now.Add(700 * time.Millisecond))

	if r.longPress != 0 {
		t.Fatalf("movement past the tolerance must cancel the long press")
	}
}

func TestEngineInteractiveAreaGuard(t *testing.T) {
	r := &recorder{}
	r.areas = []Rect{{Min: Point{180, 280}, Max: Point{220, 320}}}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	release(e, now.Add(150*time.Millisecond))

	if len(r.taps) != 0 {
		t.Fatalf("gestures starting over interactive elements must not be intercepted")
	}
}

func TestEngineCancelIsSilent(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 200, 300, now)
	move(e, 1, 100, 300, now.Add(100*time.Millisecond))
	e.Handle(TouchEvent(KindCancel, nil, now.Add(150*time.Millisecond)))
	e.Tick(now.Add(time.Second))

	if len(r.taps)+len(r.swipes)+r.drags+len(r.turns)+r.longPress != 0 {
		t.Fatalf("cancellation must not emit any gesture callback")
	}
}

func TestEngineMultiTouchSuspendsSingle(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 100, 100, now)
	e.Handle(TouchEvent(KindPress, []RawPoint{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 200, Y: 100}}, now.Add(50*time.Millisecond)))
	e.Handle(TouchEvent(KindMove, []RawPoint{{ID: 1, X: 50, Y: 100}, {ID: 2, X: 250, Y: 100}}, now.Add(120*time.Millisecond)))

	// Degrade back to one contact, then lift it.
	e.Handle(TouchEvent(KindRelease, []RawPoint{{ID: 1, X: 50, Y: 100}}, now.Add(150*time.Millisecond)))
	release(e, now.Add(200*time.Millisecond))

	if len(r.taps) != 0 || len(r.swipes) != 0 || r.drags != 0 {
		t.Fatalf("the suspended single-touch session must not resume after multi-touch")
	}
}

func TestEnginePinchThroughFullSequence(t *testing.T) {
	var scales []float64
	cb := Callbacks{OnPinchZoom: func(scale, cx, cy float64) { scales = append(scales, scale) }}
	e := New(testBounds(), cb, DefaultConfig())
	now := time.Now()

	e.Handle(TouchEvent(KindPress, []RawPoint{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 200, Y: 100}}, now))
	e.Handle(TouchEvent(KindMove, []RawPoint{{ID: 1, X: 50, Y: 100}, {ID: 2, X: 250, Y: 100}}, now.Add(50*time.Millisecond)))

	if len(scales) != 1 || scales[0] != 2.0 {
		t.Fatalf("expected one pinch at scale 2.0, got %v", scales)
	}
}

func TestEngineEdgeTapZones(t *testing.T) {
	cfg := testConfig()
	cfg.EdgeThreshold = 40
	cfg.AnimationDuration = 0
	cfg.DebounceTime = 0

	r := &recorder{}
	e := newTestEngine(r, cfg)
	now := time.Now()

	press(e, 1, 10, 300, now)
	release(e, now.Add(150*time.Millisecond))
	e.Tick(now.Add(151 * time.Millisecond))

	if len(r.turns) != 1 || r.turns[0] != TurnPrev {
		t.Fatalf("tap in the leading edge zone must turn prev, got %v", r.turns)
	}
	if len(r.taps) != 0 {
		t.Fatalf("edge-zone tap must not also report OnTap")
	}
}

func TestEngineDragCallback(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())
	now := time.Now()

	press(e, 1, 100, 100, now)
	move(e, 1, 150, 145, now.Add(200*time.Millisecond))
	release(e, now.Add(300*time.Millisecond))

	if r.drags != 1 {
		t.Fatalf("ambiguous diagonal must report a drag, got %d", r.drags)
	}
}

func TestEngineUpdateSettings(t *testing.T) {
	r := &recorder{}
	e := newTestEngine(r, testConfig())

	mode := Vertical
	tap := 25.0
	e.UpdateSettings(Settings{PageTurnMode: &mode, TapThreshold: &tap})

	cfg := e.Config()
	if cfg.PageTurnMode != Vertical {
		t.Fatalf("expected vertical mode after settings update")
	}
	if cfg.TapThreshold != 25 {
		t.Fatalf("expected tap threshold 25, got %v", cfg.TapThreshold)
	}
	if cfg.SwipeThreshold != testConfig().SwipeThreshold {
		t.Fatalf("unpatched fields must keep their values")
	}
}

func TestEngineCloseIsIdempotentAndTotal(t *testing.T) {
	cfg := testConfig()
	cfg.PageTurnMethod = MethodClick
	r := &recorder{}
	e := newTestEngine(r, cfg)
	now := time.Now()

	// Start an animation, then destroy mid-flight.
	e.Handle(MouseEvent(KindClick, 300, 300, now))
	if !e.Animating() {
		t.Fatalf("expected an animation in flight")
	}
	e.Close()
	e.Close()
	e.Tick(now.Add(time.Second))

	if len(r.turns) != 0 {
		t.Fatalf("a turn cancelled by Close must not fire OnPageTurn")
	}

	press(e, 1, 200, 300, now.Add(2*time.Second))
	release(e, now.Add(2200*time.Millisecond))
	if len(r.taps) != 0 {
		t.Fatalf("events after Close must be ignored")
	}
}

func TestEngineNormalizeContainerRelative(t *testing.T) {
	bounds := Rect{Min: Point{100, 50}, Max: Point{500, 650}}
	samples := normalize(MouseEvent(KindPress, 160, 80, time.Now()), bounds)
	if len(samples) != 1 {
		t.Fatalf("expected one sample, got %d", len(samples))
	}
	s := samples[0]
	if s.X != 60 || s.Y != 30 {
		t.Fatalf("expected container-relative (60, 30), got (%v, %v)", s.X, s.Y)
	}
	if s.ClientX != 160 || s.ClientY != 80 {
		t.Fatalf("viewport coordinates must be preserved")
	}
	if s.ID != MouseID {
		t.Fatalf("mouse input must map onto the synthetic identifier")
	}
}
