package gesture

import "time"

// phase is the engine's top-level state. A session pointer is non-nil
// exactly in phaseSingle and a multiTouch pointer exactly in
// phaseMulti, so tracking single- and multi-touch simultaneously is
// unrepresentable.
type phase uint8

const (
	phaseIdle phase = iota
	phaseSingle
	phaseMulti
)

// Engine is the orchestrator applications instantiate. It owns the
// configuration, the current session, the animation lock, and the
// cooldown timestamp; no other component holds writable references to
// any of them.
//
// The engine is not safe for concurrent use; it expects the host's
// single event loop, with events per contact delivered in order.
type Engine struct {
	cfg    Config
	cb     Callbacks
	bounds Rect

	phase phase
	sess  *session
	multi *multiTouch
	anim  animator

	closed bool
}

// New constructs an engine for a container occupying bounds in
// viewport coordinates.
func New(bounds Rect, cb Callbacks, cfg Config) *Engine {
	return &Engine{cfg: cfg, cb: cb, bounds: bounds}
}

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// UpdateSettings replaces the patched fields atomically. In-flight
// sessions and animations keep running under the new thresholds.
func (e *Engine) UpdateSettings(s Settings) {
	e.cfg = s.Apply(e.cfg)
}

// SetBounds updates the container rectangle after a resize or move.
func (e *Engine) SetBounds(bounds Rect) { e.bounds = bounds }

// Handle feeds one raw event through normalization and the state
// machine. Events after Close are ignored.
func (e *Engine) Handle(ev RawEvent) {
	if e.closed {
		return
	}
	samples := normalize(ev, e.bounds)
	switch ev.Kind {
	case KindPress:
		e.handlePress(samples)
	case KindMove:
		e.handleMove(ev.Time, samples)
	case KindRelease:
		e.handleRelease(ev.Time, samples)
	case KindCancel:
		// Cancellation is silent: no gesture callback, ever.
		e.reset()
	case KindClick:
		e.handleClick(ev.Time, samples)
	}
}

// Tick drives the long-press timer and the turn animation. Hosts call
// it from their event loop whenever Busy reports true.
func (e *Engine) Tick(now time.Time) {
	if e.closed {
		return
	}
	e.checkLongPress(now)
	if done, dir := e.anim.tick(now); done {
		if e.cb.OnPageTurn != nil {
			e.cb.OnPageTurn(dir)
		}
	}
}

// Busy reports whether the engine needs Tick calls: a turn animation
// is in flight or a long press may still fire.
func (e *Engine) Busy() bool {
	if e.closed {
		return false
	}
	if e.anim.active {
		return true
	}
	return e.phase == phaseSingle && !e.sess.longPressFired && !e.sess.moved()
}

// Animating reports whether a turn animation is in flight.
func (e *Engine) Animating() bool { return e.anim.active }

// Progress returns the in-flight turn direction and eased animation
// fraction for rendering.
func (e *Engine) Progress(now time.Time) (TurnDirection, float64, bool) {
	return e.anim.progress(now)
}

// Close cancels any in-flight animation without firing its callback,
// drops the current session, and makes every later call a no-op. It is
// idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.reset()
	e.anim.cancel()
}

func (e *Engine) reset() {
	e.phase = phaseIdle
	e.sess = nil
	e.multi = nil
}

func (e *Engine) handlePress(samples []Sample) {
	if len(samples) == 0 {
		return
	}
	if len(samples) >= 2 {
		e.enterMulti(samples[0], samples[1])
		return
	}
	smp := samples[0]
	switch e.phase {
	case phaseSingle:
		if smp.ID != e.sess.start.ID {
			// A second pointer contact: suspend single-touch tracking.
			e.enterMulti(e.sess.last, smp)
		}
		// Otherwise a duplicate press for a tracked sequence (e.g.
		// pointerdown mirrored by mousedown); the first source wins.
		return
	case phaseMulti:
		return
	}
	if e.isInteractive(smp) {
		// The sequence belongs to an interactive element; stay idle so
		// the host handles it.
		return
	}
	e.phase = phaseSingle
	e.sess = newSession(smp)
}

func (e *Engine) handleMove(now time.Time, samples []Sample) {
	if e.phase == phaseSingle && len(samples) >= 2 {
		// Second contact appeared mid-frame.
		e.enterMulti(samples[0], samples[1])
	}
	if e.phase == phaseMulti {
		e.multi.observe(samples)
		e.multi.emit(e.cfg, e.cb)
		return
	}
	if e.phase != phaseSingle {
		return
	}
	for _, smp := range samples {
		if smp.ID != e.sess.start.ID {
			continue
		}
		e.sess.observe(smp)
	}
	e.checkLongPress(now)
}

func (e *Engine) handleRelease(now time.Time, samples []Sample) {
	switch e.phase {
	case phaseMulti:
		// Touch release events carry the remaining contacts. Degrading
		// below two ends multi-touch; a later press starts a fresh
		// single-touch session rather than resuming the old one.
		if len(samples) < 2 {
			e.reset()
		}
	case phaseSingle:
		for _, smp := range samples {
			if smp.ID == e.sess.start.ID {
				e.sess.observe(smp)
			}
		}
		s := e.sess
		e.reset()
		e.resolve(s, now)
	}
}

// resolve classifies a finished session and dispatches its intent.
func (e *Engine) resolve(s *session, now time.Time) {
	if s.longPressFired {
		// A fired long press and a tap/swipe on the same sequence are
		// mutually exclusive.
		return
	}
	res := classifySession(s, now, e.cfg)
	switch res.Type {
	case TypeLongPress:
		// The host never ticked during the hold; fire on release.
		e.fireLongPress(s)
	case TypeTap:
		e.resolveTap(res, now)
	case TypeSwipe:
		e.resolveSwipe(res, now)
	case TypeDrag:
		if e.cb.OnDrag != nil {
			e.cb.OnDrag(res.DeltaX, res.DeltaY)
		}
	}
}

func (e *Engine) resolveTap(res Result, now time.Time) {
	if e.cfg.PageTurnMethod == MethodClick && e.cfg.ClickToTurn {
		e.attemptTurn(e.hemisphere(res.X, res.Y), now)
		return
	}
	if dir, ok := e.edgeZone(res.X, res.Y); ok {
		e.attemptTurn(dir, now)
		return
	}
	if e.cb.OnTap != nil {
		e.cb.OnTap(res.X, res.Y)
	}
}

func (e *Engine) resolveSwipe(res Result, now time.Time) {
	if e.cb.OnSwipe != nil {
		e.cb.OnSwipe(res.Direction, res.Distance, res.Velocity)
	}
	if e.cfg.PageTurnMethod != MethodSwipe {
		return
	}
	if dir, ok := turnFor(res.Direction, e.cfg.PageTurnMode); ok {
		e.attemptTurn(dir, now)
	}
}

// handleClick is the click-to-turn pathway: the classifier is bypassed
// and the click's viewport hemisphere yields the direction. Boundary
// and debounce semantics are shared with swipe-derived turns.
func (e *Engine) handleClick(now time.Time, samples []Sample) {
	if len(samples) == 0 {
		return
	}
	if e.cfg.PageTurnMethod != MethodClick || !e.cfg.ClickToTurn {
		return
	}
	smp := samples[0]
	if e.isInteractive(smp) {
		return
	}
	e.attemptTurn(e.hemisphere(smp.X, smp.Y), now)
}

// attemptTurn consults the boundary oracle and then the animator. On
// boundary: light haptic plus the edge signal, no turn. Lock- or
// debounce-rejected requests are dropped silently.
func (e *Engine) attemptTurn(dir TurnDirection, now time.Time) {
	if e.cb.AtBoundary != nil && e.cb.AtBoundary(dir) {
		e.haptic(HapticLight)
		if e.cb.OnEdgeReached != nil {
			e.cb.OnEdgeReached(edgeFor(dir, e.cfg.PageTurnMode))
		}
		return
	}
	e.anim.commit(dir, now, e.cfg)
}

func (e *Engine) checkLongPress(now time.Time) {
	if e.phase != phaseSingle {
		return
	}
	s := e.sess
	if s.longPressFired || s.moved() {
		return
	}
	if now.Sub(s.start.Time) <= e.cfg.LongPressThreshold {
		return
	}
	e.fireLongPress(s)
}

func (e *Engine) fireLongPress(s *session) {
	s.longPressFired = true
	e.haptic(HapticMedium)
	if e.cb.OnShowNavigation != nil {
		e.cb.OnShowNavigation()
	}
	if e.cb.OnLongPress != nil {
		e.cb.OnLongPress(s.start.X, s.start.Y)
	}
}

func (e *Engine) enterMulti(a, b Sample) {
	e.sess = nil
	e.multi = newMultiTouch(a, b)
	e.phase = phaseMulti
}

// isInteractive re-queries the registered interactive areas; elements
// may have moved since the last gesture, so results are never cached
// across sessions.
func (e *Engine) isInteractive(smp Sample) bool {
	if e.cb.InteractiveAreas == nil {
		return false
	}
	p := Point{X: smp.X, Y: smp.Y}
	for _, area := range e.cb.InteractiveAreas() {
		if area.Contains(p) {
			return true
		}
	}
	return false
}

// hemisphere bisects the container along the page-turn axis.
func (e *Engine) hemisphere(x, y float64) TurnDirection {
	if e.cfg.PageTurnMode == Horizontal {
		if x < e.bounds.Dx()/2 {
			return TurnPrev
		}
		return TurnNext
	}
	if y < e.bounds.Dy()/2 {
		return TurnPrev
	}
	return TurnNext
}

// edgeZone maps a tap near the container edge on the page-turn axis to
// a turn direction when edge-tap zones are enabled.
func (e *Engine) edgeZone(x, y float64) (TurnDirection, bool) {
	t := e.cfg.EdgeThreshold
	if t <= 0 {
		return 0, false
	}
	if e.cfg.PageTurnMode == Horizontal {
		if x <= t {
			return TurnPrev, true
		}
		if x >= e.bounds.Dx()-t {
			return TurnNext, true
		}
		return 0, false
	}
	if y <= t {
		return TurnPrev, true
	}
	if y >= e.bounds.Dy()-t {
		return TurnNext, true
	}
	return 0, false
}

func (e *Engine) haptic(strength Haptic) {
	if e.cb.OnHaptic != nil {
		e.cb.OnHaptic(strength)
	}
}
