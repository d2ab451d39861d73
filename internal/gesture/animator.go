package gesture

import "time"

// animator owns the single page-turn animation lock and the debounce
// cooldown. At most one turn is in flight at any time; a request
// failing either guard is dropped silently.
type animator struct {
	active    bool
	dir       TurnDirection
	start     time.Time
	duration  time.Duration
	committed bool
	// lastCommit guards the debounce window independently of the
	// animation lock, so click and swipe pathways racing for the same
	// turn cannot double-fire.
	lastCommit time.Time
}

// commit tries to start a turn animation. It reports whether the
// request was accepted.
func (a *animator) commit(dir TurnDirection, now time.Time, cfg Config) bool {
	if a.active {
		return false
	}
	if a.committed && now.Sub(a.lastCommit) < cfg.DebounceTime {
		return false
	}
	a.active = true
	a.dir = dir
	a.start = now
	a.duration = cfg.AnimationDuration
	a.committed = true
	a.lastCommit = now
	return true
}

// tick advances the animation. When the duration has elapsed it
// releases the lock, refreshes the cooldown, and reports completion so
// the engine can fire the page-turn callback.
func (a *animator) tick(now time.Time) (done bool, dir TurnDirection) {
	if !a.active {
		return false, 0
	}
	if now.Sub(a.start) < a.duration {
		return false, 0
	}
	a.active = false
	a.lastCommit = now
	return true, a.dir
}

// cancel releases the lock without completing; no callback fires.
func (a *animator) cancel() {
	a.active = false
}

// progress returns the eased animation fraction in [0, 1].
func (a *animator) progress(now time.Time) (TurnDirection, float64, bool) {
	if !a.active {
		return 0, 0, false
	}
	if a.duration <= 0 {
		return a.dir, 1, true
	}
	frac := float64(now.Sub(a.start)) / float64(a.duration)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return a.dir, easeInOutCubic(frac), true
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
