package gesture

import "time"

// Config holds every tunable threshold. Distances share the host's
// coordinate unit; velocities are units per millisecond.
type Config struct {
	// SwipeThreshold is the minimum dominant-axis movement for a swipe.
	SwipeThreshold float64
	// SwipeVelocityThreshold lets a fast flick qualify as a swipe
	// before SwipeThreshold is reached (inertia trigger).
	SwipeVelocityThreshold float64
	// LongPressThreshold is the hold duration that fires a long press.
	LongPressThreshold time.Duration
	// TapThreshold is the maximum total displacement of a tap.
	TapThreshold float64
	// DirectionRatio is how much the dominant axis must exceed the
	// cross axis for a movement to count as directional.
	DirectionRatio float64
	// DirectionMin is the minimum signed dominant-axis delta used to
	// pick prev/next; rejects low-confidence near-orthogonal motion.
	DirectionMin float64
	// MinTouchDuration and MaxTouchDuration bound the duration of an
	// honored tap or swipe (misfire filter).
	MinTouchDuration time.Duration
	MaxTouchDuration time.Duration
	// MaxMoveDistance is the largest displacement an honored tap may
	// have accumulated (misfire filter).
	MaxMoveDistance float64
	// PinchZoomThreshold is the minimum |scale-1| before pinch fires.
	PinchZoomThreshold float64
	// RotationThreshold is the minimum rotation in degrees.
	RotationThreshold float64
	// EdgeThreshold, when positive, turns taps landing within that
	// distance of the leading/trailing edge into page turns.
	EdgeThreshold float64
	// AnimationDuration is the length of the page-turn animation.
	AnimationDuration time.Duration
	// DebounceTime is the minimum gap between accepted page turns,
	// independent of the animation lock.
	DebounceTime time.Duration
	// PageTurnMethod selects swipe-to-turn or click-to-turn.
	PageTurnMethod Method
	// PageTurnMode is the page-turn axis.
	PageTurnMode Axis
	// ClickToTurn enables the click pathway when PageTurnMethod is
	// MethodClick.
	ClickToTurn bool
}

// DefaultConfig returns thresholds tuned for touchscreen pixels.
func DefaultConfig() Config {
	return Config{
		SwipeThreshold:         70,
		SwipeVelocityThreshold: 0.5,
		LongPressThreshold:     500 * time.Millisecond,
		TapThreshold:           10,
		DirectionRatio:         1.3,
		DirectionMin:           40,
		MinTouchDuration:       80 * time.Millisecond,
		MaxTouchDuration:       800 * time.Millisecond,
		MaxMoveDistance:        10,
		PinchZoomThreshold:     0.1,
		RotationThreshold:      15,
		EdgeThreshold:          0,
		AnimationDuration:      300 * time.Millisecond,
		DebounceTime:           300 * time.Millisecond,
		PageTurnMethod:         MethodSwipe,
		PageTurnMode:           Horizontal,
		ClickToTurn:            true,
	}
}

// Settings is a partial Config; nil fields keep their current value.
type Settings struct {
	SwipeThreshold         *float64
	SwipeVelocityThreshold *float64
	LongPressThreshold     *time.Duration
	TapThreshold           *float64
	DirectionRatio         *float64
	DirectionMin           *float64
	MinTouchDuration       *time.Duration
	MaxTouchDuration       *time.Duration
	MaxMoveDistance        *float64
	PinchZoomThreshold     *float64
	RotationThreshold      *float64
	EdgeThreshold          *float64
	AnimationDuration      *time.Duration
	DebounceTime           *time.Duration
	PageTurnMethod         *Method
	PageTurnMode           *Axis
	ClickToTurn            *bool
}

// Apply returns cfg with every non-nil settings field replaced.
func (s Settings) Apply(cfg Config) Config {
	applyFloat(&cfg.SwipeThreshold, s.SwipeThreshold)
	applyFloat(&cfg.SwipeVelocityThreshold, s.SwipeVelocityThreshold)
	applyDuration(&cfg.LongPressThreshold, s.LongPressThreshold)
	applyFloat(&cfg.TapThreshold, s.TapThreshold)
	applyFloat(&cfg.DirectionRatio, s.DirectionRatio)
	applyFloat(&cfg.DirectionMin, s.DirectionMin)
	applyDuration(&cfg.MinTouchDuration, s.MinTouchDuration)
	applyDuration(&cfg.MaxTouchDuration, s.MaxTouchDuration)
	applyFloat(&cfg.MaxMoveDistance, s.MaxMoveDistance)
	applyFloat(&cfg.PinchZoomThreshold, s.PinchZoomThreshold)
	applyFloat(&cfg.RotationThreshold, s.RotationThreshold)
	applyFloat(&cfg.EdgeThreshold, s.EdgeThreshold)
	applyDuration(&cfg.AnimationDuration, s.AnimationDuration)
	applyDuration(&cfg.DebounceTime, s.DebounceTime)
	if s.PageTurnMethod != nil {
		cfg.PageTurnMethod = *s.PageTurnMethod
	}
	if s.PageTurnMode != nil {
		cfg.PageTurnMode = *s.PageTurnMode
	}
	if s.ClickToTurn != nil {
		cfg.ClickToTurn = *s.ClickToTurn
	}
	return cfg
}

func applyFloat(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}

func applyDuration(target *time.Duration, value *time.Duration) {
	if value != nil {
		*target = *value
	}
}
