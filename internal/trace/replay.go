package trace

import (
	"fmt"
	"io"
	"time"

	"github.com/ttbye/pageflick/internal/gesture"
)

// Summary counts the gestures recognized during a replay.
type Summary struct {
	Taps        int
	Swipes      int
	LongPresses int
	Pinches     int
	Rotations   int
	Drags       int
	Turns       []gesture.TurnDirection
}

// Replay runs a trace through a fresh engine and reports what it
// recognized. The boundary oracle never blocks, so Turns reflects
// every committed page turn.
func Replay(events []gesture.RawEvent, bounds gesture.Rect, cfg gesture.Config) Summary {
	var sum Summary
	cb := gesture.Callbacks{
		OnTap:       func(x, y float64) { sum.Taps++ },
		OnSwipe:     func(dir gesture.SwipeDirection, distance, velocity float64) { sum.Swipes++ },
		OnLongPress: func(x, y float64) { sum.LongPresses++ },
		OnPinchZoom: func(scale, cx, cy float64) { sum.Pinches++ },
		OnRotate:    func(angle, cx, cy float64) { sum.Rotations++ },
		OnDrag:      func(dx, dy float64) { sum.Drags++ },
		OnPageTurn: func(dir gesture.TurnDirection) {
			sum.Turns = append(sum.Turns, dir)
		},
	}
	eng := gesture.New(bounds, cb, cfg)
	defer eng.Close()

	var last time.Time
	for _, ev := range events {
		// Replays tick at event granularity; long presses between
		// events fire here the way host ticks would fire them live.
		eng.Tick(ev.Time)
		eng.Handle(ev)
		last = ev.Time
	}
	// Drain any pending long press and turn animation.
	drain := cfg.LongPressThreshold + cfg.AnimationDuration + time.Millisecond
	eng.Tick(last.Add(drain))
	return sum
}

// Render writes a replay summary as text.
func (s Summary) Render(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("taps:         %d", s.Taps),
		fmt.Sprintf("swipes:       %d", s.Swipes),
		fmt.Sprintf("long presses: %d", s.LongPresses),
		fmt.Sprintf("pinches:      %d", s.Pinches),
		fmt.Sprintf("rotations:    %d", s.Rotations),
		fmt.Sprintf("drags:        %d", s.Drags),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(s.Turns) > 0 {
		if _, err := fmt.Fprint(w, "page turns:  "); err != nil {
			return err
		}
		for i, dir := range s.Turns {
			sep := " "
			if i == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s%s", sep, dir); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
