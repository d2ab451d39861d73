package reader

import (
	"time"

	"github.com/ttbye/pageflick/internal/gesture"
)

// TerminalConfig returns engine defaults retuned for terminal cells.
// The stock thresholds assume pixel coordinates; a cell is roughly an
// order of magnitude coarser, so distances shrink accordingly while
// durations stay the same.
func TerminalConfig() gesture.Config {
	cfg := gesture.DefaultConfig()
	cfg.SwipeThreshold = 8
	cfg.SwipeVelocityThreshold = 0.05
	cfg.DirectionMin = 5
	cfg.TapThreshold = 2
	cfg.MaxMoveDistance = 2
	cfg.EdgeThreshold = 0
	cfg.AnimationDuration = 150 * time.Millisecond
	return cfg
}
