// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ttbye/pageflick/internal/gesture"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Reader   ReaderConfig   `toml:"reader"`
	Gestures GesturesConfig `toml:"gestures"`
}

// ReaderConfig maps reading-view settings.
type ReaderConfig struct {
	Width *int  `toml:"width"`
	Mouse *bool `toml:"mouse"`
}

// GesturesConfig maps gesture tuning. Durations are milliseconds,
// distances are screen units, velocities are units per millisecond.
type GesturesConfig struct {
	SwipeThreshold         *float64 `toml:"swipe-threshold"`
	SwipeVelocityThreshold *float64 `toml:"swipe-velocity-threshold"`
	DirectionRatio         *float64 `toml:"direction-ratio"`
	DirectionMin           *float64 `toml:"direction-min"`
	TapThreshold           *float64 `toml:"tap-threshold"`
	LongPressMs            *int     `toml:"long-press-ms"`
	MinTouchMs             *int     `toml:"min-touch-ms"`
	MaxTouchMs             *int     `toml:"max-touch-ms"`
	MaxMoveDistance        *float64 `toml:"max-move-distance"`
	PinchZoomThreshold     *float64 `toml:"pinch-zoom-threshold"`
	RotationThreshold      *float64 `toml:"rotation-threshold"`
	EdgeThreshold          *float64 `toml:"edge-threshold"`
	AnimationMs            *int     `toml:"animation-ms"`
	DebounceMs             *int     `toml:"debounce-ms"`
	Method                 *string  `toml:"method"`
	Mode                   *string  `toml:"mode"`
	ClickToTurn            *bool    `toml:"click-to-turn"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Settings converts the file section into an engine settings patch.
// Unknown method or mode strings are rejected rather than ignored.
func (g GesturesConfig) Settings() (gesture.Settings, error) {
	s := gesture.Settings{
		SwipeThreshold:         g.SwipeThreshold,
		SwipeVelocityThreshold: g.SwipeVelocityThreshold,
		DirectionRatio:         g.DirectionRatio,
		DirectionMin:           g.DirectionMin,
		TapThreshold:           g.TapThreshold,
		MaxMoveDistance:        g.MaxMoveDistance,
		PinchZoomThreshold:     g.PinchZoomThreshold,
		RotationThreshold:      g.RotationThreshold,
		EdgeThreshold:          g.EdgeThreshold,
		ClickToTurn:            g.ClickToTurn,
	}
	s.LongPressThreshold = msDuration(g.LongPressMs)
	s.MinTouchDuration = msDuration(g.MinTouchMs)
	s.MaxTouchDuration = msDuration(g.MaxTouchMs)
	s.AnimationDuration = msDuration(g.AnimationMs)
	s.DebounceTime = msDuration(g.DebounceMs)

	if g.Method != nil {
		switch *g.Method {
		case "swipe":
			m := gesture.MethodSwipe
			s.PageTurnMethod = &m
		case "click":
			m := gesture.MethodClick
			s.PageTurnMethod = &m
		default:
			return gesture.Settings{}, fmt.Errorf("unknown page turn method %q", *g.Method)
		}
	}
	if g.Mode != nil {
		switch *g.Mode {
		case "horizontal":
			m := gesture.Horizontal
			s.PageTurnMode = &m
		case "vertical":
			m := gesture.Vertical
			s.PageTurnMode = &m
		default:
			return gesture.Settings{}, fmt.Errorf("unknown page turn mode %q", *g.Mode)
		}
	}
	return s, nil
}

func msDuration(ms *int) *time.Duration {
	if ms == nil {
		return nil
	}
	d := time.Duration(*ms) * time.Millisecond
	return &d
}
