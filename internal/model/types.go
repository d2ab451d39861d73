// Package model defines shared data structures.
package model

import "time"

// ReaderConfig defines reading view settings.
type ReaderConfig struct {
	Mode        string
	Method      string
	ClickToTurn bool
	Width       int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Book        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed reading session.
type SessionStats struct {
	StartedAt     time.Time
	EndedAt       time.Time
	BookPath      string
	PagesForward  int
	PagesBackward int
	DurationMs    int64
}

// GestureStats stores per-gesture counts for a session.
type GestureStats struct {
	Gesture string
	Count   int
	Blocked int
}

// GestureAggregate aggregates gesture counts across sessions.
type GestureAggregate struct {
	Gesture string
	Count   int
	Blocked int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID     int64
	EndedAt       time.Time
	BookPath      string
	PagesForward  int
	PagesBackward int
	DurationMs    int64
}
