package gesture

import (
	"math"
	"testing"
	"time"
)

func touchSample(id int, x, y float64) Sample {
	return Sample{ID: id, X: x, Y: y, Time: time.Now()}
}

func TestPinchScaleEmitted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PinchZoomThreshold = 0.1

	var gotScale, gotCX, gotCY float64
	calls := 0
	cb := Callbacks{OnPinchZoom: func(scale, cx, cy float64) {
		gotScale, gotCX, gotCY = scale, cx, cy
		calls++
	}}

	m := newMultiTouch(touchSample(1, 100, 100), touchSample(2, 200, 100))
	m.observe([]Sample{touchSample(1, 50, 100), touchSample(2, 250, 100)})
	m.emit(cfg, cb)

	if calls != 1 {
		t.Fatalf("expected one pinch callback, got %d", calls)
	}
	if gotScale != 2.0 {
		t.Fatalf("expected scale 2.0, got %v", gotScale)
	}
	if gotCX != 150 || gotCY != 100 {
		t.Fatalf("expected center (150, 100), got (%v, %v)", gotCX, gotCY)
	}
}

func TestPinchBelowThresholdSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PinchZoomThreshold = 0.1

	calls := 0
	cb := Callbacks{OnPinchZoom: func(scale, cx, cy float64) { calls++ }}

	m := newMultiTouch(touchSample(1, 100, 100), touchSample(2, 200, 100))
	m.observe([]Sample{touchSample(1, 98, 100), touchSample(2, 202, 100)})
	m.emit(cfg, cb)

	if calls != 0 {
		t.Fatalf("scale within threshold must not emit, got %d calls", calls)
	}
}

func TestPinchLevelTriggered(t *testing.T) {
	cfg := DefaultConfig()
	calls := 0
	cb := Callbacks{OnPinchZoom: func(scale, cx, cy float64) { calls++ }}

	m := newMultiTouch(touchSample(1, 100, 100), touchSample(2, 200, 100))
	m.observe([]Sample{touchSample(1, 60, 100), touchSample(2, 240, 100)})
	m.emit(cfg, cb)
	m.observe([]Sample{touchSample(1, 50, 100), touchSample(2, 250, 100)})
	m.emit(cfg, cb)

	if calls != 2 {
		t.Fatalf("pinch is level-triggered, expected 2 calls, got %d", calls)
	}
}

func TestRotationEmitted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationThreshold = 15

	var gotAngle float64
	calls := 0
	cb := Callbacks{OnRotate: func(angle, cx, cy float64) {
		gotAngle = angle
		calls++
	}}

	// Horizontal pair rotated to vertical: 90 degrees.
	m := newMultiTouch(touchSample(1, 100, 100), touchSample(2, 200, 100))
	m.observe([]Sample{touchSample(1, 150, 50), touchSample(2, 150, 150)})
	m.emit(cfg, cb)

	if calls != 1 {
		t.Fatalf("expected one rotate callback, got %d", calls)
	}
	if math.Abs(gotAngle-90) > 1e-9 {
		t.Fatalf("expected 90 degrees, got %v", gotAngle)
	}
}

func TestRotationBelowThresholdSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotationThreshold = 15

	calls := 0
	cb := Callbacks{OnRotate: func(angle, cx, cy float64) { calls++ }}

	m := newMultiTouch(touchSample(1, 0, 0), touchSample(2, 100, 0))
	m.observe([]Sample{touchSample(1, 0, 0), touchSample(2, 100, 10)})
	m.emit(cfg, cb)

	if calls != 0 {
		t.Fatalf("rotation within threshold must not emit, got %d calls", calls)
	}
}

func TestNormalizeDegreesWraps(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{270, -90},
		{-270, 90},
		{540, 180},
	}
	for _, tc := range cases {
		if got := normalizeDegrees(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("normalizeDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
