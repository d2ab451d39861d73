package gesture

import (
	"testing"
	"time"
)

func TestAnimatorLockRejectsSecondCommit(t *testing.T) {
	cfg := DefaultConfig()
	var a animator
	now := time.Now()
	if !a.commit(TurnNext, now, cfg) {
		t.Fatalf("first commit must be accepted")
	}
	if a.commit(TurnPrev, now.Add(50*time.Millisecond), cfg) {
		t.Fatalf("commit while animation is in flight must be dropped")
	}
}

func TestAnimatorDebounceIndependentOfLock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnimationDuration = 0
	cfg.DebounceTime = 300 * time.Millisecond

	var a animator
	now := time.Now()
	if !a.commit(TurnNext, now, cfg) {
		t.Fatalf("first commit must be accepted")
	}
	if done, _ := a.tick(now.Add(time.Millisecond)); !done {
		t.Fatalf("zero-duration animation must complete on first tick")
	}
	if a.commit(TurnNext, now.Add(100*time.Millisecond), cfg) {
		t.Fatalf("commit inside the debounce window must be dropped even with the lock free")
	}
	if !a.commit(TurnNext, now.Add(400*time.Millisecond), cfg) {
		t.Fatalf("commit after the debounce window must be accepted")
	}
}

func TestAnimatorTickCompletes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnimationDuration = 300 * time.Millisecond

	var a animator
	now := time.Now()
	a.commit(TurnPrev, now, cfg)

	if done, _ := a.tick(now.Add(150 * time.Millisecond)); done {
		t.Fatalf("animation must not complete mid-flight")
	}
	done, dir := a.tick(now.Add(300 * time.Millisecond))
	if !done || dir != TurnPrev {
		t.Fatalf("expected completion with prev, got done=%v dir=%v", done, dir)
	}
	if a.active {
		t.Fatalf("lock must be released on completion")
	}
	if done, _ := a.tick(now.Add(400 * time.Millisecond)); done {
		t.Fatalf("completed animation must not complete twice")
	}
}

func TestAnimatorCancelReleasesWithoutCompletion(t *testing.T) {
	cfg := DefaultConfig()
	var a animator
	now := time.Now()
	a.commit(TurnNext, now, cfg)
	a.cancel()
	if a.active {
		t.Fatalf("cancel must release the lock")
	}
	if done, _ := a.tick(now.Add(time.Second)); done {
		t.Fatalf("cancelled animation must never report completion")
	}
}

func TestAnimatorProgressEased(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnimationDuration = 100 * time.Millisecond

	var a animator
	now := time.Now()
	a.commit(TurnNext, now, cfg)

	_, atStart, ok := a.progress(now)
	if !ok || atStart != 0 {
		t.Fatalf("progress at start must be 0, got %v ok=%v", atStart, ok)
	}
	_, mid, _ := a.progress(now.Add(50 * time.Millisecond))
	if mid <= 0 || mid >= 1 {
		t.Fatalf("mid progress must be in (0,1), got %v", mid)
	}
	_, end, _ := a.progress(now.Add(100 * time.Millisecond))
	if end != 1 {
		t.Fatalf("progress at end must be 1, got %v", end)
	}
	a.tick(now.Add(200 * time.Millisecond))
	if _, _, active := a.progress(now.Add(300 * time.Millisecond)); active {
		t.Fatalf("completed animation must report no progress")
	}
}

func TestEaseInOutCubicMonotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 10; i++ {
		v := easeInOutCubic(float64(i) / 10)
		if v < prev {
			t.Fatalf("easing must be monotonic, %v < %v at step %d", v, prev, i)
		}
		prev = v
	}
	if easeInOutCubic(0) != 0 || easeInOutCubic(1) != 1 {
		t.Fatalf("easing endpoints must be 0 and 1")
	}
}
