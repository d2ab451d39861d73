package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ttbye/pageflick/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pageflick.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func TestPositionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	page, err := s.GetPosition(ctx, "/books/unknown.txt")
	if err != nil {
		t.Fatalf("get position: %v", err)
	}
	if page != 0 {
		t.Fatalf("unknown book must start at page 0, got %d", page)
	}

	if err := s.UpsertPosition(ctx, "/books/moby.txt", 12, 300); err != nil {
		t.Fatalf("upsert position: %v", err)
	}
	if err := s.UpsertPosition(ctx, "/books/moby.txt", 47, 300); err != nil {
		t.Fatalf("upsert position again: %v", err)
	}

	page, err = s.GetPosition(ctx, "/books/moby.txt")
	if err != nil {
		t.Fatalf("get position: %v", err)
	}
	if page != 47 {
		t.Fatalf("expected page 47 after update, got %d", page)
	}
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		stats := model.SessionStats{
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			EndedAt:       base.Add(time.Duration(i)*time.Hour + 20*time.Minute),
			BookPath:      "/books/moby.txt",
			PagesForward:  10 + i,
			PagesBackward: i,
			DurationMs:    20 * 60 * 1000,
		}
		gestures := []model.GestureStats{
			{Gesture: "swipe", Count: 10 + i, Blocked: 1},
			{Gesture: "tap", Count: 2},
		}
		if _, err := s.InsertSession(ctx, stats, gestures); err != nil {
			t.Fatalf("insert session %d: %v", i, err)
		}
	}

	sessions, err := s.ListSessions(ctx, model.StatsConfig{Book: "/books/moby.txt"})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].PagesForward != 10 || sessions[2].PagesForward != 12 {
		t.Fatalf("sessions must be ordered by ended_at ascending")
	}

	since := base.Add(90 * time.Minute)
	filtered, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list filtered sessions: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sessions since cutoff, got %d", len(filtered))
	}

	other, err := s.ListSessions(ctx, model.StatsConfig{Book: "/books/other.txt"})
	if err != nil {
		t.Fatalf("list other book: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no sessions for another book, got %d", len(other))
	}
}

func TestListGestureAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 2; i++ {
		stats := model.SessionStats{
			StartedAt: base,
			EndedAt:   base.Add(10 * time.Minute),
			BookPath:  "/books/moby.txt",
		}
		id, err := s.InsertSession(ctx, stats, []model.GestureStats{
			{Gesture: "swipe", Count: 5, Blocked: 1},
			{Gesture: "long_press", Count: 1},
		})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	aggs, err := s.ListGestureAggregates(ctx, ids)
	if err != nil {
		t.Fatalf("list gesture aggregates: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("expected 2 gesture rows, got %d", len(aggs))
	}
	if aggs[0].Gesture != "swipe" || aggs[0].Count != 10 || aggs[0].Blocked != 2 {
		t.Fatalf("unexpected top aggregate %+v", aggs[0])
	}

	empty, err := s.ListGestureAggregates(ctx, nil)
	if err != nil {
		t.Fatalf("empty id list: %v", err)
	}
	if empty != nil {
		t.Fatalf("no ids must yield no aggregates")
	}
}
