package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ttbye/pageflick/internal/model"
	"github.com/ttbye/pageflick/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pageflick.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		end := start.Add(30 * time.Minute)
		stats := model.SessionStats{
			StartedAt:     start,
			EndedAt:       end,
			BookPath:      "/books/moby.txt",
			PagesForward:  20,
			PagesBackward: 2,
			DurationMs:    end.Sub(start).Milliseconds(),
		}
		gestureStats := []model.GestureStats{
			{Gesture: "swipe", Count: 18, Blocked: 2},
			{Gesture: "tap", Count: 4},
		}
		id, err := st.InsertSession(ctx, stats, gestureStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Book:        "/books/moby.txt",
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.GestureAggsAll) == 0 {
		t.Fatalf("expected gesture aggregates for all sessions")
	}
	if len(report.GestureAggsWindow) == 0 {
		t.Fatalf("expected gesture aggregates for window sessions")
	}
}
