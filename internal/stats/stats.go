// Package stats contains reading statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/ttbye/pageflick/internal/model"
)

// SessionMetrics computes pages per minute, net pages, and forward
// ratio for a session. Backward turns count toward activity but reduce
// net progress.
func SessionMetrics(forward, backward int, durationMs int64) (ppm float64, net int, forwardRatio float64) {
	net = forward - backward
	if durationMs <= 0 {
		return 0, net, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, net, 0
	}
	ppm = float64(forward) / minutes
	total := float64(forward + backward)
	if total > 0 {
		forwardRatio = float64(forward) / total
	}
	return ppm, net, forwardRatio
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// RenderSummary prints a summary table for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalPPM, totalRatio float64
	var totalPages, totalMs int64
	bestPPM := 0.0
	for _, s := range sessions {
		ppm, _, ratio := SessionMetrics(s.PagesForward, s.PagesBackward, s.DurationMs)
		totalPPM += ppm
		totalRatio += ratio
		totalPages += int64(s.PagesForward)
		totalMs += s.DurationMs
		if ppm > bestPPM {
			bestPPM = ppm
		}
	}
	count := float64(len(sessions))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Pages read: %d\n", totalPages); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time read: %.1f min\n", float64(totalMs)/60000.0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg pages/min: %.2f\n", totalPPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best pages/min: %.2f\n", bestPPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Forward ratio: %.2f%%\n", (totalRatio/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurvesWithSize prints pace curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	ppms := make([]float64, len(sessions))
	ratios := make([]float64, len(sessions))
	for i, s := range sessions {
		ppm, _, ratio := SessionMetrics(s.PagesForward, s.PagesBackward, s.DurationMs)
		ppms[i] = ppm
		ratios[i] = ratio * 100
	}
	ppms = MovingAverage(ppms, window)
	ratios = MovingAverage(ratios, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return renderBraillePlot(w, "Reading Pace", []Series{
		{Name: "Pages/min", Values: ppms},
		{Name: "Forward %", Values: ratios},
	}, width, height, useColor)
}

// RenderGestureTable prints per-gesture aggregates.
func RenderGestureTable(w io.Writer, aggs []model.GestureAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No gesture stats found.")
		return err
	}
	type row struct {
		gesture string
		count   int
		blocked int
		rate    float64
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Count + agg.Blocked
		rate := 0.0
		if total > 0 {
			rate = float64(agg.Blocked) / float64(total)
		}
		rows = append(rows, row{
			gesture: agg.Gesture,
			count:   agg.Count,
			blocked: agg.Blocked,
			rate:    rate,
		})
	}
	// Most used first.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count == rows[j].count {
			return rows[i].gesture < rows[j].gesture
		}
		return rows[i].count > rows[j].count
	})

	if _, err := fmt.Fprintln(w, "Per-Gesture"); err != nil {
		return err
	}

	headers := []string{"Gesture", "Count", "Blocked", "Blocked %"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.gesture,
			fmt.Sprintf("%d", r.count),
			fmt.Sprintf("%d", r.blocked),
			fmt.Sprintf("%.1f%%", r.rate*100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
