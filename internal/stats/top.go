// Package stats contains reading statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/ttbye/pageflick/internal/model"
)

// TopGesturesByCount returns the top N gestures by total usage.
func TopGesturesByCount(aggs []model.GestureAggregate, n int) []string {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	type item struct {
		gesture string
		total   int
	}
	items := make([]item, 0, len(aggs))
	for _, agg := range aggs {
		items = append(items, item{
			gesture: agg.Gesture,
			total:   agg.Count + agg.Blocked,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].gesture < items[j].gesture
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].gesture)
	}
	return out
}
