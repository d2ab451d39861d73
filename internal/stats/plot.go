// Package stats contains reading statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series is one named curve in the pace plot.
type Series struct {
	Name   string
	Values []float64
}

const (
	paceHeightDefault = 10
	minPaceWidth      = 12
	// axisValueWidth fits pace values like "999.0" plus a sign.
	axisValueWidth = 6
	axisTick       = " ┤"
	colorReset     = "\x1b[0m"
)

// stroke is a dot on/off pattern that keeps curves apart without color.
type stroke struct {
	name   string
	period int
	on     int
}

var strokes = []stroke{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var strokeColors = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m"}

func (s stroke) at(x int) bool {
	if s.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%s.period < s.on
}

// valueRange is the vertical extent a curve is scaled into.
type valueRange struct {
	lo, hi float64
}

func rangeOf(values []float64) valueRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	if hi-lo < 1e-9 {
		// A flat curve still needs vertical room.
		lo--
		hi++
	}
	return valueRange{lo: lo, hi: hi}
}

func (r valueRange) mid() float64 { return (r.lo + r.hi) / 2 }

// brailleGrid accumulates dots at twice the cell width and four times
// the cell height.
type brailleGrid struct {
	cells [][]uint8
}

func newBrailleGrid(rows, cols int) *brailleGrid {
	cells := make([][]uint8, rows)
	for i := range cells {
		cells[i] = make([]uint8, cols)
	}
	return &brailleGrid{cells: cells}
}

// brailleDots maps a dot position within a cell to its bit in the
// braille codepoint, indexed [y][x].
var brailleDots = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (g *brailleGrid) mark(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(g.cells) || cx >= len(g.cells[cy]) {
		return
	}
	g.cells[cy][cx] |= brailleDots[y%4][x%2]
}

func (g *brailleGrid) mask(cx, cy int) uint8 {
	if cy < 0 || cy >= len(g.cells) || cx < 0 || cx >= len(g.cells[cy]) {
		return 0
	}
	return g.cells[cy][cx]
}

// renderBraillePlot draws the curves as one braille chart. Each curve is
// scaled to its own range so pages/min and forward percentage share the
// canvas; the left axis carries the first curve's values and the other
// ranges appear in the legend.
func renderBraillePlot(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	curves := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			curves = append(curves, s)
		}
	}
	if len(curves) == 0 {
		return nil
	}
	if height <= 0 {
		height = paceHeightDefault
	}
	if width < minPaceWidth {
		width = minPaceWidth
	}

	ranges := make([]valueRange, len(curves))
	grids := make([]*brailleGrid, len(curves))
	for i, s := range curves {
		ranges[i] = rangeOf(s.Values)
		grids[i] = newBrailleGrid(height, width)
		plotCurve(grids[i], resample(s.Values, width), ranges[i], strokes[i%len(strokes)], height)
	}

	useColor := colorEnabled(w, forceColor)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Axis: %s. Curves are scaled to their own range.\n", curves[0].Name); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%*s%s", axisValueWidth, axisLabel(y, height, ranges[0]), axisTick)
		for x := 0; x < width; x++ {
			mask, curve := composeDots(grids, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && curve >= 0 {
				row.WriteString(strokeColors[curve%len(strokeColors)])
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, legend(curves, ranges, useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func plotCurve(grid *brailleGrid, values []float64, r valueRange, st stroke, height int) {
	dotRows := height * 4
	prevX, prevY := -1, -1
	for i, v := range values {
		x := i * 2
		y := dotRow(v, r, dotRows)
		if prevX >= 0 {
			tracePath(prevX, prevY, x, y, func(px, py int) {
				if st.at(px) {
					grid.mark(px, py)
				}
			})
		} else if st.at(x) {
			grid.mark(x, y)
		}
		prevX, prevY = x, y
	}
}

func dotRow(v float64, r valueRange, dotRows int) int {
	if dotRows <= 1 {
		return 0
	}
	pos := (v - r.lo) / (r.hi - r.lo)
	row := int(math.Round((1 - pos) * float64(dotRows-1)))
	if row < 0 {
		row = 0
	}
	if row >= dotRows {
		row = dotRows - 1
	}
	return row
}

// composeDots merges every curve's dots at one cell; the first curve
// with a dot there picks the color.
func composeDots(grids []*brailleGrid, x, y int) (uint8, int) {
	var mask uint8
	curve := -1
	for i, g := range grids {
		m := g.mask(x, y)
		if m == 0 {
			continue
		}
		if curve == -1 {
			curve = i
		}
		mask |= m
	}
	return mask, curve
}

// axisLabel puts the primary curve's max, mid, and min on the left axis.
func axisLabel(y, height int, r valueRange) string {
	switch {
	case y == 0:
		return formatAxisValue(r.hi)
	case y == height-1:
		return formatAxisValue(r.lo)
	case height > 2 && y == height/2:
		return formatAxisValue(r.mid())
	default:
		return ""
	}
}

func formatAxisValue(v float64) string {
	if math.Abs(v) >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func legend(curves []Series, ranges []valueRange, useColor bool) string {
	parts := make([]string, 0, len(curves))
	for i, s := range curves {
		r := ranges[i]
		label := fmt.Sprintf("%s %s [%s, %s]",
			strokes[i%len(strokes)].name, s.Name,
			formatAxisValue(r.lo), formatAxisValue(r.hi))
		if useColor {
			label = strokeColors[i%len(strokeColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func colorEnabled(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PlotWidthFor converts a total terminal width into braille columns,
// reserving the axis gutter.
func PlotWidthFor(totalWidth int) int {
	gutter := axisValueWidth + utf8.RuneCountInString(axisTick)
	w := totalWidth - gutter
	if w < minPaceWidth {
		w = minPaceWidth
	}
	return w
}

// resample fits values to the plot width, averaging buckets when
// shrinking and interpolating linearly when stretching.
func resample(values []float64, width int) []float64 {
	switch {
	case len(values) == 0 || width <= 0:
		return nil
	case len(values) == width:
		return append([]float64(nil), values...)
	case len(values) > width:
		return shrink(values, width)
	default:
		return stretch(values, width)
	}
}

func shrink(values []float64, width int) []float64 {
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func stretch(values []float64, width int) []float64 {
	out := make([]float64, width)
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	step := float64(len(values)-1) / float64(width-1)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

// tracePath walks Bresenham's line between two dot positions.
func tracePath(x0, y0, x1, y1 int, mark func(x, y int)) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		mark(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
