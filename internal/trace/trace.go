// Package trace reads and writes recorded input traces for gesture
// replay.
//
// A trace is a plain text file, one event per line:
//
//	<offset-ms> <source> <kind> [<id> <x> <y>]...
//
// The offset is milliseconds since the start of the trace. Sources and
// kinds use the engine's string names (mouse press, touch move, ...).
// Release and cancel lines list the contacts that remain down, which
// may be none.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ttbye/pageflick/internal/gesture"
)

// Parse decodes a trace into raw events. Offsets are anchored at epoch
// so replays are deterministic.
func Parse(r io.Reader) ([]gesture.RawEvent, error) {
	base := time.Unix(0, 0)
	var events []gesture.RawEvent

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseLine(line, base)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return events, nil
}

func parseLine(line string, base time.Time) (gesture.RawEvent, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return gesture.RawEvent{}, fmt.Errorf("expected at least offset, source, kind")
	}
	offset, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return gesture.RawEvent{}, fmt.Errorf("invalid offset %q", fields[0])
	}
	source, err := parseSource(fields[1])
	if err != nil {
		return gesture.RawEvent{}, err
	}
	kind, err := parseKind(fields[2])
	if err != nil {
		return gesture.RawEvent{}, err
	}

	rest := fields[3:]
	if len(rest)%3 != 0 {
		return gesture.RawEvent{}, fmt.Errorf("points must come in id x y triples")
	}
	var points []gesture.RawPoint
	for i := 0; i < len(rest); i += 3 {
		id, err := strconv.Atoi(rest[i])
		if err != nil {
			return gesture.RawEvent{}, fmt.Errorf("invalid contact id %q", rest[i])
		}
		x, err := strconv.ParseFloat(rest[i+1], 64)
		if err != nil {
			return gesture.RawEvent{}, fmt.Errorf("invalid x %q", rest[i+1])
		}
		y, err := strconv.ParseFloat(rest[i+2], 64)
		if err != nil {
			return gesture.RawEvent{}, fmt.Errorf("invalid y %q", rest[i+2])
		}
		points = append(points, gesture.RawPoint{ID: id, X: x, Y: y})
	}

	return gesture.RawEvent{
		Source: source,
		Kind:   kind,
		Points: points,
		Time:   base.Add(time.Duration(offset) * time.Millisecond),
	}, nil
}

func parseSource(s string) (gesture.Source, error) {
	switch s {
	case "touch":
		return gesture.SourceTouch, nil
	case "pointer":
		return gesture.SourcePointer, nil
	case "mouse":
		return gesture.SourceMouse, nil
	default:
		return 0, fmt.Errorf("unknown source %q", s)
	}
}

func parseKind(s string) (gesture.Kind, error) {
	switch s {
	case "press":
		return gesture.KindPress, nil
	case "move":
		return gesture.KindMove, nil
	case "release":
		return gesture.KindRelease, nil
	case "cancel":
		return gesture.KindCancel, nil
	case "click":
		return gesture.KindClick, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", s)
	}
}

// Format writes events back out in trace form. Offsets are relative to
// the first event.
func Format(w io.Writer, events []gesture.RawEvent) error {
	if len(events) == 0 {
		return nil
	}
	base := events[0].Time
	for _, ev := range events {
		offset := ev.Time.Sub(base).Milliseconds()
		line := fmt.Sprintf("%d %s %s", offset, ev.Source, ev.Kind)
		for _, p := range ev.Points {
			line += fmt.Sprintf(" %d %g %g", p.ID, p.X, p.Y)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	return nil
}
