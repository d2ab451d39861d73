package gesture

import "time"

// Source identifies the host event API a raw event came from.
type Source uint8

const (
	SourceTouch Source = iota
	SourcePointer
	SourceMouse
)

// Kind is the phase of a raw input event.
type Kind uint8

const (
	KindPress Kind = iota
	KindMove
	KindRelease
	KindCancel
	// KindClick is a completed host-level click, used only by the
	// click-to-turn pathway.
	KindClick
)

// MouseID is the synthetic touch identifier assigned to mouse input so
// downstream logic stays source-agnostic.
const MouseID = -1

// RawPoint is one contact in viewport-absolute coordinates.
type RawPoint struct {
	ID   int
	X, Y float64
}

// RawEvent is the tagged union produced by per-source adapters at the
// boundary. For touch sources Points holds every contact still active
// after the event; pointer and mouse events carry exactly one point.
type RawEvent struct {
	Source Source
	Kind   Kind
	Points []RawPoint
	Time   time.Time
}

// MouseEvent builds a single-point mouse event.
func MouseEvent(kind Kind, x, y float64, t time.Time) RawEvent {
	return RawEvent{
		Source: SourceMouse,
		Kind:   kind,
		Points: []RawPoint{{ID: MouseID, X: x, Y: y}},
		Time:   t,
	}
}

// TouchEvent builds a touch event from the active contacts.
func TouchEvent(kind Kind, points []RawPoint, t time.Time) RawEvent {
	return RawEvent{Source: SourceTouch, Kind: kind, Points: points, Time: t}
}

// Sample is one normalized contact: container-relative position plus
// the original viewport position and timestamp.
type Sample struct {
	ID               int
	X, Y             float64
	ClientX, ClientY float64
	Time             time.Time
}

// normalize maps a raw event to container-relative samples, one per
// contact. Mouse contacts are forced onto the synthetic MouseID.
func normalize(ev RawEvent, bounds Rect) []Sample {
	if len(ev.Points) == 0 {
		return nil
	}
	samples := make([]Sample, 0, len(ev.Points))
	for _, p := range ev.Points {
		id := p.ID
		if ev.Source == SourceMouse {
			id = MouseID
		}
		samples = append(samples, Sample{
			ID:      id,
			X:       p.X - bounds.Min.X,
			Y:       p.Y - bounds.Min.Y,
			ClientX: p.X,
			ClientY: p.Y,
			Time:    ev.Time,
		})
	}
	return samples
}

func (s Source) String() string {
	switch s {
	case SourceTouch:
		return "touch"
	case SourcePointer:
		return "pointer"
	default:
		return "mouse"
	}
}

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindMove:
		return "move"
	case KindRelease:
		return "release"
	case KindCancel:
		return "cancel"
	default:
		return "click"
	}
}
