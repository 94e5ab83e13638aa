package colorize

import (
	"fmt"
	"strings"
)

// Point is a position in logical units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the layout box of a container in client coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Local translates a client position into a position relative to the box.
func (r Rect) Local(p Point) Point {
	return Point{X: p.X - r.X, Y: p.Y - r.Y}
}

// PointerKind is the type of a pointer event.
type PointerKind int

const (
	Press PointerKind = iota
	Move
	Release
	Leave
	Cancel
)

var pointerKinds = [...]string{
	Press:   "press",
	Move:    "move",
	Release: "release",
	Leave:   "leave",
	Cancel:  "cancel",
}

func (k PointerKind) String() string {
	if k < 0 || int(k) >= len(pointerKinds) {
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
	return pointerKinds[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k PointerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PointerKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	// Browser style names are accepted as well.
	switch name {
	case "down", "start":
		name = "press"
	case "drag":
		name = "move"
	case "up", "end":
		name = "release"
	}
	for i, n := range pointerKinds {
		if n == name {
			*k = PointerKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown pointer event kind %q", text)
}

// PointerSource tells whether an event comes from a mouse or a touch screen.
type PointerSource int

const (
	Mouse PointerSource = iota
	Touch
)

func (s PointerSource) String() string {
	if s == Touch {
		return "touch"
	}
	return "mouse"
}

// MarshalText implements encoding.TextMarshaler.
func (s PointerSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *PointerSource) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "mouse", "pen", "":
		*s = Mouse
	case "touch":
		*s = Touch
	default:
		return fmt.Errorf("unknown pointer source %q", text)
	}
	return nil
}

// PointerEvent is a pointer or touch event expressed in client coordinates.
// Mouse events carry their position in Position; touch events carry the
// active touch points in Touches and the points that changed in ChangedTouches.
type PointerEvent struct {
	Kind           PointerKind   `json:"kind"`
	Source         PointerSource `json:"source,omitempty"`
	Position       Point         `json:"pos"`
	Touches        []Point       `json:"touches,omitempty"`
	ChangedTouches []Point       `json:"changed,omitempty"`
}

// ClientPoint returns the position the event refers to. Only a single touch
// is tracked: the first active touch wins over the first changed touch.
func (e PointerEvent) ClientPoint() (Point, bool) {
	if e.Source != Touch {
		return e.Position, true
	}
	if len(e.Touches) > 0 {
		return e.Touches[0], true
	}
	if len(e.ChangedTouches) > 0 {
		return e.ChangedTouches[0], true
	}
	return Point{}, false
}
