// Package placement computes where a text block is anchored relative to a
// bounding box. Everything here is pure integer arithmetic.
package placement

import "strings"

// Anchor names a position of a text block relative to a bounding box.
type Anchor int

const (
	// AnchorUnknown is the anchor of an unrecognised name. It resolves to
	// (margin, margin) regardless of the bounding box.
	AnchorUnknown Anchor = iota
	InsideTopLeft
	InsideTopCenter
	InsideTopRight
	InsideBottomLeft
	InsideBottomCenter
	InsideBottomRight
	OutsideTopLeft
	OutsideTopCenter
	OutsideTopRight
	OutsideBottomLeft
	OutsideBottomCenter
	OutsideBottomRight
	OutsideLeft
	OutsideRight
)

var anchorNames = [...]string{
	AnchorUnknown:       "unknown",
	InsideTopLeft:       "inside_top_left",
	InsideTopCenter:     "inside_top_center",
	InsideTopRight:      "inside_top_right",
	InsideBottomLeft:    "inside_bottom_left",
	InsideBottomCenter:  "inside_bottom_center",
	InsideBottomRight:   "inside_bottom_right",
	OutsideTopLeft:      "outside_top_left",
	OutsideTopCenter:    "outside_top_center",
	OutsideTopRight:     "outside_top_right",
	OutsideBottomLeft:   "outside_bottom_left",
	OutsideBottomCenter: "outside_bottom_center",
	OutsideBottomRight:  "outside_bottom_right",
	OutsideLeft:         "outside_left",
	OutsideRight:        "outside_right",
}

// DefaultAnchor is used when no position is requested.
const DefaultAnchor = InsideTopLeft

// Anchors returns every named anchor in declaration order.
func Anchors() []Anchor {
	out := make([]Anchor, 0, len(anchorNames)-1)
	for a := InsideTopLeft; a <= OutsideRight; a++ {
		out = append(out, a)
	}
	return out
}

// String returns the snake_case name of the anchor.
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return anchorNames[AnchorUnknown]
	}
	return anchorNames[a]
}

// ParseAnchor maps a snake_case name to its anchor. Unrecognised names
// yield AnchorUnknown; an empty name yields DefaultAnchor.
func ParseAnchor(s string) Anchor {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DefaultAnchor
	}
	for a := InsideTopLeft; a <= OutsideRight; a++ {
		if anchorNames[a] == s {
			return a
		}
	}
	return AnchorUnknown
}

// IsOutside reports whether the anchor places the block outside the box.
func (a Anchor) IsOutside() bool {
	return a >= OutsideTopLeft && a <= OutsideRight
}

// Inside returns the inside counterpart of an outside anchor. OutsideLeft
// and OutsideRight have no counterpart and return AnchorUnknown. Inside
// anchors are returned unchanged.
func (a Anchor) Inside() Anchor {
	switch a {
	case OutsideTopLeft:
		return InsideTopLeft
	case OutsideTopCenter:
		return InsideTopCenter
	case OutsideTopRight:
		return InsideTopRight
	case OutsideBottomLeft:
		return InsideBottomLeft
	case OutsideBottomCenter:
		return InsideBottomCenter
	case OutsideBottomRight:
		return InsideBottomRight
	case OutsideLeft, OutsideRight:
		return AnchorUnknown
	}
	return a
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	*a = ParseAnchor(string(text))
	return nil
}
