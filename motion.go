package motion

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default marker tint.
var ColorWhite = Color{1, 1, 1, 1}

// Desaturate returns the color converted to its luminance grey, keeping alpha.
// Rec. 709 luma weights.
func (c Color) Desaturate() Color {
	l := 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	return Color{R: l, G: l, B: l, A: c.A}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero width and height when the rectangles do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Inset grows the rectangle by m on every side. A negative m shrinks it.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// BehaviorMode selects when and how often a block transitions between its
// hidden and visible variants.
type BehaviorMode uint8

const (
	BehaviorImmediate      BehaviorMode = iota // hidden -> visible once at mount
	BehaviorOnce                               // first time in view, then latched
	BehaviorLoop                               // replays on every view toggle
	BehaviorContinuousLoop                     // visible at mount, loop target while in view
	BehaviorPulseLoop                          // hidden -> pulseLoop -> hidden while in view
)

var behaviorNames = [...]string{
	BehaviorImmediate:      "immediate",
	BehaviorOnce:           "once",
	BehaviorLoop:           "loop",
	BehaviorContinuousLoop: "continuous-loop",
	BehaviorPulseLoop:      "pulse-loop",
}

func (b BehaviorMode) String() string {
	if int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return "unknown"
}

// ParseBehaviorMode maps a behavior name to its BehaviorMode.
func ParseBehaviorMode(s string) (BehaviorMode, error) {
	for i, name := range behaviorNames {
		if name == s {
			return BehaviorMode(i), nil
		}
	}
	return 0, &ConfigError{Field: "viewportBehavior", Value: s, Err: ErrInvalidConfig}
}

// SplitMode selects the unit a SegmentedTextAnimator animates.
type SplitMode uint8

const (
	SplitChar SplitMode = iota // grapheme clusters
	SplitWord                  // words and whitespace runs
	SplitLine                  // newline-separated lines
)

func (m SplitMode) String() string {
	switch m {
	case SplitChar:
		return "char"
	case SplitWord:
		return "word"
	case SplitLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseSplitMode maps "char", "word" or "line" to a SplitMode.
func ParseSplitMode(s string) (SplitMode, error) {
	switch s {
	case "char":
		return SplitChar, nil
	case "word":
		return SplitWord, nil
	case "line":
		return SplitLine, nil
	}
	return 0, &ConfigError{Field: "per", Value: s, Err: ErrInvalidConfig}
}

// Direction is the travel direction of a BorderAnimator marker.
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// sign returns the velocity multiplier. The zero value counts as clockwise.
func (d Direction) sign() float64 {
	if d < 0 {
		return -1
	}
	return 1
}

// ParseDirection maps "clockwise" or "counterclockwise" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "clockwise", "cw":
		return Clockwise, nil
	case "counterclockwise", "ccw":
		return CounterClockwise, nil
	}
	return 0, &ConfigError{Field: "direction", Value: s, Err: ErrInvalidConfig}
}
