package motion

import (
	"math"
	"time"
)

// Path is a closed curve parameterized by arc length.
type Path interface {
	// Length returns the total arc length.
	Length() float64
	// PointAt returns the point at arc length s. s is wrapped into
	// [0, Length()).
	PointAt(s float64) Vec2
}

// CornerRadii holds the corner radii of a rounded rectangle.
type CornerRadii struct {
	TopLeft     float64 `yaml:"topLeft" mapstructure:"topLeft"`
	TopRight    float64 `yaml:"topRight" mapstructure:"topRight"`
	BottomRight float64 `yaml:"bottomRight" mapstructure:"bottomRight"`
	BottomLeft  float64 `yaml:"bottomLeft" mapstructure:"bottomLeft"`
}

// UniformRadii returns CornerRadii with every corner set to r.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

func (c CornerRadii) validate() error {
	for _, r := range [...]float64{c.TopLeft, c.TopRight, c.BottomRight, c.BottomLeft} {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return &ConfigError{Field: "radii", Value: c, Err: ErrDegeneratePath}
		}
	}
	return nil
}

// clamp limits every radius to half of the shorter side.
func (c CornerRadii) clamp(w, h float64) CornerRadii {
	limit := min(w, h) / 2
	return CornerRadii{
		TopLeft:     min(c.TopLeft, limit),
		TopRight:    min(c.TopRight, limit),
		BottomRight: min(c.BottomRight, limit),
		BottomLeft:  min(c.BottomLeft, limit),
	}
}

// pathSegment is one straight edge or quarter arc of a RoundedRect.
type pathSegment struct {
	offset float64 // arc length at the segment start
	length float64

	// Lines run from -> to.
	from, to Vec2

	// Arcs sweep clockwise (screen space) from angle0 around center.
	arc    bool
	center Vec2
	radius float64
	angle0 float64
}

func (s pathSegment) pointAt(t float64) Vec2 {
	if s.arc {
		a := s.angle0 + t/s.radius
		return Vec2{X: s.center.X + s.radius*math.Cos(a), Y: s.center.Y + s.radius*math.Sin(a)}
	}
	f := 0.0
	if s.length > 0 {
		f = t / s.length
	}
	return Vec2{X: s.from.X + (s.to.X-s.from.X)*f, Y: s.from.Y + (s.to.Y-s.from.Y)*f}
}

// RoundedRect is a rectangle outline with per-corner radii. Arc length zero
// is the top edge just right of the top-left corner; increasing arc length
// travels clockwise on screen.
type RoundedRect struct {
	bounds Rect
	radii  CornerRadii
	segs   []pathSegment
	length float64
}

// NewRoundedRect builds the outline of bounds. Radii larger than half the
// shorter side are clamped. A non-positive width or height, or a negative
// radius, returns ErrDegeneratePath.
func NewRoundedRect(bounds Rect, radii CornerRadii) (*RoundedRect, error) {
	if !(bounds.Width > 0) || !(bounds.Height > 0) {
		return nil, &ConfigError{Field: "bounds", Value: bounds, Err: ErrDegeneratePath}
	}
	if err := radii.validate(); err != nil {
		return nil, err
	}
	r := &RoundedRect{bounds: bounds, radii: radii.clamp(bounds.Width, bounds.Height)}
	r.build()
	return r, nil
}

func (r *RoundedRect) build() {
	x0, y0 := r.bounds.X, r.bounds.Y
	x1, y1 := x0+r.bounds.Width, y0+r.bounds.Height
	tl, tr, br, bl := r.radii.TopLeft, r.radii.TopRight, r.radii.BottomRight, r.radii.BottomLeft

	r.segs = r.segs[:0]
	r.length = 0
	r.line(Vec2{x0 + tl, y0}, Vec2{x1 - tr, y0})
	r.corner(Vec2{x1 - tr, y0 + tr}, tr, -math.Pi/2)
	r.line(Vec2{x1, y0 + tr}, Vec2{x1, y1 - br})
	r.corner(Vec2{x1 - br, y1 - br}, br, 0)
	r.line(Vec2{x1 - br, y1}, Vec2{x0 + bl, y1})
	r.corner(Vec2{x0 + bl, y1 - bl}, bl, math.Pi/2)
	r.line(Vec2{x0, y1 - bl}, Vec2{x0, y0 + tl})
	r.corner(Vec2{x0 + tl, y0 + tl}, tl, math.Pi)
}

func (r *RoundedRect) line(from, to Vec2) {
	l := math.Hypot(to.X-from.X, to.Y-from.Y)
	if l <= 0 {
		return
	}
	r.segs = append(r.segs, pathSegment{offset: r.length, length: l, from: from, to: to})
	r.length += l
}

func (r *RoundedRect) corner(center Vec2, radius, angle0 float64) {
	if radius <= 0 {
		return
	}
	l := radius * math.Pi / 2
	r.segs = append(r.segs, pathSegment{
		offset: r.length, length: l,
		arc: true, center: center, radius: radius, angle0: angle0,
	})
	r.length += l
}

// Bounds returns the rectangle the outline was built from.
func (r *RoundedRect) Bounds() Rect { return r.bounds }

// Radii returns the clamped corner radii.
func (r *RoundedRect) Radii() CornerRadii { return r.radii }

// Length implements Path.
func (r *RoundedRect) Length() float64 { return r.length }

// PointAt implements Path.
func (r *RoundedRect) PointAt(s float64) Vec2 {
	if len(r.segs) == 0 {
		return Vec2{X: r.bounds.X, Y: r.bounds.Y}
	}
	s = WrapProgress(s, r.length)
	// At most eight segments; a linear scan beats a binary search here.
	for i := len(r.segs) - 1; i > 0; i-- {
		if s >= r.segs[i].offset {
			seg := r.segs[i]
			return seg.pointAt(min(s-seg.offset, seg.length))
		}
	}
	return r.segs[0].pointAt(s)
}

// WrapProgress normalizes p into [0, length). A non-positive length yields 0.
func WrapProgress(p, length float64) float64 {
	if !(length > 0) || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	p = math.Mod(p, length)
	if p < 0 {
		p += length
	}
	// -tiny + length can round up to length.
	if p >= length {
		p = 0
	}
	return p
}

// PathState is the timing state of a path-following marker.
type PathState struct {
	Progress      float64 // arc length in [0, length)
	LastTimestamp time.Duration
	HasTimestamp  bool // false until the first frame
	Paused        bool
	Direction     Direction
}

// AnimationFrame is one clock callback.
type AnimationFrame struct {
	Timestamp time.Duration
}

// Advance moves the marker for one frame. The elapsed time since the previous
// frame counts as zero while paused, and the timestamp is recorded either way
// so that resuming never catches up on the paused interval. A non-positive
// length or duration leaves progress where it is.
func Advance(s PathState, frame AnimationFrame, length float64, duration time.Duration) PathState {
	var dt time.Duration
	if s.HasTimestamp && !s.Paused {
		dt = frame.Timestamp - s.LastTimestamp
	}
	s.LastTimestamp = frame.Timestamp
	s.HasTimestamp = true
	if dt <= 0 || !(length > 0) || duration <= 0 {
		return s
	}
	velocity := length / duration.Seconds()
	s.Progress = WrapProgress(s.Progress+dt.Seconds()*velocity*s.Direction.sign(), length)
	return s
}
