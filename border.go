package motion

import (
	"log/slog"
	"time"
)

// Defaults for BorderConfig.
const (
	DefaultRevolution = 4 * time.Second
	DefaultMarkerSize = 6.0
)

// BorderConfig configures a BorderAnimator.
type BorderConfig struct {
	Name string `mapstructure:"name"`

	// Duration is the time for one full revolution and must be positive.
	// DecodeBorderProps fills DefaultRevolution when the prop is absent.
	Duration  time.Duration `mapstructure:"duration"`
	Direction Direction     `mapstructure:"direction"`
	Radii     CornerRadii   `mapstructure:"radii"`

	PauseOnHover bool `mapstructure:"pauseOnHover"`
	Disabled     bool `mapstructure:"disabled"`

	// Zero MarkerColor means ColorWhite; zero MarkerSize means
	// DefaultMarkerSize.
	MarkerColor Color   `mapstructure:"markerColor"`
	MarkerSize  float64 `mapstructure:"markerSize"`
}

// Validate checks the configuration.
func (c BorderConfig) Validate() error {
	if c.Duration <= 0 {
		return &ConfigError{Field: "duration", Value: c.Duration, Err: ErrInvalidDuration}
	}
	switch c.Direction {
	case 0, Clockwise, CounterClockwise:
	default:
		return &ConfigError{Field: "direction", Value: c.Direction, Err: ErrInvalidConfig}
	}
	if c.MarkerSize < 0 {
		return &ConfigError{Field: "markerSize", Value: c.MarkerSize, Err: ErrInvalidConfig}
	}
	return c.Radii.validate()
}

// Marker is what a host draws for a BorderAnimator in the current frame.
type Marker struct {
	Pos      Vec2
	Color    Color
	Size     float64
	Disabled bool
}

// BorderAnimator moves a marker around the rounded-rect outline of an element
// at a constant arc-length speed. It is the only animator that needs per-frame
// work: while enabled it holds exactly one outstanding frame request on its
// AnimationClock, and while disabled or disposed it holds none.
//
// The outline is measured from the element's WorldBounds every frame. Until
// the element has a non-zero size the marker sits at the element origin and
// measuring is retried on the next frame.
type BorderAnimator struct {
	el     *Element
	clock  AnimationClock
	logger *slog.Logger
	unhook func()

	cfg   BorderConfig
	path  Path
	shape Rect // bounds the current path was built from
	fixed bool // path was set explicitly

	state    PathState
	handle   FrameHandle
	pending  bool
	disabled bool
	paused   bool

	hover       *HoverTracker
	hoverHandle CallbackHandle
	hovered     bool

	frames   int
	skips    int
	disposed bool
}

// NewBorderAnimator starts a marker on el's outline driven by clock.
func NewBorderAnimator(el *Element, clock AnimationClock, cfg BorderConfig, opts ...Option) (*BorderAnimator, error) {
	if el == nil {
		return nil, &ConfigError{Field: "element", Err: ErrInvalidConfig}
	}
	if clock == nil {
		return nil, &ConfigError{Field: "clock", Err: ErrInvalidConfig}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Direction == 0 {
		cfg.Direction = Clockwise
	}
	if cfg.MarkerColor == (Color{}) {
		cfg.MarkerColor = ColorWhite
	}
	if cfg.MarkerSize == 0 {
		cfg.MarkerSize = DefaultMarkerSize
	}
	o := buildOptions(opts)
	name := cfg.Name
	if name == "" {
		name = el.Name
	}
	b := &BorderAnimator{
		el:       el,
		clock:    clock,
		logger:   o.logger.With("border", name),
		cfg:      cfg,
		state:    PathState{Direction: cfg.Direction},
		disabled: cfg.Disabled,
	}
	b.unhook = el.OnDispose(b.Dispose)
	b.measure()
	if !b.disabled {
		b.subscribe()
	}
	return b, nil
}

func (b *BorderAnimator) subscribe() {
	if b.pending {
		return
	}
	b.handle = b.clock.RequestFrame(b.onFrame)
	b.pending = true
}

func (b *BorderAnimator) release() {
	if !b.pending {
		return
	}
	b.clock.CancelFrame(b.handle)
	b.pending = false
	b.handle = 0
	b.logger.Debug("frame released")
}

// measure rebuilds the outline when the element's bounds changed. Progress
// keeps its fraction of the outline across a resize.
func (b *BorderAnimator) measure() {
	if b.fixed {
		return
	}
	bounds := b.el.WorldBounds()
	if bounds == b.shape && b.path != nil {
		return
	}
	p, err := NewRoundedRect(bounds, b.cfg.Radii)
	if err != nil {
		b.path = nil
		return
	}
	if b.path != nil && b.path.Length() > 0 {
		b.state.Progress = WrapProgress(b.state.Progress/b.path.Length()*p.Length(), p.Length())
	}
	b.path = p
	b.shape = bounds
}

func (b *BorderAnimator) onFrame(now time.Duration) {
	b.pending = false
	b.handle = 0
	if b.disposed || b.disabled {
		return
	}
	b.measure()
	length := b.Length()
	if length <= 0 {
		b.skips++
		b.logger.Debug("path not measurable, retrying next frame")
	}
	b.state.Paused = b.paused || b.hovered
	b.state = Advance(b.state, AnimationFrame{Timestamp: now}, length, b.cfg.Duration)
	b.frames++
	b.subscribe()
}

// SetPath replaces the measured outline with p. A nil p returns to measuring
// the element. A path with no length is rejected with ErrDegeneratePath.
func (b *BorderAnimator) SetPath(p Path) error {
	if p == nil {
		b.fixed = false
		b.path = nil
		b.shape = Rect{}
		b.measure()
		return nil
	}
	if !(p.Length() > 0) {
		return &ConfigError{Field: "path", Value: p.Length(), Err: ErrDegeneratePath}
	}
	b.fixed = true
	b.path = p
	b.state.Progress = WrapProgress(b.state.Progress, p.Length())
	return nil
}

// SetDirection changes travel direction. The marker continues from its
// current progress.
func (b *BorderAnimator) SetDirection(d Direction) error {
	if d != Clockwise && d != CounterClockwise {
		return &ConfigError{Field: "direction", Value: d, Err: ErrInvalidConfig}
	}
	b.cfg.Direction = d
	b.state.Direction = d
	return nil
}

// SetDuration changes the revolution time.
func (b *BorderAnimator) SetDuration(d time.Duration) error {
	if d <= 0 {
		return &ConfigError{Field: "duration", Value: d, Err: ErrInvalidDuration}
	}
	b.cfg.Duration = d
	return nil
}

// SetPaused holds the marker in place. Frames keep arriving so the timestamp
// stays current, and resuming continues without a jump.
func (b *BorderAnimator) SetPaused(paused bool) {
	b.paused = paused
}

// SetDisabled stops or restarts the animator. A disabled animator releases
// its frame request and reports a static, desaturated marker at the position
// it stopped at.
func (b *BorderAnimator) SetDisabled(disabled bool) {
	if b.disposed || disabled == b.disabled {
		return
	}
	b.disabled = disabled
	if disabled {
		b.release()
		return
	}
	// Elapsed time while disabled is not travelled.
	b.state.HasTimestamp = false
	b.subscribe()
}

// AttachHover makes the marker pause while the pointer is over the element,
// when the config asks for pauseOnHover. Attaching again replaces the
// previous tracker. A pointer already over the element is picked up on the
// tracker's next update.
func (b *BorderAnimator) AttachHover(t *HoverTracker) {
	b.hoverHandle.Remove()
	b.hoverHandle = CallbackHandle{}
	b.hover = t
	b.hovered = false
	if t == nil || !b.cfg.PauseOnHover {
		return
	}
	b.hoverHandle = t.OnHover(b.el,
		func() { b.hovered = true },
		func() { b.hovered = false },
	)
}

// SetPauseOnHover toggles hover pausing on the attached tracker.
func (b *BorderAnimator) SetPauseOnHover(on bool) {
	b.cfg.PauseOnHover = on
	b.AttachHover(b.hover)
}

// Position returns the marker position. With no measurable outline it is the
// element origin.
func (b *BorderAnimator) Position() Vec2 {
	return b.PointAt(b.state.Progress)
}

// PointAt returns the outline point at arc length s, or the element origin
// before the outline can be measured.
func (b *BorderAnimator) PointAt(s float64) Vec2 {
	if b.path == nil || !(b.path.Length() > 0) {
		wb := b.el.WorldBounds()
		return Vec2{X: wb.X, Y: wb.Y}
	}
	return b.path.PointAt(s)
}

// Marker returns the marker as it should be drawn this frame.
func (b *BorderAnimator) Marker() Marker {
	m := Marker{Pos: b.Position(), Color: b.cfg.MarkerColor, Size: b.cfg.MarkerSize}
	if b.disabled {
		m.Color = m.Color.Desaturate()
		m.Disabled = true
	}
	return m
}

// TrailPoints returns n points behind the marker, spacing arc-length units
// apart, nearest first.
func (b *BorderAnimator) TrailPoints(n int, spacing float64) []Vec2 {
	if n <= 0 || b.path == nil || !(b.path.Length() > 0) {
		return nil
	}
	out := make([]Vec2, n)
	step := spacing * b.state.Direction.sign()
	for i := range out {
		out[i] = b.path.PointAt(b.state.Progress - float64(i+1)*step)
	}
	return out
}

// Progress returns the marker's arc-length position in [0, Length()).
func (b *BorderAnimator) Progress() float64 { return b.state.Progress }

// Length returns the outline length, or 0 before it can be measured.
func (b *BorderAnimator) Length() float64 {
	if b.path == nil {
		return 0
	}
	return b.path.Length()
}

// State returns a copy of the timing state.
func (b *BorderAnimator) State() PathState { return b.state }

// Direction returns the travel direction.
func (b *BorderAnimator) Direction() Direction { return b.state.Direction }

// Paused reports whether the marker is held, by SetPaused or by hover.
func (b *BorderAnimator) Paused() bool { return b.paused || b.hovered }

// Disabled reports whether the animator is disabled.
func (b *BorderAnimator) Disabled() bool { return b.disabled }

// Subscribed reports whether a frame request is outstanding.
func (b *BorderAnimator) Subscribed() bool { return b.pending }

// Frames returns the number of frames processed.
func (b *BorderAnimator) Frames() int { return b.frames }

// Skips returns the number of frames that found no measurable outline.
func (b *BorderAnimator) Skips() int { return b.skips }

// Dispose releases the frame request and hover callbacks.
func (b *BorderAnimator) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.release()
	b.hoverHandle.Remove()
	b.hoverHandle = CallbackHandle{}
	if b.unhook != nil {
		b.unhook()
		b.unhook = nil
	}
	b.logger.Debug("disposed", "frames", b.frames)
}

// IsDisposed reports whether Dispose has run.
func (b *BorderAnimator) IsDisposed() bool { return b.disposed }
