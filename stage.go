package motion

import (
	"cmp"
	"log/slog"
	"time"
)

// Animator is an event-driven animator the Stage advances every frame.
type Animator interface {
	Update(dt float32)
	IsDisposed() bool
}

// Stage is the headless top-level object: it owns the element tree, the page
// camera and its viewport observer, the frame clock, hover tracking, and every
// animator built through it. A host calls Update once per tick.
type Stage struct {
	root     *Element
	camera   *Camera
	observer *CameraObserver
	clock    *TickClock
	hover    *HoverTracker
	sink     EventSink
	opts     []Option
	logger   *slog.Logger
	registry *Registry

	animators []Animator
	groups    map[string]*GroupOrchestrator
	texts     map[string]*SegmentedTextAnimator
	borders   map[string]*BorderAnimator

	driver  *StepDriver
	elapsed time.Duration
	debug   bool
	stats   debugStats
}

// NewStage creates a stage whose camera shows viewport. opts are passed to
// every animator created through the stage.
func NewStage(viewport Rect, opts ...Option) *Stage {
	o := buildOptions(opts)
	cam := NewCamera(viewport)
	root := NewElement("root", Rect{Width: viewport.Width, Height: viewport.Height})
	return &Stage{
		root:     root,
		camera:   cam,
		observer: NewCameraObserver(cam),
		clock:    NewTickClock(),
		hover:    NewHoverTracker(),
		opts:     opts,
		logger:   o.logger,
		registry: o.registry,
		groups:   make(map[string]*GroupOrchestrator),
		texts:    make(map[string]*SegmentedTextAnimator),
		borders:  make(map[string]*BorderAnimator),
	}
}

// Root returns the stage's root element.
func (s *Stage) Root() *Element { return s.root }

// Camera returns the page camera.
func (s *Stage) Camera() *Camera { return s.camera }

// Observer returns the camera-backed viewport observer.
func (s *Stage) Observer() *CameraObserver { return s.observer }

// Clock returns the frame clock ticked by Update.
func (s *Stage) Clock() *TickClock { return s.clock }

// Hover returns the hover tracker.
func (s *Stage) Hover() *HoverTracker { return s.hover }

// Registry returns the preset table animators resolve against.
func (s *Stage) Registry() *Registry { return s.registry }

// Elapsed returns the stage time accumulated by Update.
func (s *Stage) Elapsed() time.Duration { return s.elapsed }

// NewGroup mounts a GroupOrchestrator on container, observed by the stage
// camera. Names are unique per kind among live animators; a taken name is a
// ConfigError.
func (s *Stage) NewGroup(container *Element, cfg GroupConfig) (*GroupOrchestrator, error) {
	if container == nil {
		return nil, &ConfigError{Field: "container", Err: ErrInvalidConfig}
	}
	name := cmp.Or(cfg.Name, container.Name)
	if g, ok := s.groups[name]; ok && !g.IsDisposed() {
		return nil, &ConfigError{Field: "name", Value: name, Err: ErrDuplicateName}
	}
	s.forward(BlockGroup, name, container, &cfg.OnStart, &cfg.OnComplete)
	g, err := NewGroupOrchestrator(container, s.observer, cfg, s.opts...)
	if err != nil {
		return nil, err
	}
	s.animators = append(s.animators, g)
	s.groups[name] = g
	return g, nil
}

// NewText mounts a SegmentedTextAnimator on container.
func (s *Stage) NewText(container *Element, cfg TextConfig) (*SegmentedTextAnimator, error) {
	if container == nil {
		return nil, &ConfigError{Field: "container", Err: ErrInvalidConfig}
	}
	name := cmp.Or(cfg.Name, container.Name)
	if a, ok := s.texts[name]; ok && !a.IsDisposed() {
		return nil, &ConfigError{Field: "name", Value: name, Err: ErrDuplicateName}
	}
	s.forward(BlockText, name, container, &cfg.OnStart, &cfg.OnComplete)
	a, err := NewSegmentedTextAnimator(container, s.observer, cfg, s.opts...)
	if err != nil {
		return nil, err
	}
	s.animators = append(s.animators, a)
	s.texts[name] = a
	return a, nil
}

// NewBorder starts a BorderAnimator on el, driven by the stage clock and
// paused by the stage hover tracker when configured to.
func (s *Stage) NewBorder(el *Element, cfg BorderConfig) (*BorderAnimator, error) {
	if el == nil {
		return nil, &ConfigError{Field: "element", Err: ErrInvalidConfig}
	}
	name := cmp.Or(cfg.Name, el.Name)
	if b, ok := s.borders[name]; ok && !b.IsDisposed() {
		return nil, &ConfigError{Field: "name", Value: name, Err: ErrDuplicateName}
	}
	b, err := NewBorderAnimator(el, s.clock, cfg, s.opts...)
	if err != nil {
		return nil, err
	}
	b.AttachHover(s.hover)
	s.borders[name] = b
	return b, nil
}

// Group returns the orchestrator registered under name.
func (s *Stage) Group(name string) (*GroupOrchestrator, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Text returns the text animator registered under name.
func (s *Stage) Text(name string) (*SegmentedTextAnimator, bool) {
	a, ok := s.texts[name]
	return a, ok
}

// Border returns the border animator registered under name.
func (s *Stage) Border(name string) (*BorderAnimator, bool) {
	b, ok := s.borders[name]
	return b, ok
}

// Groups returns the live orchestrators in creation order.
func (s *Stage) Groups() []*GroupOrchestrator {
	var out []*GroupOrchestrator
	for _, a := range s.animators {
		if g, ok := a.(*GroupOrchestrator); ok {
			out = append(out, g)
		}
	}
	return out
}

// Texts returns the live text animators in creation order.
func (s *Stage) Texts() []*SegmentedTextAnimator {
	var out []*SegmentedTextAnimator
	for _, a := range s.animators {
		if t, ok := a.(*SegmentedTextAnimator); ok {
			out = append(out, t)
		}
	}
	return out
}

// Borders returns the live border animators.
func (s *Stage) Borders() []*BorderAnimator {
	out := make([]*BorderAnimator, 0, len(s.borders))
	for _, b := range s.borders {
		if !b.IsDisposed() {
			out = append(out, b)
		}
	}
	return out
}

// SetStepDriver attaches a scripted input driver. Its steps run at the start
// of each Update.
func (s *Stage) SetStepDriver(d *StepDriver) {
	s.driver = d
}

// SetDebugMode enables per-frame timing stats and tree checks, logged at
// debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update advances the stage by dt seconds: scripted steps, pointer, camera
// scrolling and viewport membership, frame callbacks, then transitions.
func (s *Stage) Update(dt float32) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}

	if s.driver != nil {
		s.driver.step(s)
	}
	if !s.hover.ProcessInjected() {
		s.hover.Refresh()
	}

	s.camera.Update(dt)
	s.observer.Update()

	s.elapsed += time.Duration(float64(dt) * float64(time.Second))
	s.stats.frameRequests = s.clock.Pending()
	s.clock.Tick(s.elapsed)

	live := s.animators[:0]
	for _, a := range s.animators {
		if a.IsDisposed() {
			continue
		}
		a.Update(dt)
		live = append(live, a)
	}
	clear(s.animators[len(live):])
	s.animators = live
	s.prune()

	if s.debug {
		s.stats.updateTime = time.Since(start)
		s.stats.animators = len(s.animators)
		s.debugLog(s.stats)
	}
}

// prune drops disposed animators from the name indexes.
func (s *Stage) prune() {
	for name, g := range s.groups {
		if g.IsDisposed() {
			delete(s.groups, name)
		}
	}
	for name, a := range s.texts {
		if a.IsDisposed() {
			delete(s.texts, name)
		}
	}
	for name, b := range s.borders {
		if b.IsDisposed() {
			delete(s.borders, name)
		}
	}
}
