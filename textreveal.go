package motion

import (
	"log/slog"
)

// Base stagger intervals per split unit, in seconds, at speedReveal 1.
const (
	BaseStaggerChar = 0.03
	BaseStaggerWord = 0.05
	BaseStaggerLine = 0.1

	// BaseSegmentDuration is the per-segment transition at speedSegment 1.
	BaseSegmentDuration = 0.3

	// DefaultTextPreset is used when a TextConfig names no preset.
	DefaultTextPreset = "fade"
)

// StaggerInterval returns the delay between consecutive segment starts.
func StaggerInterval(per SplitMode, speedReveal float64) float64 {
	if speedReveal <= 0 {
		speedReveal = 1
	}
	switch per {
	case SplitChar:
		return BaseStaggerChar / speedReveal
	case SplitLine:
		return BaseStaggerLine / speedReveal
	default:
		return BaseStaggerWord / speedReveal
	}
}

// SegmentDuration returns the transition duration of one segment.
func SegmentDuration(speedSegment float64) float64 {
	if speedSegment <= 0 {
		speedSegment = 1
	}
	return BaseSegmentDuration / speedSegment
}

// TextConfig configures a SegmentedTextAnimator.
type TextConfig struct {
	Name string    `mapstructure:"name"`
	Text string    `mapstructure:"text"`
	Per  SplitMode `mapstructure:"per"`

	Preset   string      `mapstructure:"preset"`
	Variants *VariantSet `mapstructure:"variants"`

	// Behavior must be BehaviorImmediate, BehaviorOnce or BehaviorLoop.
	Behavior BehaviorMode `mapstructure:"viewportBehavior"`

	// Zero speeds mean 1.
	SpeedReveal  float64 `mapstructure:"speedReveal"`
	SpeedSegment float64 `mapstructure:"speedSegment"`

	// Trigger controls presence of the block. Nil means true.
	Trigger *bool `mapstructure:"trigger"`

	Observe ObserveOptions `mapstructure:"observe"`

	OnStart    func(VariantKey) `mapstructure:"-"`
	OnComplete func(VariantKey) `mapstructure:"-"`
}

// Validate checks the settings that do not depend on the preset table.
func (c TextConfig) Validate() error {
	switch c.Behavior {
	case BehaviorImmediate, BehaviorOnce, BehaviorLoop:
	default:
		return &ConfigError{Field: "viewportBehavior", Value: c.Behavior, Err: ErrInvalidConfig}
	}
	if c.Per > SplitLine {
		return &ConfigError{Field: "per", Value: c.Per, Err: ErrInvalidConfig}
	}
	if c.SpeedReveal < 0 {
		return &ConfigError{Field: "speedReveal", Value: c.SpeedReveal, Err: ErrInvalidConfig}
	}
	if c.SpeedSegment < 0 {
		return &ConfigError{Field: "speedSegment", Value: c.SpeedSegment, Err: ErrInvalidConfig}
	}
	return c.Observe.validate()
}

// TextPhase is the lifecycle position of a text block.
type TextPhase uint8

const (
	TextHidden   TextPhase = iota // mounted, waiting for its trigger
	TextEntering                  // segments animating in
	TextShown                     // every segment visible
	TextExiting                   // segments animating out, last first
	TextRemoved                   // trigger is false and the exit finished
)

func (p TextPhase) String() string {
	switch p {
	case TextHidden:
		return "hidden"
	case TextEntering:
		return "entering"
	case TextShown:
		return "shown"
	case TextExiting:
		return "exiting"
	case TextRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// SegmentedTextAnimator reveals a text block segment by segment. Each segment
// gets its own child Element under the container so hosts can render and
// position them independently.
type SegmentedTextAnimator struct {
	container *Element
	observer  ViewportObserver
	sub       Subscription
	unhook    func()
	logger    *slog.Logger

	cfg      TextConfig
	set      VariantSet
	segs     []Segment
	elems    []*Element
	stagger  float64
	duration float64

	phase        TextPhase
	target       VariantKey
	tweens       []*TweenGroup
	removeOnExit bool

	present   bool
	inView    bool
	triggered bool
	disposed  bool
}

// NewSegmentedTextAnimator splits cfg.Text into segments under container and
// mounts the block.
func NewSegmentedTextAnimator(container *Element, observer ViewportObserver, cfg TextConfig, opts ...Option) (*SegmentedTextAnimator, error) {
	if container == nil {
		return nil, &ConfigError{Field: "container", Err: ErrInvalidConfig}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if observer == nil && cfg.Behavior != BehaviorImmediate {
		return nil, &ConfigError{Field: "observer", Value: cfg.Behavior, Err: ErrInvalidConfig}
	}
	o := buildOptions(opts)
	preset := cfg.Preset
	if preset == "" && cfg.Variants == nil {
		preset = DefaultTextPreset
	}
	set, err := o.registry.Resolve(preset, cfg.Variants)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = container.Name
	}
	a := &SegmentedTextAnimator{
		container: container,
		observer:  observer,
		logger:    o.logger.With("text", name),
		cfg:       cfg,
		set:       set,
		stagger:   StaggerInterval(cfg.Per, cfg.SpeedReveal),
		duration:  SegmentDuration(cfg.SpeedSegment),
		present:   cfg.Trigger == nil || *cfg.Trigger,
	}
	a.unhook = container.OnDispose(a.Dispose)
	a.build()

	if !a.present {
		a.phase = TextRemoved
		container.Present = false
	}
	if cfg.Behavior != BehaviorImmediate {
		a.sub = observer.Observe(container, cfg.Observe, a.onViewChange)
		a.inView = currentMembership(observer, a.sub).InView
	}
	if a.present {
		a.mountEntry()
	}
	return a, nil
}

// build replaces the segment elements with fresh hidden ones for the current
// text.
func (a *SegmentedTextAnimator) build() {
	for _, el := range a.elems {
		el.Dispose()
	}
	a.segs = Split(a.cfg.Text, a.cfg.Per)
	a.elems = make([]*Element, len(a.segs))
	for i, s := range a.segs {
		el := NewElement(s.Text, Rect{})
		el.UserData = s
		SetInstant(el, a.set.Hidden)
		a.container.AddChild(el)
		a.elems[i] = el
	}
}

// mountEntry applies the behavior's entry rule for a freshly present block.
func (a *SegmentedTextAnimator) mountEntry() {
	a.phase = TextHidden
	switch a.cfg.Behavior {
	case BehaviorImmediate:
		a.enter()
	default:
		if a.inView {
			a.enterView()
		}
	}
}

func (a *SegmentedTextAnimator) onViewChange(in bool) {
	if a.disposed || in == a.inView {
		return
	}
	a.inView = in
	if !a.present {
		return
	}
	if in {
		a.enterView()
	} else if a.cfg.Behavior == BehaviorLoop {
		a.exit()
	}
}

func (a *SegmentedTextAnimator) enterView() {
	switch a.cfg.Behavior {
	case BehaviorOnce:
		if a.triggered {
			return
		}
		a.triggered = true
		a.enter()
	case BehaviorLoop:
		a.triggered = true
		a.enter()
	}
}

// enter animates every segment to visible in index order.
func (a *SegmentedTextAnimator) enter() {
	if a.phase == TextEntering || a.phase == TextShown {
		return
	}
	a.removeOnExit = false
	a.phase = TextEntering
	a.run(VariantVisible, false)
}

// exit animates every segment to hidden, last segment first.
func (a *SegmentedTextAnimator) exit() {
	if a.phase == TextHidden || a.phase == TextRemoved {
		if a.removeOnExit {
			a.finishRemoval()
		}
		return
	}
	if a.phase == TextExiting {
		return
	}
	a.phase = TextExiting
	a.run(VariantHidden, true)
}

// StartDelay returns the start offset of segment i for an enter (reverse
// false) or exit (reverse true) transition.
func (a *SegmentedTextAnimator) StartDelay(i int, reverse bool) float64 {
	if reverse {
		i = len(a.segs) - 1 - i
	}
	return float64(i) * a.stagger
}

func (a *SegmentedTextAnimator) run(key VariantKey, reverse bool) {
	a.cancelTweens()
	a.target = key
	if len(a.elems) == 0 {
		a.settle()
		return
	}
	v := a.set.Variant(key)
	v.Transition.Duration = F(a.duration)
	v.Transition.Repeat = nil
	for i, el := range a.elems {
		a.tweens = append(a.tweens, TweenVariant(el, v, a.StartDelay(i, reverse)))
	}
	a.logger.Debug("transition start", "variant", key, "segments", len(a.elems), "per", a.cfg.Per)
	if a.cfg.OnStart != nil {
		a.cfg.OnStart(key)
	}
}

func (a *SegmentedTextAnimator) cancelTweens() {
	for _, tw := range a.tweens {
		tw.Cancel()
	}
	clear(a.tweens)
	a.tweens = a.tweens[:0]
}

// Update advances the running transition by dt seconds.
func (a *SegmentedTextAnimator) Update(dt float32) {
	if a.disposed || len(a.tweens) == 0 {
		return
	}
	allDone := true
	for _, tw := range a.tweens {
		tw.Update(dt)
		if !tw.Done {
			allDone = false
		}
	}
	if !allDone {
		return
	}
	key := a.target
	a.cancelTweens()
	a.logger.Debug("transition complete", "variant", key)
	a.settle()
	if a.cfg.OnComplete != nil {
		a.cfg.OnComplete(key)
	}
}

// settle moves the phase forward at the end of a transition.
func (a *SegmentedTextAnimator) settle() {
	switch a.phase {
	case TextEntering:
		a.phase = TextShown
	case TextExiting:
		a.phase = TextHidden
		if a.removeOnExit {
			a.finishRemoval()
		}
	}
}

func (a *SegmentedTextAnimator) finishRemoval() {
	a.removeOnExit = false
	a.phase = TextRemoved
	a.container.Present = false
}

// SetTrigger shows or removes the block. Removing animates the segments out in
// reverse order before the container is marked not present; showing again
// remounts it and re-applies the behavior's entry rule.
func (a *SegmentedTextAnimator) SetTrigger(on bool) {
	if a.disposed || on == a.present {
		return
	}
	a.present = on
	if on {
		a.cancelTweens()
		a.removeOnExit = false
		a.triggered = false
		for _, el := range a.elems {
			SetInstant(el, a.set.Hidden)
		}
		a.container.Present = true
		a.mountEntry()
		return
	}
	a.removeOnExit = true
	a.exit()
}

// SetText replaces the text. Segments are recomputed only when the text
// actually changed; a block that was entering or shown replays its entry.
func (a *SegmentedTextAnimator) SetText(text string) {
	if a.disposed || text == a.cfg.Text {
		return
	}
	a.cfg.Text = text
	a.cancelTweens()
	a.build()
	switch a.phase {
	case TextEntering, TextShown:
		a.phase = TextHidden
		a.enter()
	case TextExiting:
		a.phase = TextHidden
		if a.removeOnExit {
			a.finishRemoval()
		}
	}
}

// Phase returns the lifecycle position.
func (a *SegmentedTextAnimator) Phase() TextPhase { return a.phase }

// Segments returns the current segments. The returned slice MUST NOT be
// mutated by the caller.
func (a *SegmentedTextAnimator) Segments() []Segment { return a.segs }

// SegmentElements returns the element of each segment, in segment order.
func (a *SegmentedTextAnimator) SegmentElements() []*Element { return a.elems }

// Stagger returns the interval between segment starts.
func (a *SegmentedTextAnimator) Stagger() float64 { return a.stagger }

// Duration returns the per-segment transition duration.
func (a *SegmentedTextAnimator) Duration() float64 { return a.duration }

// Present reports whether the block is mounted (trigger true or exit running).
func (a *SegmentedTextAnimator) Present() bool { return a.container.Present }

// Dispose unmounts the animator. A running transition stops without a
// completion callback.
func (a *SegmentedTextAnimator) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.cancelTweens()
	if a.sub.Valid() {
		a.observer.Unobserve(a.sub)
		a.sub = Subscription{}
	}
	if a.unhook != nil {
		a.unhook()
		a.unhook = nil
	}
	a.logger.Debug("disposed")
}

// IsDisposed reports whether Dispose has run.
func (a *SegmentedTextAnimator) IsDisposed() bool { return a.disposed }
