package motion

import (
	"log/slog"
)

// GroupConfig configures a GroupOrchestrator.
type GroupConfig struct {
	// Name labels log output.
	Name string `mapstructure:"name"`
	// Preset names a registered VariantSet. Variants, when set, override it
	// field by field; with no Preset, Variants is used alone.
	Preset   string      `mapstructure:"preset"`
	Variants *VariantSet `mapstructure:"variants"`

	Behavior BehaviorMode `mapstructure:"viewportBehavior"`

	// StaggerDelay is the per-child start offset in seconds. Nil falls back to
	// the variant's staggerChildren.
	StaggerDelay *float64 `mapstructure:"staggerDelay"`
	// Duration and PauseDuration override the loop and pulseLoop timing only.
	Duration      *float64 `mapstructure:"duration"`
	PauseDuration *float64 `mapstructure:"pauseDuration"`

	Observe ObserveOptions `mapstructure:"observe"`

	// OnStart and OnComplete fire once per transition with the variant being
	// animated to. OnComplete is not called for cancelled transitions, nor for
	// infinitely repeating loop transitions.
	OnStart    func(VariantKey) `mapstructure:"-"`
	OnComplete func(VariantKey) `mapstructure:"-"`
}

// Validate checks the settings that do not depend on the preset table.
func (c GroupConfig) Validate() error {
	if c.Behavior > BehaviorPulseLoop {
		return &ConfigError{Field: "viewportBehavior", Value: c.Behavior, Err: ErrInvalidConfig}
	}
	if c.StaggerDelay != nil && *c.StaggerDelay < 0 {
		return &ConfigError{Field: "staggerDelay", Value: *c.StaggerDelay, Err: ErrInvalidConfig}
	}
	if c.Duration != nil && *c.Duration <= 0 {
		return &ConfigError{Field: "duration", Value: *c.Duration, Err: ErrInvalidDuration}
	}
	if c.PauseDuration != nil && *c.PauseDuration < 0 {
		return &ConfigError{Field: "pauseDuration", Value: *c.PauseDuration, Err: ErrInvalidDuration}
	}
	if c.Preset == "" && c.Variants == nil {
		return &ConfigError{Field: "preset", Err: ErrUnknownPreset}
	}
	return c.Observe.validate()
}

// pulsePhase tracks where a pulse-loop cycle is.
type pulsePhase uint8

const (
	pulseOff pulsePhase = iota
	pulseIn             // animating to pulseLoop
	pulseOut            // animating back to hidden
	pulseRest           // pausing before the next cycle
)

// GroupOrchestrator coordinates the transitions of a container's children
// between the variants of a VariantSet under one BehaviorMode. It is driven by
// viewport membership events and by Update(dt) from the host loop; with no
// transition running, Update does nothing.
type GroupOrchestrator struct {
	name      string
	container *Element
	observer  ViewportObserver
	sub       Subscription
	unhook    func()
	logger    *slog.Logger

	cfg  GroupConfig
	set  VariantSet
	mode BehaviorMode

	tweens  []*TweenGroup
	offsets []float64
	target  VariantKey
	settled bool

	inView      bool
	triggered   bool
	looping     bool
	pulse       pulsePhase
	restLeft    float64
	transitions int
	disposed    bool
}

// NewGroupOrchestrator mounts an orchestrator over container's children.
// observer may be nil only for BehaviorImmediate. Configuration problems are
// returned as *ConfigError.
func NewGroupOrchestrator(container *Element, observer ViewportObserver, cfg GroupConfig, opts ...Option) (*GroupOrchestrator, error) {
	if container == nil {
		return nil, &ConfigError{Field: "container", Err: ErrInvalidConfig}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	set, err := o.registry.Resolve(cfg.Preset, cfg.Variants)
	if err != nil {
		return nil, err
	}
	if observer == nil && cfg.Behavior != BehaviorImmediate {
		return nil, &ConfigError{Field: "observer", Value: cfg.Behavior, Err: ErrInvalidConfig}
	}

	name := cfg.Name
	if name == "" {
		name = container.Name
	}
	g := &GroupOrchestrator{
		name:      name,
		container: container,
		observer:  observer,
		logger:    o.logger.With("group", name),
		cfg:       cfg,
		set:       set,
		settled:   true,
	}
	g.unhook = container.OnDispose(g.Dispose)
	g.mount(cfg.Behavior)
	return g, nil
}

// mount puts every child in the hidden state and applies the entry rule of
// mode.
func (g *GroupOrchestrator) mount(mode BehaviorMode) {
	g.mode = mode
	g.triggered = false
	g.looping = false
	g.pulse = pulseOff
	g.restLeft = 0
	g.cancelTweens()
	g.target = VariantHidden
	g.settled = true
	for _, child := range g.container.Children() {
		SetInstant(child, g.set.Hidden)
	}

	switch mode {
	case BehaviorImmediate:
		g.release()
		g.transition(VariantVisible)
		return
	case BehaviorContinuousLoop:
		g.transition(VariantVisible)
	}

	if !g.sub.Valid() && g.observer != nil {
		g.sub = g.observer.Observe(g.container, g.cfg.Observe, g.onViewChange)
		g.inView = currentMembership(g.observer, g.sub).InView
	}
	if g.inView {
		g.enterView()
	}
}

// membershipReporter is implemented by observers that can report the current
// state of a subscription.
type membershipReporter interface {
	Membership(sub Subscription) (Membership, bool)
}

func currentMembership(obs ViewportObserver, sub Subscription) Membership {
	if r, ok := obs.(membershipReporter); ok {
		m, _ := r.Membership(sub)
		return m
	}
	return Membership{}
}

// onViewChange is the membership callback.
func (g *GroupOrchestrator) onViewChange(in bool) {
	if g.disposed || in == g.inView {
		return
	}
	g.inView = in
	g.logger.Debug("viewport", "inView", in, "mode", g.mode)
	if in {
		g.enterView()
	} else {
		g.leaveView()
	}
}

func (g *GroupOrchestrator) enterView() {
	switch g.mode {
	case BehaviorOnce:
		if g.triggered {
			return
		}
		// Latch before starting so a re-entrant event sees it set.
		g.triggered = true
		g.transition(VariantVisible)
		g.release()
	case BehaviorLoop:
		g.triggered = true
		g.transition(VariantVisible)
	case BehaviorContinuousLoop:
		g.triggered = true
		if g.target == VariantVisible && g.settled {
			g.startLoop()
		}
	case BehaviorPulseLoop:
		g.triggered = true
		if g.pulse == pulseOff {
			g.pulse = pulseIn
			g.transition(VariantPulseLoop)
		}
	}
}

func (g *GroupOrchestrator) leaveView() {
	switch g.mode {
	case BehaviorLoop:
		g.transition(VariantHidden)
	case BehaviorContinuousLoop:
		if g.looping {
			g.looping = false
			g.transition(VariantVisible)
		}
	case BehaviorPulseLoop:
		if g.pulse != pulseOff {
			g.pulse = pulseOff
			g.restLeft = 0
			g.transition(VariantHidden)
		}
	}
}

// release drops the viewport subscription once no further events matter.
func (g *GroupOrchestrator) release() {
	if g.sub.Valid() && g.observer != nil {
		g.observer.Unobserve(g.sub)
	}
	g.sub = Subscription{}
	// No longer informed; re-read on the next subscription.
	g.inView = false
}

// effective returns the variant for key with the config's timing overrides.
func (g *GroupOrchestrator) effective(key VariantKey) Variant {
	v := g.set.Variant(key)
	if key != VariantLoop && key != VariantPulseLoop {
		return v
	}
	if g.cfg.Duration != nil {
		v.Transition.Duration = F(*g.cfg.Duration)
	}
	if key == VariantPulseLoop {
		// Pulse cycles are sequenced here, not by the tween.
		v.Transition.Repeat = nil
		v.Transition.RepeatDelay = nil
	}
	return v
}

// pauseDuration is the rest between pulse cycles.
func (g *GroupOrchestrator) pauseDuration() float64 {
	if g.cfg.PauseDuration != nil {
		return *g.cfg.PauseDuration
	}
	return g.set.PulseLoop.Transition.repeatDelay()
}

// staggerDelay is the per-child offset for a transition to v.
func (g *GroupOrchestrator) staggerDelay(v Variant) float64 {
	if g.cfg.StaggerDelay != nil {
		return *g.cfg.StaggerDelay
	}
	if v.Transition.StaggerChildren != nil {
		return *v.Transition.StaggerChildren
	}
	return g.set.Visible.Transition.stagger()
}

// StartOffsets returns the start offset of each of n children: delay +
// i*stagger.
func StartOffsets(n int, delay, stagger float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = delay + float64(i)*stagger
	}
	return out
}

// transition cancels whatever is running and starts every child toward key.
func (g *GroupOrchestrator) transition(key VariantKey) {
	g.cancelTweens()
	g.target = key
	children := g.container.Children()
	if len(children) == 0 {
		g.offsets = nil
		g.settled = true
		return
	}

	v := g.effective(key)
	g.offsets = StartOffsets(len(children), v.Transition.delayChildren(), g.staggerDelay(v))
	for i, child := range children {
		g.tweens = append(g.tweens, TweenVariant(child, v, g.offsets[i]))
	}
	g.settled = false
	g.transitions++
	g.logger.Debug("transition start", "variant", key, "children", len(children), "mode", g.mode)
	if g.cfg.OnStart != nil {
		g.cfg.OnStart(key)
	}
}

func (g *GroupOrchestrator) startLoop() {
	if g.set.Loop.Empty() {
		return
	}
	g.looping = true
	g.transition(VariantLoop)
}

// cancelTweens stops the running transition without completion callbacks.
func (g *GroupOrchestrator) cancelTweens() {
	if !g.settled && len(g.tweens) > 0 {
		g.logger.Debug("transition cancel", "variant", g.target)
	}
	for _, tw := range g.tweens {
		tw.Cancel()
	}
	clear(g.tweens)
	g.tweens = g.tweens[:0]
}

// Update advances the running transition by dt seconds.
func (g *GroupOrchestrator) Update(dt float32) {
	if g.disposed {
		return
	}
	if g.pulse == pulseRest {
		g.restLeft -= float64(dt)
		if g.restLeft > 0 {
			return
		}
		// The rest of this frame belongs to the new cycle.
		dt = float32(-g.restLeft)
		g.restLeft = 0
		g.pulse = pulseIn
		g.transition(VariantPulseLoop)
		if dt <= 0 {
			return
		}
	}
	if g.settled {
		return
	}

	allDone, cancelled := true, 0
	for _, tw := range g.tweens {
		tw.Update(dt)
		switch {
		case !tw.Done:
			allDone = false
		case tw.Cancelled():
			cancelled++
		}
	}
	if !allDone {
		return
	}
	if cancelled == len(g.tweens) {
		// Every child was unmounted mid-transition.
		g.settled = true
		g.logger.Debug("transition dropped", "variant", g.target)
		return
	}
	g.complete()
}

// complete runs once when every child of the current transition finished.
func (g *GroupOrchestrator) complete() {
	g.settled = true
	key := g.target
	g.logger.Debug("transition complete", "variant", key)
	if g.cfg.OnComplete != nil {
		g.cfg.OnComplete(key)
	}
	if g.disposed || g.target != key || !g.settled {
		// The callback started something else.
		return
	}

	switch g.mode {
	case BehaviorContinuousLoop:
		if key == VariantVisible && g.inView {
			g.startLoop()
		}
	case BehaviorPulseLoop:
		switch g.pulse {
		case pulseIn:
			g.pulse = pulseOut
			g.transition(VariantHidden)
		case pulseOut:
			g.pulse = pulseRest
			g.restLeft = g.pauseDuration()
		}
	}
}

// SetMode switches the behavior at runtime. Every child restarts from hidden.
func (g *GroupOrchestrator) SetMode(mode BehaviorMode) error {
	if mode > BehaviorPulseLoop {
		return &ConfigError{Field: "viewportBehavior", Value: mode, Err: ErrInvalidConfig}
	}
	if g.disposed {
		return nil
	}
	if mode != BehaviorImmediate && g.observer == nil {
		return &ConfigError{Field: "observer", Value: mode, Err: ErrInvalidConfig}
	}
	g.logger.Debug("mode switch", "from", g.mode, "to", mode)
	g.mount(mode)
	return nil
}

// Replay restarts the current mode from hidden.
func (g *GroupOrchestrator) Replay() {
	if g.disposed {
		return
	}
	g.mount(g.mode)
}

// Mode returns the active behavior.
func (g *GroupOrchestrator) Mode() BehaviorMode { return g.mode }

// Target returns the variant the children are animating to, or rest at.
func (g *GroupOrchestrator) Target() VariantKey { return g.target }

// Settled reports whether no transition is running.
func (g *GroupOrchestrator) Settled() bool { return g.settled }

// Triggered reports whether the group has ever entered the viewport.
func (g *GroupOrchestrator) Triggered() bool { return g.triggered }

// Looping reports whether the continuous micro-motion is running.
func (g *GroupOrchestrator) Looping() bool { return g.looping }

// Transitions returns how many transitions have started since construction.
func (g *GroupOrchestrator) Transitions() int { return g.transitions }

// Offsets returns the per-child start offsets of the current transition. The
// returned slice MUST NOT be mutated by the caller.
func (g *GroupOrchestrator) Offsets() []float64 { return g.offsets }

// GroupState is a snapshot of an orchestrator.
type GroupState struct {
	Name        string
	Mode        BehaviorMode
	Target      VariantKey
	Settled     bool
	InView      bool
	Triggered   bool
	Looping     bool
	Transitions int
}

// State returns a snapshot for hosts and debug overlays.
func (g *GroupOrchestrator) State() GroupState {
	return GroupState{
		Name:        g.name,
		Mode:        g.mode,
		Target:      g.target,
		Settled:     g.settled,
		InView:      g.inView,
		Triggered:   g.triggered,
		Looping:     g.looping,
		Transitions: g.transitions,
	}
}

// Variants returns the resolved VariantSet.
func (g *GroupOrchestrator) Variants() VariantSet { return g.set }

// Dispose unmounts the orchestrator: the running transition stops without a
// completion callback and the viewport subscription is released. Disposing
// the container calls Dispose automatically.
func (g *GroupOrchestrator) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.cancelTweens()
	g.settled = true
	g.pulse = pulseOff
	g.looping = false
	g.release()
	if g.unhook != nil {
		g.unhook()
		g.unhook = nil
	}
	g.logger.Debug("disposed")
}

// IsDisposed reports whether Dispose has run.
func (g *GroupOrchestrator) IsDisposed() bool { return g.disposed }
