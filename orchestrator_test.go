package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCards returns a container with n child cards.
func newCards(n int) *Element {
	container := NewElement("section", Rect{Width: 800, Height: 400})
	for i := range n {
		container.AddChild(NewElement("card", Rect{X: float64(i) * 100, Width: 90, Height: 90}))
	}
	return container
}

// run advances g by total seconds in 1/8 s steps.
func run(g *GroupOrchestrator, total float64) {
	for range int(total * 8) {
		g.Update(0.125)
	}
}

type signals struct {
	starts    []VariantKey
	completes []VariantKey
}

func (s *signals) hook(cfg *GroupConfig) {
	cfg.OnStart = func(k VariantKey) { s.starts = append(s.starts, k) }
	cfg.OnComplete = func(k VariantKey) { s.completes = append(s.completes, k) }
}

func TestGroupOrchestrator_OnceStaggersAndLatches(t *testing.T) {
	container := newCards(3)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{Preset: "slide", Behavior: BehaviorOnce, StaggerDelay: F(0.1)}
	sig.hook(&cfg)

	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	for _, child := range container.Children() {
		assert.Equal(t, 0.0, child.Values.Opacity, "children start hidden")
		assert.Equal(t, 20.0, child.Values.Y)
	}
	assert.Zero(t, g.Transitions())

	obs.SetInView(container, true)
	assert.InDeltaSlice(t, []float64{0, 0.1, 0.2}, g.Offsets(), 1e-9)
	assert.Equal(t, VariantVisible, g.Target())
	assert.Zero(t, obs.Subscriptions(), "once releases its subscription after triggering")

	// At 0.125 s only the first card has started.
	g.Update(0.125)
	assert.Greater(t, container.ChildAt(0).Values.Opacity, 0.0)
	assert.Equal(t, 0.0, container.ChildAt(2).Values.Opacity)

	run(g, 1)
	assert.True(t, g.Settled())
	for _, child := range container.Children() {
		assert.Equal(t, 1.0, child.Values.Opacity)
		assert.Equal(t, 0.0, child.Values.Y)
	}

	obs.SetInView(container, false)
	obs.SetInView(container, true)
	run(g, 1)

	assert.Equal(t, 1, g.Transitions(), "once never re-animates")
	assert.Equal(t, []VariantKey{VariantVisible}, sig.starts)
	assert.Equal(t, []VariantKey{VariantVisible}, sig.completes)
}

func TestGroupOrchestrator_ImmediateAnimatesAtMount(t *testing.T) {
	container := newCards(2)
	g, err := NewGroupOrchestrator(container, nil, GroupConfig{Preset: "fade"})
	require.NoError(t, err)

	assert.Equal(t, VariantVisible, g.Target())
	assert.False(t, g.Settled())
	run(g, 2)
	assert.True(t, g.Settled())
	assert.Equal(t, 1.0, container.ChildAt(1).Values.Opacity)
}

func TestGroupOrchestrator_LoopReplaysOnEveryToggle(t *testing.T) {
	container := newCards(2)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{Preset: "fade", Behavior: BehaviorLoop}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	obs.SetInView(container, true)
	run(g, 2)
	obs.SetInView(container, false)
	assert.Equal(t, VariantHidden, g.Target())
	run(g, 2)
	assert.Equal(t, 0.0, container.ChildAt(0).Values.Opacity)

	obs.SetInView(container, true)
	run(g, 2)

	assert.Equal(t, 3, g.Transitions())
	assert.Equal(t, []VariantKey{VariantVisible, VariantHidden, VariantVisible}, sig.completes)
	assert.Equal(t, 1, obs.Subscriptions())
}

func TestGroupOrchestrator_LoopInterruptCancelsWithoutComplete(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{Preset: "fade", Behavior: BehaviorLoop}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	obs.SetInView(container, true)
	g.Update(0.125)
	obs.SetInView(container, false)
	run(g, 2)

	assert.Equal(t, []VariantKey{VariantVisible, VariantHidden}, sig.starts)
	assert.Equal(t, []VariantKey{VariantHidden}, sig.completes)
}

func TestGroupOrchestrator_ContinuousLoopVisibleAtMount(t *testing.T) {
	container := newCards(2)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{Preset: "slide", Behavior: BehaviorContinuousLoop}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	assert.Equal(t, VariantVisible, g.Target(), "visible without waiting for the viewport")
	run(g, 2)
	assert.True(t, g.Settled())
	assert.False(t, g.Looping(), "no micro-motion out of view")

	obs.SetInView(container, true)
	assert.True(t, g.Looping())
	assert.Equal(t, VariantLoop, g.Target())
	run(g, 10)
	assert.False(t, g.Settled(), "infinite loop never settles")

	obs.SetInView(container, false)
	assert.False(t, g.Looping())
	assert.Equal(t, VariantVisible, g.Target(), "leaving view settles back to visible, not hidden")
	run(g, 2)
	assert.Equal(t, 1.0, container.ChildAt(0).Values.Opacity)
	assert.NotContains(t, sig.completes, VariantLoop)
}

func TestGroupOrchestrator_ContinuousLoopInViewAtMountStartsLoopAfterEntry(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	watcher := obs.Observe(container, ObserveOptions{}, func(bool) {})
	obs.SetInView(container, true)

	g, err := NewGroupOrchestrator(container, obs, GroupConfig{Preset: "fade", Behavior: BehaviorContinuousLoop})
	require.NoError(t, err)
	assert.Equal(t, VariantVisible, g.Target())
	assert.True(t, g.Triggered())

	run(g, 2)
	assert.True(t, g.Looping())
	assert.Equal(t, VariantLoop, g.Target())
	obs.Unobserve(watcher)
}

func TestGroupOrchestrator_PulseCycle(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{
		Preset:        "fade",
		Behavior:      BehaviorPulseLoop,
		Duration:      F(0.5),
		PauseDuration: F(0.25),
	}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	obs.SetInView(container, true)
	assert.Equal(t, VariantPulseLoop, g.Target())

	g.Update(0.5)
	assert.Equal(t, VariantHidden, g.Target(), "pulse returns to hidden")
	g.Update(0.5)
	assert.True(t, g.Settled(), "resting between pulses")

	g.Update(0.125)
	assert.Equal(t, VariantHidden, g.Target())
	g.Update(0.125)
	assert.Equal(t, VariantPulseLoop, g.Target(), "next cycle after the pause")

	obs.SetInView(container, false)
	assert.Equal(t, VariantHidden, g.Target())
	run(g, 3)
	assert.Equal(t, []VariantKey{VariantPulseLoop, VariantHidden, VariantPulseLoop, VariantHidden}, sig.starts)
	assert.Equal(t, 0.0, container.ChildAt(0).Values.Opacity)
}

func TestGroupOrchestrator_PulseRestCarriesLeftover(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{
		Preset:        "fade",
		Behavior:      BehaviorPulseLoop,
		Duration:      F(0.5),
		PauseDuration: F(0.25),
	}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	obs.SetInView(container, true)
	g.Update(0.5)
	g.Update(0.5)
	require.True(t, g.Settled())

	// 0.25 s of this frame finishes the rest, the other 0.25 s runs the pulse.
	g.Update(0.5)
	assert.Equal(t, VariantPulseLoop, g.Target())
	g.Update(0.25)
	assert.Equal(t, VariantHidden, g.Target(), "pulse finished on schedule")
	assert.Equal(t, []VariantKey{VariantPulseLoop, VariantHidden, VariantPulseLoop, VariantHidden}, sig.starts)
}

func TestGroupOrchestrator_AllChildrenUnmountedSkipsComplete(t *testing.T) {
	container := newCards(2)
	var sig signals
	cfg := GroupConfig{Preset: "fade", Behavior: BehaviorImmediate}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, nil, cfg)
	require.NoError(t, err)

	g.Update(0.05)
	container.ChildAt(1).Dispose()
	container.ChildAt(0).Dispose()
	g.Update(0.05)

	assert.Equal(t, []VariantKey{VariantVisible}, sig.starts)
	assert.Empty(t, sig.completes)
	assert.True(t, g.Settled())
}

func TestGroupOrchestrator_PartialUnmountStillCompletes(t *testing.T) {
	container := newCards(2)
	var sig signals
	cfg := GroupConfig{Preset: "fade", Behavior: BehaviorImmediate}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, nil, cfg)
	require.NoError(t, err)

	g.Update(0.05)
	container.ChildAt(1).Dispose()
	run(g, 2)

	assert.Equal(t, []VariantKey{VariantVisible}, sig.completes)
}

func TestGroupOrchestrator_SetModeRestartsFromHidden(t *testing.T) {
	container := newCards(2)
	obs := NewManualObserver()
	g, err := NewGroupOrchestrator(container, obs, GroupConfig{Preset: "fade"})
	require.NoError(t, err)
	run(g, 2)
	require.Equal(t, 1.0, container.ChildAt(0).Values.Opacity)

	assert.ErrorIs(t, g.SetMode(BehaviorMode(42)), ErrInvalidConfig)

	require.NoError(t, g.SetMode(BehaviorOnce))
	assert.Equal(t, BehaviorOnce, g.Mode())
	assert.Equal(t, VariantHidden, g.Target())
	assert.Equal(t, 0.0, container.ChildAt(0).Values.Opacity)
	assert.False(t, g.Triggered())

	obs.SetInView(container, true)
	assert.Equal(t, VariantVisible, g.Target())
}

func TestGroupOrchestrator_SetModeNeedsObserver(t *testing.T) {
	g, err := NewGroupOrchestrator(newCards(1), nil, GroupConfig{Preset: "fade"})
	require.NoError(t, err)

	assert.ErrorIs(t, g.SetMode(BehaviorLoop), ErrInvalidConfig)
	assert.Equal(t, BehaviorImmediate, g.Mode())
}

func TestGroupOrchestrator_ReplayResetsLatch(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	g, err := NewGroupOrchestrator(container, obs, GroupConfig{Preset: "fade", Behavior: BehaviorOnce})
	require.NoError(t, err)
	obs.SetInView(container, true)
	run(g, 2)

	g.Replay()
	assert.False(t, g.Triggered())
	assert.Equal(t, VariantHidden, g.Target())
	assert.Equal(t, 1, obs.Subscriptions(), "replay subscribes again")

	obs.SetInView(container, true)
	assert.Equal(t, VariantVisible, g.Target())
	assert.Equal(t, 2, g.Transitions())
}

func TestGroupOrchestrator_ZeroChildren(t *testing.T) {
	var sig signals
	cfg := GroupConfig{Preset: "fade"}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(NewElement("empty", Rect{}), nil, cfg)
	require.NoError(t, err)

	assert.True(t, g.Settled())
	assert.Empty(t, g.Offsets())
	g.Update(1)
	assert.Empty(t, sig.starts)
	assert.Empty(t, sig.completes)
}

func TestGroupOrchestrator_DisposeSuppressesComplete(t *testing.T) {
	container := newCards(2)
	obs := NewManualObserver()
	var sig signals
	cfg := GroupConfig{Preset: "fade", Behavior: BehaviorLoop}
	sig.hook(&cfg)
	g, err := NewGroupOrchestrator(container, obs, cfg)
	require.NoError(t, err)

	obs.SetInView(container, true)
	g.Update(0.125)
	container.Dispose()

	assert.True(t, g.IsDisposed())
	assert.Zero(t, obs.Subscriptions())
	run(g, 2)
	assert.Empty(t, sig.completes)
}

func TestGroupOrchestrator_ConfigErrors(t *testing.T) {
	obs := NewManualObserver()
	tests := []struct {
		name string
		cfg  GroupConfig
		obs  ViewportObserver
		want error
	}{
		{name: "unknown preset", cfg: GroupConfig{Preset: "nope"}, want: ErrUnknownPreset},
		{name: "no preset or variants", cfg: GroupConfig{}, want: ErrUnknownPreset},
		{name: "negative stagger", cfg: GroupConfig{Preset: "fade", StaggerDelay: F(-1)}, want: ErrInvalidConfig},
		{name: "zero duration", cfg: GroupConfig{Preset: "fade", Duration: F(0)}, want: ErrInvalidDuration},
		{name: "bad mode", cfg: GroupConfig{Preset: "fade", Behavior: BehaviorMode(9)}, obs: obs, want: ErrInvalidConfig},
		{name: "no observer", cfg: GroupConfig{Preset: "fade", Behavior: BehaviorOnce}, want: ErrInvalidConfig},
		{name: "bad threshold", cfg: GroupConfig{Preset: "fade", Observe: ObserveOptions{Threshold: 2}}, want: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroupOrchestrator(newCards(1), tt.obs, tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewGroupOrchestrator(nil, nil, GroupConfig{Preset: "fade"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGroupOrchestrator_CustomVariantsOverridePreset(t *testing.T) {
	container := newCards(1)
	cfg := GroupConfig{
		Preset:   "slide",
		Variants: &VariantSet{Hidden: Variant{Style: Style{Y: F(100)}}},
	}
	g, err := NewGroupOrchestrator(container, nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, 100.0, *g.Variants().Hidden.Y)
	assert.Equal(t, 0.0, *g.Variants().Hidden.Opacity)
}

func TestGroupOrchestrator_State(t *testing.T) {
	container := newCards(1)
	obs := NewManualObserver()
	g, err := NewGroupOrchestrator(container, obs, GroupConfig{Name: "features", Preset: "fade", Behavior: BehaviorLoop})
	require.NoError(t, err)
	obs.SetInView(container, true)

	assert.Equal(t, GroupState{
		Name:        "features",
		Mode:        BehaviorLoop,
		Target:      VariantVisible,
		InView:      true,
		Triggered:   true,
		Transitions: 1,
	}, g.State())
}

func TestStartOffsets(t *testing.T) {
	assert.Nil(t, StartOffsets(0, 0.5, 0.1))
	got := StartOffsets(5, 0.2, 0.05)
	require.Len(t, got, 5)
	assert.InDelta(t, 0.2, got[0], 1e-12)
	assert.IsNonDecreasing(t, got)
	assert.InDelta(t, 0.4, got[4], 1e-12)
}
