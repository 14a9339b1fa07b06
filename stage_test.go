package motion

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
viewport: {width: 800, height: 600}
page: {width: 800, height: 2400}
blocks:
  - kind: text
    name: headline
    bounds: {x: 40, y: 80, width: 720, height: 60}
    props: {text: "Hello world", per: word}
  - kind: group
    name: features
    bounds: {x: 40, y: 900, width: 720, height: 200}
    children: 3
    props: {preset: slide, viewportBehavior: once, staggerDelay: 0.1}
  - kind: border
    name: cta
    bounds: {x: 300, y: 300, width: 200, height: 60}
    props: {duration: 2000, radii: 12, pauseOnHover: true}
`

const frameDT = float32(1.0 / 60)

func mountTestScene(t *testing.T, opts ...Option) *Stage {
	t.Helper()
	f, err := LoadScene([]byte(testScene))
	require.NoError(t, err)
	s := NewStage(f.Viewport, opts...)
	require.NoError(t, s.Mount(f))
	return s
}

func updateFrames(s *Stage, n int) {
	for range n {
		s.Update(frameDT)
	}
}

func TestStage_MountBuildsBlocks(t *testing.T) {
	s := mountTestScene(t)

	assert.Equal(t, 3, s.Root().NumChildren())
	_, ok := s.Text("headline")
	assert.True(t, ok)
	g, ok := s.Group("features")
	require.True(t, ok)
	assert.Equal(t, BehaviorOnce, g.Mode())
	b, ok := s.Border("cta")
	require.True(t, ok)
	assert.Len(t, s.Groups(), 1)
	assert.Len(t, s.Texts(), 1)
	assert.Len(t, s.Borders(), 1)
	assert.True(t, s.Camera().BoundsEnabled)

	container := g.container
	require.Equal(t, 3, container.NumChildren())
	assert.Equal(t, "features/0", container.ChildAt(0).Name)
	assert.InDelta(t, (720-32)/3.0, container.ChildAt(2).Bounds.Width, 1e-9)
	assert.InDelta(t, 2*((720-32)/3.0+16), container.ChildAt(2).Bounds.X, 1e-9)

	assert.Equal(t, 1, s.Clock().Pending(), "only the border needs frames")
	assert.False(t, b.Disabled())
}

func TestStage_ScrollTriggersGroup(t *testing.T) {
	s := mountTestScene(t)
	g, _ := s.Group("features")

	updateFrames(s, 10)
	assert.False(t, g.Triggered(), "below the fold")

	s.Camera().ScrollBy(0, 600)
	s.Update(frameDT)
	assert.True(t, g.Triggered())
	assert.Equal(t, VariantVisible, g.Target())

	updateFrames(s, 60)
	assert.True(t, g.Settled())

	s.Camera().ScrollBy(0, -600)
	updateFrames(s, 2)
	s.Camera().ScrollBy(0, 600)
	updateFrames(s, 2)
	assert.Equal(t, 1, g.Transitions())
}

func TestStage_TextAndBorderRun(t *testing.T) {
	s := mountTestScene(t)
	text, _ := s.Text("headline")
	border, _ := s.Border("cta")

	assert.Equal(t, TextEntering, text.Phase())
	updateFrames(s, 60)
	assert.Equal(t, TextShown, text.Phase())
	assert.Greater(t, border.Progress(), 0.0)
	assert.InDelta(t, 1.0, s.Elapsed().Seconds(), 1e-3)
}

func TestStage_HoverPausesBorder(t *testing.T) {
	s := mountTestScene(t)
	border, _ := s.Border("cta")
	updateFrames(s, 2)

	s.Hover().InjectMove(400, 330)
	s.Update(frameDT)
	assert.True(t, border.Paused())

	at := border.Progress()
	updateFrames(s, 30)
	assert.Equal(t, at, border.Progress())

	s.Hover().InjectLeave()
	updateFrames(s, 30)
	assert.False(t, border.Paused())
	assert.Greater(t, border.Progress(), at)
}

func TestStage_PrunesDisposed(t *testing.T) {
	s := mountTestScene(t)
	g, _ := s.Group("features")
	b, _ := s.Border("cta")

	g.container.Dispose()
	b.el.Dispose()
	s.Update(frameDT)

	_, ok := s.Group("features")
	assert.False(t, ok)
	_, ok = s.Border("cta")
	assert.False(t, ok)
	assert.Empty(t, s.Groups())
	assert.Empty(t, s.Borders())
	assert.Len(t, s.Texts(), 1)
	assert.Zero(t, s.Clock().Pending())
}

func TestStage_DebugLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := mountTestScene(t, WithLogger(logger))
	s.SetDebugMode(true)

	s.Update(frameDT)

	out := buf.String()
	assert.Contains(t, out, "msg=frame")
	assert.Contains(t, out, "animators=2")
	assert.Contains(t, out, "frameRequests=1")
}

func TestStage_WithRegistry(t *testing.T) {
	reg, err := LoadPresets([]byte(presetYAML), DefaultPresets())
	require.NoError(t, err)
	s := NewStage(Rect{Width: 800, Height: 600}, WithRegistry(reg))
	assert.Same(t, reg, s.Registry())

	el := NewElement("hero", Rect{Width: 100, Height: 100})
	s.Root().AddChild(el)
	el.AddChild(NewElement("card", Rect{Width: 10, Height: 10}))
	g, err := s.NewGroup(el, GroupConfig{Preset: "hero"})
	require.NoError(t, err)
	assert.Equal(t, 24.0, *g.Variants().Hidden.Y)
}

func TestLoadScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "blocks: [1, 2"},
		{"no viewport", "blocks: []"},
		{"unknown kind", "viewport: {width: 10, height: 10}\nblocks: [{kind: video, name: x}]"},
		{"missing name", "viewport: {width: 10, height: 10}\nblocks: [{kind: text}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScene([]byte(tt.yaml))
			assert.ErrorContains(t, err, "parse scene")
		})
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0o644))

	f, err := LoadSceneFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Blocks, 3)
	assert.Equal(t, 900.0, f.Blocks[1].Bounds.Y)

	_, err = LoadSceneFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read scene")
}

func TestStage_MountBadProps(t *testing.T) {
	f, err := LoadScene([]byte(`
viewport: {width: 800, height: 600}
blocks:
  - kind: group
    name: broken
    children: 2
    props: {preset: nope}
`))
	require.NoError(t, err)
	s := NewStage(f.Viewport)

	err = s.Mount(f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), `mount group "broken"`)
	assert.Zero(t, s.Root().NumChildren())
}

func TestLayoutRow(t *testing.T) {
	assert.Nil(t, LayoutRow(100, 10, 0, 5))

	cells := LayoutRow(100, 10, 2, 10)
	assert.Equal(t, []Rect{{X: 0, Width: 45, Height: 10}, {X: 55, Width: 45, Height: 10}}, cells)

	tight := LayoutRow(10, 10, 3, 20)
	assert.Zero(t, tight[0].Width)
}

type recordingSink struct {
	events []AnimatorEvent
}

func (r *recordingSink) EmitEvent(e AnimatorEvent) { r.events = append(r.events, e) }

func TestStage_EventSink(t *testing.T) {
	s := NewStage(Rect{Width: 800, Height: 600})
	sink := &recordingSink{}
	s.SetEventSink(sink)

	el := NewElement("title", Rect{Width: 200, Height: 40})
	s.Root().AddChild(el)
	var started []VariantKey
	_, err := s.NewText(el, TextConfig{
		Text:    "Hi there",
		Per:     SplitWord,
		OnStart: func(k VariantKey) { started = append(started, k) },
	})
	require.NoError(t, err)
	updateFrames(s, 60)

	assert.Equal(t, []VariantKey{VariantVisible}, started, "user callback still runs")
	require.Len(t, sink.events, 2)
	assert.Equal(t, AnimatorEvent{
		Type:      EventTransitionStart,
		Kind:      BlockText,
		Name:      "title",
		ElementID: el.ID,
		Variant:   VariantVisible,
	}, sink.events[0])
	assert.Equal(t, EventTransitionComplete, sink.events[1].Type)
	assert.Equal(t, "complete", sink.events[1].Type.String())
}

func TestStage_NewTextNilContainer(t *testing.T) {
	s := NewStage(Rect{Width: 800, Height: 600})
	_, err := s.NewText(nil, TextConfig{Text: "x"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStage_DuplicateNames(t *testing.T) {
	s := NewStage(Rect{Width: 800, Height: 600})
	first := newCards(2)
	second := newCards(2)
	s.Root().AddChild(first)
	s.Root().AddChild(second)

	g, err := s.NewGroup(first, GroupConfig{Name: "cards", Preset: "fade", Behavior: BehaviorImmediate})
	require.NoError(t, err)
	_, err = s.NewGroup(second, GroupConfig{Name: "cards", Preset: "fade", Behavior: BehaviorImmediate})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Contains(t, err.Error(), "name=cards")

	got, ok := s.Group("cards")
	require.True(t, ok)
	assert.Same(t, g, got)
	assert.Len(t, s.Groups(), 1)

	el := NewElement("cta", Rect{Width: 100, Height: 40})
	s.Root().AddChild(el)
	_, err = s.NewBorder(el, BorderConfig{Duration: time.Second})
	require.NoError(t, err)
	_, err = s.NewBorder(el, BorderConfig{Duration: time.Second})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// A disposed animator frees its name.
	first.Dispose()
	_, err = s.NewGroup(second, GroupConfig{Name: "cards", Preset: "fade", Behavior: BehaviorImmediate})
	assert.NoError(t, err)
}
