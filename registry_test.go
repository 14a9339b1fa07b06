package motion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPresets_BuiltinNames(t *testing.T) {
	reg := DefaultPresets()
	for _, name := range []string{
		"fade", "slide", "slideUp", "slideDown", "slideLeft", "slideRight",
		"scale", "zoom", "blur", "bounce", "flip", "rotate", "pop",
	} {
		assert.True(t, reg.Has(name), "missing preset %q", name)
	}
	assert.Equal(t, 13, reg.Len())
	assert.IsIncreasing(t, reg.Names())
}

func TestDefaultPresets_AllValid(t *testing.T) {
	reg := DefaultPresets()
	for _, name := range reg.Names() {
		set, err := reg.Lookup(name)
		require.NoError(t, err, name)
		assert.NoError(t, set.Validate(), name)
		assert.False(t, set.Hidden.Empty(), "%s: hidden has no targets", name)
		assert.False(t, set.Visible.Empty(), "%s: visible has no targets", name)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := DefaultPresets().Lookup("nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreset)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "preset", cfgErr.Field)
	assert.Equal(t, "nope", cfgErr.Value)
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	reg := DefaultPresets()
	set, err := reg.Lookup("fade")
	require.NoError(t, err)

	*set.Hidden.Opacity = 0.75

	again, err := reg.Lookup("fade")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *again.Hidden.Opacity)
}

func TestRegistryBuilder_RegisterCopiesSet(t *testing.T) {
	d := F(0.4)
	y := F(24)
	set := VariantSet{
		Hidden:  Variant{Style: Style{Opacity: F(0), Y: y}},
		Visible: Variant{Style: Style{Opacity: F(1)}, Transition: Transition{Duration: d}},
	}
	reg, err := NewRegistryBuilder(nil).Register("hero", set).Build()
	require.NoError(t, err)

	*d = -5
	*y = 99

	got, err := reg.Lookup("hero")
	require.NoError(t, err)
	assert.Equal(t, 0.4, *got.Visible.Transition.Duration)
	assert.Equal(t, 24.0, *got.Hidden.Y)
}

func TestRegistryBuilder_Duplicate(t *testing.T) {
	set := VariantSet{Hidden: Variant{Style: Style{Opacity: F(0)}}}
	_, err := NewRegistryBuilder(nil).
		Register("a", set).
		Register("a", set).
		Build()

	assert.ErrorIs(t, err, ErrDuplicatePreset)
}

func TestRegistryBuilder_EmptyName(t *testing.T) {
	_, err := NewRegistryBuilder(nil).Register("", VariantSet{}).Build()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRegistryBuilder_NonPositiveDuration(t *testing.T) {
	set := VariantSet{Visible: Variant{Transition: Transition{Duration: F(0)}}}
	_, err := NewRegistryBuilder(nil).Register("bad", set).Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Contains(t, err.Error(), "visible.duration")
}

func TestRegistryBuilder_UnknownEase(t *testing.T) {
	set := VariantSet{Visible: Variant{Transition: Transition{Ease: "wobbly"}}}
	_, err := NewRegistryBuilder(nil).Register("bad", set).Build()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRegistryBuilder_BaseIsNotMutated(t *testing.T) {
	base := DefaultPresets()
	n := base.Len()

	reg, err := NewRegistryBuilder(base).
		Register("hero", VariantSet{Hidden: Variant{Style: Style{Y: F(60)}}}).
		Override("fade", VariantSet{Hidden: Variant{Style: Style{Opacity: F(0.2)}}}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, n+1, reg.Len())
	assert.Equal(t, n, base.Len())
	assert.False(t, base.Has("hero"))

	fade, err := base.Lookup("fade")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *fade.Hidden.Opacity)
}

func TestRegistry_ResolveMergesCustom(t *testing.T) {
	custom := &VariantSet{
		Hidden:  Variant{Style: Style{Y: F(80)}},
		Visible: Variant{Transition: Transition{Duration: F(1.5)}},
	}
	set, err := DefaultPresets().Resolve("slide", custom)
	require.NoError(t, err)

	assert.Equal(t, 80.0, *set.Hidden.Y)
	assert.Equal(t, 0.0, *set.Hidden.Opacity, "preset field kept")
	assert.Equal(t, 1.5, *set.Visible.Transition.Duration)
	assert.Equal(t, "easeOut", set.Visible.Transition.Ease, "preset ease kept")
}

func TestRegistry_ResolveCustomOnly(t *testing.T) {
	custom := &VariantSet{Hidden: Variant{Style: Style{Opacity: F(0)}}, Visible: Variant{Style: Style{Opacity: F(1)}}}
	set, err := DefaultPresets().Resolve("", custom)
	require.NoError(t, err)
	assert.Equal(t, 1.0, *set.Visible.Opacity)
}

func TestRegistry_ResolveNothing(t *testing.T) {
	_, err := DefaultPresets().Resolve("", nil)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestRegistry_ResolveInvalidCustom(t *testing.T) {
	custom := &VariantSet{Loop: Variant{Transition: Transition{Duration: F(-1)}}}
	_, err := DefaultPresets().Resolve("fade", custom)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestMergeVariants_FieldByField(t *testing.T) {
	base := VariantSet{Visible: Variant{
		Style:      Style{Opacity: F(1), Y: F(0)},
		Transition: Transition{Duration: F(0.5), Ease: "easeOut", RepeatType: RepeatLoop},
	}}
	override := VariantSet{Visible: Variant{
		Style:      Style{Y: F(10), Scale: F(2)},
		Transition: Transition{Ease: "linear"},
	}}

	got := MergeVariants(base, override)

	assert.Equal(t, 1.0, *got.Visible.Opacity)
	assert.Equal(t, 10.0, *got.Visible.Y)
	assert.Equal(t, 2.0, *got.Visible.Scale)
	assert.Nil(t, got.Visible.Blur)
	assert.Equal(t, 0.5, *got.Visible.Transition.Duration)
	assert.Equal(t, "linear", got.Visible.Transition.Ease)
	assert.Equal(t, RepeatLoop, got.Visible.Transition.RepeatType)
}

func TestMergeVariants_DoesNotAlias(t *testing.T) {
	base := VariantSet{Hidden: Variant{Style: Style{Opacity: F(0)}}}
	override := VariantSet{Hidden: Variant{Style: Style{Y: F(5)}}}

	got := MergeVariants(base, override)
	*got.Hidden.Opacity = 0.5
	*got.Hidden.Y = 50

	assert.Equal(t, 0.0, *base.Hidden.Opacity)
	assert.Equal(t, 5.0, *override.Hidden.Y)
}

func TestEaseFunc(t *testing.T) {
	fn, err := EaseFunc("")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = EaseFunc("nope")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

const presetYAML = `
version: "1"
presets:
  hero:
    hidden:  {opacity: 0, y: 24}
    visible: {opacity: 1, y: 0, transition: {duration: 0.6, staggerChildren: 0.12, ease: backOut}}
  fade:
    hidden:  {opacity: 0.1}
    visible: {opacity: 1}
`

func TestLoadPresets_LayersOverBase(t *testing.T) {
	reg, err := LoadPresets([]byte(presetYAML), DefaultPresets())
	require.NoError(t, err)

	hero, err := reg.Lookup("hero")
	require.NoError(t, err)
	assert.Equal(t, 24.0, *hero.Hidden.Y)
	assert.Equal(t, 0.12, *hero.Visible.Transition.StaggerChildren)
	assert.Equal(t, "backOut", hero.Visible.Transition.Ease)

	fade, err := reg.Lookup("fade")
	require.NoError(t, err)
	assert.Equal(t, 0.1, *fade.Hidden.Opacity, "file replaces the built-in preset")

	assert.True(t, reg.Has("slide"), "base presets stay available")
}

func TestLoadPresets_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "empty", yaml: "version: \"1\"\n", want: ErrInvalidConfig},
		{name: "bad duration", yaml: "presets:\n  x:\n    visible: {transition: {duration: 0}}\n", want: ErrInvalidDuration},
		{name: "bad repeat type", yaml: "presets:\n  x:\n    loop: {transition: {repeatType: sideways}}\n", want: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets([]byte(tt.yaml), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadPresets_Malformed(t *testing.T) {
	_, err := LoadPresets([]byte("presets: [1, 2"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse presets")
}

func TestLoadPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0o644))

	reg, err := LoadPresetFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"fade", "hero"}, reg.Names())

	_, err = LoadPresetFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "read presets")
}
