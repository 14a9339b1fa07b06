package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/motion"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSplitCommand(t *testing.T) {
	out, err := execute(t, "split", "Hello world", "--per", "word", "--speed-reveal", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `0   0.000s  "Hello"`)
	assert.Contains(t, out, `1   0.050s  " "`)
	assert.Contains(t, out, `2   0.100s  "world"`)

	_, err = execute(t, "split", "x", "--per", "paragraph")
	assert.ErrorIs(t, err, motion.ErrInvalidConfig)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "--presets", "")
	require.NoError(t, err)
	for _, name := range motion.DefaultPresets().Names() {
		assert.Contains(t, out, name)
	}

	out, err = execute(t, "presets", "fade", "--presets", "")
	require.NoError(t, err)
	assert.Contains(t, out, "fade:")

	_, err = execute(t, "presets", "nope", "--presets", "")
	assert.ErrorIs(t, err, motion.ErrUnknownPreset)
}

func TestPresetsCommand_FileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
presets:
  hero:
    hidden:  {opacity: 0, y: 24}
    visible: {opacity: 1, y: 0}
`), 0o644))

	out, err := execute(t, "presets", "--presets", path)
	require.NoError(t, err)
	assert.Contains(t, out, "hero")
	assert.Contains(t, out, "slide")
}

func TestRunHeadless(t *testing.T) {
	out, err := execute(t, "run", "--headless", "--frames", "120", "--tps", "60", "--log-level", "error", "--presets", "")
	require.NoError(t, err)
	assert.Contains(t, out, "elapsed ")
	assert.Contains(t, out, "group  features")
	assert.Contains(t, out, "text   segments=")
	assert.Contains(t, out, "border progress=")
}

func TestRunHeadless_Script(t *testing.T) {
	script := filepath.Join(t.TempDir(), "steps.json")
	require.NoError(t, os.WriteFile(script, []byte(`{"steps": [
		{"action": "scrollBy", "y": 1400},
		{"action": "disable", "target": "cta", "on": true}
	]}`), 0o644))

	out, err := execute(t, "run", "--headless", "--frames", "30", "--script", script, "--log-level", "error", "--presets", "")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled=true")
}

func TestRunHeadless_BadInput(t *testing.T) {
	_, err := execute(t, "run", "--headless", "--tps", "0", "--log-level", "error", "--presets", "", "--script", "")
	assert.ErrorContains(t, err, "tps must be positive")

	_, err = execute(t, "run", "--headless", "--log-level", "loud", "--tps", "60")
	assert.ErrorContains(t, err, "log level")

	_, err = execute(t, "run", "--headless", "--log-level", "error", "--script", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read step script")
}
