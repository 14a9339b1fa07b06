package motion

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// presetFile is the YAML layout of a preset table:
//
//	version: "1"
//	presets:
//	  hero:
//	    hidden:  {opacity: 0, y: 24}
//	    visible: {opacity: 1, y: 0, transition: {duration: 0.6, staggerChildren: 0.12}}
type presetFile struct {
	Version string                `yaml:"version"`
	Presets map[string]VariantSet `yaml:"presets"`
}

// LoadPresets parses a YAML preset table and layers it over base (which may be
// nil). Presets in the file replace base presets of the same name.
func LoadPresets(data []byte, base *Registry) (*Registry, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("parse presets: %w", &ConfigError{Field: "presets", Err: ErrInvalidConfig})
	}
	b := NewRegistryBuilder(base)
	for _, name := range slices.Sorted(maps.Keys(f.Presets)) {
		b.Override(name, f.Presets[name])
	}
	r, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return r, nil
}

// LoadPresetFile reads path and calls LoadPresets.
func LoadPresetFile(path string, base *Registry) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return LoadPresets(data, base)
}
