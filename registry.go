package motion

import (
	"fmt"
	"maps"
	"slices"
)

// Registry is an immutable table of named presets. Build one with a
// RegistryBuilder; after Build nothing can change it, so a Registry is safe to
// share between every animator on a page.
type Registry struct {
	presets map[string]VariantSet
}

// RegistryBuilder collects presets before the table is frozen.
type RegistryBuilder struct {
	presets map[string]VariantSet
	err     error
}

// NewRegistryBuilder returns an empty builder. Pass a base registry to start
// from its presets (for example DefaultPresets()).
func NewRegistryBuilder(base *Registry) *RegistryBuilder {
	b := &RegistryBuilder{presets: make(map[string]VariantSet)}
	if base != nil {
		maps.Copy(b.presets, base.presets)
	}
	return b
}

// Register adds a preset. Invalid or duplicate presets record an error that
// Build returns; Register itself never panics so a table can be declared as
// one chained block.
func (b *RegistryBuilder) Register(name string, set VariantSet) *RegistryBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = &ConfigError{Field: "preset", Value: name, Err: ErrInvalidConfig}
		return b
	}
	if _, exists := b.presets[name]; exists {
		b.err = &ConfigError{Field: "preset", Value: name, Err: ErrDuplicatePreset}
		return b
	}
	if err := set.Validate(); err != nil {
		b.err = fmt.Errorf("preset %q: %w", name, err)
		return b
	}
	// Deep copy so later writes through the caller's pointers never reach
	// the table.
	b.presets[name] = MergeVariants(VariantSet{}, set)
	return b
}

// Override replaces an existing preset or adds a new one. Used when layering a
// preset file over the built-in table.
func (b *RegistryBuilder) Override(name string, set VariantSet) *RegistryBuilder {
	if b.err != nil {
		return b
	}
	delete(b.presets, name)
	return b.Register(name, set)
}

// Build freezes the table.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Registry{presets: maps.Clone(b.presets)}, nil
}

// Lookup returns the named preset. The returned set is a copy; mutating it does
// not affect the registry.
func (r *Registry) Lookup(name string) (VariantSet, error) {
	set, ok := r.presets[name]
	if !ok {
		return VariantSet{}, &ConfigError{Field: "preset", Value: name, Err: ErrUnknownPreset}
	}
	return MergeVariants(VariantSet{}, set), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.presets[name]
	return ok
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.presets))
}

// Len returns the number of presets.
func (r *Registry) Len() int {
	return len(r.presets)
}

// Resolve turns a preset name and an optional custom set into the effective
// VariantSet: the custom set overrides the preset field by field. An empty
// name with a custom set uses the custom set alone.
func (r *Registry) Resolve(name string, custom *VariantSet) (VariantSet, error) {
	var base VariantSet
	if name != "" {
		set, err := r.Lookup(name)
		if err != nil {
			return VariantSet{}, err
		}
		base = set
	} else if custom == nil {
		return VariantSet{}, &ConfigError{Field: "preset", Err: ErrUnknownPreset}
	}
	if custom != nil {
		base = MergeVariants(base, *custom)
	}
	if err := base.Validate(); err != nil {
		return VariantSet{}, err
	}
	return base, nil
}
