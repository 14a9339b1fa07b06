package motion

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Repeat counts used by Transition.Repeat.
const (
	RepeatNone     = 0
	RepeatInfinite = -1
)

// RepeatType controls how a repeating transition replays.
type RepeatType string

const (
	RepeatLoop    RepeatType = "loop"    // restart from the origin values
	RepeatReverse RepeatType = "reverse" // ping-pong between origin and target
	RepeatMirror  RepeatType = "mirror"  // same as reverse
)

// Style is a partial set of animation targets. Nil fields are left untouched
// when the variant is applied.
type Style struct {
	Opacity *float64 `yaml:"opacity,omitempty" mapstructure:"opacity"`
	X       *float64 `yaml:"x,omitempty" mapstructure:"x"`
	Y       *float64 `yaml:"y,omitempty" mapstructure:"y"`
	Scale   *float64 `yaml:"scale,omitempty" mapstructure:"scale"`
	Rotate  *float64 `yaml:"rotate,omitempty" mapstructure:"rotate"`
	Blur    *float64 `yaml:"blur,omitempty" mapstructure:"blur"`
}

// Transition holds the timing of a variant. Nil fields inherit from the
// variant they are merged over. Times are in seconds.
type Transition struct {
	Duration        *float64   `yaml:"duration,omitempty" mapstructure:"duration"`
	StaggerChildren *float64   `yaml:"staggerChildren,omitempty" mapstructure:"staggerChildren"`
	DelayChildren   *float64   `yaml:"delayChildren,omitempty" mapstructure:"delayChildren"`
	Repeat          *int       `yaml:"repeat,omitempty" mapstructure:"repeat"`
	RepeatType      RepeatType `yaml:"repeatType,omitempty" mapstructure:"repeatType"`
	RepeatDelay     *float64   `yaml:"repeatDelay,omitempty" mapstructure:"repeatDelay"`
	Ease            string     `yaml:"ease,omitempty" mapstructure:"ease"`
}

// Variant is one named animation state: where to go and how to get there.
type Variant struct {
	Style      `yaml:",inline" mapstructure:",squash"`
	Transition Transition `yaml:"transition,omitempty" mapstructure:"transition"`
}

// VariantSet is the full state table a block animates between.
type VariantSet struct {
	Hidden    Variant `yaml:"hidden" mapstructure:"hidden"`
	Visible   Variant `yaml:"visible" mapstructure:"visible"`
	Loop      Variant `yaml:"loop,omitempty" mapstructure:"loop"`
	PulseLoop Variant `yaml:"pulseLoop,omitempty" mapstructure:"pulseLoop"`
}

// VariantKey names one of the four variants of a VariantSet.
type VariantKey uint8

const (
	VariantHidden VariantKey = iota
	VariantVisible
	VariantLoop
	VariantPulseLoop
)

func (k VariantKey) String() string {
	switch k {
	case VariantHidden:
		return "hidden"
	case VariantVisible:
		return "visible"
	case VariantLoop:
		return "loop"
	case VariantPulseLoop:
		return "pulseLoop"
	default:
		return "unknown"
	}
}

// Variant returns the variant stored under k.
func (s VariantSet) Variant(k VariantKey) Variant {
	switch k {
	case VariantVisible:
		return s.Visible
	case VariantLoop:
		return s.Loop
	case VariantPulseLoop:
		return s.PulseLoop
	default:
		return s.Hidden
	}
}

// F returns a pointer to v. Convenience for building Style and Transition
// literals.
func F(v float64) *float64 { return &v }

// I returns a pointer to v.
func I(v int) *int { return &v }

// B returns a pointer to v.
func B(v bool) *bool { return &v }

// MergeVariants returns base with every field set in override taking
// precedence. Neither argument is modified.
func MergeVariants(base, override VariantSet) VariantSet {
	return VariantSet{
		Hidden:    mergeVariant(base.Hidden, override.Hidden),
		Visible:   mergeVariant(base.Visible, override.Visible),
		Loop:      mergeVariant(base.Loop, override.Loop),
		PulseLoop: mergeVariant(base.PulseLoop, override.PulseLoop),
	}
}

func mergeVariant(base, o Variant) Variant {
	out := base
	out.Opacity = pick(base.Opacity, o.Opacity)
	out.X = pick(base.X, o.X)
	out.Y = pick(base.Y, o.Y)
	out.Scale = pick(base.Scale, o.Scale)
	out.Rotate = pick(base.Rotate, o.Rotate)
	out.Blur = pick(base.Blur, o.Blur)

	bt, ot := base.Transition, o.Transition
	out.Transition = Transition{
		Duration:        pick(bt.Duration, ot.Duration),
		StaggerChildren: pick(bt.StaggerChildren, ot.StaggerChildren),
		DelayChildren:   pick(bt.DelayChildren, ot.DelayChildren),
		Repeat:          pick(bt.Repeat, ot.Repeat),
		RepeatType:      bt.RepeatType,
		RepeatDelay:     pick(bt.RepeatDelay, ot.RepeatDelay),
		Ease:            bt.Ease,
	}
	if ot.RepeatType != "" {
		out.Transition.RepeatType = ot.RepeatType
	}
	if ot.Ease != "" {
		out.Transition.Ease = ot.Ease
	}
	return out
}

// pick copies the override value so merged sets never alias caller memory.
func pick[T any](base, override *T) *T {
	src := base
	if override != nil {
		src = override
	}
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// Empty reports whether the variant sets no style target.
func (v Variant) Empty() bool {
	s := v.Style
	return s.Opacity == nil && s.X == nil && s.Y == nil &&
		s.Scale == nil && s.Rotate == nil && s.Blur == nil
}

// Defaults applied when a transition leaves a field unset.
const (
	DefaultDuration = 0.5
	DefaultEase     = "easeOut"
)

func (t Transition) duration() float64 {
	if t.Duration == nil {
		return DefaultDuration
	}
	return *t.Duration
}

func (t Transition) stagger() float64 {
	if t.StaggerChildren == nil {
		return 0
	}
	return *t.StaggerChildren
}

func (t Transition) delayChildren() float64 {
	if t.DelayChildren == nil {
		return 0
	}
	return *t.DelayChildren
}

func (t Transition) repeat() int {
	if t.Repeat == nil {
		return RepeatNone
	}
	return *t.Repeat
}

func (t Transition) repeatDelay() float64 {
	if t.RepeatDelay == nil {
		return 0
	}
	return *t.RepeatDelay
}

func (t Transition) validate(field string) error {
	if t.Duration != nil && (*t.Duration <= 0 || math.IsNaN(*t.Duration)) {
		return &ConfigError{Field: field + ".duration", Value: *t.Duration, Err: ErrInvalidDuration}
	}
	for name, p := range map[string]*float64{
		"staggerChildren": t.StaggerChildren,
		"delayChildren":   t.DelayChildren,
		"repeatDelay":     t.RepeatDelay,
	} {
		if p != nil && *p < 0 {
			return &ConfigError{Field: field + "." + name, Value: *p, Err: ErrInvalidConfig}
		}
	}
	if t.Repeat != nil && *t.Repeat < RepeatInfinite {
		return &ConfigError{Field: field + ".repeat", Value: *t.Repeat, Err: ErrInvalidConfig}
	}
	switch t.RepeatType {
	case "", RepeatLoop, RepeatReverse, RepeatMirror:
	default:
		return &ConfigError{Field: field + ".repeatType", Value: t.RepeatType, Err: ErrInvalidConfig}
	}
	if t.Ease != "" {
		if _, ok := easings[t.Ease]; !ok {
			return &ConfigError{Field: field + ".ease", Value: t.Ease, Err: ErrInvalidConfig}
		}
	}
	return nil
}

// Validate checks every transition in the set.
func (s VariantSet) Validate() error {
	for k := VariantHidden; k <= VariantPulseLoop; k++ {
		if err := s.Variant(k).Transition.validate(k.String()); err != nil {
			return err
		}
	}
	return nil
}

// easings maps the easing names accepted in variant definitions to gween
// easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"easeIn":       ease.InQuad,
	"easeOut":      ease.OutQuad,
	"easeInOut":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"backIn":       ease.InBack,
	"backOut":      ease.OutBack,
	"backInOut":    ease.InOutBack,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"circOut":      ease.OutCirc,
	"anticipate":   ease.InOutBack,
	"easeOutQuart": ease.OutQuart,
}

// EaseFunc resolves an easing name. The empty name yields DefaultEase.
func EaseFunc(name string) (ease.TweenFunc, error) {
	if name == "" {
		name = DefaultEase
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("motion: ease %q: %w", name, ErrInvalidConfig)
	}
	return fn, nil
}
