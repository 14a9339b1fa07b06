package motion

// Built-in presets. The table is assembled once at package load and is
// read-only afterwards.
var defaultPresets = mustBuild(builtinPresets())

// DefaultPresets returns the built-in preset table.
func DefaultPresets() *Registry {
	return defaultPresets
}

func mustBuild(b *RegistryBuilder) *Registry {
	r, err := b.Build()
	if err != nil {
		panic("motion: built-in presets: " + err.Error())
	}
	return r
}

// breathe is the shared loop micro-motion: a slow vertical bob.
func breathe(axis string, amount float64) Variant {
	v := Variant{Transition: Transition{
		Duration:   F(2),
		Repeat:     I(RepeatInfinite),
		RepeatType: RepeatReverse,
		Ease:       "inOutSine",
	}}
	switch axis {
	case "x":
		v.X = F(amount)
	case "scale":
		v.Scale = F(amount)
	case "rotate":
		v.Rotate = F(amount)
	default:
		v.Y = F(amount)
	}
	return v
}

func pulse(extra Style) Variant {
	v := Variant{Style: extra, Transition: Transition{
		Duration:    F(1.2),
		RepeatDelay: F(0.8),
		Ease:        "inOutSine",
	}}
	v.Opacity = F(1)
	return v
}

func slideFrom(x, y float64) VariantSet {
	return VariantSet{
		Hidden: Variant{
			Style:      Style{Opacity: F(0), X: F(x), Y: F(y)},
			Transition: Transition{Duration: F(0.4), Ease: "easeIn"},
		},
		Visible: Variant{
			Style:      Style{Opacity: F(1), X: F(0), Y: F(0)},
			Transition: Transition{Duration: F(0.5), StaggerChildren: F(0.1), Ease: "easeOut"},
		},
		Loop:      breathe("y", -4),
		PulseLoop: pulse(Style{X: F(0), Y: F(0)}),
	}
}

func builtinPresets() *RegistryBuilder {
	return NewRegistryBuilder(nil).
		Register("fade", VariantSet{
			Hidden:  Variant{Style: Style{Opacity: F(0)}, Transition: Transition{Duration: F(0.4)}},
			Visible: Variant{Style: Style{Opacity: F(1)}, Transition: Transition{Duration: F(0.6), StaggerChildren: F(0.1)}},
			Loop: Variant{Style: Style{Opacity: F(0.85)}, Transition: Transition{
				Duration: F(1.5), Repeat: I(RepeatInfinite), RepeatType: RepeatReverse, Ease: "inOutSine",
			}},
			PulseLoop: pulse(Style{}),
		}).
		Register("slide", slideFrom(0, 20)).
		Register("slideUp", slideFrom(0, 40)).
		Register("slideDown", slideFrom(0, -40)).
		Register("slideLeft", slideFrom(40, 0)).
		Register("slideRight", slideFrom(-40, 0)).
		Register("scale", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Scale: F(0.8)}, Transition: Transition{Duration: F(0.3)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Scale: F(1)}, Transition: Transition{Duration: F(0.5), StaggerChildren: F(0.08), Ease: "backOut"}},
			Loop:      breathe("scale", 1.03),
			PulseLoop: pulse(Style{Scale: F(1.05)}),
		}).
		Register("zoom", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Scale: F(1.2)}, Transition: Transition{Duration: F(0.3)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Scale: F(1)}, Transition: Transition{Duration: F(0.6), StaggerChildren: F(0.1), Ease: "outCubic"}},
			Loop:      breathe("scale", 0.98),
			PulseLoop: pulse(Style{Scale: F(1)}),
		}).
		Register("blur", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Blur: F(10)}, Transition: Transition{Duration: F(0.3)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Blur: F(0)}, Transition: Transition{Duration: F(0.6), StaggerChildren: F(0.1)}},
			Loop:      Variant{Style: Style{Blur: F(1)}, Transition: Transition{Duration: F(2), Repeat: I(RepeatInfinite), RepeatType: RepeatReverse}},
			PulseLoop: pulse(Style{Blur: F(0)}),
		}).
		Register("bounce", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Y: F(-30)}, Transition: Transition{Duration: F(0.3)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Y: F(0)}, Transition: Transition{Duration: F(0.8), StaggerChildren: F(0.1), Ease: "outBounce"}},
			Loop:      breathe("y", -8),
			PulseLoop: pulse(Style{Y: F(0)}),
		}).
		Register("flip", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Rotate: F(-90)}, Transition: Transition{Duration: F(0.3)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Rotate: F(0)}, Transition: Transition{Duration: F(0.6), StaggerChildren: F(0.1), Ease: "backOut"}},
			Loop:      breathe("rotate", 3),
			PulseLoop: pulse(Style{Rotate: F(0)}),
		}).
		Register("rotate", VariantSet{
			Hidden:  Variant{Style: Style{Opacity: F(0), Rotate: F(-180)}, Transition: Transition{Duration: F(0.3)}},
			Visible: Variant{Style: Style{Opacity: F(1), Rotate: F(0)}, Transition: Transition{Duration: F(0.7), StaggerChildren: F(0.1)}},
			Loop: Variant{Style: Style{Rotate: F(360)}, Transition: Transition{
				Duration: F(8), Repeat: I(RepeatInfinite), RepeatType: RepeatLoop, Ease: "linear",
			}},
			PulseLoop: pulse(Style{Rotate: F(0)}),
		}).
		Register("pop", VariantSet{
			Hidden:    Variant{Style: Style{Opacity: F(0), Scale: F(0.5)}, Transition: Transition{Duration: F(0.2)}},
			Visible:   Variant{Style: Style{Opacity: F(1), Scale: F(1)}, Transition: Transition{Duration: F(0.4), StaggerChildren: F(0.05), Ease: "backOut"}},
			Loop:      breathe("scale", 1.05),
			PulseLoop: pulse(Style{Scale: F(1.1)}),
		})
}
