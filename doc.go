// Package motion is a headless animation-orchestration layer for scroll-driven
// pages, built on [gween] tweens.
//
// It provides three animators that mount on an [Element] tree:
//
//   - [GroupOrchestrator] staggers a container's children between hidden and
//     visible variants according to a viewport behavior mode (immediate,
//     once, loop, continuous-loop or pulse-loop).
//   - [SegmentedTextAnimator] splits text into characters, words or lines and
//     reveals each segment in turn, exiting in reverse when its trigger goes
//     false.
//   - [BorderAnimator] moves a marker along a rounded rectangle at constant
//     arc-length speed, with pause, direction and disable controls.
//
// # Quick start
//
// The simplest way to get started is a [Stage], which owns the element tree,
// a page [Camera] with its viewport observer, and the frame clock:
//
//	stage := motion.NewStage(motion.Rect{Width: 800, Height: 600})
//	cards := motion.NewElement("cards", motion.Rect{Y: 900, Width: 720, Height: 200})
//	stage.Root().AddChild(cards)
//	// ... add one child element per card ...
//	g, err := stage.NewGroup(cards, motion.GroupConfig{
//		Preset:   "slide",
//		Behavior: motion.BehaviorOnce,
//	})
//
// Call [Stage.Update] once per tick. Hosts read [Element.Values] to draw;
// package ebitenhost does this in an Ebitengine window.
//
// # Presets
//
// Variants come from a [Registry] of named presets. [DefaultPresets] holds
// the built-ins; [LoadPresets] layers a YAML file over them:
//
//	presets:
//	  hero:
//	    hidden:  {opacity: 0, y: 24}
//	    visible: {opacity: 1, y: 0, transition: {duration: 0.6, ease: backOut}}
//
// # Scenes and scripts
//
// [LoadScene] reads a YAML page layout and [Stage.Mount] builds it, decoding
// each block's props with [DecodeGroupProps], [DecodeTextProps] and
// [DecodeBorderProps]. A [StepDriver] replays scrolls, hovers and toggles
// from a JSON script for demos and tests.
//
// Transition events can be forwarded to an ECS world with
// [Stage.SetEventSink]; package motion/ecs provides a [Donburi] adapter.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package motion
