package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxTweenFields = 6

// TweenGroup animates the Values of one Element toward a Variant's style
// targets. Create one with TweenVariant and call Update(dt) each frame. The
// group waits out its start delay, then tweens every targeted field with the
// variant's easing and repeats as the transition asks. If the target element
// is disposed, the group stops immediately.
//
// There is no global animation manager; orchestrators own their groups.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	fields [maxTweenFields]*float64
	from   [maxTweenFields]float32
	to     [maxTweenFields]float32
	count  int
	timer  *gween.Tween
	target *Element

	easeFn   ease.TweenFunc
	duration float32
	delay    float32
	started  bool

	repeatLeft int
	mirror     bool
	pause      float32
	pauseLeft  float32

	Done      bool
	cancelled bool
}

// TweenVariant creates a TweenGroup that moves el's values to the targets set
// in v once delay seconds have passed. Fields v leaves unset are not touched.
func TweenVariant(el *Element, v Variant, delay float64) *TweenGroup {
	t := v.Transition
	fn, err := EaseFunc(t.Ease)
	if err != nil {
		fn = easings[DefaultEase]
	}
	g := &TweenGroup{
		target:     el,
		easeFn:     fn,
		duration:   float32(t.duration()),
		delay:      float32(delay),
		repeatLeft: t.repeat(),
		mirror:     t.RepeatType == RepeatReverse || t.RepeatType == RepeatMirror,
		pause:      float32(t.repeatDelay()),
	}
	s := v.Style
	g.bind(&el.Values.Opacity, s.Opacity)
	g.bind(&el.Values.X, s.X)
	g.bind(&el.Values.Y, s.Y)
	g.bind(&el.Values.Scale, s.Scale)
	g.bind(&el.Values.Rotate, s.Rotate)
	g.bind(&el.Values.Blur, s.Blur)
	return g
}

func (g *TweenGroup) bind(field *float64, to *float64) {
	if to == nil {
		return
	}
	g.fields[g.count] = field
	g.to[g.count] = float32(*to)
	g.count++
}

// start captures the current field values as the tween origin.
func (g *TweenGroup) start() {
	g.started = true
	for i := 0; i < g.count; i++ {
		g.from[i] = float32(*g.fields[i])
	}
	g.rebuild()
}

func (g *TweenGroup) rebuild() {
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(g.from[i], g.to[i], g.duration, g.easeFn)
	}
	g.timer = gween.New(0, 1, g.duration, ease.Linear)
}

// Started reports whether the start delay has elapsed.
func (g *TweenGroup) Started() bool {
	return g.started
}

// Cancelled reports whether the group was stopped by Cancel or by disposal of
// its target rather than by finishing.
func (g *TweenGroup) Cancelled() bool {
	return g.cancelled
}

// Cancel stops the group where it is. Values keep their current state.
func (g *TweenGroup) Cancel() {
	if g.Done {
		return
	}
	g.Done = true
	g.cancelled = true
}

// Update advances the group by dt seconds and writes values to the target
// element. Time left over after the start delay or a repeat pause carries into
// the same call, so stagger offsets stay exact at any frame rate.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		g.cancelled = true
		return
	}

	if !g.started {
		g.delay -= dt
		if g.delay > 0 {
			return
		}
		dt = -g.delay
		g.delay = 0
		g.start()
	}

	if g.pauseLeft > 0 {
		g.pauseLeft -= dt
		if g.pauseLeft > 0 {
			return
		}
		dt = -g.pauseLeft
		g.pauseLeft = 0
	}

	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
	}
	if _, finished := g.timer.Update(dt); !finished {
		return
	}

	// Snap to the exact target; gween can stop one ulp short.
	for i := 0; i < g.count; i++ {
		*g.fields[i] = float64(g.to[i])
	}

	if g.repeatLeft == RepeatNone {
		g.Done = true
		return
	}
	if g.repeatLeft > 0 {
		g.repeatLeft--
	}
	g.nextCycle()
}

// nextCycle restarts the tweens for another repetition.
func (g *TweenGroup) nextCycle() {
	if g.mirror {
		g.from, g.to = g.to, g.from
	} else {
		for i := 0; i < g.count; i++ {
			*g.fields[i] = float64(g.from[i])
		}
	}
	g.rebuild()
	g.pauseLeft = g.pause
}

// SetInstant writes v's targets into el immediately, with no transition.
func SetInstant(el *Element, v Variant) {
	el.Values.apply(v.Style)
}
