package motion

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the page viewport: which part of the laid-out page is on screen.
type Camera struct {
	// X and Y are the page-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the page-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim

	// version increments whenever the visible area may have changed.
	version uint64
}

// NewCamera creates a camera whose top-left corner shows the page origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.Width / 2,
		Y:        viewport.Height / 2,
		Zoom:     1.0,
		Viewport: viewport,
		version:  1,
	}
}

// ScrollTo animates the camera to the given page position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// ScrollBy moves the camera immediately by (dx, dy) and cancels any running
// scroll animation.
func (c *Camera) ScrollBy(dx, dy float64) {
	c.scrollTween = nil
	c.X += dx
	c.Y += dy
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.MarkDirty()
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.MarkDirty()
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances scrolling and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	prevX, prevY, prevZoom := c.X, c.Y, c.Zoom

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.X != prevX || c.Y != prevY || c.Zoom != prevZoom {
		c.version++
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// WorldToScreen converts page coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return cx + (wx-c.X)*c.Zoom, cy + (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen coordinates to page coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return c.X + (sx-cx)/c.Zoom, c.Y + (sy-cy)/c.Zoom
}

// VisibleBounds returns the page-space rectangle currently on screen.
func (c *Camera) VisibleBounds() Rect {
	w := c.Viewport.Width / c.Zoom
	h := c.Viewport.Height / c.Zoom
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// MarkDirty forces observers to re-test membership on their next Update.
// Call it after changing X, Y or Zoom directly.
func (c *Camera) MarkDirty() {
	c.version++
}

// --- Viewport membership ---

// inView tests bounds against the visible area with the given options.
func inView(bounds, visible Rect, opts ObserveOptions) bool {
	view := visible.Inset(opts.Margin)
	if bounds.Area() == 0 {
		// Unmeasured or zero-size elements count by their origin.
		return view.Contains(bounds.X, bounds.Y)
	}
	if !bounds.Intersects(view) {
		return false
	}
	overlap := bounds.Intersection(view).Area() / bounds.Area()
	if opts.Threshold == 0 {
		return overlap > 0
	}
	return overlap >= opts.Threshold
}

// CameraObserver is a ViewportObserver backed by a Camera's visible bounds.
// Call Update once per frame after the camera moves; membership is re-tested
// only when the camera or the observed set changed since the last call.
type CameraObserver struct {
	cam       *Camera
	table     membershipTable
	seen      uint64
	observed  int
	lastCount int
}

// NewCameraObserver creates an observer for cam.
func NewCameraObserver(cam *Camera) *CameraObserver {
	return &CameraObserver{cam: cam}
}

// Observe implements ViewportObserver. The element's initial membership is
// delivered on the next Update if it is in view.
func (o *CameraObserver) Observe(el *Element, opts ObserveOptions, fn func(bool)) Subscription {
	sub := o.table.observe(el, opts, fn)
	if sub.Valid() {
		o.observed++
	}
	return sub
}

// Unobserve implements ViewportObserver.
func (o *CameraObserver) Unobserve(sub Subscription) {
	o.table.unobserve(sub)
}

// Membership returns the current state behind a subscription.
func (o *CameraObserver) Membership(sub Subscription) (Membership, bool) {
	return o.table.lookup(sub)
}

// Invalidate forces the next Update to re-test every element, for example
// after a layout change moved element bounds.
func (o *CameraObserver) Invalidate() {
	o.seen = 0
}

// Update re-tests every observed element against the camera.
func (o *CameraObserver) Update() {
	if o.cam.version == o.seen && o.observed == o.lastCount {
		return
	}
	o.seen = o.cam.version
	o.lastCount = o.observed

	visible := o.cam.VisibleBounds()
	recs := make([]*membership, 0, len(o.table.records))
	for _, rec := range o.table.records {
		recs = append(recs, rec)
	}
	for _, rec := range recs {
		o.table.set(rec, inView(rec.key.el.WorldBounds(), visible, rec.key.opts))
	}
}
