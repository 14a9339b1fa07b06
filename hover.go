package motion

// hoverHandler is one registered enter/leave pair.
type hoverHandler struct {
	id    uint32
	el    *Element
	enter func()
	leave func()
	over  bool
}

// HoverTracker turns pointer positions into per-element enter and leave
// callbacks. The host feeds it world-space pointer positions each frame (or
// through InjectMove in tests); elements are hit-tested against WorldBounds.
type HoverTracker struct {
	handlers []hoverHandler
	nextID   uint32
	pointer  Vec2
	inside   bool // pointer is over the host surface
	queue    []syntheticHover
}

// syntheticHover is one injected pointer event.
type syntheticHover struct {
	pos   Vec2
	leave bool
}

// NewHoverTracker returns a tracker with the pointer outside every element.
func NewHoverTracker() *HoverTracker {
	return &HoverTracker{}
}

// CallbackHandle allows removing a registered hover callback.
type CallbackHandle struct {
	id      uint32
	tracker *HoverTracker
}

// Remove unregisters the callback so it no longer fires. A leave callback is
// not fired for a pointer that is still over the element.
func (h CallbackHandle) Remove() {
	if h.tracker == nil {
		return
	}
	hs := h.tracker.handlers
	for i := range hs {
		if hs[i].id == h.id {
			copy(hs[i:], hs[i+1:])
			hs[len(hs)-1] = hoverHandler{}
			h.tracker.handlers = hs[:len(hs)-1]
			return
		}
	}
}

// OnHover registers enter and leave callbacks for el. Either may be nil. If
// the pointer is already over el, enter fires on the next pointer update.
func (t *HoverTracker) OnHover(el *Element, enter, leave func()) CallbackHandle {
	t.nextID++
	t.handlers = append(t.handlers, hoverHandler{id: t.nextID, el: el, enter: enter, leave: leave})
	return CallbackHandle{id: t.nextID, tracker: t}
}

// MovePointer updates the pointer position and fires enter and leave
// callbacks for every element whose hover state changed.
func (t *HoverTracker) MovePointer(x, y float64) {
	t.pointer = Vec2{X: x, Y: y}
	t.inside = true
	t.dispatch()
}

// LeaveSurface reports that the pointer left the host surface. Every hovered
// element receives its leave callback.
func (t *HoverTracker) LeaveSurface() {
	t.inside = false
	t.dispatch()
}

// Refresh re-tests the current pointer against every element, for when
// elements move under a still pointer.
func (t *HoverTracker) Refresh() {
	t.dispatch()
}

func (t *HoverTracker) dispatch() {
	// Callbacks may register or remove handlers; walk by id.
	ids := make([]uint32, len(t.handlers))
	for i := range t.handlers {
		ids[i] = t.handlers[i].id
	}
	for _, id := range ids {
		h := t.find(id)
		if h == nil {
			continue
		}
		over := t.inside && !h.el.IsDisposed() && h.el.Present &&
			h.el.WorldBounds().Contains(t.pointer.X, t.pointer.Y)
		if over == h.over {
			continue
		}
		h.over = over
		if over && h.enter != nil {
			h.enter()
		} else if !over && h.leave != nil {
			h.leave()
		}
	}
}

func (t *HoverTracker) find(id uint32) *hoverHandler {
	for i := range t.handlers {
		if t.handlers[i].id == id {
			return &t.handlers[i]
		}
	}
	return nil
}

// Hovered reports whether the pointer is over el.
func (t *HoverTracker) Hovered(el *Element) bool {
	return t.inside && !el.IsDisposed() && el.WorldBounds().Contains(t.pointer.X, t.pointer.Y)
}

// Pointer returns the last pointer position and whether it is over the
// surface.
func (t *HoverTracker) Pointer() (Vec2, bool) {
	return t.pointer, t.inside
}

// InjectMove queues a synthetic pointer move. The event is consumed by the
// next ProcessInjected call, one per frame, the way real input arrives.
func (t *HoverTracker) InjectMove(x, y float64) {
	t.queue = append(t.queue, syntheticHover{pos: Vec2{X: x, Y: y}})
}

// InjectLeave queues a synthetic pointer exit from the surface.
func (t *HoverTracker) InjectLeave() {
	t.queue = append(t.queue, syntheticHover{leave: true})
}

// ProcessInjected pops one queued event and applies it. It reports whether
// an event was consumed, in which case real pointer input should be skipped
// for the frame.
func (t *HoverTracker) ProcessInjected() bool {
	if len(t.queue) == 0 {
		return false
	}
	evt := t.queue[0]
	copy(t.queue, t.queue[1:])
	t.queue = t.queue[:len(t.queue)-1]
	if evt.leave {
		t.LeaveSurface()
	} else {
		t.MovePointer(evt.pos.X, evt.pos.Y)
	}
	return true
}

// Injected returns the number of queued synthetic events.
func (t *HoverTracker) Injected() int {
	return len(t.queue)
}
