package motion

// Values are the concrete animated properties of an Element. Hosts read them
// every frame to render the element.
type Values struct {
	Opacity float64
	X, Y    float64 // translation offset from the layout position
	Scale   float64
	Rotate  float64 // degrees
	Blur    float64 // pixels
}

// DefaultValues is the resting state of a freshly created element.
var DefaultValues = Values{Opacity: 1, Scale: 1}

// apply writes every target set in s into v.
func (v *Values) apply(s Style) {
	if s.Opacity != nil {
		v.Opacity = *s.Opacity
	}
	if s.X != nil {
		v.X = *s.X
	}
	if s.Y != nil {
		v.Y = *s.Y
	}
	if s.Scale != nil {
		v.Scale = *s.Scale
	}
	if s.Rotate != nil {
		v.Rotate = *s.Rotate
	}
	if s.Blur != nil {
		v.Blur = *s.Blur
	}
}

// elementIDCounter is a plain counter; motion is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a mounted, animatable block: a section container, a card, a text
// segment. Bounds are in layout coordinates relative to the parent.
type Element struct {
	ID   uint32
	Name string

	Parent   *Element
	children []*Element

	Bounds Rect
	Values Values

	// Present is false once an exit transition has removed the element from
	// the rendered output.
	Present bool

	UserData any

	disposed  bool
	onDispose []disposeHook
	hookID    uint32
}

type disposeHook struct {
	id uint32
	fn func()
}

// NewElement creates an element with default values at the given layout
// bounds.
func NewElement(name string, bounds Rect) *Element {
	return &Element{
		ID:      nextElementID(),
		Name:    name,
		Bounds:  bounds,
		Values:  DefaultValues,
		Present: true,
	}
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("motion: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("motion: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("motion: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("motion: adding child would create a cycle")
	}
	if index < 0 || index > len(e.children) {
		panic("motion: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("motion: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (e *Element) RemoveChildren() {
	for _, child := range e.children {
		child.Parent = nil
	}
	e.children = e.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Element) ChildAt(index int) *Element {
	return e.children[index]
}

// WorldBounds returns the layout bounds in page coordinates by accumulating
// parent offsets. Animated translation is not included, so an element sliding
// in does not change its own viewport membership.
func (e *Element) WorldBounds() Rect {
	r := e.Bounds
	for p := e.Parent; p != nil; p = p.Parent {
		r.X += p.Bounds.X
		r.Y += p.Bounds.Y
	}
	return r
}

// --- Disposal ---

// OnDispose registers fn to run when the element is disposed (unmounted).
// The returned function unregisters it.
func (e *Element) OnDispose(fn func()) (remove func()) {
	if e.disposed {
		fn()
		return func() {}
	}
	e.hookID++
	id := e.hookID
	e.onDispose = append(e.onDispose, disposeHook{id: id, fn: fn})
	return func() {
		for i := range e.onDispose {
			if e.onDispose[i].id == id {
				copy(e.onDispose[i:], e.onDispose[i+1:])
				e.onDispose[len(e.onDispose)-1] = disposeHook{}
				e.onDispose = e.onDispose[:len(e.onDispose)-1]
				return
			}
		}
	}
}

// Dispose removes this element from its parent, marks it as disposed, runs
// its dispose hooks and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	hooks := e.onDispose
	e.onDispose = nil
	for _, h := range hooks {
		h.fn()
	}
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.UserData = nil
	e.Present = false
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of el.
func isAncestor(candidate, el *Element) bool {
	for p := el; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
