package motion

import "time"

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// AnimationClock delivers one-shot per-frame callbacks with the frame
// timestamp, the way a browser's requestAnimationFrame does. A callback that
// wants the next frame requests it again.
type AnimationClock interface {
	RequestFrame(cb func(now time.Duration)) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	cb     func(time.Duration)
}

// TickClock is an AnimationClock driven by explicit Tick calls from the host
// loop (ebitenhost calls it once per game update) or from tests.
type TickClock struct {
	now     time.Duration
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
}

// NewTickClock returns a clock at timestamp zero.
func NewTickClock() *TickClock {
	return &TickClock{}
}

// RequestFrame implements AnimationClock.
func (c *TickClock) RequestFrame(cb func(time.Duration)) FrameHandle {
	c.next++
	c.pending = append(c.pending, frameRequest{handle: c.next, cb: cb})
	return c.next
}

// CancelFrame implements AnimationClock. Cancelling an unknown or already
// delivered handle is a no-op.
func (c *TickClock) CancelFrame(h FrameHandle) {
	for i := range c.pending {
		if c.pending[i].handle == h {
			copy(c.pending[i:], c.pending[i+1:])
			c.pending[len(c.pending)-1] = frameRequest{}
			c.pending = c.pending[:len(c.pending)-1]
			return
		}
	}
	// Cancelled from inside a callback of the same tick.
	for i := range c.running {
		if c.running[i].handle == h {
			c.running[i].cb = nil
			return
		}
	}
}

// Tick delivers every callback requested before this call with timestamp now.
// Callbacks requested while ticking run on the next Tick.
func (c *TickClock) Tick(now time.Duration) {
	c.now = now
	c.running, c.pending = c.pending, c.running[:0]
	for i := 0; i < len(c.running); i++ {
		if cb := c.running[i].cb; cb != nil {
			c.running[i].cb = nil
			cb(now)
		}
	}
	clear(c.running)
	c.running = c.running[:0]
}

// Advance ticks the clock d past its current timestamp.
func (c *TickClock) Advance(d time.Duration) {
	c.Tick(c.now + d)
}

// Now returns the timestamp of the last Tick.
func (c *TickClock) Now() time.Duration {
	return c.now
}

// Pending returns the number of outstanding frame requests. A host with no
// running path animators sees zero here.
func (c *TickClock) Pending() int {
	return len(c.pending)
}
