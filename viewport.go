package motion

// ObserveOptions tune when an element counts as in view.
type ObserveOptions struct {
	// Margin grows the viewport by this many pixels on every side before
	// testing. Negative values shrink it, so an element must scroll further in.
	Margin float64 `mapstructure:"margin"`
	// Threshold is the fraction of the element's area, in [0, 1], that must be
	// inside the viewport. Zero means any overlap.
	Threshold float64 `mapstructure:"threshold"`
}

func (o ObserveOptions) validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return &ConfigError{Field: "threshold", Value: o.Threshold, Err: ErrInvalidConfig}
	}
	return nil
}

// Subscription identifies one Observe registration.
type Subscription struct {
	id uint32
}

// Valid reports whether the subscription was issued by an observer.
func (s Subscription) Valid() bool {
	return s.id != 0
}

// ViewportObserver reports viewport membership changes of elements. Hosts
// implement it on top of whatever visibility signal the platform offers;
// CameraObserver and ManualObserver are the two implementations shipped here.
//
// fn is called once per membership change, never with an unchanged value.
type ViewportObserver interface {
	Observe(el *Element, opts ObserveOptions, fn func(inView bool)) Subscription
	Unobserve(sub Subscription)
}

// Membership is the observed state of one element.
type Membership struct {
	InView bool
	// Triggered latches true the first time InView becomes true.
	Triggered bool
}

type recordKey struct {
	el   *Element
	opts ObserveOptions
}

// membership is shared by every subscription watching the same element with
// the same options, so a single change is counted once.
type membership struct {
	key    recordKey
	state  Membership
	subs   []subscriber
	unhook func()
}

type subscriber struct {
	id uint32
	fn func(bool)
}

type pendingChange struct {
	rec    *membership
	inView bool
}

// membershipTable is the bookkeeping shared by the observer implementations.
// Changes requested while callbacks are running are queued and applied in
// order once the current dispatch finishes.
type membershipTable struct {
	records     map[recordKey]*membership
	bySub       map[uint32]*membership
	nextID      uint32
	dispatching bool
	pending     []pendingChange
}

func (t *membershipTable) init() {
	if t.records == nil {
		t.records = make(map[recordKey]*membership)
		t.bySub = make(map[uint32]*membership)
	}
}

func (t *membershipTable) observe(el *Element, opts ObserveOptions, fn func(bool)) Subscription {
	if el == nil || fn == nil {
		return Subscription{}
	}
	t.init()
	key := recordKey{el: el, opts: opts}
	rec := t.records[key]
	if rec == nil {
		rec = &membership{key: key}
		t.records[key] = rec
		rec.unhook = el.OnDispose(func() { t.dropRecord(rec) })
	}
	t.nextID++
	id := t.nextID
	rec.subs = append(rec.subs, subscriber{id: id, fn: fn})
	t.bySub[id] = rec
	return Subscription{id: id}
}

func (t *membershipTable) unobserve(sub Subscription) {
	rec, ok := t.bySub[sub.id]
	if !ok {
		return
	}
	delete(t.bySub, sub.id)
	for i := range rec.subs {
		if rec.subs[i].id == sub.id {
			copy(rec.subs[i:], rec.subs[i+1:])
			rec.subs[len(rec.subs)-1] = subscriber{}
			rec.subs = rec.subs[:len(rec.subs)-1]
			break
		}
	}
	if len(rec.subs) == 0 {
		if rec.unhook != nil {
			rec.unhook()
		}
		delete(t.records, rec.key)
	}
}

// dropRecord forgets every subscription of a disposed element.
func (t *membershipTable) dropRecord(rec *membership) {
	for _, s := range rec.subs {
		delete(t.bySub, s.id)
	}
	rec.subs = nil
	delete(t.records, rec.key)
}

func (t *membershipTable) lookup(sub Subscription) (Membership, bool) {
	rec, ok := t.bySub[sub.id]
	if !ok {
		return Membership{}, false
	}
	return rec.state, true
}

// set records a new membership value and notifies subscribers if it changed.
func (t *membershipTable) set(rec *membership, inView bool) {
	t.pending = append(t.pending, pendingChange{rec: rec, inView: inView})
	if t.dispatching {
		return
	}
	t.dispatching = true
	defer func() { t.dispatching = false }()
	for len(t.pending) > 0 {
		ch := t.pending[0]
		copy(t.pending, t.pending[1:])
		t.pending = t.pending[:len(t.pending)-1]
		t.apply(ch)
	}
}

func (t *membershipTable) apply(ch pendingChange) {
	rec := ch.rec
	if t.records[rec.key] != rec || rec.state.InView == ch.inView {
		return
	}
	rec.state.InView = ch.inView
	if ch.inView {
		rec.state.Triggered = true
	}
	// Snapshot: callbacks may unobserve themselves or others.
	subs := append([]subscriber(nil), rec.subs...)
	for _, s := range subs {
		if _, live := t.bySub[s.id]; !live {
			continue
		}
		s.fn(ch.inView)
	}
}

// ManualObserver is a ViewportObserver driven by explicit SetInView calls. Use
// it in tests, or on hosts whose platform delivers visibility callbacks
// directly (forward them into SetInView).
type ManualObserver struct {
	table membershipTable
}

// NewManualObserver returns an observer with every element out of view.
func NewManualObserver() *ManualObserver {
	return &ManualObserver{}
}

// Observe implements ViewportObserver.
func (o *ManualObserver) Observe(el *Element, opts ObserveOptions, fn func(bool)) Subscription {
	return o.table.observe(el, opts, fn)
}

// Unobserve implements ViewportObserver.
func (o *ManualObserver) Unobserve(sub Subscription) {
	o.table.unobserve(sub)
}

// SetInView updates the membership of el for every option set it is observed
// with.
func (o *ManualObserver) SetInView(el *Element, inView bool) {
	for _, rec := range o.recordsFor(el) {
		o.table.set(rec, inView)
	}
}

// Membership returns the current state behind a subscription.
func (o *ManualObserver) Membership(sub Subscription) (Membership, bool) {
	return o.table.lookup(sub)
}

// Subscriptions returns the number of live subscriptions.
func (o *ManualObserver) Subscriptions() int {
	return len(o.table.bySub)
}

func (o *ManualObserver) recordsFor(el *Element) []*membership {
	var out []*membership
	for k, rec := range o.table.records {
		if k.el == el {
			out = append(out, rec)
		}
	}
	return out
}
