package scroll

import "errors"

// ErrMounted is returned when Mount is called on a mounted coordinator.
var ErrMounted = errors.New("scroll: coordinator already mounted")

// Coordinator owns the scroll state of one page.
//
// It is driven by a single event loop (the browser's, or a test's) and is
// not safe for concurrent use.
type Coordinator struct {
	opts   Options
	state  State
	vp     Viewport
	remove func()

	observers map[int]func(State)
	nextID    int
}

// New returns an unmounted coordinator in the initial state.
func New(opts Options) *Coordinator {
	opts = opts.withDefaults()
	return &Coordinator{
		opts:      opts,
		state:     Initial(opts),
		observers: make(map[int]func(State)),
	}
}

// Options returns the effective options.
func (c *Coordinator) Options() Options {
	return c.opts
}

// State returns the current state.
func (c *Coordinator) State() State {
	return c.state
}

// Mounted reports whether the coordinator is subscribed to a viewport.
func (c *Coordinator) Mounted() bool {
	return c.vp != nil
}

// Mount subscribes to vp's scroll events. The subscription is held until
// Unmount.
func (c *Coordinator) Mount(vp Viewport) error {
	if c.vp != nil {
		return ErrMounted
	}
	c.vp = vp
	c.remove = vp.OnScroll(c.HandleScroll)
	return nil
}

// Unmount removes the scroll listener. It is safe to call more than once.
func (c *Coordinator) Unmount() {
	if c.remove != nil {
		c.remove()
	}
	c.remove = nil
	c.vp = nil
}

// Subscribe registers fn to receive the state each time it changes.
func (c *Coordinator) Subscribe(fn func(State)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

// HandleScroll recomputes the state from the mounted viewport and notifies
// observers when it changed.
func (c *Coordinator) HandleScroll() {
	if c.vp == nil {
		return
	}
	next := Derive(c.state, c.vp, c.opts)
	if next == c.state {
		return
	}
	c.state = next
	for _, fn := range c.observers {
		fn(next)
	}
}

// ScrollToSection requests a smooth scroll that puts the section just below
// the fixed header. Unknown sections are ignored.
func (c *Coordinator) ScrollToSection(id string) {
	if c.vp == nil {
		return
	}
	top, ok := c.vp.SectionOffset(id)
	if !ok {
		return
	}
	c.vp.ScrollTo(Request{Top: top - c.opts.HeaderOffset, Behavior: BehaviorSmooth})
}

// ScrollToTop requests a smooth scroll to the top of the document.
func (c *Coordinator) ScrollToTop() {
	if c.vp == nil {
		return
	}
	c.vp.ScrollTo(Request{Top: 0, Behavior: BehaviorSmooth})
}
