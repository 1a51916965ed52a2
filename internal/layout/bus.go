package layout

// Bus fans resize events out to listeners. It is driven from the host
// event loop and is not safe for concurrent use.
type Bus struct {
	next      int
	listeners map[int]func(Viewport)
	last      Viewport
	seen      bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(Viewport))}
}

// Listen registers fn. The returned function removes it; calling it more
// than once is a no-op.
func (b *Bus) Listen(fn func(Viewport)) (unsubscribe func()) {
	id := b.next
	b.next++
	b.listeners[id] = fn
	return func() { delete(b.listeners, id) }
}

// Publish records vp and calls every listener with it.
func (b *Bus) Publish(vp Viewport) {
	b.last = vp
	b.seen = true
	for _, fn := range b.listeners {
		fn(vp)
	}
}

// Current returns the last published viewport.
func (b *Bus) Current() (Viewport, bool) {
	return b.last, b.seen
}

// Listeners returns the number of registered listeners.
func (b *Bus) Listeners() int {
	return len(b.listeners)
}
