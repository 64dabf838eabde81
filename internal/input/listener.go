package input

// CallIf is a boolean filter over events. Implementations must be immutable
// so that they can be shared among listeners.
type CallIf interface {
	Call(ev Event) bool
}

// ListenerFunc is the callback type of a Listener.
type ListenerFunc func(ev Event)

// Listener wraps a callback. Device managers identify listeners by pointer
// and hold them weakly: the caller must keep the *Listener reachable for as
// long as it wants to receive events.
type Listener struct {
	fn ListenerFunc
}

// NewListener creates a listener. It panics if fn is nil.
func NewListener(fn ListenerFunc) *Listener {
	if fn == nil {
		panic("input: nil listener func")
	}
	return &Listener{fn: fn}
}

// HandleEvent invokes the callback.
func (l *Listener) HandleEvent(ev Event) {
	l.fn(ev)
}
