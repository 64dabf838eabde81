package dispatch

import (
	"fmt"
	"weak"

	"github.com/dshills/devinput/internal/input"
)

// State is the lifecycle state of a listener entry.
type State int32

const (
	// StateActive means the entry receives events.
	StateActive State = iota

	// StateRemoving means the entry is removed but still receives the cancel
	// events of its finalization.
	StateRemoving

	// StateRemoved means the entry is logically gone and waits to be purged.
	StateRemoved
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRemoving:
		return "removing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// ExtraData is backend state attached to an entry, for example the set of
// keys for which a cancel event was already sent.
type ExtraData interface {
	// Reset returns the data to its initial state.
	Reset()
}

// Entry is a listener registration.
type Entry struct {
	dispatcher *Dispatcher
	listener   weak.Pointer[input.Listener]
	callIf     input.CallIf
	classIfs   []input.CallIf
	addedStamp int64
	removed    bool
	removing   bool
	extra      ExtraData
}

// AddedStamp returns the unique time stamp taken when the entry was added.
func (e *Entry) AddedStamp() int64 {
	return e.addedStamp
}

// CallIf returns the filter passed to AddListener, possibly nil.
func (e *Entry) CallIf() input.CallIf {
	return e.callIf
}

// ClassCallIf returns the filter simplified for the event class at index
// idx. Nil means every event of the class is delivered. For an index outside
// the dispatcher's class list the unsimplified filter is returned.
func (e *Entry) ClassCallIf(idx int) input.CallIf {
	if e.classIfs == nil {
		return nil
	}
	if idx < 0 || idx >= len(e.classIfs) {
		return e.callIf
	}
	return e.classIfs[idx]
}

// State returns the lifecycle state.
func (e *Entry) State() State {
	switch {
	case e.removing:
		return StateRemoving
	case e.removed:
		return StateRemoved
	default:
		return StateActive
	}
}

// Listener returns the listener, or nil if it was garbage collected.
func (e *Entry) Listener() *input.Listener {
	return e.listener.Value()
}

// HandleEvent delivers ev to this entry only, if its filter for the event
// class at idx accepts it. A negative idx looks the class up. Returns true if
// the listener was invoked.
func (e *Entry) HandleEvent(idx int, ev input.Event) bool {
	if idx < 0 {
		idx = e.dispatcher.EventClassIndex(ev.EventClass())
	}
	return e.dispatcher.deliverTo(e, idx, ev, true)
}

// HandleEventUnfiltered delivers ev to this entry only, ignoring its filter.
func (e *Entry) HandleEventUnfiltered(ev input.Event) bool {
	return e.dispatcher.deliverTo(e, -1, ev, false)
}

// Extra returns the extra data of e, creating and resetting a new T on first
// use. It panics if e already holds extra data of another type.
func Extra[T any, PT interface {
	*T
	ExtraData
}](e *Entry) PT {
	if e.extra == nil {
		data := PT(new(T))
		data.Reset()
		e.extra = data
		return data
	}
	data, ok := e.extra.(PT)
	if !ok {
		panic(fmt.Sprintf("dispatch: entry holds extra data of type %T, not %T", e.extra, data))
	}
	return data
}
