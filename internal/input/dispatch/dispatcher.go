package dispatch

import (
	"fmt"
	"slices"
	"weak"

	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/callif"
)

// FinalizeFunc sends cancel events for every open state to the entry being
// removed, using Entry.HandleEvent.
type FinalizeFunc func(e *Entry)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// Dispatcher is the listener registry of one device manager.
type Dispatcher struct {
	classes    []input.EventClass
	classIndex map[input.EventClass]int
	finalize   FinalizeFunc

	entries   []*Entry
	dirty     bool
	recursing int
	snapshots int

	logger zerolog.Logger
}

// New creates a dispatcher for the given event classes. The class list is
// fixed for the dispatcher's lifetime. finalize may be nil when the owning
// manager never has open state.
//
// It panics if a class is not registered or appears twice.
func New(classes []input.EventClass, finalize FinalizeFunc, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		classes:    slices.Clone(classes),
		classIndex: make(map[input.EventClass]int, len(classes)),
		finalize:   finalize,
		logger:     zerolog.Nop(),
	}
	for i, cls := range classes {
		if !cls.IsValid() {
			panic(fmt.Sprintf("dispatch: event class %d not registered", i))
		}
		if _, ok := d.classIndex[cls]; ok {
			panic(fmt.Sprintf("dispatch: duplicate event class %s", cls))
		}
		d.classIndex[cls] = i
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// EventClasses returns the dispatcher's event classes.
func (d *Dispatcher) EventClasses() []input.EventClass {
	return slices.Clone(d.classes)
}

// EventClassIndex returns the index of cls in the class list, or -1.
func (d *Dispatcher) EventClassIndex(cls input.EventClass) int {
	if idx, ok := d.classIndex[cls]; ok {
		return idx
	}
	return -1
}

// AddListener adds l with an optional filter. It returns false if l already
// has an active entry. It panics if l is nil.
func (d *Dispatcher) AddListener(l *input.Listener, c input.CallIf) bool {
	if l == nil {
		panic("dispatch: nil listener")
	}
	d.collect()

	ref := weak.Make(l)
	if d.findActive(ref) != nil {
		return false
	}

	e := &Entry{
		dispatcher: d,
		listener:   ref,
		callIf:     c,
		addedStamp: input.UniqueTimeStamp(),
	}
	if c != nil {
		e.classIfs = make([]input.CallIf, len(d.classes))
		for i, cls := range d.classes {
			simplified := callif.Simplify(c, cls)
			if callif.IsTrue(simplified) {
				simplified = nil
			}
			e.classIfs[i] = simplified
		}
	}
	d.entries = append(d.entries, e)

	d.logger.Debug().
		Int64("stamp", e.addedStamp).
		Bool("filtered", c != nil).
		Int("entries", len(d.entries)).
		Msg("listener added")
	return true
}

// RemoveListener removes the active entry of l. If finalize is true the
// finalize hook is called for the entry before it is dropped. It returns
// false if l has no active entry.
func (d *Dispatcher) RemoveListener(l *input.Listener, finalize bool) bool {
	if l == nil {
		panic("dispatch: nil listener")
	}
	d.collect()

	e := d.findActive(weak.Make(l))
	if e == nil {
		return false
	}
	e.removed = true
	d.dirty = true

	d.logger.Debug().
		Int64("stamp", e.addedStamp).
		Bool("finalize", finalize).
		Msg("listener removed")

	if finalize && d.finalize != nil {
		d.finalizeEntry(e)
	}
	d.collect()
	return true
}

func (d *Dispatcher) finalizeEntry(e *Entry) {
	e.removing = true
	d.recursing++
	defer func() {
		d.recursing--
		e.removing = false
	}()
	d.finalize(e)
}

// Deliver sends ev to every entry whose filter for the event class at idx
// accepts it. A negative idx looks the class up; events of classes unknown
// to the dispatcher are filtered with the unsimplified filters. Returns the
// number of invoked listeners.
func (d *Dispatcher) Deliver(ev input.Event, idx int) int {
	return d.deliver(ev, idx, 0)
}

// DeliverSince is like Deliver but skips entries added after openedStamp,
// the unique time stamp of the event that opened the state ev closes.
func (d *Dispatcher) DeliverSince(ev input.Event, idx int, openedStamp int64) int {
	return d.deliver(ev, idx, openedStamp)
}

func (d *Dispatcher) deliver(ev input.Event, idx int, openedStamp int64) int {
	if idx < 0 {
		idx = d.EventClassIndex(ev.EventClass())
	}
	entries := d.Snapshot()
	defer d.Release()

	invoked := 0
	for _, e := range entries {
		if openedStamp > 0 && openedStamp < e.addedStamp {
			continue
		}
		if d.deliverTo(e, idx, ev, true) {
			invoked++
		}
	}
	return invoked
}

func (d *Dispatcher) deliverTo(e *Entry, idx int, ev input.Event, filtered bool) bool {
	if e.removed && !e.removing {
		return false
	}
	l := e.listener.Value()
	if l == nil {
		if !e.removed {
			e.removed = true
			d.dirty = true
			d.logger.Debug().Int64("stamp", e.addedStamp).Msg("listener collected")
		}
		return false
	}

	d.recursing++
	defer func() {
		d.recursing--
	}()

	if filtered {
		if c := e.ClassCallIf(idx); c != nil && !c.Call(ev) {
			return false
		}
	}
	l.HandleEvent(ev)
	return true
}

// Snapshot returns the current entries and defers their physical removal
// until Release is called. Entries added meanwhile are not part of the
// returned slice. The slice includes entries in state StateRemoved that are
// not purged yet, so callers check Entry.State.
func (d *Dispatcher) Snapshot() []*Entry {
	d.snapshots++
	return d.entries[:len(d.entries):len(d.entries)]
}

// Release ends a Snapshot. It panics if no snapshot is outstanding.
func (d *Dispatcher) Release() {
	if d.snapshots == 0 {
		panic("dispatch: release without snapshot")
	}
	d.snapshots--
	d.collect()
}

// Each calls fn for every entry of a snapshot that is not in state
// StateRemoved until fn returns false. Entries being finalized are visited.
func (d *Dispatcher) Each(fn func(e *Entry) bool) {
	entries := d.Snapshot()
	defer d.Release()
	for _, e := range entries {
		if e.State() == StateRemoved {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// ResetExtraDataOfAllListeners resets the extra data of every entry.
func (d *Dispatcher) ResetExtraDataOfAllListeners() {
	for _, e := range d.entries {
		if e.extra != nil {
			e.extra.Reset()
		}
	}
}

// IsWithinListenerCallback reports whether a listener callback or a
// finalization is in progress.
func (d *Dispatcher) IsWithinListenerCallback() bool {
	return d.recursing > 0
}

// Len returns the number of stored entries, including removed entries not
// yet purged.
func (d *Dispatcher) Len() int {
	return len(d.entries)
}

// ActiveLen returns the number of active entries.
func (d *Dispatcher) ActiveLen() int {
	n := 0
	for _, e := range d.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

func (d *Dispatcher) findActive(ref weak.Pointer[input.Listener]) *Entry {
	for _, e := range d.entries {
		if !e.removed && e.listener == ref {
			return e
		}
	}
	return nil
}

// collect purges removed entries when nothing can be iterating over them.
func (d *Dispatcher) collect() {
	if !d.dirty || d.recursing > 0 || d.snapshots > 0 {
		return
	}
	before := len(d.entries)
	d.entries = slices.DeleteFunc(d.entries, func(e *Entry) bool {
		return e.removed
	})
	d.dirty = false
	d.logger.Debug().Int("purged", before-len(d.entries)).Int("entries", len(d.entries)).Msg("listeners collected")
}
