// Package dispatch implements the listener registry of a device manager.
//
// A Dispatcher owns an ordered list of listener entries and delivers events
// to them synchronously. Listener callbacks may add or remove listeners,
// including themselves, and may trigger nested deliveries. Physical removal
// of entries is deferred until no delivery, finalization or snapshot is in
// progress, so an iteration never observes a shrinking list.
//
// # Entry Lifecycle
//
//	Active ──RemoveListener──▶ Removed
//	Active ──RemoveListener(finalize)──▶ Removing ──▶ Removed
//
// A Removing entry is already logically removed (the same listener can be
// added again) but still receives the cancel events that the finalize hook
// sends to it through Entry.HandleEvent.
//
// # Filters
//
// When a listener is added with a filter, the filter is simplified once for
// each event class the dispatcher knows about. A filter that simplifies to
// true is dropped; one that simplifies to false is kept, since the listener
// may still receive events of other classes.
//
// # Thread Safety
//
// A Dispatcher is not safe for concurrent use.
package dispatch
