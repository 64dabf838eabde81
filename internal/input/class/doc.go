// Package class assigns stable runtime identity to statically known kinds.
//
// A kind is any comparable Go value that stands for a type of capability or
// event, typically a zero-size struct type declared next to the concrete
// type:
//
//	type keyEventKind struct{}
//
//	var keyEventClass = registry.Register(keyEventKind{}, "stmi::KeyEvent", false)
//
// Each kind maps to exactly one Class, which can also be looked up by its
// string id. A Class carries one boolean tag whose meaning is chosen by the
// registry owner (device manager capability for capability classes, XY event
// for event classes).
//
// Registration is idempotent. Binding a string id that is already owned by a
// different kind is a programming error and panics. There is no removal.
//
// # Thread Safety
//
// A Registry is not safe for concurrent use. Classes are registered during
// package initialization or lazily on first use from the single goroutine
// that drives the input system.
package class
