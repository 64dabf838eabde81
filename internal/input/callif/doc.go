// Package callif provides the event filter algebra used by listeners.
//
// A filter is an input.CallIf. The package offers constants (True, False),
// combinators (And, Or, Not and the variadic All and Any) and leaf tests on
// the accessor, device, capability and event class of an event. Func wraps
// arbitrary Go code.
//
// Filters are immutable and may be shared. Simplify specializes a filter for
// one event class ahead of time: every test that can be decided from the
// class alone is folded to a constant, so that a dispatcher evaluates as
// little as possible per event.
//
//	f := callif.All(callif.NewEventClassIs(ev.KeyEventClass), callif.NewDeviceIs(3))
//	callif.Simplify(f, ev.KeyEventClass)     // device(3)
//	callif.Simplify(f, ev.PointerEventClass) // false
package callif
