package input

import (
	"weak"
)

// Accessor is an opaque backend-defined token correlating events with the
// resource (window, terminal, ...) that allowed their generation.
type Accessor interface {
	// EqualAccessor reports whether the two accessors denote the same resource.
	EqualAccessor(other Accessor) bool
}

// AccessorsEqual compares two possibly nil accessors. Two nil accessors are
// equal, a nil and a non-nil accessor are not.
func AccessorsEqual(a, b Accessor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EqualAccessor(b)
}

// Event is an immutable occurrence generated by a capability.
type Event interface {
	// EventClass returns the registered class of the event.
	EventClass() EventClass
	// TimeUsec returns the time of the event in microseconds, -1 if unknown.
	TimeUsec() int64
	// Capability returns the generating capability or nil if it no longer exists.
	Capability() *Capability
	// CapabilityID returns the id of the generating capability.
	CapabilityID() int32
	// Accessor returns the accessor that helped generate the event, possibly nil.
	Accessor() Accessor
}

// XYEvent is an event located at a position.
type XYEvent interface {
	Event
	X() float64
	Y() float64
}

// BaseEvent carries the attributes common to all events.
// Concrete event types embed it.
type BaseEvent struct {
	timeUsec     int64
	capabilityID int32
	capability   weak.Pointer[Capability]
	accessor     Accessor
	class        EventClass
}

// NewBaseEvent initializes the common event attributes.
// It panics if cls is not registered or capability is nil.
func NewBaseEvent(timeUsec int64, accessor Accessor, cls EventClass, capability *Capability) BaseEvent {
	if !cls.IsValid() {
		panic("input: event class not registered")
	}
	if capability == nil {
		panic("input: event without capability")
	}
	return BaseEvent{
		timeUsec:     timeUsec,
		capabilityID: capability.id,
		capability:   weak.Make(capability),
		accessor:     accessor,
		class:        cls,
	}
}

// EventClass returns the registered class of the event.
func (e *BaseEvent) EventClass() EventClass {
	return e.class
}

// TimeUsec returns the event time in microseconds, -1 if unknown.
func (e *BaseEvent) TimeUsec() int64 {
	return e.timeUsec
}

// Capability returns the generating capability or nil.
func (e *BaseEvent) Capability() *Capability {
	return e.capability.Value()
}

// CapabilityID returns the generating capability's id.
func (e *BaseEvent) CapabilityID() int32 {
	return e.capabilityID
}

// Accessor returns the accessor, possibly nil.
func (e *BaseEvent) Accessor() Accessor {
	return e.accessor
}

// DeviceOf returns the device that generated ev, or nil.
func DeviceOf(ev Event) Device {
	c := ev.Capability()
	if c == nil {
		return nil
	}
	return c.Device()
}
