package input

import (
	"github.com/dshills/devinput/internal/input/class"
)

var (
	capabilityRegistry = class.NewRegistry("capability")
	eventRegistry      = class.NewRegistry("event")
)

// CapabilityClass is the registered class of a capability kind.
type CapabilityClass struct {
	class.Class
}

// IsDeviceManagerCapability returns true for capabilities owned by a device
// manager rather than by a device.
func (c CapabilityClass) IsDeviceManagerCapability() bool {
	return c.Tag()
}

// EventClass is the registered class of an event kind.
type EventClass struct {
	class.Class
}

// IsXYEvent returns true for events that implement XYEvent.
func (c EventClass) IsXYEvent() bool {
	return c.Tag()
}

// RegisterCapabilityClass registers a capability kind. See class.Registry.Register.
func RegisterCapabilityClass(kind any, id string, managerCapability bool) CapabilityClass {
	return CapabilityClass{capabilityRegistry.Register(kind, id, managerCapability)}
}

// CapabilityClassOf returns the class of a capability kind or the empty class.
func CapabilityClassOf(kind any) CapabilityClass {
	return CapabilityClass{capabilityRegistry.ClassOf(kind)}
}

// CapabilityClassByID returns the capability class with the given id or the
// empty class.
func CapabilityClassByID(id string) CapabilityClass {
	return CapabilityClass{capabilityRegistry.ClassOfID(id)}
}

// CapabilityClasses returns every registered capability class.
func CapabilityClasses() []CapabilityClass {
	all := capabilityRegistry.Classes()
	result := make([]CapabilityClass, len(all))
	for i, c := range all {
		result[i] = CapabilityClass{c}
	}
	return result
}

// RegisterEventClass registers an event kind. See class.Registry.Register.
func RegisterEventClass(kind any, id string, xy bool) EventClass {
	return EventClass{eventRegistry.Register(kind, id, xy)}
}

// EventClassOf returns the class of an event kind or the empty class.
func EventClassOf(kind any) EventClass {
	return EventClass{eventRegistry.ClassOf(kind)}
}

// EventClassByID returns the event class with the given id or the empty class.
func EventClassByID(id string) EventClass {
	return EventClass{eventRegistry.ClassOfID(id)}
}

// EventClasses returns every registered event class.
func EventClasses() []EventClass {
	all := eventRegistry.Classes()
	result := make([]EventClass, len(all))
	for i, c := range all {
		result[i] = EventClass{c}
	}
	return result
}
