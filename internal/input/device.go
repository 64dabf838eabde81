package input

import (
	"fmt"
	"slices"
	"sync/atomic"
	"weak"
)

var lastDeviceID atomic.Int32

// Device is a source of events.
type Device interface {
	// ID returns the unique device id.
	ID() int32
	// Name returns the display name, not necessarily unique.
	Name() string
	// Manager returns the managing device manager, or nil once detached.
	Manager() DeviceManager
	// Capability returns the device's capability of class cls, or nil.
	Capability(cls CapabilityClass) *Capability
	// CapabilityByID returns the device's capability with the given id, or nil.
	CapabilityByID(id int32) *Capability
	// CapabilityIDs returns the ids of all the device's capabilities.
	CapabilityIDs() []int32
	// CapabilityClasses returns the classes of all the device's capabilities.
	CapabilityClasses() []CapabilityClass
}

// StdDevice is a device whose capabilities are fixed at construction.
//
// Backends that need per-device state embed *StdDevice in their own type.
type StdDevice struct {
	id           int32
	name         string
	manager      DeviceManager
	capabilities []*Capability
}

// NewDevice creates a device with one capability per class.
//
// It panics if a class is unregistered, is a device manager capability or
// appears twice.
func NewDevice(name string, mgr DeviceManager, classes ...CapabilityClass) *StdDevice {
	d := &StdDevice{
		id:      lastDeviceID.Add(1) - 1,
		name:    name,
		manager: mgr,
	}
	self := weak.Make(d)
	for i, cls := range classes {
		if cls.IsDeviceManagerCapability() {
			panic(fmt.Sprintf("input: device %q: %s is a device manager capability", name, cls))
		}
		if slices.Contains(classes[:i], cls) {
			panic(fmt.Sprintf("input: device %q: duplicate capability class %s", name, cls))
		}
		c := newCapability(cls)
		c.device = self
		d.capabilities = append(d.capabilities, c)
	}
	return d
}

// ID returns the unique device id.
func (d *StdDevice) ID() int32 {
	return d.id
}

// Name returns the display name.
func (d *StdDevice) Name() string {
	return d.name
}

// Manager returns the device manager or nil once detached.
func (d *StdDevice) Manager() DeviceManager {
	return d.manager
}

// Detach clears the manager back-reference. Backends call it after removing
// the device from their directory.
func (d *StdDevice) Detach() {
	d.manager = nil
}

// Capability returns the capability of class cls, or nil.
func (d *StdDevice) Capability(cls CapabilityClass) *Capability {
	for _, c := range d.capabilities {
		if c.class == cls {
			return c
		}
	}
	return nil
}

// CapabilityByID returns the capability with the given id, or nil.
func (d *StdDevice) CapabilityByID(id int32) *Capability {
	for _, c := range d.capabilities {
		if c.id == id {
			return c
		}
	}
	return nil
}

// CapabilityIDs returns the ids of all capabilities in construction order.
func (d *StdDevice) CapabilityIDs() []int32 {
	ids := make([]int32, len(d.capabilities))
	for i, c := range d.capabilities {
		ids[i] = c.id
	}
	return ids
}

// CapabilityClasses returns the classes of all capabilities in construction order.
func (d *StdDevice) CapabilityClasses() []CapabilityClass {
	classes := make([]CapabilityClass, len(d.capabilities))
	for i, c := range d.capabilities {
		classes[i] = c.class
	}
	return classes
}

// HasCapabilityClass returns true if the device has a capability of class cls.
func (d *StdDevice) HasCapabilityClass(cls CapabilityClass) bool {
	return d.Capability(cls) != nil
}

func (d *StdDevice) String() string {
	return fmt.Sprintf("device %d (%s)", d.id, d.name)
}
