package input

import (
	"fmt"
	"sync/atomic"
	"weak"
)

var lastCapabilityID atomic.Int32

// Capability is a typed facility of a device or of a device manager.
//
// Capability ids are allocated process-wide and never reused.
type Capability struct {
	id      int32
	class   CapabilityClass
	device  weak.Pointer[StdDevice]
	manager DeviceManager
}

func newCapability(cls CapabilityClass) *Capability {
	if !cls.IsValid() {
		panic("input: capability class not registered")
	}
	return &Capability{
		id:    lastCapabilityID.Add(1) - 1,
		class: cls,
	}
}

// NewManagerCapability creates a capability owned by a device manager.
// It panics if cls is not a device manager capability class.
func NewManagerCapability(cls CapabilityClass, mgr DeviceManager) *Capability {
	if !cls.IsDeviceManagerCapability() {
		panic(fmt.Sprintf("input: %s is not a device manager capability", cls))
	}
	c := newCapability(cls)
	c.manager = mgr
	return c
}

// ID returns the unique capability id.
func (c *Capability) ID() int32 {
	return c.id
}

// Class returns the capability class.
func (c *Capability) Class() CapabilityClass {
	return c.class
}

// Device returns the owning device, or nil for a manager capability or when
// the device no longer exists.
func (c *Capability) Device() Device {
	if d := c.device.Value(); d != nil {
		return d
	}
	return nil
}

// Manager returns the owning manager of a manager capability, or the manager
// of the owning device.
func (c *Capability) Manager() DeviceManager {
	if c.manager != nil {
		return c.manager
	}
	if d := c.device.Value(); d != nil {
		return d.Manager()
	}
	return nil
}

func (c *Capability) String() string {
	return fmt.Sprintf("%s#%d", c.class, c.id)
}
