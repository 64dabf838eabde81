package ev

import (
	"fmt"

	"github.com/dshills/devinput/internal/input"
)

// DeviceMgmtType tells what happened to a device.
type DeviceMgmtType uint8

const (
	DeviceAdded DeviceMgmtType = iota + 1
	DeviceRemoved
	// DeviceChanged has a device specific meaning.
	DeviceChanged
)

// String returns a human-readable type name.
func (t DeviceMgmtType) String() string {
	switch t {
	case DeviceAdded:
		return "added"
	case DeviceRemoved:
		return "removed"
	case DeviceChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// DeviceMgmtEvent reports a device added to, removed from or changed in a
// device manager. It is generated by the manager's DeviceMgmt capability.
type DeviceMgmtEvent struct {
	input.BaseEvent
	typ    DeviceMgmtType
	device input.Device
}

// NewDeviceMgmtEvent creates a device management event. A removed device is
// already detached from its manager but its capabilities are still valid.
// It panics if capability is not a DeviceMgmt capability or device is nil.
func NewDeviceMgmtEvent(timeUsec int64, capability *input.Capability, typ DeviceMgmtType, device input.Device) *DeviceMgmtEvent {
	mustHaveClass(capability, DeviceMgmtCapabilityClass)
	if device == nil {
		panic("ev: device management event without device")
	}
	return &DeviceMgmtEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, nil, DeviceMgmtEventClass, capability),
		typ:       typ,
		device:    device,
	}
}

// Type returns what happened.
func (e *DeviceMgmtEvent) Type() DeviceMgmtType { return e.typ }

// Device returns the involved device.
func (e *DeviceMgmtEvent) Device() input.Device { return e.device }

func (e *DeviceMgmtEvent) String() string {
	return fmt.Sprintf("device %d %s", e.device.ID(), e.typ)
}
