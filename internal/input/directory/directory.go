// Package directory keeps the devices of a device manager and answers
// capability queries about them.
package directory

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/input"
)

// Querier is the read side of a directory. Composite managers take the
// union of several queriers.
type Querier interface {
	Device(id int32) input.Device
	DeviceIDs() []int32
	DevicesWithCapabilityClass(cls input.CapabilityClass) []int32
}

// Directory maps device ids to devices. It is not safe for concurrent use.
type Directory struct {
	devices map[int32]input.Device
	logger  zerolog.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Directory) {
		d.logger = l
	}
}

// New creates an empty directory.
func New(opts ...Option) *Directory {
	d := &Directory{
		devices: make(map[int32]input.Device),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddDevice adds dev. It returns false if a device with the same id is
// already present. It panics if dev is nil.
func (d *Directory) AddDevice(dev input.Device) bool {
	if dev == nil {
		panic("directory: nil device")
	}
	if _, ok := d.devices[dev.ID()]; ok {
		return false
	}
	d.devices[dev.ID()] = dev
	d.logger.Debug().Int32("device", dev.ID()).Str("name", dev.Name()).Msg("device added")
	return true
}

// RemoveDevice removes dev. It returns false if no device with its id is
// present. It panics if dev is nil.
func (d *Directory) RemoveDevice(dev input.Device) bool {
	if dev == nil {
		panic("directory: nil device")
	}
	if _, ok := d.devices[dev.ID()]; !ok {
		return false
	}
	delete(d.devices, dev.ID())
	d.logger.Debug().Int32("device", dev.ID()).Msg("device removed")
	return true
}

// Device returns the device with the given id or nil.
func (d *Directory) Device(id int32) input.Device {
	return d.devices[id]
}

// Len returns the number of devices.
func (d *Directory) Len() int {
	return len(d.devices)
}

// DeviceIDs returns the ids of all devices in ascending order.
func (d *Directory) DeviceIDs() []int32 {
	return slices.Sorted(maps.Keys(d.devices))
}

// Devices returns all devices ordered by id.
func (d *Directory) Devices() []input.Device {
	ids := d.DeviceIDs()
	result := make([]input.Device, len(ids))
	for i, id := range ids {
		result[i] = d.devices[id]
	}
	return result
}

// DevicesWithCapabilityClass returns the ids, in ascending order, of the
// devices that have a capability of class cls. The result is empty if cls
// is not registered.
func (d *Directory) DevicesWithCapabilityClass(cls input.CapabilityClass) []int32 {
	if !cls.IsValid() {
		return nil
	}
	var ids []int32
	for _, dev := range d.Devices() {
		if dev.Capability(cls) != nil {
			ids = append(ids, dev.ID())
		}
	}
	return ids
}

// Union is a Querier over several queriers. Results are deduplicated.
type Union []Querier

// Device returns the first device with the given id found in the children.
func (u Union) Device(id int32) input.Device {
	for _, q := range u {
		if dev := q.Device(id); dev != nil {
			return dev
		}
	}
	return nil
}

// DeviceIDs returns the sorted union of the children's device ids.
func (u Union) DeviceIDs() []int32 {
	var ids []int32
	for _, q := range u {
		ids = append(ids, q.DeviceIDs()...)
	}
	return sortedUnique(ids)
}

// DevicesWithCapabilityClass returns the sorted union of the children's
// results. Empty if cls is not registered.
func (u Union) DevicesWithCapabilityClass(cls input.CapabilityClass) []int32 {
	if !cls.IsValid() {
		return nil
	}
	var ids []int32
	for _, q := range u {
		ids = append(ids, q.DevicesWithCapabilityClass(cls)...)
	}
	return sortedUnique(ids)
}

func sortedUnique(ids []int32) []int32 {
	slices.Sort(ids)
	return slices.Compact(ids)
}
