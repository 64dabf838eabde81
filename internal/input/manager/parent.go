package manager

import (
	"slices"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/directory"
)

// ParentManager presents several device managers as one.
type ParentManager struct {
	children []input.DeviceManager
	devices  directory.Union
}

// NewParent creates a composite manager. It panics if no child is given or
// a child is nil.
func NewParent(children ...input.DeviceManager) *ParentManager {
	if len(children) == 0 {
		panic("manager: parent without children")
	}
	p := &ParentManager{children: slices.Clone(children)}
	for _, c := range children {
		if c == nil {
			panic("manager: nil child")
		}
		p.devices = append(p.devices, c)
	}
	return p
}

// Children returns the child managers.
func (p *ParentManager) Children() []input.DeviceManager {
	return slices.Clone(p.children)
}

// Device returns the first child device with the given id.
func (p *ParentManager) Device(id int32) input.Device {
	return p.devices.Device(id)
}

// DeviceIDs returns the union of the children's device ids.
func (p *ParentManager) DeviceIDs() []int32 {
	return p.devices.DeviceIDs()
}

// DevicesWithCapabilityClass returns the union of the children's results.
func (p *ParentManager) DevicesWithCapabilityClass(cls input.CapabilityClass) []int32 {
	return p.devices.DevicesWithCapabilityClass(cls)
}

// CapabilityClasses returns the union of the children's manager capability classes.
func (p *ParentManager) CapabilityClasses() []input.CapabilityClass {
	return unionOf(p.children, input.DeviceManager.CapabilityClasses)
}

// DeviceCapabilityClasses returns the union of the children's device capability classes.
func (p *ParentManager) DeviceCapabilityClasses() []input.CapabilityClass {
	return unionOf(p.children, input.DeviceManager.DeviceCapabilityClasses)
}

// EventClasses returns the union of the children's event classes.
func (p *ParentManager) EventClasses() []input.EventClass {
	return unionOf(p.children, input.DeviceManager.EventClasses)
}

// ManagerCapability returns the first child capability of class cls.
func (p *ParentManager) ManagerCapability(cls input.CapabilityClass) *input.Capability {
	for _, c := range p.children {
		if capability := c.ManagerCapability(cls); capability != nil {
			return capability
		}
	}
	return nil
}

// ManagerCapabilities returns the capabilities of class cls of all children.
func (p *ParentManager) ManagerCapabilities(cls input.CapabilityClass) []*input.Capability {
	var result []*input.Capability
	for _, c := range p.children {
		if nested, ok := c.(*ParentManager); ok {
			result = append(result, nested.ManagerCapabilities(cls)...)
			continue
		}
		if capability := c.ManagerCapability(cls); capability != nil {
			result = append(result, capability)
		}
	}
	return result
}

// ManagerCapabilityByID returns the child manager capability with the id.
func (p *ParentManager) ManagerCapabilityByID(id int32) *input.Capability {
	for _, c := range p.children {
		if capability := c.ManagerCapabilityByID(id); capability != nil {
			return capability
		}
	}
	return nil
}

// IsEventClassEnabled reports whether any child has cls enabled.
func (p *ParentManager) IsEventClassEnabled(cls input.EventClass) bool {
	return slices.ContainsFunc(p.children, func(c input.DeviceManager) bool {
		return c.IsEventClassEnabled(cls)
	})
}

// EnableEventClass enables cls in every child.
func (p *ParentManager) EnableEventClass(cls input.EventClass) {
	for _, c := range p.children {
		c.EnableEventClass(cls)
	}
}

// AddAccessor adds a to every child. It returns true if any child added it.
func (p *ParentManager) AddAccessor(a input.Accessor) bool {
	return p.broadcast(func(c input.DeviceManager) bool { return c.AddAccessor(a) })
}

// RemoveAccessor removes a from every child. It returns true if any child
// removed it.
func (p *ParentManager) RemoveAccessor(a input.Accessor) bool {
	return p.broadcast(func(c input.DeviceManager) bool { return c.RemoveAccessor(a) })
}

// HasAccessor reports whether any child has a.
func (p *ParentManager) HasAccessor(a input.Accessor) bool {
	return slices.ContainsFunc(p.children, func(c input.DeviceManager) bool {
		return c.HasAccessor(a)
	})
}

// AddListener adds l to every child. It returns true if any child added it.
func (p *ParentManager) AddListener(l *input.Listener, c input.CallIf) bool {
	return p.broadcast(func(child input.DeviceManager) bool { return child.AddListener(l, c) })
}

// RemoveListener removes l from every child. It returns true if any child
// removed it.
func (p *ParentManager) RemoveListener(l *input.Listener, finalize bool) bool {
	return p.broadcast(func(c input.DeviceManager) bool { return c.RemoveListener(l, finalize) })
}

// broadcast calls fn on every child, without short-circuit.
func (p *ParentManager) broadcast(fn func(c input.DeviceManager) bool) bool {
	result := false
	for _, c := range p.children {
		if fn(c) {
			result = true
		}
	}
	return result
}

func unionOf[T comparable](children []input.DeviceManager, get func(input.DeviceManager) []T) []T {
	var result []T
	for _, c := range children {
		for _, v := range get(c) {
			if !slices.Contains(result, v) {
				result = append(result, v)
			}
		}
	}
	return result
}
