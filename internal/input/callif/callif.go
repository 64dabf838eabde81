package callif

import (
	"fmt"

	"github.com/dshills/devinput/internal/input"
)

// Const is a constant filter. Use the True and False singletons.
type Const struct {
	value bool
}

var (
	// True accepts every event.
	True = &Const{value: true}
	// False rejects every event.
	False = &Const{value: false}
)

// Call returns the constant.
func (c *Const) Call(input.Event) bool { return c.value }

// Value returns the constant.
func (c *Const) Value() bool { return c.value }

func (c *Const) String() string {
	if c.value {
		return "true"
	}
	return "false"
}

// And accepts events accepted by both children.
type And struct {
	first, second input.CallIf
}

// NewAnd panics if a child is nil.
func NewAnd(first, second input.CallIf) *And {
	mustNotBeNil("and", first, second)
	return &And{first: first, second: second}
}

// Call evaluates the first child, then the second if needed.
func (c *And) Call(ev input.Event) bool {
	return c.first.Call(ev) && c.second.Call(ev)
}

// Children returns both operands.
func (c *And) Children() (input.CallIf, input.CallIf) { return c.first, c.second }

func (c *And) String() string {
	return fmt.Sprintf("and(%s, %s)", String(c.first), String(c.second))
}

// Or accepts events accepted by either child.
type Or struct {
	first, second input.CallIf
}

// NewOr panics if a child is nil.
func NewOr(first, second input.CallIf) *Or {
	mustNotBeNil("or", first, second)
	return &Or{first: first, second: second}
}

// Call evaluates the first child, then the second if needed.
func (c *Or) Call(ev input.Event) bool {
	return c.first.Call(ev) || c.second.Call(ev)
}

// Children returns both operands.
func (c *Or) Children() (input.CallIf, input.CallIf) { return c.first, c.second }

func (c *Or) String() string {
	return fmt.Sprintf("or(%s, %s)", String(c.first), String(c.second))
}

// Not negates its child.
type Not struct {
	negated input.CallIf
}

// NewNot panics if c is nil.
func NewNot(c input.CallIf) *Not {
	mustNotBeNil("not", c)
	return &Not{negated: c}
}

// Call negates the child's result.
func (c *Not) Call(ev input.Event) bool {
	return !c.negated.Call(ev)
}

// Negated returns the operand.
func (c *Not) Negated() input.CallIf { return c.negated }

func (c *Not) String() string {
	return fmt.Sprintf("not(%s)", String(c.negated))
}

// All folds filters into nested And nodes. All() is True.
func All(cs ...input.CallIf) input.CallIf {
	if len(cs) == 0 {
		return True
	}
	mustNotBeNil("all", cs...)
	result := cs[0]
	for _, c := range cs[1:] {
		result = &And{first: result, second: c}
	}
	return result
}

// Any folds filters into nested Or nodes. Any() is False.
func Any(cs ...input.CallIf) input.CallIf {
	if len(cs) == 0 {
		return False
	}
	mustNotBeNil("any", cs...)
	result := cs[0]
	for _, c := range cs[1:] {
		result = &Or{first: result, second: c}
	}
	return result
}

// AccessorIs accepts events generated with an equal accessor.
// A nil accessor selects events that needed no accessor.
type AccessorIs struct {
	accessor input.Accessor
}

// NewAccessorIs creates an accessor filter. a may be nil.
func NewAccessorIs(a input.Accessor) *AccessorIs {
	return &AccessorIs{accessor: a}
}

// Call compares the event's accessor. Two nil accessors match.
func (c *AccessorIs) Call(ev input.Event) bool {
	return input.AccessorsEqual(c.accessor, ev.Accessor())
}

// Accessor returns the selected accessor, possibly nil.
func (c *AccessorIs) Accessor() input.Accessor { return c.accessor }

func (c *AccessorIs) String() string {
	if c.accessor == nil {
		return "accessor(nil)"
	}
	return fmt.Sprintf("accessor(%v)", c.accessor)
}

// DeviceIs accepts events generated by the device with the given id.
// With a negative id it accepts events whose capability has no device, that
// is manager capabilities and capabilities of devices that no longer exist.
type DeviceIs struct {
	id int32
}

// NewDeviceIs creates a device filter. Negative ids are normalized to -1.
func NewDeviceIs(id int32) *DeviceIs {
	if id < 0 {
		id = -1
	}
	return &DeviceIs{id: id}
}

// NewNoDevice is NewDeviceIs(-1).
func NewNoDevice() *DeviceIs {
	return &DeviceIs{id: -1}
}

// Call tests the device of the event's capability. An event whose
// capability no longer exists is rejected.
func (c *DeviceIs) Call(ev input.Event) bool {
	capability := ev.Capability()
	if capability == nil {
		return false
	}
	device := capability.Device()
	if c.id < 0 {
		return device == nil
	}
	return device != nil && device.ID() == c.id
}

// DeviceID returns the selected id, -1 for no device.
func (c *DeviceIs) DeviceID() int32 { return c.id }

func (c *DeviceIs) String() string {
	return fmt.Sprintf("device(%d)", c.id)
}

// CapabilityIs accepts events generated by the capability with the given id.
type CapabilityIs struct {
	id int32
}

// NewCapabilityIs panics if id is negative.
func NewCapabilityIs(id int32) *CapabilityIs {
	if id < 0 {
		panic(fmt.Sprintf("callif: negative capability id %d", id))
	}
	return &CapabilityIs{id: id}
}

// Call compares capability ids. It works even if the capability is gone.
func (c *CapabilityIs) Call(ev input.Event) bool {
	return ev.CapabilityID() == c.id
}

// CapabilityID returns the selected id.
func (c *CapabilityIs) CapabilityID() int32 { return c.id }

func (c *CapabilityIs) String() string {
	return fmt.Sprintf("capability(%d)", c.id)
}

// CapabilityClassIs accepts events generated by capabilities of a class.
type CapabilityClassIs struct {
	class input.CapabilityClass
}

// NewCapabilityClassIs creates a capability class filter.
func NewCapabilityClassIs(cls input.CapabilityClass) *CapabilityClassIs {
	return &CapabilityClassIs{class: cls}
}

// NewCapabilityClassByID resolves id in the capability class registry.
// An unknown id yields a filter that never matches.
func NewCapabilityClassByID(id string) *CapabilityClassIs {
	return &CapabilityClassIs{class: input.CapabilityClassByID(id)}
}

// Call rejects events whose capability no longer exists.
func (c *CapabilityClassIs) Call(ev input.Event) bool {
	capability := ev.Capability()
	if capability == nil {
		return false
	}
	return capability.Class() == c.class
}

// Class returns the selected class.
func (c *CapabilityClassIs) Class() input.CapabilityClass { return c.class }

func (c *CapabilityClassIs) String() string {
	return fmt.Sprintf("capability-class(%s)", c.class)
}

// ManagerCapability accepts events generated by device manager capabilities.
type ManagerCapability struct{}

// NewManagerCapability creates a manager capability filter.
func NewManagerCapability() *ManagerCapability {
	return &ManagerCapability{}
}

// Call rejects events whose capability no longer exists.
func (c *ManagerCapability) Call(ev input.Event) bool {
	capability := ev.Capability()
	if capability == nil {
		return false
	}
	return capability.Class().IsDeviceManagerCapability()
}

func (c *ManagerCapability) String() string { return "manager-capability" }

// EventClassIs accepts events of a class.
type EventClassIs struct {
	class input.EventClass
}

// NewEventClassIs creates an event class filter.
func NewEventClassIs(cls input.EventClass) *EventClassIs {
	return &EventClassIs{class: cls}
}

// NewEventClassByID resolves id in the event class registry.
// An unknown id yields a filter that never matches.
func NewEventClassByID(id string) *EventClassIs {
	return &EventClassIs{class: input.EventClassByID(id)}
}

// Call compares the event class.
func (c *EventClassIs) Call(ev input.Event) bool {
	return ev.EventClass() == c.class
}

// Class returns the selected class.
func (c *EventClassIs) Class() input.EventClass { return c.class }

func (c *EventClassIs) String() string {
	return fmt.Sprintf("event-class(%s)", c.class)
}

// XYEvent accepts events whose class is an XY event class.
type XYEvent struct{}

// NewXYEvent creates an XY event filter.
func NewXYEvent() *XYEvent {
	return &XYEvent{}
}

// Call tests the event class tag.
func (c *XYEvent) Call(ev input.Event) bool {
	return ev.EventClass().IsXYEvent()
}

func (c *XYEvent) String() string { return "xy" }

// Func wraps an arbitrary test. It is never simplified.
type Func struct {
	name string
	fn   func(input.Event) bool
}

// NewFunc panics if fn is nil. The name only appears in String.
func NewFunc(name string, fn func(input.Event) bool) *Func {
	if fn == nil {
		panic("callif: nil func")
	}
	return &Func{name: name, fn: fn}
}

// Call invokes the wrapped function.
func (c *Func) Call(ev input.Event) bool {
	return c.fn(ev)
}

// Name returns the descriptive name.
func (c *Func) Name() string { return c.name }

func (c *Func) String() string {
	return fmt.Sprintf("func(%s)", c.name)
}

// String describes c. Filters not defined by this package are described
// with their Go type.
func String(c input.CallIf) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}

func mustNotBeNil(op string, cs ...input.CallIf) {
	for i, c := range cs {
		if c == nil {
			panic(fmt.Sprintf("callif: %s: nil operand %d", op, i))
		}
	}
}
