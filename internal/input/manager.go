package input

// DeviceManager is the public interface of every device manager.
type DeviceManager interface {
	// Device returns the device with the given id or nil.
	Device(id int32) Device
	// DeviceIDs returns the ids of all managed devices.
	DeviceIDs() []int32
	// DevicesWithCapabilityClass returns the ids of the devices having a
	// capability of class cls. Empty if cls is not registered.
	DevicesWithCapabilityClass(cls CapabilityClass) []int32

	// CapabilityClasses returns the manager's own capability classes.
	CapabilityClasses() []CapabilityClass
	// DeviceCapabilityClasses returns the capability classes devices may have.
	DeviceCapabilityClasses() []CapabilityClass
	// ManagerCapability returns the manager's capability of class cls or nil.
	ManagerCapability(cls CapabilityClass) *Capability
	// ManagerCapabilityByID returns the manager's capability with the id or nil.
	ManagerCapabilityByID(id int32) *Capability

	// EventClasses returns the event classes the manager can send.
	EventClasses() []EventClass
	// IsEventClassEnabled reports whether events of class cls are sent.
	IsEventClassEnabled(cls EventClass) bool
	// EnableEventClass enables a class. Classes cannot be disabled.
	EnableEventClass(cls EventClass)

	// AddAccessor registers an accessor. Returns false if it was already
	// present or the manager does not support it.
	AddAccessor(a Accessor) bool
	// RemoveAccessor unregisters an accessor. Returns false if absent.
	RemoveAccessor(a Accessor) bool
	// HasAccessor reports whether the accessor is registered.
	HasAccessor(a Accessor) bool

	// AddListener adds a listener with an optional filter. Returns false if
	// the listener is already active.
	AddListener(l *Listener, c CallIf) bool
	// RemoveListener removes a listener, first sending it cancel events for
	// every open state if finalize is true. Returns false if not active.
	RemoveListener(l *Listener, finalize bool) bool
}
