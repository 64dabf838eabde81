package manager

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/directory"
	"github.com/dshills/devinput/internal/input/dispatch"
)

// Config declares the fixed class lists of a manager.
type Config struct {
	// ManagerCapabilityClasses are the capabilities of the manager itself.
	// Every class must be a device manager capability class.
	ManagerCapabilityClasses []input.CapabilityClass

	// DeviceCapabilityClasses are the capabilities devices may have.
	// No class may be a device manager capability class.
	DeviceCapabilityClasses []input.CapabilityClass

	// EventClasses are the classes of the events the manager sends.
	EventClasses []input.EventClass

	// EnableByDefault is the initial state of every event class not listed
	// in Exceptions. Listed classes start in the opposite state.
	EnableByDefault bool

	// Exceptions lists event classes starting in the opposite state.
	// Classes not in EventClasses are ignored.
	Exceptions []input.EventClass

	// Accessors enables accessor tracking. Without it AddAccessor always
	// returns false.
	Accessors bool
}

func (c Config) validate() {
	for i, cls := range c.ManagerCapabilityClasses {
		if !cls.IsDeviceManagerCapability() {
			panic(fmt.Sprintf("manager: %s is not a device manager capability class", cls))
		}
		if slices.Contains(c.ManagerCapabilityClasses[:i], cls) {
			panic(fmt.Sprintf("manager: duplicate manager capability class %s", cls))
		}
	}
	for i, cls := range c.DeviceCapabilityClasses {
		if !cls.IsValid() || cls.IsDeviceManagerCapability() {
			panic(fmt.Sprintf("manager: %s is not a device capability class", cls))
		}
		if slices.Contains(c.DeviceCapabilityClasses[:i], cls) {
			panic(fmt.Sprintf("manager: duplicate device capability class %s", cls))
		}
	}
}

// Option configures a StdManager.
type Option func(*StdManager)

// WithLogger sets the logger of the manager, its directory and dispatcher.
func WithLogger(l zerolog.Logger) Option {
	return func(m *StdManager) {
		m.logger = l
	}
}

// WithOwner sets the manager that manager capabilities report as their
// owner. Backends embedding *StdManager pass themselves.
func WithOwner(owner input.DeviceManager) Option {
	return func(m *StdManager) {
		m.owner = owner
	}
}

// StdManager implements input.DeviceManager over a directory and a
// dispatcher. It is not safe for concurrent use.
type StdManager struct {
	config              Config
	owner               input.DeviceManager
	managerCapabilities []*input.Capability
	enabled             []bool
	devices             *directory.Directory
	listeners           *dispatch.Dispatcher
	accessors           []input.Accessor
	cancelDepth         int
	logger              zerolog.Logger
}

// New creates a manager. finalize is called for each listener removed with
// finalization and may be nil.
//
// It panics if the class lists contain duplicates or misclassified
// capability classes.
func New(cfg Config, finalize dispatch.FinalizeFunc, opts ...Option) *StdManager {
	cfg.validate()
	m := &StdManager{
		config: Config{
			ManagerCapabilityClasses: slices.Clone(cfg.ManagerCapabilityClasses),
			DeviceCapabilityClasses:  slices.Clone(cfg.DeviceCapabilityClasses),
			EventClasses:             slices.Clone(cfg.EventClasses),
			EnableByDefault:          cfg.EnableByDefault,
			Exceptions:               slices.Clone(cfg.Exceptions),
			Accessors:                cfg.Accessors,
		},
		logger: zerolog.Nop(),
	}
	m.owner = m
	for _, opt := range opts {
		opt(m)
	}

	m.devices = directory.New(directory.WithLogger(m.logger))
	m.listeners = dispatch.New(cfg.EventClasses, finalize, dispatch.WithLogger(m.logger))

	m.enabled = make([]bool, len(cfg.EventClasses))
	for i, cls := range cfg.EventClasses {
		m.enabled[i] = cfg.EnableByDefault != slices.Contains(cfg.Exceptions, cls)
	}
	for _, cls := range cfg.ManagerCapabilityClasses {
		m.managerCapabilities = append(m.managerCapabilities, input.NewManagerCapability(cls, m.owner))
	}
	return m
}

// Logger returns the manager's logger.
func (m *StdManager) Logger() zerolog.Logger {
	return m.logger
}

// Device returns the device with the given id or nil.
func (m *StdManager) Device(id int32) input.Device {
	return m.devices.Device(id)
}

// DeviceIDs returns the ids of all devices in ascending order.
func (m *StdManager) DeviceIDs() []int32 {
	return m.devices.DeviceIDs()
}

// Devices returns all devices ordered by id.
func (m *StdManager) Devices() []input.Device {
	return m.devices.Devices()
}

// DevicesWithCapabilityClass returns the ids of the devices having a
// capability of class cls.
func (m *StdManager) DevicesWithCapabilityClass(cls input.CapabilityClass) []int32 {
	return m.devices.DevicesWithCapabilityClass(cls)
}

// AddDevice registers a device created by the backend. It returns false if
// the id is already present. The backend sends the device added event.
func (m *StdManager) AddDevice(dev input.Device) bool {
	return m.devices.AddDevice(dev)
}

// RemoveDevice unregisters a device. It returns false if absent. The backend
// cancels the device's open state and sends the device removed event.
func (m *StdManager) RemoveDevice(dev input.Device) bool {
	return m.devices.RemoveDevice(dev)
}

// CapabilityClasses returns the manager capability classes.
func (m *StdManager) CapabilityClasses() []input.CapabilityClass {
	return slices.Clone(m.config.ManagerCapabilityClasses)
}

// DeviceCapabilityClasses returns the device capability classes.
func (m *StdManager) DeviceCapabilityClasses() []input.CapabilityClass {
	return slices.Clone(m.config.DeviceCapabilityClasses)
}

// ManagerCapability returns the manager capability of class cls or nil.
func (m *StdManager) ManagerCapability(cls input.CapabilityClass) *input.Capability {
	for _, c := range m.managerCapabilities {
		if c.Class() == cls {
			return c
		}
	}
	return nil
}

// ManagerCapabilityByID returns the manager capability with the id or nil.
func (m *StdManager) ManagerCapabilityByID(id int32) *input.Capability {
	for _, c := range m.managerCapabilities {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// EventClasses returns the event classes.
func (m *StdManager) EventClasses() []input.EventClass {
	return slices.Clone(m.config.EventClasses)
}

// EventClassIndex returns the index of cls in EventClasses, or -1.
func (m *StdManager) EventClassIndex(cls input.EventClass) int {
	return m.listeners.EventClassIndex(cls)
}

// IsEventClassEnabled reports whether events of class cls are sent.
// Classes unknown to the manager are never enabled.
func (m *StdManager) IsEventClassEnabled(cls input.EventClass) bool {
	idx := m.listeners.EventClassIndex(cls)
	return idx >= 0 && m.enabled[idx]
}

// EnableEventClass enables cls. Unknown classes are ignored.
func (m *StdManager) EnableEventClass(cls input.EventClass) {
	idx := m.listeners.EventClassIndex(cls)
	if idx < 0 || m.enabled[idx] {
		return
	}
	m.enabled[idx] = true
	m.logger.Debug().Str("class", cls.ID()).Msg("event class enabled")
}

// AddAccessor registers a. It returns false if accessors are not supported,
// a is nil or an equal accessor is already registered.
func (m *StdManager) AddAccessor(a input.Accessor) bool {
	if !m.config.Accessors || a == nil || m.HasAccessor(a) {
		return false
	}
	m.accessors = append(m.accessors, a)
	return true
}

// RemoveAccessor unregisters a. It returns false if it was not registered.
func (m *StdManager) RemoveAccessor(a input.Accessor) bool {
	idx := slices.IndexFunc(m.accessors, func(other input.Accessor) bool {
		return input.AccessorsEqual(a, other)
	})
	if idx < 0 {
		return false
	}
	m.accessors = slices.Delete(m.accessors, idx, idx+1)
	return true
}

// HasAccessor reports whether an equal accessor is registered.
func (m *StdManager) HasAccessor(a input.Accessor) bool {
	if a == nil {
		return false
	}
	return slices.ContainsFunc(m.accessors, func(other input.Accessor) bool {
		return input.AccessorsEqual(a, other)
	})
}

// AddListener adds l with an optional filter.
func (m *StdManager) AddListener(l *input.Listener, c input.CallIf) bool {
	return m.listeners.AddListener(l, c)
}

// RemoveListener removes l, finalizing it first if requested.
func (m *StdManager) RemoveListener(l *input.Listener, finalize bool) bool {
	return m.listeners.RemoveListener(l, finalize)
}

// Send delivers ev to all listeners if its class is enabled. It returns the
// number of invoked listeners.
func (m *StdManager) Send(ev input.Event) int {
	idx := m.enabledIndex(ev)
	if idx < 0 {
		return 0
	}
	return m.listeners.Deliver(ev, idx)
}

// SendSince delivers ev, which closes state opened at openedStamp, to the
// listeners that were already present when the state was opened.
func (m *StdManager) SendSince(ev input.Event, openedStamp int64) int {
	idx := m.enabledIndex(ev)
	if idx < 0 {
		return 0
	}
	return m.listeners.DeliverSince(ev, idx, openedStamp)
}

// SendTo delivers ev to a single entry, typically from a finalize hook.
func (m *StdManager) SendTo(e *dispatch.Entry, ev input.Event) bool {
	idx := m.enabledIndex(ev)
	if idx < 0 {
		return false
	}
	return e.HandleEvent(idx, ev)
}

func (m *StdManager) enabledIndex(ev input.Event) int {
	idx := m.listeners.EventClassIndex(ev.EventClass())
	if idx < 0 || !m.enabled[idx] {
		return -1
	}
	return idx
}

// EachListener calls fn for every listener entry that is not removed until
// fn returns false.
func (m *StdManager) EachListener(fn func(e *dispatch.Entry) bool) {
	m.listeners.Each(fn)
}

// ListenerCount returns the number of active listeners.
func (m *StdManager) ListenerCount() int {
	return m.listeners.ActiveLen()
}

// IsWithinListenerCallback reports whether a delivery or finalization is in
// progress.
func (m *StdManager) IsWithinListenerCallback() bool {
	return m.listeners.IsWithinListenerCallback()
}

// BeginCancelFrame starts sending cancel events. Frames nest.
func (m *StdManager) BeginCancelFrame() {
	m.cancelDepth++
}

// EndCancelFrame ends a frame. When the outermost frame ends the extra data
// of every listener is reset. It panics without a matching Begin.
func (m *StdManager) EndCancelFrame() {
	if m.cancelDepth == 0 {
		panic("manager: cancel frame not begun")
	}
	m.cancelDepth--
	if m.cancelDepth == 0 {
		m.listeners.ResetExtraDataOfAllListeners()
	}
}

// IsCanceling reports whether a cancel frame is open.
func (m *StdManager) IsCanceling() bool {
	return m.cancelDepth > 0
}
