// Package fake provides a device manager whose devices and events are
// simulated by the caller.
//
// Unlike a real backend the fake keeps track of open state (pressed keys and
// buttons, active touches, joystick buttons and off-center hats) so that closing events only reach listeners that
// saw the opening event, device removal cancels what is still open, and
// listeners removed with finalization get the matching cancel events.
//
// The Simulate methods return the number of listeners the event was sent to,
// or -1 if the device does not exist, lacks the needed capability, the event
// class is disabled or the transition is inconsistent with the tracked state.
package fake

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/dispatch"
	"github.com/dshills/devinput/internal/input/ev"
	"github.com/dshills/devinput/internal/input/manager"
)

type options struct {
	enableByDefault bool
	exceptions      []input.EventClass
	logger          zerolog.Logger
}

// Option configures a Manager.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEventClasses sets the initial enablement of the event classes: all
// classes start in state enableByDefault except the exceptions, which start
// in the opposite state. Without this option every class is enabled.
func WithEventClasses(enableByDefault bool, exceptions ...input.EventClass) Option {
	return func(o *options) {
		o.enableByDefault = enableByDefault
		o.exceptions = exceptions
	}
}

type openKind uint8

const (
	openKey openKind = iota
	openButton
	openTouch
	openJoystickButton
	openHat
)

// openState is a pressed key or button, an active touch or an off-center
// hat.
type openState struct {
	device int32
	kind   openKind
	code   int64
	stamp  int64
	x, y   float64
	hat    ev.HatValue
}

func (s *openState) matches(device int32, kind openKind, code int64) bool {
	return s.device == device && s.kind == kind && s.code == code
}

// canceledStates remembers the open states already canceled for a listener.
type canceledStates struct {
	stamps []int64
}

func (c *canceledStates) Reset() {
	c.stamps = c.stamps[:0]
}

// Manager is a fake device manager supporting the key, pointer, touch and
// joystick device capabilities and the DeviceMgmt manager capability.
type Manager struct {
	*manager.StdManager
	open   []*openState
	logger zerolog.Logger
}

var _ input.DeviceManager = (*Manager)(nil)

// New creates a fake manager without devices.
func New(opts ...Option) *Manager {
	o := options{enableByDefault: true, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	m := &Manager{logger: o.logger}
	m.StdManager = manager.New(manager.Config{
		ManagerCapabilityClasses: []input.CapabilityClass{ev.DeviceMgmtCapabilityClass},
		DeviceCapabilityClasses:  ev.DeviceCapabilityClasses(),
		EventClasses:             ev.EventClasses(),
		EnableByDefault:          o.enableByDefault,
		Exceptions:               o.exceptions,
	}, m.finalizeListener, manager.WithOwner(m), manager.WithLogger(o.logger))
	return m
}

// SimulateNewDevice adds a device with the given capability classes and
// sends a device added event. It returns the new device id.
// It panics if a class is not a device capability class of the manager.
func (m *Manager) SimulateNewDevice(name string, classes ...input.CapabilityClass) int32 {
	supported := m.DeviceCapabilityClasses()
	for _, cls := range classes {
		if !slices.Contains(supported, cls) {
			panic(fmt.Sprintf("fake: unsupported capability class %s", cls))
		}
	}
	dev := input.NewDevice(name, m, classes...)
	m.AddDevice(dev)
	m.logger.Debug().Int32("device", dev.ID()).Str("name", name).Msg("device added")
	m.sendDeviceMgmt(ev.DeviceAdded, dev)
	return dev.ID()
}

// SimulateRemoveDevice cancels the open state of a device, removes it and
// sends a device removed event. It returns false if there is no such device.
func (m *Manager) SimulateRemoveDevice(id int32) bool {
	dev := m.Device(id)
	if dev == nil {
		return false
	}
	m.cancelDevice(dev)
	m.RemoveDevice(dev)
	if std, ok := dev.(*input.StdDevice); ok {
		std.Detach()
	}
	m.logger.Debug().Int32("device", id).Msg("device removed")
	m.sendDeviceMgmt(ev.DeviceRemoved, dev)
	return true
}

// SimulateChangedDevice sends a device changed event. It returns false if
// there is no such device.
func (m *Manager) SimulateChangedDevice(id int32) bool {
	dev := m.Device(id)
	if dev == nil {
		return false
	}
	m.sendDeviceMgmt(ev.DeviceChanged, dev)
	return true
}

// SimulateEvent sends an arbitrary event to the listeners without tracking
// state. It returns -1 if the event class is disabled.
func (m *Manager) SimulateEvent(e input.Event) int {
	if !m.IsEventClassEnabled(e.EventClass()) {
		return -1
	}
	return m.Send(e)
}

// SimulateKeyEvent sends a key event. A press of a pressed key and a
// release of a key that is not pressed are rejected. Releases only reach
// the listeners present at the time of the press.
func (m *Manager) SimulateKeyEvent(id int32, typ ev.KeyInputType, key ev.HardwareKey) int {
	c := m.capability(id, ev.KeyCapabilityClass)
	if c == nil || !m.IsEventClassEnabled(ev.KeyEventClass) {
		return -1
	}
	e := ev.NewKeyEvent(input.NowTimeMicroseconds(), nil, c, typ, key)
	switch typ {
	case ev.KeyPress:
		return m.opening(&openState{device: id, kind: openKey, code: int64(key)}, e)
	case ev.KeyRelease, ev.KeyReleaseCancel:
		return m.closing(id, openKey, int64(key), e)
	default:
		return -1
	}
}

// SimulatePointerButton presses or releases a pointer button at x, y.
func (m *Manager) SimulatePointerButton(id int32, x, y float64, button int32, press bool) int {
	c := m.capability(id, ev.PointerCapabilityClass)
	if c == nil || button < 0 || !m.IsEventClassEnabled(ev.PointerEventClass) {
		return -1
	}
	wasPressed := m.anyOpen(id, openButton)
	pressed := m.find(id, openButton, int64(button)) != nil
	if press == pressed {
		return -1
	}
	if press {
		e := ev.NewPointerEvent(input.NowTimeMicroseconds(), nil, c, x, y, ev.ButtonPress, button, true, wasPressed)
		return m.opening(&openState{device: id, kind: openButton, code: int64(button), x: x, y: y}, e)
	}
	stillPressed := m.countOpen(id, openButton) > 1
	e := ev.NewPointerEvent(input.NowTimeMicroseconds(), nil, c, x, y, ev.ButtonRelease, button, stillPressed, true)
	return m.closing(id, openButton, int64(button), e)
}

// SimulatePointerMove moves the pointer. The event is a move if a button is
// pressed and a hover otherwise.
func (m *Manager) SimulatePointerMove(id int32, x, y float64) int {
	c := m.capability(id, ev.PointerCapabilityClass)
	if c == nil || !m.IsEventClassEnabled(ev.PointerEventClass) {
		return -1
	}
	pressed := m.anyOpen(id, openButton)
	typ := ev.PointerHover
	if pressed {
		typ = ev.PointerMove
	}
	for _, s := range m.open {
		if s.device == id && s.kind == openButton {
			s.x, s.y = x, y
		}
	}
	return m.Send(ev.NewPointerEvent(input.NowTimeMicroseconds(), nil, c, x, y, typ, ev.NoButton, pressed, pressed))
}

// SimulatePointerScroll sends a scroll event.
func (m *Manager) SimulatePointerScroll(id int32, dir ev.ScrollDirection, x, y float64) int {
	c := m.capability(id, ev.PointerCapabilityClass)
	if c == nil || !m.IsEventClassEnabled(ev.PointerScrollEventClass) {
		return -1
	}
	pressed := m.anyOpen(id, openButton)
	return m.Send(ev.NewPointerScrollEvent(input.NowTimeMicroseconds(), nil, c, dir, x, y, pressed))
}

// SimulateTouch sends a touch event. A begin opens the finger, end and
// cancel close it. Updates and closing events only reach the listeners
// present at the begin.
func (m *Manager) SimulateTouch(id int32, typ ev.TouchInputType, x, y float64, finger int64) int {
	c := m.capability(id, ev.TouchCapabilityClass)
	if c == nil || !m.IsEventClassEnabled(ev.TouchEventClass) {
		return -1
	}
	e := ev.NewTouchEvent(input.NowTimeMicroseconds(), nil, c, typ, x, y, finger)
	switch typ {
	case ev.TouchBegin:
		return m.opening(&openState{device: id, kind: openTouch, code: finger, x: x, y: y}, e)
	case ev.TouchUpdate:
		s := m.find(id, openTouch, finger)
		if s == nil {
			return -1
		}
		s.x, s.y = x, y
		return m.SendSince(e, s.stamp)
	case ev.TouchEnd, ev.TouchCancel:
		return m.closing(id, openTouch, finger, e)
	default:
		return -1
	}
}

// SimulateJoystickButton sends a joystick button event. Like keys, a press
// of a pressed button and a release of a button that is not pressed are
// rejected, and releases only reach the listeners present at the press.
func (m *Manager) SimulateJoystickButton(id int32, typ ev.KeyInputType, button ev.JoystickButton) int {
	c := m.capability(id, ev.JoystickCapabilityClass)
	if c == nil || !button.IsValid() || !m.IsEventClassEnabled(ev.JoystickButtonEventClass) {
		return -1
	}
	e := ev.NewJoystickButtonEvent(input.NowTimeMicroseconds(), nil, c, typ, button)
	switch typ {
	case ev.KeyPress:
		return m.opening(&openState{device: id, kind: openJoystickButton, code: int64(button)}, e)
	case ev.KeyRelease, ev.KeyReleaseCancel:
		return m.closing(id, openJoystickButton, int64(button), e)
	default:
		return -1
	}
}

// SimulateJoystickHat moves a hat of a joystick. Hats start centered.
// Leaving the center opens the hat, centering it closes it. A value equal
// to the current one is rejected. Events after the opening one only reach
// the listeners present when the hat left the center.
func (m *Manager) SimulateJoystickHat(id, hat int32, value ev.HatValue) int {
	c := m.capability(id, ev.JoystickCapabilityClass)
	if c == nil || hat < 0 || !value.IsValid() || !m.IsEventClassEnabled(ev.JoystickHatEventClass) {
		return -1
	}
	s := m.find(id, openHat, int64(hat))
	now := input.NowTimeMicroseconds()
	switch {
	case s == nil && value.IsCentered():
		return -1
	case s == nil:
		e := ev.NewJoystickHatEvent(now, nil, c, hat, value, ev.HatCenter)
		return m.opening(&openState{device: id, kind: openHat, code: int64(hat), hat: value}, e)
	case s.hat == value:
		return -1
	case value.IsCentered():
		return m.closing(id, openHat, int64(hat), ev.NewJoystickHatEvent(now, nil, c, hat, value, s.hat))
	default:
		e := ev.NewJoystickHatEvent(now, nil, c, hat, value, s.hat)
		s.hat = value
		return m.SendSince(e, s.stamp)
	}
}

// SimulateJoystickAxis sends a joystick axis event.
func (m *Manager) SimulateJoystickAxis(id int32, axis ev.JoystickAxis, value int32) int {
	c := m.capability(id, ev.JoystickCapabilityClass)
	if c == nil || !axis.IsValid() || !m.IsEventClassEnabled(ev.JoystickAxisEventClass) {
		return -1
	}
	return m.Send(ev.NewJoystickAxisEvent(input.NowTimeMicroseconds(), nil, c, axis, value))
}

// OpenCount returns the number of pressed keys and buttons, active touches
// and off-center hats of all devices.
func (m *Manager) OpenCount() int {
	return len(m.open)
}

func (m *Manager) capability(id int32, cls input.CapabilityClass) *input.Capability {
	dev := m.Device(id)
	if dev == nil {
		return nil
	}
	return dev.Capability(cls)
}

func (m *Manager) find(device int32, kind openKind, code int64) *openState {
	for _, s := range m.open {
		if s.matches(device, kind, code) {
			return s
		}
	}
	return nil
}

func (m *Manager) countOpen(device int32, kind openKind) int {
	n := 0
	for _, s := range m.open {
		if s.device == device && s.kind == kind {
			n++
		}
	}
	return n
}

func (m *Manager) anyOpen(device int32, kind openKind) bool {
	return m.countOpen(device, kind) > 0
}

// opening records new open state and sends the opening event. The stamp is
// taken before sending so that listeners added by callbacks count as late.
func (m *Manager) opening(s *openState, e input.Event) int {
	if m.find(s.device, s.kind, s.code) != nil {
		return -1
	}
	s.stamp = input.UniqueTimeStamp()
	m.open = append(m.open, s)
	return m.Send(e)
}

// closing forgets open state and sends the closing event to the listeners
// that saw it open.
func (m *Manager) closing(device int32, kind openKind, code int64, e input.Event) int {
	s := m.find(device, kind, code)
	if s == nil {
		return -1
	}
	m.forget(s)
	return m.SendSince(e, s.stamp)
}

func (m *Manager) forget(s *openState) {
	m.open = slices.DeleteFunc(m.open, func(o *openState) bool { return o == s })
}

// cancelEvent builds the event canceling s, or nil if dev lacks the
// capability.
func (m *Manager) cancelEvent(dev input.Device, s *openState) input.Event {
	now := input.NowTimeMicroseconds()
	switch s.kind {
	case openKey:
		if c := dev.Capability(ev.KeyCapabilityClass); c != nil {
			return ev.NewKeyEvent(now, nil, c, ev.KeyReleaseCancel, ev.HardwareKey(s.code))
		}
	case openButton:
		if c := dev.Capability(ev.PointerCapabilityClass); c != nil {
			still := m.countOpen(s.device, openButton) > 1
			return ev.NewPointerEvent(now, nil, c, s.x, s.y, ev.ButtonReleaseCancel, int32(s.code), still, true)
		}
	case openTouch:
		if c := dev.Capability(ev.TouchCapabilityClass); c != nil {
			return ev.NewTouchEvent(now, nil, c, ev.TouchCancel, s.x, s.y, s.code)
		}
	case openJoystickButton:
		if c := dev.Capability(ev.JoystickCapabilityClass); c != nil {
			return ev.NewJoystickButtonEvent(now, nil, c, ev.KeyReleaseCancel, ev.JoystickButton(s.code))
		}
	case openHat:
		if c := dev.Capability(ev.JoystickCapabilityClass); c != nil {
			return ev.NewJoystickHatEvent(now, nil, c, int32(s.code), ev.HatCenterCancel, s.hat)
		}
	}
	return nil
}

func (m *Manager) cancelDevice(dev input.Device) {
	m.BeginCancelFrame()
	defer m.EndCancelFrame()
	for {
		idx := slices.IndexFunc(m.open, func(s *openState) bool { return s.device == dev.ID() })
		if idx < 0 {
			return
		}
		s := m.open[idx]
		e := m.cancelEvent(dev, s)
		m.forget(s)
		if e != nil {
			m.SendSince(e, s.stamp)
		}
	}
}

func (m *Manager) finalizeListener(entry *dispatch.Entry) {
	m.BeginCancelFrame()
	defer m.EndCancelFrame()
	canceled := dispatch.Extra[canceledStates](entry)
	for _, s := range slices.Clone(m.open) {
		if s.stamp < entry.AddedStamp() || slices.Contains(canceled.stamps, s.stamp) {
			continue
		}
		dev := m.Device(s.device)
		if dev == nil {
			continue
		}
		canceled.stamps = append(canceled.stamps, s.stamp)
		if e := m.cancelEvent(dev, s); e != nil {
			m.SendTo(entry, e)
		}
	}
}

func (m *Manager) sendDeviceMgmt(typ ev.DeviceMgmtType, dev input.Device) {
	c := m.ManagerCapability(ev.DeviceMgmtCapabilityClass)
	m.SimulateEvent(ev.NewDeviceMgmtEvent(input.NowTimeMicroseconds(), c, typ, dev))
}
