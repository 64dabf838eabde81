package ev

import (
	"fmt"
	"strings"

	"github.com/dshills/devinput/internal/input"
)

// JoystickButton is a joystick or gamepad button. Values follow the Linux
// input event codes.
type JoystickButton uint16

const (
	JoystickTrigger  JoystickButton = 0x120
	JoystickThumb    JoystickButton = 0x121
	JoystickThumb2   JoystickButton = 0x122
	JoystickTop      JoystickButton = 0x123
	JoystickTop2     JoystickButton = 0x124
	JoystickPinkie   JoystickButton = 0x125
	JoystickBase     JoystickButton = 0x126
	JoystickA        JoystickButton = 0x130
	JoystickB        JoystickButton = 0x131
	JoystickC        JoystickButton = 0x132
	JoystickX        JoystickButton = 0x133
	JoystickY        JoystickButton = 0x134
	JoystickZ        JoystickButton = 0x135
	JoystickTL       JoystickButton = 0x136
	JoystickTR       JoystickButton = 0x137
	JoystickTL2      JoystickButton = 0x138
	JoystickTR2      JoystickButton = 0x139
	JoystickSelect   JoystickButton = 0x13a
	JoystickStart    JoystickButton = 0x13b
	JoystickMode     JoystickButton = 0x13c
	JoystickThumbL   JoystickButton = 0x13d
	JoystickThumbR   JoystickButton = 0x13e
	JoystickGearDown JoystickButton = 0x150
	JoystickGearUp   JoystickButton = 0x151
)

var joystickButtonNames = map[JoystickButton]string{
	JoystickTrigger: "Trigger", JoystickThumb: "Thumb", JoystickThumb2: "Thumb2",
	JoystickTop: "Top", JoystickTop2: "Top2", JoystickPinkie: "Pinkie", JoystickBase: "Base",
	JoystickA: "A", JoystickB: "B", JoystickC: "C", JoystickX: "X", JoystickY: "Y", JoystickZ: "Z",
	JoystickTL: "TL", JoystickTR: "TR", JoystickTL2: "TL2", JoystickTR2: "TR2",
	JoystickSelect: "Select", JoystickStart: "Start", JoystickMode: "Mode",
	JoystickThumbL: "ThumbL", JoystickThumbR: "ThumbR",
	JoystickGearDown: "GearDown", JoystickGearUp: "GearUp",
}

var joystickButtonsByName = func() map[string]JoystickButton {
	m := make(map[string]JoystickButton, len(joystickButtonNames))
	for b, name := range joystickButtonNames {
		m[strings.ToLower(name)] = b
	}
	return m
}()

func (b JoystickButton) String() string {
	if name, ok := joystickButtonNames[b]; ok {
		return name
	}
	return fmt.Sprintf("JoystickButton(%d)", uint16(b))
}

// IsValid reports whether b is a known button.
func (b JoystickButton) IsValid() bool {
	_, ok := joystickButtonNames[b]
	return ok
}

// ParseJoystickButton returns the button with the given case-insensitive
// name.
func ParseJoystickButton(name string) (JoystickButton, error) {
	if b, ok := joystickButtonsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: joystick button %q", ErrUnknownKey, name)
}

// HatValue is the position of a joystick hat. The directions are bit flags;
// diagonals combine two of them.
type HatValue int8

const (
	// HatNotSet is the previous value of a hat whose position is unknown.
	HatNotSet    HatValue = -1
	HatCenter    HatValue = 0
	HatLeft      HatValue = 1
	HatRight     HatValue = 2
	HatUp        HatValue = 4
	HatDown      HatValue = 8
	HatLeftUp    HatValue = HatLeft | HatUp
	HatLeftDown  HatValue = HatLeft | HatDown
	HatRightUp   HatValue = HatRight | HatUp
	HatRightDown HatValue = HatRight | HatDown

	// HatCenterCancel centers a hat whose position is void because the
	// device or the listener went away.
	HatCenterCancel HatValue = 16
)

var hatValueNames = map[HatValue]string{
	HatCenter: "center", HatLeft: "left", HatRight: "right", HatUp: "up", HatDown: "down",
	HatLeftUp: "left-up", HatLeftDown: "left-down", HatRightUp: "right-up", HatRightDown: "right-down",
	HatCenterCancel: "center-cancel",
}

var hatValuesByName = func() map[string]HatValue {
	m := make(map[string]HatValue, len(hatValueNames))
	for v, name := range hatValueNames {
		m[name] = v
	}
	return m
}()

func (v HatValue) String() string {
	if v == HatNotSet {
		return "not-set"
	}
	if name, ok := hatValueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("HatValue(%d)", int8(v))
}

// IsValid reports whether v is a hat position, HatCenterCancel included.
func (v HatValue) IsValid() bool {
	_, ok := hatValueNames[v]
	return ok
}

// IsCentered reports whether v is HatCenter or HatCenterCancel.
func (v HatValue) IsCentered() bool {
	return v == HatCenter || v == HatCenterCancel
}

// DeltaXY returns the position as unit steps, -1 meaning left or up.
func (v HatValue) DeltaXY() (dx, dy int32) {
	switch {
	case v&HatLeft != 0:
		dx = -1
	case v&HatRight != 0:
		dx = 1
	}
	switch {
	case v&HatUp != 0:
		dy = -1
	case v&HatDown != 0:
		dy = 1
	}
	return dx, dy
}

// ParseHatValue returns the hat value with the given name, such as
// "left-up".
func ParseHatValue(name string) (HatValue, bool) {
	v, ok := hatValuesByName[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// JoystickAxis is a joystick axis. Values follow the Linux input event
// codes.
type JoystickAxis uint8

const (
	AxisX        JoystickAxis = 0x00
	AxisY        JoystickAxis = 0x01
	AxisZ        JoystickAxis = 0x02
	AxisRX       JoystickAxis = 0x03
	AxisRY       JoystickAxis = 0x04
	AxisRZ       JoystickAxis = 0x05
	AxisThrottle JoystickAxis = 0x06
	AxisRudder   JoystickAxis = 0x07
	AxisWheel    JoystickAxis = 0x08
	AxisGas      JoystickAxis = 0x09
	AxisBrake    JoystickAxis = 0x0a
	AxisPressure JoystickAxis = 0x18
	AxisDistance JoystickAxis = 0x19
	AxisTiltX    JoystickAxis = 0x1a
	AxisTiltY    JoystickAxis = 0x1b
)

var joystickAxisNames = map[JoystickAxis]string{
	AxisX: "X", AxisY: "Y", AxisZ: "Z", AxisRX: "RX", AxisRY: "RY", AxisRZ: "RZ",
	AxisThrottle: "Throttle", AxisRudder: "Rudder", AxisWheel: "Wheel", AxisGas: "Gas", AxisBrake: "Brake",
	AxisPressure: "Pressure", AxisDistance: "Distance", AxisTiltX: "TiltX", AxisTiltY: "TiltY",
}

var joystickAxesByName = func() map[string]JoystickAxis {
	m := make(map[string]JoystickAxis, len(joystickAxisNames))
	for a, name := range joystickAxisNames {
		m[strings.ToLower(name)] = a
	}
	return m
}()

func (a JoystickAxis) String() string {
	if name, ok := joystickAxisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("JoystickAxis(%d)", uint8(a))
}

// IsValid reports whether a is a known axis.
func (a JoystickAxis) IsValid() bool {
	_, ok := joystickAxisNames[a]
	return ok
}

// ParseJoystickAxis returns the axis with the given case-insensitive name.
func ParseJoystickAxis(name string) (JoystickAxis, bool) {
	a, ok := joystickAxesByName[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// AxisMax is the largest absolute value of a joystick axis.
const AxisMax = 32767

// JoystickButtonEvent reports a joystick button transition. It uses the key
// transition types.
type JoystickButtonEvent struct {
	input.BaseEvent
	typ    KeyInputType
	button JoystickButton
}

// NewJoystickButtonEvent creates a joystick button event. It panics if
// capability is not a joystick capability or button is not valid.
func NewJoystickButtonEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	typ KeyInputType, button JoystickButton) *JoystickButtonEvent {
	mustHaveClass(capability, JoystickCapabilityClass)
	if !button.IsValid() {
		panic(fmt.Sprintf("ev: invalid joystick button %d", uint16(button)))
	}
	return &JoystickButtonEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, accessor, JoystickButtonEventClass, capability),
		typ:       typ,
		button:    button,
	}
}

// Type returns the transition type.
func (e *JoystickButtonEvent) Type() KeyInputType { return e.typ }

// Button returns the button.
func (e *JoystickButtonEvent) Button() JoystickButton { return e.button }

func (e *JoystickButtonEvent) String() string {
	return fmt.Sprintf("joystick button %s %s", e.button, e.typ)
}

// JoystickHatEvent reports a hat position change.
type JoystickHatEvent struct {
	input.BaseEvent
	hat      int32
	value    HatValue
	previous HatValue
}

// NewJoystickHatEvent creates a hat event. previous may be HatNotSet.
// It panics if capability is not a joystick capability, hat is negative,
// value is not valid or previous is HatCenterCancel.
func NewJoystickHatEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	hat int32, value, previous HatValue) *JoystickHatEvent {
	mustHaveClass(capability, JoystickCapabilityClass)
	if hat < 0 {
		panic(fmt.Sprintf("ev: negative joystick hat %d", hat))
	}
	if !value.IsValid() {
		panic(fmt.Sprintf("ev: invalid hat value %d", int8(value)))
	}
	if previous != HatNotSet && (!previous.IsValid() || previous == HatCenterCancel) {
		panic(fmt.Sprintf("ev: invalid previous hat value %s", previous))
	}
	return &JoystickHatEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, accessor, JoystickHatEventClass, capability),
		hat:       hat,
		value:     value,
		previous:  previous,
	}
}

// Hat returns the hat index.
func (e *JoystickHatEvent) Hat() int32 { return e.hat }

// Value returns the new position.
func (e *JoystickHatEvent) Value() HatValue { return e.value }

// Previous returns the position before the event, HatNotSet if unknown.
func (e *JoystickHatEvent) Previous() HatValue { return e.previous }

// IsCancel reports whether the event voids an off-center position.
func (e *JoystickHatEvent) IsCancel() bool { return e.value == HatCenterCancel }

func (e *JoystickHatEvent) String() string {
	return fmt.Sprintf("joystick hat %d %s", e.hat, e.value)
}

// JoystickAxisEvent reports an axis value in [-AxisMax, AxisMax].
type JoystickAxisEvent struct {
	input.BaseEvent
	axis  JoystickAxis
	value int32
}

// NewJoystickAxisEvent creates an axis event. It panics if capability is not
// a joystick capability or axis is not valid. The value is clamped.
func NewJoystickAxisEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	axis JoystickAxis, value int32) *JoystickAxisEvent {
	mustHaveClass(capability, JoystickCapabilityClass)
	if !axis.IsValid() {
		panic(fmt.Sprintf("ev: invalid joystick axis %d", uint8(axis)))
	}
	return &JoystickAxisEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, accessor, JoystickAxisEventClass, capability),
		axis:      axis,
		value:     max(-AxisMax, min(AxisMax, value)),
	}
}

// Axis returns the axis.
func (e *JoystickAxisEvent) Axis() JoystickAxis { return e.axis }

// Value returns the raw value.
func (e *JoystickAxisEvent) Value() int32 { return e.value }

// ValueM1ToP1 returns the value scaled to [-1, 1].
func (e *JoystickAxisEvent) ValueM1ToP1() float64 { return float64(e.value) / AxisMax }

// Value0ToP1 returns the value scaled to [0, 1].
func (e *JoystickAxisEvent) Value0ToP1() float64 {
	return (float64(e.value) + AxisMax) / (2 * AxisMax)
}

func (e *JoystickAxisEvent) String() string {
	return fmt.Sprintf("joystick axis %s %d", e.axis, e.value)
}
