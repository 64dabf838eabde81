package ev

import (
	"errors"
	"testing"

	"github.com/dshills/devinput/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHardwareKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    HardwareKey
		wantErr bool
	}{
		{"name", "Enter", KeyEnter, false},
		{"lowercase", "enter", KeyEnter, false},
		{"alias", "escape", KeyEsc, false},
		{"alias upper", "PgDn", KeyPageDown, false},
		{"digit name", "1", Key1, false},
		{"decimal code", "300", HardwareKey(300), false},
		{"button", "btnleft", KeyBtnLeft, false},
		{"padded", "  Space ", KeySpace, false},
		{"empty", "", KeyNull, true},
		{"unknown", "hyper", KeyNull, true},
		{"trailing junk", "12x", KeyNull, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHardwareKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownKey))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHardwareKeyString(t *testing.T) {
	assert.Equal(t, "A", KeyA.String())
	assert.Equal(t, "F12", KeyF12.String())
	assert.Equal(t, "HardwareKey(300)", HardwareKey(300).String())
	assert.True(t, KeyA.IsKnown())
	assert.False(t, HardwareKey(300).IsKnown())

	for k := range hardwareKeyNames {
		got, err := ParseHardwareKey(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, got)
	}
}

func TestHardwareKeyIsModifier(t *testing.T) {
	assert.True(t, KeyLeftShift.IsModifier())
	assert.True(t, KeyRightAlt.IsModifier())
	assert.False(t, KeyA.IsModifier())
	assert.False(t, KeyCapsLock.IsModifier())
}

func TestHardwareKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want HardwareKey
		ok   bool
	}{
		{'a', KeyA, true},
		{'Z', KeyZ, true},
		{'1', Key1, true},
		{'9', Key9, true},
		{'0', Key0, true},
		{' ', KeySpace, true},
		{'-', KeyMinus, true},
		{'é', KeyNull, false},
	}
	for _, tt := range tests {
		got, ok := HardwareKeyForRune(tt.r)
		assert.Equal(t, tt.ok, ok, string(tt.r))
		if tt.ok {
			assert.Equal(t, tt.want, got, string(tt.r))
		}
	}
}

func TestClassesRegistered(t *testing.T) {
	assert.Equal(t, KeyCapabilityClass, input.CapabilityClassByID("stmi::Keys"))
	assert.Equal(t, PointerEventClass, input.EventClassByID("stmi::Pointer:PointerEvent"))
	assert.True(t, DeviceMgmtCapabilityClass.IsDeviceManagerCapability())
	assert.False(t, KeyCapabilityClass.IsDeviceManagerCapability())

	assert.True(t, PointerEventClass.IsXYEvent())
	assert.True(t, PointerScrollEventClass.IsXYEvent())
	assert.True(t, TouchEventClass.IsXYEvent())
	assert.False(t, KeyEventClass.IsXYEvent())
	assert.False(t, DeviceMgmtEventClass.IsXYEvent())

	assert.Equal(t, JoystickHatEventClass, input.EventClassByID("stmi::Joystick:JoystickHatEvent"))
	assert.False(t, JoystickCapabilityClass.IsDeviceManagerCapability())
	assert.False(t, JoystickAxisEventClass.IsXYEvent())

	assert.Len(t, EventClasses(), 8)
	assert.Len(t, DeviceCapabilityClasses(), 4)
}

func TestKeyEvent(t *testing.T) {
	d := input.NewDevice("kbd", nil, KeyCapabilityClass)
	c := d.Capability(KeyCapabilityClass)

	e := NewKeyEvent(42, nil, c, KeyPress, KeyA)

	var ev input.Event = e
	assert.Equal(t, KeyEventClass, ev.EventClass())
	assert.Equal(t, int64(42), ev.TimeUsec())
	assert.Same(t, c, ev.Capability())
	assert.Equal(t, c.ID(), ev.CapabilityID())
	assert.Equal(t, KeyPress, e.Type())
	assert.Equal(t, KeyA, e.Key())
	assert.Equal(t, "key A press", e.String())
	assert.Equal(t, input.Device(d), input.DeviceOf(e))

	_, isXY := ev.(input.XYEvent)
	assert.False(t, isXY)
}

func TestKeyEventWrongCapabilityPanics(t *testing.T) {
	d := input.NewDevice("mouse", nil, PointerCapabilityClass)
	assert.Panics(t, func() {
		NewKeyEvent(0, nil, d.Capability(PointerCapabilityClass), KeyPress, KeyA)
	})
	assert.Panics(t, func() {
		NewKeyEvent(0, nil, nil, KeyPress, KeyA)
	})
}

func TestPointerEvent(t *testing.T) {
	d := input.NewDevice("mouse", nil, PointerCapabilityClass)
	c := d.Capability(PointerCapabilityClass)

	press := NewPointerEvent(1, nil, c, 3, 4, ButtonPress, 1, true, false)
	xy, ok := input.Event(press).(input.XYEvent)
	require.True(t, ok)
	assert.Equal(t, 3.0, xy.X())
	assert.Equal(t, 4.0, xy.Y())
	assert.Equal(t, int32(1), press.Button())
	assert.True(t, press.IsAnyButtonPressed())
	assert.False(t, press.WasAnyButtonPressed())
	assert.Equal(t, "pointer button-press 1 (3,4)", press.String())

	hover := NewPointerEvent(2, nil, c, 5, 6, PointerHover, NoButton, false, false)
	assert.Equal(t, NoButton, hover.Button())
	assert.Equal(t, "pointer hover (5,6)", hover.String())

	assert.Panics(t, func() { NewPointerEvent(0, nil, c, 0, 0, PointerMove, 1, true, true) })
	assert.Panics(t, func() { NewPointerEvent(0, nil, c, 0, 0, ButtonRelease, NoButton, false, true) })
}

func TestPointerScrollEvent(t *testing.T) {
	d := input.NewDevice("mouse", nil, PointerCapabilityClass)
	c := d.Capability(PointerCapabilityClass)

	e := NewPointerScrollEvent(1, nil, c, ScrollDown, 7, 8, false)
	assert.Equal(t, PointerScrollEventClass, e.EventClass())
	assert.Equal(t, ScrollDown, e.Direction())
	assert.Equal(t, 7.0, e.X())
	assert.Equal(t, "scroll down (7,8)", e.String())
}

func TestTouchEvent(t *testing.T) {
	d := input.NewDevice("pad", nil, TouchCapabilityClass)
	c := d.Capability(TouchCapabilityClass)

	e := NewTouchEvent(1, nil, c, TouchBegin, 1.5, 2.5, 77)
	assert.Equal(t, TouchEventClass, e.EventClass())
	assert.Equal(t, TouchBegin, e.Type())
	assert.Equal(t, int64(77), e.FingerID())
	assert.Equal(t, "touch begin finger 77 (1.5,2.5)", e.String())
}

func TestDeviceMgmtEvent(t *testing.T) {
	c := input.NewManagerCapability(DeviceMgmtCapabilityClass, nil)
	d := input.NewDevice("kbd", nil, KeyCapabilityClass)

	e := NewDeviceMgmtEvent(1, c, DeviceAdded, d)
	assert.Equal(t, DeviceMgmtEventClass, e.EventClass())
	assert.Nil(t, e.Accessor())
	assert.Equal(t, DeviceAdded, e.Type())
	assert.Equal(t, input.Device(d), e.Device())
	assert.Nil(t, input.DeviceOf(e))

	assert.Panics(t, func() { NewDeviceMgmtEvent(1, c, DeviceAdded, nil) })
}

func TestTypeStrings(t *testing.T) {
	assert.Equal(t, "release-cancel", KeyReleaseCancel.String())
	assert.Equal(t, "button-release-cancel", ButtonReleaseCancel.String())
	assert.Equal(t, "cancel", TouchCancel.String())
	assert.Equal(t, "removed", DeviceRemoved.String())
	assert.Equal(t, "unknown", KeyInputType(0).String())
	assert.Equal(t, "unknown", ScrollDirection(9).String())
}

func TestJoystickEvents(t *testing.T) {
	d := input.NewDevice("pad", nil, JoystickCapabilityClass)
	c := d.Capability(JoystickCapabilityClass)

	b := NewJoystickButtonEvent(1, nil, c, KeyPress, JoystickStart)
	assert.Equal(t, JoystickButtonEventClass, b.EventClass())
	assert.Equal(t, JoystickStart, b.Button())
	assert.Equal(t, "joystick button Start press", b.String())

	h := NewJoystickHatEvent(2, nil, c, 1, HatCenterCancel, HatLeftUp)
	assert.Equal(t, int32(1), h.Hat())
	assert.Equal(t, HatLeftUp, h.Previous())
	assert.True(t, h.IsCancel())
	assert.Equal(t, "joystick hat 1 center-cancel", h.String())

	a := NewJoystickAxisEvent(3, nil, c, AxisThrottle, -50000)
	assert.Equal(t, int32(-AxisMax), a.Value())
	assert.InDelta(t, -1.0, a.ValueM1ToP1(), 1e-9)
	assert.InDelta(t, 0.0, a.Value0ToP1(), 1e-9)
	assert.InDelta(t, 0.5, NewJoystickAxisEvent(3, nil, c, AxisX, 0).Value0ToP1(), 1e-9)
}

func TestJoystickEventsPanic(t *testing.T) {
	d := input.NewDevice("pad", nil, JoystickCapabilityClass, KeyCapabilityClass)
	c := d.Capability(JoystickCapabilityClass)

	tests := []struct {
		name string
		fn   func()
	}{
		{"key capability", func() { NewJoystickButtonEvent(0, nil, d.Capability(KeyCapabilityClass), KeyPress, JoystickA) }},
		{"invalid button", func() { NewJoystickButtonEvent(0, nil, c, KeyPress, JoystickButton(7)) }},
		{"negative hat", func() { NewJoystickHatEvent(0, nil, c, -1, HatUp, HatNotSet) }},
		{"invalid hat value", func() { NewJoystickHatEvent(0, nil, c, 0, HatLeft|HatRight, HatNotSet) }},
		{"cancel as previous", func() { NewJoystickHatEvent(0, nil, c, 0, HatUp, HatCenterCancel) }},
		{"invalid axis", func() { NewJoystickAxisEvent(0, nil, c, JoystickAxis(0x40), 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestHatValue(t *testing.T) {
	tests := []struct {
		value  HatValue
		dx, dy int32
	}{
		{HatCenter, 0, 0},
		{HatUp, 0, -1},
		{HatRightUp, 1, -1},
		{HatLeftDown, -1, 1},
		{HatDown, 0, 1},
	}
	for _, tt := range tests {
		dx, dy := tt.value.DeltaXY()
		assert.Equal(t, tt.dx, dx, tt.value.String())
		assert.Equal(t, tt.dy, dy, tt.value.String())
	}

	v, ok := ParseHatValue("Right-Down")
	assert.True(t, ok)
	assert.Equal(t, HatRightDown, v)
	_, ok = ParseHatValue("sideways")
	assert.False(t, ok)
	assert.Equal(t, "not-set", HatNotSet.String())
	assert.True(t, HatCenterCancel.IsCentered())
}

func TestParseJoystickButtonAndAxis(t *testing.T) {
	b, err := ParseJoystickButton("thumbl")
	require.NoError(t, err)
	assert.Equal(t, JoystickThumbL, b)
	_, err = ParseJoystickButton("turbo")
	assert.ErrorIs(t, err, ErrUnknownKey)

	a, ok := ParseJoystickAxis("TiltX")
	assert.True(t, ok)
	assert.Equal(t, AxisTiltX, a)
	_, ok = ParseJoystickAxis("spin")
	assert.False(t, ok)

	for b := range joystickButtonNames {
		got, err := ParseJoystickButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}
