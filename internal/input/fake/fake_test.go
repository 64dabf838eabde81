package fake

import (
	"bytes"
	"fmt"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/callif"
	"github.com/dshills/devinput/internal/input/ev"
)

// recorder collects a short description of every received event. It keeps
// its listener reachable for as long as the recorder is.
type recorder struct {
	got []string
	l   *input.Listener
}

func (r *recorder) listener() *input.Listener {
	if r.l == nil {
		r.l = input.NewListener(func(e input.Event) {
			r.got = append(r.got, describe(e))
		})
	}
	return r.l
}

func describe(e input.Event) string {
	switch e := e.(type) {
	case *ev.KeyEvent:
		return fmt.Sprintf("key %s %s", e.Key(), e.Type())
	case *ev.PointerEvent:
		return fmt.Sprintf("pointer %s %d", e.Type(), e.Button())
	case *ev.PointerScrollEvent:
		return fmt.Sprintf("scroll %s", e.Direction())
	case *ev.TouchEvent:
		return fmt.Sprintf("touch %s %d", e.Type(), e.FingerID())
	case *ev.DeviceMgmtEvent:
		return fmt.Sprintf("device %s", e.Type())
	case *ev.JoystickButtonEvent:
		return fmt.Sprintf("joy %s %s", e.Button(), e.Type())
	case *ev.JoystickHatEvent:
		return fmt.Sprintf("hat %d %s<-%s", e.Hat(), e.Value(), e.Previous())
	case *ev.JoystickAxisEvent:
		return fmt.Sprintf("axis %s %d", e.Axis(), e.Value())
	default:
		return e.EventClass().ID()
	}
}

func TestManager_DeviceLifecycle(t *testing.T) {
	m := New()
	var r recorder
	l := r.listener()
	require.True(t, m.AddListener(l, nil))

	id := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	dev := m.Device(id)
	require.NotNil(t, dev)
	assert.Equal(t, "kbd", dev.Name())
	assert.Equal(t, input.DeviceManager(m), dev.Manager())
	assert.Equal(t, []int32{id}, m.DevicesWithCapabilityClass(ev.KeyCapabilityClass))

	assert.True(t, m.SimulateChangedDevice(id))
	assert.True(t, m.SimulateRemoveDevice(id))
	assert.False(t, m.SimulateRemoveDevice(id))
	assert.False(t, m.SimulateChangedDevice(id))
	assert.Nil(t, m.Device(id))
	assert.Nil(t, dev.Manager())

	assert.Equal(t, []string{"device added", "device changed", "device removed"}, r.got)
}

func TestManager_LogsDeviceLifecycle(t *testing.T) {
	var buf bytes.Buffer
	m := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	id := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	require.True(t, m.SimulateRemoveDevice(id))

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf(`"device":%d,"name":"kbd","message":"device added"`, id))
	assert.Contains(t, out, fmt.Sprintf(`"device":%d,"message":"device removed"`, id))
}

func TestManager_DeviceMgmtCapability(t *testing.T) {
	m := New()
	c := m.ManagerCapability(ev.DeviceMgmtCapabilityClass)
	require.NotNil(t, c)
	assert.Equal(t, input.DeviceManager(m), c.Manager())

	var capIDs []int32
	l := input.NewListener(func(e input.Event) { capIDs = append(capIDs, e.CapabilityID()) })
	defer runtime.KeepAlive(l)
	m.AddListener(l, nil)
	m.SimulateNewDevice("pad", ev.TouchCapabilityClass)
	assert.Equal(t, []int32{c.ID()}, capIDs)
}

func TestManager_UnsupportedCapabilityPanics(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.SimulateNewDevice("hub", ev.DeviceMgmtCapabilityClass) })
}

func TestManager_SimulateKeyEvent(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	mouse := m.SimulateNewDevice("mouse", ev.PointerCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, nil)

	tests := []struct {
		name string
		dev  int32
		typ  ev.KeyInputType
		key  ev.HardwareKey
		want int
	}{
		{"press", kbd, ev.KeyPress, ev.KeyA, 1},
		{"press again", kbd, ev.KeyPress, ev.KeyA, -1},
		{"release", kbd, ev.KeyRelease, ev.KeyA, 1},
		{"release again", kbd, ev.KeyRelease, ev.KeyA, -1},
		{"no key capability", mouse, ev.KeyPress, ev.KeyA, -1},
		{"no device", 9999, ev.KeyPress, ev.KeyA, -1},
		{"unknown type", kbd, ev.KeyInputType(0), ev.KeyA, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.SimulateKeyEvent(tt.dev, tt.typ, tt.key))
		})
	}
	assert.Equal(t, []string{"key A press", "key A release"}, r.got)
	assert.Zero(t, m.OpenCount())
}

func TestManager_DisabledClass(t *testing.T) {
	m := New(WithEventClasses(true, ev.KeyEventClass))
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	var r recorder
	m.AddListener(r.listener(), nil)

	assert.False(t, m.IsEventClassEnabled(ev.KeyEventClass))
	assert.Equal(t, -1, m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyA))
	assert.Zero(t, m.OpenCount())

	m.EnableEventClass(ev.KeyEventClass)
	assert.Equal(t, 1, m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyA))
}

func TestManager_OnlyEnabledClasses(t *testing.T) {
	m := New(WithEventClasses(false, ev.DeviceMgmtEventClass))
	assert.True(t, m.IsEventClassEnabled(ev.DeviceMgmtEventClass))
	assert.False(t, m.IsEventClassEnabled(ev.TouchEventClass))
}

func TestManager_Pointer(t *testing.T) {
	m := New()
	mouse := m.SimulateNewDevice("mouse", ev.PointerCapabilityClass)
	var events []*ev.PointerEvent
	l := input.NewListener(func(e input.Event) {
		if p, ok := e.(*ev.PointerEvent); ok {
			events = append(events, p)
		}
	})
	defer runtime.KeepAlive(l)
	m.AddListener(l, nil)

	assert.Equal(t, 1, m.SimulatePointerMove(mouse, 1, 1))
	assert.Equal(t, 1, m.SimulatePointerButton(mouse, 1, 1, 1, true))
	assert.Equal(t, -1, m.SimulatePointerButton(mouse, 1, 1, 1, true))
	assert.Equal(t, 1, m.SimulatePointerButton(mouse, 1, 1, 3, true))
	assert.Equal(t, 1, m.SimulatePointerMove(mouse, 2, 2))
	assert.Equal(t, 1, m.SimulatePointerButton(mouse, 2, 2, 1, false))
	assert.Equal(t, 1, m.SimulatePointerButton(mouse, 2, 2, 3, false))
	assert.Equal(t, -1, m.SimulatePointerButton(mouse, 2, 2, 3, false))
	assert.Equal(t, -1, m.SimulatePointerButton(mouse, 2, 2, -1, true))

	require.Len(t, events, 6)
	tests := []struct {
		typ    ev.PointerInputType
		button int32
		any    bool
		wasAny bool
	}{
		{ev.PointerHover, ev.NoButton, false, false},
		{ev.ButtonPress, 1, true, false},
		{ev.ButtonPress, 3, true, true},
		{ev.PointerMove, ev.NoButton, true, true},
		{ev.ButtonRelease, 1, true, true},
		{ev.ButtonRelease, 3, false, true},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.typ, events[i].Type(), "event %d", i)
		assert.Equal(t, tt.button, events[i].Button(), "event %d", i)
		assert.Equal(t, tt.any, events[i].IsAnyButtonPressed(), "event %d", i)
		assert.Equal(t, tt.wasAny, events[i].WasAnyButtonPressed(), "event %d", i)
	}
}

func TestManager_Scroll(t *testing.T) {
	m := New()
	mouse := m.SimulateNewDevice("mouse", ev.PointerCapabilityClass)
	var r recorder
	m.AddListener(r.listener(), nil)

	assert.Equal(t, 1, m.SimulatePointerScroll(mouse, ev.ScrollUp, 0, 0))
	assert.Equal(t, []string{"scroll up"}, r.got)
}

func TestManager_Touch(t *testing.T) {
	m := New()
	pad := m.SimulateNewDevice("pad", ev.TouchCapabilityClass)
	var r recorder
	m.AddListener(r.listener(), nil)

	assert.Equal(t, -1, m.SimulateTouch(pad, ev.TouchUpdate, 0, 0, 7))
	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchBegin, 0, 0, 7))
	assert.Equal(t, -1, m.SimulateTouch(pad, ev.TouchBegin, 0, 0, 7))
	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchBegin, 5, 5, 8))
	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchUpdate, 1, 1, 7))
	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchEnd, 1, 1, 7))
	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchCancel, 5, 5, 8))
	assert.Equal(t, -1, m.SimulateTouch(pad, ev.TouchEnd, 1, 1, 7))

	assert.Equal(t, []string{
		"touch begin 7", "touch begin 8", "touch update 7", "touch end 7", "touch cancel 8",
	}, r.got)
}

func TestManager_LateListenerMissesClosingEvents(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	pad := m.SimulateNewDevice("pad", ev.TouchCapabilityClass)
	var early, late recorder
	m.AddListener(early.listener(), nil)

	m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyB)
	m.SimulateTouch(pad, ev.TouchBegin, 0, 0, 1)

	lateListener := late.listener()
	m.AddListener(lateListener, nil)

	assert.Equal(t, 1, m.SimulateTouch(pad, ev.TouchUpdate, 1, 1, 1))
	assert.Equal(t, 1, m.SimulateKeyEvent(kbd, ev.KeyRelease, ev.KeyB))
	assert.Equal(t, 2, m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyB))

	assert.Equal(t, []string{"key B press", "touch begin 1", "touch update 1", "key B release", "key B press"}, early.got)
	assert.Equal(t, []string{"key B press"}, late.got)
}

func TestManager_ListenerAddedDuringPressIsLate(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	var late recorder
	lateListener := late.listener()
	added := false
	first := input.NewListener(func(e input.Event) {
		if !added {
			added = true
			m.AddListener(lateListener, nil)
		}
	})
	defer runtime.KeepAlive(first)
	m.AddListener(first, callif.NewEventClassIs(ev.KeyEventClass))

	m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyC)
	assert.Equal(t, 1, m.SimulateKeyEvent(kbd, ev.KeyRelease, ev.KeyC))
	assert.Empty(t, late.got)
}

func TestManager_RemoveDeviceCancelsOpenState(t *testing.T) {
	m := New()
	combo := m.SimulateNewDevice("combo", ev.KeyCapabilityClass, ev.PointerCapabilityClass, ev.TouchCapabilityClass)
	other := m.SimulateNewDevice("other", ev.KeyCapabilityClass)
	var r recorder
	m.AddListener(r.listener(), nil)

	m.SimulateKeyEvent(combo, ev.KeyPress, ev.KeyA)
	m.SimulatePointerButton(combo, 0, 0, 2, true)
	m.SimulateTouch(combo, ev.TouchBegin, 0, 0, 4)
	m.SimulateKeyEvent(other, ev.KeyPress, ev.KeyZ)
	r.got = nil

	require.True(t, m.SimulateRemoveDevice(combo))
	assert.Equal(t, []string{
		"key A release-cancel",
		"pointer button-release-cancel 2",
		"touch cancel 4",
		"device removed",
	}, r.got)
	assert.Equal(t, 1, m.OpenCount())
	assert.False(t, m.IsCanceling())
}

func TestManager_FinalizeSendsCancels(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	mouse := m.SimulateNewDevice("mouse", ev.PointerCapabilityClass)
	var a, b recorder
	la, lb := a.listener(), b.listener()
	m.AddListener(la, nil)

	m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyQ)
	m.AddListener(lb, nil)
	m.SimulatePointerButton(mouse, 3, 4, 1, true)
	a.got, b.got = nil, nil

	require.True(t, m.RemoveListener(lb, true))
	assert.Equal(t, []string{"pointer button-release-cancel 1"}, b.got)

	require.True(t, m.RemoveListener(la, true))
	assert.Equal(t, []string{"key Q release-cancel", "pointer button-release-cancel 1"}, a.got)

	// Open state survives listener removal.
	assert.Equal(t, 2, m.OpenCount())
	assert.False(t, m.IsCanceling())
}

func TestManager_RemoveWithoutFinalize(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, nil)
	m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyQ)
	r.got = nil

	require.True(t, m.RemoveListener(l, false))
	assert.Empty(t, r.got)
}

func TestManager_FinalizeRespectsFilter(t *testing.T) {
	m := New()
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	pad := m.SimulateNewDevice("pad", ev.TouchCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, callif.NewEventClassIs(ev.TouchEventClass))

	m.SimulateKeyEvent(kbd, ev.KeyPress, ev.KeyQ)
	m.SimulateTouch(pad, ev.TouchBegin, 0, 0, 1)
	r.got = nil

	m.RemoveListener(l, true)
	assert.Equal(t, []string{"touch cancel 1"}, r.got)
}

func TestManager_SimulateEvent(t *testing.T) {
	m := New(WithEventClasses(true, ev.PointerScrollEventClass))
	mouse := m.SimulateNewDevice("mouse", ev.PointerCapabilityClass)
	var r recorder
	m.AddListener(r.listener(), nil)

	c := m.Device(mouse).Capability(ev.PointerCapabilityClass)
	assert.Equal(t, -1, m.SimulateEvent(ev.NewPointerScrollEvent(1, nil, c, ev.ScrollLeft, 0, 0, false)))
	assert.Equal(t, 1, m.SimulateEvent(ev.NewPointerEvent(1, nil, c, 0, 0, ev.PointerHover, ev.NoButton, false, false)))
	assert.Equal(t, []string{"pointer hover -1"}, r.got)
}

func TestManager_JoystickButton(t *testing.T) {
	m := New()
	joy := m.SimulateNewDevice("pad", ev.JoystickCapabilityClass)
	kbd := m.SimulateNewDevice("kbd", ev.KeyCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, nil)

	tests := []struct {
		name   string
		device int32
		typ    ev.KeyInputType
		button ev.JoystickButton
		want   int
	}{
		{"press", joy, ev.KeyPress, ev.JoystickA, 1},
		{"press pressed", joy, ev.KeyPress, ev.JoystickA, -1},
		{"release", joy, ev.KeyRelease, ev.JoystickA, 1},
		{"release released", joy, ev.KeyRelease, ev.JoystickA, -1},
		{"invalid button", joy, ev.KeyPress, ev.JoystickButton(1), -1},
		{"no joystick capability", kbd, ev.KeyPress, ev.JoystickA, -1},
		{"unknown device", 9999, ev.KeyPress, ev.JoystickA, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.SimulateJoystickButton(tt.device, tt.typ, tt.button))
		})
	}
	assert.Equal(t, []string{"joy A press", "joy A release"}, r.got)
	assert.Zero(t, m.OpenCount())
}

func TestManager_JoystickHat(t *testing.T) {
	m := New()
	joy := m.SimulateNewDevice("pad", ev.JoystickCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, nil)
	r.got = nil

	assert.Equal(t, -1, m.SimulateJoystickHat(joy, 0, ev.HatCenter), "already centered")
	assert.Equal(t, 1, m.SimulateJoystickHat(joy, 0, ev.HatLeft))
	assert.Equal(t, -1, m.SimulateJoystickHat(joy, 0, ev.HatLeft), "unchanged")
	assert.Equal(t, 1, m.SimulateJoystickHat(joy, 0, ev.HatLeftUp))
	assert.Equal(t, 1, m.OpenCount())
	assert.Equal(t, 1, m.SimulateJoystickHat(joy, 0, ev.HatCenter))
	assert.Equal(t, -1, m.SimulateJoystickHat(joy, -1, ev.HatUp))
	assert.Equal(t, -1, m.SimulateJoystickHat(joy, 0, ev.HatValue(3)))

	assert.Equal(t, []string{"hat 0 left<-center", "hat 0 left-up<-left", "hat 0 center<-left-up"}, r.got)
	assert.Zero(t, m.OpenCount())
}

func TestManager_JoystickAxis(t *testing.T) {
	m := New(WithEventClasses(true, ev.JoystickAxisEventClass))
	joy := m.SimulateNewDevice("pad", ev.JoystickCapabilityClass)
	var r recorder
	l := r.listener()
	m.AddListener(l, nil)

	assert.Equal(t, -1, m.SimulateJoystickAxis(joy, ev.AxisX, 100), "disabled")
	m.EnableEventClass(ev.JoystickAxisEventClass)
	assert.Equal(t, 1, m.SimulateJoystickAxis(joy, ev.AxisX, 100))
	assert.Equal(t, 1, m.SimulateJoystickAxis(joy, ev.AxisRZ, 40000))
	assert.Equal(t, -1, m.SimulateJoystickAxis(joy, ev.JoystickAxis(0x30), 0))

	assert.Equal(t, []string{"axis X 100", "axis RZ 32767"}, r.got)
}

func TestManager_JoystickLateListenerAndCancel(t *testing.T) {
	m := New()
	joy := m.SimulateNewDevice("pad", ev.JoystickCapabilityClass)
	var early, late recorder
	le, ll := early.listener(), late.listener()
	m.AddListener(le, nil)

	m.SimulateJoystickButton(joy, ev.KeyPress, ev.JoystickStart)
	m.SimulateJoystickHat(joy, 1, ev.HatDown)
	m.AddListener(ll, nil)
	early.got = nil

	// The late listener never saw the hat leave the center.
	assert.Equal(t, 1, m.SimulateJoystickHat(joy, 1, ev.HatRightDown))
	assert.Empty(t, late.got)

	require.True(t, m.RemoveListener(le, true))
	assert.Equal(t, []string{
		"hat 1 right-down<-down",
		"joy Start release-cancel",
		"hat 1 center-cancel<-right-down",
	}, early.got)
	assert.Equal(t, 2, m.OpenCount())

	require.True(t, m.SimulateRemoveDevice(joy))
	assert.Equal(t, []string{"device removed"}, late.got)
	assert.Zero(t, m.OpenCount())
}
