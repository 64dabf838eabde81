package session

import (
	"bytes"
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/ev"
)

func TestEncodeEvent(t *testing.T) {
	dev := input.NewDevice("kbd", nil, ev.KeyCapabilityClass, ev.PointerCapabilityClass, ev.TouchCapabilityClass,
		ev.JoystickCapabilityClass)
	joy := dev.Capability(ev.JoystickCapabilityClass)
	defer runtime.KeepAlive(dev)
	mgmt := input.NewManagerCapability(ev.DeviceMgmtCapabilityClass, nil)
	defer runtime.KeepAlive(mgmt)

	tests := []struct {
		name   string
		event  input.Event
		fields map[string]string
		absent []string
	}{
		{
			name:   "key",
			event:  ev.NewKeyEvent(7, nil, dev.Capability(ev.KeyCapabilityClass), ev.KeyRelease, ev.KeyEnter),
			fields: map[string]string{"time": "7", "type": "release", "key": "Enter", "device_name": "kbd"},
			absent: []string{"x", "button"},
		},
		{
			name:   "hover",
			event:  ev.NewPointerEvent(1, nil, dev.Capability(ev.PointerCapabilityClass), 1.5, 2, ev.PointerHover, ev.NoButton, false, false),
			fields: map[string]string{"type": "hover", "x": "1.5", "y": "2", "pressed": "false"},
			absent: []string{"button", "key"},
		},
		{
			name:   "button",
			event:  ev.NewPointerEvent(1, nil, dev.Capability(ev.PointerCapabilityClass), 0, 0, ev.ButtonPress, 3, true, false),
			fields: map[string]string{"button": "3", "pressed": "true", "was_pressed": "false"},
		},
		{
			name:   "scroll",
			event:  ev.NewPointerScrollEvent(1, nil, dev.Capability(ev.PointerCapabilityClass), ev.ScrollRight, 4, 5, false),
			fields: map[string]string{"direction": "right", "x": "4"},
			absent: []string{"type"},
		},
		{
			name:   "touch",
			event:  ev.NewTouchEvent(1, nil, dev.Capability(ev.TouchCapabilityClass), ev.TouchUpdate, 1, 1, 9),
			fields: map[string]string{"type": "update", "finger": "9"},
		},
		{
			name:   "device management",
			event:  ev.NewDeviceMgmtEvent(-1, mgmt, ev.DeviceChanged, dev),
			fields: map[string]string{"type": "changed", "subject_name": "kbd", "time": "-1"},
			absent: []string{"device", "device_name"},
		},
		{
			name:   "joystick button",
			event:  ev.NewJoystickButtonEvent(1, nil, joy, ev.KeyPress, ev.JoystickTR),
			fields: map[string]string{"type": "press", "button": "TR", "device_name": "kbd"},
			absent: []string{"x", "subject"},
		},
		{
			name:   "joystick hat",
			event:  ev.NewJoystickHatEvent(1, nil, joy, 2, ev.HatLeftDown, ev.HatLeft),
			fields: map[string]string{"hat": "2", "value": "left-down", "previous": "left"},
		},
		{
			name:   "joystick axis",
			event:  ev.NewJoystickAxisEvent(1, nil, joy, ev.AxisGas, -12),
			fields: map[string]string{"axis": "Gas", "value": "-12"},
			absent: []string{"type"},
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := EncodeEvent("l", i, tt.event)
			require.NoError(t, err)
			require.True(t, gjson.ValidBytes(line), string(line))

			res := gjson.ParseBytes(line)
			assert.Equal(t, "l", res.Get("listener").String())
			assert.Equal(t, int64(i), res.Get("seq").Int())
			assert.Equal(t, tt.event.EventClass().ID(), res.Get("class").String())
			if !slices.Contains(tt.absent, "device") {
				assert.Equal(t, int64(dev.ID()), res.Get("device").Int())
			}
			for path, want := range tt.fields {
				assert.Equal(t, want, res.Get(path).String(), path)
			}
			for _, path := range tt.absent {
				assert.False(t, res.Get(path).Exists(), path)
			}
		})
	}
}

func TestSelectWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSelectWriter(&buf, "{listener,key}")

	_, err := w.Write([]byte(`{"listener":"a","key":"Q","seq":1}` + "\n" + `{"listener":"b",`))
	require.NoError(t, err)
	assert.Equal(t, `{"listener":"a","key":"Q"}`+"\n", buf.String())

	_, err = w.Write([]byte(`"key":"W"}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"listener":"a","key":"Q"}`+"\n"+`{"listener":"b","key":"W"}`+"\n", buf.String())

	buf.Reset()
	w = NewSelectWriter(&buf, "button")
	_, err = w.Write([]byte(`{"key":"Q"}` + "\n" + `{"button":2}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "2\n", buf.String())

	assert.Same(t, &buf, NewSelectWriter(&buf, "").(*bytes.Buffer))
}
