package session

import (
	"github.com/tidwall/sjson"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/ev"
)

type lineBuilder struct {
	b   []byte
	err error
}

func (lb *lineBuilder) set(path string, v any) {
	if lb.err != nil {
		return
	}
	lb.b, lb.err = sjson.SetBytes(lb.b, path, v)
}

// EncodeEvent encodes an event delivered to listener as a JSON object.
// Fields that do not apply to the event are omitted. device is the device
// that generated the event; device management events carry the device they
// are about as subject.
func EncodeEvent(listener string, seq int, e input.Event) ([]byte, error) {
	var lb lineBuilder
	lb.set("seq", seq)
	lb.set("listener", listener)
	lb.set("class", e.EventClass().ID())
	lb.set("time", e.TimeUsec())
	lb.set("capability", e.CapabilityID())
	if d := input.DeviceOf(e); d != nil {
		lb.set("device", d.ID())
		lb.set("device_name", d.Name())
	}
	if xy, ok := e.(input.XYEvent); ok {
		lb.set("x", xy.X())
		lb.set("y", xy.Y())
	}

	switch e := e.(type) {
	case *ev.KeyEvent:
		lb.set("type", e.Type().String())
		lb.set("key", e.Key().String())
	case *ev.PointerEvent:
		lb.set("type", e.Type().String())
		if e.Button() != ev.NoButton {
			lb.set("button", e.Button())
		}
		lb.set("pressed", e.IsAnyButtonPressed())
		lb.set("was_pressed", e.WasAnyButtonPressed())
	case *ev.PointerScrollEvent:
		lb.set("direction", e.Direction().String())
		lb.set("pressed", e.IsAnyButtonPressed())
	case *ev.TouchEvent:
		lb.set("type", e.Type().String())
		lb.set("finger", e.FingerID())
	case *ev.DeviceMgmtEvent:
		lb.set("type", e.Type().String())
		lb.set("subject", e.Device().ID())
		lb.set("subject_name", e.Device().Name())
	case *ev.JoystickButtonEvent:
		lb.set("type", e.Type().String())
		lb.set("button", e.Button().String())
	case *ev.JoystickHatEvent:
		lb.set("hat", e.Hat())
		lb.set("value", e.Value().String())
		lb.set("previous", e.Previous().String())
	case *ev.JoystickAxisEvent:
		lb.set("axis", e.Axis().String())
		lb.set("value", e.Value())
	}
	return lb.b, lb.err
}
