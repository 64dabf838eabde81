package luaif

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/ev"
)

// Predicate is a compiled Lua filter. It implements input.CallIf.
type Predicate struct {
	state    *State
	name     string
	src      string
	fn       *lua.LFunction
	failures int
}

// Name returns the filter name.
func (p *Predicate) Name() string { return p.name }

// Source returns the filter source.
func (p *Predicate) Source() string { return p.src }

// Failures returns the number of evaluations that raised an error.
func (p *Predicate) Failures() int {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()
	return p.failures
}

func (p *Predicate) String() string {
	return fmt.Sprintf("lua(%s)", p.name)
}

// Call evaluates the filter for e.
func (p *Predicate) Call(e input.Event) bool {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	L := s.L
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		L.SetContext(ctx)
		defer L.RemoveContext()
	}

	L.SetGlobal("ev", eventTable(L, e))
	top := L.GetTop()
	L.Push(p.fn)
	if err := L.PCall(0, 1, nil); err != nil {
		L.SetTop(top)
		p.failures++
		s.logger.Warn().Err(err).Str("filter", p.name).Msg("lua filter failed")
		return false
	}
	ret := L.Get(-1)
	L.SetTop(top)
	return lua.LVAsBool(ret)
}

// eventTable exposes e to Lua. Fields not meaningful for an event are nil.
func eventTable(L *lua.LState, e input.Event) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "class", lua.LString(e.EventClass().ID()))
	L.SetField(t, "time", lua.LNumber(e.TimeUsec()))
	L.SetField(t, "capability", lua.LNumber(e.CapabilityID()))
	if c := e.Capability(); c != nil {
		L.SetField(t, "capability_class", lua.LString(c.Class().ID()))
	}
	device := int32(-1)
	if d := input.DeviceOf(e); d != nil {
		device = d.ID()
	}
	L.SetField(t, "device", lua.LNumber(device))
	if xy, ok := e.(input.XYEvent); ok {
		L.SetField(t, "x", lua.LNumber(xy.X()))
		L.SetField(t, "y", lua.LNumber(xy.Y()))
	}

	switch e := e.(type) {
	case *ev.KeyEvent:
		L.SetField(t, "type", lua.LString(e.Type().String()))
		L.SetField(t, "key", lua.LString(e.Key().String()))
		L.SetField(t, "code", lua.LNumber(e.Key()))
	case *ev.PointerEvent:
		L.SetField(t, "type", lua.LString(e.Type().String()))
		L.SetField(t, "button", lua.LNumber(e.Button()))
		L.SetField(t, "pressed", lua.LBool(e.IsAnyButtonPressed()))
	case *ev.PointerScrollEvent:
		L.SetField(t, "type", lua.LString("scroll"))
		L.SetField(t, "dir", lua.LString(e.Direction().String()))
	case *ev.TouchEvent:
		L.SetField(t, "type", lua.LString(e.Type().String()))
		L.SetField(t, "finger", lua.LNumber(e.FingerID()))
	case *ev.DeviceMgmtEvent:
		L.SetField(t, "type", lua.LString(e.Type().String()))
		L.SetField(t, "subject", lua.LNumber(e.Device().ID()))
		L.SetField(t, "subject_name", lua.LString(e.Device().Name()))
	case *ev.JoystickButtonEvent:
		L.SetField(t, "type", lua.LString(e.Type().String()))
		L.SetField(t, "button", lua.LString(e.Button().String()))
		L.SetField(t, "code", lua.LNumber(e.Button()))
	case *ev.JoystickHatEvent:
		L.SetField(t, "hat", lua.LNumber(e.Hat()))
		L.SetField(t, "value", lua.LString(e.Value().String()))
		L.SetField(t, "previous", lua.LString(e.Previous().String()))
		dx, dy := e.Value().DeltaXY()
		L.SetField(t, "dx", lua.LNumber(dx))
		L.SetField(t, "dy", lua.LNumber(dy))
	case *ev.JoystickAxisEvent:
		L.SetField(t, "axis", lua.LString(e.Axis().String()))
		L.SetField(t, "value", lua.LNumber(e.Value()))
	}
	return t
}
