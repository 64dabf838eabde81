// Package session replays scripted device activity against the fake device
// manager and writes every delivered event as a JSON line.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/config"
	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/callif"
	"github.com/dshills/devinput/internal/input/callif/luaif"
	"github.com/dshills/devinput/internal/input/fake"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("session closed")

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger of the runner, its manager and its Lua filters.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

type sessionListener struct {
	spec     config.ListenerSpec
	listener *input.Listener
	lua      *luaif.Predicate
	added    bool
}

// Runner executes one session.
type Runner struct {
	session   *config.Session
	manager   *fake.Manager
	lua       *luaif.State
	listeners []*sessionListener
	devices   map[string]int32
	out       io.Writer
	logger    zerolog.Logger

	seq      int
	rejected int
	writeErr error
	closed   bool
}

// New prepares a runner for a validated session. Listeners that are not
// deferred are added to the manager immediately. Events are written to out.
func New(s *config.Session, out io.Writer, opts ...Option) (*Runner, error) {
	r := &Runner{
		session: s,
		devices: make(map[string]int32),
		out:     out,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	exceptions := make([]input.EventClass, 0, len(s.Manager.Exceptions))
	for _, id := range s.Manager.Exceptions {
		exceptions = append(exceptions, input.EventClassByID(id))
	}
	r.manager = fake.New(
		fake.WithLogger(r.logger),
		fake.WithEventClasses(s.Manager.Enabled(), exceptions...),
	)
	r.lua = luaif.NewState(luaif.WithLogger(r.logger))

	for _, spec := range s.Listeners {
		sl := &sessionListener{spec: spec}
		if spec.Lua != "" {
			p, err := r.lua.Compile(spec.Name, spec.Lua)
			if err != nil {
				r.lua.Close()
				return nil, fmt.Errorf("listener %s: %w", spec.Name, err)
			}
			sl.lua = p
		}
		name := spec.Name
		sl.listener = input.NewListener(func(e input.Event) {
			r.write(name, e)
		})
		r.listeners = append(r.listeners, sl)
	}
	for _, sl := range r.listeners {
		if !sl.spec.Deferred {
			r.addListener(sl)
		}
	}
	return r, nil
}

// Manager returns the fake manager driven by the script.
func (r *Runner) Manager() *fake.Manager {
	return r.manager
}

// Rejected returns the number of steps the manager refused, such as events
// of disabled classes or releases of keys that are not pressed.
func (r *Runner) Rejected() int {
	return r.rejected
}

// Run executes the script. Rejected steps are logged and counted; Run stops
// on the first write error or when ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	if r.closed {
		return ErrClosed
	}
	for i, step := range r.session.Script {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Debug().Int("step", i).Stringer("action", step).Msg("executing step")
		n, err := r.exec(step)
		if err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
		if r.writeErr != nil {
			return fmt.Errorf("writing events: %w", r.writeErr)
		}
		if n < 0 {
			r.rejected++
			r.logger.Warn().Int("step", i).Stringer("action", step).Msg("step rejected")
		}
	}
	return nil
}

// Close removes the listeners without finalization and releases the Lua
// state.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	for _, sl := range r.listeners {
		if sl.added {
			r.manager.RemoveListener(sl.listener, false)
			sl.added = false
		}
	}
	r.lua.Close()
	r.closed = true
}

// exec runs a step and returns the number of listeners reached, 0 for steps
// sending nothing, or -1 if the manager refused it.
func (r *Runner) exec(s config.Step) (int, error) {
	switch s.Action {
	case config.ActionAddDevice:
		classes := make([]input.CapabilityClass, 0, len(s.Capabilities))
		for _, id := range s.Capabilities {
			cls := input.CapabilityClassByID(id)
			if !cls.IsValid() {
				return 0, fmt.Errorf("%w: %s", config.ErrUnknownCapabilityClass, id)
			}
			classes = append(classes, cls)
		}
		r.devices[s.Device] = r.manager.SimulateNewDevice(s.Device, classes...)
		return 0, nil
	case config.ActionRemoveDevice:
		id, ok := r.device(s)
		delete(r.devices, s.Device)
		return boolResult(ok && r.manager.SimulateRemoveDevice(id)), nil
	case config.ActionChangeDevice:
		id, ok := r.device(s)
		return boolResult(ok && r.manager.SimulateChangedDevice(id)), nil
	case config.ActionKey:
		typ, err := s.KeyType()
		if err != nil {
			return 0, err
		}
		key, err := s.HardwareKey()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int { return r.manager.SimulateKeyEvent(id, typ, key) }), nil
	case config.ActionButton:
		press, err := s.Press()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int {
			return r.manager.SimulatePointerButton(id, s.X, s.Y, s.Button, press)
		}), nil
	case config.ActionMove:
		return r.withDevice(s, func(id int32) int { return r.manager.SimulatePointerMove(id, s.X, s.Y) }), nil
	case config.ActionScroll:
		dir, err := s.ScrollDirection()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int { return r.manager.SimulatePointerScroll(id, dir, s.X, s.Y) }), nil
	case config.ActionTouch:
		typ, err := s.TouchType()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int {
			return r.manager.SimulateTouch(id, typ, s.X, s.Y, s.Finger)
		}), nil
	case config.ActionJoystickButton:
		typ, err := s.KeyType()
		if err != nil {
			return 0, err
		}
		button, err := s.JoystickButton()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int { return r.manager.SimulateJoystickButton(id, typ, button) }), nil
	case config.ActionJoystickHat:
		value, err := s.HatValue()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int { return r.manager.SimulateJoystickHat(id, s.Hat, value) }), nil
	case config.ActionJoystickAxis:
		axis, err := s.JoystickAxis()
		if err != nil {
			return 0, err
		}
		return r.withDevice(s, func(id int32) int { return r.manager.SimulateJoystickAxis(id, axis, s.Value) }), nil
	case config.ActionAddListener:
		sl := r.listener(s.Listener)
		if sl == nil {
			return 0, fmt.Errorf("%w: listener %q", config.ErrInvalidStep, s.Listener)
		}
		return boolResult(r.addListener(sl)), nil
	case config.ActionRemoveListener:
		sl := r.listener(s.Listener)
		if sl == nil {
			return 0, fmt.Errorf("%w: listener %q", config.ErrInvalidStep, s.Listener)
		}
		return boolResult(r.removeListener(sl, s.Finalize)), nil
	case config.ActionEnableClass:
		cls := input.EventClassByID(s.Class)
		if !cls.IsValid() {
			return 0, fmt.Errorf("%w: %s", config.ErrUnknownEventClass, s.Class)
		}
		r.manager.EnableEventClass(cls)
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: action %q", config.ErrInvalidStep, s.Action)
	}
}

func boolResult(ok bool) int {
	if ok {
		return 0
	}
	return -1
}

func (r *Runner) device(s config.Step) (int32, bool) {
	id, ok := r.devices[s.Device]
	return id, ok
}

func (r *Runner) withDevice(s config.Step, fn func(id int32) int) int {
	id, ok := r.device(s)
	if !ok {
		return -1
	}
	return fn(id)
}

func (r *Runner) listener(name string) *sessionListener {
	for _, sl := range r.listeners {
		if sl.spec.Name == name {
			return sl
		}
	}
	return nil
}

func (r *Runner) addListener(sl *sessionListener) bool {
	c := r.predicate(sl)
	if !r.manager.AddListener(sl.listener, c) {
		return false
	}
	sl.added = true
	r.logger.Debug().Str("listener", sl.spec.Name).Str("filter", callif.String(c)).Msg("listener added")
	return true
}

func (r *Runner) removeListener(sl *sessionListener, finalize bool) bool {
	if !r.manager.RemoveListener(sl.listener, finalize) {
		return false
	}
	sl.added = false
	r.logger.Debug().Str("listener", sl.spec.Name).Bool("finalize", finalize).Msg("listener removed")
	return true
}

// predicate builds the filter of a listener. The device criterion resolves
// to the device id if the device exists and to a name match otherwise.
func (r *Runner) predicate(sl *sessionListener) input.CallIf {
	spec := sl.spec
	var parts []input.CallIf

	if len(spec.EventClasses) > 0 {
		classes := make([]input.CallIf, 0, len(spec.EventClasses))
		for _, id := range spec.EventClasses {
			classes = append(classes, callif.NewEventClassByID(id))
		}
		parts = append(parts, callif.Any(classes...))
	}
	if spec.Device != "" {
		if id, ok := r.devices[spec.Device]; ok {
			parts = append(parts, callif.NewDeviceIs(id))
		} else {
			name := spec.Device
			parts = append(parts, callif.NewFunc("device-name "+name, func(e input.Event) bool {
				d := input.DeviceOf(e)
				return d != nil && d.Name() == name
			}))
		}
	}
	if len(spec.CapabilityClasses) > 0 {
		classes := make([]input.CallIf, 0, len(spec.CapabilityClasses))
		for _, id := range spec.CapabilityClasses {
			classes = append(classes, callif.NewCapabilityClassByID(id))
		}
		parts = append(parts, callif.Any(classes...))
	}
	if spec.XYOnly {
		parts = append(parts, callif.NewXYEvent())
	}
	if sl.lua != nil {
		parts = append(parts, sl.lua)
	}

	c := callif.All(parts...)
	if spec.Negate {
		c = callif.NewNot(c)
	}
	return c
}

func (r *Runner) write(listener string, e input.Event) {
	if r.writeErr != nil {
		return
	}
	r.seq++
	line, err := EncodeEvent(listener, r.seq, e)
	if err == nil {
		_, err = r.out.Write(append(line, '\n'))
	}
	r.writeErr = err
}

// ListenerNames returns the names of the listeners currently added, sorted.
func (r *Runner) ListenerNames() []string {
	var names []string
	for _, sl := range r.listeners {
		if sl.added {
			names = append(names, sl.spec.Name)
		}
	}
	sort.Strings(names)
	return names
}
