// Package term provides a device manager fed by a tcell screen.
//
// The manager exposes one keyboard and one pointer device. Terminals report
// key presses only, so every key is sent as a press immediately followed by
// its release; modifiers reported with a key are sent as presses wrapping it.
// Mouse reports are compared with the previously held buttons to produce
// pointer button presses and releases, motion and wheel scrolls.
//
// All methods must be called from a single goroutine, normally the one
// executing Run.
package term

import (
	"context"
	"errors"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/dispatch"
	"github.com/dshills/devinput/internal/input/ev"
	"github.com/dshills/devinput/internal/input/manager"
)

// ErrClosed is returned by Run once the manager is closed.
var ErrClosed = errors.New("terminal manager closed")

// Accessor identifies the screen that produced an event.
type Accessor struct {
	Screen tcell.Screen
}

// EqualAccessor reports whether other is an accessor of the same screen.
func (a *Accessor) EqualAccessor(other input.Accessor) bool {
	o, ok := other.(*Accessor)
	return ok && o.Screen == a.Screen
}

type heldButton struct {
	button int32
	stamp  int64
}

// canceledButtons tracks the held buttons already canceled for a listener.
type canceledButtons struct {
	stamps []int64
}

func (c *canceledButtons) Reset() {
	c.stamps = c.stamps[:0]
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// Manager translates tcell events into input events.
type Manager struct {
	*manager.StdManager
	screen   tcell.Screen
	accessor *Accessor
	keyboard *input.StdDevice
	pointer  *input.StdDevice
	held     []heldButton
	x, y     float64
	closed   bool
	logger   zerolog.Logger
}

var _ input.DeviceManager = (*Manager)(nil)

// New creates a manager reading from screen. The caller initializes the
// screen, enables mouse reporting and finalizes it after Close.
func New(screen tcell.Screen, opts ...Option) *Manager {
	m := &Manager{
		screen:   screen,
		accessor: &Accessor{Screen: screen},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.StdManager = manager.New(manager.Config{
		ManagerCapabilityClasses: []input.CapabilityClass{ev.DeviceMgmtCapabilityClass},
		DeviceCapabilityClasses:  []input.CapabilityClass{ev.KeyCapabilityClass, ev.PointerCapabilityClass},
		EventClasses: []input.EventClass{
			ev.DeviceMgmtEventClass,
			ev.KeyEventClass,
			ev.PointerEventClass,
			ev.PointerScrollEventClass,
		},
		EnableByDefault: true,
		Accessors:       true,
	}, m.finalizeListener, manager.WithOwner(m), manager.WithLogger(m.logger))

	m.keyboard = input.NewDevice("terminal keyboard", m, ev.KeyCapabilityClass)
	m.pointer = input.NewDevice("terminal pointer", m, ev.PointerCapabilityClass)
	m.AddDevice(m.keyboard)
	m.AddDevice(m.pointer)
	m.AddAccessor(m.accessor)
	return m
}

// Accessor returns the accessor attached to every event of the manager.
func (m *Manager) Accessor() *Accessor {
	return m.accessor
}

// Keyboard returns the keyboard device.
func (m *Manager) Keyboard() input.Device {
	return m.keyboard
}

// Pointer returns the pointer device.
func (m *Manager) Pointer() input.Device {
	return m.pointer
}

// Run polls the screen and handles its events until ctx is done, the screen
// is finalized or the manager is closed.
func (m *Manager) Run(ctx context.Context) error {
	if m.closed {
		return ErrClosed
	}
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			e := m.screen.PollEvent()
			if e == nil {
				return
			}
			select {
			case events <- e:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			// Wake the poller so it notices done.
			_ = m.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				m.logger.Debug().Msg("screen finalized")
				return nil
			}
			m.HandleEvent(e)
			if m.closed {
				return ErrClosed
			}
		}
	}
}

// HandleEvent translates a tcell event and sends the resulting events. It
// returns the number of listener invocations.
func (m *Manager) HandleEvent(e tcell.Event) int {
	if m.closed {
		return 0
	}
	switch e := e.(type) {
	case *tcell.EventKey:
		return m.handleKey(e)
	case *tcell.EventMouse:
		return m.handleMouse(e)
	case *tcell.EventFocus:
		if !e.Focused {
			return m.cancelHeld()
		}
	}
	return 0
}

func (m *Manager) handleKey(e *tcell.EventKey) int {
	key, mods, ok := translateKey(e)
	if !ok {
		m.logger.Debug().Str("key", e.Name()).Msg("key without hardware key")
		return 0
	}
	c := m.keyboard.Capability(ev.KeyCapabilityClass)
	n := 0
	stamps := make([]int64, 0, len(mods)+1)
	for _, k := range append(mods, key) {
		stamps = append(stamps, input.UniqueTimeStamp())
		n += m.Send(ev.NewKeyEvent(input.NowTimeMicroseconds(), m.accessor, c, ev.KeyPress, k))
	}
	n += m.SendSince(ev.NewKeyEvent(input.NowTimeMicroseconds(), m.accessor, c, ev.KeyRelease, key), stamps[len(mods)])
	for i := len(mods) - 1; i >= 0; i-- {
		n += m.SendSince(ev.NewKeyEvent(input.NowTimeMicroseconds(), m.accessor, c, ev.KeyRelease, mods[i]), stamps[i])
	}
	return n
}

func (m *Manager) handleMouse(e *tcell.EventMouse) int {
	ix, iy := e.Position()
	x, y := float64(ix), float64(iy)
	moved := x != m.x || y != m.y
	m.x, m.y = x, y
	mask := e.Buttons()
	c := m.pointer.Capability(ev.PointerCapabilityClass)
	n := 0

	for _, pb := range pointerButtons {
		held := m.heldIndex(pb.button) >= 0
		switch down := mask&pb.mask != 0; {
		case down && !held:
			was := len(m.held) > 0
			m.held = append(m.held, heldButton{button: pb.button, stamp: input.UniqueTimeStamp()})
			n += m.Send(ev.NewPointerEvent(input.NowTimeMicroseconds(), m.accessor, c, x, y,
				ev.ButtonPress, pb.button, true, was))
		case !down && held:
			idx := m.heldIndex(pb.button)
			hb := m.held[idx]
			m.held = slices.Delete(m.held, idx, idx+1)
			n += m.SendSince(ev.NewPointerEvent(input.NowTimeMicroseconds(), m.accessor, c, x, y,
				ev.ButtonRelease, pb.button, len(m.held) > 0, true), hb.stamp)
		}
	}

	for _, wd := range wheelDirections {
		if mask&wd.mask != 0 {
			n += m.Send(ev.NewPointerScrollEvent(input.NowTimeMicroseconds(), m.accessor, c, wd.dir, x, y, len(m.held) > 0))
		}
	}

	if moved && mask&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) == 0 {
		pressed := len(m.held) > 0
		typ := ev.PointerHover
		if pressed {
			typ = ev.PointerMove
		}
		n += m.Send(ev.NewPointerEvent(input.NowTimeMicroseconds(), m.accessor, c, x, y, typ, ev.NoButton, pressed, pressed))
	}
	return n
}

func (m *Manager) heldIndex(button int32) int {
	for i, hb := range m.held {
		if hb.button == button {
			return i
		}
	}
	return -1
}

// cancelHeld cancels all held buttons for every listener that saw them
// pressed.
func (m *Manager) cancelHeld() int {
	if len(m.held) == 0 {
		return 0
	}
	m.BeginCancelFrame()
	defer m.EndCancelFrame()
	c := m.pointer.Capability(ev.PointerCapabilityClass)
	n := 0
	for len(m.held) > 0 {
		hb := m.held[0]
		m.held = m.held[1:]
		n += m.SendSince(ev.NewPointerEvent(input.NowTimeMicroseconds(), m.accessor, c, m.x, m.y,
			ev.ButtonReleaseCancel, hb.button, len(m.held) > 0, true), hb.stamp)
	}
	return n
}

func (m *Manager) finalizeListener(entry *dispatch.Entry) {
	if len(m.held) == 0 {
		return
	}
	m.BeginCancelFrame()
	defer m.EndCancelFrame()
	canceled := dispatch.Extra[canceledButtons](entry)
	c := m.pointer.Capability(ev.PointerCapabilityClass)
	for i, hb := range m.held {
		if hb.stamp < entry.AddedStamp() || slices.Contains(canceled.stamps, hb.stamp) {
			continue
		}
		canceled.stamps = append(canceled.stamps, hb.stamp)
		m.SendTo(entry, ev.NewPointerEvent(input.NowTimeMicroseconds(), m.accessor, c, m.x, m.y,
			ev.ButtonReleaseCancel, hb.button, i < len(m.held)-1, true))
	}
}

// Close cancels held buttons, removes both devices sending device removed
// events and stops Run. It is a no-op when already closed.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.cancelHeld()
	mgmt := m.ManagerCapability(ev.DeviceMgmtCapabilityClass)
	for _, dev := range []*input.StdDevice{m.keyboard, m.pointer} {
		m.RemoveDevice(dev)
		dev.Detach()
		m.Send(ev.NewDeviceMgmtEvent(input.NowTimeMicroseconds(), mgmt, ev.DeviceRemoved, dev))
	}
	m.RemoveAccessor(m.accessor)
	m.closed = true
	m.logger.Debug().Msg("terminal manager closed")
}
