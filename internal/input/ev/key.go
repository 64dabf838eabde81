package ev

import (
	"fmt"

	"github.com/dshills/devinput/internal/input"
)

// KeyInputType is the type of a key event.
type KeyInputType uint8

const (
	// KeyPress means the key was pressed.
	KeyPress KeyInputType = iota + 1
	// KeyRelease means the key was released.
	KeyRelease
	// KeyReleaseCancel means the press is void: the key was not released but
	// the device, the listener or the accessor went away.
	KeyReleaseCancel
)

// String returns a human-readable type name.
func (t KeyInputType) String() string {
	switch t {
	case KeyPress:
		return "press"
	case KeyRelease:
		return "release"
	case KeyReleaseCancel:
		return "release-cancel"
	default:
		return "unknown"
	}
}

// KeyEvent reports a hardware key transition.
type KeyEvent struct {
	input.BaseEvent
	typ KeyInputType
	key HardwareKey
}

// NewKeyEvent creates a key event. It panics if capability is not a key
// capability.
func NewKeyEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability, typ KeyInputType, key HardwareKey) *KeyEvent {
	mustHaveClass(capability, KeyCapabilityClass)
	return &KeyEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, accessor, KeyEventClass, capability),
		typ:       typ,
		key:       key,
	}
}

// Type returns the transition type.
func (e *KeyEvent) Type() KeyInputType { return e.typ }

// Key returns the hardware key.
func (e *KeyEvent) Key() HardwareKey { return e.key }

func (e *KeyEvent) String() string {
	return fmt.Sprintf("key %s %s", e.key, e.typ)
}

func mustHaveClass(capability *input.Capability, cls input.CapabilityClass) {
	if capability == nil {
		panic(fmt.Sprintf("ev: nil %s capability", cls))
	}
	if capability.Class() != cls {
		panic(fmt.Sprintf("ev: capability %s is not of class %s", capability, cls))
	}
}
