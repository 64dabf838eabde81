package ev

import (
	"fmt"

	"github.com/dshills/devinput/internal/input"
)

// TouchInputType is the type of a touch event.
type TouchInputType uint8

const (
	TouchBegin TouchInputType = iota + 1
	TouchUpdate
	TouchEnd
	TouchCancel
)

// String returns a human-readable type name.
func (t TouchInputType) String() string {
	switch t {
	case TouchBegin:
		return "begin"
	case TouchUpdate:
		return "update"
	case TouchEnd:
		return "end"
	case TouchCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// TouchEvent reports a finger touching a surface.
type TouchEvent struct {
	input.BaseEvent
	x, y   float64
	typ    TouchInputType
	finger int64
}

// NewTouchEvent creates a touch event. Finger ids are unique among the
// touches open on one device. It panics if capability is not a touch
// capability.
func NewTouchEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	typ TouchInputType, x, y float64, finger int64) *TouchEvent {
	mustHaveClass(capability, TouchCapabilityClass)
	return &TouchEvent{
		BaseEvent: input.NewBaseEvent(timeUsec, accessor, TouchEventClass, capability),
		x:         x,
		y:         y,
		typ:       typ,
		finger:    finger,
	}
}

// X returns the horizontal position.
func (e *TouchEvent) X() float64 { return e.x }

// Y returns the vertical position.
func (e *TouchEvent) Y() float64 { return e.y }

// Type returns the event type.
func (e *TouchEvent) Type() TouchInputType { return e.typ }

// FingerID returns the finger id.
func (e *TouchEvent) FingerID() int64 { return e.finger }

func (e *TouchEvent) String() string {
	return fmt.Sprintf("touch %s finger %d (%g,%g)", e.typ, e.finger, e.x, e.y)
}
