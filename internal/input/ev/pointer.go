package ev

import (
	"fmt"

	"github.com/dshills/devinput/internal/input"
)

// PointerInputType is the type of a pointer event.
type PointerInputType uint8

const (
	// ButtonPress means a button was pressed.
	ButtonPress PointerInputType = iota + 1
	// ButtonRelease means a button was released.
	ButtonRelease
	// PointerMove means the pointer moved while a button is pressed.
	PointerMove
	// PointerHover means the pointer moved while no button is pressed.
	PointerHover
	// ButtonReleaseCancel means a pressed button is void.
	ButtonReleaseCancel
)

// String returns a human-readable type name.
func (t PointerInputType) String() string {
	switch t {
	case ButtonPress:
		return "button-press"
	case ButtonRelease:
		return "button-release"
	case PointerMove:
		return "move"
	case PointerHover:
		return "hover"
	case ButtonReleaseCancel:
		return "button-release-cancel"
	default:
		return "unknown"
	}
}

// NoButton is the button of move and hover events.
const NoButton int32 = -1

// PointerEvent reports a pointer button transition or motion.
type PointerEvent struct {
	input.BaseEvent
	x, y                float64
	typ                 PointerInputType
	button              int32
	anyButtonPressed    bool
	wasAnyButtonPressed bool
}

// NewPointerEvent creates a pointer event. anyPressed tells whether a button
// is pressed after the event, wasAnyPressed whether one was before it.
// It panics if capability is not a pointer capability, or if button is not
// NoButton for motion types or is negative for button types.
func NewPointerEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	x, y float64, typ PointerInputType, button int32, anyPressed, wasAnyPressed bool) *PointerEvent {
	mustHaveClass(capability, PointerCapabilityClass)
	switch typ {
	case PointerMove, PointerHover:
		if button != NoButton {
			panic(fmt.Sprintf("ev: %s with button %d", typ, button))
		}
	default:
		if button < 0 {
			panic(fmt.Sprintf("ev: %s without button", typ))
		}
	}
	return &PointerEvent{
		BaseEvent:           input.NewBaseEvent(timeUsec, accessor, PointerEventClass, capability),
		x:                   x,
		y:                   y,
		typ:                 typ,
		button:              button,
		anyButtonPressed:    anyPressed,
		wasAnyButtonPressed: wasAnyPressed,
	}
}

// X returns the horizontal position.
func (e *PointerEvent) X() float64 { return e.x }

// Y returns the vertical position.
func (e *PointerEvent) Y() float64 { return e.y }

// Type returns the event type.
func (e *PointerEvent) Type() PointerInputType { return e.typ }

// Button returns the button, NoButton for motion events.
func (e *PointerEvent) Button() int32 { return e.button }

// IsAnyButtonPressed reports whether a button is pressed after the event.
func (e *PointerEvent) IsAnyButtonPressed() bool { return e.anyButtonPressed }

// WasAnyButtonPressed reports whether a button was pressed before the event.
func (e *PointerEvent) WasAnyButtonPressed() bool { return e.wasAnyButtonPressed }

func (e *PointerEvent) String() string {
	if e.button == NoButton {
		return fmt.Sprintf("pointer %s (%g,%g)", e.typ, e.x, e.y)
	}
	return fmt.Sprintf("pointer %s %d (%g,%g)", e.typ, e.button, e.x, e.y)
}

// ScrollDirection is the direction of a scroll event.
type ScrollDirection uint8

const (
	ScrollUp ScrollDirection = iota + 1
	ScrollDown
	ScrollLeft
	ScrollRight
)

// String returns a human-readable direction name.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "unknown"
	}
}

// PointerScrollEvent reports a wheel step.
type PointerScrollEvent struct {
	input.BaseEvent
	x, y             float64
	dir              ScrollDirection
	anyButtonPressed bool
}

// NewPointerScrollEvent creates a scroll event. It panics if capability is
// not a pointer capability.
func NewPointerScrollEvent(timeUsec int64, accessor input.Accessor, capability *input.Capability,
	dir ScrollDirection, x, y float64, anyPressed bool) *PointerScrollEvent {
	mustHaveClass(capability, PointerCapabilityClass)
	return &PointerScrollEvent{
		BaseEvent:        input.NewBaseEvent(timeUsec, accessor, PointerScrollEventClass, capability),
		x:                x,
		y:                y,
		dir:              dir,
		anyButtonPressed: anyPressed,
	}
}

// X returns the horizontal position.
func (e *PointerScrollEvent) X() float64 { return e.x }

// Y returns the vertical position.
func (e *PointerScrollEvent) Y() float64 { return e.y }

// Direction returns the scroll direction.
func (e *PointerScrollEvent) Direction() ScrollDirection { return e.dir }

// IsAnyButtonPressed reports whether a button is pressed.
func (e *PointerScrollEvent) IsAnyButtonPressed() bool { return e.anyButtonPressed }

func (e *PointerScrollEvent) String() string {
	return fmt.Sprintf("scroll %s (%g,%g)", e.dir, e.x, e.y)
}
