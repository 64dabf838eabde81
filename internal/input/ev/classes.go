package ev

import (
	"github.com/dshills/devinput/internal/input"
)

type (
	keyCapabilityKind        struct{}
	pointerCapabilityKind    struct{}
	touchCapabilityKind      struct{}
	joystickCapabilityKind   struct{}
	deviceMgmtCapabilityKind struct{}

	keyEventKind            struct{}
	pointerEventKind        struct{}
	pointerScrollEventKind  struct{}
	touchEventKind          struct{}
	deviceMgmtEventKind     struct{}
	joystickButtonEventKind struct{}
	joystickHatEventKind    struct{}
	joystickAxisEventKind   struct{}
)

// Capability classes.
var (
	KeyCapabilityClass        = input.RegisterCapabilityClass(keyCapabilityKind{}, "stmi::Keys", false)
	PointerCapabilityClass    = input.RegisterCapabilityClass(pointerCapabilityKind{}, "stmi::Pointer", false)
	TouchCapabilityClass      = input.RegisterCapabilityClass(touchCapabilityKind{}, "stmi::Touch", false)
	JoystickCapabilityClass   = input.RegisterCapabilityClass(joystickCapabilityKind{}, "stmi::Joystick", false)
	DeviceMgmtCapabilityClass = input.RegisterCapabilityClass(deviceMgmtCapabilityKind{}, "stmi::DeviceMgmt", true)
)

// Event classes.
var (
	KeyEventClass           = input.RegisterEventClass(keyEventKind{}, "stmi::Keys:KeyEvent", false)
	PointerEventClass       = input.RegisterEventClass(pointerEventKind{}, "stmi::Pointer:PointerEvent", true)
	PointerScrollEventClass = input.RegisterEventClass(pointerScrollEventKind{}, "stmi::Pointer:PointerScrollEvent", true)
	TouchEventClass         = input.RegisterEventClass(touchEventKind{}, "stmi::Touch:TouchEvent", true)
	DeviceMgmtEventClass    = input.RegisterEventClass(deviceMgmtEventKind{}, "stmi::DeviceMgmt:DeviceMgmtEvent", false)

	JoystickButtonEventClass = input.RegisterEventClass(joystickButtonEventKind{}, "stmi::Joystick:JoystickButtonEvent", false)
	JoystickHatEventClass    = input.RegisterEventClass(joystickHatEventKind{}, "stmi::Joystick:JoystickHatEvent", false)
	JoystickAxisEventClass   = input.RegisterEventClass(joystickAxisEventKind{}, "stmi::Joystick:JoystickAxisEvent", false)
)

// DeviceCapabilityClasses lists the device capability classes of this package.
func DeviceCapabilityClasses() []input.CapabilityClass {
	return []input.CapabilityClass{KeyCapabilityClass, PointerCapabilityClass, TouchCapabilityClass, JoystickCapabilityClass}
}

// EventClasses lists the event classes of this package.
func EventClasses() []input.EventClass {
	return []input.EventClass{
		KeyEventClass,
		PointerEventClass,
		PointerScrollEventClass,
		TouchEventClass,
		DeviceMgmtEventClass,
		JoystickButtonEventClass,
		JoystickHatEventClass,
		JoystickAxisEventClass,
	}
}
