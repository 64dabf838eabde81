// Package ev defines the standard capabilities and events produced by the
// device managers of this module.
//
// Capability classes:
//
//	KeyCapabilityClass        stmi::Keys        device
//	PointerCapabilityClass    stmi::Pointer     device
//	TouchCapabilityClass      stmi::Touch       device
//	JoystickCapabilityClass   stmi::Joystick    device
//	DeviceMgmtCapabilityClass stmi::DeviceMgmt  manager
//
// Event classes are named after their capability, for example
// "stmi::Keys:KeyEvent". PointerEvent, PointerScrollEvent and TouchEvent are
// XY events.
//
// Key, button, touch and hat events come in open/close pairs (press and
// release, begin and end, off-center and center). A device manager that
// drops a listener or a device while such state is open sends the matching
// cancel type instead of the regular closing type: KeyReleaseCancel,
// ButtonReleaseCancel, TouchCancel and HatCenterCancel. Joystick buttons use
// the key transition types.
package ev
