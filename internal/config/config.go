package config

// Session is the content of a session file.
type Session struct {
	Log       LogConfig      `toml:"log" yaml:"log"`
	Manager   ManagerConfig  `toml:"manager" yaml:"manager"`
	Listeners []ListenerSpec `toml:"listeners" yaml:"listeners"`
	Script    []Step         `toml:"script" yaml:"script"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error or disabled.
	Level string `toml:"level" yaml:"level"`
	// Format is json or console. Empty selects console output on a
	// terminal and json otherwise.
	Format string `toml:"format" yaml:"format"`
}

// ManagerConfig sets the initial event class enablement of the manager.
type ManagerConfig struct {
	// EnableByDefault is the initial state of every event class. Nil means
	// enabled.
	EnableByDefault *bool `toml:"enable_by_default" yaml:"enable_by_default"`
	// Exceptions are event class ids starting in the opposite state.
	Exceptions []string `toml:"exceptions" yaml:"exceptions"`
}

// Enabled returns the effective EnableByDefault value.
func (m ManagerConfig) Enabled() bool {
	return m.EnableByDefault == nil || *m.EnableByDefault
}

// ListenerSpec describes a listener and the predicate filtering its events.
// All set criteria must hold for an event to be delivered.
type ListenerSpec struct {
	Name string `toml:"name" yaml:"name"`
	// EventClasses accepts events of any of the listed class ids.
	EventClasses []string `toml:"event_classes" yaml:"event_classes"`
	// Device accepts events of the device with this script name.
	Device string `toml:"device" yaml:"device"`
	// CapabilityClasses accepts events of any of the listed capability
	// class ids.
	CapabilityClasses []string `toml:"capability_classes" yaml:"capability_classes"`
	// XYOnly accepts events with a position only.
	XYOnly bool `toml:"xy_only" yaml:"xy_only"`
	// Lua is an optional Lua filter expression.
	Lua string `toml:"lua" yaml:"lua"`
	// Negate inverts the combined predicate.
	Negate bool `toml:"negate" yaml:"negate"`
	// Deferred listeners are only added by an add_listener step.
	Deferred bool `toml:"deferred" yaml:"deferred"`
}

// Step actions.
const (
	ActionAddDevice      = "add_device"
	ActionRemoveDevice   = "remove_device"
	ActionChangeDevice   = "change_device"
	ActionKey            = "key"
	ActionButton         = "button"
	ActionMove           = "move"
	ActionScroll         = "scroll"
	ActionTouch          = "touch"
	ActionJoystickButton = "joystick_button"
	ActionJoystickHat    = "joystick_hat"
	ActionJoystickAxis   = "joystick_axis"
	ActionAddListener    = "add_listener"
	ActionRemoveListener = "remove_listener"
	ActionEnableClass    = "enable_class"
)

// Step is one script action. Which fields are used depends on Action.
type Step struct {
	Action string `toml:"action" yaml:"action"`
	// Device is the script name of the device the step acts on.
	Device string `toml:"device" yaml:"device"`
	// Capabilities are the capability class ids of an added device.
	Capabilities []string `toml:"capabilities" yaml:"capabilities"`
	// Type is press, release or release-cancel for keys and joystick
	// buttons, press or release for pointer buttons and begin, update, end
	// or cancel for touches.
	Type string `toml:"type" yaml:"type"`
	// Key is the hardware key name, or the button name of joystick_button.
	Key    string  `toml:"key" yaml:"key"`
	Button int32   `toml:"button" yaml:"button"`
	X      float64 `toml:"x" yaml:"x"`
	Y      float64 `toml:"y" yaml:"y"`
	// Direction is up, down, left or right.
	Direction string `toml:"direction" yaml:"direction"`
	Finger    int64  `toml:"finger" yaml:"finger"`
	// Hat and Position describe joystick_hat, Position being a name such as
	// center or left-up.
	Hat      int32  `toml:"hat" yaml:"hat"`
	Position string `toml:"position" yaml:"position"`
	// Axis and Value describe joystick_axis.
	Axis  string `toml:"axis" yaml:"axis"`
	Value int32  `toml:"value" yaml:"value"`
	// Listener is the listener name of add_listener and remove_listener.
	Listener string `toml:"listener" yaml:"listener"`
	// Finalize requests cancel events when removing a listener.
	Finalize bool `toml:"finalize" yaml:"finalize"`
	// Class is the event class id of enable_class.
	Class string `toml:"class" yaml:"class"`
}

// Default returns a session with default logging and no listeners.
func Default() *Session {
	return &Session{
		Log: LogConfig{Level: "info"},
	}
}

// Listener returns the listener with the given name.
func (s *Session) Listener(name string) (ListenerSpec, bool) {
	for _, l := range s.Listeners {
		if l.Name == name {
			return l, true
		}
	}
	return ListenerSpec{}, false
}
