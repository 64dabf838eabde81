package config

import (
	"fmt"

	"github.com/dshills/devinput/internal/input/ev"
)

var keyTypes = map[string]ev.KeyInputType{
	"press":          ev.KeyPress,
	"release":        ev.KeyRelease,
	"release-cancel": ev.KeyReleaseCancel,
}

var touchTypes = map[string]ev.TouchInputType{
	"begin":  ev.TouchBegin,
	"update": ev.TouchUpdate,
	"end":    ev.TouchEnd,
	"cancel": ev.TouchCancel,
}

var scrollDirections = map[string]ev.ScrollDirection{
	"up":    ev.ScrollUp,
	"down":  ev.ScrollDown,
	"left":  ev.ScrollLeft,
	"right": ev.ScrollRight,
}

// KeyType decodes Type of a key step.
func (s Step) KeyType() (ev.KeyInputType, error) {
	t, ok := keyTypes[s.Type]
	if !ok {
		return 0, fmt.Errorf("%w: key type %q", ErrInvalidStep, s.Type)
	}
	return t, nil
}

// HardwareKey decodes Key of a key step.
func (s Step) HardwareKey() (ev.HardwareKey, error) {
	k, err := ev.ParseHardwareKey(s.Key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidStep, err)
	}
	return k, nil
}

// Press decodes Type of a button step.
func (s Step) Press() (bool, error) {
	switch s.Type {
	case "press":
		return true, nil
	case "release":
		return false, nil
	default:
		return false, fmt.Errorf("%w: button type %q", ErrInvalidStep, s.Type)
	}
}

// TouchType decodes Type of a touch step.
func (s Step) TouchType() (ev.TouchInputType, error) {
	t, ok := touchTypes[s.Type]
	if !ok {
		return 0, fmt.Errorf("%w: touch type %q", ErrInvalidStep, s.Type)
	}
	return t, nil
}

// ScrollDirection decodes Direction of a scroll step.
func (s Step) ScrollDirection() (ev.ScrollDirection, error) {
	d, ok := scrollDirections[s.Direction]
	if !ok {
		return 0, fmt.Errorf("%w: scroll direction %q", ErrInvalidStep, s.Direction)
	}
	return d, nil
}

// JoystickButton decodes Key of a joystick_button step.
func (s Step) JoystickButton() (ev.JoystickButton, error) {
	b, err := ev.ParseJoystickButton(s.Key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidStep, err)
	}
	return b, nil
}

// HatValue decodes Position of a joystick_hat step.
func (s Step) HatValue() (ev.HatValue, error) {
	v, ok := ev.ParseHatValue(s.Position)
	if !ok {
		return 0, fmt.Errorf("%w: hat position %q", ErrInvalidStep, s.Position)
	}
	return v, nil
}

// JoystickAxis decodes Axis of a joystick_axis step.
func (s Step) JoystickAxis() (ev.JoystickAxis, error) {
	a, ok := ev.ParseJoystickAxis(s.Axis)
	if !ok {
		return 0, fmt.Errorf("%w: joystick axis %q", ErrInvalidStep, s.Axis)
	}
	return a, nil
}

// String returns a short description used in logs.
func (s Step) String() string {
	switch s.Action {
	case ActionAddListener, ActionRemoveListener:
		return fmt.Sprintf("%s %s", s.Action, s.Listener)
	case ActionEnableClass:
		return fmt.Sprintf("%s %s", s.Action, s.Class)
	default:
		return fmt.Sprintf("%s %s", s.Action, s.Device)
	}
}
