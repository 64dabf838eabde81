package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/devinput/internal/input"
	"github.com/dshills/devinput/internal/input/ev"
)

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	logFormats = []string{"", "json", "console"}
)

// validator collects validation errors.
type validator struct {
	errs []error
}

func (v *validator) add(path, msg string, value any, kind error) {
	v.errs = append(v.errs, &ValidationError{Path: path, Message: msg, Value: value, Kind: kind})
}

func (v *validator) eventClass(path, id string) {
	if !input.EventClassByID(id).IsValid() {
		v.add(path, "event class is not registered", id, ErrUnknownEventClass)
	}
}

// Validate checks class ids, listener definitions and that every script
// step is well formed and refers to devices and listeners that exist at
// that point of the script. All problems are reported, joined.
func (s *Session) Validate() error {
	var v validator

	if !slices.Contains(logLevels, s.Log.Level) {
		v.add("log.level", "unknown level", s.Log.Level, ErrInvalidLogConfig)
	}
	if !slices.Contains(logFormats, s.Log.Format) {
		v.add("log.format", "unknown format", s.Log.Format, ErrInvalidLogConfig)
	}
	for i, id := range s.Manager.Exceptions {
		v.eventClass(fmt.Sprintf("manager.exceptions[%d]", i), id)
	}

	names := make(map[string]bool, len(s.Listeners))
	for i, l := range s.Listeners {
		path := fmt.Sprintf("listeners[%d]", i)
		switch {
		case l.Name == "":
			v.add(path+".name", "name is required", nil, ErrInvalidListener)
		case names[l.Name]:
			v.add(path+".name", "duplicate listener name", l.Name, ErrInvalidListener)
		}
		names[l.Name] = true
		for j, id := range l.EventClasses {
			v.eventClass(fmt.Sprintf("%s.event_classes[%d]", path, j), id)
		}
		for j, id := range l.CapabilityClasses {
			if !input.CapabilityClassByID(id).IsValid() {
				v.add(fmt.Sprintf("%s.capability_classes[%d]", path, j), "capability class is not registered", id, ErrUnknownCapabilityClass)
			}
		}
	}

	devices := map[string][]input.CapabilityClass{}
	for i, step := range s.Script {
		v.step(fmt.Sprintf("script[%d]", i), step, devices, names)
	}
	return errors.Join(v.errs...)
}

func (v *validator) step(path string, s Step, devices map[string][]input.CapabilityClass, listeners map[string]bool) {
	need := func(cls input.CapabilityClass) bool {
		classes, ok := devices[s.Device]
		if !ok {
			v.add(path+".device", "device does not exist", s.Device, ErrInvalidStep)
			return false
		}
		if !slices.Contains(classes, cls) {
			v.add(path+".device", "device lacks capability "+cls.ID(), s.Device, ErrInvalidStep)
			return false
		}
		return true
	}
	check := func(field string, err error) {
		if err != nil {
			v.add(path+"."+field, err.Error(), nil, ErrInvalidStep)
		}
	}

	switch s.Action {
	case ActionAddDevice:
		if s.Device == "" {
			v.add(path+".device", "device name is required", nil, ErrInvalidStep)
			return
		}
		if _, ok := devices[s.Device]; ok {
			v.add(path+".device", "device already exists", s.Device, ErrInvalidStep)
			return
		}
		if len(s.Capabilities) == 0 {
			v.add(path+".capabilities", "at least one capability class is required", nil, ErrInvalidStep)
		}
		var classes []input.CapabilityClass
		for j, id := range s.Capabilities {
			cls := input.CapabilityClassByID(id)
			if !cls.IsValid() || cls.IsDeviceManagerCapability() {
				v.add(fmt.Sprintf("%s.capabilities[%d]", path, j), "not a device capability class", id, ErrUnknownCapabilityClass)
				continue
			}
			classes = append(classes, cls)
		}
		devices[s.Device] = classes
	case ActionRemoveDevice, ActionChangeDevice:
		if _, ok := devices[s.Device]; !ok {
			v.add(path+".device", "device does not exist", s.Device, ErrInvalidStep)
		}
		if s.Action == ActionRemoveDevice {
			delete(devices, s.Device)
		}
	case ActionKey:
		need(ev.KeyCapabilityClass)
		_, err := s.KeyType()
		check("type", err)
		_, err = s.HardwareKey()
		check("key", err)
	case ActionButton:
		need(ev.PointerCapabilityClass)
		_, err := s.Press()
		check("type", err)
		if s.Button < 0 {
			v.add(path+".button", "button must not be negative", s.Button, ErrInvalidStep)
		}
	case ActionMove:
		need(ev.PointerCapabilityClass)
	case ActionScroll:
		need(ev.PointerCapabilityClass)
		_, err := s.ScrollDirection()
		check("direction", err)
	case ActionTouch:
		need(ev.TouchCapabilityClass)
		_, err := s.TouchType()
		check("type", err)
	case ActionJoystickButton:
		need(ev.JoystickCapabilityClass)
		_, err := s.KeyType()
		check("type", err)
		_, err = s.JoystickButton()
		check("key", err)
	case ActionJoystickHat:
		need(ev.JoystickCapabilityClass)
		_, err := s.HatValue()
		check("position", err)
		if s.Hat < 0 {
			v.add(path+".hat", "hat must not be negative", s.Hat, ErrInvalidStep)
		}
	case ActionJoystickAxis:
		need(ev.JoystickCapabilityClass)
		_, err := s.JoystickAxis()
		check("axis", err)
	case ActionAddListener, ActionRemoveListener:
		if !listeners[s.Listener] {
			v.add(path+".listener", "listener is not defined", s.Listener, ErrInvalidStep)
		}
	case ActionEnableClass:
		v.eventClass(path+".class", s.Class)
	default:
		v.add(path+".action", "unknown action", s.Action, ErrInvalidStep)
	}
}
