package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/devinput/internal/input/ev"
)

var specialKeys = map[tcell.Key]ev.HardwareKey{
	tcell.KeyEnter:      ev.KeyEnter,
	tcell.KeyTab:        ev.KeyTab,
	tcell.KeyBacktab:    ev.KeyTab,
	tcell.KeyBackspace:  ev.KeyBackspace,
	tcell.KeyBackspace2: ev.KeyBackspace,
	tcell.KeyEscape:     ev.KeyEsc,
	tcell.KeyDelete:     ev.KeyDelete,
	tcell.KeyInsert:     ev.KeyInsert,
	tcell.KeyHome:       ev.KeyHome,
	tcell.KeyEnd:        ev.KeyEnd,
	tcell.KeyPgUp:       ev.KeyPageUp,
	tcell.KeyPgDn:       ev.KeyPageDown,
	tcell.KeyUp:         ev.KeyUp,
	tcell.KeyDown:       ev.KeyDown,
	tcell.KeyLeft:       ev.KeyLeft,
	tcell.KeyRight:      ev.KeyRight,
	tcell.KeyPause:      ev.KeyPause,
	tcell.KeyPrint:      ev.KeySysRq,
	tcell.KeyF1:         ev.KeyF1,
	tcell.KeyF2:         ev.KeyF2,
	tcell.KeyF3:         ev.KeyF3,
	tcell.KeyF4:         ev.KeyF4,
	tcell.KeyF5:         ev.KeyF5,
	tcell.KeyF6:         ev.KeyF6,
	tcell.KeyF7:         ev.KeyF7,
	tcell.KeyF8:         ev.KeyF8,
	tcell.KeyF9:         ev.KeyF9,
	tcell.KeyF10:        ev.KeyF10,
	tcell.KeyF11:        ev.KeyF11,
	tcell.KeyF12:        ev.KeyF12,
}

// translateKey returns the hardware key of a tcell key event and the
// modifier keys held with it, outermost first.
func translateKey(e *tcell.EventKey) (ev.HardwareKey, []ev.HardwareKey, bool) {
	mod := e.Modifiers()
	var key ev.HardwareKey
	switch k := e.Key(); {
	case k == tcell.KeyRune:
		r := e.Rune()
		hk, ok := ev.HardwareKeyForRune(r)
		if !ok {
			return ev.KeyNull, nil, false
		}
		if unicode.IsUpper(r) {
			mod |= tcell.ModShift
		}
		key = hk
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		key, _ = ev.HardwareKeyForRune(rune('a' + k - tcell.KeyCtrlA))
		mod |= tcell.ModCtrl
	default:
		if hk, ok := specialKeys[k]; ok {
			key = hk
			break
		}
		// Raw control codes 1 to 26.
		if k >= tcell.KeySOH && k <= tcell.KeySUB {
			key, _ = ev.HardwareKeyForRune(rune('a' + k - tcell.KeySOH))
			mod |= tcell.ModCtrl
			break
		}
		return ev.KeyNull, nil, false
	}
	return key, modifierKeys(mod), true
}

func modifierKeys(mod tcell.ModMask) []ev.HardwareKey {
	var keys []ev.HardwareKey
	if mod&tcell.ModCtrl != 0 {
		keys = append(keys, ev.KeyLeftCtrl)
	}
	if mod&tcell.ModAlt != 0 {
		keys = append(keys, ev.KeyLeftAlt)
	}
	if mod&tcell.ModMeta != 0 {
		keys = append(keys, ev.KeyLeftMeta)
	}
	if mod&tcell.ModShift != 0 {
		keys = append(keys, ev.KeyLeftShift)
	}
	return keys
}

// pointerButtons maps tcell buttons to pointer button numbers: 1 is the
// primary, 2 the middle and 3 the secondary button.
var pointerButtons = []struct {
	mask   tcell.ButtonMask
	button int32
}{
	{tcell.Button1, 1},
	{tcell.Button3, 2},
	{tcell.Button2, 3},
}

var wheelDirections = []struct {
	mask tcell.ButtonMask
	dir  ev.ScrollDirection
}{
	{tcell.WheelUp, ev.ScrollUp},
	{tcell.WheelDown, ev.ScrollDown},
	{tcell.WheelLeft, ev.ScrollLeft},
	{tcell.WheelRight, ev.ScrollRight},
}
