package ev

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when a hardware key name is not recognized.
var ErrUnknownKey = errors.New("unknown hardware key")

// HardwareKey identifies a physical key. Values follow the Linux input
// event codes.
type HardwareKey uint16

// Hardware keys.
const (
	KeyNull       HardwareKey = 0
	KeyEsc        HardwareKey = 1
	Key1          HardwareKey = 2
	Key2          HardwareKey = 3
	Key3          HardwareKey = 4
	Key4          HardwareKey = 5
	Key5          HardwareKey = 6
	Key6          HardwareKey = 7
	Key7          HardwareKey = 8
	Key8          HardwareKey = 9
	Key9          HardwareKey = 10
	Key0          HardwareKey = 11
	KeyMinus      HardwareKey = 12
	KeyEqual      HardwareKey = 13
	KeyBackspace  HardwareKey = 14
	KeyTab        HardwareKey = 15
	KeyQ          HardwareKey = 16
	KeyW          HardwareKey = 17
	KeyE          HardwareKey = 18
	KeyR          HardwareKey = 19
	KeyT          HardwareKey = 20
	KeyY          HardwareKey = 21
	KeyU          HardwareKey = 22
	KeyI          HardwareKey = 23
	KeyO          HardwareKey = 24
	KeyP          HardwareKey = 25
	KeyLeftBrace  HardwareKey = 26
	KeyRightBrace HardwareKey = 27
	KeyEnter      HardwareKey = 28
	KeyLeftCtrl   HardwareKey = 29
	KeyA          HardwareKey = 30
	KeyS          HardwareKey = 31
	KeyD          HardwareKey = 32
	KeyF          HardwareKey = 33
	KeyG          HardwareKey = 34
	KeyH          HardwareKey = 35
	KeyJ          HardwareKey = 36
	KeyK          HardwareKey = 37
	KeyL          HardwareKey = 38
	KeySemicolon  HardwareKey = 39
	KeyApostrophe HardwareKey = 40
	KeyGrave      HardwareKey = 41
	KeyLeftShift  HardwareKey = 42
	KeyBackslash  HardwareKey = 43
	KeyZ          HardwareKey = 44
	KeyX          HardwareKey = 45
	KeyC          HardwareKey = 46
	KeyV          HardwareKey = 47
	KeyB          HardwareKey = 48
	KeyN          HardwareKey = 49
	KeyM          HardwareKey = 50
	KeyComma      HardwareKey = 51
	KeyDot        HardwareKey = 52
	KeySlash      HardwareKey = 53
	KeyRightShift HardwareKey = 54
	KeyKPAsterisk HardwareKey = 55
	KeyLeftAlt    HardwareKey = 56
	KeySpace      HardwareKey = 57
	KeyCapsLock   HardwareKey = 58
	KeyF1         HardwareKey = 59
	KeyF2         HardwareKey = 60
	KeyF3         HardwareKey = 61
	KeyF4         HardwareKey = 62
	KeyF5         HardwareKey = 63
	KeyF6         HardwareKey = 64
	KeyF7         HardwareKey = 65
	KeyF8         HardwareKey = 66
	KeyF9         HardwareKey = 67
	KeyF10        HardwareKey = 68
	KeyNumLock    HardwareKey = 69
	KeyScrollLock HardwareKey = 70
	KeyKP7        HardwareKey = 71
	KeyKP8        HardwareKey = 72
	KeyKP9        HardwareKey = 73
	KeyKPMinus    HardwareKey = 74
	KeyKP4        HardwareKey = 75
	KeyKP5        HardwareKey = 76
	KeyKP6        HardwareKey = 77
	KeyKPPlus     HardwareKey = 78
	KeyKP1        HardwareKey = 79
	KeyKP2        HardwareKey = 80
	KeyKP3        HardwareKey = 81
	KeyKP0        HardwareKey = 82
	KeyKPDot      HardwareKey = 83
	KeyF11        HardwareKey = 87
	KeyF12        HardwareKey = 88
	KeyKPEnter    HardwareKey = 96
	KeyRightCtrl  HardwareKey = 97
	KeyKPSlash    HardwareKey = 98
	KeySysRq      HardwareKey = 99
	KeyRightAlt   HardwareKey = 100
	KeyHome       HardwareKey = 102
	KeyUp         HardwareKey = 103
	KeyPageUp     HardwareKey = 104
	KeyLeft       HardwareKey = 105
	KeyRight      HardwareKey = 106
	KeyEnd        HardwareKey = 107
	KeyDown       HardwareKey = 108
	KeyPageDown   HardwareKey = 109
	KeyInsert     HardwareKey = 110
	KeyDelete     HardwareKey = 111
	KeyPause      HardwareKey = 119
	KeyLeftMeta   HardwareKey = 125
	KeyRightMeta  HardwareKey = 126
	KeyCompose    HardwareKey = 127

	KeyBtnLeft   HardwareKey = 0x110
	KeyBtnRight  HardwareKey = 0x111
	KeyBtnMiddle HardwareKey = 0x112
)

var hardwareKeyNames = map[HardwareKey]string{
	KeyNull: "Null", KeyEsc: "Esc",
	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",
	KeyMinus: "Minus", KeyEqual: "Equal", KeyBackspace: "Backspace", KeyTab: "Tab",
	KeyQ: "Q", KeyW: "W", KeyE: "E", KeyR: "R", KeyT: "T", KeyY: "Y",
	KeyU: "U", KeyI: "I", KeyO: "O", KeyP: "P",
	KeyLeftBrace: "LeftBrace", KeyRightBrace: "RightBrace", KeyEnter: "Enter", KeyLeftCtrl: "LeftCtrl",
	KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F", KeyG: "G", KeyH: "H",
	KeyJ: "J", KeyK: "K", KeyL: "L",
	KeySemicolon: "Semicolon", KeyApostrophe: "Apostrophe", KeyGrave: "Grave",
	KeyLeftShift: "LeftShift", KeyBackslash: "Backslash",
	KeyZ: "Z", KeyX: "X", KeyC: "C", KeyV: "V", KeyB: "B", KeyN: "N", KeyM: "M",
	KeyComma: "Comma", KeyDot: "Dot", KeySlash: "Slash", KeyRightShift: "RightShift",
	KeyKPAsterisk: "KPAsterisk", KeyLeftAlt: "LeftAlt", KeySpace: "Space", KeyCapsLock: "CapsLock",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
	KeyNumLock: "NumLock", KeyScrollLock: "ScrollLock",
	KeyKP0: "KP0", KeyKP1: "KP1", KeyKP2: "KP2", KeyKP3: "KP3", KeyKP4: "KP4",
	KeyKP5: "KP5", KeyKP6: "KP6", KeyKP7: "KP7", KeyKP8: "KP8", KeyKP9: "KP9",
	KeyKPMinus: "KPMinus", KeyKPPlus: "KPPlus", KeyKPDot: "KPDot", KeyKPEnter: "KPEnter", KeyKPSlash: "KPSlash",
	KeyRightCtrl: "RightCtrl", KeySysRq: "SysRq", KeyRightAlt: "RightAlt",
	KeyHome: "Home", KeyUp: "Up", KeyPageUp: "PageUp", KeyLeft: "Left", KeyRight: "Right",
	KeyEnd: "End", KeyDown: "Down", KeyPageDown: "PageDown", KeyInsert: "Insert", KeyDelete: "Delete",
	KeyPause: "Pause", KeyLeftMeta: "LeftMeta", KeyRightMeta: "RightMeta", KeyCompose: "Compose",
	KeyBtnLeft: "BtnLeft", KeyBtnRight: "BtnRight", KeyBtnMiddle: "BtnMiddle",
}

// hardwareKeyAliases maps additional lowercase names to keys.
var hardwareKeyAliases = map[string]HardwareKey{
	"escape":    KeyEsc,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"bs":        KeyBackspace,
	"del":       KeyDelete,
	"ins":       KeyInsert,
	"pgup":      KeyPageUp,
	"pgdn":      KeyPageDown,
	"ctrl":      KeyLeftCtrl,
	"shift":     KeyLeftShift,
	"alt":       KeyLeftAlt,
	"meta":      KeyLeftMeta,
	"period":    KeyDot,
	"backtick":  KeyGrave,
	"lbracket":  KeyLeftBrace,
	"rbracket":  KeyRightBrace,
	"quote":     KeyApostrophe,
	"printscrn": KeySysRq,
}

var hardwareKeysByName = func() map[string]HardwareKey {
	m := make(map[string]HardwareKey, len(hardwareKeyNames)+len(hardwareKeyAliases))
	for k, name := range hardwareKeyNames {
		m[strings.ToLower(name)] = k
	}
	for name, k := range hardwareKeyAliases {
		m[name] = k
	}
	return m
}()

// String returns the key name, or HardwareKey(n) for unnamed codes.
func (k HardwareKey) String() string {
	if name, ok := hardwareKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("HardwareKey(%d)", uint16(k))
}

// IsKnown returns true if the key has a name.
func (k HardwareKey) IsKnown() bool {
	_, ok := hardwareKeyNames[k]
	return ok
}

// IsModifier returns true for shift, control, alt and meta keys.
func (k HardwareKey) IsModifier() bool {
	switch k {
	case KeyLeftShift, KeyRightShift, KeyLeftCtrl, KeyRightCtrl,
		KeyLeftAlt, KeyRightAlt, KeyLeftMeta, KeyRightMeta:
		return true
	}
	return false
}

// ParseHardwareKey returns the key for a name (case-insensitive), as
// returned by String, an alias such as "escape" or "pgdn", or a decimal code.
func ParseHardwareKey(name string) (HardwareKey, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KeyNull, fmt.Errorf("%w: empty name", ErrUnknownKey)
	}
	if k, ok := hardwareKeysByName[name]; ok {
		return k, nil
	}
	var code uint16
	if _, err := fmt.Sscanf(name, "%d", &code); err == nil && fmt.Sprint(code) == name {
		return HardwareKey(code), nil
	}
	return KeyNull, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// HardwareKeyForRune returns the key producing r on a US layout without
// modifiers, and false if there is none.
func HardwareKeyForRune(r rune) (HardwareKey, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return letterKeys[r-'a'], true
	case r >= 'A' && r <= 'Z':
		return letterKeys[r-'A'], true
	case r >= '1' && r <= '9':
		return Key1 + HardwareKey(r-'1'), true
	}
	k, ok := punctuationKeys[r]
	return k, ok
}

var letterKeys = [26]HardwareKey{
	KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
	KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
}

var punctuationKeys = map[rune]HardwareKey{
	'0':  Key0,
	' ':  KeySpace,
	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBrace,
	']':  KeyRightBrace,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	'`':  KeyGrave,
	'\\': KeyBackslash,
	',':  KeyComma,
	'.':  KeyDot,
	'/':  KeySlash,
	'\t': KeyTab,
	'\r': KeyEnter,
	'\n': KeyEnter,
}
