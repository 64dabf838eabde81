package callif

import (
	"reflect"

	"github.com/dshills/devinput/internal/input"
)

// Simplify specializes c for events of class cls.
//
// Event class and XY tests fold to constants. And, Or and Not fold constant
// operands and Not(Not(x)) becomes x. Every other filter is kept as is.
// Nodes are never modified: unchanged subtrees are shared with c, and c
// itself is returned when nothing changed.
func Simplify(c input.CallIf, cls input.EventClass) input.CallIf {
	result, _ := simplify(c, cls)
	return result
}

func simplify(c input.CallIf, cls input.EventClass) (input.CallIf, bool) {
	switch p := c.(type) {
	case *EventClassIs:
		return constant(p.class == cls), true
	case *XYEvent:
		return constant(cls.IsXYEvent()), true
	case *And:
		first, changed1 := simplify(p.first, cls)
		second, changed2 := simplify(p.second, cls)
		switch {
		case first == False || second == False:
			return False, true
		case first == True:
			return second, true
		case second == True:
			return first, true
		case changed1 || changed2:
			return &And{first: first, second: second}, true
		}
		return p, false
	case *Or:
		first, changed1 := simplify(p.first, cls)
		second, changed2 := simplify(p.second, cls)
		switch {
		case first == True || second == True:
			return True, true
		case first == False:
			return second, true
		case second == False:
			return first, true
		case changed1 || changed2:
			return &Or{first: first, second: second}, true
		}
		return p, false
	case *Not:
		negated, changed := simplify(p.negated, cls)
		switch {
		case negated == True:
			return False, true
		case negated == False:
			return True, true
		}
		if inner, ok := negated.(*Not); ok {
			return inner.negated, true
		}
		if changed {
			return &Not{negated: negated}, true
		}
		return p, false
	}
	return c, false
}

func constant(v bool) *Const {
	if v {
		return True
	}
	return False
}

// IsTrue reports whether c is the True constant.
func IsTrue(c input.CallIf) bool {
	k, ok := c.(*Const)
	return ok && k.value
}

// IsFalse reports whether c is the False constant.
func IsFalse(c input.CallIf) bool {
	k, ok := c.(*Const)
	return ok && !k.value
}

// Equal reports whether a and b are structurally identical filters.
// Func nodes are equal only to themselves. Filters not defined by this
// package are compared with == when their type allows it.
func Equal(a, b input.CallIf) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Const:
		y, ok := b.(*Const)
		return ok && x.value == y.value
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.first, y.first) && Equal(x.second, y.second)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.first, y.first) && Equal(x.second, y.second)
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.negated, y.negated)
	case *AccessorIs:
		y, ok := b.(*AccessorIs)
		return ok && input.AccessorsEqual(x.accessor, y.accessor)
	case *DeviceIs:
		y, ok := b.(*DeviceIs)
		return ok && x.id == y.id
	case *CapabilityIs:
		y, ok := b.(*CapabilityIs)
		return ok && x.id == y.id
	case *CapabilityClassIs:
		y, ok := b.(*CapabilityClassIs)
		return ok && x.class == y.class
	case *ManagerCapability:
		_, ok := b.(*ManagerCapability)
		return ok
	case *EventClassIs:
		y, ok := b.(*EventClassIs)
		return ok && x.class == y.class
	case *XYEvent:
		_, ok := b.(*XYEvent)
		return ok
	case *Func:
		y, ok := b.(*Func)
		return ok && x == y
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}
