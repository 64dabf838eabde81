package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/devinput/internal/input"
)

func TestParentManager(t *testing.T) {
	first := New(Config{
		ManagerCapabilityClasses: []input.CapabilityClass{hubClass},
		DeviceCapabilityClasses:  []input.CapabilityClass{sliderClass},
		EventClasses:             []input.EventClass{slideClass},
		EnableByDefault:          true,
		Accessors:                true,
	}, nil)
	second := New(Config{
		ManagerCapabilityClasses: []input.CapabilityClass{hubClass, otherHubClass},
		DeviceCapabilityClasses:  []input.CapabilityClass{sliderClass},
		EventClasses:             []input.EventClass{slideClass, tickClass},
	}, nil)
	p := NewParent(first, second)

	a := input.NewDevice("a", first, sliderClass)
	b := input.NewDevice("b", second)
	first.AddDevice(a)
	second.AddDevice(b)

	assert.Equal(t, []int32{a.ID(), b.ID()}, p.DeviceIDs())
	assert.Equal(t, []int32{a.ID()}, p.DevicesWithCapabilityClass(sliderClass))
	assert.Equal(t, input.Device(b), p.Device(b.ID()))

	assert.Equal(t, []input.CapabilityClass{hubClass, otherHubClass}, p.CapabilityClasses())
	assert.Equal(t, []input.CapabilityClass{sliderClass}, p.DeviceCapabilityClasses())
	assert.Equal(t, []input.EventClass{slideClass, tickClass}, p.EventClasses())

	assert.Same(t, first.ManagerCapability(hubClass), p.ManagerCapability(hubClass))
	assert.Same(t, second.ManagerCapability(otherHubClass), p.ManagerCapability(otherHubClass))
	other := second.ManagerCapability(otherHubClass)
	assert.Same(t, other, p.ManagerCapabilityByID(other.ID()))
	assert.Len(t, p.ManagerCapabilities(hubClass), 2)
	assert.Len(t, NewParent(p, New(Config{}, nil)).ManagerCapabilities(hubClass), 2)

	assert.True(t, p.IsEventClassEnabled(slideClass))
	assert.False(t, p.IsEventClassEnabled(tickClass))
	p.EnableEventClass(tickClass)
	assert.True(t, second.IsEventClassEnabled(tickClass))

	assert.True(t, p.AddAccessor(token("x")))
	assert.True(t, p.HasAccessor(token("x")))
	assert.False(t, second.HasAccessor(token("x")))
	assert.True(t, p.RemoveAccessor(token("x")))
}

func TestParentManager_Listeners(t *testing.T) {
	first := New(Config{EventClasses: []input.EventClass{slideClass}, EnableByDefault: true}, nil)
	second := New(Config{EventClasses: []input.EventClass{slideClass}, EnableByDefault: true}, nil)
	p := NewParent(first, second)

	l := input.NewListener(func(input.Event) {})
	require.True(t, first.AddListener(l, nil))

	assert.True(t, p.AddListener(l, nil), "added to the second child")
	assert.False(t, p.AddListener(l, nil))
	assert.Equal(t, 1, first.ListenerCount())
	assert.Equal(t, 1, second.ListenerCount())

	assert.True(t, p.RemoveListener(l, false))
	assert.False(t, p.RemoveListener(l, false))
	assert.Equal(t, 0, second.ListenerCount())
}

func TestNewParent_Panics(t *testing.T) {
	assert.Panics(t, func() { NewParent() })
	assert.Panics(t, func() { NewParent(nil) })
}
