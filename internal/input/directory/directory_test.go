package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/devinput/internal/input"
)

type wheelKind struct{}
type lampKind struct{}

var (
	wheelClass = input.RegisterCapabilityClass(wheelKind{}, "directory_test::Wheel", false)
	lampClass  = input.RegisterCapabilityClass(lampKind{}, "directory_test::Lamp", false)
)

func TestDirectory_AddRemove(t *testing.T) {
	d := New()
	dev := input.NewDevice("wheel", nil, wheelClass)

	assert.True(t, d.AddDevice(dev))
	assert.False(t, d.AddDevice(dev))
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, input.Device(dev), d.Device(dev.ID()))

	assert.True(t, d.RemoveDevice(dev))
	assert.False(t, d.RemoveDevice(dev))
	assert.Nil(t, d.Device(dev.ID()))
	assert.Empty(t, d.DeviceIDs())
}

func TestDirectory_NilPanics(t *testing.T) {
	d := New()
	assert.Panics(t, func() { d.AddDevice(nil) })
	assert.Panics(t, func() { d.RemoveDevice(nil) })
}

func TestDirectory_DevicesWithCapabilityClass(t *testing.T) {
	d := New()
	wheel := input.NewDevice("wheel", nil, wheelClass)
	both := input.NewDevice("both", nil, lampClass, wheelClass)
	lamp := input.NewDevice("lamp", nil, lampClass)
	for _, dev := range []*input.StdDevice{lamp, wheel, both} {
		d.AddDevice(dev)
	}

	tests := []struct {
		name string
		cls  input.CapabilityClass
		want []int32
	}{
		{"wheel", wheelClass, []int32{wheel.ID(), both.ID()}},
		{"lamp", lampClass, []int32{both.ID(), lamp.ID()}},
		{"unregistered", input.CapabilityClass{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DevicesWithCapabilityClass(tt.cls))
		})
	}

	assert.Equal(t, []int32{wheel.ID(), both.ID(), lamp.ID()}, d.DeviceIDs())
	assert.Len(t, d.Devices(), 3)
}

func TestUnion(t *testing.T) {
	a := New()
	b := New()
	shared := input.NewDevice("shared", nil, wheelClass)
	onlyA := input.NewDevice("a", nil, lampClass)
	onlyB := input.NewDevice("b", nil, wheelClass, lampClass)
	a.AddDevice(shared)
	a.AddDevice(onlyA)
	b.AddDevice(shared)
	b.AddDevice(onlyB)

	u := Union{a, b}

	assert.Equal(t, []int32{shared.ID(), onlyA.ID(), onlyB.ID()}, u.DeviceIDs())
	assert.Equal(t, []int32{shared.ID(), onlyB.ID()}, u.DevicesWithCapabilityClass(wheelClass))
	assert.Nil(t, u.DevicesWithCapabilityClass(input.CapabilityClass{}))
	assert.Equal(t, input.Device(onlyB), u.Device(onlyB.ID()))
	assert.Nil(t, u.Device(-1))
	assert.Empty(t, Union{}.DeviceIDs())
}
