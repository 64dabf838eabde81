package class

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alphaKind struct{}
type betaKind struct{}
type gammaKind struct{}

func TestRegistry_RegisterIdempotent(t *testing.T) {
	r := NewRegistry("test")

	first := r.Register(alphaKind{}, "test::Alpha", true)
	second := r.Register(alphaKind{}, "test::Alpha", true)

	require.True(t, first.IsValid())
	assert.Equal(t, first, second)
	assert.Equal(t, "test::Alpha", second.ID())
	assert.True(t, second.Tag())
	assert.Equal(t, 1, r.Len())
	assert.Same(t, r, first.Registry())
}

func TestRegistry_RegisterExistingKindKeepsOriginal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry("test", WithLogger(zerolog.New(&buf)))

	first := r.Register(alphaKind{}, "test::Alpha", false)
	second := r.Register(alphaKind{}, "test::Other", true)

	assert.Equal(t, first, second)
	assert.Equal(t, "test::Alpha", second.ID())
	assert.False(t, second.Tag())
	assert.False(t, r.IsIDRegistered("test::Other"))
	assert.Contains(t, buf.String(), "kind already registered under another id")
}

func TestRegistry_RegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *Registry)
	}{
		{
			name: "nil kind",
			fn:   func(r *Registry) { r.Register(nil, "test::Nil", false) },
		},
		{
			name: "empty id",
			fn:   func(r *Registry) { r.Register(alphaKind{}, "", false) },
		},
		{
			name: "non comparable kind",
			fn:   func(r *Registry) { r.Register([]int{1}, "test::Slice", false) },
		},
		{
			name: "id owned by other kind",
			fn: func(r *Registry) {
				r.Register(alphaKind{}, "test::Shared", false)
				r.Register(betaKind{}, "test::Shared", false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("test")
			assert.Panics(t, func() { tt.fn(r) })
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry("test")
	alpha := r.Register(alphaKind{}, "test::Alpha", false)
	beta := r.Register(betaKind{}, "test::Beta", true)

	assert.Equal(t, alpha, r.ClassOf(alphaKind{}))
	assert.Equal(t, beta, r.ClassOfID("test::Beta"))
	assert.NotEqual(t, alpha, beta)
	assert.True(t, r.IsIDRegistered("test::Alpha"))

	missing := r.ClassOf(gammaKind{})
	assert.False(t, missing.IsValid())
	assert.Equal(t, Class{}, missing)
	assert.Equal(t, "", missing.ID())
	assert.Equal(t, "<empty>", missing.String())
	assert.Nil(t, missing.Kind())

	assert.False(t, r.ClassOfID("test::Gamma").IsValid())
	assert.False(t, r.ClassOf([]string{"x"}).IsValid())
	assert.False(t, r.ClassOf(nil).IsValid())
}

func TestRegistry_ClassesInRegistrationOrder(t *testing.T) {
	r := NewRegistry("test")
	beta := r.Register(betaKind{}, "test::Beta", false)
	alpha := r.Register(alphaKind{}, "test::Alpha", false)
	r.Register(betaKind{}, "test::Beta", false)

	assert.Equal(t, []Class{beta, alpha}, r.Classes())
}

func TestRegistry_SeparateRegistriesDoNotShare(t *testing.T) {
	a := NewRegistry("a")
	b := NewRegistry("b")

	ca := a.Register(alphaKind{}, "shared::Alpha", false)
	cb := b.Register(alphaKind{}, "shared::Alpha", false)

	assert.NotEqual(t, ca, cb)
	assert.Equal(t, ca.ID(), cb.ID())
	assert.Equal(t, "a", ca.Registry().Name())
}

func TestClass_UsableAsMapKey(t *testing.T) {
	r := NewRegistry("test")
	alpha := r.Register(alphaKind{}, "test::Alpha", false)

	m := map[Class]int{alpha: 1}
	assert.Equal(t, 1, m[r.ClassOfID("test::Alpha")])
	assert.Equal(t, alphaKind{}, alpha.Kind())
}
