package class

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"
)

// Class is the registered runtime descriptor of a kind.
//
// Class values are comparable with == and usable as map keys. The zero value
// is the empty class: it is not registered, has an empty id and never equals
// a registered class.
type Class struct {
	info *info
}

type info struct {
	kind     any
	id       string
	tag      bool
	registry *Registry
}

// IsValid returns true if the class was obtained from a registration.
func (c Class) IsValid() bool {
	return c.info != nil
}

// ID returns the globally unique string id, or "" for the empty class.
func (c Class) ID() string {
	if c.info == nil {
		return ""
	}
	return c.info.id
}

// Tag returns the boolean recorded at registration time.
func (c Class) Tag() bool {
	if c.info == nil {
		return false
	}
	return c.info.tag
}

// Kind returns the kind value the class was registered with.
func (c Class) Kind() any {
	if c.info == nil {
		return nil
	}
	return c.info.kind
}

// Registry returns the registry that owns the class, nil for the empty class.
func (c Class) Registry() *Registry {
	if c.info == nil {
		return nil
	}
	return c.info.registry
}

// String returns the id, or "<empty>" for the empty class.
func (c Class) String() string {
	if c.info == nil {
		return "<empty>"
	}
	return c.info.id
}

// Registry maps kinds and string ids to classes.
type Registry struct {
	name   string
	byKind map[any]*info
	byID   map[string]*info
	order  []*info
	logger zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to trace registrations.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty registry. The name only appears in panics and
// log output.
func NewRegistry(name string, opts ...Option) *Registry {
	r := &Registry{
		name:   name,
		byKind: make(map[any]*info),
		byID:   make(map[string]*info),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// Register binds kind to id and returns its class.
//
// If kind is already registered the existing class is returned unchanged,
// whatever id and tag are passed. Register panics if kind is nil or not
// comparable, if id is empty, or if id is already bound to another kind.
func (r *Registry) Register(kind any, id string, tag bool) Class {
	if kind == nil {
		panic(fmt.Sprintf("class: %s registry: nil kind", r.name))
	}
	if !reflect.TypeOf(kind).Comparable() {
		panic(fmt.Sprintf("class: %s registry: kind %T is not comparable", r.name, kind))
	}
	if id == "" {
		panic(fmt.Sprintf("class: %s registry: empty id for kind %T", r.name, kind))
	}
	if existing, ok := r.byKind[kind]; ok {
		if existing.id != id {
			r.logger.Warn().
				Str("registry", r.name).
				Str("id", existing.id).
				Str("ignored_id", id).
				Msg("kind already registered under another id")
		}
		return Class{info: existing}
	}
	if owner, ok := r.byID[id]; ok {
		panic(fmt.Sprintf("class: %s registry: id %q already bound to kind %T, cannot bind to %T",
			r.name, id, owner.kind, kind))
	}

	ci := &info{kind: kind, id: id, tag: tag, registry: r}
	r.byKind[kind] = ci
	r.byID[id] = ci
	r.order = append(r.order, ci)

	r.logger.Debug().Str("registry", r.name).Str("id", id).Bool("tag", tag).Msg("class registered")
	return Class{info: ci}
}

// ClassOf returns the class of kind, or the empty class if unregistered.
func (r *Registry) ClassOf(kind any) Class {
	if kind == nil || !reflect.TypeOf(kind).Comparable() {
		return Class{}
	}
	return Class{info: r.byKind[kind]}
}

// ClassOfID returns the class bound to id, or the empty class.
func (r *Registry) ClassOfID(id string) Class {
	return Class{info: r.byID[id]}
}

// IsIDRegistered returns true if id is bound to a kind.
func (r *Registry) IsIDRegistered(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Classes returns all registered classes in registration order.
func (r *Registry) Classes() []Class {
	result := make([]Class, len(r.order))
	for i, ci := range r.order {
		result[i] = Class{info: ci}
	}
	return result
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.order)
}
