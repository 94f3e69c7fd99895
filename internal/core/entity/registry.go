package entity

import (
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ComponentID is the stable process-wide identity of a component type,
// derived by hashing the type's fully-qualified name.
type ComponentID uint32

// ProcessorType identifies a processor implementation by its Go type.
type ProcessorType = reflect.Type

// Descriptor holds the static metadata of one component type. Descriptors
// are derived once per type and never change afterwards.
type Descriptor struct {
	Type          reflect.Type
	ID            ComponentID
	AllowMultiple bool
	ProcessorType ProcessorType
}

// Registry caches one Descriptor per component type for the process
// lifetime. Types are static, so entries are never invalidated.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]*Descriptor)}
}

var defaultRegistry = NewRegistry()

// Get returns the descriptor for t, deriving and caching it on first use.
// t must be a concrete component type; anything else is a caller error.
func (r *Registry) Get(t reflect.Type) *Descriptor {
	r.mu.RLock()
	d, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok = r.types[t]; ok {
		return d
	}
	d = derive(t)
	r.types[t] = d
	return d
}

func (r *Registry) put(d *Descriptor) {
	r.mu.Lock()
	r.types[d.Type] = d
	r.mu.Unlock()
}

var (
	multiComponentType     = reflect.TypeOf((*MultiComponent)(nil)).Elem()
	processedComponentType = reflect.TypeOf((*ProcessedComponent)(nil)).Elem()
)

// derive reads the static annotations of a component type: the marker
// interfaces it implements.
func derive(t reflect.Type) *Descriptor {
	d := &Descriptor{Type: t, ID: idOf(t)}
	if t.Implements(multiComponentType) {
		d.AllowMultiple = true
	}
	if t.Implements(processedComponentType) {
		d.ProcessorType = zeroOf(t).(ProcessedComponent).DefaultProcessorType()
	}
	return d
}

func idOf(t reflect.Type) ComponentID {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ComponentID(xxhash.Sum64String(t.PkgPath() + "." + t.Name()))
}

func zeroOf(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}

// TypeOf returns the reflect type of T. It keeps DefaultProcessorType
// implementations and engine callers from importing reflect directly.
func TypeOf[T any]() ProcessorType {
	return reflect.TypeFor[T]()
}

// Option adjusts a descriptor at registration time.
type Option func(*Descriptor)

// AllowMultiple permits several instances of the registered type on one
// entity.
func AllowMultiple() Option {
	return func(d *Descriptor) { d.AllowMultiple = true }
}

// WithProcessor names the processor type the engine attaches for components
// of the registered type.
func WithProcessor[P any]() Option {
	return func(d *Descriptor) { d.ProcessorType = reflect.TypeFor[P]() }
}

// Register statically records the descriptor for T, overriding anything the
// marker interfaces would derive. Call it from an init function, before the
// first entity is built.
func Register[T Component](opts ...Option) *Descriptor {
	d := derive(reflect.TypeFor[T]())
	for _, opt := range opts {
		opt(d)
	}
	defaultRegistry.put(d)
	return d
}

// DescriptorFor returns the cached descriptor of component type T.
func DescriptorFor[T Component]() *Descriptor {
	return defaultRegistry.Get(reflect.TypeFor[T]())
}

// DescriptorOf returns the cached descriptor for the concrete type of c.
func DescriptorOf(c Component) *Descriptor {
	return defaultRegistry.Get(reflect.TypeOf(c))
}

// IDFor returns the stable id of component type T.
func IDFor[T Component]() ComponentID {
	return DescriptorFor[T]().ID
}
