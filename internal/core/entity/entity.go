// Package entity implements the per-entity component collection: an ordered
// container of behavioral components with registry-driven uniqueness rules,
// a cached fast path to the transform component, and synchronous change
// notification to a single owner.
package entity

import (
	"iter"
	"reflect"

	"github.com/google/uuid"
)

// Entity is a game-world object: an identity plus the ordered collection of
// components that define its behavior. The collection lives exactly as long
// as its entity.
type Entity struct {
	id         uuid.UUID
	name       string
	components *Collection
	owner      Owner
}

// New constructs an entity holding a single default transform component at
// index 0.
func New(name string) *Entity {
	e := &Entity{id: uuid.New(), name: name}
	e.components = newCollection(e)
	if err := e.components.Add(NewTransformComponent()); err != nil {
		panic(err) // an empty collection cannot reject a transform
	}
	return e
}

func (e *Entity) ID() uuid.UUID { return e.id }

func (e *Entity) Name() string { return e.name }

func (e *Entity) SetName(name string) { e.name = name }

// Components returns the entity's component collection.
func (e *Entity) Components() *Collection { return e.components }

// Transform returns the cached transform component, or nil when the entity
// has none. Equivalent to Get[*TransformComponent](e) without the scan.
func (e *Entity) Transform() *TransformComponent { return e.components.transform }

// SetOwner registers the single change observer for this entity, replacing
// any previous one. A nil owner disables notifications; mutations still
// apply.
func (e *Entity) SetOwner(o Owner) { e.owner = o }

// Owner returns the currently registered observer, if any.
func (e *Entity) Owner() Owner { return e.owner }

func (e *Entity) notifyComponentChanged(index int, prev, next Component) {
	if e.owner != nil {
		e.owner.OnComponentChanged(e, index, prev, next)
	}
}

// Get returns the first component assignable to T. T may be a concrete
// pointer type or an interface.
func Get[T Component](e *Entity) (T, bool) {
	for _, item := range e.components.items {
		if v, ok := item.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetOrCreate returns the first component assignable to T, attaching a
// default-constructed T when the entity has none. T must be a pointer to a
// concrete component struct.
func GetOrCreate[T Component](e *Entity) (T, error) {
	if v, ok := Get[T](e); ok {
		return v, nil
	}
	v := newComponent[T]()
	if err := e.components.Add(v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// All yields every component assignable to T in collection order. The
// sequence is recomputed on each traversal start; a single traversal is not
// restartable, but All may be ranged over repeatedly.
func All[T Component](e *Entity) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range e.components.items {
			if v, ok := item.(T); ok && !yield(v) {
				return
			}
		}
	}
}

func newComponent[T Component]() T {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Pointer {
		panic("entity: GetOrCreate needs a pointer component type, got " + t.String())
	}
	return reflect.New(t.Elem()).Interface().(T)
}
