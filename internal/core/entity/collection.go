package entity

import (
	"fmt"
	"iter"
	"reflect"
)

// Collection is the ordered, index-addressable set of components attached to
// one entity. Indices are stable 0-based positions; index 0 holds the
// entity's default transform by construction. The collection enforces the
// uniqueness rules of the type registry and reports every structural change
// to the entity's owner.
type Collection struct {
	entity    *Entity
	items     []Component
	transform *TransformComponent
}

func newCollection(e *Entity) *Collection {
	return &Collection{entity: e}
}

// Len returns the number of attached components.
func (c *Collection) Len() int {
	return len(c.items)
}

// Get returns the component at index i.
func (c *Collection) Get(i int) (Component, error) {
	if i < 0 || i >= len(c.items) {
		return nil, fmt.Errorf("%w: index %d with %d components", ErrIndexOutOfRange, i, len(c.items))
	}
	return c.items[i], nil
}

// All yields (index, component) pairs in collection order. The sequence is
// computed lazily on each traversal start; do not mutate the collection
// while ranging over it.
func (c *Collection) All() iter.Seq2[int, Component] {
	return func(yield func(int, Component) bool) {
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Add appends component at the next index.
func (c *Collection) Add(component Component) error {
	if err := c.validate(component, -1); err != nil {
		return err
	}
	c.items = append(c.items, component)
	c.commit(len(c.items)-1, nil, component)
	return nil
}

// Set replaces the component at index i. The duplicate-type rule ignores the
// slot being replaced, so swapping one transform for another is legal.
func (c *Collection) Set(i int, component Component) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: index %d with %d components", ErrIndexOutOfRange, i, len(c.items))
	}
	if err := c.validate(component, i); err != nil {
		return err
	}
	prev := c.items[i]
	c.items[i] = component
	c.commit(i, prev, component)
	return nil
}

// RemoveAt removes the component at index i, shifting later indices down by
// one.
func (c *Collection) RemoveAt(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: index %d with %d components", ErrIndexOutOfRange, i, len(c.items))
	}
	prev := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.commit(i, prev, nil)
	return nil
}

// Clear removes every component, reporting one change per element from the
// highest index down, as if removed one at a time from the end. Each change
// carries the pre-clear value at that index.
func (c *Collection) Clear() {
	for i := len(c.items) - 1; i >= 0; i-- {
		prev := c.items[i]
		c.items = c.items[:i]
		c.commit(i, prev, nil)
	}
}

// validate rejects nil components, instances already attached anywhere in
// the collection, and second instances of single-instance types. replacing
// is the slot a Set call is about to overwrite, or -1; only the
// duplicate-type rule skips it. Validation runs before any structural
// change, so a failed call leaves the collection untouched.
func (c *Collection) validate(candidate Component, replacing int) error {
	if candidate == nil {
		return ErrNilComponent
	}
	for i, item := range c.items {
		if item == candidate {
			return fmt.Errorf("%w at index %d", ErrDuplicateInstance, i)
		}
	}
	desc := DescriptorOf(candidate)
	if desc.AllowMultiple {
		return nil
	}
	for i, item := range c.items {
		if i == replacing {
			continue
		}
		if reflect.TypeOf(item) == desc.Type {
			return fmt.Errorf("%w: %s", ErrDuplicateType, desc.Type)
		}
	}
	return nil
}

// commit is the single exit point of every structural mutation: it refreshes
// the transform cache, then reports the change. The mutation is already
// applied when commit runs.
func (c *Collection) commit(index int, prev, next Component) {
	if t, ok := prev.(*TransformComponent); ok && c.transform == t {
		c.transform = nil
	}
	if t, ok := next.(*TransformComponent); ok {
		c.transform = t
	}
	c.entity.notifyComponentChanged(index, prev, next)
}
