package entity

// Owner observes structural changes to one entity's component collection.
// Exactly one owner is registered per entity at a time; SetOwner replaces the
// previous one, it never stacks. The callback runs synchronously after the
// mutation is applied and before the mutating call returns, so reading the
// collection from inside it observes the post-mutation state.
//
// oldComponent is nil for adds, newComponent is nil for removals, both are
// set for replacements.
type Owner interface {
	OnComponentChanged(e *Entity, index int, oldComponent, newComponent Component)
}

// OwnerFunc adapts a plain function to the Owner interface.
type OwnerFunc func(e *Entity, index int, oldComponent, newComponent Component)

func (f OwnerFunc) OnComponentChanged(e *Entity, index int, oldComponent, newComponent Component) {
	f(e, index, oldComponent, newComponent)
}
