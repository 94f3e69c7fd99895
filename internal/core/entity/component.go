package entity

// Component is one behavioral facet of an entity. Concrete components are
// pointer values: identity is reference identity, and an instance belongs to
// at most one entity at a time.
type Component interface {
	componentTag()
}

// ComponentBase tags a struct as a component. Embed it in every concrete
// component type.
type ComponentBase struct{}

func (ComponentBase) componentTag() {}

// MultiComponent marks a component type whose instances may coexist on one
// entity. Types without the marker are single-instance per entity.
type MultiComponent interface {
	Component
	AllowMultipleComponents()
}

// ProcessedComponent names the processor type the engine should attach for
// components of this type. The method is called once, on a zero value, when
// the type's descriptor is first derived.
type ProcessedComponent interface {
	Component
	DefaultProcessorType() ProcessorType
}
