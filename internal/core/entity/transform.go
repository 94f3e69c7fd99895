package entity

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// TransformComponent carries the spatial placement of its entity. Every
// entity gets one at index 0 when constructed, and the collection keeps a
// direct reference to the attached instance so hot-path lookups skip the
// linear scan.
type TransformComponent struct {
	ComponentBase

	Position Vec3
	Rotation Vec3 // euler angles, radians
	Scale    Vec3
}

// NewTransformComponent returns a transform at the origin with unit scale.
func NewTransformComponent() *TransformComponent {
	return &TransformComponent{Scale: Vec3{X: 1, Y: 1, Z: 1}}
}
