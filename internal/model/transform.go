package model

// Transform is an actor's position and orientation in world space.
type Transform struct {
	Position Vector3
	Rotation Quaternion
}

// NewTransform creates a Transform at pos facing +Z.
func NewTransform(pos Vector3) *Transform {
	return &Transform{Position: pos, Rotation: Identity}
}

// LocalToWorld converts an offset expressed in rot's local frame into a
// world position relative to t.Position.
func (t Transform) LocalToWorld(offset Vector3, rot Quaternion) Vector3 {
	return t.Position.Add(rot.Rotate(offset))
}
