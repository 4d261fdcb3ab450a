// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package node

import (
	"github.com/gviegas/solar/linear"
)

// Transform is an Interface defined by a position,
// a rotation and a scale, composed in TRS order.
// The zero value for Transform is not valid; one must
// call NewTransform or Init.
type Transform struct {
	pos     linear.V3
	rot     linear.Q
	scl     linear.V3
	local   linear.M4
	changed bool
}

// NewTransform creates an identity transform.
func NewTransform() *Transform { return new(Transform).Init() }

// Init initializes t to the identity transform.
func (t *Transform) Init() *Transform {
	t.pos = linear.V3{}
	t.rot.I()
	t.scl = linear.V3{1, 1, 1}
	t.changed = true
	return t
}

// SetPosition sets the position of t relative to its parent.
func (t *Transform) SetPosition(x, y, z float32) {
	t.pos = linear.V3{x, y, z}
	t.changed = true
}

// Position returns the position of t.
func (t *Transform) Position() linear.V3 { return t.pos }

// SetScale sets the scale of t.
func (t *Transform) SetScale(x, y, z float32) {
	t.scl = linear.V3{x, y, z}
	t.changed = true
}

// Scale returns the scale of t.
func (t *Transform) Scale() linear.V3 { return t.scl }

// SetRotation sets the rotation of t.
// q must be a unit quaternion.
func (t *Transform) SetRotation(q *linear.Q) {
	t.rot = *q
	t.changed = true
}

// SetAxisAngle sets the rotation of t to angle radians
// about axis.
func (t *Transform) SetAxisAngle(angle float32, axis *linear.V3) {
	t.rot.Rotate(angle, axis)
	t.changed = true
}

// Rotation returns the rotation of t.
func (t *Transform) Rotation() linear.Q { return t.rot }

// Local implements Interface.
func (t *Transform) Local() *linear.M4 {
	if t.changed {
		t.local.TRS(&t.pos, &t.rot, &t.scl)
		t.changed = false
	}
	return &t.local
}

// Changed implements Interface.
func (t *Transform) Changed() bool { return t.changed }
