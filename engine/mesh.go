// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
)

const meshPrefix = "mesh: "

func newMeshErr(reason string) error { return errors.New(meshPrefix + reason) }

// Mesh is a renderable that combines a geometry with
// a material.
type Mesh struct {
	geom *Geometry
	mat  *Material
}

// NewMesh creates a new mesh.
// geom and mat are referenced, not copied.
func NewMesh(geom *Geometry, mat *Material) (*Mesh, error) {
	switch {
	case geom == nil:
		return nil, newMeshErr("nil Geometry in call to NewMesh")
	case mat == nil:
		return nil, newMeshErr("nil Material in call to NewMesh")
	}
	return &Mesh{geom, mat}, nil
}

// Geometry returns the geometry of m.
func (m *Mesh) Geometry() *Geometry { return m.geom }

// Material returns the material of m.
func (m *Mesh) Material() *Material { return m.mat }
