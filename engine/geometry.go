// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/gviegas/solar/linear"
)

const geomPrefix = "geometry: "

func newGeomErr(reason string) error { return errors.New(geomPrefix + reason) }

// Geometry is an indexed triangle list.
// Geometries are immutable, thus they can be shared by
// any number of meshes.
type Geometry struct {
	pos  []linear.V3
	norm []linear.V3
	idx  []uint32
}

// NewSphere creates a UV sphere centered at the origin.
// widthSeg is the number of segments around the Y axis
// and heightSeg is the number of segments from pole to
// pole. Front faces are counter-clockwise when seen from
// outside.
func NewSphere(radius float32, widthSeg, heightSeg int) (*Geometry, error) {
	switch {
	case !(radius > 0) || math32.IsInf(radius, 1):
		return nil, newGeomErr("invalid sphere radius")
	case widthSeg < 3:
		return nil, newGeomErr("sphere requires at least 3 width segments")
	case heightSeg < 2:
		return nil, newGeomErr("sphere requires at least 2 height segments")
	}
	nv := (widthSeg + 1) * (heightSeg + 1)
	g := &Geometry{
		pos:  make([]linear.V3, 0, nv),
		norm: make([]linear.V3, 0, nv),
		idx:  make([]uint32, 0, 6*widthSeg*(heightSeg-1)),
	}
	for iy := 0; iy <= heightSeg; iy++ {
		v := float32(iy) / float32(heightSeg)
		sv, cv := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSeg; ix++ {
			u := float32(ix) / float32(widthSeg)
			su, cu := math32.Sincos(u * 2 * math32.Pi)
			n := linear.V3{-cu * sv, cv, su * sv}
			var p linear.V3
			p.Scale(radius, &n)
			g.pos = append(g.pos, p)
			g.norm = append(g.norm, n)
		}
	}
	row := uint32(widthSeg + 1)
	for iy := 0; iy < heightSeg; iy++ {
		for ix := 0; ix < widthSeg; ix++ {
			a := uint32(iy)*row + uint32(ix) + 1
			b := uint32(iy)*row + uint32(ix)
			c := uint32(iy+1)*row + uint32(ix)
			d := uint32(iy+1)*row + uint32(ix) + 1
			if iy != 0 {
				g.idx = append(g.idx, a, b, d)
			}
			if iy != heightSeg-1 {
				g.idx = append(g.idx, b, c, d)
			}
		}
	}
	return g, nil
}

// VertexCount returns the number of vertices in g.
func (g *Geometry) VertexCount() int { return len(g.pos) }

// TriangleCount returns the number of triangles in g.
func (g *Geometry) TriangleCount() int { return len(g.idx) / 3 }

// Position returns the position of the ith vertex.
func (g *Geometry) Position(i int) linear.V3 { return g.pos[i] }

// Normal returns the normal of the ith vertex.
func (g *Geometry) Normal(i int) linear.V3 { return g.norm[i] }

// Triangle returns the vertex indices of the ith triangle.
func (g *Geometry) Triangle(i int) (a, b, c int) {
	return int(g.idx[3*i]), int(g.idx[3*i+1]), int(g.idx[3*i+2])
}
