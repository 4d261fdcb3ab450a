// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/gviegas/solar/linear"
)

const matPrefix = "material: "

func newMatErr(reason string) error { return errors.New(matPrefix + reason) }

// Material defines the material properties to be applied
// to geometry during rendering.
// Materials are immutable, thus they can be shared by any
// number of meshes.
type Material struct {
	color     [3]float32
	emissive  [3]float32
	specular  [3]float32
	shininess float32
	flat      bool
}

// Phong defines properties of the Blinn-Phong material
// model.
// Colors are given as 0xRRGGBB.
type Phong struct {
	// Diffuse color.
	// A black Color and a non-black Emissive produce a
	// material that ignores lights entirely.
	Color uint32

	// Light emitted by the surface regardless of
	// illumination.
	Emissive uint32

	// Specular color.
	// Zero selects 0x111111.
	Specular uint32

	// Exponent of the specular term.
	// Zero selects 30.
	Shininess float32

	// Shade per triangle rather than by interpolated
	// vertex normals.
	FlatShading bool
}

func (p *Phong) validate() error {
	for _, x := range [...]struct {
		c    uint32
		name string
	}{
		{p.Color, "Color"},
		{p.Emissive, "Emissive"},
		{p.Specular, "Specular"},
	} {
		if x.c > 0xffffff {
			return newMatErr("Phong." + x.name + " out of range")
		}
	}
	if p.Shininess < 0 || math32.IsNaN(p.Shininess) || math32.IsInf(p.Shininess, 0) {
		return newMatErr("invalid Phong.Shininess")
	}
	return nil
}

// NewPhong creates a new material using the Blinn-Phong model.
func NewPhong(prop *Phong) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	spec := prop.Specular
	if spec == 0 {
		spec = dflSpecular
	}
	shin := prop.Shininess
	if shin == 0 {
		shin = dflShininess
	}
	return &Material{
		color:     rgb(prop.Color),
		emissive:  rgb(prop.Emissive),
		specular:  rgb(spec),
		shininess: shin,
		flat:      prop.FlatShading,
	}, nil
}

// Color returns the diffuse color of m.
func (m *Material) Color() [3]float32 { return m.color }

// Emissive returns the emissive color of m.
func (m *Material) Emissive() [3]float32 { return m.emissive }

// Shininess returns the specular exponent of m.
func (m *Material) Shininess() float32 { return m.shininess }

// FlatShading returns whether m is shaded per triangle.
func (m *Material) FlatShading() bool { return m.flat }

// IsEmissiveOnly returns whether m is unaffected by
// lights.
func (m *Material) IsEmissiveOnly() bool {
	return m.color == [3]float32{} && m.emissive != [3]float32{}
}

// shade computes the color of a surface point with unit
// normal n seen from the unit direction v.
func (m *Material) shade(n, v *linear.V3, lights []Light) (c [3]float32) {
	c = m.emissive
	if m.IsEmissiveOnly() {
		return
	}
	for i := range lights {
		l := &lights[i]
		var ld linear.V3
		ld.Scale(-1, &l.dir)
		ndl := n.Dot(&ld)
		if ndl <= 0 {
			continue
		}
		var h linear.V3
		h.Add(&ld, v)
		h.Norm(&h)
		spec := math32.Pow(max(0, n.Dot(&h)), m.shininess)
		irr := l.intensity * ndl / math32.Pi
		for j := range c {
			c[j] += irr * l.color[j] * (m.color[j] + m.specular[j]*spec)
		}
	}
	for j := range c {
		c[j] = min(c[j], 1)
	}
	return
}
