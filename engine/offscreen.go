// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"cmp"
	"image"
	"io"
	"slices"

	"github.com/gogpu/gg"

	"github.com/gviegas/solar/internal/logger"
	"github.com/gviegas/solar/linear"
)

// Offscreen is a software Renderer that draws into an
// in-memory canvas.
// Triangles are shaded per face and sorted back to front.
type Offscreen struct {
	dc    *gg.Context
	cfg   Config
	clear [3]float32
	stats Stats

	// Scratch storage reused across frames.
	clip  []linear.V4
	wpos  []linear.V3
	wnorm []linear.V3
	tris  []tri
}

// Stats describes the work done by the last call to
// Offscreen.Render.
type Stats struct {
	Meshes    int
	Triangles int
	Culled    int
	Clipped   int
}

type tri struct {
	pts   [3][2]float64
	depth float32
	col   [3]float32
}

// NewOffscreen creates a new offscreen renderer.
// cfg may be nil, in which case DefaultConfig is used.
func NewOffscreen(width, height int, cfg *Config) (*Offscreen, error) {
	if width <= 0 || height <= 0 {
		return nil, newRendErr("invalid offscreen size")
	}
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	if cfg.ClearColor > 0xffffff {
		return nil, newRendErr("Config.ClearColor out of range")
	}
	r := &Offscreen{
		dc:    gg.NewContext(width, height),
		cfg:   *cfg,
		clear: rgb(cfg.ClearColor),
	}
	logger.Get().Debug("engine: offscreen renderer created", "width", width, "height", height)
	return r, nil
}

// SetSize resizes the canvas.
func (r *Offscreen) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return newRendErr("invalid offscreen size")
	}
	return r.dc.Resize(width, height)
}

// Size returns the dimensions of the canvas.
func (r *Offscreen) Size() (width, height int) { return r.dc.Width(), r.dc.Height() }

// Stats returns the statistics of the last frame.
func (r *Offscreen) Stats() Stats { return r.stats }

// Image returns the canvas contents.
func (r *Offscreen) Image() image.Image { return r.dc.Image() }

// SavePNG writes the canvas contents to a PNG file.
func (r *Offscreen) SavePNG(path string) error { return r.dc.SavePNG(path) }

// EncodePNG writes the canvas contents as PNG to w.
func (r *Offscreen) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Close releases the canvas.
func (r *Offscreen) Close() error { return r.dc.Close() }

// Render draws d as seen by cam.
func (r *Offscreen) Render(d Drawer, cam *Camera) error {
	if cam == nil {
		return newRendErr("nil Camera in call to Render")
	}
	r.stats = Stats{}
	r.tris = r.tris[:0]
	var vp linear.M4
	vp.Mul(cam.Projection(), cam.View())
	eye := cam.Position()
	lights := d.Lights()
	d.ForEachDrawable(func(world *linear.M4, mesh *Mesh) {
		r.stats.Meshes++
		r.project(&vp, world, &eye, mesh, lights)
	})
	slices.SortStableFunc(r.tris, func(a, b tri) int { return cmp.Compare(b.depth, a.depth) })

	r.dc.ClearWithColor(gg.RGB(float64(r.clear[0]), float64(r.clear[1]), float64(r.clear[2])))
	for i := range r.tris {
		t := &r.tris[i]
		r.dc.SetRGB(float64(t.col[0]), float64(t.col[1]), float64(t.col[2]))
		r.dc.MoveTo(t.pts[0][0], t.pts[0][1])
		r.dc.LineTo(t.pts[1][0], t.pts[1][1])
		r.dc.LineTo(t.pts[2][0], t.pts[2][1])
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return err
		}
	}
	r.stats.Triangles = len(r.tris)
	return nil
}

// project transforms the triangles of mesh and appends
// the visible ones to r.tris.
func (r *Offscreen) project(vp, world *linear.M4, eye *linear.V3, mesh *Mesh, lights []Light) {
	g := mesh.Geometry()
	m := mesh.Material()
	n := g.VertexCount()
	r.clip = slices.Grow(r.clip[:0], n)[:n]
	r.wpos = slices.Grow(r.wpos[:0], n)[:n]
	r.wnorm = slices.Grow(r.wnorm[:0], n)[:n]

	var nm linear.M3
	nm.Normal(world)
	for i := 0; i < n; i++ {
		p := g.Position(i)
		p4 := p.Point()
		var w4 linear.V4
		w4.Mul(world, &p4)
		r.wpos[i] = w4.XYZ()
		r.clip[i].Mul(vp, &w4)
		nv := g.Normal(i)
		r.wnorm[i].Mul(&nm, &nv)
		r.wnorm[i].Norm(&r.wnorm[i])
	}

	width, height := r.Size()
	fw, fh := float64(width), float64(height)
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)
		idx := [3]int{a, b, c}
		var ndc [3]linear.V3
		clipped := false
		for j, k := range idx {
			v := &r.clip[k]
			if v[3] <= 0 || v[2] < 0 || v[2] > v[3] {
				clipped = true
				break
			}
			ndc[j] = linear.V3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
		}
		if clipped {
			r.stats.Clipped++
			continue
		}
		area := (ndc[1][0]-ndc[0][0])*(ndc[2][1]-ndc[0][1]) -
			(ndc[2][0]-ndc[0][0])*(ndc[1][1]-ndc[0][1])
		if area <= 0 && !r.cfg.DoubleSided {
			r.stats.Culled++
			continue
		}

		var normal, center linear.V3
		if m.FlatShading() {
			var e1, e2 linear.V3
			e1.Sub(&r.wpos[b], &r.wpos[a])
			e2.Sub(&r.wpos[c], &r.wpos[a])
			normal.Cross(&e1, &e2)
		} else {
			normal.Add(&r.wnorm[a], &r.wnorm[b])
			normal.Add(&normal, &r.wnorm[c])
		}
		normal.Norm(&normal)
		if area < 0 {
			normal.Scale(-1, &normal)
		}
		center.Add(&r.wpos[a], &r.wpos[b])
		center.Add(&center, &r.wpos[c])
		center.Scale(1.0/3, &center)
		var toEye linear.V3
		toEye.Sub(eye, &center)
		toEye.Norm(&toEye)

		var t tri
		for j := range ndc {
			t.pts[j] = [2]float64{
				(float64(ndc[j][0]) + 1) / 2 * fw,
				(1 - float64(ndc[j][1])) / 2 * fh,
			}
			t.depth += ndc[j][2]
		}
		t.depth /= 3
		t.col = m.shade(&normal, &toEye, lights)
		r.tris = append(r.tris, t)
	}
}
