// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/gviegas/solar/linear"
)

const eps = 1e-5

func near(a, b float32) bool { return math32.Abs(a-b) < eps }

func TestRGB(t *testing.T) {
	for _, x := range [...]struct {
		c    uint32
		want [3]float32
	}{
		{0x000000, [3]float32{}},
		{0xffffff, [3]float32{1, 1, 1}},
		{0xff0000, [3]float32{1, 0, 0}},
		{0x00ff00, [3]float32{0, 1, 0}},
		{0x0000ff, [3]float32{0, 0, 1}},
	} {
		if have := rgb(x.c); have != x.want {
			t.Fatalf("rgb(%#06x):\nhave %v\nwant %v", x.c, have, x.want)
		}
	}
	c := rgb(0x2233ff)
	if !near(c[0], 0x22/255.0) || !near(c[1], 0x33/255.0) || c[2] != 1 {
		t.Fatalf("rgb(0x2233ff):\nhave %v", c)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.ClearColor != 0 || c.DoubleSided {
		t.Fatalf("DefaultConfig:\nhave %+v\nwant %+v", c, Config{})
	}
}

func TestDistantLight(t *testing.T) {
	l := (&DistantLight{
		Direction: linear.V3{1, -2, -4},
		Intensity: 3,
		R:         1,
		G:         2,
		B:         -1,
	}).Light()
	d := l.Direction()
	if !near(d.Len(), 1) {
		t.Fatalf("Light.Direction: length\nhave %v\nwant 1", d.Len())
	}
	want := linear.V3{1, -2, -4}
	want.Norm(&want)
	for i := range d {
		if !near(d[i], want[i]) {
			t.Fatalf("Light.Direction:\nhave %v\nwant %v", d, want)
		}
	}
	if i := l.Intensity(); i != 3 {
		t.Fatalf("Light.Intensity:\nhave %v\nwant 3", i)
	}
	if r, g, b := l.Color(); r != 1 || g != 1 || b != 0 {
		t.Fatalf("Light.Color:\nhave %v, %v, %v\nwant 1, 1, 0", r, g, b)
	}
	l.SetIntensity(-1)
	if i := l.Intensity(); i != 0 {
		t.Fatalf("Light.SetIntensity(-1):\nhave %v\nwant 0", i)
	}
}

func TestPhong(t *testing.T) {
	for _, x := range [...]Phong{
		{Color: 0x1000000},
		{Emissive: 0xffffffff},
		{Specular: 0x1000000},
		{Shininess: -1},
		{Shininess: math32.NaN()},
	} {
		if m, err := NewPhong(&x); err == nil || m != nil {
			t.Fatalf("NewPhong(%+v):\nhave %v, %v\nwant nil, error", x, m, err)
		}
	}

	m, err := NewPhong(&Phong{Emissive: 0xffff00})
	if err != nil {
		t.Fatalf("NewPhong: unexpected error: %v", err)
	}
	if !m.IsEmissiveOnly() {
		t.Fatal("Material.IsEmissiveOnly: have false, want true")
	}
	if s := m.Shininess(); s != dflShininess {
		t.Fatalf("Material.Shininess:\nhave %v\nwant %v", s, dflShininess)
	}
	if s := m.specular; s != rgb(dflSpecular) {
		t.Fatalf("Material.specular:\nhave %v\nwant %v", s, rgb(dflSpecular))
	}

	m, _ = NewPhong(&Phong{Color: 0x2233ff, Emissive: 0x112244, FlatShading: true})
	if m.IsEmissiveOnly() {
		t.Fatal("Material.IsEmissiveOnly: have true, want false")
	}
	if !m.FlatShading() {
		t.Fatal("Material.FlatShading: have false, want true")
	}
	if c := m.Color(); c != rgb(0x2233ff) {
		t.Fatalf("Material.Color:\nhave %v\nwant %v", c, rgb(0x2233ff))
	}
	if c := m.Emissive(); c != rgb(0x112244) {
		t.Fatalf("Material.Emissive:\nhave %v\nwant %v", c, rgb(0x112244))
	}
}

func TestShade(t *testing.T) {
	lights := []Light{(&DistantLight{Direction: linear.V3{0, 0, -1}, Intensity: 3, R: 1, G: 1, B: 1}).Light()}
	n := linear.V3{0, 0, 1}
	v := linear.V3{0, 0, 1}

	sun, _ := NewPhong(&Phong{Emissive: 0xffff00})
	if c := sun.shade(&n, &v, lights); c != [3]float32{1, 1, 0} {
		t.Fatalf("Material.shade: emissive only\nhave %v\nwant %v", c, [3]float32{1, 1, 0})
	}

	m, _ := NewPhong(&Phong{Color: 0x808080})
	lit := m.shade(&n, &v, lights)
	back := linear.V3{0, 0, -1}
	dark := m.shade(&back, &v, lights)
	if dark != [3]float32{} {
		t.Fatalf("Material.shade: facing away\nhave %v\nwant %v", dark, [3]float32{})
	}
	for i := range lit {
		if !(lit[i] > 0 && lit[i] <= 1) {
			t.Fatalf("Material.shade: facing light\nhave %v\nwant (0, 1]", lit)
		}
	}

	side := linear.V3{1, 0, 1}
	side.Norm(&side)
	if c := m.shade(&side, &v, lights); !(c[0] < lit[0]) {
		t.Fatalf("Material.shade: oblique\nhave %v\nwant < %v", c, lit)
	}

	none := m.shade(&n, &v, nil)
	if none != [3]float32{} {
		t.Fatalf("Material.shade: no lights\nhave %v\nwant %v", none, [3]float32{})
	}
}

func TestMesh(t *testing.T) {
	g, _ := NewSphere(1, 12, 12)
	m, _ := NewPhong(&Phong{Color: 0xffffff})
	if x, err := NewMesh(nil, m); err == nil || x != nil {
		t.Fatalf("NewMesh(nil, m):\nhave %v, %v\nwant nil, error", x, err)
	}
	if x, err := NewMesh(g, nil); err == nil || x != nil {
		t.Fatalf("NewMesh(g, nil):\nhave %v, %v\nwant nil, error", x, err)
	}
	x, err := NewMesh(g, m)
	if err != nil {
		t.Fatalf("NewMesh: unexpected error: %v", err)
	}
	if x.Geometry() != g || x.Material() != m {
		t.Fatal("NewMesh: Geometry/Material mismatch")
	}
}
