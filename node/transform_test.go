// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package node

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/gviegas/solar/linear"
)

func TestTransform(t *testing.T) {
	var id linear.M4
	id.I()
	tr := NewTransform()
	if !tr.Changed() {
		t.Fatal("NewTransform: Changed should be true")
	}
	if m := *tr.Local(); m != id {
		t.Fatalf("Transform.Local: identity\nhave %v\nwant %v", m, id)
	}
	if tr.Changed() {
		t.Fatal("Transform.Local: Changed should be false")
	}

	tr.SetPosition(10, 0, 0)
	tr.SetScale(3, 3, 3)
	if p := tr.Position(); p != (linear.V3{10, 0, 0}) {
		t.Fatalf("Transform.Position:\nhave %v\nwant [10 0 0]", p)
	}
	if s := tr.Scale(); s != (linear.V3{3, 3, 3}) {
		t.Fatalf("Transform.Scale:\nhave %v\nwant [3 3 3]", s)
	}
	m := tr.Local()
	if m[0][0] != 3 || m[1][1] != 3 || m[2][2] != 3 || m[3] != (linear.V4{10, 0, 0, 1}) {
		t.Fatalf("Transform.Local: TS\nhave %v", m)
	}

	tr.SetScale(1, 1, 1)
	tr.SetAxisAngle(math32.Pi/2, &linear.V3{0, 1, 0})
	m = tr.Local()
	// +X goes to -Z.
	x := linear.V4{1, 0, 0, 0}
	var r linear.V4
	r.Mul(m, &x)
	if math32.Abs(r[0]) > 1e-6 || math32.Abs(r[2]+1) > 1e-6 {
		t.Fatalf("Transform.Local: rotation\nhave %v\nwant [0 0 -1 0]", r)
	}
	q := tr.Rotation()
	var want linear.Q
	want.Rotate(math32.Pi/2, &linear.V3{0, 1, 0})
	if q != want {
		t.Fatalf("Transform.Rotation:\nhave %v\nwant %v", q, want)
	}

	var i linear.Q
	i.I()
	tr.SetRotation(&i)
	if !tr.Changed() {
		t.Fatal("Transform.SetRotation: Changed should be true")
	}
	if m := tr.Local(); m[0] != (linear.V4{1, 0, 0, 0}) {
		t.Fatalf("Transform.Local: after SetRotation\nhave %v", m)
	}
}
