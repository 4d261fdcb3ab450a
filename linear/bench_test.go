// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"
)

func BenchmarkM4Mul(b *testing.B) {
	var l, r, m M4
	l.Translate(10, 0, 0)
	r.Scale(3, 3, 3)
	for i := 0; i < b.N; i++ {
		m.Mul(&l, &r)
	}
	b.Log(m)
}

func BenchmarkTRS(b *testing.B) {
	var q Q
	q.Rotate(1, &V3{0, 1, 0})
	t := V3{10, 0, 0}
	s := V3{1, 1, 1}
	var m M4
	b.Run("M4.TRS", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			m.TRS(&t, &q, &s)
		}
	})
	b.Run("Mul", func(b *testing.B) {
		var x, r, y M4
		for i := 0; i < b.N; i++ {
			x.Translate(t[0], t[1], t[2])
			r.RotateQ(&q)
			y.Scale(s[0], s[1], s[2])
			x.Mul(&x, &r)
			m.Mul(&x, &y)
		}
	})
	b.Log(m)
}
