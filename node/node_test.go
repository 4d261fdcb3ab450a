// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/gviegas/solar/linear"
)

// logGraph outputs the nodes of g, one level per line.
func (g *Graph) logGraph(t *testing.T) {
	var sb strings.Builder
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		for _, x := range g.Children(n) {
			fmt.Fprintf(&sb, "%s(%d)\n", strings.Repeat("  ", depth), x)
			walk(x, depth+1)
		}
	}
	walk(Nil, 0)
	t.Log("\n" + sb.String())
}

// testInsert calls g.Insert and checks that it works
// as expected.
func (g *Graph) testInsert(parent Node, t *testing.T) Node {
	sibs := g.Children(parent)
	n := g.Insert(NewTransform(), parent)
	if n == Nil {
		t.Fatal("Graph.Insert: unexpected Nil Node")
	}
	if p := g.Parent(n); p != parent {
		t.Fatalf("Graph.Insert: Parent\nhave %v\nwant %v", p, parent)
	}
	if s, want := g.Children(parent), append(sibs, n); !slices.Equal(s, want) {
		t.Fatalf("Graph.Insert: Children\nhave %v\nwant %v", s, want)
	}
	if s := g.Children(n); len(s) != 0 {
		t.Fatalf("Graph.Insert: new node has children %v", s)
	}
	return n
}

// testRemove calls g.Remove and checks that it works
// as expected.
func (g *Graph) testRemove(n Node, t *testing.T) {
	parent := g.Parent(n)
	local := g.Get(n)
	ln := g.Len()
	cnt := 1
	var count func(Node)
	count = func(x Node) {
		for _, s := range g.Children(x) {
			cnt++
			count(s)
		}
	}
	count(n)
	if x := g.Remove(n); x != local {
		t.Fatalf("Graph.Remove: Interface\nhave %p\nwant %p", x, local)
	}
	if l := g.Len(); l != ln-cnt {
		t.Fatalf("Graph.Remove: Len\nhave %v\nwant %v", l, ln-cnt)
	}
	if slices.Contains(g.Children(parent), n) {
		t.Fatalf("Graph.Remove: %v still a child of %v", n, parent)
	}
}

func TestGraph(t *testing.T) {
	var g Graph
	if g.Len() != 0 {
		t.Fatal("Graph.Len: zero value should be empty")
	}
	n1 := g.testInsert(Nil, t)
	n2 := g.testInsert(n1, t)
	n3 := g.testInsert(n1, t)
	n4 := g.testInsert(n1, t)
	n5 := g.testInsert(n3, t)
	n6 := g.testInsert(Nil, t)
	g.logGraph(t)
	if g.Len() != 6 {
		t.Fatalf("Graph.Len\nhave %v\nwant 6", g.Len())
	}

	var order []Node
	g.ForEach(func(n Node) { order = append(order, n) })
	if want := []Node{n1, n6, n2, n3, n4, n5}; !slices.Equal(order, want) {
		t.Fatalf("Graph.ForEach\nhave %v\nwant %v", order, want)
	}
	order = order[:0]
	g.Until(func(n Node) bool {
		order = append(order, n)
		return n != n2
	})
	if want := []Node{n1, n6, n2}; !slices.Equal(order, want) {
		t.Fatalf("Graph.Until\nhave %v\nwant %v", order, want)
	}

	g.testRemove(n3, t)
	g.logGraph(t)
	if s := g.Children(n1); !slices.Equal(s, []Node{n2, n4}) {
		t.Fatalf("Graph.Children\nhave %v\nwant %v", s, []Node{n2, n4})
	}

	// Freed slots are reused.
	n7 := g.testInsert(n4, t)
	n8 := g.testInsert(n4, t)
	if !slices.Contains([]Node{n3, n5}, n7) || !slices.Contains([]Node{n3, n5}, n8) {
		t.Fatalf("Graph.Insert: expected reuse of %v and %v\nhave %v and %v", n3, n5, n7, n8)
	}
	g.logGraph(t)

	g.testRemove(n1, t)
	g.testRemove(n6, t)
	if g.Len() != 0 {
		t.Fatalf("Graph.Len\nhave %v\nwant 0", g.Len())
	}
	if s := g.Children(Nil); len(s) != 0 {
		t.Fatalf("Graph.Children(Nil)\nhave %v\nwant []", s)
	}
}

func TestGrowth(t *testing.T) {
	var g Graph
	parent := Nil
	for i := 0; i < 100; i++ {
		parent = g.Insert(NewTransform(), parent)
	}
	if g.Len() != 100 {
		t.Fatalf("Graph.Len\nhave %v\nwant 100", g.Len())
	}
	depth := 0
	for n := parent; n != Nil; n = g.Parent(n) {
		depth++
	}
	if depth != 100 {
		t.Fatalf("Graph.Parent: depth\nhave %v\nwant 100", depth)
	}
}

func TestInvalid(t *testing.T) {
	var g Graph
	n := g.Insert(NewTransform(), Nil)
	g.Remove(n)
	for _, f := range [...]func(){
		func() { g.Insert(NewTransform(), n) },
		func() { g.Remove(n) },
		func() { g.Remove(Nil) },
		func() { g.Children(Node(1000)) },
		func() { g.Insert(nil, Nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatal("Graph: expected panic on invalid use")
				}
			}()
			f()
		}()
	}
}

func TestWorld(t *testing.T) {
	var g Graph
	if w := g.World(Nil); *w != (linear.M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}) {
		t.Fatalf("Graph.World(Nil)\nhave %v\nwant identity", *w)
	}

	root := NewTransform()
	earth := NewTransform()
	earth.SetPosition(10, 0, 0)
	moon := NewTransform()
	moon.SetPosition(2, 0, 0)
	moonMesh := NewTransform()
	moonMesh.SetScale(0.5, 0.5, 0.5)

	nr := g.Insert(root, Nil)
	ne := g.Insert(earth, nr)
	nm := g.Insert(moon, ne)
	nmm := g.Insert(moonMesh, nm)
	g.Update()

	pos := func(n Node) linear.V3 { return g.World(n)[3].XYZ() }
	if p := pos(ne); p != (linear.V3{10, 0, 0}) {
		t.Fatalf("Graph.World: earth\nhave %v\nwant [10 0 0]", p)
	}
	if p := pos(nm); p != (linear.V3{12, 0, 0}) {
		t.Fatalf("Graph.World: moon\nhave %v\nwant [12 0 0]", p)
	}
	if w := g.World(nmm); w[0][0] != 0.5 || w[1][1] != 0.5 || w[2][2] != 0.5 || w[3].XYZ() != (linear.V3{12, 0, 0}) {
		t.Fatalf("Graph.World: moon mesh\nhave %v", *w)
	}

	// Changes propagate to descendants.
	earth.SetPosition(20, 0, 0)
	if !earth.Changed() {
		t.Fatal("Transform.Changed: should be true after SetPosition")
	}
	g.Update()
	if earth.Changed() {
		t.Fatal("Transform.Changed: should be false after Graph.Update")
	}
	if p := pos(nmm); p != (linear.V3{22, 0, 0}) {
		t.Fatalf("Graph.World: moon mesh after change\nhave %v\nwant [22 0 0]", p)
	}

	var m linear.M4
	m.Translate(0, 5, 0)
	g.SetWorld(&m)
	g.Update()
	if p := pos(nmm); p != (linear.V3{22, 5, 0}) {
		t.Fatalf("Graph.World: moon mesh after SetWorld\nhave %v\nwant [22 5 0]", p)
	}
}
