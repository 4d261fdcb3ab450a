// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"github.com/gviegas/solar/internal/bitm"
	"github.com/gviegas/solar/linear"
)

// Interface of a node.
type Interface interface {
	// Local returns the local transform of the node.
	// It must not return nil.
	Local() *linear.M4

	// Changed returns whether the local transform
	// has changed since the last call to Local.
	Changed() bool
}

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
// As a parent, it denotes the top level of the graph.
const Nil Node = 0

type node struct {
	parent Node
	next   Node
	prev   Node
	sub    Node
	last   Node
	data   int
}

type data struct {
	local Interface
	world linear.M4
	node  Node
	stale bool
}

// Graph is a node graph.
// Nodes are stored in an arena and linked by index, so the
// graph holds no pointers between nodes. Every node has at
// most one parent, and a node is always inserted as a leaf,
// thus the graph is a forest.
//
// The zero value is an empty graph whose global transform
// is the identity.
type Graph struct {
	root    node
	world   linear.M4
	init    bool
	changed bool
	nodes   []node
	nodeMap bitm.Bitm[uint32]
	data    []data
}

func (g *Graph) lazyInit() {
	if !g.init {
		g.world.I()
		g.init = true
	}
}

// get returns the node identified by n.
// It panics if n is not in the graph.
func (g *Graph) get(n Node) *node {
	if n == Nil {
		return &g.root
	}
	if n < 0 || int(n) > len(g.nodes) || !g.nodeMap.IsSet(int(n)-1) {
		panic("node: invalid Node")
	}
	return &g.nodes[n-1]
}

// Insert inserts local as the last child of parent.
// If parent is Nil, it becomes a top-level node.
// It returns the Node that identifies local in g.
func (g *Graph) Insert(local Interface, parent Node) Node {
	if local == nil {
		panic("node: nil Interface in call to Graph.Insert")
	}
	g.lazyInit()
	g.get(parent)
	if g.nodeMap.Rem() == 0 {
		g.nodeMap.Grow(1)
		var elems [32]node
		g.nodes = append(g.nodes, elems[:]...)
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitm.Bitm.Search")
	}
	g.nodeMap.Set(idx)
	n := Node(idx + 1)
	par := g.get(parent)
	g.nodes[idx] = node{
		parent: parent,
		prev:   par.last,
		data:   len(g.data),
	}
	if par.last != Nil {
		g.nodes[par.last-1].next = n
	} else {
		par.sub = n
	}
	par.last = n
	g.data = append(g.data, data{local: local, node: n, stale: true})
	return n
}

// Remove removes n and all of its descendants.
// It returns the Interface that n identified.
// Handles of removed nodes become invalid and may be
// reused by subsequent calls to Insert.
func (g *Graph) Remove(n Node) Interface {
	if n == Nil {
		panic("node: Nil Node in call to Graph.Remove")
	}
	nd := g.get(n)
	local := g.data[nd.data].local

	par := g.get(nd.parent)
	if nd.prev != Nil {
		g.nodes[nd.prev-1].next = nd.next
	} else {
		par.sub = nd.next
	}
	if nd.next != Nil {
		g.nodes[nd.next-1].prev = nd.prev
	} else {
		par.last = nd.prev
	}

	que := []Node{n}
	for len(que) > 0 {
		x := que[0]
		que = que[1:]
		for s := g.nodes[x-1].sub; s != Nil; s = g.nodes[s-1].next {
			que = append(que, s)
		}
		g.free(x)
	}
	return local
}

// free releases the slot and data of n.
func (g *Graph) free(n Node) {
	d := g.nodes[n-1].data
	last := len(g.data) - 1
	if d < last {
		g.data[d] = g.data[last]
		g.nodes[g.data[d].node-1].data = d
	}
	g.data[last] = data{}
	g.data = g.data[:last]
	g.nodes[n-1] = node{}
	g.nodeMap.Unset(int(n) - 1)
}

// Get returns the Interface identified by n.
func (g *Graph) Get(n Node) Interface {
	if n == Nil {
		return nil
	}
	return g.data[g.get(n).data].local
}

// Parent returns the parent of n.
// It returns Nil for top-level nodes.
func (g *Graph) Parent(n Node) Node {
	if n == Nil {
		return Nil
	}
	return g.get(n).parent
}

// Children returns the immediate descendants of n in
// insertion order.
// If n is Nil, it returns the top-level nodes.
func (g *Graph) Children(n Node) []Node {
	var s []Node
	for x := g.get(n).sub; x != Nil; x = g.nodes[x-1].next {
		s = append(s, x)
	}
	return s
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return len(g.data) }

// World returns the world transform of n, as computed by
// the last call to Update.
// If n is Nil, it returns the global transform that is
// applied to every top-level node.
// The returned pointer is valid until the next call to
// Insert or Remove.
func (g *Graph) World(n Node) *linear.M4 {
	g.lazyInit()
	if n == Nil {
		return &g.world
	}
	return &g.data[g.get(n).data].world
}

// SetWorld sets the global transform of g.
func (g *Graph) SetWorld(m *linear.M4) {
	g.lazyInit()
	g.world = *m
	g.changed = true
}

// Update recomputes the world transform of every node whose
// local transform, or the local transform of an ancestor,
// has changed.
func (g *Graph) Update() {
	g.lazyInit()
	g.update(g.root.sub, &g.world, g.changed)
	g.changed = false
}

func (g *Graph) update(first Node, world *linear.M4, changed bool) {
	for n := first; n != Nil; n = g.nodes[n-1].next {
		nd := &g.nodes[n-1]
		d := &g.data[nd.data]
		c := changed || d.stale || d.local.Changed()
		if c {
			d.world.Mul(world, d.local.Local())
			d.stale = false
		}
		g.update(nd.sub, &d.world, c)
	}
}

// ForEach calls f for each node in g.
// Ancestors are processed first.
// The graph must not be changed until this method returns.
func (g *Graph) ForEach(f func(Node)) {
	g.Until(func(n Node) bool {
		f(n)
		return true
	})
}

// Until calls f for each node in g.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The graph must not be changed until this method returns.
func (g *Graph) Until(f func(Node) bool) {
	if g.root.sub == Nil {
		return
	}
	que := []Node{g.root.sub}
	for len(que) > 0 {
		for n := que[0]; n != Nil; n = g.nodes[n-1].next {
			if !f(n) {
				return
			}
			if sub := g.nodes[n-1].sub; sub != Nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}
