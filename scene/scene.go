// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
package scene

import (
	"github.com/gviegas/solar/engine"
	"github.com/gviegas/solar/linear"
	"github.com/gviegas/solar/node"
)

// entry is the Interface stored in the graph.
// A nil mesh denotes a transform-only node.
type entry struct {
	*node.Transform
	mesh *engine.Mesh
}

// Scene defines a scene graph.
// It implements engine.Drawer.
type Scene struct {
	graph  node.Graph
	lights []engine.Light
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	s.graph = node.Graph{}
	s.lights = s.lights[:0]
	return s
}

func (s *Scene) entry(n node.Node) *entry {
	if n == node.Nil {
		panic("scene: Nil Node")
	}
	return s.graph.Get(n).(*entry)
}

// Insert inserts a transform-only node as the last child
// of parent (node.Nil for the top level).
// If t is nil, an identity transform is used.
func (s *Scene) Insert(t *node.Transform, parent node.Node) node.Node {
	if t == nil {
		t = node.NewTransform()
	}
	return s.graph.Insert(&entry{Transform: t}, parent)
}

// Remove removes n and all of its descendants.
func (s *Scene) Remove(n node.Node) { s.graph.Remove(n) }

// Attach makes n renderable using mesh.
// A nil mesh turns n back into a transform-only node.
func (s *Scene) Attach(n node.Node, mesh *engine.Mesh) { s.entry(n).mesh = mesh }

// Mesh returns the mesh attached to n, or nil.
func (s *Scene) Mesh(n node.Node) *engine.Mesh { return s.entry(n).mesh }

// Transform returns the transform of n.
func (s *Scene) Transform(n node.Node) *node.Transform { return s.entry(n).Transform }

// Graph returns the underlying node graph.
func (s *Scene) Graph() *node.Graph { return &s.graph }

// Len returns the number of nodes in s.
func (s *Scene) Len() int { return s.graph.Len() }

// World returns the world transform of n.
func (s *Scene) World(n node.Node) *linear.M4 { return s.graph.World(n) }

// Meshes returns the number of renderable nodes in s.
func (s *Scene) Meshes() (n int) {
	s.ForEachDrawable(func(*linear.M4, *engine.Mesh) { n++ })
	return
}

// AddLight adds a light to s.
// It returns the index of the light.
func (s *Scene) AddLight(l engine.Light) int {
	s.lights = append(s.lights, l)
	return len(s.lights) - 1
}

// Lights implements engine.Drawer.
func (s *Scene) Lights() []engine.Light { return s.lights }

// Update propagates transform changes to world space.
func (s *Scene) Update() { s.graph.Update() }

// ForEachDrawable implements engine.Drawer.
// Nodes are visited ancestors first.
func (s *Scene) ForEachDrawable(f func(world *linear.M4, mesh *engine.Mesh)) {
	s.graph.ForEach(func(n node.Node) {
		if e := s.graph.Get(n).(*entry); e.mesh != nil {
			f(s.graph.World(n), e.mesh)
		}
	})
}
