// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/gviegas/solar/linear"
)

const rendPrefix = "renderer: "

func newRendErr(reason string) error { return errors.New(rendPrefix + reason) }

// Drawer is the interface that a renderer uses to
// traverse renderable content.
type Drawer interface {
	// ForEachDrawable calls f with the world transform
	// and the mesh of every renderable node.
	ForEachDrawable(f func(world *linear.M4, mesh *Mesh))

	// Lights returns the lights that affect drawables.
	Lights() []Light
}

// Renderer is the interface that wraps the rendering
// of drawables into an output surface.
type Renderer interface {
	// Render draws the content of d as seen by cam.
	Render(d Drawer, cam *Camera) error

	// SetSize resizes the output surface.
	// It fails if either dimension is not positive.
	SetSize(width, height int) error

	// Size returns the dimensions of the output surface.
	Size() (width, height int)
}
