// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package control implements camera navigation driven by
// pointer input.
package control

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/solar/engine"
	"github.com/gviegas/solar/internal/logger"
	"github.com/gviegas/solar/wsi"
)

// Default speeds.
const (
	DefaultRotateSpeed = 0.25
	DefaultZoomSpeed   = 0.05
)

// Orbit rotates a camera around its target while the left
// button is held and dollies it on scroll.
// It implements wsi.PointerHandler.
type Orbit struct {
	// Degrees of rotation per pixel of pointer motion.
	RotateSpeed float32
	// Fraction of the distance to the target moved per
	// unit of scroll.
	ZoomSpeed float32
	// Limits of the distance to the target.
	// Zero MaxDistance means no upper limit.
	MinDistance float32
	MaxDistance float32
	// Disables the controller when false.
	Enabled bool

	cam      *engine.Camera
	src      wsi.PointerSource
	dragging bool
	x, y     int
}

// NewOrbit creates an orbit controller for cam and
// registers it as the pointer handler of src.
func NewOrbit(cam *engine.Camera, src wsi.PointerSource) *Orbit {
	if cam == nil || src == nil {
		panic("control: nil argument in call to NewOrbit")
	}
	o := &Orbit{
		RotateSpeed: DefaultRotateSpeed,
		ZoomSpeed:   DefaultZoomSpeed,
		Enabled:     true,
		cam:         cam,
		src:         src,
	}
	src.SetPointerHandler(o)
	return o
}

// Camera returns the controlled camera.
func (o *Orbit) Camera() *engine.Camera { return o.cam }

// Detach unregisters o from its pointer source.
func (o *Orbit) Detach() {
	if o.src != nil {
		o.src.SetPointerHandler(nil)
		o.src = nil
	}
	o.dragging = false
}

// Dragging returns whether a rotation is in progress.
func (o *Orbit) Dragging() bool { return o.dragging }

// PointerIn implements wsi.PointerHandler.
func (o *Orbit) PointerIn(_ wsi.Window, x, y int) { o.x, o.y = x, y }

// PointerOut implements wsi.PointerHandler.
func (o *Orbit) PointerOut(wsi.Window) { o.dragging = false }

// PointerMotion implements wsi.PointerHandler.
func (o *Orbit) PointerMotion(newX, newY int) {
	dx, dy := newX-o.x, newY-o.y
	o.x, o.y = newX, newY
	if !o.Enabled || !o.dragging || dx == 0 && dy == 0 {
		return
	}
	// Dragging right or down moves the scene with the
	// pointer, so the camera goes the opposite way.
	o.cam.Orbit(-float32(dx)*o.RotateSpeed, -float32(dy)*o.RotateSpeed)
}

// PointerButton implements wsi.PointerHandler.
func (o *Orbit) PointerButton(btn wsi.Button, pressed bool, x, y int) {
	if btn != wsi.BtnLeft {
		return
	}
	o.x, o.y = x, y
	o.dragging = pressed && o.Enabled
}

// PointerScroll implements wsi.PointerHandler.
func (o *Orbit) PointerScroll(_, dy float32) {
	if !o.Enabled || dy == 0 {
		return
	}
	d := o.cam.Distance()
	if d == 0 {
		return
	}
	nd := d * math32.Pow(1+o.ZoomSpeed, dy)
	nd = max(nd, o.MinDistance)
	if o.MaxDistance > 0 {
		nd = min(nd, o.MaxDistance)
	}
	if nd <= 0 {
		logger.Get().Debug("control: zoom clamped at target")
		return
	}
	o.cam.Zoom(nd / d)
}
