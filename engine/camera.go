// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/gviegas/solar/linear"
)

const camPrefix = "camera: "

func newCamErr(reason string) error { return errors.New(camPrefix + reason) }

// DefaultAspect is the aspect ratio used when no valid
// viewport is known.
const DefaultAspect = 1

// phiEps keeps orbiting away from the poles, where the
// up vector and the view direction would be parallel.
const phiEps = 1e-3

// Camera is a perspective camera.
// The aspect ratio is always the ratio of the last valid
// viewport given to SetViewport (or the initial value).
type Camera struct {
	fov    float32
	aspect float32
	near   float32
	far    float32

	pos    linear.V3
	target linear.V3
	up     linear.V3

	view     linear.M4
	proj     linear.M4
	viewDirt bool
	projDirt bool
}

// NewPerspective creates a new perspective camera.
// fov is the vertical field of view in degrees.
func NewPerspective(fov, aspect, near, far float32) (*Camera, error) {
	switch {
	case !(fov > 0 && fov < 180):
		return nil, newCamErr("fov out of range")
	case !(aspect > 0) || math32.IsInf(aspect, 1):
		return nil, newCamErr("invalid aspect")
	case !(near > 0):
		return nil, newCamErr("invalid near plane")
	case !(far > near) || math32.IsInf(far, 1):
		return nil, newCamErr("invalid far plane")
	}
	return &Camera{
		fov:      fov,
		aspect:   aspect,
		near:     near,
		far:      far,
		up:       linear.V3{0, 1, 0},
		viewDirt: true,
		projDirt: true,
	}, nil
}

// SetViewport updates the aspect ratio of c to
// width / height.
// If either dimension is not positive, it returns false
// and c is left unchanged.
func (c *Camera) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.aspect = float32(width) / float32(height)
	c.projDirt = true
	return true
}

// Aspect returns the aspect ratio of c.
func (c *Camera) Aspect() float32 { return c.aspect }

// FOV returns the vertical field of view of c in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// Near returns the distance to the near plane.
func (c *Camera) Near() float32 { return c.near }

// Far returns the distance to the far plane.
func (c *Camera) Far() float32 { return c.far }

// SetPosition sets the position of c in world space.
func (c *Camera) SetPosition(p *linear.V3) {
	c.pos = *p
	c.viewDirt = true
}

// Position returns the position of c in world space.
func (c *Camera) Position() linear.V3 { return c.pos }

// LookAt points c towards target.
// The target is kept across calls to Orbit and Zoom.
func (c *Camera) LookAt(target *linear.V3) {
	c.target = *target
	c.viewDirt = true
}

// Target returns the point c is looking at.
func (c *Camera) Target() linear.V3 { return c.target }

// Distance returns the distance from c to its target.
func (c *Camera) Distance() float32 {
	var d linear.V3
	d.Sub(&c.pos, &c.target)
	return d.Len()
}

// View returns the view matrix of c.
func (c *Camera) View() *linear.M4 {
	if c.viewDirt {
		c.view.LookAt(&c.pos, &c.target, &c.up)
		c.viewDirt = false
	}
	return &c.view
}

// Projection returns the projection matrix of c.
func (c *Camera) Projection() *linear.M4 {
	if c.projDirt {
		c.proj.Perspective(c.fov*math32.Pi/180, c.aspect, c.near, c.far)
		c.projDirt = false
	}
	return &c.proj
}

// spherical returns the offset from target to position
// in spherical coordinates around +Y.
func (c *Camera) spherical() (r, theta, phi float32) {
	var d linear.V3
	d.Sub(&c.pos, &c.target)
	r = d.Len()
	if r == 0 {
		return
	}
	theta = math32.Atan2(d[0], d[2])
	phi = math32.Acos(max(-1, min(d[1]/r, 1)))
	return
}

func (c *Camera) setSpherical(r, theta, phi float32) {
	phi = max(phiEps, min(phi, math32.Pi-phiEps))
	st, ct := math32.Sincos(theta)
	sp, cp := math32.Sincos(phi)
	c.pos = linear.V3{
		c.target[0] + r*sp*st,
		c.target[1] + r*cp,
		c.target[2] + r*sp*ct,
	}
	c.viewDirt = true
}

// Orbit rotates the position of c around its target.
// dTheta is the azimuthal change around +Y and dPhi the
// polar change, both in degrees. The polar angle is
// clamped short of the poles.
func (c *Camera) Orbit(dTheta, dPhi float32) {
	r, theta, phi := c.spherical()
	if r == 0 {
		return
	}
	const rad = math32.Pi / 180
	c.setSpherical(r, theta+dTheta*rad, phi+dPhi*rad)
}

// Zoom scales the distance from c to its target.
// scale must be greater than zero.
func (c *Camera) Zoom(scale float32) {
	if !(scale > 0) {
		return
	}
	r, theta, phi := c.spherical()
	if r == 0 {
		return
	}
	c.setSpherical(r*scale, theta, phi)
}
