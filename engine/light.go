// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/solar/linear"
)

// Light defines a light source.
// The zero value for Light is not valid; one must
// call DistantLight.Light to create an initialized
// Light.
type Light struct {
	dir       linear.V3
	intensity float32
	color     [3]float32
}

// SetDirection sets the direction of l.
// It normalizes d.
func (l *Light) SetDirection(d *linear.V3) { l.dir.Norm(d) }

// Direction returns the direction of l.
func (l *Light) Direction() linear.V3 { return l.dir }

// SetIntensity sets the intensity of l.
// Negative values are clamped to zero.
func (l *Light) SetIntensity(i float32) { l.intensity = max(0, i) }

// Intensity returns the intensity of l.
func (l *Light) Intensity() float32 { return l.intensity }

// SetColor sets the RGB color of l.
func (l *Light) SetColor(r, g, b float32) {
	l.color = [3]float32{
		max(0, min(r, 1)),
		max(0, min(g, 1)),
		max(0, min(b, 1)),
	}
}

// Color returns the RGB color of l.
func (l *Light) Color() (r, g, b float32) {
	return l.color[0], l.color[1], l.color[2]
}

// DistantLight is a directional light.
// The light is emitted in the given Direction.
// It behaves as if located infinitely far way,
// so it casts parallel rays and no shadows.
type DistantLight struct {
	Direction linear.V3
	Intensity float32
	R, G, B   float32
}

// Light creates the light source described by t.
// t.Direction need not be normalized, but it must
// not be the zero vector.
// t.R/G/B are clamped to the range [0, 1].
func (t *DistantLight) Light() (light Light) {
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	light.SetDirection(&t.Direction)
	return
}
