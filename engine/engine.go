// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements the object model of the renderer:
// geometry, materials, meshes, lights and cameras, plus a
// software renderer that draws into an offscreen canvas.
package engine

const (
	dflClearColor = 0x000000
	dflSpecular   = 0x111111
	dflShininess  = 30
)

// Config is used to configure a renderer.
type Config struct {
	// Color used to clear the target before drawing,
	// as 0xRRGGBB.
	//
	// Default is 0x000000.
	ClearColor uint32

	// Disable culling of back-facing triangles.
	//
	// Default is false.
	DoubleSided bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ClearColor:  dflClearColor,
		DoubleSided: false,
	}
}

// rgb converts 0xRRGGBB into normalized components.
func rgb(c uint32) [3]float32 {
	return [3]float32{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}
