// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package solar

import (
	"fmt"
	"time"

	"github.com/gviegas/solar/control"
	"github.com/gviegas/solar/engine"
	"github.com/gviegas/solar/internal/logger"
	"github.com/gviegas/solar/linear"
	"github.com/gviegas/solar/node"
	"github.com/gviegas/solar/scene"
	"github.com/gviegas/solar/wsi"
)

// Scene layout.
const (
	sphereRadius  = 1
	sphereWSegs   = 12
	sphereHSegs   = 12
	earthOffset   = 10
	moonOffset    = 2
	sunScale      = 3
	moonScale     = 0.5
	sunEmissive   = 0xffff00
	earthColor    = 0x2233ff
	earthEmissive = 0x112244
	moonColor     = 0x088888
	moonEmissive  = 0x022222
)

// Camera and light.
const (
	cameraFOV      = 75
	cameraNear     = 0.1
	cameraFar      = 100
	cameraDistance = 50
	lightIntensity = 3
)

// lightPosition is where the distant light comes from.
// It shines towards the origin.
var lightPosition = linear.V3{-1, 2, 4}

// Composer builds the solar system scene and drives its
// rendering.
// It must only be used from the goroutine that delivers
// window events and frames.
type Composer struct {
	win   wsi.Window
	sched wsi.FrameScheduler
	opts  Options

	rend  engine.Renderer
	scn   *scene.Scene
	cam   *engine.Camera
	orbit *control.Orbit

	// Pivots.
	root, earthOrbit, moonOrbit node.Node
	// Mesh nodes.
	sun, earth, moon node.Node

	frames  int
	started bool
}

// New creates a Composer that draws into win and
// schedules frames through sched.
// It creates the renderer, then builds the scene, the
// camera and the light. If win also delivers pointer
// events, orbit navigation is attached to it.
// opts may be nil, in which case DefaultOptions is used.
//
// Failure to create the renderer is reported as an error
// that wraps ErrInitialization.
func New(win wsi.Window, sched wsi.FrameScheduler, opts *Options) (*Composer, error) {
	if win == nil || sched == nil {
		return nil, fmt.Errorf("%w: nil window or scheduler", ErrInitialization)
	}
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	c := &Composer{win: win, sched: sched, opts: *opts}
	newRend := c.opts.NewRenderer
	if newRend == nil {
		newRend = newOffscreen
	}
	// The surface must exist before the window is laid
	// out; Resize fixes its size later.
	rend, err := newRend(max(1, win.Width()), max(1, win.Height()), &c.opts.Renderer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	if rend == nil {
		return nil, fmt.Errorf("%w: nil renderer", ErrInitialization)
	}
	c.rend = rend

	if err := c.BuildScene(); err != nil {
		return nil, err
	}
	if err := c.BuildCamera(win.Width(), win.Height()); err != nil {
		return nil, err
	}
	c.BuildLight()
	if src, ok := win.(wsi.PointerSource); ok {
		c.AttachNavigationControls(c.cam, src)
	}
	logger.Get().Info("solar: composer created", "nodes", c.scn.Len(), "meshes", c.scn.Meshes())
	return c, nil
}

// BuildScene creates the node hierarchy:
//
//	root
//	├── sun (mesh)
//	└── earth orbit (+10 on X)
//	    ├── earth (mesh)
//	    └── moon orbit (+2 on X)
//	        └── moon (mesh)
//
// The three meshes share one sphere geometry.
// It replaces any previous scene, including its lights.
func (c *Composer) BuildScene() error {
	sphere, err := engine.NewSphere(sphereRadius, sphereWSegs, sphereHSegs)
	if err != nil {
		return err
	}
	sunMat, err := engine.NewPhong(&engine.Phong{Emissive: sunEmissive})
	if err != nil {
		return err
	}
	earthMat, err := engine.NewPhong(&engine.Phong{
		Color:       earthColor,
		Emissive:    earthEmissive,
		FlatShading: true,
	})
	if err != nil {
		return err
	}
	moonMat, err := engine.NewPhong(&engine.Phong{
		Color:       moonColor,
		Emissive:    moonEmissive,
		FlatShading: true,
	})
	if err != nil {
		return err
	}
	var meshes [3]*engine.Mesh
	for i, m := range [3]*engine.Material{sunMat, earthMat, moonMat} {
		if meshes[i], err = engine.NewMesh(sphere, m); err != nil {
			return err
		}
	}

	s := scene.New()
	c.root = s.Insert(nil, node.Nil)

	t := node.NewTransform()
	t.SetScale(sunScale, sunScale, sunScale)
	c.sun = s.Insert(t, c.root)
	s.Attach(c.sun, meshes[0])

	t = node.NewTransform()
	t.SetPosition(earthOffset, 0, 0)
	c.earthOrbit = s.Insert(t, c.root)

	c.earth = s.Insert(nil, c.earthOrbit)
	s.Attach(c.earth, meshes[1])

	t = node.NewTransform()
	t.SetPosition(moonOffset, 0, 0)
	c.moonOrbit = s.Insert(t, c.earthOrbit)

	t = node.NewTransform()
	t.SetScale(moonScale, moonScale, moonScale)
	c.moon = s.Insert(t, c.moonOrbit)
	s.Attach(c.moon, meshes[2])

	s.Update()
	c.scn = s
	return nil
}

// BuildCamera creates the perspective camera for a
// viewport of the given size. The camera sits on +Z at
// a fixed distance, looking at the origin.
// A degenerate size selects engine.DefaultAspect.
func (c *Composer) BuildCamera(width, height int) error {
	aspect := float32(engine.DefaultAspect)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	} else {
		c.degenerate(width, height)
	}
	cam, err := engine.NewPerspective(cameraFOV, aspect, cameraNear, cameraFar)
	if err != nil {
		return err
	}
	cam.SetPosition(&linear.V3{0, 0, cameraDistance})
	cam.LookAt(&linear.V3{})
	c.cam = cam
	if c.orbit != nil {
		src := c.orbitSource()
		c.orbit.Detach()
		c.orbit = nil
		if src != nil {
			c.AttachNavigationControls(cam, src)
		}
	}
	return nil
}

func (c *Composer) orbitSource() wsi.PointerSource {
	src, _ := c.win.(wsi.PointerSource)
	return src
}

// BuildLight adds the distant light to the scene.
// It shines from lightPosition towards the origin and
// casts no shadows.
func (c *Composer) BuildLight() {
	var dir linear.V3
	dir.Scale(-1, &lightPosition)
	l := (&engine.DistantLight{
		Direction: dir,
		Intensity: lightIntensity,
		R:         1,
		G:         1,
		B:         1,
	}).Light()
	c.scn.AddLight(l)
}

// AttachNavigationControls lets pointer input from surface
// orbit and zoom cam around its target.
// It replaces any controller attached before.
func (c *Composer) AttachNavigationControls(cam *engine.Camera, surface wsi.PointerSource) *control.Orbit {
	if c.orbit != nil {
		c.orbit.Detach()
	}
	c.orbit = control.NewOrbit(cam, surface)
	return c.orbit
}

// Start registers c as the window handler, resizes to the
// current window size and requests the first frame.
// Calling Start more than once has no effect.
func (c *Composer) Start() {
	if c.started {
		return
	}
	c.started = true
	c.win.SetWindowHandler(c)
	c.Resize(c.win.Width(), c.win.Height())
	c.sched.RequestFrame(c.RenderFrame)
}

// Resize updates the camera aspect ratio and the size of
// the output surface.
// A degenerate size is ignored: the previous aspect ratio
// and surface size are retained.
func (c *Composer) Resize(width, height int) {
	if !c.cam.SetViewport(width, height) {
		c.degenerate(width, height)
		if o := c.opts.Observer; o != nil {
			o.Resized(width, height, false)
		}
		return
	}
	if err := c.rend.SetSize(width, height); err != nil {
		logger.Get().Error("solar: resizing output surface", "width", width, "height", height, "err", err)
	}
	logger.Get().Debug("solar: resize", "width", width, "height", height, "aspect", c.cam.Aspect())
	if o := c.opts.Observer; o != nil {
		o.Resized(width, height, true)
	}
}

func (c *Composer) degenerate(width, height int) {
	logger.Get().Warn("solar: ignoring viewport size", "width", width, "height", height, "err", ErrDegenerateViewport)
}

// WindowResize implements wsi.WindowHandler.
func (c *Composer) WindowResize(_ wsi.Window, newWidth, newHeight int) { c.Resize(newWidth, newHeight) }

// WindowClose implements wsi.WindowHandler.
func (c *Composer) WindowClose(wsi.Window) {
	logger.Get().Info("solar: window closed", "frames", c.frames)
}

// RenderFrame draws the scene through the camera, calls
// Update and requests the next frame.
// elapsed is the time since the scheduler started.
func (c *Composer) RenderFrame(elapsed time.Duration) {
	start := time.Now()
	c.scn.Update()
	if err := c.rend.Render(c.scn, c.cam); err != nil {
		logger.Get().Error("solar: render", "frame", c.frames, "err", err)
	}
	c.Update(elapsed)
	c.frames++
	if o := c.opts.Observer; o != nil {
		o.FrameRendered(time.Since(start))
	}
	c.sched.RequestFrame(c.RenderFrame)
}

// Update advances the animation to elapsed and returns it
// in seconds.
// Pivots turn only when orbit rates were configured.
func (c *Composer) Update(elapsed time.Duration) float32 {
	secs := float32(elapsed.Seconds())
	up := linear.V3{0, 1, 0}
	if r := c.opts.EarthOrbitRate; r != 0 {
		c.scn.Transform(c.root).SetAxisAngle(secs*r, &up)
	}
	if r := c.opts.MoonOrbitRate; r != 0 {
		c.scn.Transform(c.earthOrbit).SetAxisAngle(secs*r, &up)
	}
	return secs
}

// Scene returns the scene.
func (c *Composer) Scene() *scene.Scene { return c.scn }

// Camera returns the camera.
func (c *Composer) Camera() *engine.Camera { return c.cam }

// Renderer returns the renderer.
func (c *Composer) Renderer() engine.Renderer { return c.rend }

// Controls returns the navigation controller, or nil.
func (c *Composer) Controls() *control.Orbit { return c.orbit }

// Pivots returns the solar system root and the earth and
// moon orbit pivots.
func (c *Composer) Pivots() (root, earthOrbit, moonOrbit node.Node) {
	return c.root, c.earthOrbit, c.moonOrbit
}

// Bodies returns the sun, earth and moon mesh nodes.
func (c *Composer) Bodies() (sun, earth, moon node.Node) {
	return c.sun, c.earth, c.moon
}

// Frames returns the number of frames rendered.
func (c *Composer) Frames() int { return c.frames }

// SetObserver sets the observer of c.
// A nil o removes it.
func (c *Composer) SetObserver(o Observer) { c.opts.Observer = o }
