// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package solar composes a small solar system scene: a sun,
// an earth orbiting it and a moon orbiting the earth, seen
// through a perspective camera and lit by a distant light.
//
// A Composer owns the scene, the camera and the renderer.
// It keeps the camera consistent with the window size and
// drives rendering one frame at a time through a
// wsi.FrameScheduler.
package solar

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/gviegas/solar/engine"
	"github.com/gviegas/solar/internal/logger"
)

var (
	// ErrInitialization means that the renderer or the
	// output surface could not be created.
	ErrInitialization = errors.New("solar: initialization failed")

	// ErrDegenerateViewport means that a viewport with a
	// non-positive dimension was given. It is never
	// returned; the previous aspect ratio is retained
	// (or DefaultAspect is used) and the fault is logged
	// and reported to the Observer instead.
	ErrDegenerateViewport = errors.New("solar: degenerate viewport")
)

// SetLogger sets the logger used by this module and by
// the gg rasterizer.
// A nil l disables logging, which is the default.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
	gg.SetLogger(l)
}

// Logger returns the logger used by this module.
func Logger() *slog.Logger { return logger.Get() }

// Observer is notified of frame and resize activity.
// metrics.Collector implements it.
type Observer interface {
	// FrameRendered is called after every frame with the
	// time taken to render and update it.
	FrameRendered(d time.Duration)

	// Resized is called for every resize request.
	// applied is false when the size was degenerate and
	// thus ignored.
	Resized(width, height int, applied bool)
}

// Options configures a Composer.
type Options struct {
	// Renderer configuration used by the default
	// renderer.
	Renderer engine.Config

	// NewRenderer creates the renderer for the given
	// initial size. Nil selects engine.NewOffscreen.
	NewRenderer func(width, height int, cfg *engine.Config) (engine.Renderer, error)

	// Orbit rates in radians per second around +Y.
	// EarthOrbitRate turns the solar system pivot, which
	// carries the earth around the sun. MoonOrbitRate
	// turns the earth orbit pivot, which carries the moon
	// around the earth. Zero rates keep the scene static.
	EarthOrbitRate float32
	MoonOrbitRate  float32

	// Observer receives frame and resize notifications.
	// It may be nil.
	Observer Observer
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Renderer: engine.DefaultConfig()}
}

func newOffscreen(width, height int, cfg *engine.Config) (engine.Renderer, error) {
	return engine.NewOffscreen(width, height, cfg)
}
