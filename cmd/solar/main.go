// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Solar renders the solar system scene without a display
// and writes the frames as PNG files.
//
// Usage:
//
//	solar [flags]
//
// Flags override the values read from the --config file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/gviegas/solar"
	"github.com/gviegas/solar/config"
	"github.com/gviegas/solar/engine"
	"github.com/gviegas/solar/metrics"
	"github.com/gviegas/solar/wsi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "solar:", err)
		os.Exit(1)
	}
}

// flags parses args on top of the configuration file.
func flags(args []string, stderr io.Writer) (config.Config, error) {
	fs := pflag.NewFlagSet("solar", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.StringP("config", "c", "", "TOML configuration file")
	width := fs.Int("width", 0, "window width")
	height := fs.Int("height", 0, "window height")
	frames := fs.IntP("frames", "n", 0, "frames to render (0 runs until interrupted)")
	fps := fs.Int("fps", 0, "frames per second (0 is unpaced)")
	out := fs.StringP("out", "o", "", "PNG output path, may contain one %d for the frame number")
	every := fs.Int("every", 0, "write a PNG every this many frames (0 writes only the last)")
	addr := fs.String("metrics", "", "serve Prometheus metrics on this address")
	level := fs.String("log-level", "", "log level (debug, info, warn, error)")
	earth := fs.Float32("earth-rate", 0, "earth orbit rate in radians per second")
	moon := fs.Float32("moon-rate", 0, "moon orbit rate in radians per second")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	c := config.Default()
	if *path != "" {
		var err error
		if c, err = config.Load(*path); err != nil {
			return config.Config{}, err
		}
	}
	set := func(name string) bool { return fs.Changed(name) }
	if set("width") {
		c.Window.Width = *width
	}
	if set("height") {
		c.Window.Height = *height
	}
	if set("frames") {
		c.Loop.Frames = *frames
	}
	if set("fps") {
		c.Loop.FPS = *fps
	}
	if set("out") {
		c.Output.Path = *out
	}
	if set("every") {
		c.Output.Every = *every
	}
	if set("metrics") {
		c.Metrics.Addr = *addr
	}
	if set("log-level") {
		c.Log.Level = *level
	}
	if set("earth-rate") {
		c.Animation.EarthOrbitRate = *earth
	}
	if set("moon-rate") {
		c.Animation.MoonOrbitRate = *moon
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}
	return c, nil
}

// recorder forwards notifications to the metrics collector
// and writes snapshots as frames complete.
type recorder struct {
	col    *metrics.Collector
	win    *wsi.Headless
	rend   *engine.Offscreen
	cfg    *config.Config
	frames int
	saved  int
	err    error
}

func (r *recorder) Resized(width, height int, applied bool) { r.col.Resized(width, height, applied) }

func (r *recorder) FrameRendered(d time.Duration) {
	r.col.FrameRendered(d)
	r.frames++
	last := r.cfg.Loop.Frames > 0 && r.frames >= r.cfg.Loop.Frames
	if every := r.cfg.Output.Every; (every > 0 && r.frames%every == 0) || (last && every == 0) {
		r.save()
	}
	if last || r.err != nil {
		r.win.Close()
	}
}

func (r *recorder) save() {
	if r.cfg.Output.Path == "" {
		return
	}
	path := r.cfg.Output.Path
	if strings.Contains(path, "%") {
		path = fmt.Sprintf(path, r.frames)
	}
	if err := r.rend.SavePNG(path); err != nil {
		r.err = err
		return
	}
	r.saved++
	solar.Logger().Info("frame saved", "frame", r.frames, "path", path)
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := flags(args, stderr)
	if err != nil {
		return err
	}
	level, _ := cfg.Log.SlogLevel()
	solar.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer solar.SetLogger(nil)

	win, err := wsi.NewHeadless(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	col := metrics.New()
	rec := &recorder{col: col, win: win, cfg: &cfg}
	c, err := solar.New(win, win, &solar.Options{
		Renderer:       engine.DefaultConfig(),
		EarthOrbitRate: cfg.Animation.EarthOrbitRate,
		MoonOrbitRate:  cfg.Animation.MoonOrbitRate,
		Observer:       rec,
	})
	if err != nil {
		return err
	}
	rend, ok := c.Renderer().(*engine.Offscreen)
	if !ok {
		return errors.New("unexpected renderer type")
	}
	defer rend.Close()
	rec.rend = rend

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	if cfg.Metrics.Addr != "" {
		go func() { errc <- col.Serve(ctx, cfg.Metrics.Addr) }()
	} else {
		errc <- nil
	}

	c.Start()
	err = win.Run(ctx, cfg.Loop.FPS)
	if errors.Is(err, context.Canceled) {
		// Interrupted: keep what was rendered so far.
		err = nil
		if cfg.Output.Every == 0 && rec.frames > 0 {
			rec.save()
		}
	}
	cancel()
	if merr := <-errc; err == nil {
		err = merr
	}
	if err == nil {
		err = rec.err
	}
	solar.Logger().Info("done", "frames", c.Frames(), "saved", rec.saved)
	return err
}
