// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package config loads the demo configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const cfgPrefix = "config: "

func newCfgErr(reason string) error { return errors.New(cfgPrefix + reason) }

// Window configures the host window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Loop configures frame delivery.
type Loop struct {
	// Presentation opportunities per second.
	// Zero runs unpaced.
	FPS int `toml:"fps"`
	// Number of frames to render before exiting.
	// Zero runs until interrupted.
	Frames int `toml:"frames"`
}

// Output configures PNG snapshots.
type Output struct {
	// Path of the snapshot file. It may contain one %d
	// verb, which is replaced by the frame number.
	// Empty disables snapshots.
	Path string `toml:"path"`
	// Write a snapshot every Every frames.
	// Zero writes only the last frame.
	Every int `toml:"every"`
}

// Animation configures orbit rates in radians per second.
// Zero rates leave the scene static.
type Animation struct {
	EarthOrbitRate float32 `toml:"earth_orbit_rate"`
	MoonOrbitRate  float32 `toml:"moon_orbit_rate"`
}

// Log configures logging.
type Log struct {
	// One of debug, info, warn or error.
	Level string `toml:"level"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	// Listen address. Empty disables the endpoint.
	Addr string `toml:"addr"`
}

// Config is the demo configuration.
type Config struct {
	Window    Window    `toml:"window"`
	Loop      Loop      `toml:"loop"`
	Output    Output    `toml:"output"`
	Animation Animation `toml:"animation"`
	Log       Log       `toml:"log"`
	Metrics   Metrics   `toml:"metrics"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Window: Window{Width: 800, Height: 600, Title: "solar"},
		Loop:   Loop{FPS: 60, Frames: 120},
		Output: Output{Path: "solar.png"},
		Log:    Log{Level: "info"},
	}
}

// Parse decodes data on top of the default
// configuration and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return Config{}, fmt.Errorf(cfgPrefix+"unknown keys:\n%s", serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf(cfgPrefix+"%d:%d: %v", row, col, derr)
		}
		return Config{}, fmt.Errorf(cfgPrefix+"%w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Validate checks that c is usable.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width < 0 || c.Window.Height < 0:
		return newCfgErr("negative window size")
	case c.Loop.FPS < 0:
		return newCfgErr("negative loop.fps")
	case c.Loop.Frames < 0:
		return newCfgErr("negative loop.frames")
	case c.Output.Every < 0:
		return newCfgErr("negative output.every")
	case strings.Count(c.Output.Path, "%") > 1:
		return newCfgErr("output.path has more than one verb")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the slog level named by l.
// Empty selects info.
func (l Log) SlogLevel() (slog.Level, error) {
	var lv slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, newCfgErr("invalid log.level " + l.Level)
	}
	return lv, nil
}

// Marshal encodes c as TOML.
func (c *Config) Marshal() ([]byte, error) { return toml.Marshal(c) }
