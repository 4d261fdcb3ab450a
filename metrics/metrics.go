// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package metrics exposes render loop statistics to
// Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gviegas/solar/internal/logger"
)

// Collector records frame and resize statistics.
// It uses its own registry, so several collectors may
// coexist in one process.
type Collector struct {
	reg           *prometheus.Registry
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	resizes       *prometheus.CounterVec
	viewport      *prometheus.GaugeVec
}

// New creates and registers the collectors.
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "solar_frames_total",
			Help: "Total number of frames rendered",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solar_frame_duration_seconds",
			Help:    "Time spent rendering and updating a frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		resizes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solar_resizes_total",
				Help: "Total number of resize requests",
			},
			[]string{"result"}, // applied or degenerate
		),
		viewport: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "solar_viewport_pixels",
				Help: "Size of the output surface",
			},
			[]string{"dim"},
		),
	}
	c.reg.MustRegister(c.frames, c.frameDuration, c.resizes, c.viewport)
	return c
}

// FrameRendered records one frame that took d.
func (c *Collector) FrameRendered(d time.Duration) {
	c.frames.Inc()
	c.frameDuration.Observe(d.Seconds())
}

// Resized records a resize request.
// applied is false for degenerate sizes that were
// ignored.
func (c *Collector) Resized(width, height int, applied bool) {
	if !applied {
		c.resizes.WithLabelValues("degenerate").Inc()
		return
	}
	c.resizes.WithLabelValues("applied").Inc()
	c.viewport.WithLabelValues("width").Set(float64(width))
	c.viewport.WithLabelValues("height").Set(float64(height))
}

// Registry returns the registry of c.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler returns an HTTP handler that serves the metrics
// of c.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Serve serves the metrics of c on addr under /metrics
// until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Get().Info("metrics: serving", "addr", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
