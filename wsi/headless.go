// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gviegas/solar/internal/logger"
)

var (
	errClosed   = errors.New("wsi: window is closed")
	errNegative = errors.New("wsi: negative window size")
)

type evKind int

const (
	evResize evKind = iota
	evClose
	evPointerIn
	evPointerOut
	evMotion
	evButton
	evScroll
)

type event struct {
	kind    evKind
	x, y    int
	btn     Button
	pressed bool
	dx, dy  float32
}

// Headless is a Window without a display.
// Events are queued in the order they are produced and
// delivered by Dispatch. Frame callbacks are delivered by
// Step, or by Run at a fixed rate.
//
// Event and frame producers may run on any goroutine.
// Handlers and frame callbacks always run on the
// goroutine that calls Dispatch, Step or Run.
type Headless struct {
	mu     sync.Mutex
	events []event
	frames []func(time.Duration)

	width  int
	height int
	title  string
	closed bool
	wh     WindowHandler
	ph     PointerHandler
}

// NewHeadless creates a new headless window.
// Zero dimensions are valid and describe a window that
// is not yet laid out.
func NewHeadless(width, height int, title string) (*Headless, error) {
	if width < 0 || height < 0 {
		return nil, errNegative
	}
	logger.Get().Debug("wsi: headless window created", "width", width, "height", height)
	return &Headless{width: width, height: height, title: title}, nil
}

func (w *Headless) push(e event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	w.events = append(w.events, e)
	return nil
}

// Resize queues a resize event.
func (w *Headless) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return errNegative
	}
	return w.push(event{kind: evResize, x: width, y: height})
}

// SetTitle sets the window's title.
func (w *Headless) SetTitle(title string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	w.title = title
	return nil
}

// Close queues a close event.
// Once it is dispatched, no further events are accepted
// and Run returns.
func (w *Headless) Close() { w.push(event{kind: evClose}) }

// Width returns the window's width.
func (w *Headless) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

// Height returns the window's height.
func (w *Headless) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// Title returns the window's title.
func (w *Headless) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Closed returns whether a close event was dispatched.
func (w *Headless) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// SetWindowHandler sets the handler of window events.
func (w *Headless) SetWindowHandler(wh WindowHandler) {
	w.mu.Lock()
	w.wh = wh
	w.mu.Unlock()
}

// SetPointerHandler sets the handler of pointer events.
func (w *Headless) SetPointerHandler(ph PointerHandler) {
	w.mu.Lock()
	w.ph = ph
	w.mu.Unlock()
}

// PointerIn queues a pointer enter event.
func (w *Headless) PointerIn(x, y int) error {
	return w.push(event{kind: evPointerIn, x: x, y: y})
}

// PointerOut queues a pointer leave event.
func (w *Headless) PointerOut() error { return w.push(event{kind: evPointerOut}) }

// PointerMotion queues a pointer motion event.
func (w *Headless) PointerMotion(x, y int) error {
	return w.push(event{kind: evMotion, x: x, y: y})
}

// PointerButton queues a button press/release event.
func (w *Headless) PointerButton(btn Button, pressed bool, x, y int) error {
	return w.push(event{kind: evButton, btn: btn, pressed: pressed, x: x, y: y})
}

// PointerScroll queues a scroll event.
func (w *Headless) PointerScroll(dx, dy float32) error {
	return w.push(event{kind: evScroll, dx: dx, dy: dy})
}

// Dispatch delivers queued events in order.
// It returns the number of events delivered.
func (w *Headless) Dispatch() int {
	w.mu.Lock()
	evs := w.events
	w.events = nil
	w.mu.Unlock()

	for i, e := range evs {
		w.mu.Lock()
		wh, ph := w.wh, w.ph
		switch e.kind {
		case evResize:
			w.width, w.height = e.x, e.y
		case evClose:
			w.closed = true
			w.events = nil
		}
		w.mu.Unlock()

		switch e.kind {
		case evResize:
			logger.Get().Debug("wsi: resize", "width", e.x, "height", e.y)
			if wh != nil {
				wh.WindowResize(w, e.x, e.y)
			}
		case evClose:
			logger.Get().Debug("wsi: close")
			if wh != nil {
				wh.WindowClose(w)
			}
			return i + 1
		case evPointerIn:
			if ph != nil {
				ph.PointerIn(w, e.x, e.y)
			}
		case evPointerOut:
			if ph != nil {
				ph.PointerOut(w)
			}
		case evMotion:
			if ph != nil {
				ph.PointerMotion(e.x, e.y)
			}
		case evButton:
			if ph != nil {
				ph.PointerButton(e.btn, e.pressed, e.x, e.y)
			}
		case evScroll:
			if ph != nil {
				ph.PointerScroll(e.dx, e.dy)
			}
		}
	}
	return len(evs)
}

// RequestFrame implements FrameScheduler.
func (w *Headless) RequestFrame(f func(time.Duration)) {
	if f == nil {
		return
	}
	w.mu.Lock()
	w.frames = append(w.frames, f)
	w.mu.Unlock()
}

// Pending returns the number of frame callbacks waiting
// for the next Step.
func (w *Headless) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

// Step delivers a presentation opportunity at time t.
// It calls the frame callbacks that were pending when
// Step was called, in request order, and returns how
// many were called.
func (w *Headless) Step(t time.Duration) int {
	w.mu.Lock()
	fs := w.frames
	w.frames = nil
	w.mu.Unlock()
	for _, f := range fs {
		f(t)
	}
	return len(fs)
}

// Run delivers events and frames at fps presentation
// opportunities per second until ctx is done or the
// window is closed. A non-positive fps runs unpaced.
// It returns ctx.Err() if ctx ended the loop, or nil
// otherwise.
func (w *Headless) Run(ctx context.Context, fps int) error {
	lim := rate.NewLimiter(rate.Inf, 1)
	if fps > 0 {
		lim = rate.NewLimiter(rate.Limit(fps), 1)
	}
	start := time.Now()
	for {
		if err := lim.Wait(ctx); err != nil {
			// The wait would outlast the deadline.
			<-ctx.Done()
			return ctx.Err()
		}
		w.Dispatch()
		if w.Closed() {
			return nil
		}
		w.Step(time.Since(start))
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
