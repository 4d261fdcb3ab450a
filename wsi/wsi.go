// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package wsi provides window system integration (WSI)
// for the renderer.
// It defines the signals a host environment delivers
// (window resizes, pointer input and presentation
// opportunities) and a headless implementation that
// delivers them deterministically.
package wsi

import (
	"time"
)

// Window is the interface that defines a drawable window.
// The purpose of a window is to provide a surface into
// which a renderer can draw.
type Window interface {
	// Resize requests that the window be resized.
	// The new size takes effect when the host reports
	// it through WindowHandler.WindowResize.
	Resize(width, height int) error

	// SetTitle sets the window's title.
	SetTitle(title string) error

	// Close closes the window.
	Close()

	// Width returns the window's width.
	Width() int

	// Height returns the window's height.
	Height() int

	// Title returns the window's title.
	Title() string

	// SetWindowHandler sets the handler of window
	// events. A nil wh discards them.
	SetWindowHandler(wh WindowHandler)
}

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
	BtnSide
	BtnForward
	BtnBackward
)

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowClose is called when a window is closed.
	WindowClose(win Window)

	// WindowResize is called when a window is resized.
	WindowResize(win Window, newWidth, newHeight int)
}

// PointerHandler is the interface that defines the methods
// for handling pointer events.
type PointerHandler interface {
	// PointerIn is called when the pointer enters a window.
	PointerIn(win Window, x, y int)

	// PointerOut is called when the pointer leaves a window.
	PointerOut(win Window)

	// PointerMotion is called when the pointer changes position.
	PointerMotion(newX, newY int)

	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y int)

	// PointerScroll is called when the scroll wheel moves.
	// Positive dy scrolls down (away from the user).
	PointerScroll(dx, dy float32)
}

// PointerSource is the interface of surfaces that deliver
// pointer events.
type PointerSource interface {
	// SetPointerHandler sets the handler of pointer
	// events. A nil ph discards them.
	SetPointerHandler(ph PointerHandler)
}

// FrameScheduler is the interface that wraps the
// RequestFrame method.
//
// RequestFrame schedules f to be called once, at the next
// presentation opportunity, with the time elapsed since
// the scheduler started. Callbacks requested while frames
// are being delivered wait for the next opportunity.
type FrameScheduler interface {
	RequestFrame(f func(elapsed time.Duration))
}
