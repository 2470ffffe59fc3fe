// Package appctx consolidates the process-wide ambient state of the desktop
// core into one explicitly owned value: the pending deep-link URL, the
// captured UI execution context, and the main window handle. The context is
// constructed once at startup and passed by reference to every collaborator;
// there are no hidden globals to mutate.
package appctx

import (
	"sync"

	"tamshai-ai-desktop/dispatch"
)

type Context struct {
	mu         sync.Mutex
	initialURL string
	queue      dispatch.Executor
	window     uintptr
}

func New() *Context {
	return &Context{}
}

// SetInitialURL stores the deep-link URL that launched this process. Written
// once at primary startup from the activation extractor.
func (c *Context) SetInitialURL(url string) {
	c.mu.Lock()
	c.initialURL = url
	c.mu.Unlock()
}

// InitialURL returns the pending launch URL, or "" when none is set.
//
// Reading does NOT consume: the same value is returned on every poll until
// ClearInitialURL is called. The UI layer polls, uses the value, then clears
// it explicitly; this manual-consume contract is deliberate and relied upon.
func (c *Context) InitialURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialURL
}

// ClearInitialURL is the explicit consume step of the poll-then-clear
// contract.
func (c *Context) ClearInitialURL() {
	c.mu.Lock()
	c.initialURL = ""
	c.mu.Unlock()
}

// CaptureQueue records the UI execution context handle. Captured once at
// primary startup; before capture every dispatch resolves as unavailable.
func (c *Context) CaptureQueue(q dispatch.Executor) {
	c.mu.Lock()
	c.queue = q
	c.mu.Unlock()
}

func (c *Context) Queue() dispatch.Executor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue
}

// SetWindow records the main window handle used for foreground activation.
func (c *Context) SetWindow(h uintptr) {
	c.mu.Lock()
	c.window = h
	c.mu.Unlock()
}

func (c *Context) Window() uintptr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}
