// This file is part of shaderloop.
//
// shaderloop is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// shaderloop is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with shaderloop.  If not, see <https://www.gnu.org/licenses/>.

package headless

import (
	"time"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
)

// DefaultStep is the simulated time between display refreshes.
const DefaultStep = time.Second / 60

// Canvas is the software implementation of gpu.Host. Frames are only run when
// Tick() is called.
type Canvas struct {
	width  int
	height int
	opts   Options

	ctx    *Context
	events gpu.Events

	// the APIs requested with Acquire in the order they were requested
	requested []gpu.API
	attr      gpu.Attributes

	pending func(time.Duration)
	now     time.Duration

	// simulated time between frames. defaults to DefaultStep
	Step time.Duration
}

// NewCanvas is the preferred method of initialisation for the Canvas type.
func NewCanvas(width, height int, opts Options) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		opts:   opts,
		Step:   DefaultStep,
	}
}

// Size implements the gpu.Host interface.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Acquire implements the gpu.Host interface.
func (c *Canvas) Acquire(api gpu.API, attr gpu.Attributes) (gpu.Context, error) {
	c.requested = append(c.requested, api)
	c.attr = attr

	if c.opts.Unavailable {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, "canvas has no contexts")
	}
	if api == gpu.Modern && !c.opts.Modern {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, "canvas does not support modern contexts")
	}

	c.ctx = newContext(api, c.opts, c.width, c.height)
	logger.Logf(logger.Allow, "headless", "%s context (%dx%d)", api, c.width, c.height)

	return c.ctx, nil
}

// Context returns the most recently acquired context. Returns nil if no
// context has been acquired.
func (c *Canvas) Context() *Context {
	return c.ctx
}

// Requested returns the APIs that have been requested with Acquire(), in
// order.
func (c *Canvas) Requested() []gpu.API {
	return c.requested
}

// Attributes returns the attributes of the most recent call to Acquire().
func (c *Canvas) Attributes() gpu.Attributes {
	return c.attr
}

// RequestFrame implements the gpu.Host interface.
func (c *Canvas) RequestFrame(f func(now time.Duration)) {
	c.pending = f
}

// Subscribe implements the gpu.Host interface.
func (c *Canvas) Subscribe(ev gpu.Events) {
	c.events = ev
}

// Pending returns true if a frame has been requested and not yet run.
func (c *Canvas) Pending() bool {
	return c.pending != nil
}

// Tick advances simulated time by Step and runs the pending frame. Returns
// false if there was no pending frame.
func (c *Canvas) Tick() bool {
	if c.pending == nil {
		return false
	}
	c.now += c.Step
	f := c.pending
	c.pending = nil
	f(c.now)
	return true
}

// Run calls Tick() until the number of frames have been run or there is no
// pending frame. Returns the number of frames that were run.
func (c *Canvas) Run(frames int) int {
	var n int
	for n < frames && c.Tick() {
		n++
	}
	return n
}

// Resize the canvas. The visible surface is reallocated and the subscriber
// is notified.
func (c *Canvas) Resize(width, height int) {
	c.width = width
	c.height = height
	if c.ctx != nil {
		c.ctx.resizeSurface(width, height)
	}
	if c.events != nil {
		c.events.Resized(width, height)
	}
}

// MovePointer notifies the subscriber of pointer movement.
func (c *Canvas) MovePointer(x, y float32) {
	if c.events != nil {
		c.events.PointerMoved(x, y)
	}
}

// Orient notifies the subscriber of a change in device orientation.
func (c *Canvas) Orient(alpha, beta, gamma float32) {
	if c.events != nil {
		c.events.Oriented(alpha, beta, gamma)
	}
}
