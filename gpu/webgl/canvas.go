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

//go:build js && wasm

// Package webgl implements gpu.Host with an HTML canvas and gpu.Context with
// the browser's WebGL API. The Modern API is WebGL2 and the Legacy API is
// WebGL1.
//
// The package is only available when compiling for js/wasm.
package webgl

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
)

// Canvas is an HTML canvas element that implements the gpu.Host interface.
type Canvas struct {
	canvas js.Value
	ctx    *Context

	events gpu.Events

	// functions created with js.FuncOf() that must be released
	funcs   []js.Func
	removes []listener

	// callback for requestAnimationFrame(). the pending function is called
	// by the callback
	frame   js.Func
	pending func(now time.Duration)
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// NewCanvas is the preferred method of initialisation for the Canvas type.
// The id is of an existing canvas element. If there is no such element a
// new canvas is created and appended to the document body.
func NewCanvas(id string) *Canvas {
	doc := js.Global().Get("document")

	canvas := doc.Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		canvas = doc.Call("createElement", "canvas")
		canvas.Set("id", id)
		doc.Get("body").Call("appendChild", canvas)
	}

	c := &Canvas{
		canvas: canvas,
	}
	c.fit()

	c.frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		f := c.pending
		c.pending = nil
		if f == nil {
			return nil
		}
		var ms float64
		if len(args) > 0 {
			ms = args[0].Float()
		}
		f(time.Duration(ms * float64(time.Millisecond)))
		return nil
	})
	c.funcs = append(c.funcs, c.frame)

	win := js.Global().Get("window")

	c.addEventListener(win, "resize", func(e js.Value) {
		c.fit()
		if c.events != nil {
			c.events.Resized(c.Size())
		}
	})

	c.addEventListener(canvas, "pointermove", func(e js.Value) {
		if c.events == nil {
			return
		}
		rect := canvas.Call("getBoundingClientRect")
		sx, sy := 1.0, 1.0
		if w := rect.Get("width").Float(); w != 0 {
			sx = float64(canvas.Get("width").Int()) / w
		}
		if h := rect.Get("height").Float(); h != 0 {
			sy = float64(canvas.Get("height").Int()) / h
		}
		x := (e.Get("clientX").Float() - rect.Get("left").Float()) * sx
		y := (e.Get("clientY").Float() - rect.Get("top").Float()) * sy
		c.events.PointerMoved(float32(x), float32(y))
	})

	c.addEventListener(win, "deviceorientation", func(e js.Value) {
		if c.events == nil {
			return
		}
		c.events.Oriented(float32(e.Get("alpha").Float()),
			float32(e.Get("beta").Float()),
			float32(e.Get("gamma").Float()))
	})

	return c
}

func (c *Canvas) addEventListener(target js.Value, event string, f func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		f(args[0])
		return nil
	})
	target.Call("addEventListener", event, fn)
	c.funcs = append(c.funcs, fn)
	c.removes = append(c.removes, listener{target: target, event: event, fn: fn})
}

// fit sets the size of the canvas drawing buffer to the size the canvas is
// displayed at, in device pixels.
func (c *Canvas) fit() {
	ratio := js.Global().Get("window").Get("devicePixelRatio").Float()
	if ratio <= 0 {
		ratio = 1
	}
	w := c.canvas.Get("clientWidth").Float() * ratio
	h := c.canvas.Get("clientHeight").Float() * ratio
	if w < 1 || h < 1 {
		return
	}
	c.canvas.Set("width", int(w))
	c.canvas.Set("height", int(h))
}

// Size implements the gpu.Host interface.
func (c *Canvas) Size() (int, int) {
	return c.canvas.Get("width").Int(), c.canvas.Get("height").Int()
}

// Acquire implements the gpu.Host interface.
func (c *Canvas) Acquire(api gpu.API, attr gpu.Attributes) (gpu.Context, error) {
	if c.ctx != nil {
		if c.ctx.api == api {
			return c.ctx, nil
		}
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Sprintf("canvas already has a %v context", c.ctx.api))
	}

	opts := map[string]any{
		"alpha":                 attr.Alpha,
		"depth":                 attr.Depth,
		"stencil":               attr.Stencil,
		"antialias":             attr.Antialias,
		"preserveDrawingBuffer": true,
	}

	var gl js.Value
	switch api {
	case gpu.Modern:
		gl = c.canvas.Call("getContext", "webgl2", opts)
	case gpu.Legacy:
		gl = c.canvas.Call("getContext", "webgl", opts)
		if gl.IsNull() || gl.IsUndefined() {
			gl = c.canvas.Call("getContext", "experimental-webgl", opts)
		}
	default:
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, "unknown API")
	}

	if gl.IsNull() || gl.IsUndefined() {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, "getContext() returned null")
	}

	c.ctx = newContext(api, gl)
	logger.Logf(logger.Allow, "webgl", "version: %s", gl.Call("getParameter", glVersion).String())
	logger.Logf(logger.Allow, "webgl", "renderer: %s", gl.Call("getParameter", glRenderer).String())

	return c.ctx, nil
}

// RequestFrame implements the gpu.Host interface.
func (c *Canvas) RequestFrame(f func(now time.Duration)) {
	c.pending = f
	js.Global().Call("requestAnimationFrame", c.frame)
}

// Subscribe implements the gpu.Host interface.
func (c *Canvas) Subscribe(ev gpu.Events) {
	c.events = ev
}

// Destroy removes the event listeners and releases the callbacks. Must not
// be called from inside a frame.
func (c *Canvas) Destroy() {
	c.pending = nil
	for _, r := range c.removes {
		r.target.Call("removeEventListener", r.event, r.fn)
	}
	c.removes = nil
	for _, f := range c.funcs {
		f.Release()
	}
	c.funcs = nil
}
