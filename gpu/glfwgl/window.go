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

// Package glfwgl implements gpu.Host with a GLFW window. It is an alternative
// to the sdlgl package for systems where SDL is not available. As with
// sdlgl, the contexts acquired from the window are provided by the opengl
// package.
//
// GLFW must be used from the main thread.
package glfwgl

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/opengl"
	"github.com/jetsetilly/shaderloop/logger"
)

func init() {
	runtime.LockOSThread()
}

// how long to wait for an event when there is no frame pending
const idleTimeout = 0.05

// Window is a GLFW window that implements the gpu.Host interface.
type Window struct {
	title  string
	width  int
	height int

	window *glfw.Window
	ctx    gpu.Context

	created time.Time
	pending func(now time.Duration)
	events  gpu.Events
}

// NewWindow is the preferred method of initialisation for the Window type.
// The window itself is not opened until a context is acquired.
func NewWindow(title string, width, height int) (*Window, error) {
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}
	logger.Logf(logger.Allow, "glfw", "version %s", glfw.GetVersionString())

	return &Window{
		title:   title,
		width:   width,
		height:  height,
		created: time.Now(),
	}, nil
}

// Size implements the gpu.Host interface.
func (win *Window) Size() (int, int) {
	if win.window == nil {
		return win.width, win.height
	}
	return win.window.GetFramebufferSize()
}

func boolToInt(b bool, n int) int {
	if b {
		return n
	}
	return 0
}

// Acquire implements the gpu.Host interface.
func (win *Window) Acquire(api gpu.API, attr gpu.Attributes) (gpu.Context, error) {
	if api != opengl.API {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Sprintf("built with the OpenGL %v binding", opengl.Version))
	}

	if win.ctx != nil {
		return win.ctx, nil
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, opengl.Version.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, opengl.Version.Minor)
	if opengl.Version.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.AlphaBits, boolToInt(attr.Alpha, 8))
	glfw.WindowHint(glfw.DepthBits, boolToInt(attr.Depth, 24))
	glfw.WindowHint(glfw.StencilBits, boolToInt(attr.Stencil, 8))
	glfw.WindowHint(glfw.Samples, boolToInt(attr.Antialias, 4))

	var err error
	win.window, err = glfw.CreateWindow(win.width, win.height, win.title, nil, nil)
	if err != nil {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Errorf("glfw: %w", err))
	}

	win.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	win.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if win.events != nil {
			win.events.Resized(width, height)
		}
	})

	win.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if win.events == nil {
			return
		}

		// cursor positions are in screen coordinates
		sx, sy := float64(1), float64(1)
		ww, wh := w.GetSize()
		fw, fh := w.GetFramebufferSize()
		if ww > 0 && wh > 0 {
			sx = float64(fw) / float64(ww)
			sy = float64(fh) / float64(wh)
		}
		win.events.PointerMoved(float32(x*sx), float32(y*sy))
	})

	win.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	win.ctx, err = opengl.NewContext()
	if err != nil {
		win.window.Destroy()
		win.window = nil
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, err)
	}

	return win.ctx, nil
}

// RequestFrame implements the gpu.Host interface. The function will be called
// by the next call to Service().
func (win *Window) RequestFrame(f func(now time.Duration)) {
	win.pending = f
}

// Subscribe implements the gpu.Host interface.
func (win *Window) Subscribe(ev gpu.Events) {
	win.events = ev
}

// Quit causes the next call to Service() to return false.
func (win *Window) Quit() {
	if win.window != nil {
		win.window.SetShouldClose(true)
	}
}

// Service handles pending events and then runs the pending frame, if there
// is one. Returns false when the window has been closed.
func (win *Window) Service() bool {
	if win.window == nil {
		return false
	}

	if win.pending == nil {
		glfw.WaitEventsTimeout(idleTimeout)
	} else {
		glfw.PollEvents()
	}

	if win.window.ShouldClose() {
		return false
	}

	if win.pending != nil {
		f := win.pending
		win.pending = nil
		f(time.Since(win.created))
		win.window.SwapBuffers()
	}

	return true
}

// Destroy closes the window and terminates GLFW.
func (win *Window) Destroy() {
	win.ctx = nil
	if win.window != nil {
		win.window.Destroy()
		win.window = nil
	}
	glfw.Terminate()
}
