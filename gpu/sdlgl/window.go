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

package sdlgl

import (
	"fmt"
	"runtime"
	"time"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/opengl"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// swap interval value expected by the sdl.GLSetSwapInterval() function
const syncWithVerticalRetrace = 1

// how long to wait for an event when there is no frame pending
const idleTimeout = 50

// Window is an SDL window that implements the gpu.Host interface.
type Window struct {
	title  string
	width  int
	height int

	window *sdl.Window
	glctx  sdl.GLContext
	ctx    gpu.Context

	created time.Time
	pending func(now time.Duration)
	events  gpu.Events

	quit bool
}

// NewWindow is the preferred method of initialisation for the Window type.
// The window itself is not opened until a context is acquired.
func NewWindow(title string, width, height int) (*Window, error) {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	return &Window{
		title:   title,
		width:   width,
		height:  height,
		created: time.Now(),
	}, nil
}

// Size implements the gpu.Host interface. The size is of the drawable area,
// which is larger than the window size on high DPI displays.
func (win *Window) Size() (int, int) {
	if win.window == nil {
		return win.width, win.height
	}
	w, h := win.window.GLGetDrawableSize()
	return int(w), int(h)
}

// Acquire implements the gpu.Host interface.
func (win *Window) Acquire(api gpu.API, attr gpu.Attributes) (gpu.Context, error) {
	if api != opengl.API {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Sprintf("built with the OpenGL %v binding", opengl.Version))
	}

	if win.ctx != nil {
		return win.ctx, nil
	}

	err := setVersion()
	if err != nil {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, err)
	}

	err = setAttributes(attr)
	if err != nil {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, err)
	}

	win.window, err = sdl.CreateWindow(win.title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(win.width), int32(win.height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Errorf("sdl: %w", err))
	}

	win.glctx, err = win.window.GLCreateContext()
	if err != nil {
		win.destroyWindow()
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Errorf("sdl: %w", err))
	}

	err = win.window.GLMakeCurrent(win.glctx)
	if err != nil {
		win.destroyWindow()
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, fmt.Errorf("sdl: %w", err))
	}

	err = sdl.GLSetSwapInterval(syncWithVerticalRetrace)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "GLSetSwapInterval(%d): %v", syncWithVerticalRetrace, err)
	}

	major, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION)
	minor, _ := sdl.GLGetAttribute(sdl.GL_CONTEXT_MINOR_VERSION)
	logger.Logf(logger.Allow, "sdl", "using GL version %d.%d", major, minor)

	win.ctx, err = opengl.NewContext()
	if err != nil {
		win.destroyWindow()
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, err)
	}

	return win.ctx, nil
}

// setVersion sets the SDL attributes for the version of OpenGL required by
// the compiled binding.
func setVersion() error {
	err := sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, opengl.Version.Major)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, opengl.Version.Minor)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	if opengl.Version.Core {
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
		err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
		if err != nil {
			return fmt.Errorf("sdl: %w", err)
		}
	}
	return nil
}

// setAttributes sets the SDL attributes that correspond to the requested
// context attributes. must be called before the window is created.
func setAttributes(attr gpu.Attributes) error {
	bits := func(b bool, n int) int {
		if b {
			return n
		}
		return 0
	}

	err := sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, bits(attr.Alpha, 8))
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, bits(attr.Depth, 24))
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, bits(attr.Stencil, 8))
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, bits(attr.Antialias, 1))
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, bits(attr.Antialias, 4))
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	return nil
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
	win.quit = true
}

// Service handles pending SDL events and then runs the pending frame, if
// there is one. The surface is presented after the frame has run. Returns
// false when the window has been closed or the escape key has been pressed.
//
// Service should be called continuously, from the main thread, until it
// returns false.
func (win *Window) Service() bool {
	if win.quit {
		return false
	}

	// wait for an event if there is no frame to run. this prevents a busy
	// loop when the frame driver has stopped
	var ev sdl.Event
	if win.pending == nil {
		ev = sdl.WaitEventTimeout(idleTimeout)
	} else {
		ev = sdl.PollEvent()
	}

	for ; ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.quit = true

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				win.quit = true
			}

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED && win.events != nil {
				win.events.Resized(win.Size())
			}

		case *sdl.MouseMotionEvent:
			if win.events != nil {
				sx, sy := win.pixelScale()
				win.events.PointerMoved(float32(ev.X)*sx, float32(ev.Y)*sy)
			}
		}
	}

	if win.quit {
		return false
	}

	if win.pending != nil && win.window != nil {
		f := win.pending
		win.pending = nil
		f(time.Since(win.created))
		win.window.GLSwap()
	}

	return true
}

// pixelScale is the ratio of drawable pixels to window coordinates. mouse
// events are in window coordinates.
func (win *Window) pixelScale() (float32, float32) {
	if win.window == nil {
		return 1, 1
	}
	ww, wh := win.window.GetSize()
	dw, dh := win.window.GLGetDrawableSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	return float32(dw) / float32(ww), float32(dh) / float32(wh)
}

func (win *Window) destroyWindow() {
	if win.glctx != nil {
		sdl.GLDeleteContext(win.glctx)
		win.glctx = nil
	}
	if win.window != nil {
		err := win.window.Destroy()
		if err != nil {
			logger.Log(logger.Allow, "sdl", err)
		}
		win.window = nil
	}
}

// Destroy closes the window and shuts down SDL. Any context acquired from the
// window can no longer be used.
func (win *Window) Destroy() {
	win.ctx = nil
	win.destroyWindow()
	sdl.Quit()
}
