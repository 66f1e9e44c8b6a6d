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

package gpu

import (
	"time"
)

// API is the version of the graphics API being requested from a Host.
type API int

// List of valid API values.
const (
	// WebGL2 or OpenGL 3.2 core
	Modern API = iota

	// WebGL1 or OpenGL 2.1
	Legacy
)

func (api API) String() string {
	switch api {
	case Modern:
		return "modern"
	case Legacy:
		return "legacy"
	}
	return "unknown"
}

// UnsupportedAPI is returned by Host.Acquire() when the host can not provide
// the requested API version.
const UnsupportedAPI = "gpu: %v API not supported: %v"

// Attributes of the context requested from a Host.
type Attributes struct {
	Alpha     bool
	Depth     bool
	Stencil   bool
	Antialias bool
}

// DefaultAttributes is the only context configuration used by the frame
// driver. Render passes only ever draw a full screen quad so there is no need
// for a depth or stencil buffer, and the surface is opaque.
var DefaultAttributes = Attributes{}

// Names of the extensions probed for when a legacy context is acquired.
const (
	ExtFloatTexture     = "OES_texture_float"
	ExtDrawBuffers      = "WEBGL_draw_buffers"
	ExtColorBufferFloat = "EXT_color_buffer_float"
)

// Events are delivered by the Host to the subscriber.
type Events interface {
	// the new size of the surface in pixels
	Resized(width, height int)

	// pointer position in surface pixels. origin is the top left of the
	// surface
	PointerMoved(x, y float32)

	// device orientation in degrees
	Oriented(alpha, beta, gamma float32)
}

// Host is the provider of graphics contexts and display refresh callbacks.
// It is usually the window or canvas the frames are presented in.
type Host interface {
	// Size of the surface in pixels.
	Size() (width, height int)

	// Acquire a context for the requested API. An error matching
	// UnsupportedAPI is returned if the API is not available.
	Acquire(api API, attr Attributes) (Context, error)

	// RequestFrame schedules the function to be called at the next display
	// refresh. The function is called once. The now argument is the time
	// since the host was created.
	RequestFrame(func(now time.Duration))

	// Subscribe to host events. A subsequent call replaces the subscriber.
	Subscribe(ev Events)
}
