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

// Package opengl implements gpu.Context with OpenGL through the go-gl
// bindings. The package does not create GL contexts itself; that is the job
// of the windowing packages, sdlgl and glfwgl, which make a context current
// and then call NewContext().
//
// Only one GL binding is compiled into a binary because the cgo parts of the
// bindings can not be linked together. By default the OpenGL 3.2 core
// binding is used and only the Modern API is available. Build with the gl21
// tag to use the OpenGL 2.1 binding, in which case only the Legacy API is
// available.
//
// Shader sources are translated to the GLSL dialect of the binding with
// gpu.Translate() before they are compiled.
package opengl

import (
	"fmt"
)

// Requirement is the version of OpenGL that a windowing package must request
// when creating the GL context.
type Requirement struct {
	Major int
	Minor int

	// core profile with forward compatibility
	Core bool
}

func (r Requirement) String() string {
	if r.Core {
		return fmt.Sprintf("%d.%d core", r.Major, r.Minor)
	}
	return fmt.Sprintf("%d.%d", r.Major, r.Minor)
}

// the maximum number of error flags a GL implementation can have set at one
// time. a real implementation has one flag per error type
const maxErrorFlags = 16

// values returned by glGetError(). these are the same in every version of the
// API
const (
	invalidEnum                 = 0x0500
	invalidValue                = 0x0501
	invalidOperation            = 0x0502
	stackOverflow               = 0x0503
	stackUnderflow              = 0x0504
	outOfMemory                 = 0x0505
	invalidFramebufferOperation = 0x0506
)

func errorFlag(e uint32) error {
	switch e {
	case invalidEnum:
		return fmt.Errorf("GL_INVALID_ENUM")
	case invalidValue:
		return fmt.Errorf("GL_INVALID_VALUE")
	case invalidOperation:
		return fmt.Errorf("GL_INVALID_OPERATION")
	case stackOverflow:
		return fmt.Errorf("GL_STACK_OVERFLOW")
	case stackUnderflow:
		return fmt.Errorf("GL_STACK_UNDERFLOW")
	case outOfMemory:
		return fmt.Errorf("GL_OUT_OF_MEMORY")
	case invalidFramebufferOperation:
		return fmt.Errorf("GL_INVALID_FRAMEBUFFER_OPERATION")
	}
	return fmt.Errorf("GL error %#04x", e)
}

// desktop equivalents of the WebGL extension names probed for by the frame
// driver. a WebGL extension is available if any one of the desktop
// extensions is available
var desktopExtensions = map[string][]string{
	"OES_texture_float":      {"GL_ARB_texture_float"},
	"WEBGL_draw_buffers":     {"GL_ARB_draw_buffers"},
	"EXT_color_buffer_float": {"GL_ARB_color_buffer_float", "GL_ARB_half_float_pixel"},
}

// hasExtension returns true if the extensions include the named extension,
// or a desktop equivalent of it.
func hasExtension(extensions map[string]bool, name string) bool {
	if extensions[name] {
		return true
	}
	for _, e := range desktopExtensions[name] {
		if extensions[e] {
			return true
		}
	}
	return false
}
