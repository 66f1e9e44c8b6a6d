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

import "fmt"

// Texture is a handle to a GPU texture.
type Texture uint32

// Framebuffer is a handle to a GPU framebuffer object.
type Framebuffer uint32

// Surface is the framebuffer that represents the visible surface.
const Surface Framebuffer = 0

// Shader is a handle to a compiled shader object.
type Shader uint32

// Program is a handle to a linked shader program.
type Program uint32

// Buffer is a handle to a vertex buffer.
type Buffer uint32

// Stage of a shader.
type Stage int

// List of valid Stage values.
const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Format of the pixels in a texture.
type Format int

// List of valid Format values.
const (
	// 8 bits per channel, unsigned normalised
	RGBA8 Format = iota

	// 16 bit floating point per channel
	RGBA16F
)

func (f Format) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case RGBA16F:
		return "RGBA16F"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// The maximum number of color attachments a framebuffer can have. This is the
// limit of the original WebGL draw buffers extension.
const MaxAttachments = 16

// Context is a graphics context. Textures created by a Context always use
// nearest filtering and clamp to edge wrapping.
//
// Methods that can fail because of the arguments return an error. Failures
// that a GL implementation reports asynchronously are collected and returned
// by the next call to Error().
type Context interface {
	// CreateTexture allocates a texture of the given size. The contents are
	// zero.
	CreateTexture(width, height int, format Format) (Texture, error)
	DeleteTexture(tex Texture)

	CreateFramebuffer() (Framebuffer, error)
	DeleteFramebuffer(fb Framebuffer)

	// BindFramebuffer makes the framebuffer the current render target. The
	// Surface framebuffer is the visible surface.
	BindFramebuffer(fb Framebuffer)

	// AttachTexture attaches the texture to color attachment index of the
	// currently bound framebuffer. A zero texture detaches.
	AttachTexture(index int, tex Texture)

	// DrawBuffers enables the first n color attachments of the currently
	// bound framebuffer as draw targets.
	DrawBuffers(n int)

	// CompileShader returns an error containing the compiler log on
	// failure.
	CompileShader(stage Stage, source string) (Shader, error)
	DeleteShader(sh Shader)

	// LinkProgram returns an error containing the link log on failure.
	LinkProgram(vertex Shader, fragment Shader) (Program, error)
	DeleteProgram(prog Program)
	UseProgram(prog Program)

	// UniformLocation returns -1 if the uniform is not active in the program.
	// Setting a uniform with location -1 is silently ignored.
	UniformLocation(prog Program, name string) int32
	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)
	Uniform1fv(loc int32, v []float32)
	Uniform2fv(loc int32, v []float32)
	Uniform3fv(loc int32, v []float32)
	Uniform4fv(loc int32, v []float32)

	// BindTexture binds the texture to the texture unit.
	BindTexture(unit int, tex Texture)

	CreateBuffer(data []float32) (Buffer, error)
	DeleteBuffer(buf Buffer)

	// AttribLocation returns -1 if the attribute is not active in the program.
	AttribLocation(prog Program, name string) int32

	// VertexAttrib sources the vertex attribute from the buffer. Each vertex
	// has the given number of float32 components.
	VertexAttrib(loc int32, buf Buffer, components int)

	// DrawTriangles draws count vertices as a list of triangles.
	DrawTriangles(first, count int)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()

	// ReadPixels returns the RGBA8 pixels of color attachment zero of the
	// currently bound framebuffer. Rows are returned bottom row first.
	ReadPixels(x, y, width, height int) ([]uint8, error)

	// Extension probes for, and enables, the named extension. The names are
	// those used by WebGL. Desktop implementations map them to the
	// equivalent GL extension.
	Extension(name string) bool

	// MaxDrawBuffers returns the number of simultaneous draw buffers
	// supported by the context.
	MaxDrawBuffers() int

	// Error returns and clears the first error since the last call to
	// Error().
	Error() error
}
