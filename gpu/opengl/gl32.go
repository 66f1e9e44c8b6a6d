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

//go:build !gl21

package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
)

// API is the version of the graphics API provided by the compiled binding.
const API = gpu.Modern

// Version of OpenGL that must be requested from the windowing system.
var Version = Requirement{Major: 3, Minor: 2, Core: true}

// gl32 is an OpenGL 3.2 core profile implementation of gpu.Context.
type gl32 struct {
	// core profile requires a vertex array object to be bound before vertex
	// attributes can be specified
	vao uint32

	maxDrawBuffers int
	bound          gpu.Framebuffer
	extensions     map[string]bool

	err error
}

// NewContext returns a gpu.Context for the GL context that is current on the
// calling thread. Must be called on the thread the GL context was created on.
func NewContext() (gpu.Context, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	// log GPU vendor information
	logger.Logf(logger.Allow, "gl32", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl32", "driver: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	ctx := &gl32{
		extensions: make(map[string]bool),
	}

	var num int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &num)
	for i := int32(0); i < num; i++ {
		ctx.extensions[gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i)))] = true
	}

	var n, m int32
	gl.GetIntegerv(gl.MAX_DRAW_BUFFERS, &n)
	gl.GetIntegerv(gl.MAX_COLOR_ATTACHMENTS, &m)
	ctx.maxDrawBuffers = int(min(n, m, gpu.MaxAttachments))
	if ctx.maxDrawBuffers < 1 {
		ctx.maxDrawBuffers = 1
	}

	gl.GenVertexArrays(1, &ctx.vao)
	gl.BindVertexArray(ctx.vao)

	return ctx, nil
}

func (ctx *gl32) setError(err error) {
	if ctx.err == nil {
		ctx.err = err
	}
}

// CreateTexture implements the gpu.Context interface.
func (ctx *gl32) CreateTexture(width, height int, format gpu.Format) (gpu.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("gl32: texture: invalid size %dx%d", width, height)
	}

	internal := int32(gl.RGBA8)
	xtype := uint32(gl.UNSIGNED_BYTE)
	if format == gpu.RGBA16F {
		internal = gl.RGBA16F
		xtype = gl.HALF_FLOAT
	}

	// discard any earlier error so that the error check below is for the
	// texture creation only
	glError()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, gl.RGBA, xtype, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError(); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("gl32: texture: %w", err)
	}

	return gpu.Texture(id), nil
}

// DeleteTexture implements the gpu.Context interface.
func (ctx *gl32) DeleteTexture(tex gpu.Texture) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

// CreateFramebuffer implements the gpu.Context interface.
func (ctx *gl32) CreateFramebuffer() (gpu.Framebuffer, error) {
	var id uint32
	gl.GenFramebuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("gl32: framebuffer: not created")
	}
	return gpu.Framebuffer(id), nil
}

// DeleteFramebuffer implements the gpu.Context interface.
func (ctx *gl32) DeleteFramebuffer(fb gpu.Framebuffer) {
	if ctx.bound == fb {
		ctx.BindFramebuffer(gpu.Surface)
	}
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}

// BindFramebuffer implements the gpu.Context interface.
func (ctx *gl32) BindFramebuffer(fb gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
	ctx.bound = fb
}

// AttachTexture implements the gpu.Context interface.
func (ctx *gl32) AttachTexture(index int, tex gpu.Texture) {
	if ctx.bound == gpu.Surface {
		ctx.setError(fmt.Errorf("gl32: attach: no framebuffer bound"))
		return
	}
	if index < 0 || index >= ctx.maxDrawBuffers {
		ctx.setError(fmt.Errorf("gl32: attach: color attachment %d out of range", index))
		return
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(index), gl.TEXTURE_2D, uint32(tex), 0)
	if tex != 0 {
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			ctx.setError(fmt.Errorf("gl32: attach: framebuffer incomplete (%#x)", status))
		}
	}
}

// DrawBuffers implements the gpu.Context interface.
func (ctx *gl32) DrawBuffers(n int) {
	if ctx.bound == gpu.Surface {
		if n != 1 {
			ctx.setError(fmt.Errorf("gl32: draw buffers: surface only has one draw buffer"))
		}
		return
	}
	if n < 1 || n > ctx.maxDrawBuffers {
		ctx.setError(fmt.Errorf("gl32: draw buffers: %d out of range", n))
		return
	}
	bufs := make([]uint32, n)
	for i := range bufs {
		bufs[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
	}
	gl.DrawBuffers(int32(n), &bufs[0])
}

// CompileShader implements the gpu.Context interface.
func (ctx *gl32) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	var xtype uint32
	switch stage {
	case gpu.Vertex:
		xtype = gl.VERTEX_SHADER
	case gpu.Fragment:
		xtype = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("gl32: unknown shader stage: %v", stage)
	}

	source = gpu.Translate(gpu.GLSL150, stage, source, ctx.maxDrawBuffers)

	id := gl.CreateShader(xtype)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(id, length, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00\n"))
	}

	return gpu.Shader(id), nil
}

// DeleteShader implements the gpu.Context interface.
func (ctx *gl32) DeleteShader(sh gpu.Shader) {
	gl.DeleteShader(uint32(sh))
}

// LinkProgram implements the gpu.Context interface.
func (ctx *gl32) LinkProgram(vertex gpu.Shader, fragment gpu.Shader) (gpu.Program, error) {
	id := gl.CreateProgram()
	gl.AttachShader(id, uint32(vertex))
	gl.AttachShader(id, uint32(fragment))

	// the elements of the output array are assigned consecutive locations
	// starting with the location of the array
	gl.BindFragDataLocation(id, 0, gl.Str(gpu.FragDataName+"\x00"))

	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(id, length, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00\n"))
	}

	return gpu.Program(id), nil
}

// DeleteProgram implements the gpu.Context interface.
func (ctx *gl32) DeleteProgram(prog gpu.Program) {
	gl.DeleteProgram(uint32(prog))
}

// UseProgram implements the gpu.Context interface.
func (ctx *gl32) UseProgram(prog gpu.Program) {
	gl.UseProgram(uint32(prog))
}

// UniformLocation implements the gpu.Context interface.
func (ctx *gl32) UniformLocation(prog gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
}

// Uniform1f implements the gpu.Context interface.
func (ctx *gl32) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// Uniform1i implements the gpu.Context interface.
func (ctx *gl32) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// Uniform1fv implements the gpu.Context interface.
func (ctx *gl32) Uniform1fv(loc int32, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(loc, int32(len(v)), &v[0])
	}
}

// Uniform2fv implements the gpu.Context interface.
func (ctx *gl32) Uniform2fv(loc int32, v []float32) {
	if len(v) >= 2 {
		gl.Uniform2fv(loc, int32(len(v)/2), &v[0])
	}
}

// Uniform3fv implements the gpu.Context interface.
func (ctx *gl32) Uniform3fv(loc int32, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(loc, int32(len(v)/3), &v[0])
	}
}

// Uniform4fv implements the gpu.Context interface.
func (ctx *gl32) Uniform4fv(loc int32, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(loc, int32(len(v)/4), &v[0])
	}
}

// BindTexture implements the gpu.Context interface.
func (ctx *gl32) BindTexture(unit int, tex gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

// CreateBuffer implements the gpu.Context interface.
func (ctx *gl32) CreateBuffer(data []float32) (gpu.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("gl32: buffer: no data")
	}
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return gpu.Buffer(id), nil
}

// DeleteBuffer implements the gpu.Context interface.
func (ctx *gl32) DeleteBuffer(buf gpu.Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

// AttribLocation implements the gpu.Context interface.
func (ctx *gl32) AttribLocation(prog gpu.Program, name string) int32 {
	return gl.GetAttribLocation(uint32(prog), gl.Str(name+"\x00"))
}

// VertexAttrib implements the gpu.Context interface.
func (ctx *gl32) VertexAttrib(loc int32, buf gpu.Buffer, components int) {
	if loc < 0 {
		return
	}
	gl.BindVertexArray(ctx.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), int32(components), gl.FLOAT, false, 0, gl.PtrOffset(0))
}

// DrawTriangles implements the gpu.Context interface.
func (ctx *gl32) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

// Viewport implements the gpu.Context interface.
func (ctx *gl32) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ClearColor implements the gpu.Context interface.
func (ctx *gl32) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear implements the gpu.Context interface.
func (ctx *gl32) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// ReadPixels implements the gpu.Context interface.
func (ctx *gl32) ReadPixels(x, y, width, height int) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gl32: read pixels: invalid size %dx%d", width, height)
	}
	glError()
	pix := make([]uint8, width*height*4)
	gl.ReadBuffer(readBuffer(ctx.bound))
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if err := glError(); err != nil {
		return nil, fmt.Errorf("gl32: read pixels: %w", err)
	}
	return pix, nil
}

func readBuffer(fb gpu.Framebuffer) uint32 {
	if fb == gpu.Surface {
		return gl.BACK
	}
	return gl.COLOR_ATTACHMENT0
}

// Extension implements the gpu.Context interface. Every extension probed for
// by the frame driver is part of OpenGL 3.2 so the result is always true for
// those names.
func (ctx *gl32) Extension(name string) bool {
	switch name {
	case gpu.ExtFloatTexture, gpu.ExtColorBufferFloat:
		return true
	case gpu.ExtDrawBuffers:
		return ctx.maxDrawBuffers > 1
	}
	return hasExtension(ctx.extensions, name)
}

// MaxDrawBuffers implements the gpu.Context interface.
func (ctx *gl32) MaxDrawBuffers() int {
	return ctx.maxDrawBuffers
}

// Error implements the gpu.Context interface.
func (ctx *gl32) Error() error {
	err := ctx.err
	ctx.err = nil
	if glerr := glError(); err == nil && glerr != nil {
		err = fmt.Errorf("gl32: %w", glerr)
	}
	return err
}

// glError returns the first error flag and clears every other error flag.
func glError() error {
	var err error
	for i := 0; i < maxErrorFlags; i++ {
		e := gl.GetError()
		if e == gl.NO_ERROR {
			break
		}
		if err == nil {
			err = errorFlag(e)
		}
	}
	return err
}
