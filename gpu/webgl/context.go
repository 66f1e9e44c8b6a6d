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

package webgl

import (
	"fmt"
	"syscall/js"
	"unsafe"

	"github.com/jetsetilly/shaderloop/gpu"
)

// WebGL constants. the values are the same in WebGL1 and WebGL2, and the
// same as the desktop GL values
const (
	glVersion  = 0x1f02
	glRenderer = 0x1f01

	glNoError        = 0
	glTexture2D      = 0x0de1
	glTexture0       = 0x84c0
	glMinFilter      = 0x2801
	glMagFilter      = 0x2800
	glWrapS          = 0x2802
	glWrapT          = 0x2803
	glNearest        = 0x2600
	glClampToEdge    = 0x812f
	glRGBA           = 0x1908
	glRGBA8          = 0x8058
	glRGBA16F        = 0x881a
	glUnsignedByte   = 0x1401
	glFloat          = 0x1406
	glHalfFloat      = 0x140b
	glFramebuffer    = 0x8d40
	glColorAttach0   = 0x8ce0
	glFBComplete     = 0x8cd5
	glVertexShader   = 0x8b31
	glFragmentShader = 0x8b30
	glCompileStatus  = 0x8b81
	glLinkStatus     = 0x8b82
	glArrayBuffer    = 0x8892
	glStaticDraw     = 0x88e4
	glTriangles      = 0x0004
	glColorBufferBit = 0x4000
	glMaxDrawBuffers = 0x8824
	glMaxColorAttach = 0x8cdf
)

// Context is the WebGL implementation of gpu.Context.
type Context struct {
	api gpu.API
	gl  js.Value

	// WebGL objects are javascript values. the handles given out by the
	// context are keys into this map
	objects map[uint32]js.Value
	handle  uint32

	// uniform locations are also objects. locations given out by the context
	// are indexes into this slice
	uniforms []js.Value

	// the WEBGL_draw_buffers extension object. only used by WebGL1 contexts
	drawBuffers js.Value

	enabled map[string]bool
	bound   gpu.Framebuffer

	err error
}

func newContext(api gpu.API, gl js.Value) *Context {
	ctx := &Context{
		api:         api,
		gl:          gl,
		objects:     make(map[uint32]js.Value),
		enabled:     make(map[string]bool),
		drawBuffers: js.Null(),
	}

	if api == gpu.Modern {
		// WebGL2 vertex attributes are part of the vertex array object. a
		// single vertex array is used for the lifetime of the context
		gl.Call("bindVertexArray", gl.Call("createVertexArray"))
	}

	return ctx
}

func (ctx *Context) setError(format string, args ...any) {
	if ctx.err == nil {
		ctx.err = fmt.Errorf("webgl: "+format, args...)
	}
}

func (ctx *Context) store(v js.Value) uint32 {
	ctx.handle++
	ctx.objects[ctx.handle] = v
	return ctx.handle
}

// object returns null for the zero handle and for unknown handles.
func (ctx *Context) object(h uint32) js.Value {
	v, ok := ctx.objects[h]
	if !ok {
		return js.Null()
	}
	return v
}

func (ctx *Context) release(h uint32, method string) {
	v, ok := ctx.objects[h]
	if !ok {
		return
	}
	ctx.gl.Call(method, v)
	delete(ctx.objects, h)
}

func isNull(v js.Value) bool {
	return v.IsNull() || v.IsUndefined()
}

// CreateTexture implements the gpu.Context interface.
func (ctx *Context) CreateTexture(width, height int, format gpu.Format) (gpu.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("webgl: texture: invalid size %dx%d", width, height)
	}

	internal, xtype := glRGBA, glUnsignedByte
	switch {
	case format == gpu.RGBA16F && ctx.api == gpu.Modern:
		internal, xtype = glRGBA16F, glHalfFloat
	case format == gpu.RGBA16F:
		if !ctx.enabled[gpu.ExtFloatTexture] {
			return 0, fmt.Errorf("webgl: texture: %s not available", format)
		}
		xtype = glFloat
	case ctx.api == gpu.Modern:
		internal = glRGBA8
	}

	tex := ctx.gl.Call("createTexture")
	if isNull(tex) {
		return 0, fmt.Errorf("webgl: texture: not created")
	}

	gl := ctx.gl
	gl.Call("bindTexture", glTexture2D, tex)
	gl.Call("texParameteri", glTexture2D, glMinFilter, glNearest)
	gl.Call("texParameteri", glTexture2D, glMagFilter, glNearest)
	gl.Call("texParameteri", glTexture2D, glWrapS, glClampToEdge)
	gl.Call("texParameteri", glTexture2D, glWrapT, glClampToEdge)
	gl.Call("texImage2D", glTexture2D, 0, internal, width, height, 0, glRGBA, xtype, js.Null())
	gl.Call("bindTexture", glTexture2D, js.Null())

	return gpu.Texture(ctx.store(tex)), nil
}

// DeleteTexture implements the gpu.Context interface.
func (ctx *Context) DeleteTexture(tex gpu.Texture) {
	ctx.release(uint32(tex), "deleteTexture")
}

// CreateFramebuffer implements the gpu.Context interface.
func (ctx *Context) CreateFramebuffer() (gpu.Framebuffer, error) {
	fb := ctx.gl.Call("createFramebuffer")
	if isNull(fb) {
		return 0, fmt.Errorf("webgl: framebuffer: not created")
	}
	return gpu.Framebuffer(ctx.store(fb)), nil
}

// DeleteFramebuffer implements the gpu.Context interface.
func (ctx *Context) DeleteFramebuffer(fb gpu.Framebuffer) {
	if ctx.bound == fb {
		ctx.BindFramebuffer(gpu.Surface)
	}
	ctx.release(uint32(fb), "deleteFramebuffer")
}

// BindFramebuffer implements the gpu.Context interface.
func (ctx *Context) BindFramebuffer(fb gpu.Framebuffer) {
	ctx.gl.Call("bindFramebuffer", glFramebuffer, ctx.object(uint32(fb)))
	ctx.bound = fb
}

// AttachTexture implements the gpu.Context interface.
func (ctx *Context) AttachTexture(index int, tex gpu.Texture) {
	if ctx.bound == gpu.Surface {
		ctx.setError("attach: no framebuffer bound")
		return
	}
	if index < 0 || index >= ctx.maxAttachments() {
		ctx.setError("attach: color attachment %d out of range", index)
		return
	}
	ctx.gl.Call("framebufferTexture2D", glFramebuffer, glColorAttach0+index, glTexture2D, ctx.object(uint32(tex)), 0)
	if tex != 0 {
		if status := ctx.gl.Call("checkFramebufferStatus", glFramebuffer).Int(); status != glFBComplete {
			ctx.setError("attach: framebuffer incomplete (%#x)", status)
		}
	}
}

func (ctx *Context) maxAttachments() int {
	if ctx.api == gpu.Legacy && isNull(ctx.drawBuffers) {
		return 1
	}
	return min(ctx.gl.Call("getParameter", glMaxColorAttach).Int(), gpu.MaxAttachments)
}

// DrawBuffers implements the gpu.Context interface.
func (ctx *Context) DrawBuffers(n int) {
	if ctx.bound == gpu.Surface {
		if n != 1 {
			ctx.setError("draw buffers: surface only has one draw buffer")
		}
		return
	}
	if n < 1 || n > ctx.MaxDrawBuffers() {
		ctx.setError("draw buffers: %d out of range", n)
		return
	}

	bufs := make([]any, n)
	for i := range bufs {
		bufs[i] = glColorAttach0 + i
	}

	if ctx.api == gpu.Modern {
		ctx.gl.Call("drawBuffers", bufs)
	} else if !isNull(ctx.drawBuffers) {
		ctx.drawBuffers.Call("drawBuffersWEBGL", bufs)
	}
}

// CompileShader implements the gpu.Context interface.
func (ctx *Context) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	var xtype int
	switch stage {
	case gpu.Vertex:
		xtype = glVertexShader
	case gpu.Fragment:
		xtype = glFragmentShader
	default:
		return 0, fmt.Errorf("webgl: unknown shader stage: %v", stage)
	}

	dialect := gpu.ESSL100
	if ctx.api == gpu.Modern {
		dialect = gpu.ESSL300
	}
	source = gpu.Translate(dialect, stage, source, ctx.MaxDrawBuffers())

	sh := ctx.gl.Call("createShader", xtype)
	ctx.gl.Call("shaderSource", sh, source)
	ctx.gl.Call("compileShader", sh)

	if !ctx.gl.Call("getShaderParameter", sh, glCompileStatus).Bool() {
		log := ctx.gl.Call("getShaderInfoLog", sh).String()
		ctx.gl.Call("deleteShader", sh)
		return 0, fmt.Errorf("%s", log)
	}

	return gpu.Shader(ctx.store(sh)), nil
}

// DeleteShader implements the gpu.Context interface.
func (ctx *Context) DeleteShader(sh gpu.Shader) {
	ctx.release(uint32(sh), "deleteShader")
}

// LinkProgram implements the gpu.Context interface.
func (ctx *Context) LinkProgram(vertex gpu.Shader, fragment gpu.Shader) (gpu.Program, error) {
	prog := ctx.gl.Call("createProgram")
	ctx.gl.Call("attachShader", prog, ctx.object(uint32(vertex)))
	ctx.gl.Call("attachShader", prog, ctx.object(uint32(fragment)))
	ctx.gl.Call("linkProgram", prog)

	if !ctx.gl.Call("getProgramParameter", prog, glLinkStatus).Bool() {
		log := ctx.gl.Call("getProgramInfoLog", prog).String()
		ctx.gl.Call("deleteProgram", prog)
		return 0, fmt.Errorf("%s", log)
	}

	return gpu.Program(ctx.store(prog)), nil
}

// DeleteProgram implements the gpu.Context interface.
func (ctx *Context) DeleteProgram(prog gpu.Program) {
	ctx.release(uint32(prog), "deleteProgram")
}

// UseProgram implements the gpu.Context interface.
func (ctx *Context) UseProgram(prog gpu.Program) {
	ctx.gl.Call("useProgram", ctx.object(uint32(prog)))
}

// UniformLocation implements the gpu.Context interface.
func (ctx *Context) UniformLocation(prog gpu.Program, name string) int32 {
	loc := ctx.gl.Call("getUniformLocation", ctx.object(uint32(prog)), name)
	if isNull(loc) {
		return -1
	}
	ctx.uniforms = append(ctx.uniforms, loc)
	return int32(len(ctx.uniforms) - 1)
}

func (ctx *Context) uniform(loc int32) (js.Value, bool) {
	if loc < 0 || int(loc) >= len(ctx.uniforms) {
		return js.Null(), false
	}
	return ctx.uniforms[loc], true
}

// Uniform1f implements the gpu.Context interface.
func (ctx *Context) Uniform1f(loc int32, v float32) {
	if u, ok := ctx.uniform(loc); ok {
		ctx.gl.Call("uniform1f", u, v)
	}
}

// Uniform1i implements the gpu.Context interface.
func (ctx *Context) Uniform1i(loc int32, v int32) {
	if u, ok := ctx.uniform(loc); ok {
		ctx.gl.Call("uniform1i", u, v)
	}
}

// Uniform1fv implements the gpu.Context interface.
func (ctx *Context) Uniform1fv(loc int32, v []float32) {
	if u, ok := ctx.uniform(loc); ok && len(v) > 0 {
		ctx.gl.Call("uniform1fv", u, float32Array(v))
	}
}

// Uniform2fv implements the gpu.Context interface.
func (ctx *Context) Uniform2fv(loc int32, v []float32) {
	if u, ok := ctx.uniform(loc); ok && len(v) >= 2 {
		ctx.gl.Call("uniform2fv", u, float32Array(v))
	}
}

// Uniform3fv implements the gpu.Context interface.
func (ctx *Context) Uniform3fv(loc int32, v []float32) {
	if u, ok := ctx.uniform(loc); ok && len(v) >= 3 {
		ctx.gl.Call("uniform3fv", u, float32Array(v))
	}
}

// Uniform4fv implements the gpu.Context interface.
func (ctx *Context) Uniform4fv(loc int32, v []float32) {
	if u, ok := ctx.uniform(loc); ok && len(v) >= 4 {
		ctx.gl.Call("uniform4fv", u, float32Array(v))
	}
}

// BindTexture implements the gpu.Context interface.
func (ctx *Context) BindTexture(unit int, tex gpu.Texture) {
	ctx.gl.Call("activeTexture", glTexture0+unit)
	ctx.gl.Call("bindTexture", glTexture2D, ctx.object(uint32(tex)))
}

// CreateBuffer implements the gpu.Context interface.
func (ctx *Context) CreateBuffer(data []float32) (gpu.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("webgl: buffer: no data")
	}
	buf := ctx.gl.Call("createBuffer")
	if isNull(buf) {
		return 0, fmt.Errorf("webgl: buffer: not created")
	}
	ctx.gl.Call("bindBuffer", glArrayBuffer, buf)
	ctx.gl.Call("bufferData", glArrayBuffer, float32Array(data), glStaticDraw)
	return gpu.Buffer(ctx.store(buf)), nil
}

// DeleteBuffer implements the gpu.Context interface.
func (ctx *Context) DeleteBuffer(buf gpu.Buffer) {
	ctx.release(uint32(buf), "deleteBuffer")
}

// AttribLocation implements the gpu.Context interface.
func (ctx *Context) AttribLocation(prog gpu.Program, name string) int32 {
	return int32(ctx.gl.Call("getAttribLocation", ctx.object(uint32(prog)), name).Int())
}

// VertexAttrib implements the gpu.Context interface.
func (ctx *Context) VertexAttrib(loc int32, buf gpu.Buffer, components int) {
	if loc < 0 {
		return
	}
	ctx.gl.Call("bindBuffer", glArrayBuffer, ctx.object(uint32(buf)))
	ctx.gl.Call("enableVertexAttribArray", loc)
	ctx.gl.Call("vertexAttribPointer", loc, components, glFloat, false, 0, 0)
}

// DrawTriangles implements the gpu.Context interface.
func (ctx *Context) DrawTriangles(first, count int) {
	ctx.gl.Call("drawArrays", glTriangles, first, count)
}

// Viewport implements the gpu.Context interface.
func (ctx *Context) Viewport(x, y, width, height int) {
	ctx.gl.Call("viewport", x, y, width, height)
}

// ClearColor implements the gpu.Context interface.
func (ctx *Context) ClearColor(r, g, b, a float32) {
	ctx.gl.Call("clearColor", r, g, b, a)
}

// Clear implements the gpu.Context interface.
func (ctx *Context) Clear() {
	ctx.gl.Call("clear", glColorBufferBit)
}

// ReadPixels implements the gpu.Context interface.
func (ctx *Context) ReadPixels(x, y, width, height int) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("webgl: read pixels: invalid size %dx%d", width, height)
	}
	arr := js.Global().Get("Uint8Array").New(width * height * 4)
	ctx.gl.Call("readPixels", x, y, width, height, glRGBA, glUnsignedByte, arr)
	if e := ctx.gl.Call("getError").Int(); e != glNoError {
		return nil, fmt.Errorf("webgl: read pixels: error %#04x", e)
	}
	pix := make([]uint8, width*height*4)
	js.CopyBytesToGo(pix, arr)
	return pix, nil
}

// Extension implements the gpu.Context interface. The float texture and draw
// buffers extensions are part of WebGL2 and are not probed for with a Modern
// context.
func (ctx *Context) Extension(name string) bool {
	if ctx.api == gpu.Modern && (name == gpu.ExtFloatTexture || name == gpu.ExtDrawBuffers) {
		ctx.enabled[name] = true
		return true
	}

	ext := ctx.gl.Call("getExtension", name)
	if isNull(ext) {
		return false
	}
	ctx.enabled[name] = true

	if name == gpu.ExtDrawBuffers {
		ctx.drawBuffers = ext
	}

	return true
}

// MaxDrawBuffers implements the gpu.Context interface.
func (ctx *Context) MaxDrawBuffers() int {
	if ctx.api == gpu.Legacy && isNull(ctx.drawBuffers) {
		return 1
	}
	n := ctx.gl.Call("getParameter", glMaxDrawBuffers).Int()
	return max(1, min(n, gpu.MaxAttachments))
}

// Error implements the gpu.Context interface.
func (ctx *Context) Error() error {
	err := ctx.err
	ctx.err = nil
	if e := ctx.gl.Call("getError").Int(); err == nil && e != glNoError {
		err = fmt.Errorf("webgl: error %#04x", e)
	}
	return err
}

// float32Array copies the data to a new javascript Float32Array.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}
