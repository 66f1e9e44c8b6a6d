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
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/gpu"
)

// Options control the capabilities of a software context.
type Options struct {
	// whether the Modern API can be acquired
	Modern bool

	// whether float textures are available and renderable
	FloatTextures    bool
	ColorBufferFloat bool

	// the number of simultaneous draw buffers. values of less than two mean
	// that multiple render targets are not supported. for a Legacy context
	// the draw buffers extension is only offered if this value is two or
	// more
	DrawBuffers int

	// no context of any kind can be acquired
	Unavailable bool

	// the largest texture dimension that can be allocated. zero means no
	// limit
	MaxTextureSize int
}

type framebuffer struct {
	attachments [gpu.MaxAttachments]gpu.Texture
	drawBuffers int
}

type shaderObject struct {
	stage  gpu.Stage
	source string
}

type program struct {
	vertex   string
	fragment string
	kernel   Kernel

	locations map[string]int32
	values    map[int32][]float32
	attribs   map[string]int32
}

type attribute struct {
	buf        gpu.Buffer
	components int
}

// Context is the software implementation of gpu.Context.
type Context struct {
	api  gpu.API
	opts Options

	// visible surface
	surface *texture

	textures     map[gpu.Texture]*texture
	framebuffers map[gpu.Framebuffer]*framebuffer
	shaders      map[gpu.Shader]*shaderObject
	programs     map[gpu.Program]*program
	buffers      map[gpu.Buffer][]float32
	kernels      map[string]Kernel

	// all handle types share the same sequence of values
	handle uint32

	bound    gpu.Framebuffer
	current  gpu.Program
	units    [32]gpu.Texture
	attribs  map[int32]attribute
	viewport image.Rectangle
	clear    mgl32.Vec4

	enabled map[string]bool
	probed  []string

	err   error
	draws int
}

func newContext(api gpu.API, opts Options, width, height int) *Context {
	return &Context{
		api:          api,
		opts:         opts,
		surface:      newTexture(width, height, gpu.RGBA8),
		textures:     make(map[gpu.Texture]*texture),
		framebuffers: make(map[gpu.Framebuffer]*framebuffer),
		shaders:      make(map[gpu.Shader]*shaderObject),
		programs:     make(map[gpu.Program]*program),
		buffers:      make(map[gpu.Buffer][]float32),
		kernels:      make(map[string]Kernel),
		attribs:      make(map[int32]attribute),
		viewport:     image.Rect(0, 0, width, height),
		enabled:      make(map[string]bool),
	}
}

func (ctx *Context) next() uint32 {
	ctx.handle++
	return ctx.handle
}

// setError records the first error since the last call to Error().
func (ctx *Context) setError(format string, args ...any) {
	if ctx.err == nil {
		ctx.err = fmt.Errorf("headless: "+format, args...)
	}
}

// Register a kernel for the fragment source for this context only. Kernels
// registered with the context take precedence over kernels registered with
// the package level Register() function.
func (ctx *Context) Register(source string, k Kernel) {
	ctx.kernels[source] = k
}

// API returns the version of the API that was acquired.
func (ctx *Context) API() gpu.API {
	return ctx.api
}

// Probed returns the names of every extension probed with Extension(), in the
// order they were probed.
func (ctx *Context) Probed() []string {
	return ctx.probed
}

// Draws returns the number of draw calls that have completed.
func (ctx *Context) Draws() int {
	return ctx.draws
}

// Textures returns the number of live textures.
func (ctx *Context) Textures() int {
	return len(ctx.textures)
}

// Bound returns the currently bound framebuffer.
func (ctx *Context) Bound() gpu.Framebuffer {
	return ctx.bound
}

// Attachment returns the texture attached to the framebuffer at the index.
func (ctx *Context) Attachment(fb gpu.Framebuffer, index int) gpu.Texture {
	f, ok := ctx.framebuffers[fb]
	if !ok || index < 0 || index >= len(f.attachments) {
		return 0
	}
	return f.attachments[index]
}

// Surface is the texture handle that refers to the visible surface in calls
// to Pixel(), TextureSize() and Fill().
const Surface gpu.Texture = 0

// Pixel returns the value of the texel. Textures with the zero handle refer to
// the visible surface.
func (ctx *Context) Pixel(tex gpu.Texture, x, y int) mgl32.Vec4 {
	t := ctx.lookupTexture(tex)
	if t == nil || x < 0 || y < 0 || x >= t.width || y >= t.height {
		return mgl32.Vec4{}
	}
	return t.at(x, y)
}

// TextureSize returns the dimensions of the texture. Textures with the zero
// handle refer to the visible surface.
func (ctx *Context) TextureSize(tex gpu.Texture) (int, int, bool) {
	t := ctx.lookupTexture(tex)
	if t == nil {
		return 0, 0, false
	}
	return t.width, t.height, true
}

// TextureFormat returns the format of the texture.
func (ctx *Context) TextureFormat(tex gpu.Texture) gpu.Format {
	t := ctx.lookupTexture(tex)
	if t == nil {
		return gpu.RGBA8
	}
	return t.format
}

// Fill the texture with a single value.
func (ctx *Context) Fill(tex gpu.Texture, c mgl32.Vec4) {
	t := ctx.lookupTexture(tex)
	if t != nil {
		t.fill(c)
	}
}

func (ctx *Context) lookupTexture(tex gpu.Texture) *texture {
	if tex == Surface {
		return ctx.surface
	}
	return ctx.textures[tex]
}

func (ctx *Context) resizeSurface(width, height int) {
	ctx.surface = newTexture(width, height, gpu.RGBA8)
}

// CreateTexture implements the gpu.Context interface.
func (ctx *Context) CreateTexture(width, height int, format gpu.Format) (gpu.Texture, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("headless: texture: invalid size %dx%d", width, height)
	}
	if ctx.opts.MaxTextureSize > 0 && (width > ctx.opts.MaxTextureSize || height > ctx.opts.MaxTextureSize) {
		return 0, fmt.Errorf("headless: texture: %dx%d exceeds maximum size of %d", width, height, ctx.opts.MaxTextureSize)
	}
	if format == gpu.RGBA16F && !ctx.floatTextures() {
		return 0, fmt.Errorf("headless: texture: %s not available", format)
	}
	id := gpu.Texture(ctx.next())
	ctx.textures[id] = newTexture(width, height, format)
	return id, nil
}

func (ctx *Context) floatTextures() bool {
	if ctx.api == gpu.Modern {
		return true
	}
	return ctx.enabled[gpu.ExtFloatTexture]
}

// DeleteTexture implements the gpu.Context interface.
func (ctx *Context) DeleteTexture(tex gpu.Texture) {
	delete(ctx.textures, tex)
	for _, f := range ctx.framebuffers {
		for i := range f.attachments {
			if f.attachments[i] == tex {
				f.attachments[i] = 0
			}
		}
	}
	for i := range ctx.units {
		if ctx.units[i] == tex {
			ctx.units[i] = 0
		}
	}
}

// CreateFramebuffer implements the gpu.Context interface.
func (ctx *Context) CreateFramebuffer() (gpu.Framebuffer, error) {
	id := gpu.Framebuffer(ctx.next())
	ctx.framebuffers[id] = &framebuffer{drawBuffers: 1}
	return id, nil
}

// DeleteFramebuffer implements the gpu.Context interface.
func (ctx *Context) DeleteFramebuffer(fb gpu.Framebuffer) {
	delete(ctx.framebuffers, fb)
	if ctx.bound == fb {
		ctx.bound = gpu.Surface
	}
}

// BindFramebuffer implements the gpu.Context interface.
func (ctx *Context) BindFramebuffer(fb gpu.Framebuffer) {
	if fb != gpu.Surface {
		if _, ok := ctx.framebuffers[fb]; !ok {
			ctx.setError("bind: no framebuffer %d", fb)
			return
		}
	}
	ctx.bound = fb
}

// AttachTexture implements the gpu.Context interface.
func (ctx *Context) AttachTexture(index int, tex gpu.Texture) {
	f, ok := ctx.framebuffers[ctx.bound]
	if !ok {
		ctx.setError("attach: no framebuffer bound")
		return
	}
	if index < 0 || index >= ctx.MaxDrawBuffers() {
		ctx.setError("attach: color attachment %d out of range", index)
		return
	}
	if tex != 0 {
		if _, ok := ctx.textures[tex]; !ok {
			ctx.setError("attach: no texture %d", tex)
			return
		}
	}
	f.attachments[index] = tex
}

// DrawBuffers implements the gpu.Context interface.
func (ctx *Context) DrawBuffers(n int) {
	f, ok := ctx.framebuffers[ctx.bound]
	if !ok {
		if n != 1 {
			ctx.setError("draw buffers: surface only has one draw buffer")
		}
		return
	}
	if n < 1 || n > ctx.MaxDrawBuffers() {
		ctx.setError("draw buffers: %d out of range", n)
		return
	}
	f.drawBuffers = n
}

// isAttached returns true if the texture is attached to the bound framebuffer.
func (ctx *Context) isAttached(tex gpu.Texture) bool {
	f, ok := ctx.framebuffers[ctx.bound]
	if !ok {
		return false
	}
	for _, a := range f.attachments {
		if a == tex {
			return true
		}
	}
	return false
}

// CompileShader implements the gpu.Context interface.
func (ctx *Context) CompileShader(stage gpu.Stage, source string) (gpu.Shader, error) {
	if strings.TrimSpace(source) == "" {
		return 0, fmt.Errorf("ERROR: 0:0: empty %s shader source", stage)
	}
	for i, l := range strings.Split(source, "\n") {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "#error") {
			return 0, fmt.Errorf("ERROR: 0:%d: '#error' : %s", i+1, strings.TrimSpace(strings.TrimPrefix(l, "#error")))
		}
	}
	id := gpu.Shader(ctx.next())
	ctx.shaders[id] = &shaderObject{stage: stage, source: source}
	return id, nil
}

// DeleteShader implements the gpu.Context interface.
func (ctx *Context) DeleteShader(sh gpu.Shader) {
	delete(ctx.shaders, sh)
}

// LinkProgram implements the gpu.Context interface.
func (ctx *Context) LinkProgram(vertex gpu.Shader, fragment gpu.Shader) (gpu.Program, error) {
	vs, ok := ctx.shaders[vertex]
	if !ok || vs.stage != gpu.Vertex {
		return 0, fmt.Errorf("ERROR: no vertex shader attached")
	}
	fs, ok := ctx.shaders[fragment]
	if !ok || fs.stage != gpu.Fragment {
		return 0, fmt.Errorf("ERROR: no fragment shader attached")
	}

	k, ok := ctx.kernels[fs.source]
	if !ok {
		k, ok = lookup(fs.source)
		if !ok {
			return 0, fmt.Errorf("ERROR: no kernel for fragment shader")
		}
	}

	id := gpu.Program(ctx.next())
	ctx.programs[id] = &program{
		vertex:    vs.source,
		fragment:  fs.source,
		kernel:    k,
		locations: make(map[string]int32),
		values:    make(map[int32][]float32),
		attribs:   make(map[string]int32),
	}
	return id, nil
}

// DeleteProgram implements the gpu.Context interface.
func (ctx *Context) DeleteProgram(prog gpu.Program) {
	delete(ctx.programs, prog)
	if ctx.current == prog {
		ctx.current = 0
	}
}

// UseProgram implements the gpu.Context interface.
func (ctx *Context) UseProgram(prog gpu.Program) {
	if prog != 0 {
		if _, ok := ctx.programs[prog]; !ok {
			ctx.setError("use: no program %d", prog)
			return
		}
	}
	ctx.current = prog
}

func (p *program) active(name string) bool {
	return strings.Contains(p.vertex, name) || strings.Contains(p.fragment, name)
}

// UniformLocation implements the gpu.Context interface.
func (ctx *Context) UniformLocation(prog gpu.Program, name string) int32 {
	p, ok := ctx.programs[prog]
	if !ok {
		ctx.setError("uniform: no program %d", prog)
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	if !p.active(name) {
		return -1
	}
	loc := int32(len(p.locations))
	p.locations[name] = loc
	return loc
}

func (ctx *Context) setUniform(loc int32, v []float32) {
	if loc == -1 {
		return
	}
	p, ok := ctx.programs[ctx.current]
	if !ok {
		ctx.setError("uniform: no program in use")
		return
	}
	c := make([]float32, len(v))
	copy(c, v)
	p.values[loc] = c
}

// Uniform1f implements the gpu.Context interface.
func (ctx *Context) Uniform1f(loc int32, v float32) {
	ctx.setUniform(loc, []float32{v})
}

// Uniform1i implements the gpu.Context interface.
func (ctx *Context) Uniform1i(loc int32, v int32) {
	ctx.setUniform(loc, []float32{float32(v)})
}

// Uniform1fv implements the gpu.Context interface.
func (ctx *Context) Uniform1fv(loc int32, v []float32) {
	ctx.setUniform(loc, v)
}

// Uniform2fv implements the gpu.Context interface.
func (ctx *Context) Uniform2fv(loc int32, v []float32) {
	ctx.setUniform(loc, v)
}

// Uniform3fv implements the gpu.Context interface.
func (ctx *Context) Uniform3fv(loc int32, v []float32) {
	ctx.setUniform(loc, v)
}

// Uniform4fv implements the gpu.Context interface.
func (ctx *Context) Uniform4fv(loc int32, v []float32) {
	ctx.setUniform(loc, v)
}

// BindTexture implements the gpu.Context interface.
func (ctx *Context) BindTexture(unit int, tex gpu.Texture) {
	if unit < 0 || unit >= len(ctx.units) {
		ctx.setError("bind texture: unit %d out of range", unit)
		return
	}
	ctx.units[unit] = tex
}

// CreateBuffer implements the gpu.Context interface.
func (ctx *Context) CreateBuffer(data []float32) (gpu.Buffer, error) {
	id := gpu.Buffer(ctx.next())
	c := make([]float32, len(data))
	copy(c, data)
	ctx.buffers[id] = c
	return id, nil
}

// DeleteBuffer implements the gpu.Context interface.
func (ctx *Context) DeleteBuffer(buf gpu.Buffer) {
	delete(ctx.buffers, buf)
}

// AttribLocation implements the gpu.Context interface.
func (ctx *Context) AttribLocation(prog gpu.Program, name string) int32 {
	p, ok := ctx.programs[prog]
	if !ok {
		ctx.setError("attrib: no program %d", prog)
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	if !strings.Contains(p.vertex, name) {
		return -1
	}
	loc := int32(len(p.attribs))
	p.attribs[name] = loc
	return loc
}

// VertexAttrib implements the gpu.Context interface.
func (ctx *Context) VertexAttrib(loc int32, buf gpu.Buffer, components int) {
	if loc == -1 {
		return
	}
	if _, ok := ctx.buffers[buf]; !ok {
		ctx.setError("vertex attrib: no buffer %d", buf)
		return
	}
	ctx.attribs[loc] = attribute{buf: buf, components: components}
}

// Viewport implements the gpu.Context interface.
func (ctx *Context) Viewport(x, y, width, height int) {
	ctx.viewport = image.Rect(x, y, x+width, y+height)
}

// ClearColor implements the gpu.Context interface.
func (ctx *Context) ClearColor(r, g, b, a float32) {
	ctx.clear = mgl32.Vec4{r, g, b, a}
}

// Extension implements the gpu.Context interface.
func (ctx *Context) Extension(name string) bool {
	ctx.probed = append(ctx.probed, name)

	var ok bool
	switch name {
	case gpu.ExtFloatTexture:
		ok = ctx.opts.FloatTextures
	case gpu.ExtColorBufferFloat:
		ok = ctx.opts.ColorBufferFloat
	case gpu.ExtDrawBuffers:
		ok = ctx.api == gpu.Legacy && ctx.opts.DrawBuffers > 1
	}

	if ok {
		ctx.enabled[name] = true
	}
	return ok
}

// MaxDrawBuffers implements the gpu.Context interface.
func (ctx *Context) MaxDrawBuffers() int {
	if ctx.api == gpu.Legacy && !ctx.enabled[gpu.ExtDrawBuffers] {
		return 1
	}
	if ctx.opts.DrawBuffers < 1 {
		return 1
	}
	return min(ctx.opts.DrawBuffers, gpu.MaxAttachments)
}

// Error implements the gpu.Context interface.
func (ctx *Context) Error() error {
	err := ctx.err
	ctx.err = nil
	return err
}
