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

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/gpu"
)

// targets returns the textures that are written to by draw and clear
// operations. the slice is indexed by draw buffer.
func (ctx *Context) targets() ([]*texture, bool) {
	if ctx.bound == gpu.Surface {
		return []*texture{ctx.surface}, true
	}

	f := ctx.framebuffers[ctx.bound]
	if f.attachments[0] == 0 {
		ctx.setError("framebuffer %d incomplete: no color attachment 0", ctx.bound)
		return nil, false
	}

	t := make([]*texture, f.drawBuffers)
	for i := range t {
		if f.attachments[i] == 0 {
			continue
		}
		t[i] = ctx.textures[f.attachments[i]]
		if t[i].format == gpu.RGBA16F && !ctx.colorBufferFloat() {
			ctx.setError("framebuffer %d incomplete: %s is not renderable", ctx.bound, t[i].format)
			return nil, false
		}
	}
	return t, true
}

func (ctx *Context) colorBufferFloat() bool {
	if ctx.api == gpu.Modern {
		return ctx.opts.ColorBufferFloat
	}
	return ctx.enabled[gpu.ExtColorBufferFloat]
}

// Clear implements the gpu.Context interface.
func (ctx *Context) Clear() {
	t, ok := ctx.targets()
	if !ok {
		return
	}
	for _, tex := range t {
		if tex != nil {
			tex.fill(ctx.clear)
		}
	}
}

// DrawTriangles implements the gpu.Context interface.
func (ctx *Context) DrawTriangles(first, count int) {
	p, ok := ctx.programs[ctx.current]
	if !ok {
		ctx.setError("draw: no program in use")
		return
	}

	// at least one attribute must be sourcing enough vertices
	var sourced bool
	for _, a := range ctx.attribs {
		if len(ctx.buffers[a.buf]) >= (first+count)*a.components {
			sourced = true
			break
		}
	}
	if !sourced {
		ctx.setError("draw: vertex attributes do not source %d vertices", first+count)
		return
	}

	t, ok := ctx.targets()
	if !ok {
		return
	}

	vp := ctx.viewport
	if vp.Empty() {
		return
	}

	f := &Fragment{ctx: ctx, prg: p}
	for y := vp.Min.Y; y < vp.Max.Y; y++ {
		for x := vp.Min.X; x < vp.Max.X; x++ {
			f.X = x
			f.Y = y
			f.UV = mgl32.Vec2{
				(float32(x-vp.Min.X) + 0.5) / float32(vp.Dx()),
				(float32(y-vp.Min.Y) + 0.5) / float32(vp.Dy()),
			}
			f.Out = [gpu.MaxAttachments]mgl32.Vec4{}
			p.kernel(f)
			for i, tex := range t {
				if tex != nil {
					tex.set(x, y, f.Out[i])
				}
			}
		}
	}

	ctx.draws++
}

// ReadPixels implements the gpu.Context interface.
func (ctx *Context) ReadPixels(x, y, width, height int) ([]uint8, error) {
	var tex *texture
	if ctx.bound == gpu.Surface {
		tex = ctx.surface
	} else {
		f := ctx.framebuffers[ctx.bound]
		tex = ctx.textures[f.attachments[0]]
		if tex == nil {
			return nil, fmt.Errorf("headless: read pixels: framebuffer %d has no color attachment 0", ctx.bound)
		}
	}

	r := image.Rect(x, y, x+width, y+height)
	if !r.In(image.Rect(0, 0, tex.width, tex.height)) {
		return nil, fmt.Errorf("headless: read pixels: %v outside of %dx%d", r, tex.width, tex.height)
	}

	pix := make([]uint8, 0, width*height*4)
	for j := r.Min.Y; j < r.Max.Y; j++ {
		for i := r.Min.X; i < r.Max.X; i++ {
			c := tex.at(i, j)
			pix = append(pix, toByte(c[0]), toByte(c[1]), toByte(c[2]), toByte(c[3]))
		}
	}
	return pix, nil
}
