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

package headless_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/test"
)

const vertexSource = "attribute vec2 aPosition; varying vec2 vUv;"
const solidSource = "uniform vec4 uColor; // solid"
const copySource = "uniform sampler2D uSampler; // copy"
const splitSource = "// split into two outputs"

func solid(f *headless.Fragment) {
	f.Out[0] = f.Vec4("uColor")
}

func newContext(t *testing.T, opts headless.Options) *headless.Context {
	t.Helper()
	cnv := headless.NewCanvas(4, 4, opts)
	api := gpu.Legacy
	if opts.Modern {
		api = gpu.Modern
	}
	ctx, err := cnv.Acquire(api, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)
	return ctx.(*headless.Context)
}

func program(t *testing.T, ctx *headless.Context, fragment string) gpu.Program {
	t.Helper()
	vs, err := ctx.CompileShader(gpu.Vertex, vertexSource)
	test.DemandSuccess(t, err)
	fs, err := ctx.CompileShader(gpu.Fragment, fragment)
	test.DemandSuccess(t, err)
	prg, err := ctx.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)
	return prg
}

func quad(t *testing.T, ctx *headless.Context, prg gpu.Program) {
	t.Helper()
	buf, err := ctx.CreateBuffer([]float32{-1, 1, 1, 1, 1, -1, -1, 1, 1, -1, -1, -1})
	test.DemandSuccess(t, err)
	ctx.VertexAttrib(ctx.AttribLocation(prg, "aPosition"), buf, 2)
}

func TestAcquire(t *testing.T) {
	cnv := headless.NewCanvas(1, 1, headless.Options{})
	_, err := cnv.Acquire(gpu.Modern, gpu.DefaultAttributes)
	test.ExpectSuccess(t, curated.Is(err, gpu.UnsupportedAPI))

	_, err = cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(cnv.Requested()), 2)

	cnv = headless.NewCanvas(1, 1, headless.Options{Unavailable: true})
	_, err = cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.ExpectFailure(t, err)
}

func TestCompile(t *testing.T) {
	ctx := newContext(t, headless.Options{})

	_, err := ctx.CompileShader(gpu.Fragment, "  \n")
	test.ExpectFailure(t, err)

	_, err = ctx.CompileShader(gpu.Fragment, "void main() {\n#error broken\n}")
	test.DemandFailure(t, err)
	test.ExpectEquality(t, err.Error(), "ERROR: 0:2: '#error' : broken")

	// no kernel registered for this source
	vs, err := ctx.CompileShader(gpu.Vertex, vertexSource)
	test.DemandSuccess(t, err)
	fs, err := ctx.CompileShader(gpu.Fragment, "unregistered")
	test.DemandSuccess(t, err)
	_, err = ctx.LinkProgram(vs, fs)
	test.ExpectFailure(t, err)

	// shader stages swapped
	_, err = ctx.LinkProgram(fs, vs)
	test.ExpectFailure(t, err)
}

func TestSolidDraw(t *testing.T) {
	ctx := newContext(t, headless.Options{})
	ctx.Register(solidSource, solid)

	prg := program(t, ctx, solidSource)
	test.ExpectEquality(t, ctx.UniformLocation(prg, "uNotPresent"), int32(-1))

	ctx.UseProgram(prg)
	quad(t, ctx, prg)
	ctx.Uniform4fv(ctx.UniformLocation(prg, "uColor"), []float32{0.5, 0.25, 1.0, 1.0})
	ctx.Viewport(0, 0, 4, 4)
	ctx.DrawTriangles(0, 6)
	test.DemandSuccess(t, ctx.Error())
	test.ExpectEquality(t, ctx.Draws(), 1)

	// the surface is 8 bit so the colour will have been quantised
	c := ctx.Pixel(0, 3, 3)
	test.ExpectApproximate(t, c[0], 0.5, 1.0/255)
	test.ExpectApproximate(t, c[1], 0.25, 1.0/255)
	test.ExpectEquality(t, c[2], float32(1.0))

	pix, err := ctx.ReadPixels(0, 0, 1, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pix[0], uint8(128))
	test.ExpectEquality(t, pix[3], uint8(255))
}

func TestDrawWithoutGeometry(t *testing.T) {
	ctx := newContext(t, headless.Options{})
	ctx.Register(solidSource, solid)
	prg := program(t, ctx, solidSource)
	ctx.UseProgram(prg)
	ctx.DrawTriangles(0, 6)
	test.ExpectFailure(t, ctx.Error())

	// error has been cleared
	test.ExpectSuccess(t, ctx.Error())
}

func TestFeedbackLoop(t *testing.T) {
	ctx := newContext(t, headless.Options{})
	ctx.Register(copySource, func(f *headless.Fragment) {
		f.Out[0] = f.Sample("uSampler", f.UV)
	})

	tex, err := ctx.CreateTexture(4, 4, gpu.RGBA8)
	test.DemandSuccess(t, err)
	fb, err := ctx.CreateFramebuffer()
	test.DemandSuccess(t, err)

	ctx.BindFramebuffer(fb)
	ctx.AttachTexture(0, tex)

	prg := program(t, ctx, copySource)
	ctx.UseProgram(prg)
	quad(t, ctx, prg)
	ctx.BindTexture(0, tex)
	ctx.Uniform1i(ctx.UniformLocation(prg, "uSampler"), 0)
	ctx.DrawTriangles(0, 6)
	test.ExpectFailure(t, ctx.Error())

	// sampling a different texture is fine
	src, err := ctx.CreateTexture(2, 2, gpu.RGBA8)
	test.DemandSuccess(t, err)
	ctx.Fill(src, mgl32.Vec4{0, 1, 0, 1})
	ctx.BindTexture(0, src)
	ctx.DrawTriangles(0, 6)
	test.ExpectSuccess(t, ctx.Error())
	test.ExpectEquality(t, ctx.Pixel(tex, 3, 0), mgl32.Vec4{0, 1, 0, 1})
}

func TestMultipleRenderTargets(t *testing.T) {
	ctx := newContext(t, headless.Options{DrawBuffers: 4})
	ctx.Register(splitSource, func(f *headless.Fragment) {
		f.Out[0] = mgl32.Vec4{1, 0, 0, 1}
		f.Out[1] = mgl32.Vec4{0, 0, 1, 1}
	})

	// draw buffers extension has not been enabled
	test.ExpectEquality(t, ctx.MaxDrawBuffers(), 1)
	test.ExpectSuccess(t, ctx.Extension(gpu.ExtDrawBuffers))
	test.ExpectEquality(t, ctx.MaxDrawBuffers(), 4)

	a, _ := ctx.CreateTexture(2, 2, gpu.RGBA8)
	b, _ := ctx.CreateTexture(2, 2, gpu.RGBA8)
	fb, _ := ctx.CreateFramebuffer()
	ctx.BindFramebuffer(fb)
	ctx.AttachTexture(0, a)
	ctx.AttachTexture(1, b)
	ctx.DrawBuffers(2)

	prg := program(t, ctx, splitSource)
	ctx.UseProgram(prg)
	quad(t, ctx, prg)
	ctx.Viewport(0, 0, 2, 2)
	ctx.DrawTriangles(0, 6)
	test.DemandSuccess(t, ctx.Error())

	test.ExpectEquality(t, ctx.Pixel(a, 1, 1), mgl32.Vec4{1, 0, 0, 1})
	test.ExpectEquality(t, ctx.Pixel(b, 1, 1), mgl32.Vec4{0, 0, 1, 1})

	ctx.DrawBuffers(5)
	test.ExpectFailure(t, ctx.Error())
}

func TestFloatTextures(t *testing.T) {
	ctx := newContext(t, headless.Options{FloatTextures: true})
	_, err := ctx.CreateTexture(1, 1, gpu.RGBA16F)
	test.ExpectFailure(t, err)

	test.ExpectSuccess(t, ctx.Extension(gpu.ExtFloatTexture))
	_, err = ctx.CreateTexture(1, 1, gpu.RGBA16F)
	test.ExpectSuccess(t, err)

	test.ExpectFailure(t, ctx.Extension(gpu.ExtColorBufferFloat))
	test.ExpectEquality(t, len(ctx.Probed()), 2)
}

func TestMaxTextureSize(t *testing.T) {
	ctx := newContext(t, headless.Options{MaxTextureSize: 8})
	_, err := ctx.CreateTexture(8, 8, gpu.RGBA8)
	test.ExpectSuccess(t, err)
	_, err = ctx.CreateTexture(9, 1, gpu.RGBA8)
	test.ExpectFailure(t, err)
	_, err = ctx.CreateTexture(1, 9, gpu.RGBA8)
	test.ExpectFailure(t, err)
}

func TestCanvasFrames(t *testing.T) {
	cnv := headless.NewCanvas(1, 1, headless.Options{})
	test.ExpectFailure(t, cnv.Tick())

	var frames int
	var last time.Duration
	var request func()
	request = func() {
		cnv.RequestFrame(func(now time.Duration) {
			frames++
			last = now
			request()
		})
	}
	request()

	test.ExpectEquality(t, cnv.Run(3), 3)
	test.ExpectEquality(t, frames, 3)
	test.ExpectEquality(t, last, 3*headless.DefaultStep)
	test.ExpectSuccess(t, cnv.Pending())
}
