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

package framebuffer_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/test"
)

var red = mgl32.Vec4{1, 0, 0, 1}

// solidCopier copies the first texel of the source to every texel of the new
// texture. this is sufficient for testing with textures that are filled with
// a single colour.
type solidCopier struct {
	ctx    *headless.Context
	copies int
	fail   bool
}

func (c *solidCopier) Copy(src gpu.Texture, width, height int, format gpu.Format) (gpu.Texture, error) {
	if c.fail {
		return 0, errors.New("copy failed")
	}
	tex, err := c.ctx.CreateTexture(width, height, format)
	if err != nil {
		return 0, err
	}
	c.ctx.Fill(tex, c.ctx.Pixel(src, 0, 0))
	c.copies++
	return tex, nil
}

func legacy(t *testing.T, opts headless.Options) (*headless.Context, gpu.Capabilities) {
	t.Helper()
	cnv := headless.NewCanvas(1, 1, opts)
	ctx, err := cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)
	caps := gpu.Capabilities{MaxDrawBuffers: 1}
	if ctx.Extension(gpu.ExtDrawBuffers) {
		caps.DrawBuffers = true
		caps.MaxDrawBuffers = ctx.MaxDrawBuffers()
	}
	return ctx.(*headless.Context), caps
}

func TestDefaults(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{})
	test.DemandSuccess(t, err)

	w, h := fbo.Size()
	test.ExpectEquality(t, w, framebuffer.DefaultWidth)
	test.ExpectEquality(t, h, framebuffer.DefaultHeight)
	test.ExpectEquality(t, fbo.Outputs(), 1)
	test.ExpectFailure(t, fbo.Feedback())
	test.ExpectFailure(t, fbo.AutoSwap())
	test.ExpectEquality(t, fbo.Format(), gpu.RGBA8)
	test.ExpectEquality(t, ctx.Textures(), 1)

	// feedback FBOs swap automatically unless manual swap is requested
	fbo, err = framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, fbo.AutoSwap())
	test.ExpectEquality(t, ctx.Textures(), 3)

	fbo, err = framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true, ManualSwap: true})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, fbo.AutoSwap())

	fbo.Destroy()
	test.ExpectEquality(t, ctx.Textures(), 3)
}

func TestOutputRange(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{DrawBuffers: 16})
	_, err := framebuffer.New(ctx, caps, framebuffer.Config{Outputs: 17})
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ConfigError))
	_, err = framebuffer.New(ctx, caps, framebuffer.Config{Outputs: -1})
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ConfigError))
	_, err = framebuffer.New(ctx, caps, framebuffer.Config{Outputs: 16})
	test.ExpectSuccess(t, err)
}

func TestSlotRange(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, fbo.ValidSlot(0))
	test.ExpectFailure(t, fbo.ValidSlot(1))
	test.ExpectFailure(t, fbo.ValidSlot(-1))

	// slots that do not exist have no texture
	test.ExpectEquality(t, fbo.Output(5, false), gpu.Texture(0))
	test.ExpectEquality(t, fbo.Output(-1, true), gpu.Texture(0))
	test.ExpectEquality(t, fbo.Write(5), gpu.Texture(0))
	test.ExpectSuccess(t, fbo.Output(0, false) != 0)
}

func TestCapability(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Outputs: 3})
	test.ExpectSuccess(t, curated.Is(err, framebuffer.CapabilityError))
	test.ExpectSuccess(t, fbo == nil)

	// no textures have been created
	test.ExpectEquality(t, ctx.Textures(), 0)

	ctx, caps = legacy(t, headless.Options{DrawBuffers: 4})
	fbo, err = framebuffer.New(ctx, caps, framebuffer.Config{Outputs: 3, Feedback: true})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fbo.Outputs(), 3)
	test.ExpectEquality(t, ctx.Textures(), 6)

	// every output is attached
	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, ctx.Attachment(fbo.Framebuffer(), i), fbo.Write(i))
	}

	_, err = framebuffer.New(ctx, caps, framebuffer.Config{Outputs: 5})
	test.ExpectSuccess(t, curated.Is(err, framebuffer.CapabilityError))
}

func TestSwapInvolution(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{DrawBuffers: 2})

	for _, cfg := range []framebuffer.Config{
		{Feedback: true},
		{Feedback: true, ManualSwap: true},
		{Feedback: true, Outputs: 2},
	} {
		fbo, err := framebuffer.New(ctx, caps, cfg)
		test.DemandSuccess(t, err)

		w, r := fbo.Indices()
		test.ExpectEquality(t, w, 1-r)
		out := fbo.Output(0, false)

		fbo.Swap()
		sw, sr := fbo.Indices()
		test.ExpectEquality(t, sw, r)
		test.ExpectEquality(t, sr, w)
		test.ExpectInequality(t, fbo.Output(0, false), out)

		fbo.Swap()
		sw, sr = fbo.Indices()
		test.ExpectEquality(t, sw, w)
		test.ExpectEquality(t, sr, r)
		test.ExpectEquality(t, fbo.Output(0, false), out)
	}
}

func TestSwapWithoutFeedback(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{})
	test.DemandSuccess(t, err)

	out := fbo.Output(0, false)
	test.ExpectEquality(t, out, fbo.Write(0))
	fbo.Swap()
	test.ExpectEquality(t, fbo.Output(0, true), out)
	fbo.Update()
	test.ExpectEquality(t, fbo.Output(0, false), out)
}

func TestNoAliasing(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{DrawBuffers: 3})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true, Outputs: 3})
	test.DemandSuccess(t, err)

	for frame := 0; frame < 4; frame++ {
		fbo.Update()
		test.ExpectEquality(t, ctx.Bound(), fbo.Framebuffer())
		for i := 0; i < fbo.Outputs(); i++ {
			out := fbo.Output(i, false)
			test.ExpectEquality(t, ctx.Attachment(fbo.Framebuffer(), i), fbo.Write(i))
			for j := 0; j < fbo.Outputs(); j++ {
				test.ExpectInequality(t, out, ctx.Attachment(fbo.Framebuffer(), j))
			}
		}
	}
	test.ExpectSuccess(t, ctx.Error())
}

func TestManualSwap(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{DrawBuffers: 2})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true, ManualSwap: true, Outputs: 2})
	test.DemandSuccess(t, err)

	// update does not swap
	w, _ := fbo.Indices()
	fbo.Update()
	uw, _ := fbo.Indices()
	test.ExpectEquality(t, uw, w)

	// a swapping output request swaps every slot
	a := fbo.Output(0, false)
	b := fbo.Output(1, false)
	test.ExpectInequality(t, fbo.Output(0, true), a)
	test.ExpectInequality(t, fbo.Output(1, false), b)

	// a swap request is ignored by auto swapping FBOs
	fbo, err = framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
	test.DemandSuccess(t, err)
	a = fbo.Output(0, false)
	test.ExpectEquality(t, fbo.Output(0, true), a)
}

func TestResizePreserves(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
	test.DemandSuccess(t, err)

	// a completed draw is in the readable texture
	ctx.Fill(fbo.Output(0, false), red)

	cp := &solidCopier{ctx: ctx}
	changed, err := fbo.Resize(20, 10, cp)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, changed)
	test.ExpectEquality(t, cp.copies, 1)

	w, h := fbo.Size()
	test.ExpectEquality(t, w, 20)
	test.ExpectEquality(t, h, 10)

	// the copy is attached for writing and the read texture is empty
	test.ExpectEquality(t, ctx.Attachment(fbo.Framebuffer(), 0), fbo.Write(0))
	test.ExpectEquality(t, ctx.Pixel(fbo.Write(0), 19, 9), red)
	test.ExpectEquality(t, ctx.Pixel(fbo.Output(0, false), 0, 0), mgl32.Vec4{})

	// after the next update, which swaps, the content is the input of the pass
	fbo.Update()
	out := fbo.Output(0, false)
	tw, th, _ := ctx.TextureSize(out)
	test.ExpectEquality(t, tw, 20)
	test.ExpectEquality(t, th, 10)
	test.ExpectEquality(t, ctx.Pixel(out, 10, 5), red)

	// old textures are deleted
	test.ExpectEquality(t, ctx.Textures(), 2)

	// same size is a no-op
	changed, err = fbo.Resize(20, 10, cp)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, changed)
	test.ExpectEquality(t, cp.copies, 1)
}

func TestResizeDiscards(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{})
	test.DemandSuccess(t, err)

	ctx.Fill(fbo.Output(0, false), red)
	old := fbo.Output(0, false)

	// no copier is required
	changed, err := fbo.Resize(8, 8, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, changed)

	out := fbo.Output(0, false)
	test.ExpectInequality(t, out, old)
	test.ExpectEquality(t, ctx.Pixel(out, 0, 0), mgl32.Vec4{})
	test.ExpectEquality(t, ctx.Attachment(fbo.Framebuffer(), 0), out)
	test.ExpectEquality(t, ctx.Textures(), 1)
}

func TestResizeFailure(t *testing.T) {
	ctx, caps := legacy(t, headless.Options{})
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
	test.DemandSuccess(t, err)

	_, err = fbo.Resize(8, 8, nil)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ConfigError))

	out := fbo.Output(0, false)
	_, err = fbo.Resize(8, 8, &solidCopier{ctx: ctx, fail: true})
	test.ExpectFailure(t, err)

	// the FBO is unchanged
	w, _ := fbo.Size()
	test.ExpectEquality(t, w, framebuffer.DefaultWidth)
	test.ExpectEquality(t, fbo.Output(0, false), out)
	test.ExpectEquality(t, ctx.Textures(), 2)

	// invalid dimensions are ignored
	changed, err := fbo.Resize(0, 8, nil)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, changed)
}

func TestFloatFormat(t *testing.T) {
	ctx, _ := legacy(t, headless.Options{FloatTextures: true, ColorBufferFloat: true})
	ctx.Extension(gpu.ExtFloatTexture)
	ctx.Extension(gpu.ExtColorBufferFloat)

	caps := gpu.Capabilities{FloatTextures: true, ColorBufferFloat: true, MaxDrawBuffers: 1}
	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fbo.Format(), gpu.RGBA16F)
	test.ExpectEquality(t, ctx.TextureFormat(fbo.Output(0, false)), gpu.RGBA16F)
}
