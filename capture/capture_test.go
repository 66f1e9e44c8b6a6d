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

package capture_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/capture"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/test"
)

func TestRead(t *testing.T) {
	cnv := headless.NewCanvas(2, 2, headless.Options{})
	_, err := cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)
	ctx := cnv.Context()

	// the bottom row is red and the top row is blue
	tex, err := ctx.CreateTexture(2, 2, gpu.RGBA8)
	test.DemandSuccess(t, err)
	fb, err := ctx.CreateFramebuffer()
	test.DemandSuccess(t, err)
	ctx.BindFramebuffer(fb)
	ctx.AttachTexture(0, tex)
	ctx.Fill(tex, mgl32.Vec4{0, 0, 1, 1})
	ctx.BindFramebuffer(gpu.Surface)
	ctx.Fill(headless.Surface, mgl32.Vec4{0, 0, 1, 1})

	img, err := capture.Read(ctx, fb, 2, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{0, 0, 255, 255})

	_, err = capture.Read(ctx, fb, 4, 4)
	test.ExpectFailure(t, err)

	_, err = capture.Read(ctx, fb, 0, 4)
	test.ExpectFailure(t, err)
}

func TestFlip(t *testing.T) {
	cnv := headless.NewCanvas(1, 2, headless.Options{})
	_, err := cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)
	ctx := cnv.Context()

	// draw the bottom row of the surface red
	const bottom = "// bottom row"
	ctx.Register(bottom, func(f *headless.Fragment) {
		if f.Y == 0 {
			f.Out[0] = mgl32.Vec4{1, 0, 0, 1}
		} else {
			f.Out[0] = mgl32.Vec4{0, 0, 0, 1}
		}
	})
	vs, _ := ctx.CompileShader(gpu.Vertex, "attribute vec2 aPosition;")
	fs, _ := ctx.CompileShader(gpu.Fragment, bottom)
	prg, err := ctx.LinkProgram(vs, fs)
	test.DemandSuccess(t, err)
	ctx.UseProgram(prg)
	buf, _ := ctx.CreateBuffer([]float32{-1, 1, 1, 1, 1, -1, -1, 1, 1, -1, -1, -1})
	ctx.VertexAttrib(ctx.AttribLocation(prg, "aPosition"), buf, 2)
	ctx.Viewport(0, 0, 1, 2)
	ctx.DrawTriangles(0, 6)
	test.DemandSuccess(t, ctx.Error())

	img, err := capture.Read(ctx, gpu.Surface, 1, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{0, 0, 0, 255})
	test.ExpectEquality(t, img.RGBAAt(0, 1), color.RGBA{255, 0, 0, 255})
}

func TestScale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})

	test.ExpectEquality(t, capture.Scale(img, 1), img)

	scaled := capture.Scale(img, 3)
	test.ExpectEquality(t, scaled.Bounds(), image.Rect(0, 0, 6, 3))
	test.ExpectEquality(t, scaled.RGBAAt(2, 2), color.RGBA{})
	test.ExpectEquality(t, scaled.RGBAAt(3, 0), color.RGBA{255, 255, 255, 255})

	fit := capture.Fit(img, 4, 4)
	test.ExpectEquality(t, fit.Bounds(), image.Rect(0, 0, 4, 4))
}

func TestSave(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "frame.png")
	test.DemandSuccess(t, capture.Save(img, path))

	b, err := os.ReadFile(path)
	test.DemandSuccess(t, err)
	dec, err := png.Decode(bytes.NewReader(b))
	test.DemandSuccess(t, err)
	r, g, bl, _ := dec.At(1, 1).RGBA()
	test.ExpectEquality(t, [3]uint32{r >> 8, g >> 8, bl >> 8}, [3]uint32{10, 20, 30})

	test.DemandSuccess(t, capture.Save(img, filepath.Join(t.TempDir(), "frame.jpg")))

	err = capture.Save(img, filepath.Join(t.TempDir(), "missing", "frame.png"))
	test.ExpectFailure(t, err)
}
