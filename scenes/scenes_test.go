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

package scenes_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/scenes"
	"github.com/jetsetilly/shaderloop/test"
)

func setScene(t *testing.T, name string, width, height int, opts headless.Options) (*animation.Manager, *headless.Canvas, error) {
	t.Helper()
	cnv := headless.NewCanvas(width, height, opts)
	m, err := animation.NewManager(cnv, animation.Config{Quiet: true})
	test.DemandSuccess(t, err)

	s, err := scenes.Create(name, m.BaseVertex())
	test.DemandSuccess(t, err)

	return m, cnv, m.Set(s)
}

func TestList(t *testing.T) {
	l := scenes.List()
	test.DemandEquality(t, len(l), 3)
	test.ExpectEquality(t, l[0].Name, "diffuse")
	test.ExpectEquality(t, l[1].Name, "palette")
	test.ExpectEquality(t, l[2].Name, "trail")
	test.ExpectSuccess(t, l[1].MRT)

	_, err := scenes.Create("missing", nil)
	test.ExpectSuccess(t, curated.Is(err, scenes.UnknownScene))

	_, err = scenes.Create(scenes.Default, nil)
	test.ExpectSuccess(t, curated.Is(err, renderer.ConfigError))
}

func TestTrail(t *testing.T) {
	m, cnv, err := setScene(t, "trail", 64, 64, headless.Options{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.Start())

	// pointer over the centre of pixel (32, 32)
	cnv.MovePointer(32.5, 31.5)

	// the display pass shows the trail buffer from the previous frame
	test.ExpectEquality(t, cnv.Run(2), 2)
	test.DemandSuccess(t, m.Err())

	ctx := cnv.Context()
	test.ExpectEquality(t, ctx.Pixel(headless.Surface, 32, 32), mgl32.Vec4{1, 1, 1, 1})
	test.ExpectEquality(t, ctx.Pixel(headless.Surface, 0, 0), mgl32.Vec4{0, 0, 0, 1})

	// move the pointer away and the spot fades
	cnv.MovePointer(0, 64)
	test.ExpectEquality(t, cnv.Run(2), 2)
	test.ExpectApproximate(t, ctx.Pixel(headless.Surface, 32, 32)[0], scenes.TrailDecay, 2.0/255)

	// the trail survives a resize
	cnv.Resize(32, 32)
	test.DemandSuccess(t, m.Err())
	test.ExpectEquality(t, cnv.Run(2), 2)
	test.ExpectSuccess(t, ctx.Pixel(headless.Surface, 16, 16)[0] > 0.25)
}

func TestDiffuse(t *testing.T) {
	m, cnv, err := setScene(t, "diffuse", 16, 16, headless.Options{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.Start())

	ctx := cnv.Context()
	draws := ctx.Draws()
	test.ExpectEquality(t, cnv.Run(3), 3)
	test.DemandSuccess(t, m.Err())

	// stripes, four diffusion iterations and the display pass
	test.ExpectEquality(t, ctx.Draws()-draws, 3*(2+scenes.DiffuseIterations))

	var lit int
	for x := 0; x < 16; x++ {
		c := ctx.Pixel(headless.Surface, x, 8)
		if c[0] > 0 {
			lit++
		}
		test.ExpectSuccess(t, c[0] <= 1.0)
	}
	test.ExpectSuccess(t, lit > 0)
}

func TestPalette(t *testing.T) {
	_, _, err := setScene(t, "palette", 16, 16, headless.Options{})
	test.ExpectSuccess(t, curated.Has(err, framebuffer.CapabilityError))

	m, cnv, err := setScene(t, "palette", 16, 16, headless.Options{Modern: true, DrawBuffers: 4})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, m.Start())
	test.ExpectEquality(t, cnv.Run(1), 1)
	test.DemandSuccess(t, m.Err())

	ctx := cnv.Context()

	left := ctx.Pixel(headless.Surface, 1, 1)
	expected := scenes.PaletteColor(mgl32.Vec2{1.5 / 16, 1.5 / 16}, 0)
	for i := range expected {
		test.ExpectApproximate(t, left[i], expected[i], 1.0/255)
	}

	right := ctx.Pixel(headless.Surface, 14, 1)
	expected = scenes.PaletteColor(mgl32.Vec2{14.5 / 16, 1.5 / 16}, 0)
	for i := range expected {
		test.ExpectApproximate(t, right[i], 1-expected[i], 1.0/255)
	}
}
