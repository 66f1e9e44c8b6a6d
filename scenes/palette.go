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

package scenes

import (
	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
)

// Palette draws a cycling palette and its inverse with one draw into two
// render targets. The result is shown with the palette on the left and the
// inverse on the right.
type Palette struct {
	animation.Hooks

	palette *renderer.Renderer
	split   *renderer.Renderer
}

// PaletteSplit is the horizontal position of the split between the two
// outputs.
const PaletteSplit = 0.5

// NewPalette is the preferred method of initialisation for the Palette type.
func NewPalette(vertex *shader.Shader) (*Palette, error) {
	s := &Palette{}

	var err error

	s.palette, err = renderer.New(renderer.Config{
		Name:   "palette",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, paletteFragment,
			shader.Uniform{Name: "uTime", Type: shader.Float, Source: shader.Computed(func(env shader.Environment) any {
				return env.Elapsed.Seconds()
			})},
		),
		FBOConfig: framebuffer.Config{Outputs: 2},
	})
	if err != nil {
		return nil, err
	}

	s.split, err = renderer.New(renderer.Config{
		Name:   "split",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, splitFragment,
			shader.Uniform{Name: "uLeft", Type: shader.Sampler, Source: renderer.PassOutput(s.palette, 0)},
			shader.Uniform{Name: "uRight", Type: shader.Sampler, Source: renderer.PassOutput(s.palette, 1)},
			shader.Uniform{Name: "uSplit", Type: shader.Float, Source: shader.Static(PaletteSplit)},
		),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Passes implements the animation.Scene interface.
func (s *Palette) Passes() []*renderer.Renderer {
	return []*renderer.Renderer{s.palette, s.split}
}
