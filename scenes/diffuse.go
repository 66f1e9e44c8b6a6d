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
	"image"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
)

// Diffuse draws scrolling stripes and diffuses them with an iterative
// feedback pass. The diffusion pass has a fixed size so the amount of blur
// does not depend on the size of the surface.
type Diffuse struct {
	animation.Hooks

	stripes *renderer.Renderer
	diffuse *renderer.Renderer
	display *renderer.Renderer
}

// Diffuse parameters.
const (
	DiffuseBands      = 8.0
	DiffuseAmount     = 0.8
	DiffuseIterations = 4
	DiffuseSize       = 128
)

// NewDiffuse is the preferred method of initialisation for the Diffuse type.
func NewDiffuse(vertex *shader.Shader) (*Diffuse, error) {
	s := &Diffuse{}

	var err error

	s.stripes, err = renderer.New(renderer.Config{
		Name:   "stripes",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, stripesFragment,
			shader.Uniform{Name: "uTime", Type: shader.Float, Source: shader.Computed(func(env shader.Environment) any {
				return env.Elapsed.Seconds()
			})},
			shader.Uniform{Name: "uBands", Type: shader.Float, Source: shader.Static(DiffuseBands)},
		),
	})
	if err != nil {
		return nil, err
	}

	s.diffuse, err = renderer.New(renderer.Config{
		Name:   "diffuse",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, diffuseFragment,
			shader.Uniform{Name: "uSource", Type: shader.Sampler, Source: renderer.PassOutput(s.stripes, 0)},
			shader.Uniform{Name: "uAmount", Type: shader.Float, Source: shader.Static(DiffuseAmount)},
		),
		AutoFeedback: true,
		Iterations:   DiffuseIterations,
		FixedSize:    image.Point{X: DiffuseSize, Y: DiffuseSize},
	})
	if err != nil {
		return nil, err
	}

	s.display, err = display(vertex, s.diffuse)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Passes implements the animation.Scene interface.
func (s *Diffuse) Passes() []*renderer.Renderer {
	return []*renderer.Renderer{s.stripes, s.diffuse, s.display}
}
