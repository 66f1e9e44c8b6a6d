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
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
	"github.com/jetsetilly/shaderloop/shaders"
)

// Trail draws a spot under the pointer into a feedback buffer. The previous
// content of the buffer fades a little every frame.
type Trail struct {
	animation.Hooks

	pointer mgl32.Vec2
	aspect  float32

	trail   *renderer.Renderer
	display *renderer.Renderer
}

// Trail parameters.
const (
	TrailDecay  = 0.95
	TrailRadius = 0.05
)

// NewTrail is the preferred method of initialisation for the Trail type.
func NewTrail(vertex *shader.Shader) (*Trail, error) {
	s := &Trail{
		pointer: mgl32.Vec2{0.5, 0.5},
		aspect:  1.0,
	}

	var err error

	s.trail, err = renderer.New(renderer.Config{
		Name:   "trail",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, trailFragment,
			shader.Uniform{Name: "uPointer", Type: shader.Vec2, Source: shader.Computed(func(_ shader.Environment) any {
				return s.pointer
			})},
			shader.Uniform{Name: "uAspect", Type: shader.Float, Source: shader.Computed(func(_ shader.Environment) any {
				return s.aspect
			})},
			shader.Uniform{Name: "uDecay", Type: shader.Float, Source: shader.Static(TrailDecay)},
			shader.Uniform{Name: "uRadius", Type: shader.Float, Source: shader.Static(TrailRadius)},
		),
		AutoFeedback: true,
	})
	if err != nil {
		return nil, err
	}

	s.display, err = display(vertex, s.trail)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// display returns a pass that copies the output of a pass to the surface.
func display(vertex *shader.Shader, input *renderer.Renderer) (*renderer.Renderer, error) {
	return renderer.New(renderer.Config{
		Name:   "display",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, shaders.Copy,
			shader.Uniform{Name: "uSampler", Type: shader.Sampler, Source: renderer.PassOutput(input, 0)},
		),
	})
}

// Passes implements the animation.Scene interface.
func (s *Trail) Passes() []*renderer.Renderer {
	return []*renderer.Renderer{s.trail, s.display}
}

// Resize implements the animation.Scene interface.
func (s *Trail) Resize(width, height int) {
	if height > 0 {
		s.aspect = float32(width) / float32(height)
	}
}

// PointerMove implements the animation.Scene interface.
func (s *Trail) PointerMove(pos, _ mgl32.Vec2) {
	s.pointer = pos
}
