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

package renderer

import (
	"fmt"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/shader"
	"github.com/jetsetilly/shaderloop/shaders"
)

// BaseVertex returns a new instance of the shared vertex shader. The shader
// sets the texelSize uniform from the size of the pass being drawn.
func BaseVertex() *shader.Shader {
	return shader.New(gpu.Vertex, shaders.BaseVertex,
		shader.Uniform{
			Name: "texelSize",
			Type: shader.Vec2,
			Source: shader.Computed(func(env shader.Environment) any {
				return env.TexelSize()
			}),
		},
	)
}

// PassSource is a uniform Source for the readable texture of another pass.
type PassSource struct {
	Pass *Renderer
	Slot int
}

// Value implements the shader.Source interface.
func (o PassSource) Value(_ shader.Environment) (any, error) {
	return o.Pass.Output(o.Slot)
}

// PassOutput returns a uniform Source for the readable texture of another
// pass. The value is taken at the moment of upload so a pass later in the
// frame sees the result of an earlier pass in the same frame.
func PassOutput(pass *Renderer, slot int) shader.Source {
	return PassSource{Pass: pass, Slot: slot}
}

type fboOutput struct {
	fbo  *framebuffer.FBO
	slot int
	swap bool
}

func (o fboOutput) Value(_ shader.Environment) (any, error) {
	if !o.fbo.ValidSlot(o.slot) {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("fbo %s: no output slot %d", o.fbo, o.slot))
	}
	return o.fbo.Output(o.slot, o.swap), nil
}

// FBOOutput is a uniform Source for the readable texture of an FBO. If swap
// is true the FBO is swapped before the texture is taken, which only has an
// effect for FBOs in manual swap mode.
func FBOOutput(fbo *framebuffer.FBO, slot int, swap bool) shader.Source {
	return fboOutput{fbo: fbo, slot: slot, swap: swap}
}
