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

package shader

import (
	"fmt"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
)

// Sentinal error patterns.
const (
	ConfigError  = "shader: %v"
	CompileError = "shader: compile: %v shader: %v"
)

// Shader is the source for a single stage and the uniforms it declares.
type Shader struct {
	stage    gpu.Stage
	source   string
	uniforms []Uniform

	// the context the shader has been compiled for. shaders can only be
	// compiled for one context at a time
	ctx    gpu.Context
	handle gpu.Shader
	refs   int
}

// New is the preferred method of initialisation for the Shader type.
func New(stage gpu.Stage, source string, uniforms ...Uniform) *Shader {
	return &Shader{
		stage:    stage,
		source:   source,
		uniforms: uniforms,
	}
}

func (sh *Shader) String() string {
	return fmt.Sprintf("%s shader (%d uniforms)", sh.stage, len(sh.uniforms))
}

// Stage returns the stage the shader source is written for.
func (sh *Shader) Stage() gpu.Stage {
	return sh.stage
}

// Source returns the shader source.
func (sh *Shader) Source() string {
	return sh.source
}

// Uniforms returns the declared uniforms, in declaration order. The returned
// slice must not be modified.
func (sh *Shader) Uniforms() []Uniform {
	return sh.uniforms
}

// Compiled returns true if the shader has a compiled shader object.
func (sh *Shader) Compiled() bool {
	return sh.refs > 0
}

// Compile the shader source. If the shader has already been compiled for
// the context then the existing handle is returned.
func (sh *Shader) Compile(ctx gpu.Context) (gpu.Shader, error) {
	if sh.refs > 0 {
		if sh.ctx != ctx {
			return 0, curated.Errorf(ConfigError, "shader is compiled for a different context")
		}
		sh.refs++
		return sh.handle, nil
	}

	h, err := ctx.CompileShader(sh.stage, sh.source)
	if err != nil {
		return 0, curated.Errorf(CompileError, sh.stage, err)
	}

	sh.ctx = ctx
	sh.handle = h
	sh.refs = 1
	logger.Logf(logger.Allow, "shader", "compiled %s", sh)

	return sh.handle, nil
}

// Release one reference to the compiled shader object. The shader object is
// deleted when there are no more references.
func (sh *Shader) Release() {
	if sh.refs == 0 {
		return
	}
	sh.refs--
	if sh.refs == 0 {
		sh.ctx.DeleteShader(sh.handle)
		sh.ctx = nil
		sh.handle = 0
	}
}
