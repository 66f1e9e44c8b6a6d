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
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/gpu"
)

// Kernel is the software equivalent of a fragment shader.
type Kernel func(f *Fragment)

var registry = struct {
	crit    sync.Mutex
	kernels map[string]Kernel
}{
	kernels: make(map[string]Kernel),
}

// Register a kernel for all contexts. The source must match the fragment
// shader source exactly.
func Register(source string, k Kernel) {
	registry.crit.Lock()
	defer registry.crit.Unlock()
	registry.kernels[source] = k
}

func lookup(source string) (Kernel, bool) {
	registry.crit.Lock()
	defer registry.crit.Unlock()
	k, ok := registry.kernels[source]
	return k, ok
}

// Fragment is the input and output of a single Kernel invocation.
type Fragment struct {
	// the pixel being drawn, relative to the bottom left of the target
	X, Y int

	// normalised coordinates of the pixel centre within the viewport. this
	// corresponds to the vUv varying of the base vertex shader
	UV mgl32.Vec2

	// one output per draw buffer. all outputs are zero when the kernel is
	// called
	Out [gpu.MaxAttachments]mgl32.Vec4

	ctx *Context
	prg *program
}

func (f *Fragment) uniform(name string) []float32 {
	loc, ok := f.prg.locations[name]
	if !ok {
		return nil
	}
	return f.prg.values[loc]
}

// Float returns the value of a float uniform.
func (f *Fragment) Float(name string) float32 {
	v := f.uniform(name)
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

// Floats returns the value of a float array uniform.
func (f *Fragment) Floats(name string) []float32 {
	return f.uniform(name)
}

// Int returns the value of an int or sampler uniform.
func (f *Fragment) Int(name string) int32 {
	return int32(f.Float(name))
}

// Vec2 returns the value of a vec2 uniform.
func (f *Fragment) Vec2(name string) mgl32.Vec2 {
	var r mgl32.Vec2
	copy(r[:], f.uniform(name))
	return r
}

// Vec3 returns the value of a vec3 uniform.
func (f *Fragment) Vec3(name string) mgl32.Vec3 {
	var r mgl32.Vec3
	copy(r[:], f.uniform(name))
	return r
}

// Vec4 returns the value of a vec4 uniform.
func (f *Fragment) Vec4(name string) mgl32.Vec4 {
	var r mgl32.Vec4
	copy(r[:], f.uniform(name))
	return r
}

// Sample the texture bound to the texture unit named by the sampler uniform.
// The sample uses nearest filtering and clamps to the edge.
func (f *Fragment) Sample(sampler string, uv mgl32.Vec2) mgl32.Vec4 {
	unit := int(f.Int(sampler))
	if unit < 0 || unit >= len(f.ctx.units) {
		return mgl32.Vec4{}
	}

	id := f.ctx.units[unit]
	tex, ok := f.ctx.textures[id]
	if !ok {
		return mgl32.Vec4{}
	}

	if f.ctx.isAttached(id) {
		f.ctx.setError("draw: feedback loop: texture %d is sampled and attached to framebuffer %d", id, f.ctx.bound)
	}

	return tex.sample(uv)
}
