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

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
)

// Type of a uniform.
type Type int

// List of valid Type values.
const (
	Float Type = iota
	Int
	Floats
	Vec2
	Vec3
	Vec4
	Sampler
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Floats:
		return "float[]"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Sampler:
		return "sampler2D"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Uniform describes a uniform declared by the shader source. A Uniform with
// a nil Source is not uploaded.
type Uniform struct {
	Name   string
	Type   Type
	Source Source
}

// Upload the value to the uniform location. The unit argument is only used by
// Sampler uniforms: the texture is bound to that unit and the uniform is set
// to the unit number.
func (u Uniform) Upload(ctx gpu.Context, loc int32, v any, unit int) error {
	switch u.Type {
	case Float:
		f, ok := toFloat(v)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform1f(loc, f)

	case Int:
		i, ok := toInt(v)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform1i(loc, i)

	case Floats:
		f, ok := v.([]float32)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform1fv(loc, f)

	case Vec2:
		f, ok := toVec(v, 2)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform2fv(loc, f)

	case Vec3:
		f, ok := toVec(v, 3)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform3fv(loc, f)

	case Vec4:
		f, ok := toVec(v, 4)
		if !ok {
			return u.mismatch(v)
		}
		ctx.Uniform4fv(loc, f)

	case Sampler:
		tex, ok := v.(gpu.Texture)
		if !ok {
			return u.mismatch(v)
		}
		ctx.BindTexture(unit, tex)
		ctx.Uniform1i(loc, int32(unit))

	default:
		return curated.Errorf(ConfigError, fmt.Sprintf("uniform %s: unknown type %v", u.Name, u.Type))
	}

	return nil
}

func (u Uniform) mismatch(v any) error {
	return curated.Errorf(ConfigError, fmt.Sprintf("uniform %s: cannot use %T as %v", u.Name, v, u.Type))
}

func toFloat(v any) (float32, bool) {
	switch v := v.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	}
	return 0, false
}

func toInt(v any) (int32, bool) {
	switch v := v.(type) {
	case int:
		return int32(v), true
	case int32:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toVec(v any, n int) ([]float32, bool) {
	var f []float32
	switch v := v.(type) {
	case mgl32.Vec2:
		f = v[:]
	case mgl32.Vec3:
		f = v[:]
	case mgl32.Vec4:
		f = v[:]
	case [2]float32:
		f = v[:]
	case [3]float32:
		f = v[:]
	case [4]float32:
		f = v[:]
	case []float32:
		f = v
	default:
		return nil, false
	}
	return f, len(f) == n
}
