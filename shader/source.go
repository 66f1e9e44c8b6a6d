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
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Environment is the per-frame context passed to computed uniform sources.
type Environment struct {
	// number of frames completed
	Frame int

	// time since the clock was started, not including paused time. Delta is
	// the duration of the previous frame
	Elapsed time.Duration
	Delta   time.Duration

	// size of the render target in pixels. This is the size of the pass
	// being drawn, which is the viewport unless the pass has a fixed size
	Width  int
	Height int

	// normalised pointer position and the displacement since the previous
	// pointer event
	Pointer         mgl32.Vec2
	PointerVelocity mgl32.Vec2

	// device orientation (alpha, beta, gamma) in degrees
	Orientation mgl32.Vec3
}

// TexelSize returns the size of a single pixel in normalised coordinates.
func (env Environment) TexelSize() mgl32.Vec2 {
	if env.Width <= 0 || env.Height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{1.0 / float32(env.Width), 1.0 / float32(env.Height)}
}

// AspectRatio is width divided by height.
func (env Environment) AspectRatio() float32 {
	if env.Height <= 0 {
		return 0
	}
	return float32(env.Width) / float32(env.Height)
}

// Source supplies a value for a uniform. The value is resolved once per frame,
// for every render pass that uses the shader.
type Source interface {
	Value(env Environment) (any, error)
}

type static struct {
	value any
}

func (s static) Value(_ Environment) (any, error) {
	return s.value, nil
}

// Static returns a Source that always resolves to v.
func Static(v any) Source {
	return static{value: v}
}

// Computed is a Source that calls the function with the Environment.
type Computed func(env Environment) any

// Value implements the Source interface.
func (c Computed) Value(env Environment) (any, error) {
	return c(env), nil
}
