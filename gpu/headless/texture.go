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
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/gpu"
)

type texture struct {
	width  int
	height int
	format gpu.Format

	// row zero is the bottom row
	pix []mgl32.Vec4
}

func newTexture(width, height int, format gpu.Format) *texture {
	return &texture{
		width:  width,
		height: height,
		format: format,
		pix:    make([]mgl32.Vec4, width*height),
	}
}

func (tex *texture) at(x, y int) mgl32.Vec4 {
	return tex.pix[y*tex.width+x]
}

func (tex *texture) set(x, y int, c mgl32.Vec4) {
	if x < 0 || y < 0 || x >= tex.width || y >= tex.height {
		return
	}
	if tex.format == gpu.RGBA8 {
		for i := range c {
			c[i] = quantise(c[i])
		}
	}
	tex.pix[y*tex.width+x] = c
}

func (tex *texture) fill(c mgl32.Vec4) {
	for y := 0; y < tex.height; y++ {
		for x := 0; x < tex.width; x++ {
			tex.set(x, y, c)
		}
	}
}

// nearest sample with clamp to edge.
func (tex *texture) sample(uv mgl32.Vec2) mgl32.Vec4 {
	if tex.width == 0 || tex.height == 0 {
		return mgl32.Vec4{}
	}
	x := clamp(int(math.Floor(float64(uv[0]*float32(tex.width)))), 0, tex.width-1)
	y := clamp(int(math.Floor(float64(uv[1]*float32(tex.height)))), 0, tex.height-1)
	return tex.at(x, y)
}

// quantise value to an unsigned normalised 8 bit value.
func quantise(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return float32(math.Round(float64(v)*255)) / 255
}

func toByte(v float32) uint8 {
	return uint8(quantise(v)*255 + 0.5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
