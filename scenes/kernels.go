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
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/gpu/headless"
)

// kernels for the software GPU. each kernel is equivalent to the fragment
// shader it is registered for.
func init() {
	headless.Register(trailFragment, trailKernel)
	headless.Register(stripesFragment, stripesKernel)
	headless.Register(diffuseFragment, diffuseKernel)
	headless.Register(paletteFragment, paletteKernel)
	headless.Register(splitFragment, splitKernel)
}

func trailKernel(f *headless.Fragment) {
	prev := f.Sample("uFeedback0", f.UV).Vec3().Mul(f.Float("uDecay"))
	d := f.UV.Sub(f.Vec2("uPointer"))
	d[0] *= f.Float("uAspect")
	spot := 1.0 - smoothstep(0, f.Float("uRadius"), d.Len())
	f.Out[0] = mgl32.Vec4{max(prev[0], spot), max(prev[1], spot), max(prev[2], spot), 1.0}
}

func stripesKernel(f *headless.Fragment) {
	v := step(0.5, fract(f.UV[0]*f.Float("uBands")+f.Float("uTime")*0.25))
	f.Out[0] = mgl32.Vec4{v, v, v, 1.0}
}

func diffuseKernel(f *headless.Fragment) {
	texel := f.Vec2("texelSize")
	n := f.Sample("uFeedback0", f.UV.Sub(mgl32.Vec2{texel[0], 0}))
	n = n.Add(f.Sample("uFeedback0", f.UV.Add(mgl32.Vec2{texel[0], 0})))
	n = n.Add(f.Sample("uFeedback0", f.UV.Add(mgl32.Vec2{0, texel[1]})))
	n = n.Add(f.Sample("uFeedback0", f.UV.Sub(mgl32.Vec2{0, texel[1]})))
	f.Out[0] = mix(f.Sample("uSource", f.UV), n.Mul(0.25), f.Float("uAmount"))
}

// PaletteColor is the colour drawn by the palette scene at the normalised
// coordinate, after the number of seconds.
func PaletteColor(uv mgl32.Vec2, seconds float32) mgl32.Vec3 {
	var c mgl32.Vec3
	for i, v := range [3]float32{uv[0], uv[1], uv[0]} {
		c[i] = 0.5 + 0.5*float32(math.Cos(float64(seconds+v+float32(i)*2.0)))
	}
	return c
}

func paletteKernel(f *headless.Fragment) {
	c := PaletteColor(f.UV, f.Float("uTime"))
	f.Out[0] = c.Vec4(1.0)
	f.Out[1] = mgl32.Vec3{1, 1, 1}.Sub(c).Vec4(1.0)
}

func splitKernel(f *headless.Fragment) {
	if f.UV[0] < f.Float("uSplit") {
		f.Out[0] = f.Sample("uLeft", f.UV)
	} else {
		f.Out[0] = f.Sample("uRight", f.UV)
	}
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		return step(edge0, x)
	}
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}

func mix(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
