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

// Package geometry owns the vertex buffer drawn by a render pass. The only
// geometry a render pass ever needs is the full screen quad returned by
// Quad().
package geometry

import (
	"fmt"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
)

// ConfigError is returned when the geometry can not be used with the
// context.
const ConfigError = "geometry: %v"

// number of components in each vertex.
const components = 2

// Geometry is a static list of two dimensional vertices drawn as triangles.
type Geometry struct {
	vertices []float32

	ctx  gpu.Context
	buf  gpu.Buffer
	refs int
}

// New is the preferred method of initialisation for the Geometry type.
func New(vertices []float32) *Geometry {
	v := make([]float32, len(vertices))
	copy(v, vertices)
	return &Geometry{vertices: v}
}

// Quad returns two triangles covering clip space.
func Quad() *Geometry {
	return New([]float32{
		-1, 1, 1, 1, 1, -1,
		-1, 1, 1, -1, -1, -1,
	})
}

func (geo *Geometry) String() string {
	return fmt.Sprintf("%d vertices", geo.Count())
}

// Count returns the number of vertices.
func (geo *Geometry) Count() int {
	return len(geo.vertices) / components
}

// Upload the vertices to a buffer. Like shader compilation, the buffer is
// reference counted and shared by every pass using the geometry.
func (geo *Geometry) Upload(ctx gpu.Context) error {
	if geo.refs > 0 {
		if geo.ctx != ctx {
			return curated.Errorf(ConfigError, "geometry is uploaded to a different context")
		}
		geo.refs++
		return nil
	}

	buf, err := ctx.CreateBuffer(geo.vertices)
	if err != nil {
		return curated.Errorf(ConfigError, err)
	}
	geo.ctx = ctx
	geo.buf = buf
	geo.refs = 1
	return nil
}

// Release one reference to the uploaded buffer.
func (geo *Geometry) Release() {
	if geo.refs == 0 {
		return
	}
	geo.refs--
	if geo.refs == 0 {
		geo.ctx.DeleteBuffer(geo.buf)
		geo.ctx = nil
		geo.buf = 0
	}
}

// Draw the geometry, sourcing the vertex positions into the attribute
// location.
func (geo *Geometry) Draw(attrib int32) {
	if geo.refs == 0 {
		return
	}
	geo.ctx.VertexAttrib(attrib, geo.buf, components)
	geo.ctx.DrawTriangles(0, geo.Count())
}
