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

package geometry_test

import (
	"testing"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/geometry"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/test"
)

func TestQuad(t *testing.T) {
	geo := geometry.Quad()
	test.ExpectEquality(t, geo.Count(), 6)
	test.ExpectEquality(t, geo.String(), "6 vertices")
}

func TestUpload(t *testing.T) {
	cnv := headless.NewCanvas(1, 1, headless.Options{})
	ctx, err := cnv.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)

	geo := geometry.Quad()
	test.ExpectSuccess(t, geo.Upload(ctx))
	test.ExpectSuccess(t, geo.Upload(ctx))

	other, err := headless.NewCanvas(1, 1, headless.Options{}).Acquire(gpu.Legacy, gpu.DefaultAttributes)
	test.DemandSuccess(t, err)
	err = geo.Upload(other)
	test.ExpectSuccess(t, curated.Is(err, geometry.ConfigError))

	geo.Release()
	geo.Release()

	// geometry is no longer uploaded so it can be uploaded to another context
	test.ExpectSuccess(t, geo.Upload(other))
}
