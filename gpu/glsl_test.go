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

package gpu_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/test"
)

const mrtSource = `varying vec2 vUv;
void main () {
	gl_FragData[0] = vec4(1.0);
	gl_FragData[ 2 ] = vec4(0.0);
}
`

func TestOutputs(t *testing.T) {
	test.ExpectEquality(t, gpu.Outputs("void main () { gl_FragColor = vec4(1.0); }"), 1)
	test.ExpectEquality(t, gpu.Outputs("void main () { gl_FragData[0] = vec4(1.0); }"), 1)
	test.ExpectEquality(t, gpu.Outputs(mrtSource), 3)
}

func TestTranslateLegacy(t *testing.T) {
	s := gpu.Translate(gpu.GLSL120, gpu.Fragment, mrtSource, 3)
	test.ExpectSuccess(t, strings.HasPrefix(s, "#version 120\n"))
	test.ExpectSuccess(t, strings.HasSuffix(s, mrtSource))
	test.ExpectFailure(t, strings.Contains(s, gpu.FragDataName))
}

func TestTranslateModern(t *testing.T) {
	v := gpu.Translate(gpu.GLSL150, gpu.Vertex, "attribute vec2 aPosition;", 1)
	test.ExpectSuccess(t, strings.HasPrefix(v, "#version 150\n"))
	test.ExpectSuccess(t, strings.Contains(v, "#define attribute in\n"))
	test.ExpectSuccess(t, strings.Contains(v, "#define varying out\n"))

	f := gpu.Translate(gpu.GLSL150, gpu.Fragment, mrtSource, 3)
	test.ExpectSuccess(t, strings.Contains(f, "out vec4 fragData[3];\n"))
	test.ExpectSuccess(t, strings.Contains(f, "#define varying in\n"))
	test.ExpectSuccess(t, strings.Contains(f, "#define gl_FragData fragData\n"))

	// outputs of zero is the same as one
	f = gpu.Translate(gpu.GLSL150, gpu.Fragment, "", 0)
	test.ExpectSuccess(t, strings.Contains(f, "out vec4 fragData[1];\n"))
}

func TestTranslateES(t *testing.T) {
	f := gpu.Translate(gpu.ESSL100, gpu.Fragment, mrtSource, 3)
	test.ExpectSuccess(t, strings.HasPrefix(f, "#extension GL_EXT_draw_buffers : require\n"))

	f = gpu.Translate(gpu.ESSL100, gpu.Fragment, "void main () {}", 1)
	test.ExpectEquality(t, f, "void main () {}")

	f = gpu.Translate(gpu.ESSL300, gpu.Fragment, mrtSource, 3)
	test.ExpectSuccess(t, strings.HasPrefix(f, "#version 300 es\nprecision highp float;\n"))
	test.ExpectSuccess(t, strings.Contains(f, "out highp vec4 fragData[3];\n"))
}
