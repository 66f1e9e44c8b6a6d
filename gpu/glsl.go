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

package gpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect of GLSL accepted by a Context.
type Dialect int

// List of valid Dialect values.
const (
	// OpenGL 2.1
	GLSL120 Dialect = iota

	// OpenGL 3.2 core
	GLSL150

	// WebGL1
	ESSL100

	// WebGL2
	ESSL300
)

func (d Dialect) String() string {
	switch d {
	case GLSL120:
		return "GLSL 1.20"
	case GLSL150:
		return "GLSL 1.50"
	case ESSL100:
		return "GLSL ES 1.00"
	case ESSL300:
		return "GLSL ES 3.00"
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// FragDataName is the name of the fragment output array declared for the
// GLSL150 and ESSL300 dialects. Contexts that need to bind the output
// location do so with this name.
const FragDataName = "fragData"

// matches any use of gl_FragData with an index other than zero
var fragDataIndex = regexp.MustCompile(`gl_FragData\s*\[\s*([1-9][0-9]*)\s*\]`)

// Translate source written in the GLSL ES 1.00 dialect to the target dialect.
// A version directive is prepended along with any definitions that map the
// ES 1.00 keywords to those of the target. The outputs argument is the
// number of fragment outputs to declare for dialects that require them to be
// declared; it is only used for fragment shaders and values less than one are
// treated as one.
func Translate(dialect Dialect, stage Stage, source string, outputs int) string {
	if outputs < 1 {
		outputs = 1
	}

	s := strings.Builder{}

	switch dialect {
	case GLSL120:
		s.WriteString("#version 120\n")

	case GLSL150:
		s.WriteString("#version 150\n")
		if stage == Vertex {
			s.WriteString("#define attribute in\n")
			s.WriteString("#define varying out\n")
		} else {
			s.WriteString("#define varying in\n")
			s.WriteString("#define texture2D texture\n")
			s.WriteString(fmt.Sprintf("out vec4 %s[%d];\n", FragDataName, outputs))
			s.WriteString(fmt.Sprintf("#define gl_FragColor %s[0]\n", FragDataName))
			s.WriteString(fmt.Sprintf("#define gl_FragData %s\n", FragDataName))
		}

	case ESSL100:
		if stage == Fragment && fragDataIndex.MatchString(source) {
			s.WriteString("#extension GL_EXT_draw_buffers : require\n")
		}

	case ESSL300:
		s.WriteString("#version 300 es\n")
		if stage == Vertex {
			s.WriteString("#define attribute in\n")
			s.WriteString("#define varying out\n")
		} else {
			// a default precision must be declared before the output array
			s.WriteString("precision highp float;\n")
			s.WriteString("#define varying in\n")
			s.WriteString("#define texture2D texture\n")
			s.WriteString(fmt.Sprintf("out highp vec4 %s[%d];\n", FragDataName, outputs))
			s.WriteString(fmt.Sprintf("#define gl_FragColor %s[0]\n", FragDataName))
			s.WriteString(fmt.Sprintf("#define gl_FragData %s\n", FragDataName))
		}
	}

	s.WriteString(source)
	return s.String()
}

// Outputs returns the number of fragment outputs written to by the source.
// This is one more than the highest index of gl_FragData used, or one if
// gl_FragData is not indexed beyond zero.
func Outputs(source string) int {
	n := 1
	for _, m := range fragDataIndex.FindAllStringSubmatch(source, -1) {
		i, _ := strconv.Atoi(m[1])
		if i+1 > n {
			n = i + 1
		}
	}
	return n
}
