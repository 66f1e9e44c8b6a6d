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
	"strings"
)

// Capabilities of a Context, as discovered by negotiation.
type Capabilities struct {
	// the context is a WebGL2 or OpenGL 3.2 context
	Modern bool

	// floating point textures can be created
	FloatTextures bool

	// floating point textures can be rendered to
	ColorBufferFloat bool

	// multiple render targets are supported. MaxDrawBuffers will be one if
	// this is false
	DrawBuffers    bool
	MaxDrawBuffers int
}

// Format returns the texture format to use for render targets.
func (c Capabilities) Format() Format {
	if c.FloatTextures && c.ColorBufferFloat {
		return RGBA16F
	}
	return RGBA8
}

func (c Capabilities) String() string {
	s := strings.Builder{}
	if c.Modern {
		s.WriteString("modern")
	} else {
		s.WriteString("legacy")
	}
	s.WriteString(fmt.Sprintf(" %s", c.Format()))
	if c.DrawBuffers {
		s.WriteString(fmt.Sprintf(" mrt(%d)", c.MaxDrawBuffers))
	}
	return s.String()
}
