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

// Package shaders contains the GLSL source of the built-in shaders.
//
// Sources are written in the GLSL ES 1.00 dialect, without a #version
// directive, because that is the dialect every context can be made to accept.
// The backends in the gpu packages add the version directive and any
// definitions needed by the context being compiled for. Precision statements
// should be guarded with GL_ES because desktop GLSL 1.20 does not support
// them. Fragment shaders with more than one output write to gl_FragData.
package shaders

import _ "embed"

// BaseVertex is the pass-through vertex shader used by every render pass. The
// texelSize uniform is the size of one pixel of the render target in
// normalised coordinates, and is used to calculate the neighbouring
// coordinates vL, vR, vT and vB.
//
//go:embed "base.vert"
var BaseVertex string

// Copy samples uSampler at vUv. It is used to preserve the content of
// feedback textures when they are resized.
//
//go:embed "copy.frag"
var Copy string
