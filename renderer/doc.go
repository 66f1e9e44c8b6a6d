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

// Package renderer implements the render pass. A Renderer links a vertex and
// fragment shader into a program and draws the geometry into its target once
// or more per frame. The target is either an FBO, in which case the result
// can be sampled by later passes, or the visible surface.
//
// Texture units are assigned in a fixed order on every draw. When the FBO is
// in feedback mode, the FBO's own previous output for slot n is bound to unit
// n and to the uniform uFeedback<n>. Sampler uniforms declared by the shaders
// are assigned the following units in declaration order, vertex shader
// uniforms first. Non-sampler uniforms do not take a unit.
//
// The CopyPass is a Renderer used by FBOs to preserve the content of feedback
// textures when they are resized.
package renderer
