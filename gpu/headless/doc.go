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

// Package headless is a software implementation of the gpu.Context and
// gpu.Host interfaces. It is used for testing and for rendering scenes when no
// display is available.
//
// There is no GLSL compiler. Instead, fragment shader source is matched
// exactly against a table of registered kernels. A kernel is a Go function
// that is called once for every pixel covered by a draw. Kernels can be
// registered for all contexts with Register() or for a single context with
// Context.Register().
//
// Vertex shaders are accepted without being executed. Every draw is assumed
// to cover the viewport, which is true for the full screen quad used by the
// render passes.
//
// Shader "compilation" fails for empty sources and for sources that contain an
// #error directive. Link fails if no kernel has been registered for the
// fragment source. Uniforms and attributes are active if their name appears in
// the shader source.
//
// Drawing while sampling from a texture that is attached to the bound
// framebuffer is an error, reported by Error(). This is the read-after-write
// hazard that a real GPU leaves undefined.
package headless
