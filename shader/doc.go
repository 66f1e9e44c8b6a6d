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

// Package shader holds GLSL source for a single shader stage together with
// the uniforms that the source declares.
//
// A Shader is shared by reference between every render pass that uses it. The
// compiled shader object is reference counted: the first Compile() creates it
// and every later Compile() on the same context returns the same handle.
// Release() must be called once for every successful Compile().
//
// Uniform values are supplied by a Source. A Static source always resolves to
// the same value. A Computed source is a function of the Environment, which
// is passed explicitly on every frame.
package shader
