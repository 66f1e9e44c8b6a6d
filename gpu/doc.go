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

// Package gpu defines the contract between the rendering core and a graphics
// API. The framebuffer, shader, geometry and renderer packages only ever talk
// to a Context; they never import a GL binding directly.
//
// Three implementations exist. The sdlgl package uses OpenGL through go-gl,
// with an SDL window providing the surface. The webgl package uses the
// browser's WebGL through syscall/js and is only available in js/wasm builds.
// The headless package is a software implementation that is used for testing
// and for rendering without a display.
//
// Handles are small integers. The zero value of every handle type means "no
// resource" except for Framebuffer, where zero is the visible surface.
package gpu
