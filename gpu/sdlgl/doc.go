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

// Package sdlgl implements gpu.Host with an SDL window. The contexts acquired
// from the window are OpenGL contexts provided by the opengl package, and so
// the API that can be acquired depends on the GL binding that was compiled.
//
// SDL and OpenGL must be used from the main thread. A Window should be
// created, serviced and destroyed from the same goroutine, and that goroutine
// should be the one that the program's main() function runs in.
package sdlgl
