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

// Package animation is the frame driver. A Manager negotiates a context with
// a gpu.Host, initialises the passes of a Scene, and draws every pass in order
// once per display refresh.
//
// Frames are driven by the host's RequestFrame() function. Each frame runs
// to completion: the scene is updated, the passes are drawn in list order,
// and then the clock advances. Because passes are drawn in order a pass can
// sample the output of any earlier pass from the same frame.
//
// Resize, pointer and orientation events are delivered to the Manager by the
// host, from the same goroutine that runs the frames.
package animation
