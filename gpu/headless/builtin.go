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

package headless

import "github.com/jetsetilly/shaderloop/shaders"

// CopyKernel is the kernel for the built-in copy shader.
func CopyKernel(f *Fragment) {
	f.Out[0] = f.Sample("uSampler", f.UV)
}

func init() {
	Register(shaders.Copy, CopyKernel)
}
