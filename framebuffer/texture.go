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

package framebuffer

import (
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
)

// TextureError is returned when a texture can not be allocated.
const TextureError = "fbo: texture: %v"

// NewTexture allocates an empty texture of the requested size and format.
// The texture uses nearest filtering and clamps to the edge.
func NewTexture(ctx gpu.Context, width, height int, format gpu.Format) (gpu.Texture, error) {
	tex, err := ctx.CreateTexture(width, height, format)
	if err != nil {
		return 0, curated.Errorf(TextureError, err)
	}
	return tex, nil
}

// Copier implementations draw the contents of one texture into a new texture
// of a different size.
type Copier interface {
	// Copy returns a new texture of the requested size with the content of
	// src scaled to fit.
	Copy(src gpu.Texture, width, height int, format gpu.Format) (gpu.Texture, error)
}
