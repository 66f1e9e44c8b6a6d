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

package animation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
)

// Scene is an ordered list of render passes along with the hooks called by
// the Manager. The last pass draws to the visible surface and every other
// pass draws into an FBO.
type Scene interface {
	// the passes of the scene. the list must not change after the scene has
	// been set
	Passes() []*renderer.Renderer

	// called once by Set() after the passes have been initialised
	Start(env shader.Environment) error

	// called at the start of every frame, before any pass is drawn
	Update(env shader.Environment) error

	// called when the surface changes size, before the passes are resized
	Resize(width, height int)

	// called when the pointer moves. the position is normalised
	PointerMove(pos, vel mgl32.Vec2)
}

// Orienter is implemented by scenes that want to know the orientation of the
// device.
type Orienter interface {
	Orient(v mgl32.Vec3)
}

// Hooks implements the hook functions of the Scene interface with functions
// that do nothing. Embed Hooks in a scene type to only implement the hooks
// needed.
type Hooks struct{}

// Start implements the Scene interface.
func (Hooks) Start(_ shader.Environment) error { return nil }

// Update implements the Scene interface.
func (Hooks) Update(_ shader.Environment) error { return nil }

// Resize implements the Scene interface.
func (Hooks) Resize(_, _ int) {}

// PointerMove implements the Scene interface.
func (Hooks) PointerMove(_, _ mgl32.Vec2) {}

// Passes is a Scene made of a fixed list of render passes and no hooks.
type Passes []*renderer.Renderer

// Passes implements the Scene interface.
func (p Passes) Passes() []*renderer.Renderer { return p }

// Start implements the Scene interface.
func (Passes) Start(_ shader.Environment) error { return nil }

// Update implements the Scene interface.
func (Passes) Update(_ shader.Environment) error { return nil }

// Resize implements the Scene interface.
func (Passes) Resize(_, _ int) {}

// PointerMove implements the Scene interface.
func (Passes) PointerMove(_, _ mgl32.Vec2) {}
