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
)

// Pointer sensor. Positions are normalised to the range 0 to 1 with the
// origin at the bottom left of the surface.
type Pointer struct {
	pos  mgl32.Vec2
	vel  mgl32.Vec2
	seen bool

	subscribers []func(pos, vel mgl32.Vec2)
}

// Subscribe to pointer movement.
func (p *Pointer) Subscribe(f func(pos, vel mgl32.Vec2)) {
	p.subscribers = append(p.subscribers, f)
}

// Position of the pointer.
func (p *Pointer) Position() mgl32.Vec2 {
	return p.pos
}

// Velocity is the displacement between the two most recent positions.
func (p *Pointer) Velocity() mgl32.Vec2 {
	return p.vel
}

// move the pointer to a position in surface pixels. the origin of the pixel
// coordinates is the top left of the surface.
func (p *Pointer) move(x, y float32, width, height int) {
	var pos mgl32.Vec2
	if width > 0 && height > 0 {
		pos = mgl32.Vec2{
			mgl32.Clamp(x/float32(width), 0, 1),
			mgl32.Clamp((float32(height)-y)/float32(height), 0, 1),
		}
	}

	// the first position has no velocity
	if !p.seen {
		p.seen = true
		p.pos = pos
	}

	p.vel = pos.Sub(p.pos)
	p.pos = pos

	for _, f := range p.subscribers {
		f(p.pos, p.vel)
	}
}

// Orientation sensor. The value is the alpha, beta and gamma angles of the
// device in degrees.
type Orientation struct {
	value mgl32.Vec3
	seen  bool

	subscribers []func(v mgl32.Vec3)
}

// Subscribe to orientation changes.
func (o *Orientation) Subscribe(f func(v mgl32.Vec3)) {
	o.subscribers = append(o.subscribers, f)
}

// Value returns the most recent orientation and whether any orientation has
// been reported.
func (o *Orientation) Value() (mgl32.Vec3, bool) {
	return o.value, o.seen
}

func (o *Orientation) set(alpha, beta, gamma float32) {
	o.value = mgl32.Vec3{alpha, beta, gamma}
	o.seen = true
	for _, f := range o.subscribers {
		f(o.value)
	}
}
