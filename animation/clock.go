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

import "time"

// Clock measures animation time. Time only accumulates while the clock is
// running.
type Clock struct {
	running bool

	// whether base holds the time of a previous call to Advance()
	based bool
	base  time.Duration

	frame   int
	elapsed time.Duration
	delta   time.Duration
}

// Start the clock from zero.
func (c *Clock) Start() {
	c.running = true
	c.based = false
	c.elapsed = 0
	c.delta = 0
}

// Resume a paused clock without resetting it.
func (c *Clock) Resume() {
	if c.running {
		return
	}
	c.running = true
	c.based = false
}

// Pause the clock. Advance() will not accumulate time until the clock is
// restarted or resumed.
func (c *Clock) Pause() {
	c.running = false
	c.delta = 0
}

// Stop and reset the clock.
func (c *Clock) Stop() {
	c.running = false
	c.based = false
	c.frame = 0
	c.elapsed = 0
	c.delta = 0
}

// Running returns true if the clock is running.
func (c *Clock) Running() bool {
	return c.running
}

// Advance the clock to the host time. The first call after starting or
// resuming the clock establishes the base and produces a delta of zero.
func (c *Clock) Advance(now time.Duration) {
	if !c.running {
		c.delta = 0
		return
	}

	if !c.based {
		c.based = true
		c.base = now
	}

	c.delta = now - c.base
	if c.delta < 0 {
		c.delta = 0
	}
	c.base = now
	c.elapsed += c.delta
	c.frame++
}

// Frame returns the number of frames completed while the clock was running.
func (c *Clock) Frame() int {
	return c.frame
}

// Elapsed returns the running time of the clock.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Delta returns the duration of the most recent frame.
func (c *Clock) Delta() time.Duration {
	return c.delta
}
