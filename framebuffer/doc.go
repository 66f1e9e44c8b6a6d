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

// Package framebuffer provides the FBO type, an off-screen render target
// backed by one or more textures.
//
// An FBO has between one and sixteen output slots. Each slot is written to by
// one color attachment, so an FBO with more than one output is a multiple
// render target. Creating such an FBO fails with a CapabilityError if the
// context can not draw to that many buffers at once.
//
// In feedback mode every slot has a pair of textures. One is attached for
// writing and the other holds the result of the previous draw and can be
// sampled. The write index is shared by every slot and the read index is
// always the other one:
//
//	read = 1 - write
//
// Swap() is the only function that changes the indices. Update() binds the
// FBO as the render target and, if auto swap is enabled, swaps before the
// caller draws. The pass that owns the FBO can therefore sample its own
// previous output while drawing the next one, without ever sampling the
// texture it is writing to.
//
// Resize() replaces textures, it never changes them. The previous content of
// a feedback slot is copied into a new texture at the new size using a
// Copier. The copy becomes the write texture and a new empty texture becomes
// the read texture. After the next swap the copied content is the input of
// the pass, so nothing that has been drawn is lost. Slots of non-feedback FBOs
// are reallocated without a copy.
//
//	fbo, err := framebuffer.New(ctx, caps, framebuffer.Config{Feedback: true})
//
//	// every frame
//	fbo.Update()
//	// draw, sampling fbo.Output(0, false)
//
//	// when the viewport changes
//	changed, err := fbo.Resize(width, height, copier)
package framebuffer
