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
	"fmt"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
)

// Sentinal error patterns.
const (
	ConfigError     = "fbo: %v"
	CapabilityError = "fbo: capability: %v"
)

// the size of an FBO before the first call to Resize().
const (
	DefaultWidth  = 400
	DefaultHeight = 400
)

// Config for a new FBO. The zero value is a single output FBO with feedback
// disabled.
type Config struct {
	// number of output textures. zero is the same as one
	Outputs int

	// double buffer each output slot
	Feedback bool

	// when ManualSwap is true Update() does not swap. the caller should swap
	// with Swap() or with the swap argument of Output()
	ManualSwap bool
}

type slot struct {
	textures [2]gpu.Texture
}

// FBO is an offscreen render target.
type FBO struct {
	ctx    gpu.Context
	format gpu.Format
	cfg    Config

	fb    gpu.Framebuffer
	slots []slot

	// index of the texture in every slot that is attached for writing. only
	// ever zero for FBOs without feedback
	write int

	width  int
	height int
}

// New is the preferred method of initialisation for the FBO type.
func New(ctx gpu.Context, caps gpu.Capabilities, cfg Config) (*FBO, error) {
	if cfg.Outputs == 0 {
		cfg.Outputs = 1
	}
	if cfg.Outputs < 0 || cfg.Outputs > gpu.MaxAttachments {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("number of outputs must be between 1 and %d (requested %d)", gpu.MaxAttachments, cfg.Outputs))
	}
	if cfg.Outputs > 1 && (!caps.DrawBuffers || caps.MaxDrawBuffers < cfg.Outputs) {
		return nil, curated.Errorf(CapabilityError, fmt.Sprintf("%d outputs requested but context supports %d draw buffers", cfg.Outputs, caps.MaxDrawBuffers))
	}

	fbo := &FBO{
		ctx:    ctx,
		format: caps.Format(),
		cfg:    cfg,
		slots:  make([]slot, cfg.Outputs),
	}

	var err error
	fbo.fb, err = ctx.CreateFramebuffer()
	if err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}

	fbo.width = DefaultWidth
	fbo.height = DefaultHeight

	for i := range fbo.slots {
		for j := 0; j < fbo.depth(); j++ {
			fbo.slots[i].textures[j], err = NewTexture(ctx, fbo.width, fbo.height, fbo.format)
			if err != nil {
				fbo.Destroy()
				return nil, err
			}
		}
	}

	fbo.attach()

	logger.Logf(logger.Allow, "fbo", "created %s", fbo)

	return fbo, nil
}

func (fbo *FBO) String() string {
	s := fmt.Sprintf("%dx%d %s x%d", fbo.width, fbo.height, fbo.format, len(fbo.slots))
	if fbo.cfg.Feedback {
		s = fmt.Sprintf("%s feedback", s)
		if fbo.cfg.ManualSwap {
			s = fmt.Sprintf("%s (manual swap)", s)
		}
	}
	return s
}

// depth is the number of textures in each slot.
func (fbo *FBO) depth() int {
	if fbo.cfg.Feedback {
		return 2
	}
	return 1
}

// read index. only meaningful for feedback FBOs.
func (fbo *FBO) read() int {
	return 1 - fbo.write
}

// attach the write texture of every slot. changes the bound framebuffer.
func (fbo *FBO) attach() {
	fbo.ctx.BindFramebuffer(fbo.fb)
	for i := range fbo.slots {
		fbo.ctx.AttachTexture(i, fbo.slots[i].textures[fbo.write])
	}
}

// Destroy all resources used by the FBO.
func (fbo *FBO) Destroy() {
	for i := range fbo.slots {
		for j := range fbo.slots[i].textures {
			if fbo.slots[i].textures[j] != 0 {
				fbo.ctx.DeleteTexture(fbo.slots[i].textures[j])
				fbo.slots[i].textures[j] = 0
			}
		}
	}
	if fbo.fb != 0 {
		fbo.ctx.DeleteFramebuffer(fbo.fb)
		fbo.fb = 0
	}
}

// Framebuffer returns the framebuffer handle.
func (fbo *FBO) Framebuffer() gpu.Framebuffer {
	return fbo.fb
}

// Size returns the dimensions of every texture in the FBO.
func (fbo *FBO) Size() (int, int) {
	return fbo.width, fbo.height
}

// Outputs returns the number of output slots.
func (fbo *FBO) Outputs() int {
	return len(fbo.slots)
}

// Feedback returns true if the output slots are double buffered.
func (fbo *FBO) Feedback() bool {
	return fbo.cfg.Feedback
}

// AutoSwap returns true if Update() swaps before drawing.
func (fbo *FBO) AutoSwap() bool {
	return fbo.cfg.Feedback && !fbo.cfg.ManualSwap
}

// Format returns the pixel format of the textures.
func (fbo *FBO) Format() gpu.Format {
	return fbo.format
}

// ValidSlot returns true if slot is an output slot of the FBO.
func (fbo *FBO) ValidSlot(slot int) bool {
	return slot >= 0 && slot < len(fbo.slots)
}

// Indices returns the current write and read indices. For FBOs without
// feedback both indices are zero.
func (fbo *FBO) Indices() (write int, read int) {
	if !fbo.cfg.Feedback {
		return 0, 0
	}
	return fbo.write, fbo.read()
}

// Update binds the FBO as the render target. If feedback and auto swap are
// both enabled then the textures are swapped first.
func (fbo *FBO) Update() {
	if fbo.AutoSwap() {
		fbo.Swap()
	} else {
		fbo.ctx.BindFramebuffer(fbo.fb)
	}
	if len(fbo.slots) > 1 {
		fbo.ctx.DrawBuffers(len(fbo.slots))
	}
}

// Swap the read and write textures of every slot and attach the new write
// textures. Swap does nothing for FBOs without feedback.
//
// Changes the bound framebuffer.
func (fbo *FBO) Swap() {
	if !fbo.cfg.Feedback {
		return
	}
	fbo.write = fbo.read()
	fbo.attach()
}

// Output returns the texture holding the most recent complete result for the
// slot. This is the read texture for feedback FBOs, otherwise the only
// texture of the slot.
//
// If swap is true and auto swap is disabled then the FBO is swapped first. The
// swap affects every slot, not just the one being requested.
//
// Returns zero if the slot does not exist. See ValidSlot().
func (fbo *FBO) Output(slot int, swap bool) gpu.Texture {
	if !fbo.ValidSlot(slot) {
		return 0
	}
	if swap && fbo.cfg.Feedback && fbo.cfg.ManualSwap {
		fbo.Swap()
	}
	if fbo.cfg.Feedback {
		return fbo.slots[slot].textures[fbo.read()]
	}
	return fbo.slots[slot].textures[0]
}

// Write returns the texture currently attached for writing to the slot. For
// FBOs without feedback this is the same as Output(). Returns zero if the slot
// does not exist.
func (fbo *FBO) Write(slot int) gpu.Texture {
	if !fbo.ValidSlot(slot) {
		return 0
	}
	return fbo.slots[slot].textures[fbo.write]
}

// Resize replaces every texture with one of the new dimensions. Returns true if
// the textures have been replaced. Nothing happens if the dimensions have not
// changed or if either dimension is zero or less.
//
// The copier is used to preserve the content of feedback slots and must not be
// nil for feedback FBOs.
//
// On error the FBO is unchanged.
//
// Changes the bound framebuffer.
func (fbo *FBO) Resize(width, height int, copier Copier) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, nil
	}
	if fbo.width == width && fbo.height == height {
		return false, nil
	}
	if fbo.cfg.Feedback && copier == nil {
		return false, curated.Errorf(ConfigError, "resize of feedback FBO requires a copier")
	}

	staged := make([]slot, len(fbo.slots))

	discard := func() {
		for i := range staged {
			for _, tex := range staged[i].textures {
				if tex != 0 {
					fbo.ctx.DeleteTexture(tex)
				}
			}
		}
	}

	for i := range fbo.slots {
		if fbo.cfg.Feedback {
			cp, err := copier.Copy(fbo.slots[i].textures[fbo.read()], width, height, fbo.format)
			if err != nil {
				discard()
				return false, curated.Errorf(ConfigError, err)
			}
			staged[i].textures[fbo.write] = cp

			fresh, err := NewTexture(fbo.ctx, width, height, fbo.format)
			if err != nil {
				discard()
				return false, err
			}
			staged[i].textures[fbo.read()] = fresh
		} else {
			fresh, err := NewTexture(fbo.ctx, width, height, fbo.format)
			if err != nil {
				discard()
				return false, err
			}
			staged[i].textures[0] = fresh
		}
	}

	// the new textures are complete so the old textures can go
	for i := range fbo.slots {
		for _, tex := range fbo.slots[i].textures {
			if tex != 0 {
				fbo.ctx.DeleteTexture(tex)
			}
		}
	}

	fbo.slots = staged
	fbo.width = width
	fbo.height = height
	fbo.attach()

	logger.Logf(logger.Allow, "fbo", "resized %s", fbo)

	return true, nil
}
