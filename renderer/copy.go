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

package renderer

import (
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/shader"
	"github.com/jetsetilly/shaderloop/shaders"
)

// CopyPass draws a texture into a new texture of a different size. It
// implements the framebuffer.Copier interface.
type CopyPass struct {
	pass *Renderer
	ctx  gpu.Context

	// scratch framebuffer the destination texture is attached to for the
	// duration of a copy
	fb gpu.Framebuffer

	// the texture being copied
	src gpu.Texture
}

type copySource struct {
	cp *CopyPass
}

func (s copySource) Value(_ shader.Environment) (any, error) {
	return s.cp.src, nil
}

// NewCopyPass is the preferred method of initialisation for the CopyPass
// type. The vertex shader should be the shared base vertex shader and can be
// nil, in which case a new instance is created.
func NewCopyPass(vertex *shader.Shader) (*CopyPass, error) {
	if vertex == nil {
		vertex = BaseVertex()
	}

	cp := &CopyPass{}

	var err error
	cp.pass, err = New(Config{
		Name:   "copy",
		Vertex: vertex,
		Fragment: shader.New(gpu.Fragment, shaders.Copy,
			shader.Uniform{Name: "uSampler", Type: shader.Sampler, Source: copySource{cp: cp}},
		),
		ClearColor: []float32{0, 0, 0, 0},
	})
	if err != nil {
		return nil, err
	}

	return cp, nil
}

// Initialize the copy pass for the context. The Copier field of the resources
// is not used.
func (cp *CopyPass) Initialize(res Resources) error {
	res.Copier = nil
	err := cp.pass.Initialize(res, false)
	if err != nil {
		return err
	}

	cp.fb, err = res.Context.CreateFramebuffer()
	if err != nil {
		cp.pass.Destroy()
		return curated.Errorf(PassError, "copy", err)
	}
	cp.ctx = res.Context

	return nil
}

// Initialised returns true if Initialize() has completed successfully.
func (cp *CopyPass) Initialised() bool {
	return cp.ctx != nil
}

// Copy implements the framebuffer.Copier interface.
func (cp *CopyPass) Copy(src gpu.Texture, width, height int, format gpu.Format) (gpu.Texture, error) {
	if cp.ctx == nil {
		return 0, curated.Errorf(ConfigError, "copy: not initialised")
	}

	dest, err := framebuffer.NewTexture(cp.ctx, width, height, format)
	if err != nil {
		return 0, err
	}

	cp.src = src
	defer func() {
		cp.src = 0
	}()

	cp.ctx.BindFramebuffer(cp.fb)
	cp.ctx.AttachTexture(0, dest)

	err = cp.pass.draw(shader.Environment{Width: width, Height: height}, width, height)

	cp.ctx.AttachTexture(0, 0)

	if err != nil {
		cp.ctx.DeleteTexture(dest)
		return 0, err
	}

	return dest, nil
}

// Destroy releases the resources used by the copy pass.
func (cp *CopyPass) Destroy() {
	if cp.ctx == nil {
		return
	}
	cp.ctx.DeleteFramebuffer(cp.fb)
	cp.fb = 0
	cp.pass.Destroy()
	cp.ctx = nil
}
