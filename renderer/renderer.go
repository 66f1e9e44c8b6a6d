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
	"fmt"
	"image"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/geometry"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/shader"
)

// Sentinal error patterns.
const (
	ConfigError   = "renderer: %v"
	PassError     = "renderer: %v: %v"
	LinkError     = "renderer: %v: link: %v"
	NoFramebuffer = "renderer: %v: no framebuffer"
	UniformError  = "renderer: %v: uniform %v: %v"
	DrawError     = "renderer: %v: draw: %v"
)

// the name of the vertex position attribute in the vertex shader.
const positionAttribute = "aPosition"

// FeedbackSampler returns the name of the sampler uniform the feedback
// texture for the slot is bound to.
func FeedbackSampler(slot int) string {
	return fmt.Sprintf("uFeedback%d", slot)
}

// Config for a new Renderer.
type Config struct {
	// name of the pass in log entries and errors
	Name string

	// both shaders are required. the stage of each shader must match the
	// field
	Vertex   *shader.Shader
	Fragment *shader.Shader

	// geometry to draw. nil means the shared full screen quad
	Geometry *geometry.Geometry

	// an FBO to draw into. if nil an FBO will be created by Initialize() if
	// usesFBO is true
	FBO *framebuffer.FBO

	// configuration of an FBO created by Initialize(). the Feedback field
	// is ignored and AutoFeedback used in its place
	FBOConfig framebuffer.Config

	// feedback mode of an FBO created by Initialize()
	AutoFeedback bool

	// colour to clear the target to before drawing. nil means opaque black.
	// any other value must have exactly four components
	ClearColor []float32

	// size of the target. the zero value means the target is the same
	// size as the viewport
	FixedSize image.Point

	// number of times the pass is drawn every frame. zero is the same as one
	Iterations int
}

// Resources shared by every Renderer initialised for a context.
type Resources struct {
	Context gpu.Context
	Caps    gpu.Capabilities

	// used when FBOs are resized
	Copier framebuffer.Copier

	// geometry used by passes that do not specify their own
	Quad *geometry.Geometry
}

// Renderer is a single render pass.
type Renderer struct {
	cfg        Config
	clearColor [4]float32

	res Resources
	fbo *framebuffer.FBO
	geo *geometry.Geometry

	// whether the fbo was created by Initialize() and should be destroyed by
	// Destroy()
	ownsFBO bool

	program  gpu.Program
	position int32

	// uniform locations. one slice for each shader in the order vertex,
	// fragment, and indexed by uniform declaration
	locations [2][]int32

	// locations of the feedback sampler uniforms
	feedback []int32

	// the size of the viewport
	width  int
	height int

	initialised bool
}

// New is the preferred method of initialisation for the Renderer type.
func New(cfg Config) (*Renderer, error) {
	if cfg.Name == "" {
		cfg.Name = "pass"
	}
	if cfg.Vertex == nil || cfg.Fragment == nil {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: vertex and fragment shaders are required", cfg.Name))
	}
	if cfg.Vertex.Stage() != gpu.Vertex {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: vertex shader is a %s shader", cfg.Name, cfg.Vertex.Stage()))
	}
	if cfg.Fragment.Stage() != gpu.Fragment {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: fragment shader is a %s shader", cfg.Name, cfg.Fragment.Stage()))
	}

	r := &Renderer{
		cfg:        cfg,
		clearColor: [4]float32{0, 0, 0, 1},
	}

	if cfg.ClearColor != nil {
		if len(cfg.ClearColor) != 4 {
			return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: clear colour must have 4 components (has %d)", cfg.Name, len(cfg.ClearColor)))
		}
		copy(r.clearColor[:], cfg.ClearColor)
	}

	switch {
	case cfg.Iterations < 0:
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: iterations cannot be negative", cfg.Name))
	case cfg.Iterations == 0:
		r.cfg.Iterations = 1
	}

	if cfg.FixedSize.X < 0 || cfg.FixedSize.Y < 0 || (cfg.FixedSize.X == 0) != (cfg.FixedSize.Y == 0) {
		return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s: invalid fixed size %v", cfg.Name, cfg.FixedSize))
	}

	return r, nil
}

func (r *Renderer) String() string {
	return r.cfg.Name
}

// Name of the render pass.
func (r *Renderer) Name() string {
	return r.cfg.Name
}

// Iterations returns the number of times the pass is drawn every frame.
func (r *Renderer) Iterations() int {
	return r.cfg.Iterations
}

// ClearColor returns the colour the target is cleared to.
func (r *Renderer) ClearColor() [4]float32 {
	return r.clearColor
}

// Shaders returns the vertex and fragment shaders.
func (r *Renderer) Shaders() (*shader.Shader, *shader.Shader) {
	return r.cfg.Vertex, r.cfg.Fragment
}

// FBO returns the FBO the pass draws into. Returns nil if the pass draws to
// the visible surface.
func (r *Renderer) FBO() *framebuffer.FBO {
	return r.fbo
}

// Initialised returns true if Initialize() has completed successfully.
func (r *Renderer) Initialised() bool {
	return r.initialised
}

// Initialize compiles the shaders and links the program. If usesFBO is true and
// no FBO was supplied in the Config, an FBO is created.
func (r *Renderer) Initialize(res Resources, usesFBO bool) error {
	if r.initialised {
		return curated.Errorf(ConfigError, fmt.Sprintf("%s: already initialised", r.cfg.Name))
	}

	ctx := res.Context
	r.res = res

	vs, err := r.cfg.Vertex.Compile(ctx)
	if err != nil {
		return curated.Errorf(PassError, r.cfg.Name, err)
	}
	fs, err := r.cfg.Fragment.Compile(ctx)
	if err != nil {
		r.cfg.Vertex.Release()
		return curated.Errorf(PassError, r.cfg.Name, err)
	}

	// the deferred function releases everything acquired so far if
	// initialisation fails
	var success bool
	defer func() {
		if !success {
			r.release()
		}
	}()

	r.program, err = ctx.LinkProgram(vs, fs)
	if err != nil {
		return curated.Errorf(LinkError, r.cfg.Name, err)
	}

	r.position = ctx.AttribLocation(r.program, positionAttribute)

	for i, sh := range []*shader.Shader{r.cfg.Vertex, r.cfg.Fragment} {
		r.locations[i] = make([]int32, len(sh.Uniforms()))
		for j, u := range sh.Uniforms() {
			r.locations[i][j] = ctx.UniformLocation(r.program, u.Name)
		}
	}

	r.fbo = r.cfg.FBO
	if r.fbo == nil && usesFBO {
		fc := r.cfg.FBOConfig
		fc.Feedback = r.cfg.AutoFeedback
		r.fbo, err = framebuffer.New(ctx, res.Caps, fc)
		if err != nil {
			return curated.Errorf(PassError, r.cfg.Name, err)
		}
		r.ownsFBO = true
	}

	if r.fbo != nil {
		r.feedback = make([]int32, r.fbo.Outputs())
		for i := range r.feedback {
			r.feedback[i] = ctx.UniformLocation(r.program, FeedbackSampler(i))
		}

		if r.fixed() {
			_, err = r.fbo.Resize(r.cfg.FixedSize.X, r.cfg.FixedSize.Y, res.Copier)
			if err != nil {
				return curated.Errorf(PassError, r.cfg.Name, err)
			}
		}
	}

	r.geo = r.cfg.Geometry
	if r.geo == nil {
		r.geo = res.Quad
	}
	if r.geo == nil {
		return curated.Errorf(ConfigError, fmt.Sprintf("%s: no geometry", r.cfg.Name))
	}
	err = r.geo.Upload(ctx)
	if err != nil {
		r.geo = nil
		return curated.Errorf(PassError, r.cfg.Name, err)
	}

	success = true
	r.initialised = true

	if r.fbo != nil {
		logger.Logf(logger.Allow, "renderer", "%s: linked (fbo %s)", r.cfg.Name, r.fbo)
	} else {
		logger.Logf(logger.Allow, "renderer", "%s: linked (surface)", r.cfg.Name)
	}

	return nil
}

// release everything acquired by Initialize().
func (r *Renderer) release() {
	ctx := r.res.Context
	if ctx == nil {
		return
	}
	if r.geo != nil {
		r.geo.Release()
		r.geo = nil
	}
	if r.ownsFBO && r.fbo != nil {
		r.fbo.Destroy()
	}
	r.fbo = nil
	r.ownsFBO = false
	if r.program != 0 {
		ctx.DeleteProgram(r.program)
		r.program = 0
	}
	r.cfg.Vertex.Release()
	r.cfg.Fragment.Release()
	r.res = Resources{}
}

// Destroy releases all resources used by the Renderer. An FBO that was
// supplied in the Config is not destroyed.
func (r *Renderer) Destroy() {
	if !r.initialised {
		return
	}
	r.release()
	r.initialised = false
}

func (r *Renderer) fixed() bool {
	return r.cfg.FixedSize != image.Point{}
}

// Size returns the dimensions of the target of the pass.
func (r *Renderer) Size() (int, int) {
	if r.fixed() {
		return r.cfg.FixedSize.X, r.cfg.FixedSize.Y
	}
	if r.fbo != nil {
		return r.fbo.Size()
	}
	return r.width, r.height
}

// Resize the pass to the dimensions of the viewport. Passes with a fixed size
// are not resized.
func (r *Renderer) Resize(width, height int) error {
	r.width = width
	r.height = height
	if r.fbo == nil || r.fixed() {
		return nil
	}
	_, err := r.fbo.Resize(width, height, r.res.Copier)
	if err != nil {
		return curated.Errorf(PassError, r.cfg.Name, err)
	}
	return nil
}

// Output returns the readable texture of the FBO for the slot. Fails with
// NoFramebuffer if the pass draws to the visible surface.
func (r *Renderer) Output(slot int) (gpu.Texture, error) {
	if r.fbo == nil {
		return 0, curated.Errorf(NoFramebuffer, r.cfg.Name)
	}
	if slot < 0 || slot >= r.fbo.Outputs() {
		return 0, curated.Errorf(ConfigError, fmt.Sprintf("%s: no output slot %d", r.cfg.Name, slot))
	}
	return r.fbo.Output(slot, false), nil
}

// Update draws the pass Iterations times. Each iteration binds the target and
// therefore, for auto swapping feedback FBOs, reads the result of the previous
// iteration.
func (r *Renderer) Update(env shader.Environment) error {
	if !r.initialised {
		return curated.Errorf(ConfigError, fmt.Sprintf("%s: not initialised", r.cfg.Name))
	}

	for i := 0; i < r.cfg.Iterations; i++ {
		width, height := r.Size()
		if r.fbo != nil {
			r.fbo.Update()
		} else {
			r.res.Context.BindFramebuffer(gpu.Surface)
		}

		err := r.draw(env, width, height)
		if err != nil {
			return err
		}
	}

	return nil
}

// draw into the currently bound framebuffer.
func (r *Renderer) draw(env shader.Environment, width, height int) error {
	ctx := r.res.Context

	ctx.Viewport(0, 0, width, height)
	ctx.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	ctx.Clear()
	ctx.UseProgram(r.program)

	var unit int

	if r.fbo != nil && r.fbo.Feedback() {
		for i, loc := range r.feedback {
			ctx.BindTexture(unit, r.fbo.Output(i, false))
			ctx.Uniform1i(loc, int32(unit))
			unit++
		}
	}

	env.Width = width
	env.Height = height

	for i, sh := range []*shader.Shader{r.cfg.Vertex, r.cfg.Fragment} {
		for j, u := range sh.Uniforms() {
			// sampler units are assigned whether or not the uniform has a
			// value so that the assignment only depends on declaration
			unitForUniform := unit
			if u.Type == shader.Sampler {
				unit++
			}

			if u.Source == nil {
				continue
			}

			v, err := u.Source.Value(env)
			if err != nil {
				return curated.Errorf(UniformError, r.cfg.Name, u.Name, err)
			}
			if v == nil {
				continue
			}

			err = u.Upload(ctx, r.locations[i][j], v, unitForUniform)
			if err != nil {
				return curated.Errorf(UniformError, r.cfg.Name, u.Name, err)
			}
		}
	}

	r.geo.Draw(r.position)

	if err := ctx.Error(); err != nil {
		return curated.Errorf(DrawError, r.cfg.Name, err)
	}

	return nil
}
