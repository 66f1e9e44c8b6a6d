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
	"fmt"
	"time"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/geometry"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
)

// Sentinal error patterns.
const (
	ContextUnavailable = "animation: no context available: %v"
	EmptyScene         = "animation: scene has no passes"
	SceneError         = "animation: scene: %v"
	FrameError         = "animation: frame %d: %v"
	Destroyed          = "animation: manager has been destroyed"
	GraphError         = "animation: graph: %v"
)

// Config for a new Manager.
type Config struct {
	// suppress logging by the manager
	Quiet bool
}

// Manager is the frame driver. It owns the context and the built-in assets
// shared by every pass.
type Manager struct {
	cfg  Config
	host gpu.Host
	ctx  gpu.Context

	modern bool
	caps   gpu.Capabilities
	probed []string

	// built-in assets
	vertex *shader.Shader
	quad   *geometry.Geometry
	copy   *renderer.CopyPass

	scene  Scene
	passes []*renderer.Renderer

	clock       Clock
	pointer     Pointer
	orientation Orientation

	width  int
	height int

	// a frame has been requested from the host and not yet run
	scheduled bool
	destroyed bool

	// Frame() is in progress. resources are not released by Destroy() until
	// the frame has completed
	framing bool

	// the error that stopped the frame loop
	err error
}

// NewManager is the preferred method of initialisation for the Manager type.
// A Modern context is requested from the host, falling back to a Legacy
// context with the float texture and draw buffers extensions probed.
func NewManager(host gpu.Host, cfg Config) (*Manager, error) {
	m := &Manager{
		cfg:  cfg,
		host: host,
	}

	err := m.negotiate()
	if err != nil {
		return nil, err
	}

	m.vertex = renderer.BaseVertex()
	m.quad = geometry.Quad()
	m.copy, err = renderer.NewCopyPass(m.vertex)
	if err != nil {
		return nil, err
	}

	m.width, m.height = host.Size()
	host.Subscribe(m)

	return m, nil
}

func (m *Manager) negotiate() error {
	ctx, err := m.host.Acquire(gpu.Modern, gpu.DefaultAttributes)
	if err == nil {
		m.ctx = ctx
		m.modern = true
		m.caps = gpu.Capabilities{
			Modern:           true,
			FloatTextures:    true,
			ColorBufferFloat: m.probe(gpu.ExtColorBufferFloat),
			DrawBuffers:      true,
			MaxDrawBuffers:   ctx.MaxDrawBuffers(),
		}
		logger.Logf(m, "animation", "context: %s", m.caps)
		return nil
	}

	logger.Logf(m, "animation", "falling back to legacy context: %v", err)

	ctx, err = m.host.Acquire(gpu.Legacy, gpu.DefaultAttributes)
	if err != nil {
		return curated.Errorf(ContextUnavailable, err)
	}

	m.ctx = ctx
	m.caps = gpu.Capabilities{
		FloatTextures: m.probe(gpu.ExtFloatTexture),
		DrawBuffers:   m.probe(gpu.ExtDrawBuffers),
	}
	m.caps.ColorBufferFloat = m.probe(gpu.ExtColorBufferFloat)
	m.caps.MaxDrawBuffers = ctx.MaxDrawBuffers()
	if !m.caps.DrawBuffers {
		m.caps.MaxDrawBuffers = 1
	}

	logger.Logf(m, "animation", "context: %s", m.caps)

	return nil
}

func (m *Manager) probe(ext string) bool {
	m.probed = append(m.probed, ext)
	ok := m.ctx.Extension(ext)
	if !ok {
		logger.Logf(m, "animation", "extension not available: %s", ext)
	}
	return ok
}

// AllowLogging implements the logger.Permission interface.
func (m *Manager) AllowLogging() bool {
	return !m.cfg.Quiet
}

// WebGL2IsSupported returns true if a Modern context was acquired.
func (m *Manager) WebGL2IsSupported() bool {
	return m.modern
}

// Capabilities of the negotiated context.
func (m *Manager) Capabilities() gpu.Capabilities {
	return m.caps
}

// Probed returns the names of the extensions probed during negotiation, in
// order.
func (m *Manager) Probed() []string {
	return m.probed
}

// Context returns the negotiated context.
func (m *Manager) Context() gpu.Context {
	return m.ctx
}

// BaseVertex returns the shared pass-through vertex shader. Scenes should use
// this shader so that it is only compiled once.
func (m *Manager) BaseVertex() *shader.Shader {
	return m.vertex
}

// Clock returns the animation clock.
func (m *Manager) Clock() *Clock {
	return &m.clock
}

// Pointer returns the pointer sensor.
func (m *Manager) Pointer() *Pointer {
	return &m.pointer
}

// Orientation returns the orientation sensor.
func (m *Manager) Orientation() *Orientation {
	return &m.orientation
}

// Scene returns the current scene. Returns nil if no scene has been set.
func (m *Manager) Scene() Scene {
	return m.scene
}

// Size of the visible surface.
func (m *Manager) Size() (int, int) {
	return m.width, m.height
}

// Err returns the error that stopped the frame loop. Returns nil if the
// frame loop has not stopped because of an error.
func (m *Manager) Err() error {
	return m.err
}

// Set the scene. The passes of the scene are initialised, with every pass
// except the last drawing into an FBO, and sized to the surface. If any pass
// fails to initialise or resize then the passes initialised so far are
// destroyed and the previous scene, if any, remains in place.
//
// Setting a scene that shares passes with the current scene restarts it: the
// current scene is released before the passes are initialised again, so on
// failure there is no scene in place.
//
// Set cannot be called while a frame is being drawn.
func (m *Manager) Set(scene Scene) error {
	if m.destroyed {
		return curated.Errorf(Destroyed)
	}
	if m.framing {
		return curated.Errorf(SceneError, "cannot set scene during a frame")
	}

	passes := scene.Passes()
	if len(passes) == 0 {
		return curated.Errorf(EmptyScene)
	}

	if m.shares(passes) {
		logger.Log(m, "animation", "restarting current scene")
		m.release()
	}

	if !m.copy.Initialised() {
		err := m.copy.Initialize(m.resources(nil))
		if err != nil {
			return err
		}
	}

	res := m.resources(m.copy)

	for i, p := range passes {
		err := p.Initialize(res, i < len(passes)-1)
		if err != nil {
			for _, q := range passes[:i] {
				q.Destroy()
			}
			logger.Logf(m, "animation", "set: %v", err)
			return err
		}
	}

	err := scene.Start(m.environment(m.width, m.height))
	if err != nil {
		for _, p := range passes {
			p.Destroy()
		}
		return curated.Errorf(SceneError, err)
	}

	width, height := m.host.Size()
	err = resizePasses(scene, passes, width, height)
	if err != nil {
		for _, p := range passes {
			p.Destroy()
		}
		logger.Logf(m, "animation", "set: %v", err)
		return err
	}

	m.release()
	m.scene = scene
	m.passes = passes
	m.width = width
	m.height = height

	logger.Logf(m, "animation", "scene set with %d passes", len(passes))

	return nil
}

func (m *Manager) resources(copier *renderer.CopyPass) renderer.Resources {
	res := renderer.Resources{
		Context: m.ctx,
		Caps:    m.caps,
		Quad:    m.quad,
	}
	if copier != nil {
		res.Copier = copier
	}
	return res
}

// shares returns true if any of the passes belong to the current scene.
func (m *Manager) shares(passes []*renderer.Renderer) bool {
	for _, p := range passes {
		for _, q := range m.passes {
			if p == q {
				return true
			}
		}
	}
	return false
}

// release the passes of the current scene.
func (m *Manager) release() {
	for _, p := range m.passes {
		p.Destroy()
	}
	m.passes = nil
	m.scene = nil
}

// environment for the current frame. width and height are the size of the
// surface and will be replaced by the size of the pass target when a pass is
// drawn.
func (m *Manager) environment(width, height int) shader.Environment {
	env := shader.Environment{
		Frame:           m.clock.Frame(),
		Elapsed:         m.clock.Elapsed(),
		Delta:           m.clock.Delta(),
		Width:           width,
		Height:          height,
		Pointer:         m.pointer.Position(),
		PointerVelocity: m.pointer.Velocity(),
	}
	env.Orientation, _ = m.orientation.Value()
	return env
}

// Start scheduling frames. The clock is started if it is not running.
func (m *Manager) Start() error {
	if m.destroyed {
		return curated.Errorf(Destroyed)
	}
	if !m.clock.Running() {
		m.clock.Start()
	}
	m.err = nil
	m.schedule()
	return nil
}

func (m *Manager) schedule() {
	if m.scheduled || m.destroyed {
		return
	}
	m.scheduled = true
	m.host.RequestFrame(m.tick)
}

// tick is the function given to the host's RequestFrame().
func (m *Manager) tick(now time.Duration) {
	m.scheduled = false
	if m.destroyed {
		return
	}

	err := m.Frame(now)
	if err != nil {
		m.err = err
		logger.Log(m, "animation", err)
		return
	}

	m.schedule()
}

// Frame draws one frame. The scene is updated, every pass is drawn in order
// and then the clock is advanced to the host time. Frame can be called
// directly by hosts that do not schedule frames with RequestFrame().
//
// If Destroy() is called during the frame, by a scene hook for example, the
// frame is completed before the resources are released.
func (m *Manager) Frame(now time.Duration) error {
	if m.destroyed {
		return curated.Errorf(Destroyed)
	}

	m.framing = true
	err := m.frame(now)
	m.framing = false

	if m.destroyed {
		m.teardown()
	}

	return err
}

func (m *Manager) frame(now time.Duration) error {
	if m.scene != nil {
		env := m.environment(m.width, m.height)

		err := m.scene.Update(env)
		if err != nil {
			return curated.Errorf(FrameError, env.Frame, curated.Errorf(SceneError, err))
		}

		for _, p := range m.passes {
			err = p.Update(env)
			if err != nil {
				return curated.Errorf(FrameError, env.Frame, err)
			}
		}
	}

	m.clock.Advance(now)

	return nil
}

// Resized implements the gpu.Events interface.
func (m *Manager) Resized(width, height int) {
	err := m.resize(width, height)
	if err != nil {
		m.err = err
		logger.Log(m, "animation", err)
	}
}

func (m *Manager) resize(width, height int) error {
	m.width = width
	m.height = height

	if m.scene == nil {
		return nil
	}

	err := resizePasses(m.scene, m.passes, width, height)
	if err != nil {
		return err
	}

	logger.Logf(m, "animation", "resized to %dx%d", width, height)

	return nil
}

func resizePasses(scene Scene, passes []*renderer.Renderer, width, height int) error {
	scene.Resize(width, height)
	for _, p := range passes {
		err := p.Resize(width, height)
		if err != nil {
			return err
		}
	}
	return nil
}

// PointerMoved implements the gpu.Events interface.
func (m *Manager) PointerMoved(x, y float32) {
	m.pointer.move(x, y, m.width, m.height)
	if m.scene != nil {
		m.scene.PointerMove(m.pointer.Position(), m.pointer.Velocity())
	}
}

// Oriented implements the gpu.Events interface.
func (m *Manager) Oriented(alpha, beta, gamma float32) {
	m.orientation.set(alpha, beta, gamma)
	if o, ok := m.scene.(Orienter); ok {
		v, _ := m.orientation.Value()
		o.Orient(v)
	}
}

// Destroy stops the frame loop and releases every resource created by the
// manager. A frame in progress is allowed to complete and the resources are
// released when it does. It is safe to call Destroy more than once.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.framing {
		logger.Log(m, "animation", "destroy deferred until end of frame")
		return
	}
	m.teardown()
}

func (m *Manager) teardown() {
	m.release()
	m.copy.Destroy()
	m.clock.Stop()
	logger.Log(m, "animation", "destroyed")
}

func (m *Manager) String() string {
	if m.scene == nil {
		return fmt.Sprintf("%s: no scene", m.caps)
	}
	return fmt.Sprintf("%s: %d passes", m.caps, len(m.passes))
}
