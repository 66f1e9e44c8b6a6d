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

package animation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/framebuffer"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
	"github.com/jetsetilly/shaderloop/test"
)

const solidSource = "uniform vec4 uColor; // solid"
const inputSource = "uniform sampler2D uInput; // input"

var red = mgl32.Vec4{1, 0, 0, 1}
var green = mgl32.Vec4{0, 1, 0, 1}

func newManager(t *testing.T, width, height int, opts headless.Options) (*animation.Manager, *headless.Canvas) {
	t.Helper()
	cnv := headless.NewCanvas(width, height, opts)
	m, err := animation.NewManager(cnv, animation.Config{Quiet: true})
	test.DemandSuccess(t, err)
	return m, cnv
}

// order records the names of the passes as they are drawn.
type order []string

func (o *order) kernels(ctx *headless.Context) {
	ctx.Register(solidSource, func(f *headless.Fragment) {
		if f.X == 0 && f.Y == 0 {
			*o = append(*o, "solid")
		}
		f.Out[0] = f.Vec4("uColor")
	})
	ctx.Register(inputSource, func(f *headless.Fragment) {
		if f.X == 0 && f.Y == 0 {
			*o = append(*o, "input")
		}
		f.Out[0] = f.Sample("uInput", f.UV)
	})
}

func solidPass(t *testing.T, m *animation.Manager, name string, color shader.Source, cfg renderer.Config) *renderer.Renderer {
	t.Helper()
	cfg.Name = name
	cfg.Vertex = m.BaseVertex()
	cfg.Fragment = shader.New(gpu.Fragment, solidSource,
		shader.Uniform{Name: "uColor", Type: shader.Vec4, Source: color},
	)
	r, err := renderer.New(cfg)
	test.DemandSuccess(t, err)
	return r
}

func inputPass(t *testing.T, m *animation.Manager, name string, input *renderer.Renderer) *renderer.Renderer {
	t.Helper()
	r, err := renderer.New(renderer.Config{
		Name:   name,
		Vertex: m.BaseVertex(),
		Fragment: shader.New(gpu.Fragment, inputSource,
			shader.Uniform{Name: "uInput", Type: shader.Sampler, Source: renderer.PassOutput(input, 0)},
		),
	})
	test.DemandSuccess(t, err)
	return r
}

// scene records the calls to its hooks.
type scene struct {
	animation.Hooks
	passes []*renderer.Renderer

	started bool
	resized [2]int
	pointer [2]mgl32.Vec2
	orient  mgl32.Vec3
	fail    error

	// called by Update() if not nil
	update func()
}

func (s *scene) Passes() []*renderer.Renderer {
	return s.passes
}

func (s *scene) Start(_ shader.Environment) error {
	s.started = true
	return nil
}

func (s *scene) Update(_ shader.Environment) error {
	if s.update != nil {
		s.update()
	}
	return s.fail
}

func (s *scene) Resize(width, height int) {
	s.resized = [2]int{width, height}
}

func (s *scene) PointerMove(pos, vel mgl32.Vec2) {
	s.pointer = [2]mgl32.Vec2{pos, vel}
}

func (s *scene) Orient(v mgl32.Vec3) {
	s.orient = v
}

func TestLegacyCanvas(t *testing.T) {
	m, cnv := newManager(t, 1, 1, headless.Options{})

	test.ExpectFailure(t, m.WebGL2IsSupported())
	test.ExpectEquality(t, len(cnv.Requested()), 2)
	test.ExpectEquality(t, cnv.Requested()[0], gpu.Modern)
	test.ExpectEquality(t, cnv.Requested()[1], gpu.Legacy)
	test.ExpectEquality(t, cnv.Attributes(), gpu.DefaultAttributes)

	// every legacy extension was probed
	probed := strings.Join(m.Probed(), " ")
	test.ExpectEquality(t, probed, strings.Join([]string{
		gpu.ExtFloatTexture, gpu.ExtDrawBuffers, gpu.ExtColorBufferFloat,
	}, " "))
	test.ExpectEquality(t, strings.Join(cnv.Context().Probed(), " "), probed)

	caps := m.Capabilities()
	test.ExpectFailure(t, caps.Modern)
	test.ExpectFailure(t, caps.DrawBuffers)
	test.ExpectEquality(t, caps.Format(), gpu.RGBA8)

	// three outputs on a context without multiple render targets
	_, err := framebuffer.New(m.Context(), caps, framebuffer.Config{Outputs: 3})
	test.ExpectSuccess(t, curated.Is(err, framebuffer.CapabilityError))

	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{FBOConfig: framebuffer.Config{Outputs: 3}})
	b := inputPass(t, m, "b", a)
	err = m.Set(animation.Passes{a, b})
	test.ExpectSuccess(t, curated.Has(err, framebuffer.CapabilityError))
	test.ExpectSuccess(t, m.Scene() == nil)
}

func TestModernCanvas(t *testing.T) {
	m, cnv := newManager(t, 1, 1, headless.Options{Modern: true, ColorBufferFloat: true, DrawBuffers: 8})

	test.ExpectSuccess(t, m.WebGL2IsSupported())
	test.ExpectEquality(t, len(cnv.Requested()), 1)

	caps := m.Capabilities()
	test.ExpectSuccess(t, caps.Modern)
	test.ExpectEquality(t, caps.MaxDrawBuffers, 8)
	test.ExpectEquality(t, caps.Format(), gpu.RGBA16F)

	fbo, err := framebuffer.New(m.Context(), caps, framebuffer.Config{Outputs: 3})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fbo.Outputs(), 3)
	test.ExpectEquality(t, fbo.Format(), gpu.RGBA16F)
}

func TestContextUnavailable(t *testing.T) {
	cnv := headless.NewCanvas(1, 1, headless.Options{Unavailable: true})
	_, err := animation.NewManager(cnv, animation.Config{Quiet: true})
	test.ExpectSuccess(t, curated.Is(err, animation.ContextUnavailable))
}

func TestEmptyScene(t *testing.T) {
	m, _ := newManager(t, 1, 1, headless.Options{})
	err := m.Set(animation.Passes{})
	test.ExpectSuccess(t, curated.Is(err, animation.EmptyScene))
}

func TestPassOrder(t *testing.T) {
	m, cnv := newManager(t, 4, 4, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	color := shader.Computed(func(env shader.Environment) any {
		if env.Frame == 0 {
			return red
		}
		return green
	})

	a := solidPass(t, m, "a", color, renderer.Config{})
	b := inputPass(t, m, "b", a)
	c := inputPass(t, m, "c", b)

	s := &scene{passes: []*renderer.Renderer{a, b, c}}
	test.DemandSuccess(t, m.Set(s))
	test.ExpectSuccess(t, s.started)
	test.ExpectEquality(t, s.resized, [2]int{4, 4})

	// every pass except the last draws into an FBO
	test.ExpectFailure(t, a.FBO() == nil)
	test.ExpectFailure(t, b.FBO() == nil)
	test.ExpectSuccess(t, c.FBO() == nil)

	test.DemandSuccess(t, m.Start())
	test.ExpectSuccess(t, cnv.Pending())

	test.ExpectSuccess(t, cnv.Tick())
	test.DemandSuccess(t, m.Err())
	test.ExpectEquality(t, strings.Join(o, " "), "solid input input")
	test.ExpectEquality(t, cnv.Context().Pixel(headless.Surface, 1, 1), red)

	// the surface shows the colour computed for the same frame
	o = o[:0]
	test.ExpectSuccess(t, cnv.Tick())
	test.ExpectEquality(t, strings.Join(o, " "), "solid input input")
	test.ExpectEquality(t, cnv.Context().Pixel(headless.Surface, 1, 1), green)

	test.ExpectEquality(t, m.Clock().Frame(), 2)
	test.ExpectEquality(t, m.Clock().Elapsed(), cnv.Step)
}

func TestDestroy(t *testing.T) {
	m, cnv := newManager(t, 2, 2, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{AutoFeedback: true})
	test.DemandSuccess(t, m.Set(animation.Passes{a}))
	test.DemandSuccess(t, m.Start())
	test.ExpectEquality(t, cnv.Run(3), 3)

	draws := cnv.Context().Draws()
	m.Destroy()
	m.Destroy()

	// the frame requested before the manager was destroyed does nothing and
	// does not request another frame
	test.ExpectSuccess(t, cnv.Tick())
	test.ExpectFailure(t, cnv.Pending())
	test.ExpectEquality(t, cnv.Context().Draws(), draws)
	test.ExpectFailure(t, a.Initialised())

	test.ExpectFailure(t, m.Start())
	test.ExpectFailure(t, m.Set(animation.Passes{a}))
}

func TestDestroyDuringFrame(t *testing.T) {
	m, cnv := newManager(t, 2, 2, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{})
	s := &scene{passes: []*renderer.Renderer{a}, update: m.Destroy}
	test.DemandSuccess(t, m.Set(s))
	test.DemandSuccess(t, m.Start())

	// the frame that called Destroy is completed
	test.ExpectSuccess(t, cnv.Tick())
	test.ExpectEquality(t, strings.Join(o, " "), "solid")
	test.ExpectEquality(t, cnv.Context().Pixel(headless.Surface, 1, 1), red)
	test.ExpectSuccess(t, m.Err())

	// and is the last frame
	test.ExpectFailure(t, cnv.Pending())
	test.ExpectFailure(t, a.Initialised())
	test.ExpectSuccess(t, m.Scene() == nil)
	test.ExpectSuccess(t, curated.Is(m.Frame(0), animation.Destroyed))
}

// sizedHost reports a size that can differ from the size of the canvas.
type sizedHost struct {
	*headless.Canvas
	width  int
	height int
}

func (h *sizedHost) Size() (int, int) {
	return h.width, h.height
}

func TestSetResizeFailure(t *testing.T) {
	cnv := headless.NewCanvas(2, 2, headless.Options{MaxTextureSize: 400})
	host := &sizedHost{Canvas: cnv, width: 2, height: 2}
	m, err := animation.NewManager(host, animation.Config{Quiet: true})
	test.DemandSuccess(t, err)
	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{})
	b := inputPass(t, m, "b", a)
	old := animation.Passes{a, b}
	test.DemandSuccess(t, m.Set(old))
	textures := cnv.Context().Textures()

	// the FBO of the new scene cannot be resized to the host
	host.width = 500
	c := solidPass(t, m, "c", shader.Static(green), renderer.Config{})
	d := inputPass(t, m, "d", c)
	err = m.Set(animation.Passes{c, d})
	test.ExpectSuccess(t, curated.Has(err, renderer.PassError))

	// the previous scene is still in place
	test.ExpectFailure(t, c.Initialised())
	test.ExpectFailure(t, d.Initialised())
	test.ExpectSuccess(t, a.Initialised())
	test.ExpectSuccess(t, b.Initialised())
	test.ExpectEquality(t, cnv.Context().Textures(), textures)
	test.ExpectEquality(t, m.Scene().Passes()[0], a)

	w, h := m.Size()
	test.ExpectEquality(t, w, 2)
	test.ExpectEquality(t, h, 2)

	test.DemandSuccess(t, m.Frame(0))
	test.ExpectEquality(t, strings.Join(o, " "), "solid input")
	test.ExpectEquality(t, cnv.Context().Pixel(headless.Surface, 1, 1), red)
}

func TestSetCurrentScene(t *testing.T) {
	m, cnv := newManager(t, 2, 2, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{})
	b := inputPass(t, m, "b", a)
	test.DemandSuccess(t, m.Set(animation.Passes{a, b}))
	textures := cnv.Context().Textures()

	// setting the current scene again restarts it
	test.DemandSuccess(t, m.Set(animation.Passes{a, b}))
	test.ExpectSuccess(t, a.Initialised())
	test.ExpectEquality(t, cnv.Context().Textures(), textures)

	test.DemandSuccess(t, m.Frame(0))
	test.ExpectEquality(t, strings.Join(o, " "), "solid input")
	test.ExpectEquality(t, cnv.Context().Pixel(headless.Surface, 1, 1), red)
}

func TestFrameError(t *testing.T) {
	m, cnv := newManager(t, 2, 2, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	s := &scene{passes: []*renderer.Renderer{solidPass(t, m, "a", shader.Static(red), renderer.Config{})}}
	test.DemandSuccess(t, m.Set(s))
	test.DemandSuccess(t, m.Start())

	s.fail = errors.New("scene failure")
	test.ExpectSuccess(t, cnv.Tick())
	test.ExpectFailure(t, cnv.Pending())
	test.ExpectSuccess(t, curated.Has(m.Err(), animation.SceneError))

	// restarting clears the error
	s.fail = nil
	test.DemandSuccess(t, m.Start())
	test.ExpectSuccess(t, cnv.Tick())
	test.ExpectSuccess(t, cnv.Pending())
	test.ExpectSuccess(t, m.Err())
}

func TestEvents(t *testing.T) {
	m, cnv := newManager(t, 100, 50, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{AutoFeedback: true})
	b := inputPass(t, m, "b", a)
	s := &scene{passes: []*renderer.Renderer{a, b}}
	test.DemandSuccess(t, m.Set(s))

	w, h := a.FBO().Size()
	test.ExpectEquality(t, w, 100)
	test.ExpectEquality(t, h, 50)

	cnv.Resize(20, 10)
	test.ExpectEquality(t, s.resized, [2]int{20, 10})
	w, h = a.FBO().Size()
	test.ExpectEquality(t, w, 20)
	test.ExpectEquality(t, h, 10)
	test.ExpectSuccess(t, m.Err())

	// pointer positions are normalised with the origin at the bottom left
	cnv.MovePointer(5, 2)
	test.ExpectEquality(t, s.pointer[0], mgl32.Vec2{0.25, 0.8})
	test.ExpectEquality(t, s.pointer[1], mgl32.Vec2{0, 0})

	// and clamped to the surface
	cnv.MovePointer(10, 20)
	test.ExpectEquality(t, s.pointer[0], mgl32.Vec2{0.5, 0})
	test.ExpectApproximate(t, s.pointer[1][0], 0.25, 0.0001)
	test.ExpectApproximate(t, s.pointer[1][1], -0.8, 0.0001)

	var notified bool
	m.Orientation().Subscribe(func(v mgl32.Vec3) {
		notified = true
	})
	cnv.Orient(10, 20, 30)
	test.ExpectSuccess(t, notified)
	test.ExpectEquality(t, s.orient, mgl32.Vec3{10, 20, 30})
}

func TestGraph(t *testing.T) {
	m, cnv := newManager(t, 2, 2, headless.Options{})
	var o order
	o.kernels(cnv.Context())

	w := &strings.Builder{}
	test.ExpectFailure(t, m.Graph(w))

	a := solidPass(t, m, "a", shader.Static(red), renderer.Config{})
	b := inputPass(t, m, "b", a)
	test.DemandSuccess(t, m.Set(animation.Passes{a, b}))

	test.DemandSuccess(t, m.Graph(w))
	out := w.String()
	test.ExpectSuccess(t, strings.HasPrefix(out, "digraph"))
	test.ExpectFailure(t, strings.Contains(out, "cannot map"))

	// every pass is a node and the second pass links to its input
	test.ExpectEquality(t, strings.Count(out, "<name> graphPass"), 2)
	test.ExpectSuccess(t, strings.Contains(out, "Inputs"))
	test.ExpectSuccess(t, strings.Contains(out, "->"))
}
