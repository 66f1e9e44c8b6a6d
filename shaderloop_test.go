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
package main

import (
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/modalflag"
	"github.com/jetsetilly/shaderloop/test"
)

func TestLegacyHost(t *testing.T) {
	cnv := headless.NewCanvas(8, 8, headless.Options{Modern: true, DrawBuffers: 4})
	mgr, err := animation.NewManager(legacyHost{Host: cnv}, animation.Config{Quiet: true})
	test.DemandSuccess(t, err)
	defer mgr.Destroy()

	test.ExpectFailure(t, mgr.WebGL2IsSupported())

	// the modern request never reaches the canvas
	test.DemandEquality(t, len(cnv.Requested()), 1)
	test.ExpectEquality(t, cnv.Requested()[0], gpu.Legacy)
	test.ExpectEquality(t, mgr.Capabilities().MaxDrawBuffers, 4)
}

func TestListScenes(t *testing.T) {
	md := &modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{})

	s := &strings.Builder{}
	test.DemandSuccess(t, listScenes(md, s))

	lines := strings.Split(strings.TrimSpace(s.String()), "\n")
	test.DemandEquality(t, len(lines), 3)
	test.ExpectSuccess(t, strings.HasPrefix(lines[0], "diffuse"))
	test.ExpectSuccess(t, strings.HasSuffix(lines[1], "[mrt]"))
	test.ExpectSuccess(t, strings.HasSuffix(lines[2], "(default)"))
}

func TestHeadlessRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trail.png")

	md := &modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-size", "16x8", "-frames", "5", "-scale", "2", "-out", out})
	test.DemandSuccess(t, headlessRender(md))

	f, err := os.Open(out)
	test.DemandSuccess(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Width, 32)
	test.ExpectEquality(t, cfg.Height, 16)
}

func TestGraph(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.dot")

	md := &modalflag.Modes{Output: &strings.Builder{}}
	md.NewArgs([]string{"-scene", "diffuse", "-out", out})
	test.DemandSuccess(t, graph(md))

	data, err := os.ReadFile(out)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "digraph"))
}
