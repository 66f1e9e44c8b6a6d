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
	"bytes"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/renderer"
	"github.com/jetsetilly/shaderloop/shader"
)

// prefix of the output written by memviz when the value cannot be mapped.
const graphFailure = "error: "

// a node in the render graph. the fields are exported so that they are
// visible to memviz.
type graphPass struct {
	Name       string
	Target     string
	Iterations int
	Vertex     string
	Fragment   string
	Uniforms   []string
	Inputs     []*graphPass
}

// Graph writes the render graph of the current scene to the writer, in
// graphviz dot format. Each pass is a node, with an edge to every earlier pass
// it samples.
func (m *Manager) Graph(w io.Writer) error {
	if m.scene == nil {
		return curated.Errorf(EmptyScene)
	}

	nodes := make([]*graphPass, len(m.passes))
	lookup := make(map[*renderer.Renderer]*graphPass)

	for i, p := range m.passes {
		vs, fs := p.Shaders()
		n := &graphPass{
			Name:       p.Name(),
			Target:     "surface",
			Iterations: p.Iterations(),
			Vertex:     vs.String(),
			Fragment:   fs.String(),
		}
		if p.FBO() != nil {
			n.Target = p.FBO().String()
		}
		nodes[i] = n
		lookup[p] = n
	}

	for i, p := range m.passes {
		vs, fs := p.Shaders()
		uniforms := append([]shader.Uniform{}, vs.Uniforms()...)
		uniforms = append(uniforms, fs.Uniforms()...)
		for _, u := range uniforms {
			nodes[i].Uniforms = append(nodes[i].Uniforms, u.Name)
			if s, ok := u.Source.(renderer.PassSource); ok {
				if in, ok := lookup[s.Pass]; ok {
					nodes[i].Inputs = append(nodes[i].Inputs, in)
				}
			}
		}
	}

	// memviz reports failure in the output rather than by returning an error
	var buf bytes.Buffer
	memviz.Map(&buf, &nodes)
	if bytes.HasPrefix(buf.Bytes(), []byte(graphFailure)) {
		return curated.Errorf(GraphError, strings.TrimPrefix(buf.String(), graphFailure))
	}

	_, err := buf.WriteTo(w)
	if err != nil {
		return curated.Errorf(GraphError, err)
	}

	return nil
}
