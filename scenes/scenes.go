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

// Package scenes contains the demonstration scenes. Every scene is written in
// GLSL for the hardware backends and has an equivalent kernel for the
// software GPU in gpu/headless, so each scene can be rendered without a
// display.
package scenes

import (
	"sort"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/shader"
)

// UnknownScene is returned by Create() when there is no scene with the
// requested name.
const UnknownScene = "scenes: unknown scene: %v"

// Entry describes a scene in the list of available scenes.
type Entry struct {
	Name        string
	Description string

	// the scene requires a context with multiple render targets
	MRT bool

	// create a new instance of the scene using the shared vertex shader
	Create func(vertex *shader.Shader) (animation.Scene, error)
}

var entries = map[string]Entry{
	"trail": {
		Name:        "trail",
		Description: "pointer trail fading in a feedback buffer",
		Create: func(vertex *shader.Shader) (animation.Scene, error) {
			return NewTrail(vertex)
		},
	},
	"diffuse": {
		Name:        "diffuse",
		Description: "scrolling stripes diffused by an iterative feedback pass",
		Create: func(vertex *shader.Shader) (animation.Scene, error) {
			return NewDiffuse(vertex)
		},
	},
	"palette": {
		Name:        "palette",
		Description: "two outputs from one draw, shown side by side",
		MRT:         true,
		Create: func(vertex *shader.Shader) (animation.Scene, error) {
			return NewPalette(vertex)
		},
	},
}

// Default is the name of the scene used when no scene is specified.
const Default = "trail"

// List returns every scene, sorted by name.
func List() []Entry {
	l := make([]Entry, 0, len(entries))
	for _, e := range entries {
		l = append(l, e)
	}
	sort.Slice(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
	return l
}

// Create a new instance of the named scene.
func Create(name string, vertex *shader.Shader) (animation.Scene, error) {
	e, ok := entries[name]
	if !ok {
		return nil, curated.Errorf(UnknownScene, name)
	}
	return e.Create(vertex)
}
