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

//go:build js && wasm

// The webshaderloop command runs a demo scene in the browser. The scene is
// drawn to the canvas with the id "shaderloop", which is created if it does
// not exist. The scene can be chosen with the "scene" query parameter of the
// page URL.
package main

import (
	"syscall/js"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/gpu/webgl"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/scenes"
)

func main() {
	console := consoleWriter{console: js.Global().Get("console")}
	logger.SetEcho(console, true)

	canvas := webgl.NewCanvas("shaderloop")

	mgr, err := animation.NewManager(canvas, animation.Config{})
	if err != nil {
		logger.Log(logger.Allow, "webshaderloop", err)
		return
	}

	name := scenes.Default
	query := js.Global().Get("URLSearchParams").New(js.Global().Get("location").Get("search"))
	if s := query.Call("get", "scene"); !s.IsNull() {
		name = s.String()
	}

	scn, err := scenes.Create(name, mgr.BaseVertex())
	if err != nil {
		logger.Log(logger.Allow, "webshaderloop", err)
		return
	}

	err = mgr.Set(scn)
	if err != nil {
		logger.Log(logger.Allow, "webshaderloop", err)
		return
	}

	err = mgr.Start()
	if err != nil {
		logger.Log(logger.Allow, "webshaderloop", err)
		return
	}

	// frames are driven by requestAnimationFrame() callbacks so main() must
	// not return
	select {}
}

// consoleWriter sends log entries to the browser console.
type consoleWriter struct {
	console js.Value
}

func (w consoleWriter) Write(p []byte) (int, error) {
	w.console.Call("log", string(p))
	return len(p), nil
}
