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
	"fmt"
	"image"
	"math"
	"os"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/capture"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/headless"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/modalflag"
	"github.com/jetsetilly/shaderloop/paths"
	"github.com/jetsetilly/shaderloop/scenes"
)

// the flags shared by every mode that uses the software GPU.
type headlessFlags struct {
	scene   *string
	size    *image.Point
	legacy  *bool
	float   *bool
	targets *int
	log     *bool
}

func addHeadlessFlags(md *modalflag.Modes) headlessFlags {
	return headlessFlags{
		scene:   md.AddString("scene", scenes.Default, "scene to render (see SCENES mode)"),
		size:    md.AddSize("size", image.Point{X: 320, Y: 240}, "size of the canvas"),
		legacy:  md.AddBool("legacy", false, "canvas does not offer a modern context"),
		float:   md.AddBool("float", true, "canvas supports float textures"),
		targets: md.AddInt("targets", 4, "number of simultaneous draw buffers offered by the canvas"),
		log:     md.AddBool("log", false, "echo log to stdout"),
	}
}

// headlessScene creates a canvas and frame driver as described by the flags
// and sets the scene.
func headlessScene(f headlessFlags) (*animation.Manager, *headless.Canvas, error) {
	if *f.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	cnv := headless.NewCanvas(f.size.X, f.size.Y, headless.Options{
		Modern:           !*f.legacy,
		FloatTextures:    *f.float,
		ColorBufferFloat: *f.float,
		DrawBuffers:      *f.targets,
	})

	mgr, err := animation.NewManager(cnv, animation.Config{})
	if err != nil {
		return nil, nil, err
	}

	err = setScene(mgr, *f.scene)
	if err != nil {
		mgr.Destroy()
		return nil, nil, err
	}

	return mgr, cnv, nil
}

// orbit moves the pointer around the centre of the canvas. the position
// depends on the frame number so that scenes that follow the pointer have
// something to show.
func orbit(cnv *headless.Canvas, frame int) {
	w, h := cnv.Size()
	a := float64(frame) * 0.1
	x := float64(w) * (0.5 + 0.3*math.Cos(a))
	y := float64(h) * (0.5 + 0.3*math.Sin(a))
	cnv.MovePointer(float32(x), float32(y))
}

// runFrames runs the number of frames, moving the pointer before each one.
func runFrames(mgr *animation.Manager, cnv *headless.Canvas, frames int) error {
	for i := 0; i < frames; i++ {
		orbit(cnv, mgr.Clock().Frame())
		if !cnv.Tick() {
			break // for loop
		}
	}
	return mgr.Err()
}

// screenshot reads the visible surface of the canvas and saves it.
func screenshot(mgr *animation.Manager, cnv *headless.Canvas, scale int, path string) error {
	w, h := cnv.Size()
	img, err := capture.Read(mgr.Context(), gpu.Surface, w, h)
	if err != nil {
		return err
	}
	return capture.Save(capture.Scale(img, scale), path)
}

func headlessRender(md *modalflag.Modes) error {
	md.NewMode()

	f := addHeadlessFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to render")
	scale := md.AddInt("scale", 1, "integer scaling of the saved image")
	out := md.AddString("out", "", "filename of the saved image. the extension selects PNG or JPEG")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *frames < 1 {
		return fmt.Errorf("at least one frame must be rendered")
	}

	mgr, cnv, err := headlessScene(f)
	if err != nil {
		return err
	}
	defer mgr.Destroy()

	err = mgr.Start()
	if err != nil {
		return err
	}

	err = runFrames(mgr, cnv, *frames)
	if err != nil {
		return err
	}

	pth := *out
	if pth == "" {
		pth, err = paths.ResourcePath("shots", paths.UniqueFilename("shot", *f.scene)+".png")
		if err != nil {
			return err
		}
	}

	err = screenshot(mgr, cnv, *scale, pth)
	if err != nil {
		return err
	}

	fmt.Printf("* %d frames of %s saved to %s\n", mgr.Clock().Frame(), *f.scene, pth)

	return nil
}

func graph(md *modalflag.Modes) error {
	md.NewMode()

	f := addHeadlessFlags(md)
	out := md.AddString("out", "", "file to write the graph to. stdout if not specified")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	mgr, _, err := headlessScene(f)
	if err != nil {
		return err
	}
	defer mgr.Destroy()

	if *out == "" {
		return mgr.Graph(os.Stdout)
	}

	fh, err := os.Create(*out)
	if err != nil {
		return err
	}

	err = mgr.Graph(fh)
	if err != nil {
		_ = fh.Close()
		return err
	}

	return fh.Close()
}
