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
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/shaderloop/animation"
	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/gpu"
	"github.com/jetsetilly/shaderloop/gpu/glfwgl"
	"github.com/jetsetilly/shaderloop/gpu/sdlgl"
	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/modalflag"
	"github.com/jetsetilly/shaderloop/paths"
	"github.com/jetsetilly/shaderloop/prefs"
	"github.com/jetsetilly/shaderloop/scenes"
	"github.com/jetsetilly/shaderloop/statsview"
	"github.com/jetsetilly/shaderloop/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of windows
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the window
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread. Returns false
	// when the window has been closed.
	Service() bool
}

// communication between the main() function and the launch() function. this is
// required because SDL and GLFW require window event handling (including
// creation) and every GL call to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error

	// the gui has closed
	closed chan bool
}

func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
		closed:        make(chan bool, 1),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:])

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// an interface holding a nil pointer is not nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if gui != nil && !gui.Service() {
				gui.Destroy(os.Stderr)
				gui = nil
				sync.closed <- true
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubMode("RUN", "open a window and run a scene")
	md.AddSubMode("HEADLESS", "render a scene without a display and save the result")
	md.AddSubMode("STEP", "render a scene without a display one frame per keypress")
	md.AddSubMode("GRAPH", "write the render graph of a scene in dot format")
	md.AddSubMode("SCENES", "list the available scenes")
	md.AddSubMode("VERSION", "print the version and revision")
	stats := md.AddBool("statsview", false, "launch statsview server")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		// 10
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "HEADLESS":
		err = headlessRender(md)

	case "STEP":
		err = step(md)

	case "GRAPH":
		err = graph(md)

	case "SCENES":
		err = listScenes(md, os.Stdout)

	case "VERSION":
		v, r, _ := version.Version()
		fmt.Printf("%s %s\n%s\n", version.ApplicationName, v, r)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// preferences used by the RUN mode. the same keys can be given on the command
// line with the -prefs flag.
type runPrefs struct {
	dsk    *prefs.Disk
	width  prefs.Int
	height prefs.Int
	scene  prefs.String
	legacy prefs.Bool
}

func newRunPrefs() (*runPrefs, error) {
	pth, err := paths.ResourcePath("", "preferences")
	if err != nil {
		return nil, err
	}

	p := &runPrefs{}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	p.width.SetRange(1, 8192)
	p.height.SetRange(1, 8192)
	_ = p.width.Set(800)
	_ = p.height.Set(600)
	_ = p.scene.Set(scenes.Default)

	err = p.dsk.Add("window.width", &p.width)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("window.height", &p.height)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("scene", &p.scene)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("context.legacy", &p.legacy)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// window is the interface shared by the sdlgl and glfwgl windows.
type window interface {
	gpu.Host
	Service() bool
	Destroy()
}

// runner pairs a window with the frame driver running in it. it implements
// the GuiCreator interface.
type runner struct {
	win window
	mgr *animation.Manager
}

func (r *runner) Service() bool {
	return r.win.Service()
}

func (r *runner) Destroy(output io.Writer) {
	if r.mgr != nil {
		if err := r.mgr.Err(); err != nil {
			fmt.Fprintf(output, "* %v\n", err)
		}
		r.mgr.Destroy()
		r.mgr = nil
	}
	if r.win != nil {
		r.win.Destroy()
		r.win = nil
	}
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	scene := md.AddString("scene", "", "scene to run (see SCENES mode)")
	useGLFW := md.AddBool("glfw", false, "use GLFW for the window instead of SDL")
	legacy := md.AddBool("legacy", false, "refuse the modern context")
	log := md.AddBool("log", false, "echo log to stdout")
	save := md.AddBool("save", false, "save window size and scene to the preferences file")
	prefsOverride := md.AddString("prefs", "", "preferences values to override (key::value; key::value)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "shaderloop", "unused preferences: %s", unused)
			}
		}()
	}

	pref, err := newRunPrefs()
	if err != nil {
		return err
	}

	if *scene != "" {
		err = pref.scene.Set(*scene)
		if err != nil {
			return err
		}
	}
	if *legacy {
		err = pref.legacy.Set(true)
		if err != nil {
			return err
		}
	}

	title := fmt.Sprintf("%s - %s", version.String(), pref.scene)
	width := pref.width.Get().(int)
	height := pref.height.Get().(int)
	forceLegacy := pref.legacy.Get().(bool)
	sceneName := pref.scene.String()

	// the window, context and frame driver are all created on the main
	// thread
	sync.creator <- func() (GuiCreator, error) {
		var win window
		var err error
		if *useGLFW {
			win, err = glfwgl.NewWindow(title, width, height)
		} else {
			win, err = sdlgl.NewWindow(title, width, height)
		}
		if err != nil {
			return nil, err
		}

		r := &runner{win: win}

		var host gpu.Host = win
		if forceLegacy {
			host = legacyHost{Host: win}
		}

		r.mgr, err = animation.NewManager(host, animation.Config{})
		if err != nil {
			r.Destroy(io.Discard)
			return nil, err
		}

		err = setScene(r.mgr, sceneName)
		if err != nil {
			r.Destroy(io.Discard)
			return nil, err
		}

		err = r.mgr.Start()
		if err != nil {
			r.Destroy(io.Discard)
			return nil, err
		}

		return r, nil
	}

	select {
	case <-sync.creation:
	case err := <-sync.creationError:
		return err
	}

	<-sync.closed

	if *save {
		return pref.dsk.Save()
	}

	return nil
}

// setScene creates the named scene and sets it in the manager.
func setScene(mgr *animation.Manager, name string) error {
	scn, err := scenes.Create(name, mgr.BaseVertex())
	if err != nil {
		return err
	}
	return mgr.Set(scn)
}

// legacyHost refuses to provide a modern context. the frame driver will fall
// back to a legacy context and probe for extensions.
type legacyHost struct {
	gpu.Host
}

func (h legacyHost) Acquire(api gpu.API, attr gpu.Attributes) (gpu.Context, error) {
	if api == gpu.Modern {
		return nil, curated.Errorf(gpu.UnsupportedAPI, api, "legacy context forced")
	}
	return h.Host.Acquire(api, attr)
}

func listScenes(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, e := range scenes.List() {
		s := strings.Builder{}
		s.WriteString(fmt.Sprintf("%-10s %s", e.Name, e.Description))
		if e.MRT {
			s.WriteString(" [mrt]")
		}
		if e.Name == scenes.Default {
			s.WriteString(" (default)")
		}
		fmt.Fprintln(output, s.String())
	}

	return nil
}
