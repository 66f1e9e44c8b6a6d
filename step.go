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
//go:build !windows

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jetsetilly/shaderloop/modalflag"
	"github.com/jetsetilly/shaderloop/paths"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// cbreak puts the terminal attached to the file into cbreak mode. The
// returned function restores the original mode.
func cbreak(f *os.File) (func(), error) {
	var canAttr unix.Termios
	err := termios.Tcgetattr(f.Fd(), &canAttr)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)

	err = termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &cbreakAttr)
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	return func() {
		_ = termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &canAttr)
	}, nil
}

const stepHelp = `keys:
  space   run one frame
  f       run ten frames
  r       resize the canvas to half its size and back again
  s       save a screenshot
  q       quit`

// step renders the scene with the software GPU, one frame per keypress.
func step(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(stepHelp)

	f := addHeadlessFlags(md)
	scale := md.AddInt("scale", 1, "integer scaling of saved screenshots")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
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

	restore, err := cbreak(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()

	fmt.Println(stepHelp)

	input := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("\r* frame %d (%v) %s ", mgr.Clock().Frame(), mgr.Clock().Elapsed(), mgr)

		key, err := input.ReadByte()
		if err != nil {
			return err
		}

		switch key {
		case ' ':
			err = runFrames(mgr, cnv, 1)
		case 'f':
			err = runFrames(mgr, cnv, 10)
		case 'r':
			w, h := cnv.Size()
			cnv.Resize(max(1, w/2), max(1, h/2))
			cnv.Resize(w, h)
			err = mgr.Err()
		case 's':
			var pth string
			pth, err = paths.ResourcePath("shots", paths.UniqueFilename("step", *f.scene)+".png")
			if err == nil {
				err = screenshot(mgr, cnv, *scale, pth)
			}
			if err == nil {
				fmt.Printf("\n* saved %s\n", pth)
			}
		case 'q':
			fmt.Println()
			return nil
		}

		if err != nil {
			fmt.Println()
			return err
		}
	}
}
