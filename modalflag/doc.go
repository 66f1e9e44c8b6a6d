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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given to the Modes type with NewArgs() and then parsed, one
// layer at a time, with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubMode("RUN", "open a window and run a scene")
//	md.AddSubMode("HEADLESS", "render frames without a display")
//	p, err := md.Parse()
//
// After a successful Parse(), Mode() is the sub-mode that was selected, or
// the first sub-mode if none was given on the command line. NewMode() then
// starts the next layer, with its own flags:
//
//	md.NewMode()
//	frames := md.AddInt("frames", 60, "number of frames to render")
//	size := md.AddSize("size", image.Pt(400, 400), "size of the surface")
//	p, err = md.Parse()
//
// Sub-mode names are case insensitive. Help is requested with -help or -h
// and is printed to Output automatically, in which case Parse() returns
// ParseHelp.
//
// In addition to the flag types of the standard flag package, Modes supports
// size flags (eg. "640x480") and choice flags, which are string flags
// restricted to a list of values.
package modalflag
