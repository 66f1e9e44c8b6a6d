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
package prefs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/prefs"
	"github.com/jetsetilly/shaderloop/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.String(), "false")
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("FALSE"))
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectFailure(t, b.Set(10))
}

func TestIntRange(t *testing.T) {
	var i prefs.Int
	i.SetRange(1, 4096)
	test.ExpectSuccess(t, i.Set("640"))
	test.ExpectEquality(t, i.Get().(int), 640)
	test.ExpectFailure(t, i.Set(0))
	test.ExpectFailure(t, i.Set("wide"))
	test.ExpectEquality(t, i.Get().(int), 640)
}

func TestFloat(t *testing.T) {
	var f prefs.Float
	test.ExpectSuccess(t, f.Set(float32(0.5)))
	test.ExpectEquality(t, f.String(), "0.5")
	f.SetRange(0, 1)
	test.ExpectFailure(t, f.Set(1.5))
	test.ExpectSuccess(t, f.Reset())
	test.ExpectEquality(t, f.Get().(float64), 0.0)
}

func TestString(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("diffuse"))
	s.SetMaxLen(4)
	test.ExpectEquality(t, s.String(), "diff")
	test.ExpectSuccess(t, s.Set(12345))
	test.ExpectEquality(t, s.String(), "1234")
}

func TestHooks(t *testing.T) {
	var i prefs.Int
	var post int

	i.SetHookPre(func(v prefs.Value) error {
		if v.(int) == 13 {
			return errors.New("unlucky")
		}
		return nil
	})
	i.SetHookPost(func(v prefs.Value) error {
		post = v.(int)
		return nil
	})

	test.ExpectSuccess(t, i.Set(60))
	test.ExpectEquality(t, post, 60)
	test.ExpectFailure(t, i.Set(13))
	test.ExpectEquality(t, i.Get().(int), 60)
	test.ExpectEquality(t, post, 60)
}

func TestDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var width prefs.Int
	var legacy prefs.Bool
	var scene prefs.String
	test.DemandSuccess(t, dsk.Add("window.width", &width))
	test.DemandSuccess(t, dsk.Add("context.legacy", &legacy))
	test.DemandSuccess(t, dsk.Add("scene", &scene))

	// duplicate and invalid keys
	test.ExpectEquality(t, curated.Is(dsk.Add("scene", &scene), prefs.DuplicateKey), true)
	test.ExpectEquality(t, curated.Is(dsk.Add("bad key", &scene), prefs.KeyError), true)

	test.ExpectSuccess(t, width.Set(640))
	test.ExpectSuccess(t, legacy.Set(true))
	test.ExpectSuccess(t, scene.Set("trail"))
	test.DemandSuccess(t, dsk.Save())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[0], prefs.WarningBoilerPlate)
	test.ExpectEquality(t, lines[1], "context.legacy :: true")
	test.ExpectEquality(t, lines[2], "scene :: trail")
	test.ExpectEquality(t, lines[3], "window.width :: 640")

	// load into a second disk
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var width2 prefs.Int
	var scene2 prefs.String
	test.DemandSuccess(t, dsk2.Add("window.width", &width2))
	test.DemandSuccess(t, dsk2.Add("scene", &scene2))
	test.DemandSuccess(t, dsk2.Load())
	test.ExpectEquality(t, width2.Get().(int), 640)
	test.ExpectEquality(t, scene2.String(), "trail")

	// saving the second disk preserves the key it doesn't know about
	test.ExpectSuccess(t, scene2.Set("palette"))
	test.DemandSuccess(t, dsk2.Save())
	data, err = os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, strings.Contains(string(data), "context.legacy :: true"), true)
	test.ExpectEquality(t, strings.Contains(string(data), "scene :: palette"), true)
}

func TestDiskCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var width prefs.Int
	test.DemandSuccess(t, dsk.Add("window.width", &width))
	test.ExpectSuccess(t, width.Set(640))
	test.DemandSuccess(t, dsk.Save())

	// command line value overrides the value on disk
	prefs.PushCommandLineStack("window.width::320")
	defer prefs.PopCommandLineStack()

	test.DemandSuccess(t, dsk.Load())
	test.ExpectEquality(t, width.Get().(int), 320)
}

func TestNotPreferencesFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("width :: 100\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, curated.Is(dsk.Load(), prefs.DiskError), true)

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
}
