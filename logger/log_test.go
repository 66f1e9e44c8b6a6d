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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/shaderloop/logger"
	"github.com/jetsetilly/shaderloop/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "fbo", "created")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "fbo: created\n")

	w.Reset()
	log.Log(logger.Allow, "renderer", "linked")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "fbo: created\nrenderer: linked\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "fbo: created\nrenderer: linked\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "renderer: linked\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "animation", "frame error")
	log.Log(logger.Allow, "animation", "frame error")
	log.Log(logger.Allow, "animation", "frame error")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "animation: frame error (repeat x3)\n")
}

func TestMaximumEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

type prohibitLogging struct {
	allow bool
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	for _, allow := range []bool{true, false, true, false} {
		log.Clear()
		w.Reset()
		log.Log(prohibitLogging{allow: allow}, "tag", "detail")
		log.Write(w)
		if allow {
			test.ExpectEquality(t, w.String(), "tag: detail\n")
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}

	w.Reset()
	log.Clear()
	log.Log(logger.Deny, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("link failed")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: link failed\n")

	log.Clear()
	w.Reset()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: link failed\n")
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Log(logger.Allow, "tag", 100)
	log.Log(logger.Allow, "tag", "multi\nline")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\ntag: 100\ntag: multiline\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	echo := &strings.Builder{}

	log.Log(logger.Allow, "early", "entry")
	log.SetEcho(echo, true)
	log.Log(logger.Allow, "late", "entry")
	test.ExpectEquality(t, echo.String(), "early: entry\nlate: entry\n")

	log.SetEcho(nil, false)
	log.Log(logger.Allow, "quiet", "entry")
	test.ExpectEquality(t, echo.String(), "early: entry\nlate: entry\n")

	var borrowed int
	log.BorrowLog(func(e []logger.Entry) {
		borrowed = len(e)
	})
	test.ExpectEquality(t, borrowed, 3)
}
