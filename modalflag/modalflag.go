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

package modalflag

import (
	"flag"
	"fmt"
	"image"
	"io"
	"strings"
)

const modeSeparator = "/"

// SubMode is a named program mode.
type SubMode struct {
	Name        string
	Description string
}

// Modes provides an easy way of handling command line arguments. The Output
// field should be specified before calling Parse() or you will not see any
// help messages.
type Modes struct {
	// where to print output (help messages etc)
	Output io.Writer

	// whether Parse() has been called since the last NewMode()
	parsed bool

	// a new flagset is created on every call to NewArgs() and NewMode()
	flags *flag.FlagSet

	// the argument list as specified by the NewArgs() function
	args    []string
	argsIdx int

	// sub-modes for the next call to Parse(). the first entry is the default
	subModes []SubMode

	// choice flags are validated after the flagset has been parsed
	choices []*choiceValue

	// the series of sub-modes that have been selected by calls to Parse().
	// never reset
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string of all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]

	// by definition, a newly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a new
// mode.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.choices = md.choices[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.additionalHelp = ""
	md.parsed = false
}

// AdditionalHelp is printed after the flag and sub-mode information when help
// is requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns false if Parse() has not been called since the last call to
// NewArgs() or NewMode(). A Modes struct is considered to be Parsed() even if
// Parse() resulted in an error.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified
	// then the result of Mode() should be checked
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

func (p ParseResult) String() string {
	switch p {
	case ParseContinue:
		return "continue"
	case ParseHelp:
		return "help"
	case ParseError:
		return "error"
	}
	return "unknown"
}

// Parse the next layer of arguments. The usual pattern is:
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		// help message has already been printed
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.help(md.Output, md.Path(), md.flags, md.subModes, md.additionalHelp)
			return ParseHelp, nil
		}
		return ParseError, err
	}

	for _, c := range md.choices {
		if err := c.validate(); err != nil {
			return ParseError, err
		}
	}

	// arguments consumed by the flagset are not available to the next layer
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0].Name
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, s := range md.subModes {
			if s.Name == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse(). ie. arguments that aren't flags or
// a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
// Returns the empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddSubModes to the list of sub-modes for the next parse. The first
// sub-mode ever added is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, s := range submodes {
		md.AddSubMode(s, "")
	}
}

// AddSubMode adds a sub-mode with a description that is shown in the help
// message.
func (md *Modes) AddSubMode(name string, description string) {
	md.subModes = append(md.subModes, SubMode{
		Name:        strings.ToUpper(name),
		Description: description,
	})
}

// AddDefaultSubMode inserts the sub-mode at the head of the list, making it
// the default.
func (md *Modes) AddDefaultSubMode(name string) {
	md.subModes = append([]SubMode{{Name: strings.ToUpper(name)}}, md.subModes...)
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddSize flag for next call to Parse(). Sizes are written as WIDTHxHEIGHT
// and both dimensions must be positive.
func (md *Modes) AddSize(name string, value image.Point, usage string) *image.Point {
	v := sizeValue(value)
	md.flags.Var(&v, name, usage)
	return (*image.Point)(&v)
}

// AddChoice flag for next call to Parse(). The value of the flag must be one
// of the choices. Comparison is case insensitive and the result is always
// in upper case.
func (md *Modes) AddChoice(name string, value string, choices []string, usage string) *string {
	c := &choiceValue{
		name:  name,
		value: strings.ToUpper(value),
	}
	for _, s := range choices {
		c.choices = append(c.choices, strings.ToUpper(s))
	}
	md.choices = append(md.choices, c)
	md.flags.Var(c, name, fmt.Sprintf("%s: %s", usage, strings.Join(c.choices, ", ")))
	return &c.value
}

// Visit visits the flags in lexicographical order, calling fn for each. It
// visits only those flags that have been set.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}

type sizeValue image.Point

func (s *sizeValue) String() string {
	return fmt.Sprintf("%dx%d", s.X, s.Y)
}

func (s *sizeValue) Set(v string) error {
	var w, h int
	n, err := fmt.Sscanf(strings.ToLower(v), "%dx%d", &w, &h)
	if err != nil || n != 2 {
		return fmt.Errorf("size must be in the form WIDTHxHEIGHT")
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("size must be positive")
	}
	s.X = w
	s.Y = h
	return nil
}

type choiceValue struct {
	name    string
	value   string
	choices []string
}

func (c *choiceValue) String() string {
	return c.value
}

func (c *choiceValue) Set(v string) error {
	c.value = strings.ToUpper(v)
	return nil
}

func (c *choiceValue) validate() error {
	for _, s := range c.choices {
		if s == c.value {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for flag -%s: must be one of %s", c.value, c.name, strings.Join(c.choices, ", "))
}
