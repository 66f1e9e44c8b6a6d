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

// Package prefs handles the preferences of the program. Preference values are
// typed (Bool, Int, Float and String) and can be persisted to a file with the
// Disk type.
//
// Values are safe to read and write from more than one goroutine although
// the hooks are called on the goroutine that calls Set().
//
// Preferences can be overridden for a single run of the program by pushing a
// "command line" group onto the stack with PushCommandLineStack(). The
// values in the group are applied whenever a preference with a matching key
// is added to, or loaded by, a Disk.
package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/jetsetilly/shaderloop/curated"
	"github.com/jetsetilly/shaderloop/logger"
)

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the separator between key and value in a preferences file.
const keySep = " :: "

// Sentinel error patterns.
const (
	DiskError    = "prefs: %v"
	KeyError     = "prefs: invalid key: %v"
	DuplicateKey = "prefs: key already added: %v"
	ValueError   = "prefs: %v: %v"
)

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

func (dsk Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// file does not need to exist.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(DiskError, "no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, " \t\n;") && !strings.Contains(key, "::")
}

// Add a preference value to the disk. The value of any command line
// preference with the same key is applied immediately.
func (dsk *Disk) Add(key string, p pref) error {
	if !validKey(key) {
		return curated.Errorf(KeyError, key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return dsk.commandLine(key, p)
}

func (dsk *Disk) commandLine(key string, p pref) error {
	if ok, v := GetCommandLinePref(key); ok {
		if err := p.Set(v); err != nil {
			return curated.Errorf(ValueError, key, err)
		}
	}
	return nil
}

// read the preferences file into a map of strings. a missing file is not an
// error and results in an empty map.
func (dsk *Disk) read() (map[string]string, error) {
	values := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, curated.Errorf(DiskError, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line must be the boilerplate. if it isn't then the file is not
	// a preferences file
	if !scanner.Scan() || scanner.Text() != WarningBoilerPlate {
		return nil, curated.Errorf(DiskError, fmt.Sprintf("%s is not a preferences file", dsk.path))
	}

	for scanner.Scan() {
		line := scanner.Text()
		k, v, ok := strings.Cut(line, keySep)
		if !ok {
			logger.Logf(logger.Allow, "prefs", "ignoring malformed line: %s", line)
			continue
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(DiskError, err)
	}

	return values, nil
}

// Save the current preference values to disk. Values in the file that have
// not been added to this Disk are preserved.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, values[k]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load preference values from disk. Keys in the file that have not been
// added to the Disk are ignored. Command line preferences override values in
// the file.
func (dsk *Disk) Load() error {
	values, err := dsk.read()
	if err != nil {
		return err
	}

	for _, k := range dsk.keys() {
		p := dsk.entries[k]
		if v, ok := values[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(ValueError, k, err)
			}
		}
		if err := dsk.commandLine(k, p); err != nil {
			return err
		}
	}

	return nil
}

// Reset every preference value added to the Disk. The file is not changed
// until Save() is called.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(ValueError, k, err)
		}
	}
	return nil
}
