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
package prefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/shaderloop/logger"
)

// the separator between key and value, and between entries, in a command
// line preferences string.
const (
	commandLineKeySep   = "::"
	commandLineEntrySep = ";"
)

// each group on the stack maps keys to unparsed values
var commandLineStack []map[string]Value

// SizeCommandLineStack returns the number of groups that have been pushed
// with PushCommandLineStack() and not yet popped.
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PopCommandLineStack forgets the most recent group pushed by
// PushCommandLineStack().
//
// Returns the values in the group that were never used, in the same format
// accepted by PushCommandLineStack() with the keys sorted.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}

	top := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	unused := make([]string, 0, len(keys))
	for _, k := range keys {
		unused = append(unused, fmt.Sprintf("%s%s%v", k, commandLineKeySep, top[k]))
	}

	return strings.Join(unused, commandLineEntrySep+" ")
}

// PushCommandLineStack parses a preferences string and adds it as a new
// group. The string is a list of "key::value" entries separated by
// semi-colons. Malformed entries are logged and ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]Value)

	for _, e := range strings.Split(prefs, commandLineEntrySep) {
		if strings.TrimSpace(e) == "" {
			continue
		}
		k, v, ok := strings.Cut(e, commandLineKeySep)
		if !ok || strings.Contains(v, commandLineKeySep) {
			logger.Logf(logger.Allow, "prefs", "ignoring malformed command line preference: %s", strings.TrimSpace(e))
			continue
		}
		group[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	commandLineStack = append(commandLineStack, group)
}

// GetCommandLinePref returns the value for the key from the most recent
// group. The value is removed from the group when it is returned, so a value
// is only ever used once.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	top := commandLineStack[len(commandLineStack)-1]
	if v, ok := top[key]; ok {
		delete(top, key)
		return true, v
	}

	return false, nil
}
