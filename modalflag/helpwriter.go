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
	"io"
	"strings"
)

// helpWriter collects the output of the flag package so that it can be
// amended with sub-mode information.
type helpWriter struct {
	buffer strings.Builder
}

// Write buffers all output.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	return hw.buffer.Write(p)
}

func (hw *helpWriter) help(output io.Writer, banner string, flags *flag.FlagSet, subModes []SubMode, additionalHelp string) {
	if output == nil {
		return
	}

	// the flag package has already written a usage message to the buffer. we
	// don't want that, just the flag defaults
	hw.buffer.Reset()
	flags.PrintDefaults()
	defaults := hw.buffer.String()

	if defaults == "" && len(subModes) == 0 {
		io.WriteString(output, "No help available")
		if banner != "" {
			fmt.Fprintf(output, " for %s mode", banner)
		}
		io.WriteString(output, "\n")
		return
	}

	if banner != "" {
		fmt.Fprintf(output, "Usage of %s mode:\n", banner)
	} else {
		io.WriteString(output, "Usage:\n")
	}

	io.WriteString(output, defaults)

	if len(subModes) > 0 {
		if defaults != "" {
			io.WriteString(output, "\n")
		}

		var width int
		for _, s := range subModes {
			width = max(width, len(s.Name))
		}

		io.WriteString(output, "  available sub-modes:\n")
		for i, s := range subModes {
			d := s.Description
			if i == 0 {
				d = strings.TrimSpace(fmt.Sprintf("%s (default)", d))
			}
			if d == "" {
				fmt.Fprintf(output, "    %s\n", s.Name)
			} else {
				fmt.Fprintf(output, "    %-*s  %s\n", width, s.Name, d)
			}
		}
	}

	if additionalHelp != "" {
		io.WriteString(output, "\n")
		io.WriteString(output, additionalHelp)
		io.WriteString(output, "\n")
	}
}
