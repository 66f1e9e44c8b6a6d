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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf()
// but the pattern is remembered so that the error can be identified later.
// Patterns are stored as exported constants by the package that raises the
// error. For example:
//
//	const CapabilityError = "fbo: capability: %v"
//
//	err := curated.Errorf(CapabilityError, "multiple render targets not available")
//
//	if curated.Is(err, CapabilityError) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("shader: compile: %v", log)
//	f := curated.Errorf("renderer: %v", e)
//
//	if curated.Has(f, "shader: compile: %v") {
//		fmt.Println("true")
//	}
//
// The Error() function normalises the chain so that it does not contain
// duplicate adjacent parts. This means a caller can wrap an error with the
// same prefix as the callee without the message reading "fbo: fbo: ...".
//
// Chains are composed of parts separated by the sub-string ': '.
//
// Curated errors also take part in the standard library's error wrapping.
// Any error value passed to Errorf() is returned by Unwrap(), so errors.Is()
// and errors.As() see through a curated error.
package curated
