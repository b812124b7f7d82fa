/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package rerr

import "strconv"

// Kind is the stable error taxonomy shared across the library boundary.
type Kind uint8

const (
	// UnknownKind is the zero value; never raised deliberately.
	UnknownKind Kind = iota
	// InvalidArg means the input failed a precondition: a bad URI, a
	// malformed argument, or use of a closed connection handle.
	InvalidArg
	// NoMemory means an allocation failed.
	NoMemory
	// SystemError means an underlying OS call failed (connect, read,
	// write, fork/exec).
	SystemError
	// GnuTlsError means the TLS layer failed; it carries the TLS
	// library's own diagnostic string as context.
	GnuTlsError
	// Rpc means a protocol-level fault: framing, serial/procedure
	// mismatch, oversize frame, unexpected EOF, unmarshalling failure,
	// or a missing server verification byte.
	Rpc
)

// String implements fmt.Stringer for Kind.
func (k Kind) String() string {
	switch k {
	case InvalidArg:
		return "InvalidArg"
	case NoMemory:
		return "NoMemory"
	case SystemError:
		return "SystemError"
	case GnuTlsError:
		return "GnuTlsError"
	case Rpc:
		return "Rpc"
	default:
		return "Unknown"
	}
}

// Level mirrors the severity carried by the wire protocol's structured
// error record.
type Level uint8

const (
	// LevelNone indicates no severity was attached.
	LevelNone Level = iota
	// LevelWarning is a non-fatal condition (used for the no_verify
	// soft-bypass path).
	LevelWarning
	// LevelError is a fatal condition for the call that raised it.
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "none"
	}
}

// Code is a numeric, subsystem-defined refinement of Kind, analogous to
// an HTTP status code: stable, sortable, but not exhaustive.
type Code uint16

// UnknownCode is the fallback used when no more specific code applies.
const UnknownCode Code = 0

func (c Code) String() string {
	return strconv.Itoa(int(c))
}
