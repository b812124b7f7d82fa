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

// Package rerr implements the error taxonomy shared by every layer of the
// remote driver core: URI parsing, transport dialing, TLS bring-up and the
// RPC engine all raise errors through this package instead of returning
// bare errors.Error values.
//
// The taxonomy is fixed across the library boundary:
//
//	InvalidArg   - input fails precondition (bad URI, malformed argument, closed handle)
//	NoMemory     - allocation failure
//	SystemError  - underlying OS call failed (connect, read, write, fork/exec)
//	GnuTlsError  - TLS-layer failure, carries the TLS library's own diagnostic string
//	Rpc          - protocol-level fault: framing, serial/procedure mismatch, oversize
//	               frame, unexpected EOF, unmarshalling failure, missing ack byte
//
// Every Error carries a subsystem tag (Domain), a numeric Code, a Level,
// up to three optional context strings, up to two context integers and a
// human message, mirroring the structured error record the wire protocol
// itself carries in a reply whose status is Error (see wireproto.ErrorRecord).
package rerr
