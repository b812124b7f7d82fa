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

package stub

// Program and Version identify the single RPC program this driver
// speaks; every procedure below is invoked against this pair.
const (
	Program uint32 = 0x20008086
	Version uint32 = 1
)

// Procedure numbers for the eight stubs this package implements. The
// remaining procedures of the full remote protocol are not enumerated
// here; adding one is a matter of following the same six-step pattern
// against a new number.
const (
	ProcConnectOpen Procedure = iota + 1
	ProcConnectClose
	ProcConnectGetHostname
	ProcConnectGetType
	ProcConnectListDomains
	ProcDomainLookupByName
	ProcNetworkLookupByName
	ProcDomainSuspend
)

// Procedure is the wire-level procedure discriminant within Program.
type Procedure = uint32

// Protocol-declared ceilings, mirroring the bounds the original driver
// validates before ever touching the network. A request or reply
// naming a size beyond these is rejected without a round trip.
const (
	maxNameLen    = 1024
	maxHostname   = 1024
	maxTypeLen    = 64
	maxDomainList = 16344
	uuidRawLen    = 16
)
