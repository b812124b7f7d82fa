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

package uri

import "strings"

// Transport identifies the mechanism used to reach the remote daemon.
type Transport uint8

const (
	// Tls is the default transport: mutually-authenticated TLS over TCP.
	Tls Transport = iota
	// Tcp is plain, unencrypted TCP.
	Tcp
	// Unix is a local stream socket.
	Unix
	// Ssh tunnels through a spawned remote shell.
	Ssh
	// Ext tunnels through an arbitrary user-supplied command.
	Ext
)

// String implements fmt.Stringer.
func (t Transport) String() string {
	switch t {
	case Tls:
		return "tls"
	case Tcp:
		return "tcp"
	case Unix:
		return "unix"
	case Ssh:
		return "ssh"
	case Ext:
		return "ext"
	default:
		return "unknown"
	}
}

// ParseTransport maps a "+transport" suffix (lowercased) to a Transport.
// An empty suffix defaults to Tls. An unrecognised suffix is reported via
// the second return value.
func ParseTransport(suffix string) (Transport, bool) {
	switch strings.ToLower(suffix) {
	case "":
		return Tls, true
	case "tls":
		return Tls, true
	case "tcp":
		return Tcp, true
	case "unix":
		return Unix, true
	case "ssh":
		return Ssh, true
	case "ext":
		return Ext, true
	default:
		return 0, false
	}
}

// DefaultPort returns the well-known port for transports that dial a
// TCP endpoint. Unix and Ext do not use a port and return 0.
func (t Transport) DefaultPort(tlsPort, tcpPort int) int {
	switch t {
	case Tls:
		return tlsPort
	case Tcp:
		return tcpPort
	case Ssh:
		return 22
	default:
		return 0
	}
}
