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

package transport

import (
	"net"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/uri"
)

const (
	// DefaultUnixSocket is the read-write daemon socket.
	DefaultUnixSocket = "/var/run/libvirt/libvirt-sock"
	// DefaultUnixSocketReadOnly is the read-only daemon socket, selected
	// when the connection was opened with the read-only flag set.
	DefaultUnixSocketReadOnly = "/var/run/libvirt/libvirt-sock-ro"
)

// dialUnix connects to a local stream socket. Path defaults to one of
// the two well-known locations, keyed on opt.ReadOnly: the open call's
// own flag, not any heuristic over the URI path.
func dialUnix(p *uri.Params, opt Options) (*Channel, rerr.Error) {
	path := defaultSocketPath(p, opt.ReadOnly)

	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, rerr.New(rerr.SystemError, "transport", "connect to unix socket "+path).Add(err)
	}

	return &Channel{ReadWriteCloser: conn}, nil
}

// defaultSocketPath returns p.Socket when the URI supplied one, and
// otherwise the read-write or read-only well-known socket per
// readOnly, matching the original driver's branch on the open call's
// flags rather than the URI path.
func defaultSocketPath(p *uri.Params, readOnly bool) string {
	if p.HasSocket && p.Socket != "" {
		return p.Socket
	}
	if readOnly {
		return DefaultUnixSocketReadOnly
	}
	return DefaultUnixSocket
}
