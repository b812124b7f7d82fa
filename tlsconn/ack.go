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

package tlsconn

import (
	"io"
	"net"

	"github.com/nabbar/virt-remote-client/rerr"
)

// ackByte is the single byte the server writes once it has accepted the
// TLS session, the application-level handshake completion signal.
const ackByte = 0x01

// ReadServerAck reads exactly one byte from sess and requires it to
// equal ackByte. Any other value, or a short read that is not a
// retriable interruption, is a fatal Rpc error.
func ReadServerAck(sess *Session) rerr.Error {
	return readServerAckFrom(sess.Conn)
}

// readServerAckFrom is the pure, testable core of ReadServerAck: it only
// needs an io.Reader, so tests can exercise it over a net.Pipe without a
// live TLS handshake.
func readServerAckFrom(r io.Reader) rerr.Error {
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n == 1 {
			break
		}
		if err == io.EOF {
			return rerr.New(rerr.Rpc, "tlsconn", "server verification failed")
		}
		if ne, ok := err.(net.Error); ok && ne.Temporary() { //nolint:staticcheck
			continue
		}
		if err != nil {
			return rerr.New(rerr.Rpc, "tlsconn", "server verification failed").Add(err)
		}
	}

	if b[0] != ackByte {
		return rerr.New(rerr.Rpc, "tlsconn", "server verification failed")
	}
	return nil
}
