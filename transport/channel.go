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
	"io"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/tlsconn"
	"github.com/nabbar/virt-remote-client/uri"
)

// Channel is the single bidirectional byte stream produced by Dial,
// together with the TLS session that secures it, if any.
type Channel struct {
	io.ReadWriteCloser

	// TLS is non-nil only for the Tls transport.
	TLS *tlsconn.Session

	// proc is set only for Ssh/Ext, so Close can also reap the child.
	proc *exec.Cmd
}

// Close closes the underlying stream and, for a spawned-subprocess
// channel, waits for the child to exit.
func (c *Channel) Close() error {
	err := c.ReadWriteCloser.Close()
	if c.proc != nil {
		_ = c.proc.Wait()
	}
	return err
}

// Options carries everything a Dial needs beyond the parsed URI:
// process-wide TLS credentials (nil unless the Tls transport is in
// play) and an optional logger for soft-bypass and diagnostic messages.
type Options struct {
	Credentials *tlsconn.Credentials
	Log         *logrus.Entry
	NoVerify    bool

	// ReadOnly is the open call's own read-only flag, not derived from
	// the URI path: it is what the Unix and Ssh transports key their
	// default-socket selection on, matching the original driver's
	// branch on the open call's flags rather than any path heuristic.
	ReadOnly bool
}

func logEntry(e *logrus.Entry) *logrus.Entry {
	if e != nil {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Dial produces an open Channel for p.Transport. It is the single entry
// point callers use; the per-transport logic lives in tcp.go, unix.go,
// ssh.go and ext.go.
func Dial(p *uri.Params, opt Options) (*Channel, rerr.Error) {
	switch p.Transport {
	case uri.Tls:
		return dialTCP(p, opt, true)
	case uri.Tcp:
		return dialTCP(p, opt, false)
	case uri.Unix:
		return dialUnix(p, opt)
	case uri.Ssh:
		return dialSsh(p, opt)
	case uri.Ext:
		return dialExt(p.Command)
	default:
		return nil, rerr.New(rerr.InvalidArg, "transport", "unsupported transport")
	}
}
