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
	"fmt"
	"net"
	"strconv"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/tlsconn"
	"github.com/nabbar/virt-remote-client/uri"
)

// dialTCP resolves p.Host, tries each resolved address in order, and
// returns the first one that both connects and, when useTLS is set,
// completes a verified TLS handshake. A single address's connect or
// handshake failure is not fatal; only exhausting the whole list is.
func dialTCP(p *uri.Params, opt Options, useTLS bool) (*Channel, rerr.Error) {
	opt.NoVerify = opt.NoVerify || p.NoVerify

	addrs, err := net.LookupHost(p.Host)
	if err != nil {
		return nil, rerr.New(rerr.SystemError, "transport", "resolve host").Add(err)
	}

	var lastErr rerr.Error
	for _, addr := range addrs {
		ch, derr := tryDial(net.JoinHostPort(addr, strconv.Itoa(p.Port)), p.Host, opt, useTLS)
		if derr == nil {
			return ch, nil
		}
		lastErr = derr
	}

	if lastErr == nil {
		lastErr = rerr.New(rerr.SystemError, "transport", "no addresses resolved")
	}
	return nil, lastErr
}

func tryDial(addr, hostname string, opt Options, useTLS bool) (*Channel, rerr.Error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, rerr.New(rerr.SystemError, "transport", fmt.Sprintf("connect to %s", addr)).Add(err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	if !useTLS {
		return &Channel{ReadWriteCloser: conn}, nil
	}

	sess, herr := tlsconn.Handshake(conn, opt.Credentials, tlsconn.HandshakeOptions{
		Hostname: hostname,
		NoVerify: opt.NoVerify,
		Log:      logEntry(opt.Log),
	})
	if herr != nil {
		_ = conn.Close()
		return nil, herr
	}

	if ackErr := tlsconn.ReadServerAck(sess); ackErr != nil {
		_ = conn.Close()
		return nil, ackErr
	}

	return &Channel{ReadWriteCloser: sess.Conn, TLS: sess}, nil
}
