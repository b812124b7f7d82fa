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
	"crypto/tls"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/virt-remote-client/rerr"
)

// Session wraps a completed TLS connection together with the hostname it
// was validated against, so later layers (the one-byte ack, the RPC
// engine) can keep using it as a plain io.ReadWriteCloser.
type Session struct {
	Conn     *tls.Conn
	Hostname string
}

// HandshakeOptions controls a single handshake attempt.
type HandshakeOptions struct {
	Hostname string
	NoVerify bool
	Log      *logrus.Entry
}

// Handshake performs the client-side TLS handshake over sock using the
// process-wide credentials, then runs peer verification. A verification
// failure is fatal unless NoVerify was requested, in which case it is
// logged and the session proceeds (the soft-bypass described in
// SPEC_FULL.md §4.3).
func Handshake(sock net.Conn, creds *Credentials, opt HandshakeOptions) (*Session, rerr.Error) {
	cfg := &tls.Config{
		RootCAs:            creds.CAPool,
		Certificates:       []tls.Certificate{creds.Client},
		ServerName:         opt.Hostname,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true, // verification is performed explicitly below
	}

	conn := tls.Client(sock, cfg)

	if err := handshakeWithRetry(conn); err != nil {
		_ = sock.Close()
		return nil, rerr.New(rerr.GnuTlsError, "tlsconn", "handshake failed").Add(err)
	}

	if verr := verifyPeer(conn, creds.CAPool, opt.Hostname); verr != nil {
		if !opt.NoVerify {
			_ = conn.Close()
			return nil, verr
		}
		logEntry(opt.Log).WithError(verr).Warn("TLS peer verification failed; continuing because no_verify was set")
	}

	return &Session{Conn: conn, Hostname: opt.Hostname}, nil
}

// handshakeWithRetry runs the handshake loop, retrying on transient
// interruption the way the original driver retries on EINTR/EAGAIN.
func handshakeWithRetry(conn *tls.Conn) error {
	for {
		err := conn.Handshake()
		if err == nil {
			return nil
		}
		if ne, ok := err.(net.Error); ok && ne.Temporary() { //nolint:staticcheck
			continue
		}
		return err
	}
}

func logEntry(e *logrus.Entry) *logrus.Entry {
	if e != nil {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
