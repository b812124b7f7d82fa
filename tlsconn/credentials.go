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
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/nabbar/virt-remote-client/rerr"
)

// Paths collects the fixed filesystem locations credential
// initialisation reads from. A zero Paths uses the package defaults.
type Paths struct {
	CACert     string
	ClientCert string
	ClientKey  string
}

// Default fixed paths, matching the original driver's layout under the
// system PKI directory.
const (
	DefaultCACertPath     = "/etc/pki/CA/cacert.pem"
	DefaultClientCertPath = "/etc/pki/libvirt/clientcert.pem"
	DefaultClientKeyPath  = "/etc/pki/libvirt/private/clientkey.pem"
)

func (p Paths) withDefaults() Paths {
	if p.CACert == "" {
		p.CACert = DefaultCACertPath
	}
	if p.ClientCert == "" {
		p.ClientCert = DefaultClientCertPath
	}
	if p.ClientKey == "" {
		p.ClientKey = DefaultClientKeyPath
	}
	return p
}

// Credentials is the process-wide, read-only TLS credential set: the
// trusted CA pool plus the client's own certificate and key.
type Credentials struct {
	CAPool *x509.CertPool
	Client tls.Certificate
}

var (
	credOnce  sync.Once
	credValue *Credentials
	credErr   rerr.Error
)

// Init loads the process-wide credential set from paths. Once a load has
// succeeded, every later call, with any paths argument, returns that
// same result. A failed load is not cached: Init resets the gate, loads
// once more before returning that second attempt's result, and the
// next Init call starts a fresh attempt, so one failure does not poison
// later connection attempts.
func Init(paths Paths) (*Credentials, rerr.Error) {
	paths = paths.withDefaults()

	var attempt = func() (*Credentials, rerr.Error) {
		caPEM, err := os.ReadFile(paths.CACert)
		if err != nil {
			return nil, rerr.New(rerr.SystemError, "tlsconn", "read CA bundle").Add(err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, rerr.New(rerr.GnuTlsError, "tlsconn", "CA bundle contains no usable certificates")
		}

		cert, err := tls.LoadX509KeyPair(paths.ClientCert, paths.ClientKey)
		if err != nil {
			return nil, rerr.New(rerr.GnuTlsError, "tlsconn", "load client certificate pair").Add(err)
		}

		return &Credentials{CAPool: pool, Client: cert}, nil
	}

	credOnce.Do(func() {
		credValue, credErr = attempt()
	})

	if credErr != nil && credValue == nil {
		// The one-shot attempt failed; allow a fresh process-wide retry
		// on the next Init call rather than wedging every later dial.
		credOnce = sync.Once{}
		return attempt()
	}

	return credValue, credErr
}

// Reset clears the cached process-wide credential state. It exists for
// tests; production code never calls it, since credentials are meant to
// live for the process lifetime once loaded.
func Reset() {
	credOnce = sync.Once{}
	credValue = nil
	credErr = nil
}

func (c *Credentials) String() string {
	if c == nil {
		return "<nil credentials>"
	}
	return fmt.Sprintf("Credentials{subjects=%d}", len(c.CAPool.Subjects())) //nolint:staticcheck
}
