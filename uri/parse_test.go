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

package uri_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/uri"
)

const (
	tlsPort = 16514
	tcpPort = 16509
)

func TestParse_DeclinesOnNoScheme(t *testing.T) {
	outcome, _, e := uri.Parse("not-a-uri-at-all", tlsPort, tcpPort)
	require.Equal(t, uri.Declined, outcome)
	require.Nil(t, e)
}

func TestParse_DeclinesOnNoSuffixAndNoHost(t *testing.T) {
	outcome, _, e := uri.Parse("qemu:///system", tlsPort, tcpPort)
	require.Equal(t, uri.Declined, outcome)
	require.Nil(t, e)
}

func TestParse_TcpTransport_NoTLS(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+tcp://localhost/system", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.Equal(t, uri.Tcp, p.Transport)
	require.Equal(t, "qemu:///system", p.ForwardName)
	require.Equal(t, tcpPort, p.Port)
}

func TestParse_TlsWithNoVerify(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+tls://example.com:16514/system?no_verify=1", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.True(t, p.NoVerify)
	require.Equal(t, 16514, p.Port)
}

func TestParse_UnixWithSocketOverride(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+unix:///system?socket=/tmp/sock", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.Equal(t, uri.Unix, p.Transport)
	require.True(t, p.HasSocket)
	require.Equal(t, "/tmp/sock", p.Socket)
}

func TestParse_ExtRequiresCommand(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+ext:///system", tlsPort, tcpPort)
	require.Equal(t, uri.Errored, outcome)
	require.Nil(t, p)
	require.NotNil(t, e)
	require.Equal(t, "command is required", e.Message())
}

func TestParse_ExtWithCommand(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+ext:///system?command=/bin/false", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.True(t, p.HasCommand)
	require.Equal(t, "/bin/false", p.Command)
}

func TestParse_SshDefaultsPortTo22(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+ssh://alice@host/system?netcat=ncat", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.Equal(t, 22, p.Port)
	require.Equal(t, "alice", p.User)
	require.Equal(t, "ncat", p.Netcat)
}

func TestParse_UnrecognisedTransportErrors(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+carrierpigeon://host/system", tlsPort, tcpPort)
	require.Equal(t, uri.Errored, outcome)
	require.Nil(t, p)
	require.NotNil(t, e)
}

func TestParse_NameOverrideWins(t *testing.T) {
	outcome, p, e := uri.Parse("qemu+tcp://localhost/system?name=qemu:///other&mode=rw", tlsPort, tcpPort)
	require.Equal(t, uri.Accepted, outcome)
	require.Nil(t, e)
	require.Equal(t, "qemu:///other", p.ForwardName)
	require.Equal(t, "mode=rw", p.ForwardQuery)
}
