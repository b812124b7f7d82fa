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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/uri"
)

func TestDialUnix_ConnectsToExplicitSocket(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "test.sock")

	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, aerr := ln.Accept()
		if aerr == nil {
			_ = conn.Close()
		}
	}()

	ch, derr := dialUnix(&uri.Params{Socket: sockPath, HasSocket: true}, Options{})
	require.Nil(t, derr)
	require.NotNil(t, ch)
	_ = ch.Close()
}

func TestDialUnix_FailsOnMissingSocket(t *testing.T) {
	_, derr := dialUnix(&uri.Params{Socket: "/nonexistent/path.sock", HasSocket: true}, Options{})
	require.NotNil(t, derr)
	require.Equal(t, rerr.SystemError, derr.Kind())
}

func TestDefaultSocketPath(t *testing.T) {
	require.Equal(t, DefaultUnixSocket, defaultSocketPath(&uri.Params{}, false))
	require.Equal(t, DefaultUnixSocketReadOnly, defaultSocketPath(&uri.Params{}, true))
	require.Equal(t, DefaultUnixSocketReadOnly, defaultSocketPath(&uri.Params{Path: "/system"}, true))
	require.Equal(t, "/tmp/sock", defaultSocketPath(&uri.Params{Socket: "/tmp/sock", HasSocket: true}, true))
}

func TestDialUnix_DefaultsPathByReadOnlyFlag(t *testing.T) {
	// Without an explicit socket, the default paths are used; since they
	// won't exist in the test sandbox, dialUnix must fail with a system
	// error rather than panicking, proving the default-path branch ran
	// and was keyed on opt.ReadOnly rather than the URI path.
	_, derr := dialUnix(&uri.Params{Path: "/system"}, Options{ReadOnly: true})
	require.NotNil(t, derr)
	require.Equal(t, rerr.SystemError, derr.Kind())
	require.Contains(t, derr.Message(), DefaultUnixSocketReadOnly)
}
