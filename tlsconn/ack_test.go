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
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/rerr"
)

func TestReadServerAck_AcceptsAckByte(t *testing.T) {
	client, server := net.Pipe()

	done := make(chan rerr.Error, 1)
	go func() {
		done <- readServerAckFrom(client)
	}()

	_, err := server.Write([]byte{ackByte})
	require.NoError(t, err)

	require.Nil(t, <-done)
}

func TestReadServerAck_RejectsWrongByte(t *testing.T) {
	client, server := net.Pipe()

	done := make(chan rerr.Error, 1)
	go func() {
		done <- readServerAckFrom(client)
	}()

	_, err := server.Write([]byte{0x00})
	require.NoError(t, err)

	got := <-done
	require.NotNil(t, got)
	require.Equal(t, rerr.Rpc, got.Kind())
}

func TestReadServerAck_EOFIsFatal(t *testing.T) {
	client, server := net.Pipe()

	done := make(chan rerr.Error, 1)
	go func() {
		done <- readServerAckFrom(client)
	}()

	require.NoError(t, server.Close())

	got := <-done
	require.NotNil(t, got)
	require.Equal(t, rerr.Rpc, got.Kind())
}
