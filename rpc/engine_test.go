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

package rpc_test

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/rpc"
	"github.com/nabbar/virt-remote-client/wireproto"
)

// readServerFrame and writeServerFrame let the fake-server goroutines
// speak the same length-prefixed framing as the Engine under test.
func readServerFrame(t *testing.T, r io.Reader) wireproto.Header {
	t.Helper()
	var lb [4]byte
	_, err := io.ReadFull(r, lb[:])
	require.NoError(t, err)
	n, err := wireproto.DecodeLengthPrefix(lb)
	require.NoError(t, err)
	buf := make([]byte, n)
	_, err = io.ReadFull(r, buf)
	require.NoError(t, err)
	hdr, err := wireproto.DecodeHeader(wireproto.NewDecoder(buf))
	require.NoError(t, err)
	return hdr
}

func writeServerFrame(t *testing.T, w io.Writer, body []byte) {
	t.Helper()
	enc := wireproto.NewEncoder(wireproto.LengthPrefixSize)
	wireproto.EncodeLengthPrefix(enc, len(body))
	_, err := w.Write(append(enc.Bytes(), body...))
	require.NoError(t, err)
}

func TestInvoke_SuccessRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		hdr := readServerFrame(t, server)

		enc := wireproto.NewEncoder(64)
		wireproto.Header{
			Program: hdr.Program, Version: hdr.Version, Procedure: hdr.Procedure,
			Direction: wireproto.DirectionReply, Serial: hdr.Serial, Status: wireproto.StatusOk,
		}.Encode(enc)
		enc.PutString("libvirtd-test")
		writeServerFrame(t, server, enc.Bytes())
	}()

	eng := rpc.New(client, nil)

	var hostname string
	err := eng.Invoke(rpc.Call{
		Program: 1, Version: 1, Procedure: 42,
		Unmarshal: func(d *wireproto.Decoder) error {
			s, derr := d.GetString(4096)
			hostname = s
			return derr
		},
	})
	require.Nil(t, err)
	require.Equal(t, "libvirtd-test", hostname)
}

func TestInvoke_SerialMismatchFails(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		hdr := readServerFrame(t, server)

		enc := wireproto.NewEncoder(64)
		wireproto.Header{
			Program: hdr.Program, Version: hdr.Version, Procedure: hdr.Procedure,
			Direction: wireproto.DirectionReply, Serial: hdr.Serial + 1, Status: wireproto.StatusOk,
		}.Encode(enc)
		writeServerFrame(t, server, enc.Bytes())
	}()

	eng := rpc.New(client, nil)
	err := eng.Invoke(rpc.Call{Program: 1, Version: 1, Procedure: 42})
	require.NotNil(t, err)
	require.Equal(t, rerr.Rpc, err.Kind())
}

func TestInvoke_ErrorStatusSurfacesStructuredError(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		hdr := readServerFrame(t, server)

		enc := wireproto.NewEncoder(128)
		wireproto.Header{
			Program: hdr.Program, Version: hdr.Version, Procedure: hdr.Procedure,
			Direction: wireproto.DirectionReply, Serial: hdr.Serial, Status: wireproto.StatusError,
		}.Encode(enc)
		wireproto.ErrorRecord{
			Domain: 5, Code: 9, Level: 2, Message: "no such domain",
			HasRef: true, RefName: "dom0", RefUUID: "abc-123",
		}.Encode(enc)
		writeServerFrame(t, server, enc.Bytes())
	}()

	eng := rpc.New(client, nil)
	err := eng.Invoke(rpc.Call{Program: 1, Version: 1, Procedure: 7})
	require.NotNil(t, err)
	require.Equal(t, rerr.Rpc, err.Kind())
	require.Equal(t, rerr.Code(9), err.Code())
	require.Equal(t, "no such domain", err.Message())
	require.NotNil(t, err.Ref())
	require.Equal(t, "dom0", err.Ref().Name)
}

func TestInvoke_AllocatesIncreasingSerials(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	serials := make(chan uint32, 2)
	go func() {
		for i := 0; i < 2; i++ {
			hdr := readServerFrame(t, server)
			serials <- hdr.Serial

			enc := wireproto.NewEncoder(64)
			wireproto.Header{
				Program: hdr.Program, Version: hdr.Version, Procedure: hdr.Procedure,
				Direction: wireproto.DirectionReply, Serial: hdr.Serial, Status: wireproto.StatusOk,
			}.Encode(enc)
			writeServerFrame(t, server, enc.Bytes())
		}
	}()

	eng := rpc.New(client, nil)
	require.Nil(t, eng.Invoke(rpc.Call{Program: 1, Version: 1, Procedure: 1}))
	require.Nil(t, eng.Invoke(rpc.Call{Program: 1, Version: 1, Procedure: 1}))

	first := <-serials
	second := <-serials
	require.Equal(t, first+1, second)
}
