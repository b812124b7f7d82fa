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

package stub_test

import (
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/rpc"
	"github.com/nabbar/virt-remote-client/stub"
	"github.com/nabbar/virt-remote-client/wireproto"
)

type fakeCollaborator struct {
	lastKind handle.Kind
	lastRef  handle.Ref
	object   handle.Object
	raised   rerr.Error
}

func (f *fakeCollaborator) NewObject(kind handle.Kind, ref handle.Ref) (handle.Object, rerr.Error) {
	f.lastKind = kind
	f.lastRef = ref
	if f.object == nil {
		return ref, nil
	}
	return f.object, nil
}

func (f *fakeCollaborator) RaiseError(err rerr.Error) {
	f.raised = err
}

func TestDomainLookupByName_BuildsHandleViaCollaborator(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	id := uuid.New()

	go func() {
		hdr, dec := readServerFrame(t, server)
		name, err := dec.GetString(4096)
		require.NoError(t, err)
		require.Equal(t, "web01", name)
		writeServerReply(t, server, hdr, wireproto.StatusOk, func(enc *wireproto.Encoder) {
			enc.PutString("web01")
			raw := id
			enc.PutOpaque(raw[:])
			enc.PutInt32(7)
		})
	}()

	eng := rpc.New(client, nil)
	collab := &fakeCollaborator{}
	obj, err := stub.DomainLookupByName(eng, collab, "web01")
	require.Nil(t, err)
	require.NotNil(t, obj)
	require.Equal(t, handle.DomainKind, collab.lastKind)
	require.Equal(t, "web01", collab.lastRef.Name)
	require.Equal(t, id.String(), collab.lastRef.UUID)
	require.Equal(t, int64(7), collab.lastRef.ID)
	require.True(t, collab.lastRef.HasID)
}

func TestNetworkLookupByName_NoNumericID(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	id := uuid.New()

	go func() {
		hdr, _ := readServerFrame(t, server)
		writeServerReply(t, server, hdr, wireproto.StatusOk, func(enc *wireproto.Encoder) {
			enc.PutString("default")
			raw := id
			enc.PutOpaque(raw[:])
		})
	}()

	eng := rpc.New(client, nil)
	collab := &fakeCollaborator{}
	_, err := stub.NetworkLookupByName(eng, collab, "default")
	require.Nil(t, err)
	require.Equal(t, handle.NetworkKind, collab.lastKind)
	require.False(t, collab.lastRef.HasID)
}

func TestDomainSuspend_RejectsInvalidUUID(t *testing.T) {
	eng := rpc.New(nil, nil)
	err := stub.DomainSuspend(eng, handle.Ref{Name: "dom0", UUID: "not-a-uuid"})
	require.NotNil(t, err)
	require.Equal(t, rerr.InvalidArg, err.Kind())
}

func TestDomainSuspend_SendsRefAndSucceeds(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	id := uuid.New()

	go func() {
		hdr, dec := readServerFrame(t, server)
		name, err := dec.GetString(4096)
		require.NoError(t, err)
		require.Equal(t, "dom0", name)
		raw, err := dec.GetOpaque(16)
		require.NoError(t, err)
		require.Equal(t, id[:], raw)
		writeServerReply(t, server, hdr, wireproto.StatusOk, nil)
	}()

	eng := rpc.New(client, nil)
	err := stub.DomainSuspend(eng, handle.Ref{Name: "dom0", UUID: id.String(), ID: 3, HasID: true})
	require.Nil(t, err)
}
