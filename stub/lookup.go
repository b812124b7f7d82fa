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

package stub

import (
	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/rpc"
	"github.com/nabbar/virt-remote-client/wireproto"
)

// DomainLookupByName resolves name to a domain handle through collab,
// translating the wire (name, uuid, id) reply into an in-process
// handle.Object. The strings decoded out of the reply buffer are
// re-homed into Go-owned memory by GetString itself, so nothing here
// needs to duplicate them further before they outlive the decode.
func DomainLookupByName(eng *rpc.Engine, collab handle.Collaborator, name string) (handle.Object, rerr.Error) {
	if len(name) > maxNameLen {
		return nil, rerr.New(rerr.InvalidArg, "stub", "domain lookup by name: name exceeds ceiling")
	}
	var ref handle.Ref
	if err := eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcDomainLookupByName,
		Marshal: func(enc *wireproto.Encoder) {
			enc.PutString(name)
		},
		Unmarshal: func(dec *wireproto.Decoder) error {
			gotName, gotUUID, id, err := getDomainRef(dec)
			if err != nil {
				return err
			}
			ref = handle.Ref{Name: gotName, UUID: gotUUID, ID: int64(id), HasID: true}
			return nil
		},
	}); err != nil {
		collab.RaiseError(err)
		return nil, err
	}
	obj, oerr := collab.NewObject(handle.DomainKind, ref)
	if oerr != nil {
		collab.RaiseError(oerr)
		return nil, oerr
	}
	return obj, nil
}

// NetworkLookupByName resolves name to a network handle through collab.
// Networks carry no numeric id on the wire.
func NetworkLookupByName(eng *rpc.Engine, collab handle.Collaborator, name string) (handle.Object, rerr.Error) {
	if len(name) > maxNameLen {
		return nil, rerr.New(rerr.InvalidArg, "stub", "network lookup by name: name exceeds ceiling")
	}
	var ref handle.Ref
	if err := eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcNetworkLookupByName,
		Marshal: func(enc *wireproto.Encoder) {
			enc.PutString(name)
		},
		Unmarshal: func(dec *wireproto.Decoder) error {
			gotName, gotUUID, err := getNetworkRef(dec)
			if err != nil {
				return err
			}
			ref = handle.Ref{Name: gotName, UUID: gotUUID}
			return nil
		},
	}); err != nil {
		collab.RaiseError(err)
		return nil, err
	}
	obj, oerr := collab.NewObject(handle.NetworkKind, ref)
	if oerr != nil {
		collab.RaiseError(oerr)
		return nil, oerr
	}
	return obj, nil
}

// DomainSuspend pauses the domain identified by ref. The reply carries
// no payload beyond the status.
func DomainSuspend(eng *rpc.Engine, ref handle.Ref) rerr.Error {
	if len(ref.Name) > maxNameLen {
		return rerr.New(rerr.InvalidArg, "stub", "domain suspend: name exceeds ceiling")
	}
	if _, err := parseUUID(ref.UUID); err != nil {
		return rerr.New(rerr.InvalidArg, "stub", "domain suspend: invalid uuid").Add(err)
	}
	return eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcDomainSuspend,
		Marshal: func(enc *wireproto.Encoder) {
			_ = putDomainRef(enc, ref)
		},
	})
}
