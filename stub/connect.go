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
	"fmt"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/rpc"
	"github.com/nabbar/virt-remote-client/wireproto"
)

// ConnectOpen issues the handshake call that must precede every other
// procedure on a freshly dialled channel. name is the URI the server
// should open against its own driver table; readOnly requests a
// restricted session. The reply carries no payload beyond the status.
func ConnectOpen(eng *rpc.Engine, name string, readOnly bool) rerr.Error {
	if len(name) > maxNameLen {
		return rerr.New(rerr.InvalidArg, "stub", "connect open: name exceeds ceiling")
	}
	return eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcConnectOpen,
		Marshal: func(enc *wireproto.Encoder) {
			enc.PutString(name)
			enc.PutBool(readOnly)
		},
	})
}

// ConnectClose issues the best-effort teardown call. Its error, if any,
// is reported but never allowed to stop the rest of the close sequence.
func ConnectClose(eng *rpc.Engine) rerr.Error {
	return eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcConnectClose,
	})
}

// ConnectGetHostname returns the hostname the server reports for the
// connection's underlying hypervisor.
func ConnectGetHostname(eng *rpc.Engine) (string, rerr.Error) {
	var hostname string
	if err := eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcConnectGetHostname,
		Unmarshal: func(dec *wireproto.Decoder) error {
			var err error
			hostname, err = dec.GetString(maxHostname)
			return err
		},
	}); err != nil {
		return "", err
	}
	return hostname, nil
}

// ConnectGetType returns the short driver-type string ("QEMU", "Xen",
// ...) the server reports. The core caches this value for the lifetime
// of the connection; this stub always performs the round trip.
func ConnectGetType(eng *rpc.Engine) (string, rerr.Error) {
	var driverType string
	if err := eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcConnectGetType,
		Unmarshal: func(dec *wireproto.Decoder) error {
			var err error
			driverType, err = dec.GetString(maxTypeLen)
			return err
		},
	}); err != nil {
		return "", err
	}
	return driverType, nil
}

// ConnectListDomains returns up to maxNames active domain ids. maxNames
// is validated against the protocol ceiling before any traffic is sent,
// and the reply's own count is re-validated against maxNames (and so
// against the ceiling too) on receive, since a misbehaving or compromised server could otherwise
// claim an arbitrarily long list.
func ConnectListDomains(eng *rpc.Engine, maxNames int) ([]int32, rerr.Error) {
	if maxNames < 0 || maxNames > maxDomainList {
		return nil, rerr.New(rerr.InvalidArg, "stub", "connect list domains: maxnames exceeds ceiling")
	}
	var ids []int32
	if err := eng.Invoke(rpc.Call{
		Program:   Program,
		Version:   Version,
		Procedure: ProcConnectListDomains,
		Marshal: func(enc *wireproto.Encoder) {
			enc.PutInt32(int32(maxNames))
		},
		Unmarshal: func(dec *wireproto.Decoder) error {
			n, err := dec.GetUint32()
			if err != nil {
				return err
			}
			if n > uint32(maxNames) {
				return fmt.Errorf("server returned %d domain ids, exceeding requested %d", n, maxNames)
			}
			ids = make([]int32, n)
			for i := range ids {
				if ids[i], err = dec.GetInt32(); err != nil {
					return err
				}
			}
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return ids, nil
}
