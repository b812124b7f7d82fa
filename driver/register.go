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

package driver

import (
	"github.com/nabbar/virt-remote-client/conn"
	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/transport"
	"github.com/nabbar/virt-remote-client/uri"
)

// Register builds both dispatch tables over the conn package's
// implementations and publishes them to r. It is the only place in
// this module that binds driver's abstract Connection interface to the
// concrete *conn.Connection type.
func Register(r Registrar) rerr.Error {
	hv := HypervisorOps{
		Open: func(p *uri.Params, opt transport.Options, readOnly bool, collab handle.Collaborator) (Connection, rerr.Error) {
			c, err := conn.Open(p, opt, readOnly, collab)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Close:              func(c Connection) rerr.Error { return c.Close() },
		GetHostname:        func(c Connection) (string, rerr.Error) { return c.Hostname() },
		GetType:            func(c Connection) (string, rerr.Error) { return c.Type() },
		ListDomains:        func(c Connection, maxNames int) ([]int32, rerr.Error) { return c.ListDomains(maxNames) },
		DomainLookupByName: func(c Connection, name string) (handle.Object, rerr.Error) { return c.LookupDomainByName(name) },
		DomainSuspend:      func(c Connection, ref handle.Ref) rerr.Error { return c.SuspendDomain(ref) },
	}

	nw := NetworkOps{
		NetworkLookupByName: func(c Connection, name string) (handle.Object, rerr.Error) { return c.LookupNetworkByName(name) },
	}

	if err := r.RegisterHypervisorDriver(hv); err != nil {
		return err
	}
	return r.RegisterNetworkDriver(nw)
}
