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
	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/transport"
	"github.com/nabbar/virt-remote-client/uri"
)

// Connection is the subset of *conn.Connection's method set the
// dispatch tables below operate on, expressed as an interface so this
// file doesn't need to import conn: register.go is the only file that
// wires a concrete *conn.Connection into these function pointers.
type Connection interface {
	Close() rerr.Error
	Hostname() (string, rerr.Error)
	Type() (string, rerr.Error)
	ListDomains(maxNames int) ([]int32, rerr.Error)
	LookupDomainByName(name string) (handle.Object, rerr.Error)
	LookupNetworkByName(name string) (handle.Object, rerr.Error)
	SuspendDomain(ref handle.Ref) rerr.Error
}

// HypervisorOps is the dispatch table a host library indexes into for
// every hypervisor-level operation this driver implements. A nil field
// means the operation is not implemented; callers must check before
// invoking.
type HypervisorOps struct {
	Open               func(p *uri.Params, opt transport.Options, readOnly bool, collab handle.Collaborator) (Connection, rerr.Error)
	Close              func(c Connection) rerr.Error
	GetHostname        func(c Connection) (string, rerr.Error)
	GetType            func(c Connection) (string, rerr.Error)
	ListDomains        func(c Connection, maxNames int) ([]int32, rerr.Error)
	DomainLookupByName func(c Connection, name string) (handle.Object, rerr.Error)
	DomainSuspend      func(c Connection, ref handle.Ref) rerr.Error
}

// NetworkOps is the dispatch table for virtual-network operations.
type NetworkOps struct {
	NetworkLookupByName func(c Connection, name string) (handle.Object, rerr.Error)
}

// Registrar is consumed, not implemented, by this module: the host
// library supplies one concrete type satisfying it, typically by
// storing the two tables in its own global driver list.
type Registrar interface {
	RegisterHypervisorDriver(ops HypervisorOps) rerr.Error
	RegisterNetworkDriver(ops NetworkOps) rerr.Error
}
