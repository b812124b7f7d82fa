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

package conn

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/rpc"
	"github.com/nabbar/virt-remote-client/stub"
	"github.com/nabbar/virt-remote-client/transport"
	"github.com/nabbar/virt-remote-client/uri"
)

// liveness is the two-valued state machine every operation consults
// before touching the network. Once Closed, an operation fails locally
// with errClosed and never reaches the transport again.
type liveness uint8

const (
	stateOpen liveness = iota
	stateClosed
)

// Connection is the live handle Open returns. Its exported surface is
// entirely through the methods below; nothing about the underlying
// channel, engine or cached state is exposed directly.
type Connection struct {
	mu       sync.RWMutex
	channel  *transport.Channel
	engine   *rpc.Engine
	collab   handle.Collaborator
	usesTLS  bool
	state    liveness
	log      *logrus.Entry
	typeOnce sync.Once
	typeStr  string
	typeErr  rerr.Error
}

// Open dials p's transport, performs the protocol handshake, and only
// on success returns a live Connection. A failure at any point before
// the handshake completes tears down whatever was already dialled and
// reports the error without installing or returning a handle; there is
// never a partially-published Connection for a caller to misuse.
func Open(p *uri.Params, opt transport.Options, readOnly bool, collab handle.Collaborator) (*Connection, rerr.Error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	opt.ReadOnly = readOnly
	ch, err := transport.Dial(p, opt)
	if err != nil {
		return nil, err
	}

	eng := rpc.New(ch, opt.Log)
	if err := stub.ConnectOpen(eng, p.ForwardName, readOnly); err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Connection{
		channel: ch,
		engine:  eng,
		collab:  collab,
		usesTLS: ch.TLS != nil,
		state:   stateOpen,
		log:     logEntry(opt.Log),
	}, nil
}

func logEntry(e *logrus.Entry) *logrus.Entry {
	if e != nil {
		return e
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// errClosed is returned by every operation once Close has run.
func errClosed() rerr.Error {
	return rerr.New(rerr.InvalidArg, "conn", "closed handle")
}

// checkOpen takes the read lock and reports errClosed if the connection
// has already been closed, without touching the network either way.
func (c *Connection) checkOpen() rerr.Error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == stateClosed {
		return errClosed()
	}
	return nil
}

// UsesTLS reports whether the underlying channel is TLS-secured.
func (c *Connection) UsesTLS() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usesTLS
}

// Hostname asks the server for the hostname of the connection's
// underlying hypervisor. Unlike GetType, the result is never cached:
// the original driver treats it as a live value.
func (c *Connection) Hostname() (string, rerr.Error) {
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	hostname, err := stub.ConnectGetHostname(c.engine)
	if err != nil {
		c.collab.RaiseError(err)
		return "", err
	}
	return hostname, nil
}

// Type returns the short driver-type string the server reports,
// fetching and retaining it on first use. The cached value is returned
// as a Go string, which is itself immutable, so callers never see it
// mutate out from under them even though the caller asking twice gets
// the same backing bytes.
func (c *Connection) Type() (string, rerr.Error) {
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	c.typeOnce.Do(func() {
		c.typeStr, c.typeErr = stub.ConnectGetType(c.engine)
	})
	if c.typeErr != nil {
		c.collab.RaiseError(c.typeErr)
		return "", c.typeErr
	}
	return c.typeStr, nil
}

// ListDomains returns up to maxNames active domain ids.
func (c *Connection) ListDomains(maxNames int) ([]int32, rerr.Error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	ids, err := stub.ConnectListDomains(c.engine, maxNames)
	if err != nil {
		c.collab.RaiseError(err)
		return nil, err
	}
	return ids, nil
}

// LookupDomainByName resolves name to an in-process domain handle.
func (c *Connection) LookupDomainByName(name string) (handle.Object, rerr.Error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return stub.DomainLookupByName(c.engine, c.collab, name)
}

// LookupNetworkByName resolves name to an in-process network handle.
func (c *Connection) LookupNetworkByName(name string) (handle.Object, rerr.Error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return stub.NetworkLookupByName(c.engine, c.collab, name)
}

// SuspendDomain pauses the domain identified by ref.
func (c *Connection) SuspendDomain(ref handle.Ref) rerr.Error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := stub.DomainSuspend(c.engine, ref); err != nil {
		c.collab.RaiseError(err)
		return err
	}
	return nil
}

// Close runs the four-step teardown: issue the close RPC best-effort,
// tear down the TLS session, close the socket, and drop the cached
// type. Every step runs even if an earlier one failed; Close reports
// the first error encountered, if any, and marks the handle Closed
// regardless of outcome so no later call can touch the network again.
func (c *Connection) Close() rerr.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateClosed {
		return nil
	}
	c.state = stateClosed

	var first rerr.Error

	if err := stub.ConnectClose(c.engine); err != nil {
		first = err
	}

	if cerr := c.channel.Close(); cerr != nil && first == nil {
		first = rerr.New(rerr.SystemError, "conn", "closing channel").Add(cerr)
	}

	c.typeStr = ""
	c.typeErr = nil

	return first
}
