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

package handle

import "github.com/nabbar/virt-remote-client/rerr"

// Kind identifies which object type a Ref addresses.
type Kind uint8

const (
	// DomainKind addresses a hypervisor guest domain.
	DomainKind Kind = iota
	// NetworkKind addresses a virtual network.
	NetworkKind
)

func (k Kind) String() string {
	if k == NetworkKind {
		return "network"
	}
	return "domain"
}

// Ref is the decoded on-wire identity of a domain or network object.
// Networks are identified by (name, uuid) alone; domains additionally
// carry a numeric id when HasID is set.
type Ref struct {
	Name  string
	UUID  string
	ID    int64
	HasID bool
}

// Object is the opaque in-process handle the host library's factory
// returns. This package never looks inside it; stub and driver code
// thread it back out to the caller unchanged.
type Object interface{}

// Collaborator is consumed, not implemented, by this module: the host
// library supplies one concrete type satisfying it. NewObject converts
// a wire Ref to a live handle; RaiseError reports a fully-contextualised
// failure through the host's own error-reporting path in addition to
// (or instead of) the error value a call already returns.
type Collaborator interface {
	// NewObject builds an in-process handle of kind from ref, borrowing
	// the lifetime of the connection that decoded ref. An invalid ref
	// (e.g. empty UUID) is rejected with an InvalidArg error.
	NewObject(kind Kind, ref Ref) (Object, rerr.Error)

	// RaiseError reports err through the host library's error primitive.
	// The core calls this at the point a failure is detected, even when
	// it also returns the error to its immediate caller, matching the
	// original driver's "raise then return" error propagation.
	RaiseError(err rerr.Error)
}
