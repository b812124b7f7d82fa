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

package rerr

import (
	"fmt"
	"strings"
)

type ers struct {
	kind Kind
	code Code
	lvl  Level
	dom  string
	str  [3]string
	ints [2]int64
	msg  string
	ref  *ObjectRef
	par  []error
}

// New builds a new Error of the given kind, scoped to domain (the
// subsystem tag, e.g. "uri", "transport", "tlsconn", "rpc"), with the
// given message. Use the With* chain methods to attach context before
// the error escapes its origin function.
func New(kind Kind, domain string, message string) Error {
	return &ers{
		kind: kind,
		dom:  domain,
		msg:  message,
		lvl:  LevelError,
	}
}

// WithCode returns a copy of e with the given refinement code set.
func WithCode(e Error, code Code) Error {
	if v, ok := e.(*ers); ok {
		c := *v
		c.code = code
		return &c
	}
	return e
}

// WithLevel returns a copy of e with the given severity level set.
func WithLevel(e Error, lvl Level) Error {
	if v, ok := e.(*ers); ok {
		c := *v
		c.lvl = lvl
		return &c
	}
	return e
}

// WithStrings returns a copy of e with up to three context strings set.
func WithStrings(e Error, s ...string) Error {
	v, ok := e.(*ers)
	if !ok {
		return e
	}
	c := *v
	for i := 0; i < len(s) && i < len(c.str); i++ {
		c.str[i] = s[i]
	}
	return &c
}

// WithInts returns a copy of e with up to two context integers set.
func WithInts(e Error, i ...int64) Error {
	v, ok := e.(*ers)
	if !ok {
		return e
	}
	c := *v
	for idx := 0; idx < len(i) && idx < len(c.ints); idx++ {
		c.ints[idx] = i[idx]
	}
	return &c
}

// WithRef returns a copy of e carrying the given domain/network
// identity, as decoded from a server-side structured error reply.
func WithRef(e Error, ref *ObjectRef) Error {
	v, ok := e.(*ers)
	if !ok {
		return e
	}
	c := *v
	c.ref = ref
	return &c
}

func (e *ers) Kind() Kind          { return e.kind }
func (e *ers) Code() Code          { return e.code }
func (e *ers) Level() Level        { return e.lvl }
func (e *ers) Domain() string      { return e.dom }
func (e *ers) Strings() [3]string  { return e.str }
func (e *ers) Ints() [2]int64      { return e.ints }
func (e *ers) Message() string     { return e.msg }
func (e *ers) Ref() *ObjectRef     { return e.ref }
func (e *ers) Parents() []error    { return e.par }

func (e *ers) Error() string {
	var b strings.Builder
	if e.dom != "" {
		b.WriteString(e.dom)
		b.WriteString(": ")
	}
	b.WriteString(e.kind.String())
	if e.code != UnknownCode {
		fmt.Fprintf(&b, "[%d]", e.code)
	}
	if e.msg != "" {
		b.WriteString(": ")
		b.WriteString(e.msg)
	}
	for _, p := range e.par {
		b.WriteString(": ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *ers) Unwrap() error {
	if len(e.par) == 0 {
		return nil
	}
	return e.par[0]
}

func (e *ers) Add(parent ...error) Error {
	for _, p := range parent {
		if p != nil {
			e.par = append(e.par, p)
		}
	}
	return e
}

func (e *ers) Is(err error) bool {
	if err == nil {
		return false
	}
	if o, ok := err.(*ers); ok {
		return e.kind == o.kind && e.code == o.code && strings.EqualFold(e.dom, o.dom)
	}
	return strings.EqualFold(e.Error(), err.Error())
}
