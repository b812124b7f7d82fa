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

// ObjectRef is the optional domain/network identity a structured error
// may carry, mirroring the on-wire (id, name, uuid) tuple described in
// the wire protocol's error record.
type ObjectRef struct {
	Name string
	UUID string
	ID   int64
	// HasID reports whether ID is meaningful; networks are identified by
	// (name, uuid) alone and never carry a numeric id.
	HasID bool
}

// Error extends the standard error with the taxonomy, code, level and
// structured context carried by the remote driver's error model.
//
// Error is safe for concurrent reads; Add is not safe for concurrent
// writers on the same value.
type Error interface {
	error

	// Kind returns the stable taxonomy bucket this error belongs to.
	Kind() Kind
	// Code returns the subsystem-specific refinement code.
	Code() Code
	// Level returns the severity carried alongside the error.
	Level() Level
	// Domain returns the subsystem tag (e.g. "uri", "tlsconn", "rpc").
	Domain() string
	// Strings returns up to three optional context strings.
	Strings() [3]string
	// Ints returns up to two optional context integers.
	Ints() [2]int64
	// Message returns the human-readable message, distinct from Error()
	// which also folds in the domain/code prefix.
	Message() string
	// Ref returns the optional domain/network identity attached to this
	// error, or nil if none was attached.
	Ref() *ObjectRef

	// Is reports whether err refers to the same error, per errors.Is
	// semantics; it also accepts a plain error for leaf comparison.
	Is(err error) bool
	// Unwrap exposes the first parent, for compatibility with the
	// standard errors.Unwrap chain.
	Unwrap() error
	// Add appends one or more causes beneath this error without losing
	// its own kind/code/context.
	Add(parent ...error) Error
	// Parents returns the direct causes appended via Add.
	Parents() []error
}
