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

package wireproto

import (
	"encoding/binary"
	"fmt"
)

// Encoder appends fixed-width external data representation values to an
// in-memory buffer. It never returns an error; callers validate lengths
// before encoding (see stub package) so encoding itself cannot fail.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with the given starting capacity hint.
func NewEncoder(sizeHint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated buffer.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes accumulated so far.
func (e *Encoder) Len() int { return len(e.buf) }

// PutUint32 appends a big-endian uint32.
func (e *Encoder) PutUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutInt32 appends a big-endian int32.
func (e *Encoder) PutInt32(v int32) {
	e.PutUint32(uint32(v))
}

// PutUint64 appends a big-endian uint64.
func (e *Encoder) PutUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutBool appends a 4-byte boolean (0 or 1), the XDR convention.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutUint32(1)
	} else {
		e.PutUint32(0)
	}
}

// PutString appends a 4-byte length prefix followed by the string bytes
// padded with zeroes to the next 4-byte boundary.
func (e *Encoder) PutString(s string) {
	e.PutUint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
	if pad := padLen(len(s)); pad > 0 {
		e.buf = append(e.buf, make([]byte, pad)...)
	}
}

// PutOpaque appends a 4-byte length prefix followed by raw bytes, padded
// like PutString.
func (e *Encoder) PutOpaque(p []byte) {
	e.PutUint32(uint32(len(p)))
	e.buf = append(e.buf, p...)
	if pad := padLen(len(p)); pad > 0 {
		e.buf = append(e.buf, make([]byte, pad)...)
	}
}

func padLen(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// Decoder reads fixed-width external data representation values from an
// in-memory buffer, advancing a cursor. Every method returns an error
// instead of panicking on a short buffer, matching the RPC engine's
// contract of raising Rpc("unmarshalling ret") on malformed bodies.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder wraps buf for sequential decoding.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

func (d *Decoder) need(n int) error {
	if d.Remaining() < n {
		return fmt.Errorf("short buffer: need %d bytes, have %d", n, d.Remaining())
	}
	return nil
}

// GetUint32 decodes a big-endian uint32.
func (d *Decoder) GetUint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4
	return v, nil
}

// GetInt32 decodes a big-endian int32.
func (d *Decoder) GetInt32() (int32, error) {
	v, err := d.GetUint32()
	return int32(v), err
}

// GetUint64 decodes a big-endian uint64.
func (d *Decoder) GetUint64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

// GetBool decodes a 4-byte boolean.
func (d *Decoder) GetBool() (bool, error) {
	v, err := d.GetUint32()
	return v != 0, err
}

// GetString decodes a length-prefixed, zero-padded string, enforcing
// maxLen as the protocol-declared ceiling for that field.
func (d *Decoder) GetString(maxLen uint32) (string, error) {
	n, err := d.GetUint32()
	if err != nil {
		return "", err
	}
	if n > maxLen {
		return "", fmt.Errorf("string length %d exceeds ceiling %d", n, maxLen)
	}
	if err := d.need(int(n)); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	if err := d.skipPad(int(n)); err != nil {
		return "", err
	}
	return s, nil
}

// GetOpaque decodes a length-prefixed, zero-padded byte string.
func (d *Decoder) GetOpaque(maxLen uint32) ([]byte, error) {
	n, err := d.GetUint32()
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, fmt.Errorf("opaque length %d exceeds ceiling %d", n, maxLen)
	}
	if err := d.need(int(n)); err != nil {
		return nil, err
	}
	p := make([]byte, n)
	copy(p, d.buf[d.pos:d.pos+int(n)])
	d.pos += int(n)
	if err := d.skipPad(int(n)); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *Decoder) skipPad(n int) error {
	pad := padLen(n)
	if pad == 0 {
		return nil
	}
	if err := d.need(pad); err != nil {
		return err
	}
	d.pos += pad
	return nil
}
