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

import "fmt"

const (
	// LengthPrefixSize is the width of the self-inclusive length word.
	LengthPrefixSize = 4
	// HeaderSize is the encoded width of Header: six uint32 fields.
	HeaderSize = 24
	// MaxMessage is the implementation-defined ceiling on frame length,
	// matching the original driver's default.
	MaxMessage = 256 * 1024
	// MinMessage is the smallest legal length-prefix value: the prefix
	// counts itself, so a frame carrying no header at all would still
	// encode 4.
	MinMessage = LengthPrefixSize
)

// Direction distinguishes a call from its reply on the wire.
type Direction uint32

const (
	// DirectionCall marks a request frame.
	DirectionCall Direction = 0
	// DirectionReply marks a response frame.
	DirectionReply Direction = 1
)

func (d Direction) String() string {
	if d == DirectionReply {
		return "reply"
	}
	return "call"
}

// Status is the reply-only disposition of a call.
type Status uint32

const (
	// StatusOk means the reply body is the procedure's typed reply
	// payload.
	StatusOk Status = 0
	// StatusError means the reply body is a structured ErrorRecord.
	StatusError Status = 1
)

// Header is the fixed 24-byte preamble of every frame, before the body.
type Header struct {
	Program   uint32
	Version   uint32
	Procedure uint32
	Direction Direction
	Serial    uint32
	Status    Status
}

// Encode appends the header's wire representation to e.
func (h Header) Encode(e *Encoder) {
	e.PutUint32(h.Program)
	e.PutUint32(h.Version)
	e.PutUint32(h.Procedure)
	e.PutUint32(uint32(h.Direction))
	e.PutUint32(h.Serial)
	e.PutUint32(uint32(h.Status))
}

// DecodeHeader reads a Header from d.
func DecodeHeader(d *Decoder) (Header, error) {
	var h Header
	var err error

	if h.Program, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header program: %w", err)
	}
	if h.Version, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header version: %w", err)
	}
	if h.Procedure, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header procedure: %w", err)
	}
	var dir uint32
	if dir, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header direction: %w", err)
	}
	h.Direction = Direction(dir)
	if h.Serial, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header serial: %w", err)
	}
	var st uint32
	if st, err = d.GetUint32(); err != nil {
		return h, fmt.Errorf("decode header status: %w", err)
	}
	h.Status = Status(st)
	return h, nil
}

// EncodeLengthPrefix appends a self-inclusive big-endian length word
// covering a body of bodyLen bytes plus the length word itself.
func EncodeLengthPrefix(e *Encoder, bodyLen int) {
	e.PutInt32(int32(bodyLen + LengthPrefixSize))
}

// DecodeLengthPrefix decodes the 4-byte length word and returns the
// payload length (the frame length minus the prefix itself), validating
// it falls within [MinMessage, MaxMessage].
func DecodeLengthPrefix(b [4]byte) (payloadLen int, err error) {
	d := NewDecoder(b[:])
	v, err := d.GetInt32()
	if err != nil {
		return 0, err
	}
	if v < MinMessage || v > MaxMessage {
		return 0, fmt.Errorf("frame length %d out of range [%d, %d]", v, MinMessage, MaxMessage)
	}
	return int(v) - LengthPrefixSize, nil
}
