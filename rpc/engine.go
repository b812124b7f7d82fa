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

package rpc

import (
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/wireproto"
)

// Engine multiplexes sequential calls over a single byte channel. The
// wire protocol is strictly request-then-reply, so Invoke holds a lock
// for the whole round trip; callers wanting concurrency should not share
// an Engine across goroutines expecting independent progress.
type Engine struct {
	mu     sync.Mutex
	conn   io.ReadWriteCloser
	serial uint32
	log    *logrus.Entry
}

// New wraps conn (typically a *transport.Channel) in an Engine. log may
// be nil, in which case the standard logger is used.
func New(conn io.ReadWriteCloser, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Engine{conn: conn, log: log}
}

// Call describes one procedure invocation: the (program, version,
// procedure) triple that identifies it on the wire, a Marshal function
// that appends the argument payload, and an Unmarshal function that
// consumes the reply payload on success.
type Call struct {
	Program   uint32
	Version   uint32
	Procedure uint32
	Marshal   func(*wireproto.Encoder)
	Unmarshal func(*wireproto.Decoder) error
}

// Invoke runs the per-call sequence: allocate a serial, frame the header and argument payload,
// length-prefix and write it, read back a length-prefixed reply,
// validate the reply header against this call, then dispatch on status.
func (eng *Engine) Invoke(c Call) rerr.Error {
	eng.mu.Lock()
	defer eng.mu.Unlock()

	serial := atomic.AddUint32(&eng.serial, 1) - 1

	enc := wireproto.NewEncoder(wireproto.HeaderSize + 64)
	wireproto.Header{
		Program:   c.Program,
		Version:   c.Version,
		Procedure: c.Procedure,
		Direction: wireproto.DirectionCall,
		Serial:    serial,
		Status:    wireproto.StatusOk,
	}.Encode(enc)
	if c.Marshal != nil {
		c.Marshal(enc)
	}

	if err := eng.writeFrame(enc.Bytes()); err != nil {
		return rerr.New(rerr.SystemError, "rpc", "write call").Add(err)
	}

	body, err := eng.readFrame()
	if err != nil {
		return rerr.New(rerr.Rpc, "rpc", "read reply").Add(err)
	}

	dec := wireproto.NewDecoder(body)
	hdr, err := wireproto.DecodeHeader(dec)
	if err != nil {
		return rerr.New(rerr.Rpc, "rpc", "decode reply header").Add(err)
	}

	if verr := validateReplyHeader(hdr, c, serial); verr != nil {
		return verr
	}

	switch hdr.Status {
	case wireproto.StatusOk:
		if c.Unmarshal != nil {
			if err := c.Unmarshal(dec); err != nil {
				return rerr.New(rerr.Rpc, "rpc", "unmarshalling ret").Add(err)
			}
		}
		return nil
	case wireproto.StatusError:
		rec, err := wireproto.DecodeErrorRecord(dec)
		if err != nil {
			return rerr.New(rerr.Rpc, "rpc", "unmarshalling ret").Add(err)
		}
		return errorRecordToError(rec)
	default:
		return rerr.New(rerr.Rpc, "rpc", fmt.Sprintf("unrecognised reply status %d", hdr.Status))
	}
}

// validateReplyHeader checks five header fields: program, version and procedure must echo the call, direction
// must be Reply, and serial must match.
func validateReplyHeader(hdr wireproto.Header, c Call, serial uint32) rerr.Error {
	if hdr.Program != c.Program {
		return mismatchError("program", c.Program, hdr.Program)
	}
	if hdr.Version != c.Version {
		return mismatchError("version", c.Version, hdr.Version)
	}
	if hdr.Procedure != c.Procedure {
		return mismatchError("procedure", c.Procedure, hdr.Procedure)
	}
	if hdr.Direction != wireproto.DirectionReply {
		return mismatchError("direction", uint32(wireproto.DirectionReply), uint32(hdr.Direction))
	}
	if hdr.Serial != serial {
		return mismatchError("serial", serial, hdr.Serial)
	}
	return nil
}

func mismatchError(field string, expected, observed uint32) rerr.Error {
	e := rerr.New(rerr.Rpc, "rpc", fmt.Sprintf("reply %s mismatch", field))
	return rerr.WithInts(e, int64(expected), int64(observed))
}

// errorRecordToError translates a decoded ErrorRecord into an rerr.Error
// carrying the same code, level, context strings/ints, message and
// optional object reference the server attached. The record's numeric
// Domain is not carried over: the returned error's domain tag is "rpc".
func errorRecordToError(rec wireproto.ErrorRecord) rerr.Error {
	e := rerr.New(rerr.Rpc, "rpc", rec.Message)
	e = rerr.WithCode(e, rerr.Code(rec.Code))
	e = rerr.WithLevel(e, rerr.Level(rec.Level))
	e = rerr.WithStrings(e, rec.Str1, rec.Str2, rec.Str3)
	e = rerr.WithInts(e, rec.Int1, rec.Int2)
	if rec.HasRef {
		e = rerr.WithRef(e, &rerr.ObjectRef{
			Name:  rec.RefName,
			UUID:  rec.RefUUID,
			ID:    rec.RefID,
			HasID: rec.RefHasID,
		})
	}
	return e
}

// writeFrame prepends the self-inclusive length prefix to body and
// writes both, retrying on transient interruption until every byte is
// sent.
func (eng *Engine) writeFrame(body []byte) error {
	prefix := wireproto.NewEncoder(wireproto.LengthPrefixSize)
	wireproto.EncodeLengthPrefix(prefix, len(body))
	return writeAll(eng.conn, append(prefix.Bytes(), body...))
}

func writeAll(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		buf = buf[n:]
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() { //nolint:staticcheck
				continue
			}
			return err
		}
	}
	return nil
}

// readFrame reads the 4-byte length prefix, then exactly that many
// payload bytes, using the resilient read loop: transient interruptions
// retry, and an orderly EOF is reported as a fatal error rather than a
// silent short read.
func (eng *Engine) readFrame() ([]byte, error) {
	lb, err := readAll(eng.conn, 4)
	if err != nil {
		return nil, err
	}
	n, err := wireproto.DecodeLengthPrefix([4]byte{lb[0], lb[1], lb[2], lb[3]})
	if err != nil {
		return nil, err
	}
	return readAll(eng.conn, n)
}

func readAll(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := r.Read(buf[read:])
		read += m
		if read >= n {
			break
		}
		if err == nil {
			continue
		}
		if err == io.EOF {
			return nil, fmt.Errorf("socket closed unexpectedly")
		}
		if ne, ok := err.(net.Error); ok && ne.Temporary() { //nolint:staticcheck
			continue
		}
		return nil, err
	}
	return buf, nil
}
