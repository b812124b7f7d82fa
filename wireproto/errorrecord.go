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

// maxErrorString bounds each optional string field of an ErrorRecord;
// chosen generously since error text is rare on the wire.
const maxErrorString = 4096

// ErrorRecord is the structured error payload carried in a reply whose
// header Status is StatusError. It mirrors the server-side error model:
// a subsystem domain tag, a numeric code, a severity level, up to three
// optional strings, two optional integers, a message, and an optional
// domain/network object reference.
type ErrorRecord struct {
	Domain   uint32
	Code     uint32
	Level    uint32
	Str1     string
	Str2     string
	Str3     string
	Str1Set  bool
	Str2Set  bool
	Str3Set  bool
	Int1     int64
	Int2     int64
	Int1Set  bool
	Int2Set  bool
	Message  string
	HasRef   bool
	RefName  string
	RefUUID  string
	RefID    int64
	RefHasID bool
}

// Encode appends the wire representation of the record to e. Optional
// fields are preceded by a boolean presence flag, the XDR convention for
// an "optional" union member.
func (r ErrorRecord) Encode(e *Encoder) {
	e.PutUint32(r.Domain)
	e.PutUint32(r.Code)
	e.PutUint32(r.Level)

	encodeOptString(e, r.Str1Set, r.Str1)
	encodeOptString(e, r.Str2Set, r.Str2)
	encodeOptString(e, r.Str3Set, r.Str3)

	encodeOptInt(e, r.Int1Set, r.Int1)
	encodeOptInt(e, r.Int2Set, r.Int2)

	e.PutString(r.Message)

	e.PutBool(r.HasRef)
	if r.HasRef {
		e.PutString(r.RefName)
		e.PutString(r.RefUUID)
		e.PutBool(r.RefHasID)
		if r.RefHasID {
			e.PutUint64(uint64(r.RefID))
		}
	}
}

func encodeOptString(e *Encoder, set bool, v string) {
	e.PutBool(set)
	if set {
		e.PutString(v)
	}
}

func encodeOptInt(e *Encoder, set bool, v int64) {
	e.PutBool(set)
	if set {
		e.PutUint64(uint64(v))
	}
}

// DecodeErrorRecord reads an ErrorRecord from d.
func DecodeErrorRecord(d *Decoder) (ErrorRecord, error) {
	var r ErrorRecord
	var err error

	if r.Domain, err = d.GetUint32(); err != nil {
		return r, err
	}
	if r.Code, err = d.GetUint32(); err != nil {
		return r, err
	}
	if r.Level, err = d.GetUint32(); err != nil {
		return r, err
	}

	if r.Str1Set, r.Str1, err = decodeOptString(d); err != nil {
		return r, err
	}
	if r.Str2Set, r.Str2, err = decodeOptString(d); err != nil {
		return r, err
	}
	if r.Str3Set, r.Str3, err = decodeOptString(d); err != nil {
		return r, err
	}

	if r.Int1Set, r.Int1, err = decodeOptInt(d); err != nil {
		return r, err
	}
	if r.Int2Set, r.Int2, err = decodeOptInt(d); err != nil {
		return r, err
	}

	if r.Message, err = d.GetString(maxErrorString); err != nil {
		return r, err
	}

	if r.HasRef, err = d.GetBool(); err != nil {
		return r, err
	}
	if r.HasRef {
		if r.RefName, err = d.GetString(maxErrorString); err != nil {
			return r, err
		}
		if r.RefUUID, err = d.GetString(maxErrorString); err != nil {
			return r, err
		}
		if r.RefHasID, err = d.GetBool(); err != nil {
			return r, err
		}
		if r.RefHasID {
			var id uint64
			if id, err = d.GetUint64(); err != nil {
				return r, err
			}
			r.RefID = int64(id)
		}
	}

	return r, nil
}

func decodeOptString(d *Decoder) (bool, string, error) {
	set, err := d.GetBool()
	if err != nil || !set {
		return set, "", err
	}
	s, err := d.GetString(maxErrorString)
	return set, s, err
}

func decodeOptInt(d *Decoder) (bool, int64, error) {
	set, err := d.GetBool()
	if err != nil || !set {
		return set, 0, err
	}
	v, err := d.GetUint64()
	return set, int64(v), err
}
