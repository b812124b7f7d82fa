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

package stub

import (
	"github.com/google/uuid"

	"github.com/nabbar/virt-remote-client/handle"
	"github.com/nabbar/virt-remote-client/wireproto"
)

// putDomainRef encodes a non-null domain reference: name, raw 16-byte
// uuid, numeric id. The original protocol carries domains by all three
// fields regardless of which one a given call actually keys off.
func putDomainRef(enc *wireproto.Encoder, ref handle.Ref) error {
	raw, err := parseUUID(ref.UUID)
	if err != nil {
		return err
	}
	enc.PutString(ref.Name)
	enc.PutOpaque(raw)
	enc.PutInt32(int32(ref.ID))
	return nil
}

func parseUUID(s string) ([]byte, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	b := id[:]
	return b, nil
}

// getDomainRef decodes a non-null domain reference from a reply body.
func getDomainRef(dec *wireproto.Decoder) (name, uuidStr string, id int32, err error) {
	if name, err = dec.GetString(maxNameLen); err != nil {
		return "", "", 0, err
	}
	var raw []byte
	if raw, err = dec.GetOpaque(uuidRawLen); err != nil {
		return "", "", 0, err
	}
	if uuidStr, err = formatUUID(raw); err != nil {
		return "", "", 0, err
	}
	if id, err = dec.GetInt32(); err != nil {
		return "", "", 0, err
	}
	return name, uuidStr, id, nil
}

// getNetworkRef decodes a non-null network reference from a reply body.
func getNetworkRef(dec *wireproto.Decoder) (name, uuidStr string, err error) {
	if name, err = dec.GetString(maxNameLen); err != nil {
		return "", "", err
	}
	var raw []byte
	if raw, err = dec.GetOpaque(uuidRawLen); err != nil {
		return "", "", err
	}
	if uuidStr, err = formatUUID(raw); err != nil {
		return "", "", err
	}
	return name, uuidStr, nil
}

func formatUUID(raw []byte) (string, error) {
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
