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

package uri

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one "name=value" pair parsed out of a query string, tagged
// with whether it was a reserved key already consumed by the parser.
type Field struct {
	Name    string
	Value   string
	Ignored bool
}

// reservedQueryKeys are extracted from the query and never forwarded.
var reservedQueryKeys = map[string]bool{
	"name":      true,
	"command":   true,
	"socket":    true,
	"netcat":    true,
	"no_verify": true,
}

// ParseQuery splits raw on '&' and decodes each "name[=value]" pair,
// percent-decoding both name and value. It deliberately does not use
// net/url.ParseQuery, whose semantics differ at the edges this parser
// must match exactly:
//
//	""          -> []
//	"?"         -> []
//	"&"         -> []
//	"a"         -> [{a, "", false}]
//	"a="        -> [{a, "", false}]
//	"=b"        -> []                 (starts with '=': ignored entirely)
//	"a=b&c=d"   -> [{a,b,false},{c,d,false}]
//
// raw must already have any leading '?' stripped.
func ParseQuery(raw string) []Field {
	if raw == "" {
		return nil
	}

	var out []Field
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "=") {
			continue
		}

		var name, value string
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			name, value = part[:idx], part[idx+1:]
		} else {
			name, value = part, ""
		}

		out = append(out, Field{
			Name:  unescape(name),
			Value: unescape(value),
		})
	}
	return out
}

// ExtractReserved marks every field whose name is one of the five
// reserved keys as Ignored, in place, and returns the set of reserved
// values observed (the last occurrence wins, matching a simple
// map-assignment semantics).
func ExtractReserved(fields []Field) (reserved map[string]string, rest []Field) {
	reserved = make(map[string]string, len(reservedQueryKeys))
	for i := range fields {
		f := &fields[i]
		if reservedQueryKeys[f.Name] {
			f.Ignored = true
			reserved[f.Name] = f.Value
			continue
		}
		rest = append(rest, *f)
	}
	return reserved, rest
}

// Serialize rebuilds a query string from non-ignored fields, in their
// original relative order, percent-escaping everything outside a
// conservative safe set. '=', '&' and '#' are always escaped even when a
// looser encoder might leave them alone, since they are query-string
// metacharacters here.
func Serialize(fields []Field) string {
	var b strings.Builder
	first := true
	for _, f := range fields {
		if f.Ignored {
			continue
		}
		if !first {
			b.WriteByte('&')
		}
		first = false
		b.WriteString(escape(f.Name))
		b.WriteByte('=')
		b.WriteString(escape(f.Value))
	}
	return b.String()
}

// isSafe reports whether b may appear unescaped in a serialised query
// field. The safe set is deliberately conservative: unreserved URI
// characters only, with '=', '&' and '#' always excluded even though
// some of the unreserved set would otherwise allow them.
func isSafe(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	default:
		return false
	}
}

func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteByte('%')
		case '+':
			b.WriteByte(' ')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
