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
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nabbar/virt-remote-client/rerr"
)

var paramsValidate = validator.New()

// Outcome is the three-way result of Parse, matching the original
// driver's contract: a connection URI either belongs to another driver
// entirely (Declined), is malformed for this driver (Errored), or is
// fully understood (Accepted).
type Outcome uint8

const (
	// Declined means this is not a remote URI; another driver may own it.
	Declined Outcome = iota
	// Accepted means Params is populated and ready to dial.
	Accepted
	// Errored means the URI belongs to this driver but is malformed.
	Errored
)

// Params is everything extracted from a parsed connection URI.
type Params struct {
	Driver    string `validate:"required"`
	Transport Transport
	User      string
	Host      string
	Port      int `validate:"gte=0,lte=65535"`
	Path      string

	Command   string
	HasCommand bool
	Socket    string
	HasSocket bool
	Netcat    string
	HasNetcat bool
	NoVerify  bool

	// ForwardQuery is the re-serialised non-reserved query string,
	// passed through to the server verbatim.
	ForwardQuery string
	// ForwardName is the logical resource name the server opens: either
	// the query's name= override, or the URI stripped of transport
	// suffix/user/host/port and re-attached to ForwardQuery.
	ForwardName string
}

// Validate checks structural invariants beyond what Parse already
// enforces; it exists so callers that build a Params by hand (tests,
// alternate entry points) still get the same guarantees. Struct-tag
// constraints (driver required, port in range) run first; the
// Ext-requires-command rule is cross-field and stays hand-written.
func (p *Params) Validate() rerr.Error {
	if err := paramsValidate.Struct(p); err != nil {
		return rerr.New(rerr.InvalidArg, "uri", err.Error()).Add(err)
	}
	if p.Transport == Ext && !p.HasCommand {
		return rerr.New(rerr.InvalidArg, "uri", "command is required")
	}
	return nil
}

// Parse parses raw per the "[driver][+transport]://[user@]host[:port][/path][?query]"
// grammar described in the driver's external URI surface.
func Parse(raw string, tlsPort, tcpPort int) (Outcome, *Params, rerr.Error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return Declined, nil, nil
	}

	driver, transportSuffix, hasSuffix := splitScheme(u.Scheme)

	if !hasSuffix && u.Host == "" {
		return Declined, nil, nil
	}

	transport, ok := ParseTransport(transportSuffix)
	if !ok {
		return Errored, nil, rerr.New(rerr.InvalidArg, "uri", fmt.Sprintf("unrecognised transport %q", transportSuffix))
	}

	host := u.Hostname()
	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Errored, nil, rerr.New(rerr.InvalidArg, "uri", fmt.Sprintf("invalid port %q", p))
		}
	} else {
		port = transport.DefaultPort(tlsPort, tcpPort)
	}

	var user string
	if u.User != nil {
		user = u.User.Username()
	}

	fields := ParseQuery(u.RawQuery)
	reserved, rest := ExtractReserved(fields)

	params := &Params{
		Driver:       driver,
		Transport:    transport,
		User:         user,
		Host:         host,
		Port:         port,
		Path:         u.Path,
		ForwardQuery: Serialize(rest),
	}

	if v, ok := reserved["command"]; ok {
		params.Command, params.HasCommand = v, true
	}
	if v, ok := reserved["socket"]; ok {
		params.Socket, params.HasSocket = v, true
	}
	if v, ok := reserved["netcat"]; ok {
		params.Netcat, params.HasNetcat = v, true
	}
	if v, ok := reserved["no_verify"]; ok {
		n, _ := strconv.Atoi(v)
		params.NoVerify = n != 0
	}

	if name, ok := reserved["name"]; ok {
		params.ForwardName = name
	} else {
		params.ForwardName = buildForwardName(driver, u.Path, params.ForwardQuery)
	}

	if params.Transport == Ext && !params.HasCommand {
		return Errored, nil, rerr.New(rerr.InvalidArg, "uri", "command is required")
	}

	return Accepted, params, nil
}

// splitScheme separates "driver+transport" into its two parts. hasSuffix
// reports whether a "+transport" component was present at all.
func splitScheme(scheme string) (driver, transport string, hasSuffix bool) {
	if idx := strings.IndexByte(scheme, '+'); idx >= 0 {
		return scheme[:idx], scheme[idx+1:], true
	}
	return scheme, "", false
}

// buildForwardName strips the transport suffix, user, host and port from
// the original URI, leaving "driver://path[?query]" as the logical
// resource name the server opens.
func buildForwardName(driver, path, query string) string {
	var b strings.Builder
	b.WriteString(driver)
	b.WriteString("://")
	b.WriteString(path)
	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}
	return b.String()
}
