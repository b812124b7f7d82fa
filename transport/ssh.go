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

package transport

import (
	"strconv"

	"github.com/nabbar/virt-remote-client/rerr"
	"github.com/nabbar/virt-remote-client/uri"
)

// buildSSHArgv constructs the argument vector the original driver hands
// to ssh: connect to host, then run netcat (or nc) against the remote
// daemon's Unix socket. The socket defaults on readOnly, the open
// call's own flag, exactly as dialUnix does for a local connection.
func buildSSHArgv(p *uri.Params, readOnly bool) []string {
	netcat := p.Netcat
	if !p.HasNetcat || netcat == "" {
		netcat = "nc"
	}

	sockPath := defaultSocketPath(p, readOnly)

	argv := []string{"ssh"}
	if p.Port != 0 {
		argv = append(argv, "-p", strconv.Itoa(p.Port))
	}
	if p.User != "" {
		argv = append(argv, "-l", p.User)
	}
	argv = append(argv, p.Host, netcat, "-U", sockPath)
	return argv
}

// dialSsh builds the ssh argument vector and falls through to the same
// socket-pair-plus-subprocess logic Ext uses: SSH is an Ext spawn whose
// command happens to be computed from the URI instead of supplied by
// the caller.
func dialSsh(p *uri.Params, opt Options) (*Channel, rerr.Error) {
	if p.Host == "" {
		return nil, rerr.New(rerr.InvalidArg, "transport", "ssh transport requires a host")
	}
	return dialExtArgv(buildSSHArgv(p, opt.ReadOnly))
}
