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
	"net"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/nabbar/virt-remote-client/rerr"
)

// netFileConn wraps a raw file descriptor as a net.Conn. net.FileConn
// dup()s the descriptor internally, so the os.File wrapper used to get
// there must be closed afterwards regardless of outcome.
func netFileConn(fd int) (net.Conn, rerr.Error) {
	f := os.NewFile(uintptr(fd), "ext-parent")
	defer f.Close()

	conn, err := net.FileConn(f)
	if err != nil {
		return nil, rerr.New(rerr.SystemError, "transport", "wrap socketpair fd").Add(err)
	}
	return conn, nil
}

// dialExt spawns command with no arguments, exactly as the original
// driver's execvp(command, {command, NULL}) call, connected to one end
// of a Unix domain socket pair.
func dialExt(command string) (*Channel, rerr.Error) {
	if command == "" {
		return nil, rerr.New(rerr.InvalidArg, "transport", "command is required")
	}
	return dialExtArgv([]string{command})
}

// dialExtArgv is the shared Ext/Ssh spawn path: allocate a socket pair
// with unix.Socketpair (the idiomatic Go replacement for the original's
// socketpair(2) + fork + dup onto stdin/stdout), wire one end to the
// child's standard input and output, and keep the other end as the
// parent-side channel.
func dialExtArgv(argv []string) (*Channel, rerr.Error) {
	if len(argv) == 0 {
		return nil, rerr.New(rerr.InvalidArg, "transport", "command is required")
	}

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, rerr.New(rerr.SystemError, "transport", "socketpair").Add(err)
	}
	parentFD, childFD := fds[0], fds[1]

	path, lerr := exec.LookPath(argv[0])
	if lerr != nil {
		_ = unix.Close(parentFD)
		_ = unix.Close(childFD)
		return nil, rerr.New(rerr.SystemError, "transport", "lookup "+argv[0]).Add(lerr)
	}

	childFile := os.NewFile(uintptr(childFD), "ext-child")
	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = childFile
	cmd.Stdout = childFile
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		_ = childFile.Close()
		_ = unix.Close(parentFD)
		return nil, rerr.New(rerr.SystemError, "transport", "spawn "+path).Add(err)
	}
	_ = childFile.Close()

	parentConn, cerr := netFileConn(parentFD)
	if cerr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, cerr
	}

	return &Channel{ReadWriteCloser: parentConn, proc: cmd}, nil
}
