//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"bytes"
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// openPTY returns a master/slave pair; the slave stands in for /dev/tty
func openPTY(t *testing.T) (master, slave *os.File) {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		slave.Close()
		master.Close()
	})
	return master, slave
}

// lineMode reports the ECHO and ICANON bits of the terminal behind fd
func lineMode(t *testing.T, fd int) (echo, canonical bool) {
	t.Helper()
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		t.Fatalf("read termios: %v", err)
	}
	return termios.Lflag&unix.ECHO != 0, termios.Lflag&unix.ICANON != 0
}

// readUntil collects bytes from r until they end with suffix
func readUntil(t *testing.T, r io.Reader, suffix []byte) []byte {
	t.Helper()
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var acc []byte
		buf := make([]byte, 256)
		for !bytes.HasSuffix(acc, suffix) {
			n, err := r.Read(buf)
			if err != nil {
				done <- result{acc, err}
				return
			}
			acc = append(acc, buf[:n]...)
		}
		done <- result{acc, nil}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("read until %q: %v (got %q)", suffix, res.err, res.data)
		}
		return res.data
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", suffix)
		return nil
	}
}
