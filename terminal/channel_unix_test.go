//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

func TestOpenChannel_MissingDevice(t *testing.T) {
	_, err := OpenChannel(filepath.Join(t.TempDir(), "no-such-tty"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("OpenChannel = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestChannel_WriteFrameReachesEmulator(t *testing.T) {
	master, slave := openPTY(t)

	ch, err := OpenChannel(slave.Name())
	if err != nil {
		t.Fatalf("OpenChannel: %v", err)
	}
	defer ch.Close()

	if ch.Path() != slave.Name() {
		t.Fatalf("Path = %q, want %q", ch.Path(), slave.Name())
	}
	frame := []byte("\x1b]52;c;?\x07")
	if err := ch.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if got := readUntil(t, master, []byte{BEL}); string(got) != string(frame) {
		t.Fatalf("emulator saw %q, want %q", got, frame)
	}
}

func TestChannel_SetNonblocking(t *testing.T) {
	_, slave := openPTY(t)

	ch, err := OpenChannel(slave.Name())
	if err != nil {
		t.Fatalf("OpenChannel: %v", err)
	}
	defer ch.Close()

	flags, err := unix.FcntlInt(uintptr(ch.Fd()), unix.F_GETFL, 0)
	if err != nil {
		t.Fatalf("fcntl: %v", err)
	}
	if flags&unix.O_NONBLOCK != 0 {
		t.Fatal("descriptor non-blocking before SetNonblocking")
	}

	if err := ch.SetNonblocking(); err != nil {
		t.Fatalf("SetNonblocking: %v", err)
	}
	flags, err = unix.FcntlInt(uintptr(ch.Fd()), unix.F_GETFL, 0)
	if err != nil {
		t.Fatalf("fcntl: %v", err)
	}
	if flags&unix.O_NONBLOCK == 0 {
		t.Fatal("O_NONBLOCK not set")
	}
}

func TestChannel_SetNonblockingClosed(t *testing.T) {
	_, slave := openPTY(t)

	ch, err := OpenChannel(slave.Name())
	if err != nil {
		t.Fatalf("OpenChannel: %v", err)
	}
	ch.Close()

	if err := ch.SetNonblocking(); err == nil {
		t.Fatal("SetNonblocking on closed descriptor succeeded")
	}
}

func TestWriteDevice(t *testing.T) {
	master, slave := openPTY(t)

	frame := []byte("\x1b]52;c;aGVsbG8=\x07")
	if err := WriteDevice(slave.Name(), frame); err != nil {
		t.Fatalf("WriteDevice: %v", err)
	}
	if got := readUntil(t, master, []byte{BEL}); string(got) != string(frame) {
		t.Fatalf("emulator saw %q, want %q", got, frame)
	}
}

// Full exchange over a pty: request out, burst-delivered reply back in
func TestChannel_RequestResponseExchange(t *testing.T) {
	master, slave := openPTY(t)

	ch, err := OpenChannel(slave.Name())
	if err != nil {
		t.Fatalf("OpenChannel: %v", err)
	}
	defer ch.Close()

	guard, err := AcquireMode(ch.Fd())
	if err != nil {
		t.Fatalf("AcquireMode: %v", err)
	}
	defer guard.Release()

	if err := ch.WriteFrame([]byte("\x1b]52;c;?\x07")); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := ch.SetNonblocking(); err != nil {
		t.Fatalf("SetNonblocking: %v", err)
	}

	readUntil(t, master, []byte{BEL})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, chunk := range []string{"\x1b]52;c;aGVs", "bG8=\x07"} {
			time.Sleep(20 * time.Millisecond)
			if _, err := master.Write([]byte(chunk)); err != nil {
				t.Errorf("emulator write: %v", err)
				return
			}
		}
	}()
	defer func() { <-done }()

	got, err := NewResponseReader(ch.Fd(), ReaderConfig{Window: time.Second}, zerolog.Nop()).ReadResponse(context.Background())
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if string(got) != "\x1b]52;c;aGVsbG8=\x07" {
		t.Fatalf("ReadResponse = %q", got)
	}
}
