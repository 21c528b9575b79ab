//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Channel is a read/write handle on the terminal device
type Channel struct {
	file *os.File
	fd   int
	path string
}

// OpenChannel opens the device for simultaneous read and write
func OpenChannel(path string) (*Channel, error) {
	if path == "" {
		path = DefaultDevice
	}
	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("terminal: open device: %w", err)
	}
	// Fd switches the file to blocking mode; raw syscalls take over from here
	return &Channel{file: f, fd: int(f.Fd()), path: path}, nil
}

// Fd returns the descriptor used for polling and mode changes
func (c *Channel) Fd() int {
	return c.fd
}

// Path returns the device path the channel was opened with
func (c *Channel) Path() string {
	return c.path
}

// SetNonblocking sets O_NONBLOCK on the descriptor.
// Frames must be written before this call.
func (c *Channel) SetNonblocking() error {
	if err := unix.SetNonblock(c.fd, true); err != nil {
		return fmt.Errorf("terminal: set non-blocking: %w", os.NewSyscallError("fcntl", err))
	}
	return nil
}

// WriteFrame writes the whole frame. os.File is unbuffered so there is
// nothing further to flush.
func (c *Channel) WriteFrame(frame []byte) error {
	if _, err := c.file.Write(frame); err != nil {
		return fmt.Errorf("terminal: write frame: %w", err)
	}
	return nil
}

// Close releases the descriptor
func (c *Channel) Close() error {
	return c.file.Close()
}

// WriteDevice opens path write-only, writes frame and closes it.
// Used for requests that expect no reply.
func WriteDevice(path string, frame []byte) error {
	if path == "" {
		path = DefaultDevice
	}
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NOCTTY, 0)
	if err != nil {
		return fmt.Errorf("terminal: open device: %w", err)
	}

	_, err = f.Write(frame)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("terminal: write frame: %w", err)
	}
	return nil
}
