//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Line discipline is per device, not per descriptor, so one guard per process
var modeHeld atomic.Bool

// ModeGuard holds the terminal in cbreak/no-echo mode until Release.
// Acquire it and defer Release on the next line; restoration then runs on
// return, error and panic alike.
type ModeGuard struct {
	fd       int
	saved    *term.State
	released bool
}

// AcquireMode switches the terminal behind fd to character-at-a-time input
// with echo disabled. Signal generation and output processing are left on.
func AcquireMode(fd int) (*ModeGuard, error) {
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	if !modeHeld.CompareAndSwap(false, true) {
		return nil, ErrModeHeld
	}

	saved, err := term.GetState(fd)
	if err != nil {
		modeHeld.Store(false)
		return nil, fmt.Errorf("terminal: save mode: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		modeHeld.Store(false)
		return nil, fmt.Errorf("terminal: read termios: %w", err)
	}

	termios.Lflag &^= unix.ECHO | unix.ICANON
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, termios); err != nil {
		modeHeld.Store(false)
		return nil, fmt.Errorf("terminal: enter cbreak mode: %w", err)
	}

	return &ModeGuard{fd: fd, saved: saved}, nil
}

// Release restores the mode captured by AcquireMode. Safe to call multiple times
func (g *ModeGuard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	defer modeHeld.Store(false)

	if err := term.Restore(g.fd, g.saved); err != nil {
		return fmt.Errorf("terminal: restore mode: %w", err)
	}
	return nil
}
