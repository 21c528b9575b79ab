package terminal

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnsupported is matched by every wait-window expiry
	ErrUnsupported           = errors.New("terminal: OSC 52 response not received")
	ErrUnsupportedTerminator = errors.New("terminal: response ended with ESC \\, only BEL is supported")
	ErrResponseTooLarge      = errors.New("terminal: response exceeds size limit")
	ErrNotTerminal           = errors.New("terminal: device is not a terminal")
	ErrModeHeld              = errors.New("terminal: mode guard already held")
)

// TimeoutError reports a wait window that elapsed with no readiness event
type TimeoutError struct {
	Window time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("terminal: no response within %s: terminal emulator likely doesn't support OSC 52, or is slow", e.Window)
}

// Timeout reports true, matching the net.Error convention
func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Unwrap() error { return ErrUnsupported }
