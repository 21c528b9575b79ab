//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ReaderConfig tunes a ResponseReader. Zero values select the defaults.
type ReaderConfig struct {
	Window      time.Duration
	BufferSize  int
	MaxResponse int // 0 disables the cap
}

// ResponseReader collects an asynchronous BEL-terminated reply from a
// non-blocking descriptor.
//
// Each readiness event is drained until the read would block, then the
// accumulator is checked for the terminator. The wait window applies to each
// gap between events, never to the exchange as a whole, so replies that
// arrive in several slow bursts are accepted.
type ResponseReader struct {
	fd          int
	window      time.Duration
	buf         []byte
	maxResponse int
	log         zerolog.Logger
}

// NewResponseReader creates a reader for fd, which must already be non-blocking
func NewResponseReader(fd int, cfg ReaderConfig, logger zerolog.Logger) *ResponseReader {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWaitWindow
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &ResponseReader{
		fd:          fd,
		window:      cfg.Window,
		buf:         make([]byte, cfg.BufferSize),
		maxResponse: cfg.MaxResponse,
		log:         logger,
	}
}

// ReadResponse blocks until a complete frame has been accumulated, the wait
// window elapses, the stream fails, or ctx is done. No partial data is
// returned on error.
func (r *ResponseReader) ReadResponse(ctx context.Context) ([]byte, error) {
	acc := make([]byte, 0, len(r.buf))

	for events := 1; ; events++ {
		if err := r.awaitReadable(ctx); err != nil {
			return nil, err
		}

		before := len(acc)
		var err error
		acc, err = r.drain(acc)
		if err != nil {
			return nil, err
		}
		r.log.Debug().
			Int("event", events).
			Int("bytes", len(acc)-before).
			Int("total", len(acc)).
			Msg("drained terminal input")

		if r.maxResponse > 0 && len(acc) > r.maxResponse {
			return nil, fmt.Errorf("%w: %d > %d bytes", ErrResponseTooLarge, len(acc), r.maxResponse)
		}

		switch {
		case len(acc) > 0 && acc[len(acc)-1] == BEL:
			return acc, nil
		case endsWithSTReply(acc):
			return nil, ErrUnsupportedTerminator
		}
	}
}

// awaitReadable waits up to one window for the descriptor to become readable.
// An interrupted poll resumes with whatever is left of the same window.
func (r *ResponseReader) awaitReadable(ctx context.Context) error {
	deadline := time.Now().Add(r.window)
	fds := []unix.PollFd{
		{Fd: int32(r.fd), Events: unix.POLLIN},
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("terminal: wait for response: %w", err)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return &TimeoutError{Window: r.window}
		}

		// Round up so a sub-millisecond remainder still sleeps
		timeout := int((remaining + time.Millisecond - 1) / time.Millisecond)
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("terminal: wait for response: %w", os.NewSyscallError("poll", err))
		}
		if n == 0 {
			continue
		}

		if fds[0].Revents&unix.POLLNVAL != 0 {
			return fmt.Errorf("terminal: wait for response: %w", os.NewSyscallError("poll", unix.EBADF))
		}
		// POLLHUP and POLLERR fall through so the drain observes EOF or the error
		return nil
	}
}

// drain reads until the descriptor would block
func (r *ResponseReader) drain(acc []byte) ([]byte, error) {
	for {
		n, err := unix.Read(r.fd, r.buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
			return acc, nil
		case err != nil:
			return acc, fmt.Errorf("terminal: read response: %w", os.NewSyscallError("read", err))
		case n == 0:
			return acc, fmt.Errorf("terminal: read response: %w", io.ErrUnexpectedEOF)
		}
		acc = append(acc, r.buf[:n]...)
	}
}

// endsWithSTReply reports whether acc ends in ESC \ after an OSC 52 reply
// introducer. Anything else not ending in BEL is left to the wait window.
func endsWithSTReply(acc []byte) bool {
	if !bytes.HasSuffix(acc, stringTerminator) {
		return false
	}
	return bytes.Contains(acc[:len(acc)-len(stringTerminator)], replyIntroducer)
}
