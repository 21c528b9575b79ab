package terminal

import "time"

const (
	// DefaultDevice is the controlling terminal of the process. It reaches the
	// emulator no matter how stdin and stdout are redirected.
	DefaultDevice = "/dev/tty"

	// DefaultWaitWindow bounds the gap between readiness events. Short enough
	// to fail fast on emulators without OSC 52, long enough for slow ones.
	DefaultWaitWindow = 500 * time.Millisecond

	// DefaultBufferSize is the per-read chunk size while draining
	DefaultBufferSize = 8192
)
