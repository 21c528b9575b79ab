//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/ttyclip/terminal"
)

var (
	crashMu     sync.Mutex
	crashDevice = terminal.DefaultDevice
	crashLog    = zerolog.Nop()

	// Replaced in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// RegisterCrashTarget records which device HandleCrash restores and where it
// logs. An empty device keeps the default.
func RegisterCrashTarget(device string, logger zerolog.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	if device != "" {
		crashDevice = device
	}
	crashLog = logger
}

// HandleCrash is the panic handler for the CLI. It turns echo and canonical
// input back on, reports the panic with its stack trace and exits with status 1.
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	device, logger := crashDevice, crashLog
	crashMu.Unlock()

	// Restore terminal to sane state before anything is printed
	if err := terminal.EmergencyReset(device); err != nil {
		logger.Debug().Err(err).Str("device", device).Msg("emergency reset failed")
	}

	stack := debug.Stack()
	logger.Error().
		Interface("panic", r).
		Bytes("stack", stack).
		Msg("crashed")

	fmt.Fprintf(crashOut, "clipboard: crashed: %v\n%s\n", r, stack)
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	crashExit(1)
}
