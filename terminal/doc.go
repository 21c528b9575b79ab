// @focus: #sys { term }
// Package terminal talks to the controlling terminal device directly.
//
// Features:
//   - Scoped cbreak/no-echo mode with guaranteed restoration (ModeGuard)
//   - Read/write device handle independent of stdio redirection (Channel)
//   - Poll-driven, non-blocking reply collection with a per-gap wait window (ResponseReader)
//   - Best-effort termios recovery for crash paths (EmergencyReset)
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
