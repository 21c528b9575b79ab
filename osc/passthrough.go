package osc

import (
	"fmt"
	"strings"
)

// Passthrough selects the multiplexer wrapping applied to outgoing frames.
// tmux and GNU screen swallow bare OSC sequences; a DCS passthrough envelope
// forwards them to the outer terminal.
type Passthrough uint8

const (
	PassthroughNone Passthrough = iota
	PassthroughTmux
	PassthroughScreen
)

// Mode names. Passthrough is opt-in: the empty name is PassthroughModeNone.
const (
	PassthroughModeNone = "none"
	PassthroughAuto     = "auto"
)

func (p Passthrough) String() string {
	switch p {
	case PassthroughTmux:
		return "tmux"
	case PassthroughScreen:
		return "screen"
	default:
		return "none"
	}
}

// DetectPassthrough inspects the variables tmux and GNU screen export to
// their children. TERM is not consulted: tmux sets screen-* values and they
// survive SSH hops where TMUX does not.
func DetectPassthrough(getenv func(string) string) Passthrough {
	if getenv("TMUX") != "" {
		return PassthroughTmux
	}
	if getenv("STY") != "" {
		return PassthroughScreen
	}
	return PassthroughNone
}

// ResolvePassthrough maps a mode name to a Passthrough, consulting the
// environment only for "auto"
func ResolvePassthrough(mode string, getenv func(string) string) (Passthrough, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case PassthroughAuto:
		return DetectPassthrough(getenv), nil
	case "", PassthroughModeNone, "off":
		return PassthroughNone, nil
	case "tmux":
		return PassthroughTmux, nil
	case "screen":
		return PassthroughScreen, nil
	default:
		return PassthroughNone, fmt.Errorf("osc52: unknown passthrough mode %q", mode)
	}
}
