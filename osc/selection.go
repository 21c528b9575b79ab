package osc

import (
	"fmt"
	"strings"
)

// Selection is the clipboard buffer an OSC 52 frame addresses
type Selection uint8

const (
	Clipboard Selection = iota
	Primary
)

// Byte returns the selector byte carried in the second frame field
func (s Selection) Byte() byte {
	if s == Primary {
		return 'p'
	}
	return 'c'
}

func (s Selection) String() string {
	if s == Primary {
		return "primary"
	}
	return "clipboard"
}

// ParseSelection accepts the selector byte or the selection name
func ParseSelection(raw string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "c", "clipboard", "system":
		return Clipboard, nil
	case "p", "primary":
		return Primary, nil
	default:
		return Clipboard, fmt.Errorf("osc52: unknown selection %q", raw)
	}
}
