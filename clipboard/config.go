package clipboard

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/ttyclip/osc"
	"github.com/lixenwraith/ttyclip/terminal"
)

const (
	EnvDevice      = "CLIPBOARD_TTY"
	EnvTimeout     = "CLIPBOARD_TIMEOUT"
	EnvBufferSize  = "CLIPBOARD_BUFFER_SIZE"
	EnvMaxResponse = "CLIPBOARD_MAX_RESPONSE"
	EnvPassthrough = "CLIPBOARD_PASSTHROUGH"
	EnvSelection   = "CLIPBOARD_SELECTION"
)

// Config controls how the client reaches the terminal
type Config struct {
	Device      string
	Timeout     time.Duration // wait window between reply bursts
	BufferSize  int
	MaxResponse int    // 0 = unlimited
	Passthrough string // none, auto, tmux, screen; applies to set only
	Selection   osc.Selection
}

func DefaultConfig() Config {
	return Config{
		Device:      terminal.DefaultDevice,
		Timeout:     terminal.DefaultWaitWindow,
		BufferSize:  terminal.DefaultBufferSize,
		Passthrough: osc.PassthroughModeNone,
		Selection:   osc.Clipboard,
	}
}

// ApplyEnv overlays non-empty environment values. getenv is os.Getenv when nil.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := strings.TrimSpace(getenv(EnvDevice)); v != "" {
		c.Device = v
	}
	if v := strings.TrimSpace(getenv(EnvTimeout)); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("clipboard: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(getenv(EnvBufferSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("clipboard: %s: %w", EnvBufferSize, err)
		}
		c.BufferSize = n
	}
	if v := strings.TrimSpace(getenv(EnvMaxResponse)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("clipboard: %s: %w", EnvMaxResponse, err)
		}
		c.MaxResponse = n
	}
	if v := strings.TrimSpace(getenv(EnvPassthrough)); v != "" {
		c.Passthrough = v
	}
	if v := strings.TrimSpace(getenv(EnvSelection)); v != "" {
		sel, err := osc.ParseSelection(v)
		if err != nil {
			return fmt.Errorf("clipboard: %s: %w", EnvSelection, err)
		}
		c.Selection = sel
	}
	return nil
}

// Validate rejects settings the reader cannot work with
func (c Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("clipboard: empty device path")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("clipboard: timeout must be positive, got %s", c.Timeout)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("clipboard: buffer size must be positive, got %d", c.BufferSize)
	}
	if c.MaxResponse < 0 {
		return fmt.Errorf("clipboard: max response must not be negative, got %d", c.MaxResponse)
	}
	if _, err := osc.ResolvePassthrough(c.Passthrough, func(string) string { return "" }); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// parseDuration accepts Go durations and bare integers as milliseconds
func parseDuration(raw string) (time.Duration, error) {
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(raw)
}
