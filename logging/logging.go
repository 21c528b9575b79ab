// Package logging configures the zerolog logger used by the CLI.
//
// Diagnostics go to stderr (or a log file); stdout is reserved for
// clipboard content.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "CLIPBOARD_LOG_LEVEL"
	EnvLogNoColor = "CLIPBOARD_LOG_NOCOLOR"
	EnvLogFile    = "CLIPBOARD_LOG_FILE"
)

// maxLogSize triggers rotation of an existing log file on open
const maxLogSize = 10 * 1024 * 1024

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileDebug
	ProfileTest
)

// Config describes where and how much to log
type Config struct {
	Level     zerolog.Level
	NoColor   bool
	Timestamp bool
	File      string // empty logs to the console writer
}

// DefaultConfig returns the profile defaults. Color follows whether the
// console is a terminal.
func DefaultConfig(profile Profile, console *os.File) Config {
	cfg := Config{
		Level:   zerolog.WarnLevel,
		NoColor: console == nil || !isTerminal(console),
	}
	switch profile {
	case ProfileDebug:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = true
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.NoColor = true
	}
	return cfg
}

// ApplyEnv overlays recognised environment values; unparsable values are ignored
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if lvl, ok := parseLevel(getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		cfg.File = v
	}
}

// New builds a logger from cfg. The returned closer releases the log file,
// if any, and is never nil.
func New(cfg Config, console io.Writer) (zerolog.Logger, io.Closer, error) {
	var out io.Writer
	var closer io.Closer = io.NopCloser(nil)

	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		out, closer = f, f
	} else {
		w := zerolog.ConsoleWriter{
			Out:     console,
			NoColor: cfg.NoColor,
		}
		if cfg.Timestamp {
			w.TimeFormat = time.RFC3339
		} else {
			w.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		out = w
	}

	ctx := zerolog.New(out).Level(cfg.Level).With()
	if cfg.Timestamp || cfg.File != "" {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", "clipboard").Logger(), closer, nil
}

// openLogFile opens path for appending, first moving aside a file that has
// grown past maxLogSize
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := strings.TrimSuffix(path, ext) + "-" + time.Now().Format("20060102-150405") + ext
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("logging: rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log: %w", err)
	}
	return f, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
