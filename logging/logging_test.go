package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig_Profiles(t *testing.T) {
	tests := []struct {
		profile Profile
		level   zerolog.Level
	}{
		{ProfileRuntime, zerolog.WarnLevel},
		{ProfileDebug, zerolog.DebugLevel},
		{ProfileTest, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		cfg := DefaultConfig(tt.profile, nil)
		if cfg.Level != tt.level {
			t.Errorf("profile %d: level = %s, want %s", tt.profile, cfg.Level, tt.level)
		}
		if !cfg.NoColor {
			t.Errorf("profile %d: color enabled without a console", tt.profile)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:   "ERROR",
		EnvLogNoColor: "false",
		EnvLogFile:    "/tmp/clipboard.log",
	}
	cfg := DefaultConfig(ProfileRuntime, nil)
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Level != zerolog.ErrorLevel {
		t.Errorf("Level = %s", cfg.Level)
	}
	if cfg.NoColor {
		t.Error("NoColor override ignored")
	}
	if cfg.File != "/tmp/clipboard.log" {
		t.Errorf("File = %q", cfg.File)
	}
}

func TestApplyEnv_InvalidIgnored(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:   "loud",
		EnvLogNoColor: "maybe",
	}
	cfg := DefaultConfig(ProfileDebug, nil)
	ApplyEnv(&cfg, func(k string) string { return env[k] })

	if cfg.Level != zerolog.DebugLevel || !cfg.NoColor {
		t.Fatalf("invalid values changed config: %+v", cfg)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
		ok   bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{" debug ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.WarnLevel, false},
		{"verbose", zerolog.WarnLevel, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseLevel(%q) = %s,%v want %s,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNew_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig(ProfileRuntime, nil)

	logger, closer, err := New(cfg, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	logger.Debug().Msg("hidden")
	logger.Warn().Str("device", "/dev/tty").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "/dev/tty") {
		t.Errorf("warn message missing: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color codes with NoColor: %q", out)
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clipboard.log")
	cfg := DefaultConfig(ProfileDebug, nil)
	cfg.File = path

	logger, closer, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug().Msg("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"message":"to file"`) {
		t.Fatalf("log file content = %q", data)
	}
}

func TestOpenLogFile_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipboard.log")

	if err := os.WriteFile(path, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("write large log: %v", err)
	}

	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile: %v", err)
	}
	defer f.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != "clipboard.log" && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected a rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("new log size = %d, want 0", info.Size())
	}
}
