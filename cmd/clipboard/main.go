// Command clipboard reads and writes the terminal emulator's clipboard with
// OSC 52 escape sequences, so it works over SSH and inside containers.
//
//	clipboard set [content] [--primary]
//	clipboard get [--primary]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/ttyclip/clipboard"
	"github.com/lixenwraith/ttyclip/core"
	"github.com/lixenwraith/ttyclip/logging"
	"github.com/lixenwraith/ttyclip/osc"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `usage: clipboard [--tty path] [--debug] <command> [flags]

commands:
  set [content] [--primary] [--passthrough mode]
        copy content (or stdin when omitted) to the clipboard
  get [--primary] [--timeout duration]
        print the clipboard content to stdout
`

// errUsage marks argument errors; the message has already been printed
var errUsage = errors.New("usage")

func main() {
	// Panic recovery: the terminal may be in cbreak/no-echo mode
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Ctrl-C still raises SIGINT in cbreak mode; cancellation lets the mode
	// guard restore the terminal before exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// invocation is the parsed command line
type invocation struct {
	command     string
	device      string
	debug       bool
	primary     bool
	content     *string
	passthrough string
	timeout     time.Duration
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	inv, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "clipboard: %v\n", err)
			fmt.Fprint(stderr, usage)
		}
		return exitUsage
	}

	logger, closeLog, err := setupLogging(inv.debug, stderr, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "clipboard: %v\n", err)
		return exitFailure
	}
	defer closeLog.Close()

	cfg, err := buildConfig(inv, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "clipboard: %v\n", err)
		return exitUsage
	}
	core.RegisterCrashTarget(cfg.Device, logger)

	logger.Debug().
		Str("command", inv.command).
		Str("device", cfg.Device).
		Stringer("selection", cfg.Selection).
		Dur("timeout", cfg.Timeout).
		Msg("starting")

	client := clipboard.New(cfg, logger)

	switch inv.command {
	case "set":
		if inv.content == nil {
			if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				logger.Info().Msg("reading content from stdin until EOF (Ctrl-D)")
			}
		}
		content, err := clipboard.ReadContent(inv.content, stdin)
		if err != nil {
			return fail(stderr, logger, err)
		}
		if err := client.Copy(ctx, content, cfg.Selection); err != nil {
			return fail(stderr, logger, err)
		}
	case "get":
		content, err := client.Paste(ctx, cfg.Selection)
		if err != nil {
			return fail(stderr, logger, err)
		}
		if _, err := stdout.Write(content); err != nil {
			return fail(stderr, logger, fmt.Errorf("clipboard: write stdout: %w", err))
		}
	}
	return exitOK
}

func fail(stderr io.Writer, logger zerolog.Logger, err error) int {
	logger.Debug().Err(err).Msg("command failed")
	fmt.Fprintf(stderr, "%v\n", err)
	return exitFailure
}

// parseArgs splits global flags, the subcommand and its flags. Subcommand
// flags may come before or after the positional content.
func parseArgs(args []string, stderr io.Writer) (invocation, error) {
	var inv invocation

	global := flag.NewFlagSet("clipboard", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	global.StringVar(&inv.device, "tty", "", "terminal device (default "+clipboard.DefaultConfig().Device+")")
	global.BoolVar(&inv.debug, "debug", false, "log diagnostics to stderr")
	if err := global.Parse(args); err != nil {
		return inv, usageErr(err)
	}

	rest := global.Args()
	if len(rest) == 0 {
		return inv, errors.New("missing command")
	}
	inv.command, rest = rest[0], rest[1:]

	fs := flag.NewFlagSet("clipboard "+inv.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	fs.BoolVar(&inv.primary, "primary", false, "use the primary selection")
	fs.BoolVar(&inv.primary, "p", false, "shorthand for --primary")

	switch inv.command {
	case "set":
		fs.StringVar(&inv.passthrough, "passthrough", "", "multiplexer wrapping: none, auto, tmux, screen (default none)")
	case "get":
		fs.DurationVar(&inv.timeout, "timeout", 0, "wait window between reply bursts")
	default:
		return inv, fmt.Errorf("unknown command %q", inv.command)
	}

	var positional []string
	for {
		if err := fs.Parse(rest); err != nil {
			return inv, usageErr(err)
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	switch {
	case inv.command == "get" && len(positional) > 0:
		return inv, fmt.Errorf("get takes no arguments, got %q", positional)
	case len(positional) > 1:
		return inv, fmt.Errorf("set takes at most one content argument, got %d", len(positional))
	case len(positional) == 1:
		inv.content = &positional[0]
	}
	return inv, nil
}

// usageErr keeps flag.ErrHelp visible and marks other flag errors, which the
// flag package has already reported, as printed
func usageErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errUsage
}

// buildConfig layers defaults, environment and flags, in that order
func buildConfig(inv invocation, getenv func(string) string) (clipboard.Config, error) {
	cfg := clipboard.DefaultConfig()
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}
	if inv.device != "" {
		cfg.Device = inv.device
	}
	if inv.primary {
		cfg.Selection = osc.Primary
	}
	if inv.passthrough != "" {
		cfg.Passthrough = inv.passthrough
	}
	if inv.timeout != 0 {
		cfg.Timeout = inv.timeout
	}
	return cfg, cfg.Validate()
}

func setupLogging(debug bool, stderr io.Writer, getenv func(string) string) (zerolog.Logger, io.Closer, error) {
	profile := logging.ProfileRuntime
	if debug {
		profile = logging.ProfileDebug
	}
	console, _ := stderr.(*os.File)
	cfg := logging.DefaultConfig(profile, console)
	logging.ApplyEnv(&cfg, getenv)
	if debug && cfg.Level > zerolog.DebugLevel {
		cfg.Level = zerolog.DebugLevel
	}
	return logging.New(cfg, stderr)
}
