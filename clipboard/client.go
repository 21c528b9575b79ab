//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package clipboard

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/ttyclip/osc"
	"github.com/lixenwraith/ttyclip/terminal"
)

// Client performs OSC 52 exchanges with the terminal emulator.
// One Client serves one invocation; Paste calls must not overlap.
type Client struct {
	cfg    Config
	log    zerolog.Logger
	getenv func(string) string
}

func New(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		log:    logger.With().Str("component", "clipboard").Logger(),
		getenv: os.Getenv,
	}
}

// Copy sets the selection to content. The emulator sends no reply, so
// success means only that the frame reached the device.
func (c *Client) Copy(ctx context.Context, content []byte, sel osc.Selection) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("clipboard: copy: %w", err)
	}

	mode, err := osc.ResolvePassthrough(c.cfg.Passthrough, c.getenv)
	if err != nil {
		return fmt.Errorf("clipboard: copy: %w", err)
	}
	frame := osc.WrapCopy(content, sel, mode)

	c.log.Debug().
		Str("device", c.cfg.Device).
		Stringer("selection", sel).
		Stringer("passthrough", mode).
		Int("content_bytes", len(content)).
		Int("frame_bytes", len(frame)).
		Msg("writing copy frame")

	if err := terminal.WriteDevice(c.cfg.Device, frame); err != nil {
		return fmt.Errorf("clipboard: copy: %w", err)
	}
	return nil
}

// Paste requests the selection and waits for the emulator's reply.
// The terminal's line discipline is restored before Paste returns, whatever
// the outcome.
func (c *Client) Paste(ctx context.Context, sel osc.Selection) (content []byte, err error) {
	ch, err := terminal.OpenChannel(c.cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}
	defer ch.Close()

	// Without cbreak/no-echo the reply would be printed to the screen
	guard, err := terminal.AcquireMode(ch.Fd())
	if err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil && err == nil {
			content, err = nil, fmt.Errorf("clipboard: paste: %w", rerr)
		}
	}()

	request := osc.EncodePasteRequest(sel)
	c.log.Debug().
		Str("device", ch.Path()).
		Stringer("selection", sel).
		Msg("requesting paste")

	if err := ch.WriteFrame(request); err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}
	if err := ch.SetNonblocking(); err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}

	reader := terminal.NewResponseReader(ch.Fd(), terminal.ReaderConfig{
		Window:      c.cfg.Timeout,
		BufferSize:  c.cfg.BufferSize,
		MaxResponse: c.cfg.MaxResponse,
	}, c.log)

	response, err := reader.ReadResponse(ctx)
	if err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}

	content, err = osc.DecodePaste(response)
	if err != nil {
		return nil, fmt.Errorf("clipboard: paste: %w", err)
	}

	c.log.Debug().
		Int("response_bytes", len(response)).
		Int("content_bytes", len(content)).
		Msg("paste decoded")
	return content, nil
}
