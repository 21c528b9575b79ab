package osc

import (
	"bytes"
	"encoding/base64"
	"fmt"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Frame bytes
const (
	ESC       byte = 0x1b
	BEL       byte = 0x07
	separator byte = ';'
)

// stringTerminator is the ESC \ form some emulators end replies with
var stringTerminator = []byte{ESC, '\\'}

// EncodeCopy builds ESC ] 52 ; <sel> ; base64(content) BEL
func EncodeCopy(content []byte, sel Selection) []byte {
	return WrapCopy(content, sel, PassthroughNone)
}

// EncodePasteRequest builds ESC ] 52 ; <sel> ; ? BEL
func EncodePasteRequest(sel Selection) []byte {
	return []byte(sequence(osc52.Query(), sel, PassthroughNone).String())
}

// WrapCopy is EncodeCopy with multiplexer passthrough framing
func WrapCopy(content []byte, sel Selection, p Passthrough) []byte {
	return []byte(sequence(osc52.New(string(content)), sel, p).String())
}

func sequence(seq osc52.Sequence, sel Selection, p Passthrough) osc52.Sequence {
	if sel == Primary {
		seq = seq.Primary()
	}
	switch p {
	case PassthroughTmux:
		seq = seq.Tmux()
	case PassthroughScreen:
		seq = seq.Screen()
	}
	return seq
}

// DecodePaste extracts clipboard content from a paste response.
// Leading fields are ignored: the payload is whatever follows the last ';'.
// An empty payload is an empty clipboard, not an error.
func DecodePaste(response []byte) ([]byte, error) {
	i := bytes.LastIndexByte(response, separator)
	if i < 0 {
		return nil, ErrMalformedFrame
	}
	payload := response[i+1:]

	if !bytes.HasSuffix(payload, []byte{BEL}) {
		if bytes.HasSuffix(payload, stringTerminator) {
			return nil, fmt.Errorf("%w: ESC \\ terminator is not supported", ErrMissingTerminator)
		}
		return nil, ErrMissingTerminator
	}
	payload = payload[:len(payload)-1]

	content := make([]byte, base64.StdEncoding.DecodedLen(len(payload)))
	n, err := base64.StdEncoding.Decode(content, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return content[:n], nil
}
