package osc

import "errors"

var (
	ErrMalformedFrame    = errors.New("osc52: cannot parse response: no field separator")
	ErrMissingTerminator = errors.New("osc52: response doesn't contain the BEL terminator")
	ErrInvalidPayload    = errors.New("osc52: response doesn't contain valid base64 content")
)
