// Package osc builds and parses OSC 52 clipboard frames.
//
// Frame layout:
//
//	ESC ] 5 2 ; <selector> ; <payload> BEL
//
// The selector is 'c' (clipboard) or 'p' (primary). The payload is standard
// padded base64 for set frames and paste responses, or '?' for a paste
// request. BEL is the only terminator accepted on responses.
//
// The package performs no I/O.
package osc
