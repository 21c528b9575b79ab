// Package clipboard copies to and pastes from the terminal emulator's
// clipboard over OSC 52.
package clipboard
