// Package core holds process-level plumbing shared by the commands.
package core
