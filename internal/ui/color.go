package ui

import (
	"os"

	"github.com/muesli/termenv"
)

var colorDisabled bool

// DisableColor turns off color output for the rest of the process
// (set from config or --no-color).
func DisableColor() {
	colorDisabled = true
}

// ShouldUseColor reports whether styled output is appropriate: colors
// must not have been disabled, NO_COLOR must be unset, and the
// terminal must actually support color.
func ShouldUseColor() bool {
	if colorDisabled {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return termenv.DefaultOutput().Profile != termenv.Ascii
}
