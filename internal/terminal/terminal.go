// Package terminal detects output capabilities so the preview can degrade
// gracefully when stdout is redirected or the terminal is limited.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Capabilities describes what the current stdout can render.
type Capabilities struct {
	// IsTTY reports whether stdout is an interactive terminal.
	IsTTY bool
	// SupportsColor is false when stdout is not a TTY or NO_COLOR is set.
	SupportsColor bool
	// SupportsUnicode is false when GEN_CHANGELOG_ASCII=1 forces ASCII
	// output.
	SupportsUnicode bool
	// Width is the terminal width in columns, 0 when unknown.
	Width int
}

// Detect inspects stdout and the environment. Checks: stdout isatty,
// NO_COLOR, GEN_CHANGELOG_ASCII and terminal width.
func Detect() Capabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("GEN_CHANGELOG_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return Capabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}
