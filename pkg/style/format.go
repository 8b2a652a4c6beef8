package style

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how output is styled
type Format int

const (
	// FormatText is plain text with no escape sequences
	FormatText Format = iota
	// FormatTerminal uses colors and symbols
	FormatTerminal
)

// DetectFormat picks FormatTerminal only when output is a color-capable
// terminal and NO_COLOR is unset.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
