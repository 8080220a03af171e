package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ConfigureColor disables lipgloss styling when noColor is set or stdout is
// not a terminal, matching the CLI's --no-color / auto-detect contract.
func ConfigureColor(noColor bool) {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
