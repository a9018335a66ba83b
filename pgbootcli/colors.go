package pgbootcli

import "os"

// ANSI color codes for consistent styling across all CLI output.
const (
	Reset = "\033[0m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	Bold = "\033[1m"
	Dim  = "\033[2m"
)

// Predefined combinations so every command styles alike.
var (
	SuccessStyle = Green + Bold
	ErrorStyle   = Red + Bold
	WarningStyle = Yellow + Bold
	InfoStyle    = Cyan
	DimStyle     = Dim
)

// noColor honors the NO_COLOR convention (https://no-color.org).
var noColor = os.Getenv("NO_COLOR") != ""

// style wraps text in a style unless color output is disabled.
func style(s, text string) string {
	if noColor {
		return text
	}
	return s + text + Reset
}
