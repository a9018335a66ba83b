package pgbootcli

import (
	"fmt"
	"os"
)

// All human-facing output goes to stderr so stdout stays clean for
// scripting.

func echoInfo(format string, v ...any) {
	fmt.Fprintln(os.Stderr, style(InfoStyle, fmt.Sprintf(format, v...)))
}

func echoError(format string, v ...any) {
	fmt.Fprintln(os.Stderr, style(ErrorStyle, fmt.Sprintf(format, v...)))
}

// cliLogger routes App progress output through the styled stderr echo.
type cliLogger struct{}

func (cliLogger) Printf(format string, v ...any) { echoInfo(format, v...) }
