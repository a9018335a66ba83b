package pgbootcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// confirmDrop asks the user to retype the database name before anything
// destructive runs. It returns an error when the input does not match.
func confirmDrop(in io.Reader, name string) error {
	prompt := fmt.Sprintf("About to delete database %q. Type the name to confirm:", name)
	fmt.Fprintf(os.Stderr, "%s ", style(WarningStyle, prompt))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(line) != name {
		return fmt.Errorf("confirmation does not match database name %q, aborting", name)
	}
	return nil
}
