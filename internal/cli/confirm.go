package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts the user with a yes/no question and reads the answer
// from r. Only "y" and "yes" (case-insensitive) count as confirmation;
// anything else, including EOF, declines.
func Confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", PromptStyle.Render(prompt))

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
