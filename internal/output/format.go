// Package output provides terminal output formatting utilities for the relnote CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintCommandOutputEnd prints a colored separator after npm output ends.
// Uses dim magenta styling to create visual distinction from subprocess output.
func PrintCommandOutputEnd(out io.Writer) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label := " relnote "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintPhaseHeader prints a colored phase header (e.g., "[1/2] Checking registry...").
// Uses cyan for the phase indicator and white for the phase name.
func PrintPhaseHeader(out io.Writer, phaseNum, totalPhases int, phaseName string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", phaseNum, totalPhases)), white(phaseName+"..."))
}

// PrintSuccess prints a colored success message for completed artifacts.
// Uses green checkmark and cyan for the artifact path.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintFailure prints a colored failure message.
// Uses red cross and plain text for the detail.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintExecutingCommand prints the command being executed with colored styling.
// Uses magenta arrow and dim text for the command details.
func PrintExecutingCommand(out io.Writer, command string) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "\n%s %s\n\n", magenta("→ Executing:"), dim(command))
}
