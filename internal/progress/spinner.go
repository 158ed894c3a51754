package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	failureColor = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Spinner wraps the animated spinner with a plain-text fallback.
// On non-interactive terminals every update is printed as a normal line,
// so logs captured in CI stay readable.
type Spinner struct {
	anim    *spinner.Spinner
	out     io.Writer
	symbols ProgressSymbols
}

// NewSpinner returns a spinner bound to out. The animation only runs when
// the terminal is interactive.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	s := &Spinner{
		out:     out,
		symbols: SelectSymbols(caps),
	}
	if caps.IsTTY {
		s.anim = spinner.New(
			spinner.CharSets[s.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(out),
		)
	}
	return s
}

// Start begins the animation with the given message.
func (s *Spinner) Start(message string) {
	if s == nil {
		return
	}
	if s.anim != nil {
		s.anim.Suffix = " " + message
		s.anim.Start()
		return
	}
	fmt.Fprintf(s.out, "%s...\n", message)
}

// Update replaces the message while the spinner keeps running.
func (s *Spinner) Update(message string) {
	if s == nil {
		return
	}
	if s.anim != nil {
		s.anim.Suffix = " " + message
		return
	}
	fmt.Fprintf(s.out, "%s...\n", message)
}

// Succeed stops the animation and prints a success line.
func (s *Spinner) Succeed(message string) {
	s.finish(successColor(s.symbolsOrDefault().Checkmark), message)
}

// Fail stops the animation and prints a failure line.
func (s *Spinner) Fail(message string) {
	s.finish(failureColor(s.symbolsOrDefault().Failure), message)
}

// Stop halts the animation without printing a status line.
func (s *Spinner) Stop() {
	if s == nil || s.anim == nil {
		return
	}
	s.anim.Stop()
}

func (s *Spinner) finish(symbol, message string) {
	if s == nil {
		return
	}
	if s.anim != nil {
		s.anim.Stop()
	}
	fmt.Fprintf(s.out, "%s %s\n", symbol, message)
}

func (s *Spinner) symbolsOrDefault() ProgressSymbols {
	if s == nil {
		return SelectSymbols(TerminalCapabilities{})
	}
	return s.symbols
}
