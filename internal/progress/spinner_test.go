package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps          TerminalCapabilities
		wantCheckmark string
		wantFailure   string
	}{
		"unicode terminal": {
			caps:          TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			wantCheckmark: "✓",
			wantFailure:   "✗",
		},
		"ascii fallback": {
			caps:          TerminalCapabilities{IsTTY: true, SupportsUnicode: false},
			wantCheckmark: "[OK]",
			wantFailure:   "[FAIL]",
		},
		"non-interactive": {
			caps:          TerminalCapabilities{},
			wantCheckmark: "[OK]",
			wantFailure:   "[FAIL]",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := SelectSymbols(tt.caps)
			if got.Checkmark != tt.wantCheckmark {
				t.Errorf("Checkmark = %q, want %q", got.Checkmark, tt.wantCheckmark)
			}
			if got.Failure != tt.wantFailure {
				t.Errorf("Failure = %q, want %q", got.Failure, tt.wantFailure)
			}
		})
	}
}

func TestSpinnerPlainFallback(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})

	s.Start("checking registry")
	s.Update("promoting pro-card")
	s.Succeed("all packages promoted")

	out := buf.String()
	for _, want := range []string{"checking registry...", "promoting pro-card...", "[OK] all packages promoted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want to contain %q", out, want)
		}
	}
}

func TestSpinnerFailLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSpinner(&buf, TerminalCapabilities{})

	s.Start("checking registry")
	s.Fail("2 packages missing")

	if !strings.Contains(buf.String(), "[FAIL] 2 packages missing") {
		t.Errorf("output = %q, want failure line", buf.String())
	}
}

func TestNilSpinnerIsSafe(t *testing.T) {
	t.Parallel()

	var s *Spinner
	s.Start("ignored")
	s.Update("ignored")
	s.Succeed("ignored")
	s.Fail("ignored")
	s.Stop()
}
