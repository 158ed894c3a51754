package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/term"

	"github.com/relnote-dev/relnote/internal/output"
)

// npmCommand returns the npm executable name for the current platform.
func npmCommand() string {
	if runtime.GOOS == "windows" {
		return "npm.cmd"
	}
	return "npm"
}

// OTPPrompt asks the operator for a one-time password before a dist-tag
// write. Returning "" skips the OTP for that package.
type OTPPrompt func(pkg PackageInfo) (string, error)

// TerminalOTPPrompt reads a hidden one-time password from the terminal.
func TerminalOTPPrompt(in *os.File, out io.Writer) OTPPrompt {
	return func(pkg PackageInfo) (string, error) {
		fmt.Fprintf(out, "OTP for %s (enter to skip): ", pkg.Spec())
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading OTP: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
}

// Promoter moves published versions to the latest dist-tag. Writes run one
// package at a time: each needs a fresh OTP when the account enforces 2FA.
type Promoter struct {
	Dir      string    // working directory for npm invocations
	Out      io.Writer // progress and npm output; nil discards
	Prompt   OTPPrompt // nil promotes without OTPs
	Registry string    // non-default registry forwarded to npm via --registry

	// runNPM executes one npm invocation; tests substitute a recorder.
	runNPM func(ctx context.Context, dir string, env []string, args ...string) error
}

// NewPromoter builds a promoter running npm in dir.
func NewPromoter(dir string, out io.Writer, prompt OTPPrompt) *Promoter {
	if out == nil {
		out = io.Discard
	}
	p := &Promoter{Dir: dir, Out: out, Prompt: prompt}
	p.runNPM = p.execNPM
	return p
}

func (p *Promoter) execNPM(ctx context.Context, dir string, env []string, args ...string) error {
	cmd := exec.CommandContext(ctx, npmCommand(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = p.Out
	cmd.Stderr = p.Out
	return cmd.Run()
}

// Promote tags each package's current version as latest. The OTP travels to
// npm through NPM_CONFIG_OTP so it never appears in the argument list.
func (p *Promoter) Promote(ctx context.Context, pkgs []PackageInfo) error {
	for _, pkg := range pkgs {
		var env []string
		if p.Prompt != nil {
			otp, err := p.Prompt(pkg)
			if err != nil {
				return fmt.Errorf("prompting for %s: %w", pkg.Name, err)
			}
			if otp != "" {
				env = append(env, "NPM_CONFIG_OTP="+otp)
			}
		}

		args := []string{"dist-tag", "add", pkg.Spec(), "latest"}
		if p.Registry != "" && p.Registry != DefaultBaseURL {
			args = append(args, "--registry", p.Registry)
		}

		output.PrintExecutingCommand(p.Out, npmCommand()+" "+strings.Join(args, " "))
		if err := p.runNPM(ctx, p.Dir, env, args...); err != nil {
			return fmt.Errorf("promoting %s: %w", pkg.Spec(), err)
		}
		fmt.Fprintf(p.Out, "promoted %s to latest\n", pkg.Spec())
	}
	return nil
}
