// Package process runs the LocalizationUtils binary as a child process.
//
// Every call spawns exactly one process, waits for it, and reports its exit status. The child's
// stdout and stderr go straight to the configured writers; nothing is captured. If the binary is
// built for a foreign instruction set, the invocation is routed through an emulator that execs it
// transparently.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/localization-utils/localization-contract-tests/logging"

	"github.com/alessio/shellescape"
)

// DefaultEmulator is the user-mode emulator used to run AArch64 binaries on other hosts.
const DefaultEmulator = "qemu-aarch64"

// Result is the record of one invocation.
type Result struct {
	// Command is the full argument vector, including the emulator token if there was one.
	Command []string
	// Dir is the working directory the process ran in.
	Dir string
	// ExitCode is the process exit status, or -1 if it could not be started or was killed.
	ExitCode int
}

// OK is true if the process exited with status 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

func (r Result) String() string {
	return CommandLine(r.Command)
}

// Runner invokes one tool binary. The zero value is not usable; Tool must be set.
type Runner struct {
	// Tool is the path of the binary to run.
	Tool string
	// Emulate prepends Emulator to every command line.
	Emulate bool
	// Emulator is the emulator executable; DefaultEmulator if empty.
	Emulator string
	// Dir is the working directory for every invocation.
	Dir string
	// Stdout and Stderr receive the child's output; the harness's own streams if nil.
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives one line per invocation.
	Logger logging.Logger
}

// Command returns the argument vector that Run would execute for args.
func (r *Runner) Command(args ...string) []string {
	cmd := make([]string, 0, len(args)+2)
	if r.Emulate {
		emulator := r.Emulator
		if emulator == "" {
			emulator = DefaultEmulator
		}
		cmd = append(cmd, emulator)
	}
	cmd = append(cmd, r.Tool)
	return append(cmd, args...)
}

// Run executes the tool with args and blocks until it exits.
//
// A non-zero exit status is not an error: it is returned in Result.ExitCode so the caller can
// decide what it means. The error is non-nil only if the process could not be run at all, or ctx
// ended before it finished.
func (r *Runner) Run(ctx context.Context, args ...string) (Result, error) {
	logger := logging.OrNull(r.Logger)
	argv := r.Command(args...)
	result := Result{Command: argv, Dir: r.Dir, ExitCode: -1}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Printf("Running (in %s): %s", r.Dir, CommandLine(argv))
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		logger.Printf("Command did not finish: %s", ctx.Err())
		return result, fmt.Errorf("%s: %w", CommandLine(argv), ctx.Err())
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		logger.Printf("Command could not be started: %s", err)
		return result, fmt.Errorf("could not run %s: %w", CommandLine(argv), err)
	default:
		result.ExitCode = 0
	}
	logger.Printf("Exit code: %d", result.ExitCode)
	return result, nil
}

// CommandLine renders an argument vector as a shell-quoted string, for logs and reports.
func CommandLine(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
