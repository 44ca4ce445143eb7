package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/localization-utils/localization-contract-tests/framework"
	"github.com/localization-utils/localization-contract-tests/loctests"
	"github.com/localization-utils/localization-contract-tests/process"
	"github.com/localization-utils/localization-contract-tests/target"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var params commandParams
	if !params.Read(args, stderr) {
		return 1
	}
	cfg, err := params.Config(os.LookupEnv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	tgt, err := target.New(runtime.GOOS, runtime.GOARCH, cfg.Arch)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewTestHarness(cfg, tgt, stdout, mainDebugLogger, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Test harness error: %s\n", err)
		return 1
	}

	fmt.Fprintln(stdout)
	framework.PrintFilterDescription(stdout, params.filters)

	fmt.Fprintf(stdout, "Running test suite (%s)\n", cfg.BuildCommand())

	testLogger := &ConsoleTestLogger{
		Out:                  stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results := loctests.RunTestSuite(ctx, harness, params.filters.AsFilter, testLogger)

	fmt.Fprintln(stdout)
	framework.PrintResults(stdout, results)

	last, ok := harness.LastInvocation()
	if ok {
		fmt.Fprintf(stdout, "Last command: %s (exit code %d)\n", last, last.ExitCode)
	}
	return exitCode(results, last, ok)
}

// exitCode adopts the exit status of the last tool invocation when it failed, so that callers see
// the same signal the tool gave. Assertion failures with a successful last invocation exit 1.
func exitCode(results framework.Results, last process.Result, invoked bool) int {
	if invoked && last.ExitCode > 0 {
		return last.ExitCode
	}
	if !results.OK() || (invoked && last.ExitCode < 0) {
		return 1
	}
	return 0
}
