package framework

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	helpers "github.com/launchdarkly/go-test-helpers/v2"

	"github.com/localization-utils/localization-contract-tests/config"
	"github.com/localization-utils/localization-contract-tests/fixtures"
	"github.com/localization-utils/localization-contract-tests/logging"
	"github.com/localization-utils/localization-contract-tests/process"
	"github.com/localization-utils/localization-contract-tests/target"
)

type TestHarness struct {
	config      config.Config
	target      target.Target
	runner      process.Runner
	invocations []process.Result
	logger      Logger
	lock        sync.Mutex
}

// NewTestHarness creates a TestHarness instance, and verifies that the tool binary for the
// execution target exists and that the project directory is present.
//
// toolOutput receives the stdout and stderr of every tool invocation; startupOutput receives a
// short description of what will be run.
func NewTestHarness(
	cfg config.Config,
	tgt target.Target,
	toolOutput io.Writer,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tool := tgt.ToolPath(cfg.AssetsDir)
	if !helpers.FilePathExists(tool) {
		return nil, fmt.Errorf("no LocalizationUtils binary for %s at %s", tgt, tool)
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not accessible", cfg.WorkDir)
	}

	h := &TestHarness{
		config: cfg,
		target: tgt,
		runner: process.Runner{
			Tool:     tool,
			Emulate:  tgt.NeedsEmulation(),
			Emulator: cfg.Emulator,
			Dir:      cfg.WorkDir,
			Stdout:   toolOutput,
			Stderr:   toolOutput,
		},
		logger: debugLogger,
	}

	fmt.Fprintf(startupOutput, "Execution target: %s\n", tgt)
	if h.runner.Emulate {
		fmt.Fprintf(startupOutput, "Tool: %s (via %s)\n", tool, cfg.Emulator)
	} else {
		fmt.Fprintf(startupOutput, "Tool: %s\n", tool)
	}
	fmt.Fprintf(startupOutput, "Project directory: %s\n", cfg.WorkDir)

	return h, nil
}

func (h *TestHarness) Config() config.Config {
	return h.config
}

func (h *TestHarness) Target() target.Target {
	return h.target
}

// Fixtures returns a store for the project directory that logs writes to logger.
func (h *TestHarness) Fixtures(logger Logger) *fixtures.Store {
	if logger == nil {
		logger = h.logger
	}
	return fixtures.NewStore(h.config.WorkDir, logger)
}

// Invoke runs the tool once with args and records the invocation. The context's deadline, if
// any, is combined with the configured timeout.
func (h *TestHarness) Invoke(ctx context.Context, logger Logger, args ...string) (process.Result, error) {
	if logger == nil {
		logger = h.logger
	}
	if h.config.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout.Duration)
		defer cancel()
	}

	runner := h.runner
	runner.Logger = logger
	result, err := runner.Run(ctx, args...)

	h.lock.Lock()
	h.invocations = append(h.invocations, result)
	h.lock.Unlock()
	return result, err
}

// Invocations returns every invocation made so far, in order.
func (h *TestHarness) Invocations() []process.Result {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]process.Result(nil), h.invocations...)
}

// LastInvocation returns the most recent invocation. The second result is false if the tool has
// not been run yet.
func (h *TestHarness) LastInvocation() (process.Result, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if len(h.invocations) == 0 {
		return process.Result{}, false
	}
	return h.invocations[len(h.invocations)-1], true
}

// Logger aliases, so that test code only needs this package.
type (
	Logger         = logging.Logger
	CapturedOutput = logging.CapturedOutput
)

func NullLogger() Logger { return logging.NullLogger() }
