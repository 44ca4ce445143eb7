package loctests

import (
	"context"
	"fmt"

	"github.com/localization-utils/localization-contract-tests/framework"
)

// Stage names, in the order they run.
const (
	StageBaselineGenerate   = "baseline generate"
	StageEnableTargetLocale = "enable target locale"
	StageSeedBaseLocale     = "seed base locale"
	StageTranslateLocale    = "translate target locale"
	StageIdempotentGenerate = "generate is idempotent"
	StageBuild              = "build"
)

type stage struct {
	name   string
	action func(*T)
}

var scenario = []stage{
	{StageBaselineGenerate, DoBaselineGenerateTests},
	{StageEnableTargetLocale, DoEnableTargetLocaleTests},
	{StageSeedBaseLocale, DoSeedBaseLocaleTests},
	{StageTranslateLocale, DoTranslateTargetLocaleTests},
	{StageIdempotentGenerate, DoIdempotentGenerateTests},
	{StageBuild, DoBuildTests},
}

// StageNames returns the names of the scenario's stages in order.
func StageNames() []string {
	names := make([]string, 0, len(scenario))
	for _, s := range scenario {
		names = append(names, s.name)
	}
	return names
}

// RunTestSuite runs the scenario against the tool that the harness was configured with.
func RunTestSuite(
	ctx context.Context,
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		runStages(ctx, c, harness, scenario)
	})
}

func runStages(ctx context.Context, c *framework.Context, harness *framework.TestHarness, stages []stage) {
	failed := ""
	for _, s := range stages {
		if failed != "" {
			c.SkipSubtest(s.name, fmt.Sprintf("stage %q failed", failed))
			continue
		}
		action := s.action
		if c.Run(s.name, func(c *framework.Context) {
			action(newTestScope(ctx, c, harness))
		}) == framework.Failed {
			failed = s.name
		}
	}
}
