package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/localization-utils/localization-contract-tests/config"
	"github.com/localization-utils/localization-contract-tests/framework"
)

type commandParams struct {
	configFile string
	assetsDir  string
	workDir    string
	outputDir  string
	emulator   string
	arch       string
	timeout    time.Duration
	mode       string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
	explicit   map[string]bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [flags] <Release|Debug>\n", args[0])
		fs.PrintDefaults()
	}
	fs.StringVar(&c.configFile, "config", "", "TOML file with harness settings")
	fs.StringVar(&c.assetsDir, "assets", config.DefaultAssetsDir, "directory containing the per-platform tool binaries")
	fs.StringVar(&c.workDir, "workdir", config.DefaultWorkDir, "project directory the tool runs in")
	fs.StringVar(&c.outputDir, "output", config.DefaultOutputDir, "build output directory, relative to the project directory")
	fs.StringVar(&c.emulator, "emulator", "", "emulator for binaries built for a foreign instruction set")
	fs.StringVar(&c.arch, "arch", "", "target architecture (overrides $"+config.EnvArch+")")
	fs.DurationVar(&c.timeout, "timeout", 0, "limit for each tool invocation (0 means none)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select stages to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select stages not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed stages")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all stages")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "exactly one build mode argument is required")
		fs.Usage()
		return false
	}
	c.mode = fs.Arg(0)
	c.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicit[f.Name] = true })
	return true
}

// Config resolves the run's settings: built-in defaults, then the config file, then the
// environment, then any flags given explicitly.
func (c *commandParams) Config(lookupEnv func(string) (string, bool)) (config.Config, error) {
	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(cfg, c.configFile); err != nil {
			return config.Config{}, err
		}
	}
	cfg = config.ApplyEnv(cfg, lookupEnv)

	overrides := map[string]func(){
		"assets":   func() { cfg.AssetsDir = c.assetsDir },
		"workdir":  func() { cfg.WorkDir = c.workDir },
		"output":   func() { cfg.OutputDir = c.outputDir },
		"emulator": func() { cfg.Emulator = c.emulator },
		"arch":     func() { cfg.Arch = c.arch },
		"timeout":  func() { cfg.Timeout.Duration = c.timeout },
	}
	for name, apply := range overrides {
		if c.explicit[name] {
			apply()
		}
	}
	cfg.Mode = c.mode

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
