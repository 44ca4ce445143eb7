// Package config holds the settings of one test run. They are resolved once at startup, from
// defaults, an optional TOML file, the environment and command-line flags (in increasing order
// of precedence), and then passed down by value.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/localization-utils/localization-contract-tests/process"
	"github.com/localization-utils/localization-contract-tests/servicedef"
)

// EnvArch names the environment variable holding the architecture hint, e.g. "armv8-a".
const EnvArch = "LOCALIZATION_UTILS_ARCH"

const (
	DefaultAssetsDir = "../assets"
	DefaultWorkDir   = "../assets"
	DefaultOutputDir = "../Tests/build/bin"
)

type Config struct {
	// AssetsDir contains the per-platform tool binaries.
	AssetsDir string `toml:"assets_dir"`
	// WorkDir is the project directory the tool runs in and the fixtures live in.
	WorkDir string `toml:"work_dir"`
	// OutputDir is passed to the build command; it is relative to WorkDir unless absolute.
	OutputDir string `toml:"output_dir"`
	// Emulator runs binaries built for a foreign instruction set.
	Emulator string `toml:"emulator"`
	// Arch is the architecture hint.
	Arch string `toml:"arch"`
	// Timeout bounds each tool invocation; zero means no limit.
	Timeout Duration `toml:"timeout"`
	// Mode is the build mode; servicedef.ModeRelease selects a release build.
	Mode string `toml:"-"`
}

// Duration is a time.Duration that can be read from a TOML string such as "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AssetsDir: DefaultAssetsDir,
		WorkDir:   DefaultWorkDir,
		OutputDir: DefaultOutputDir,
		Emulator:  process.DefaultEmulator,
	}
}

// LoadFile overlays the settings from a TOML file onto cfg. Keys absent from the file keep the
// values already in cfg.
func LoadFile(cfg Config, path string) (Config, error) {
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// ApplyEnv overlays the environment onto cfg, using lookup (normally os.LookupEnv) to read
// variables.
func ApplyEnv(cfg Config, lookup func(string) (string, bool)) Config {
	if v, ok := lookup(EnvArch); ok {
		cfg.Arch = v
	}
	return cfg
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch {
	case c.AssetsDir == "":
		return errors.New("assets directory must not be empty")
	case c.WorkDir == "":
		return errors.New("working directory must not be empty")
	case c.OutputDir == "":
		return errors.New("output directory must not be empty")
	case c.Emulator == "":
		return errors.New("emulator must not be empty")
	case c.Timeout.Duration < 0:
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout.Duration)
	}
	return nil
}

// BuildCommand returns the tool command the final stage runs.
func (c Config) BuildCommand() string {
	return servicedef.BuildCommand(c.Mode)
}

// OutputPath returns where the build output lands on disk.
func (c Config) OutputPath() string {
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(c.WorkDir, c.OutputDir)
}
