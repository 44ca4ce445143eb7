package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "harness.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "../assets", cfg.AssetsDir)
	assert.Equal(t, "../assets", cfg.WorkDir)
	assert.Equal(t, "../Tests/build/bin", cfg.OutputDir)
	assert.Equal(t, "qemu-aarch64", cfg.Emulator)
	assert.Zero(t, cfg.Timeout.Duration)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
work_dir = "/tmp/project"
arch = "armv8-a"
timeout = "5m"
`)
	cfg, err := LoadFile(Default(), path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/project", cfg.WorkDir)
	assert.Equal(t, "armv8-a", cfg.Arch)
	assert.Equal(t, 5*time.Minute, cfg.Timeout.Duration)
	assert.Equal(t, DefaultAssetsDir, cfg.AssetsDir)
	assert.Equal(t, "qemu-aarch64", cfg.Emulator)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `workdir = "/tmp/project"`)
	_, err := LoadFile(Default(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workdir")
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(Default(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFile(Default(), writeConfig(t, `timeout = "soon"`))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvArch: "armv8-a"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	assert.Equal(t, "armv8-a", ApplyEnv(Default(), lookup).Arch)

	cfg := Default()
	cfg.Arch = "x86-64"
	assert.Equal(t, "x86-64", ApplyEnv(cfg, func(string) (string, bool) { return "", false }).Arch)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"assets":   func(c *Config) { c.AssetsDir = "" },
		"workdir":  func(c *Config) { c.WorkDir = "" },
		"output":   func(c *Config) { c.OutputDir = "" },
		"emulator": func(c *Config) { c.Emulator = "" },
		"timeout":  func(c *Config) { c.Timeout.Duration = -time.Second },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBuildCommand(t *testing.T) {
	cfg := Default()
	cfg.Mode = "Release"
	assert.Equal(t, "release_build", cfg.BuildCommand())
	cfg.Mode = "Debug"
	assert.Equal(t, "debug_build", cfg.BuildCommand())
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	cfg.WorkDir = filepath.FromSlash("/work/assets")
	assert.Equal(t, filepath.FromSlash("/work/Tests/build/bin"), cfg.OutputPath())

	abs, err := filepath.Abs("out")
	require.NoError(t, err)
	cfg.OutputDir = abs
	assert.Equal(t, abs, cfg.OutputPath())
}
