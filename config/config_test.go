package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/scan-patch/cliout"
	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/updates"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan-patch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return f
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	order, auto, err := cfg.Platforms()
	require.NoError(t, err)
	assert.False(t, auto)
	assert.Equal(t, updates.Platforms(), order)
	assert.Equal(t, cliout.FormatJSON, cfg.Format())
	assert.Zero(t, cfg.CommandTimeout)
	assert.False(t, cfg.ContinueOnEmpty)
	assert.False(t, cfg.StructuredLogs())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
order: macos,linux
continue_on_empty: true
command_timeout: 90s
output: table
powershell: pwsh
metrics_file: /var/lib/node_exporter/scan_patch.prom
notify: true
log_format: json
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "macos,linux", cfg.Order)
	assert.True(t, cfg.ContinueOnEmpty)
	assert.Equal(t, 90*time.Second, cfg.CommandTimeout)
	assert.Equal(t, cliout.FormatTable, cfg.Format())
	assert.Equal(t, "pwsh", cfg.PowerShell)
	assert.Equal(t, "/var/lib/node_exporter/scan_patch.prom", cfg.MetricsFile)
	assert.True(t, cfg.Notify)
	assert.True(t, cfg.StructuredLogs())
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "notify: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Notify)
	assert.Equal(t, Default().Order, cfg.Order)
	assert.Equal(t, Default().PowerShell, cfg.PowerShell)
}

func TestLoadFile_Empty(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeConfig(t, "orders: linux\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadFile(writeConfig(t, "notify: [\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad platform", func(c *Config) { c.Order = "linux,bsd" }, "unknown platform"},
		{"duplicate platform", func(c *Config) { c.Order = "linux,linux" }, "listed twice"},
		{"bad output", func(c *Config) { c.Output = "xml" }, "invalid output format"},
		{"negative timeout", func(c *Config) { c.CommandTimeout = -time.Second }, "must not be negative"},
		{"bad powershell", func(c *Config) { c.PowerShell = "bash" }, "invalid powershell host"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestPlatforms(t *testing.T) {
	cfg := Config{Order: " Windows , darwin "}
	order, auto, err := cfg.Platforms()
	require.NoError(t, err)
	assert.False(t, auto)
	assert.Equal(t, []updates.Platform{updates.PlatformWindows, updates.PlatformMacOS}, order)

	cfg.Order = "AUTO"
	order, auto, err = cfg.Platforms()
	require.NoError(t, err)
	assert.True(t, auto)
	assert.Equal(t, updates.Platforms(), order)
}

func TestFlags_DefaultsDoNotOverrideFile(t *testing.T) {
	path := writeConfig(t, "order: macos\noutput: table\n")
	f := newFlags(t, "--config", path)

	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "macos", cfg.Order)
	assert.Equal(t, "table", cfg.Output)
}

func TestFlags_OverrideFile(t *testing.T) {
	path := writeConfig(t, "order: macos\noutput: table\nnotify: true\n")
	f := newFlags(t, "--config", path, "-o", "json", "--order", "auto",
		"--command-timeout", "5s", "--continue-on-empty", "--notify=false",
		"--powershell", "pwsh", "--log-format", "json", "--metrics-file", "m.prom")

	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Order)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.True(t, cfg.ContinueOnEmpty)
	assert.False(t, cfg.Notify)
	assert.Equal(t, "pwsh", cfg.PowerShell)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "m.prom", cfg.MetricsFile)
}

func TestFlags_ConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "order: windows\n")
	t.Setenv(EnvConfig, path)

	f := newFlags(t)
	assert.Equal(t, path, f.ConfigPath())

	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "windows", cfg.Order)
}

func TestFlags_DebugFromEnv(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(logutil.EnvDebug, "true")

	cfg, err := newFlags(t).Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}

func TestFlags_InvalidValue(t *testing.T) {
	t.Setenv(EnvConfig, "")
	_, err := newFlags(t, "--output", "yaml").Load()
	assert.ErrorContains(t, err, "invalid output format")
}
