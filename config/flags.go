package config

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/jongio/scan-patch/logutil"
)

// Flag names.
const (
	FlagConfig          = "config"
	FlagOrder           = "order"
	FlagContinueOnEmpty = "continue-on-empty"
	FlagCommandTimeout  = "command-timeout"
	FlagOutput          = "output"
	FlagPowerShell      = "powershell"
	FlagMetricsFile     = "metrics-file"
	FlagNotify          = "notify"
	FlagDebug           = "debug"
	FlagLogFormat       = "log-format"
)

// Flags holds values bound to a flag set. Only flags the user set override
// the config file.
type Flags struct {
	fs         *pflag.FlagSet
	configPath string
	values     Config
}

// BindFlags registers every setting on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	def := Default()
	f := &Flags{fs: fs}

	fs.StringVar(&f.configPath, FlagConfig, "", "Path to a YAML config file (env "+EnvConfig+")")
	fs.StringVar(&f.values.Order, FlagOrder, def.Order, "Platforms to try, comma separated, or \"auto\" to try the host platform first")
	fs.BoolVar(&f.values.ContinueOnEmpty, FlagContinueOnEmpty, def.ContinueOnEmpty, "Keep trying other platforms when a probe finds nothing")
	fs.DurationVar(&f.values.CommandTimeout, FlagCommandTimeout, def.CommandTimeout, "Timeout for each update tool invocation (0 means none)")
	fs.StringVarP(&f.values.Output, FlagOutput, "o", def.Output, "Output format (json, table)")
	fs.StringVar(&f.values.PowerShell, FlagPowerShell, def.PowerShell, "PowerShell host for the Windows probe (powershell, pwsh)")
	fs.StringVar(&f.values.MetricsFile, FlagMetricsFile, def.MetricsFile, "Write Prometheus metrics to this textfile after the scan")
	fs.BoolVar(&f.values.Notify, FlagNotify, def.Notify, "Show a desktop notification when updates are pending")
	fs.BoolVar(&f.values.Debug, FlagDebug, def.Debug, "Enable debug logging (env "+logutil.EnvDebug+"=true)")
	fs.StringVar(&f.values.LogFormat, FlagLogFormat, def.LogFormat, "Log format (text, json)")
	return f
}

// ConfigPath returns the --config value, falling back to SCANPATCH_CONFIG.
func (f *Flags) ConfigPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	return os.Getenv(EnvConfig)
}

// Apply copies every flag the user set onto cfg.
func (f *Flags) Apply(cfg *Config) {
	changed := f.fs.Changed
	if changed(FlagOrder) {
		cfg.Order = f.values.Order
	}
	if changed(FlagContinueOnEmpty) {
		cfg.ContinueOnEmpty = f.values.ContinueOnEmpty
	}
	if changed(FlagCommandTimeout) {
		cfg.CommandTimeout = f.values.CommandTimeout
	}
	if changed(FlagOutput) {
		cfg.Output = f.values.Output
	}
	if changed(FlagPowerShell) {
		cfg.PowerShell = f.values.PowerShell
	}
	if changed(FlagMetricsFile) {
		cfg.MetricsFile = f.values.MetricsFile
	}
	if changed(FlagNotify) {
		cfg.Notify = f.values.Notify
	}
	if changed(FlagDebug) {
		cfg.Debug = f.values.Debug
	}
	if changed(FlagLogFormat) {
		cfg.LogFormat = f.values.LogFormat
	}
}

// Load resolves the final configuration: defaults, then the config file if
// one is named, then flags, then SCANPATCH_DEBUG. The result is validated.
func (f *Flags) Load() (Config, error) {
	cfg := Default()
	if path := f.ConfigPath(); path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	f.Apply(&cfg)
	if os.Getenv(logutil.EnvDebug) == "true" {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OutputValue returns the variable bound to --output, for subcommands that
// format their own output.
func (f *Flags) OutputValue() *string {
	return &f.values.Output
}
