// Package config loads scan-patch settings from defaults, an optional YAML
// file and command-line flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/scan-patch/cliout"
	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/security"
	"github.com/jongio/scan-patch/shellutil"
	"github.com/jongio/scan-patch/updates"
)

var log = logutil.NewLogger("config")

// EnvConfig names a config file when --config is not given.
const EnvConfig = "SCANPATCH_CONFIG"

// OrderAuto puts the detected host platform first.
const OrderAuto = "auto"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds every scan-patch setting.
type Config struct {
	Order           string        `yaml:"order"`
	ContinueOnEmpty bool          `yaml:"continue_on_empty"`
	CommandTimeout  time.Duration `yaml:"command_timeout"`
	Output          string        `yaml:"output"`
	PowerShell      string        `yaml:"powershell"`
	MetricsFile     string        `yaml:"metrics_file"`
	Notify          bool          `yaml:"notify"`
	Debug           bool          `yaml:"debug"`
	LogFormat       string        `yaml:"log_format"`
}

// Default returns the settings used when nothing is configured. They
// reproduce a plain scan: linux, windows, macos in that order, JSON output,
// no timeout.
func Default() Config {
	return Config{
		Order:      "linux,windows,macos",
		Output:     string(cliout.FormatJSON),
		PowerShell: shellutil.DefaultPowerShell,
		LogFormat:  LogFormatText,
	}
}

// LoadFile reads a YAML config file on top of Default. Unknown keys are
// rejected, and so is a file other users can write to (see
// security.CheckTrustedFile).
func LoadFile(path string) (Config, error) {
	path, err := security.CheckTrustedFile(path, log.Warn)
	if err != nil {
		return Config{}, fmt.Errorf("untrusted config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if _, _, err := c.Platforms(); err != nil {
		return err
	}
	if _, err := cliout.ParseFormat(c.Output); err != nil {
		return err
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative, got %s", c.CommandTimeout)
	}
	if err := shellutil.ValidatePowerShellHost(c.PowerShell); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format: %s (valid options: text, json)", c.LogFormat)
	}
	return nil
}

// Platforms parses Order. When Order is "auto" the default order is returned
// with auto set; the caller moves the detected platform to the front.
func (c Config) Platforms() (order []updates.Platform, auto bool, err error) {
	raw := strings.TrimSpace(c.Order)
	if raw == "" {
		return updates.Platforms(), false, nil
	}
	if strings.EqualFold(raw, OrderAuto) {
		return updates.Platforms(), true, nil
	}

	seen := make(map[updates.Platform]bool)
	for _, name := range strings.Split(raw, ",") {
		p, err := updates.ParsePlatform(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return nil, false, fmt.Errorf("invalid order %q: %w", c.Order, err)
		}
		if seen[p] {
			return nil, false, fmt.Errorf("invalid order %q: %s listed twice", c.Order, p)
		}
		seen[p] = true
		order = append(order, p)
	}
	return order, false, nil
}

// Format returns the parsed output format, JSON if Output is invalid.
func (c Config) Format() cliout.Format {
	f, err := cliout.ParseFormat(c.Output)
	if err != nil {
		return cliout.FormatJSON
	}
	return f
}

// StructuredLogs reports whether logs are written as JSON.
func (c Config) StructuredLogs() bool {
	return c.LogFormat == LogFormatJSON
}
