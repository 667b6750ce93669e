package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/jongio/scan-patch/cmdutil"
	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/pathutil"
	"github.com/jongio/scan-patch/shellutil"
	"github.com/jongio/scan-patch/updates"
)

var log = logutil.NewLogger("probe")

// Status tags the result of a probe.
type Status int

const (
	// StatusSuccess means the listing was produced and parsed.
	StatusSuccess Status = iota
	// StatusNotAvailable means no tool for the platform is installed.
	StatusNotAvailable
	// StatusFaulted means a tool ran but failed, or its output did not parse.
	StatusFaulted
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotAvailable:
		return "not_available"
	case StatusFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of probing one platform.
type Outcome struct {
	Platform updates.Platform
	Status   Status
	Records  []updates.Record
	// Tool is the tool that produced the outcome, or the last one tried.
	Tool     string
	Err      error
	Duration time.Duration
}

// Prober queries one platform for pending updates.
type Prober interface {
	Platform() updates.Platform
	Probe(ctx context.Context) Outcome
}

// Options configures the default probers.
type Options struct {
	// PowerShell is the host used for the Windows query. Defaults to
	// shellutil.DefaultPowerShell.
	PowerShell string
}

// NewProbers returns one prober per platform in the default fallback order.
func NewProbers(runner cmdutil.Runner, opts Options) []Prober {
	return []Prober{
		NewLinuxProber(runner),
		NewWindowsProber(runner, opts.PowerShell),
		NewMacOSProber(runner),
	}
}

// commandProber runs a single listing command.
type commandProber struct {
	platform updates.Platform
	runner   cmdutil.Runner
	tool     string
	args     []string
	parse    updates.Parser
}

// NewWindowsProber returns a prober that runs Get-WindowsUpdate through the
// given PowerShell host.
func NewWindowsProber(runner cmdutil.Runner, powershell string) Prober {
	if powershell == "" {
		powershell = shellutil.DefaultPowerShell
	}
	return &commandProber{
		platform: updates.PlatformWindows,
		runner:   runner,
		tool:     powershell,
		args:     shellutil.PowerShellArgs("Get-WindowsUpdate"),
		parse:    updates.ParseWindows,
	}
}

// NewMacOSProber returns a prober that runs softwareupdate -l.
func NewMacOSProber(runner cmdutil.Runner) Prober {
	return &commandProber{
		platform: updates.PlatformMacOS,
		runner:   runner,
		tool:     "softwareupdate",
		args:     []string{"-l"},
		parse:    updates.ParseMacOS,
	}
}

func (p *commandProber) Platform() updates.Platform {
	return p.platform
}

func (p *commandProber) Probe(ctx context.Context) Outcome {
	start := time.Now()
	records, err := listAndParse(ctx, p.runner, p.tool, p.args, p.parse)
	out := outcomeFor(p.platform, p.tool, records, err)
	out.Duration = time.Since(start)
	return out
}

// listAndParse runs the listing command and parses its stdout.
func listAndParse(ctx context.Context, runner cmdutil.Runner, tool string, args []string, parse updates.Parser) ([]updates.Record, error) {
	output, err := runner.Output(ctx, tool, args...)
	if err != nil {
		return nil, err
	}

	records, err := parse(string(output))
	if err != nil {
		return nil, fmt.Errorf("parse %s output: %w", tool, err)
	}
	return records, nil
}

func outcomeFor(platform updates.Platform, tool string, records []updates.Record, err error) Outcome {
	logger := log.WithPlatform(string(platform)).WithTool(tool)

	switch {
	case err == nil:
		logger.Debug("listing parsed", "records", len(records))
		return Outcome{Platform: platform, Status: StatusSuccess, Records: records, Tool: tool}
	case cmdutil.IsToolNotFound(err):
		logger.Debug("tool not found", "hint", pathutil.GetInstallSuggestion(tool))
		return Outcome{Platform: platform, Status: StatusNotAvailable, Tool: tool}
	default:
		return Outcome{Platform: platform, Status: StatusFaulted, Tool: tool, Err: err}
	}
}
