package probe

import (
	"context"
	"time"

	"github.com/jongio/scan-patch/cmdutil"
	"github.com/jongio/scan-patch/updates"
)

// linuxTool is one package manager the Linux prober knows how to query.
type linuxTool struct {
	name string
	// refresh updates the package index before listing; its failure is ignored.
	refresh []string
	list    []string
}

// linuxTools are tried in order; the next one is used only when the
// previous one is not installed.
var linuxTools = []linuxTool{
	{name: "apt", refresh: []string{"update"}, list: []string{"list", "--upgradable"}},
	{name: "yum", list: []string{"check-update"}},
}

// LinuxProber queries apt, falling back to yum.
type LinuxProber struct {
	runner cmdutil.Runner
}

// NewLinuxProber creates a LinuxProber.
func NewLinuxProber(runner cmdutil.Runner) *LinuxProber {
	return &LinuxProber{runner: runner}
}

// Platform returns updates.PlatformLinux.
func (p *LinuxProber) Platform() updates.Platform {
	return updates.PlatformLinux
}

// Probe lists upgradable packages with the first installed package manager.
func (p *LinuxProber) Probe(ctx context.Context) Outcome {
	start := time.Now()

	var out Outcome
	for _, tool := range linuxTools {
		records, err := p.query(ctx, tool)
		out = outcomeFor(updates.PlatformLinux, tool.name, records, err)
		if out.Status != StatusNotAvailable {
			break
		}
	}

	out.Duration = time.Since(start)
	return out
}

func (p *LinuxProber) query(ctx context.Context, tool linuxTool) ([]updates.Record, error) {
	if len(tool.refresh) > 0 {
		if _, err := p.runner.Output(ctx, tool.name, tool.refresh...); err != nil {
			if cmdutil.IsToolNotFound(err) {
				return nil, err
			}
			log.WithPlatform(string(updates.PlatformLinux)).WithTool(tool.name).
				Debug("index refresh failed, listing anyway", "error", err)
		}
	}

	return listAndParse(ctx, p.runner, tool.name, tool.list, updates.ParseLinux)
}
