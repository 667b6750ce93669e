package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/scan-patch/cmdutil"
	"github.com/jongio/scan-patch/config"
	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/metrics"
	"github.com/jongio/scan-patch/notify"
	"github.com/jongio/scan-patch/probe"
	"github.com/jongio/scan-patch/report"
	"github.com/jongio/scan-patch/updates"
	"github.com/jongio/scan-patch/version"
)

const appName = "scan-patch"

var log = logutil.NewLogger("cli")

// deps are the side effects the commands need, replaceable in tests.
type deps struct {
	newRunner      func(timeout time.Duration) cmdutil.Runner
	detectPlatform func(ctx context.Context) (updates.Platform, error)
	notifier       notify.Notifier
}

func newRootCmd(d deps) *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "List pending OS updates as JSON",
		Long: `scan-patch asks the host's update tooling which updates are pending and
prints them as a JSON array.

Platforms are tried in order, linux, windows, then macos by default:
  linux    apt update && apt list --upgradable, or yum check-update
  windows  powershell Get-WindowsUpdate
  macos    softwareupdate -l

A platform whose tool fails is skipped. The first platform that answers,
or finds none of its tools installed, ends the scan.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), cmd.OutOrStdout(), cfg, d)
		},
	}

	flags = config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		version.NewCommand(version.New(appName), flags.OutputValue()),
		newMCPCmd(flags, d),
	)
	return cmd
}

// loadConfig resolves the configuration and sets up logging from it.
func loadConfig(flags *config.Flags) (config.Config, error) {
	cfg, err := flags.Load()
	if err != nil {
		return config.Config{}, err
	}
	logutil.SetupLogger(cfg.Debug, cfg.StructuredLogs())
	return cfg, nil
}

// scanner runs the dispatch chain for one configuration.
type scanner struct {
	cfg      config.Config
	deps     deps
	observer dispatch.Observer
}

func (s scanner) scan(ctx context.Context, continueOnEmpty bool) (dispatch.Result, error) {
	order, auto, err := s.cfg.Platforms()
	if err != nil {
		return dispatch.Result{}, err
	}
	if auto {
		native, err := s.deps.detectPlatform(ctx)
		if err != nil {
			log.Warn("could not detect host platform, using default order", "error", err)
		} else {
			order = dispatch.OrderWithNativeFirst(order, native)
		}
	}
	log.Debug("scan order", "order", fmt.Sprint(order), "continue_on_empty", continueOnEmpty)

	runner := s.deps.newRunner(s.cfg.CommandTimeout)
	probers := probe.NewProbers(runner, probe.Options{PowerShell: s.cfg.PowerShell})

	d, err := dispatch.New(probers, dispatch.Options{
		Order:           order,
		ContinueOnEmpty: continueOnEmpty,
		Observer:        s.observer,
	})
	if err != nil {
		return dispatch.Result{}, err
	}
	return d.Run(ctx)
}

// runScan performs one scan and prints the result. Metrics and notification
// failures are logged; they never change what was printed.
func runScan(ctx context.Context, w io.Writer, cfg config.Config, d deps) error {
	if logutil.IsDebugEnabled() {
		if host, err := probe.DetectHost(ctx); err == nil {
			log.Debug("host", "os", host.OS, "family", host.Family, "version", host.Version, "kernel", host.KernelVersion)
		}
	}

	collector := metrics.NewCollector()
	res, err := scanner{cfg: cfg, deps: d, observer: collector}.scan(ctx, cfg.ContinueOnEmpty)
	if err != nil {
		return err
	}
	if res.Unsupported() {
		log.Debug("no platform answered", "error", res.Err())
	}

	if err := report.Render(w, res, cfg.Format()); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		collector.ObserveResult(res)
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("metrics not written", "error", err)
		}
	}

	if cfg.Notify {
		if err := notify.SendResult(ctx, d.notifier, appName, res); err != nil {
			log.Warn("notification not sent", "error", err)
		}
	}
	return nil
}
