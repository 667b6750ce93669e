package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jongio/scan-patch/config"
	"github.com/jongio/scan-patch/dispatch"
	"github.com/jongio/scan-patch/mcpserver"
	"github.com/jongio/scan-patch/metrics"
	"github.com/jongio/scan-patch/version"
)

func newMCPCmd(flags *config.Flags, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the update scan as an MCP tool over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
scan_updates tool. Logs go to stderr so they never mix with the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return newMCPServer(cfg, d).ServeStdio()
		},
	}
}

func newMCPServer(cfg config.Config, d deps) *mcpserver.Server {
	collector := metrics.NewCollector()
	s := scanner{cfg: cfg, deps: d, observer: collector}

	scan := func(ctx context.Context, continueOnEmpty bool) (dispatch.Result, error) {
		res, err := s.scan(ctx, continueOnEmpty)
		if err != nil {
			return res, err
		}
		if cfg.MetricsFile != "" {
			collector.ObserveResult(res)
			if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
				log.Warn("metrics not written", "error", err)
			}
		}
		return res, nil
	}

	opts := mcpserver.DefaultOptions()
	opts.Version = version.New(appName).Version
	opts.ContinueOnEmpty = cfg.ContinueOnEmpty
	opts.Metrics = collector
	return mcpserver.New(scan, opts)
}
