package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/scan-patch/cliout"
)

// NewCommand creates a version command that displays version info.
// outputFormat is an optional pointer to a global output format flag (e.g. "json").
// If nil, defaults to human-readable output.
func NewCommand(info *Info, outputFormat *string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			format := ""
			if outputFormat != nil {
				format = *outputFormat
			}

			if format == string(cliout.FormatJSON) {
				return cliout.WriteJSON(w, info, "  ")
			}

			if quiet {
				return cliout.Line(w, "%s", info.Version)
			}

			for _, kv := range [][2]string{
				{"Version", info.Version},
				{"Build Date", info.BuildDate},
				{"Git Commit", info.GitCommit},
				{"Go Version", info.GoVersion},
				{"Platform", info.Platform},
			} {
				label := cliout.Colorize(w, cliout.Dim, fmt.Sprintf("%-12s", kv[0]+":"))
				if err := cliout.Line(w, "%s %s", label, kv[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}
