package commands

import (
	"github.com/leapstack-labs/meshlint/internal/cli/output"
	"github.com/spf13/cobra"
)

// VersionOutput is the JSON shape of version information.
type VersionOutput struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.Renderer

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(VersionOutput{
					Version:   version,
					BuildDate: buildDate,
					GitCommit: gitCommit,
				})
			}

			r.Printf("meshlint %s\n", version)
			if cmdCtx.Cfg.Verbose {
				r.Printf("  build date: %s\n", buildDate)
				r.Printf("  commit:     %s\n", gitCommit)
			}
			return nil
		},
	}
	return cmd
}
