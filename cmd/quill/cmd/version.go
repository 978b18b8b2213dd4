package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/cli"
	"github.com/quill-lang/quill/internal/config"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("language version %s", config.LanguageVersion)
		return cli.PrintVersion(cmd.OutOrStdout(), "quill", versionJSON)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}
