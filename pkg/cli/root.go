package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imagebake/imagebake/pkg/global"
	"github.com/imagebake/imagebake/pkg/util/console"
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "imagebake",
		Short:   "Build a container image stamped with git provenance",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		// Errors are printed once, in cmd/imagebake/main.go
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newBuildCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}
