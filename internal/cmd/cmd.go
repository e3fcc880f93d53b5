package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewRootCmd(cli *CLI) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "sqlt",
		Short:             "Build SQL queries from templates",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newBuildCmd(cli))

	addGlobalFlags(rootCmd.PersistentFlags())

	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a config file")
	flags.CountP("verbose", "v", "Log verbosity, repeat for more detail")
}
