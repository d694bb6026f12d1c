package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var addrFlag string
	var tokenFlag string

	ctx := newCommandContext(&addrFlag, &tokenFlag)

	rootCmd := &cobra.Command{
		Use:           "recordctl",
		Short:         "Manage records and locales on a content API instance",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&addrFlag, "addr", "http://localhost:8080", "Base URL of the content API")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", os.Getenv("API_TOKEN"), "Write token (defaults to API_TOKEN)")

	rootCmd.AddCommand(newSaveCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newLocalesCommand(ctx))

	return rootCmd
}
