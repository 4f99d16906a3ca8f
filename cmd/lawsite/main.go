package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lawsite",
		Short: "Law firm website with blog and contact admin panel",
		Long: `lawsite serves the firm's public blog and contact form, and a small
admin panel for managing posts and reading contact queries.

Configuration is read from the environment (SITE_URL, DATABASE_PATH,
SESSION_SECRET, ...).`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newCreateUserCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the lawsite version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lawsite %s\n", version)
		},
	})
	return root
}
