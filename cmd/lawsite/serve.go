package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harborlaw/lawsite"
)

func newServeCommand() *cobra.Command {
	var staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := lawsite.LoadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := lawsite.New(cfg, lawsite.ViewFuncs{}, lawsite.WithStaticDir(staticDir))
			return app.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory for static assets and uploads")
	return cmd
}
