package main

import (
	"github.com/ZaguanLabs/menuval/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation and translation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if port == "" {
				port = a.cfg.Server.Port
			}

			rt, err := a.buildRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			// Load the tables up front so the first request does not pay for it.
			if _, err := rt.proc.Store().Refresh(ctx); err != nil {
				a.logger.Warn("initial configuration load failed; serving built-in rules", zap.Error(err))
			}

			return server.New(rt.proc, a.logger).Run(ctx, ":"+port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: server.port or 8080)")
	return cmd
}
