package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-keeper/internal/entrypoint"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int32
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.HTTP.Port = port
			}
			if cmd.Flags().Changed("host") {
				opts.cfg.HTTP.Host = host
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return entrypoint.Run(ctx, opts.cfg, opts.version, opts.logger)
		},
	}

	cmd.Flags().Int32Var(&port, "port", 8188, "port to listen on (default $PORT)")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "address to bind (default $HOST)")

	return cmd
}
