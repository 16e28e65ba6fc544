package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidecard/internal/server"
	"github.com/matzehuels/guidecard/pkg/buildinfo"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			logger.Info("starting", "build", buildinfo.String())
			srv := server.New(runner, server.Config{
				Canvas:        cfg.CanvasGeometry(),
				DefaultStyles: cfg.DefaultStyles(),
			}, logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
