package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxtree/internal/server"
)

// serveCommand creates the serve command, which renders trees over HTTP
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render trees over HTTP",
		Long: `Start an HTTP server that renders trees posted to /render.

Query parameters mirror the render flags: input_format, orientation, format,
root, label, break_cycles, reduce and trim. Defaults come from the config
file.`,
		Example: `  boxtree serve --addr :9000
  curl --data-binary @tree.yaml 'localhost:9000/render?orientation=horizontal'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config.Serve
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger := loggerFromContext(ctx)
			srv := server.New(runner, logger, cfg, c.config.options())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the SVG render cache")

	return cmd
}
