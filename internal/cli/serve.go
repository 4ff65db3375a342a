package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/internal/server"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP render server.
func (c *CLI) serveCommand() *cobra.Command {
	var cfg server.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Run the HTTP render server.

POST text to /v1/render to receive a rendered cloud; options are passed as
query parameters named like the config file keys (format, scale, word_color,
...). Prometheus metrics are served on /metrics and a liveness probe on
/healthz.

Use --redis to share cached layouts between several server instances.`,
		Example: `  tagcloud serve --addr :9000
  curl --data-binary @speech.txt 'localhost:9000/v1/render?format=png' -o cloud.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			metrics := server.NewMetrics()
			runner, err := c.newRunner(ctx, pipeline.WithHooks(metrics.Hooks()))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, metrics, c.Logger, cfg)
			printInfo("Serving on %s", srv.Addr())
			printDetail("POST /v1/render · GET /metrics · GET /healthz")
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", server.DefaultRequestTimeout, "maximum time spent on one render")
	cmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", server.DefaultShutdownTimeout, "grace period for in-flight requests")

	return cmd
}
