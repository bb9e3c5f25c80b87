package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"invoicesync/internal/config"
	"invoicesync/internal/logger"
	"invoicesync/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP front-end for the browser extension",
	Long: `Serve starts the HTTP endpoint the Dokan browser extension posts order
batches to. Each posted order id is processed exactly like "sync <id>"
and the response reports per-order success or failure. The process
drains in-flight requests on SIGINT or SIGTERM.`,
	Example: `  # Listen on the default address :1234
  invoicesync serve

  # Listen elsewhere
  SERVE_ADDR=:8080 invoicesync serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", cfg.ServeAddr).Msg("Starting front-end")

	srv := server.New(server.Config{
		Addr:        cfg.ServeAddr,
		ReadTimeout: 30 * time.Second,
	}, p.processor)

	return srv.Run(ctx)
}
