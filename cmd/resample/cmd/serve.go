package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/resample/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload form and resample endpoint over HTTP",
	Long: `Start an HTTP server with an upload form at / and a multipart
endpoint at POST / and POST /api/v1/resample (fields: file, timeframe, format).

Example:
  resample serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger).Run(ctx)
}
