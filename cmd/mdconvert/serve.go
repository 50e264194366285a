package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconvert/internal/client"
	"github.com/pdiddy/mdconvert/internal/view"
	"github.com/pdiddy/mdconvert/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a drag-and-drop conversion page",
	Long: `Serve starts a local web page with a drop region. Dropped files are
forwarded to the conversion service in one request; each converted file can
be previewed and downloaded as <name>.md. Per-file failures are shown inline.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	logger.Info("conversion service", "endpoint", cfg.HTTP.Endpoint)

	v := view.New(client.New(cfg.HTTP))
	srv := web.NewServer(v, cfg.Serve, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Serve.Addr)
}
