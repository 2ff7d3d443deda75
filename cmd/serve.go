package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/relay"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort    string
	serveContent string
	serveRelay   string
	serveLight   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	Long: `serve starts the HTTP server. With a content file configured it also
watches the file and swaps in edits without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if servePort != "" {
			cfg.Port = servePort
		}
		if serveContent != "" {
			cfg.ContentFile = serveContent
		}
		if serveRelay != "" {
			cfg.RelayEndpoint = serveRelay
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logging.Warn("Trace flush failed", zap.Error(err))
			}
		}()

		store, err := content.Open(cfg.ContentFile)
		if err != nil {
			return err
		}
		go func() {
			if err := content.Watch(ctx, store, content.DefaultDebounce); err != nil {
				logging.Warn("Content watch stopped", zap.Error(err))
			}
		}()

		client := relay.NewClient(cfg.RelayEndpoint, relay.WithTimeout(cfg.RelayTimeout))
		srv, err := server.New(store, client, server.Options{
			Addr:           cfg.Addr(),
			ContactOptions: []contact.Option{contact.WithResetDelay(cfg.ResetDelay)},
			Dark:           !serveLight,
		})
		if err != nil {
			return err
		}

		logging.Info("Starting portfolio",
			zap.String("addr", cfg.Addr()),
			zap.String("relay", cfg.RelayEndpoint),
			zap.String("content", store.Path()),
		)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default from PORT)")
	serveCmd.Flags().StringVar(&serveContent, "content", "", "YAML content override file")
	serveCmd.Flags().StringVar(&serveRelay, "relay", "", "form relay endpoint URL")
	serveCmd.Flags().BoolVar(&serveLight, "light", false, "start new sessions in the light theme")
	rootCmd.AddCommand(serveCmd)
}
