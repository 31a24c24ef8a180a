package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Darshan1839/NewsApp/internal/config"
	"github.com/Darshan1839/NewsApp/internal/logger"
	"github.com/Darshan1839/NewsApp/internal/newsapi"
	"github.com/Darshan1839/NewsApp/internal/proxy"
	"github.com/Darshan1839/NewsApp/internal/querylog"
)

var (
	flagAddr       string
	flagNoQueryLog bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the news search proxy",
	Long: `Serve GET /api/news, forwarding the query to the news API with the key from
NEWS_API_KEY. Also exposes /healthz and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnvFiles()

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagAddr != "" {
			cfg.Server.Addr = flagAddr
		}

		log := logger.New(cfg.Server.LogLevel)
		if cfg.Server.APIKey == "" {
			log.Warn().Msg("NEWS_API_KEY is not set; upstream will reject requests")
		}

		// A nil *querylog.Store must not reach the handler as a non-nil interface.
		var recorder proxy.Recorder
		if !flagNoQueryLog {
			store, err := querylog.Open(config.QueryLogPath())
			if err != nil {
				return fmt.Errorf("opening query log: %w", err)
			}
			defer store.Close()
			recorder = store
		}

		upstream := newsapi.NewClient(cfg.Server.UpstreamURL, cfg.Server.APIKey, cfg.UpstreamTimeout())
		server := proxy.New(cfg.ServerAddr(), proxy.NewNewsHandler(upstream, recorder, log), log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx); err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&flagNoQueryLog, "no-query-log", false, "do not record proxied queries")
}
