package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Darshan1839/NewsApp/internal/client"
	"github.com/Darshan1839/NewsApp/internal/config"
	"github.com/Darshan1839/NewsApp/internal/logger"
	"github.com/Darshan1839/NewsApp/internal/tui"
)

const clientTimeout = 30 * time.Second

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Open the browser on a free-text search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := strings.TrimSpace(strings.Join(args, " "))
		if q == "" {
			return fmt.Errorf("search: query is empty")
		}
		return runTUI(q)
	},
}

func runTUI(zone string) error {
	config.LoadEnvFiles()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagBackend != "" {
		cfg.BackendURL = flagBackend
	}
	if zone == "" {
		zone = cfg.Zone()
	}

	// The terminal belongs to the UI, so logs go to a file.
	logPath := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log := logger.NewWithWriter(logFile, cfg.Server.LogLevel)

	dark, themeSet := cfg.DarkTheme()
	log.Info().Str("backend", cfg.BackendURL).Str("zone", zone).Msg("starting browser")

	return tui.Run(tui.RunOpts{
		Searcher:   client.New(cfg.BackendURL, clientTimeout),
		Log:        log,
		Categories: cfg.Categories,
		Zone:       zone,
		Dark:       dark,
		ThemeSet:   themeSet,
	})
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
