package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Darshan1839/NewsApp/internal/config"
	"github.com/Darshan1839/NewsApp/internal/querylog"
)

var (
	flagPruneOlderThan string
	flagStatsSince     string
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old entries from the query log",
	Long: `Delete logged proxy queries older than the retention period and reclaim disk space.

Uses the retention value from config (default: 30d) unless overridden with --older-than.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := querylog.Open(config.QueryLogPath())
		if err != nil {
			return fmt.Errorf("opening query log: %w", err)
		}
		defer store.Close()

		retention := cfg.RetentionDuration()
		if flagPruneOlderThan != "" {
			d, err := parseSince(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := store.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d quer%s older than %s.\n", deleted, plural(deleted, "y", "ies"), formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show query log statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := parseSince(flagStatsSince)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}

		dbPath := config.QueryLogPath()
		store, err := querylog.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening query log: %w", err)
		}
		defer store.Close()

		count, failures, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Query log: %s\n", dbPath)
		fmt.Printf("Queries: %d (%d failed)\n", count, failures)
		fmt.Printf("Size: %s\n", formatBytes(size))

		top, err := store.TopTerms(time.Now().Add(-window), 10)
		if err != nil {
			return fmt.Errorf("reading top terms: %w", err)
		}
		if len(top) > 0 {
			fmt.Printf("\nTop terms (last %s):\n", formatDuration(window))
			for _, tc := range top {
				fmt.Printf("  %-24s %d\n", tc.Term, tc.Count)
			}
		}

		recent, err := store.Recent(5)
		if err != nil {
			return fmt.Errorf("reading recent queries: %w", err)
		}
		if len(recent) > 0 {
			fmt.Println("\nRecent:")
			for _, e := range recent {
				line := fmt.Sprintf("  %s  %-24s %d  %s", e.ServedAt.Local().Format("Jan 2 15:04"), e.Term, e.Status, e.Duration.Round(time.Millisecond))
				if e.ErrMessage != "" {
					line += "  " + e.ErrMessage
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
	statsCmd.Flags().StringVar(&flagStatsSince, "since", "7d", "window for top terms (e.g., 7d, 24h)")
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
