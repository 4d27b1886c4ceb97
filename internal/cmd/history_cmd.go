package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/editorlink/internal/config"
	"github.com/runger/editorlink/internal/storage"
)

var (
	historyLimit   int
	historyProfile string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently opened files",
	Long: `Show recently opened files from the editorlink database.

Examples:
  editorlink history                   # Show last 20 opens
  editorlink history --limit=50        # Show last 50 opens
  editorlink history --profile=devbox  # Show opens for one profile`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show")
	historyCmd.Flags().StringVar(&historyProfile, "profile", "", "Filter by profile name")
}

func runHistory(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()

	store, err := storage.NewSQLiteStore(paths.DatabaseFile())
	if err != nil {
		fmt.Printf("No history available. Database not found at: %s\n", paths.DatabaseFile())
		return nil
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opens, err := store.ListOpens(ctx, storage.OpenQuery{
		Profile: historyProfile,
		Limit:   historyLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	if len(opens) == 0 {
		fmt.Println("No files opened yet.")
		return nil
	}

	// Oldest at top for typical terminal usage.
	for i := len(opens) - 1; i >= 0; i-- {
		o := opens[i]
		ts := time.UnixMilli(o.TsUnixMs).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-10s %-8s %s\n", ts, o.Profile, o.Command, o.LocalPath)
	}

	fmt.Println()
	fmt.Printf("Showing %d open(s)\n", len(opens))
	return nil
}
