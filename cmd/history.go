package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/fstvl/internal/config"
	"github.com/ziadkadry99/fstvl/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent section renders",
	Long:  `Lists the render history recorded by "fstvl render" and "fstvl serve", newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("section", "", "only show renders of this section")
	historyCmd.Flags().String("status", "", "only show renders with this status (ok or fallback)")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")
	historyCmd.Flags().Duration("prune", 0, "delete runs older than this age, e.g. 720h")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Listing history does not need Contentful credentials.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("history_db is not set in %s", cfgFile)
	}

	database, runs, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := runs.DeleteBefore(ctx, time.Now().Add(-prune))
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Deleted %d run(s) older than %s\n", n, prune)
		return nil
	}

	section, _ := cmd.Flags().GetString("section")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	list, err := runs.Query(ctx, history.QueryFilter{
		Section: section,
		Status:  history.Status(status),
		Limit:   limit,
	})
	if err != nil {
		return fmt.Errorf("querying history: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(os.Stderr, "No renders recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSECTION\tTRIGGER\tSTATUS\tITEMS\tDURATION\tERROR")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Timestamp.Local().Format(time.DateTime),
			r.Section, r.Trigger, r.Status, r.Items,
			r.Duration.Round(time.Millisecond), r.Error)
	}
	return tw.Flush()
}
