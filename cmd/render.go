package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/fstvl/internal/config"
	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/progress"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch content and write the page fragments to disk",
	Long: `Fetches artists and stages from Contentful and writes one HTML fragment per
section to the output directory. When every section is rendered it also
writes index.html, style.css and script.js.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	renderCmd.Flags().String("only", "", "comma-separated section globs to render, e.g. \"schedule-*\"")
	renderCmd.Flags().Bool("no-history", false, "do not record this render in the history database")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	if only, _ := cmd.Flags().GetString("only"); only != "" {
		cfg.Sections = config.SplitAndTrim(only)
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")

	opts := siteOptions(cfg)
	opts.Trigger = history.TriggerCLI
	opts.Reporter = progress.NewReporter()

	if !noHistory && cfg.HistoryDB != "" {
		database, runs, err := openHistory(cfg)
		if err != nil {
			// Rendering continues without history.
			logger.Warn("Render history disabled", zap.Error(err))
		} else {
			defer database.Close()
			opts.Recorder = runs
		}
	}

	gen, _, err := createGenerator(cfg, opts)
	if err != nil {
		return err
	}

	written, err := gen.Generate(ctx, cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	for _, name := range written {
		fmt.Fprintf(os.Stderr, "  wrote %s\n", filepath.Join(cfg.OutputDir, name))
	}
	fmt.Fprintf(os.Stderr, "Rendered %d file(s) in %s\n", len(written), time.Since(start).Round(time.Millisecond))
	return nil
}
