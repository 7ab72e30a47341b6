package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the festival page, rendered fresh on every request",
	Long: `Starts an HTTP server that fetches content from Contentful and renders the
full page on every request. Single sections are available under
/fragments/{section} and the render history under /api/runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow fragments to be fetched from any origin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	// The page always shows every section.
	cfg.Sections = nil
	opts := siteOptions(cfg)
	opts.Trigger = history.TriggerHTTP

	var runs *history.Store
	if cfg.HistoryDB != "" {
		database, store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		runs = store
		opts.Recorder = store
	}

	gen, renderer, err := createGenerator(cfg, opts)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: allowAll,
	}, gen, renderer, runs, logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go shutdownOnDone(ctx, srv, 10*time.Second, logger)

	fmt.Fprintf(os.Stderr, "fstvl server %s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Space: %s\n", cfg.SpaceID)
	if cfg.HistoryDB != "" {
		fmt.Fprintf(os.Stderr, "  History: %s\n", cfg.HistoryDB)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownOnDone waits for ctx to end, then gives srv up to timeout to
// drain. A shutdown error is logged.
func shutdownOnDone(ctx context.Context, srv shutdowner, timeout time.Duration, log *zap.Logger) {
	<-ctx.Done()
	fmt.Fprintln(os.Stderr, "\nShutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown did not complete", zap.Error(err))
	}
}
