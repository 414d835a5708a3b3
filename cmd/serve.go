package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/terryzhangxr/typace/internal/server"
	"github.com/terryzhangxr/typace/internal/site"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and watches for changes",
	Long: `The serve command performs an initial build of your site, then starts a local
web server on your output directory with a live search endpoint. It watches the
content and static directories and rebuilds the site after changes settle.
A failed rebuild is logged and the previous output keeps being served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		builder := site.NewBuilder(appConfig, logger)
		holder := &server.Holder{}

		logger.Info("performing initial build")
		s, err := builder.Build(ctx)
		if err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}
		holder.Store(s)

		var mu sync.Mutex
		rebuild := func() {
			mu.Lock()
			defer mu.Unlock()
			logger.Info("rebuilding site due to changes")
			s, err := builder.Build(ctx)
			if err != nil {
				logger.Error("rebuild failed", zap.Error(err))
				return
			}
			holder.Store(s)
			logger.Info("site rebuilt")
		}

		watcher := &server.Watcher{
			Roots:    []string{appConfig.ContentDir, appConfig.StaticDir},
			Debounce: server.DefaultDebounce,
			Rebuild:  rebuild,
			Logger:   logger,
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           server.New(filepath.Clean(appConfig.OutputDir), holder, builder.Theme(), logger),
			ReadHeaderTimeout: 5 * time.Second,
		}

		eg, ctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			return watcher.Run(ctx)
		})
		eg.Go(func() error {
			logger.Info("serving site",
				zap.String("dir", appConfig.OutputDir),
				zap.String("url", fmt.Sprintf("http://localhost:%d", serverPort)))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("failed to start HTTP server: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return eg.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
