package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terryzhangxr/typace/internal/config"
	"github.com/terryzhangxr/typace/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "typace",
	Short: "typace - a static blog generator",
	Long: `typace reads Markdown posts with front matter from './content/posts/',
renders them to HTML and writes a complete blog (home feed, archive, tags,
post pages, about, gallery, sitemap and RSS) into the output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func initialize(_ *cobra.Command) error {
	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	l, err := logging.New(level)
	if err != nil {
		return err
	}
	logger = l

	if used != "" {
		logger.Info("using config file", zap.String("path", used))
	} else {
		logger.Info("no config file found, using defaults and environment")
	}
	return nil
}
