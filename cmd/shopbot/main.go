package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shopbot/internal/config"
	applog "shopbot/internal/log"
)

var (
	envFile string

	cfg       config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "shopbot",
	Short:         "Storefront support bot for Telegram",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(envFile); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		logCloser, err = applog.Init(applog.Config{Debug: cfg.LogDebug, Pretty: cfg.LogPretty, LogFile: cfg.LogFile})
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load before reading SHOPBOT_* variables (default ./.env when present)")
	rootCmd.AddCommand(serveCmd, migrateCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
