package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/TrackIt/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "trackit",
		Short:   "TrackIt - a distributed, offline-first issue tracker",
		Long:    getBanner(),
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newIssueCmd())
	rootCmd.AddCommand(newRemoteCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newFsckCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getBanner() string {
	return `
╔══════════════════════════════════════════════════════════╗
║                                                          ║
║   ████████╗██████╗  █████╗  ██████╗██╗  ██╗██╗████████╗  ║
║   ╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝██║╚══██╔══╝  ║
║      ██║   ██████╔╝███████║██║     █████╔╝ ██║   ██║     ║
║      ██║   ██╔══██╗██╔══██║██║     ██╔═██╗ ██║   ██║     ║
║      ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗██║   ██║     ║
║      ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝   ╚═╝     ║
║                                                          ║
╚══════════════════════════════════════════════════════════╝

  🗂  A distributed issue tracker built on content-addressed storage

  📦 Issues live in your workspace, offline first
  ⇅  Sync with any remote when you are back online
  ⚡ Deterministic conflict detection and resolution

  Get started with: trackit init
  File an issue:    trackit issue create "Fix login"
  Need help? Run:   trackit --help

`
}

func setupLogging() {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	} else {
		switch logLevel {
		case "debug":
			level = logger.LevelDebug
		case "info":
			level = logger.LevelInfo
		case "warn":
			level = logger.LevelWarn
		case "error":
			level = logger.LevelError
		}
	}

	format := logger.FormatText
	if logFormat == "json" {
		format = logger.FormatJSON
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
}
