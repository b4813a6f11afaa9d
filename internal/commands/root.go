package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"laboura/internal/config"
	"laboura/internal/ledger"
	"laboura/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "laboura",
	Short: "A CLI time tracker with sections and subdivisions",
	Long: `laboura records time sessions against a two-level classification
(section and subdivision), keeps rolled-up totals and lets you query,
edit and export the history from the terminal.`,
}

// openLedger wires config, logger, store and ledger for a command run.
func openLedger() (*ledger.Ledger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := newLogger(cfg.LogLevel)
	path := cfg.DataFile
	if cfg.Backend == store.BackendSQLite {
		path = cfg.DBPath
	}
	st, err := store.New(cfg.Backend, path, log)
	if err != nil {
		return nil, err
	}
	return ledger.Open(st, log)
}

// withLedger wraps a command function so it runs against an opened ledger.
func withLedger(fn func(l *ledger.Ledger, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		l, err := openLedger()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(l, cmd, args)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("laboura %s (commit %s, built %s)\n", version, commit, date)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
