package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrwolf/burnout-server/internal/app"
	"github.com/mrwolf/burnout-server/internal/config"
	"github.com/mrwolf/burnout-server/internal/logging"
)

var (
	actor    string
	envFile  string
	jsonOut  bool
	logLevel string
)

// rootCmd is the burnoutctl entry point
var rootCmd = &cobra.Command{
	Use:   "burnoutctl",
	Short: "Operate the burnout tracker from the command line",
	Long: `burnoutctl runs the mood pipeline against the local database.

It reads the same BURNOUT_* environment as burnout-server. Escalation
state lives in memory, so each invocation starts a fresh session.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv(envFile)
		lvl := slog.LevelWarn
		_ = lvl.UnmarshalText([]byte(logLevel))
		slog.SetDefault(logging.New(cmd.ErrOrStderr(), lvl))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&actor, "actor", "a", "local", "actor whose records are used")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(scoreCmd, historyCmd, clearCmd, trendCmd, contactsCmd, composeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp builds the pipeline for one command and closes it afterwards
func withApp(fn func(a *app.App) error) error {
	cfg, err := config.LoadLocal()
	if err != nil {
		return err
	}
	a, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
