package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crucial707/forum-web/cmd/cli/config"
	"github.com/crucial707/forum-web/internal/logging"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "forum",
	Short:         "Forum command line client",
	Long:          "Command line client for the forum: sign in, register and browse posts.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	overrides config.Overrides
	verbose   bool
)

func init() {
	RootCmd.PersistentFlags().StringVar(&overrides.APIURL, "api-url", "", "base URL of the auth API (default $FORUM_API_URL)")
	RootCmd.PersistentFlags().StringVar(&overrides.Backend, "session-backend", "", "where the session is kept: file, sqlite, postgres, redis, memory")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// Overrides returns the config values given as persistent flags.
func Overrides() config.Overrides {
	return overrides
}

// Logger writes to stderr so command output stays clean: warnings by
// default, everything with --verbose.
func Logger() *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.New("text", level, os.Stderr)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
