// Command bunaudit decodes bun.lockb lockfiles and reports supply-chain
// findings: untrusted registries, missing integrity, phantom dependencies,
// and the like.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bunaudit/bunaudit/internal/logctx"
)

var rootCmd = &cobra.Command{
	Use:           "bunaudit",
	Short:         "audit bun.lockb lockfiles for supply-chain risk",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := parseLogLevel(logLevel)
		h := logctx.WrapHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(slog.New(h))
	},
}

var logLevel string

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitForErr(err))
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// exitForErr maps an unhandled cobra/run error to a process exit code. A
// *runError carries its own already-computed exit code: audit's highest
// report exit code (2 when a lockfile could not be read or decoded), or 99
// for a usage, I/O, or sbom failure. Any other error maps to 99.
func exitForErr(err error) int {
	var re *runError
	if errors.As(err, &re) {
		return re.code
	}
	return 99
}

// runError wraps an error with the exit code the caller should use, so
// Execute's single error-handling path in main can recover it without every
// subcommand calling os.Exit itself.
type runError struct {
	code int
	err  error
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }
