package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/terra-clan/extension-portal/internal/config"
)

// app carries what every command needs once configuration is loaded
type app struct {
	cfg     *config.Config
	student string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		fixturesDir string
		logLevel    string
	)

	root := &cobra.Command{
		Use:           "extension-portal",
		Short:         "Student portal for university extension projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fixtures-dir") {
				cfg.Fixtures.Dir = fixturesDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if a.student == "" {
				a.student = cfg.Portal.StudentID
			}

			// serve logs to stdout like any service; the other commands keep
			// stdout for their JSON output
			out := cmd.ErrOrStderr()
			if cmd.Name() == "serve" {
				out = cmd.OutOrStdout()
			}
			if err := setupLogging(out, cfg.Log.Level); err != nil {
				return err
			}

			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&fixturesDir, "fixtures-dir", "", "directory with projects.yaml and friends (overrides FIXTURES_DIR)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.student, "student", "", "viewing student ID (overrides PORTAL_STUDENT_ID)")

	root.AddCommand(
		newServeCmd(a),
		newQueryCmd(a),
		newDBCmd(a),
		newCacheCmd(a),
	)
	return root
}

// setupLogging installs a JSON slog handler as the default logger
func setupLogging(w io.Writer, level string) error {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return nil
}
