// Package main is the ccnotify entry point. Claude Code invokes it once
// per lifecycle event with the event token as the only argument and the
// JSON payload on stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thebtf/ccnotify/internal/config"
	"github.com/thebtf/ccnotify/internal/db/sqlite"
	"github.com/thebtf/ccnotify/internal/duration"
	"github.com/thebtf/ccnotify/internal/i18n"
	"github.com/thebtf/ccnotify/internal/installer"
	"github.com/thebtf/ccnotify/internal/logging"
	"github.com/thebtf/ccnotify/internal/notify"
	"github.com/thebtf/ccnotify/internal/tracker"
	"github.com/thebtf/ccnotify/pkg/hooks"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(hooks.ExitFailure)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:     "ccnotify [event]",
		Short:   "Track Claude Code lifecycle events and send desktop notifications",
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		// Errors are reported through the log file; cobra's own
		// reporting would leak internals to the invoking host.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			return runEvent(args[0], debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "mirror logs to stderr at debug level")

	root.AddCommand(newInstallCmd(), newUninstallCmd())
	return root
}

// runEvent handles one hook invocation end to end. Only input errors
// (bad token, bad JSON, schema violation) surface as errors; storage and
// notification failures are logged and absorbed so the host never sees a
// failing hook for a valid event.
func runEvent(token string, debug bool) error {
	if err := config.EnsureAll(); err != nil {
		fmt.Fprintf(os.Stderr, "ccnotify: %v\n", err)
		return err
	}

	cfg, cfgErr := config.Load()
	log := logging.New(logging.Options{Path: config.LogPath(), Debug: debug || cfg.Debug})
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("failed to load config, using defaults")
	}

	event, err := hooks.ParseEvent(token)
	if err != nil {
		log.Error().Err(err).Msg("invalid invocation")
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Error().Err(err).Msg("failed to read stdin")
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		log.Warn().Str("event", string(event)).Msg("no input data received")
		return nil
	}

	payload, err := hooks.Decode(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode payload")
		return err
	}

	tr := i18n.New(i18n.Detect(cfg.Language))
	editor := notify.ResolveEditor(cfg.Editor)

	log.Info().
		Str("platform", runtime.GOOS).
		Str("version", Version).
		Str("lang", tr.Lang()).
		Str("editor", editor).
		Str("event", string(event)).
		Msg("ccnotify invoked")

	// A store that fails to open degrades to a nil PromptStore; its
	// methods then report ErrUnavailable and the processor falls back
	// to best-effort notifications.
	var prompts *sqlite.PromptStore
	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: config.DBPath(), Logger: log})
	if err != nil {
		log.Error().Err(err).Msg("failed to open store")
	} else {
		defer store.Close()
		prompts = sqlite.NewPromptStore(store)
	}

	dispatcher := notify.NewDispatcher(notify.Options{
		Editor:  editor,
		Timeout: time.Duration(cfg.NotifyTimeoutMS) * time.Millisecond,
		Logger:  log,
	})

	processor := tracker.New(prompts, dispatcher, duration.NewFormatter(tr), tr, log)
	if err := processor.Handle(context.Background(), event, payload); err != nil {
		log.Error().Err(err).Msg("event rejected")
		return err
	}
	return nil
}

func newInstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register ccnotify hooks in ~/.claude/settings.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate binary: %w", err)
			}
			inst := installer.New(config.ClaudeSettingsPath(), bin, cmd.OutOrStdout())
			return inst.Install(dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove ccnotify hooks from ~/.claude/settings.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst := installer.New(config.ClaudeSettingsPath(), "", cmd.OutOrStdout())
			return inst.Uninstall(dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without writing")
	return cmd
}
