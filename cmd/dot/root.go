package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotweave/dot/internal/adapters"
	"github.com/dotweave/dot/internal/config"
	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/orchestrator"
	"github.com/dotweave/dot/internal/report"
)

// globalConfig holds the raw flag values bound by NewRootCommand. dot is a
// single-binary, subcommand-free tool: every flag lives on the root command.
type globalConfig struct {
	targetDir string
	stowDir   string

	stow   bool
	delete bool
	restow bool

	adopt     bool
	noFolding bool
	dotfiles  bool

	override []string
	defer_   []string
	ignore   []string

	simulate  bool
	verbose   int
	quiet     bool
	configFln string
	logJSON   bool
	noColor   bool
}

var globalCfg globalConfig

// exitCode is set by runE from the executed RunSummary and read by main
// after Execute returns, matching the exit-code contract: 0 when every
// report is Success or Skipped, non-zero when any is ConflictPrevented or
// Failure.
var exitCode int

// NewRootCommand creates the root cobra command. dot has no subcommands:
// mode (stow/delete/restow) is selected by flag, the way the tool it is
// modeled on works.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dot PACKAGE...",
		Short: "Symlink manager for dotfiles",
		Long: `dot installs packages of files into a target directory by creating
symlinks, the way GNU Stow does. Each package is a directory tree under the
stow directory; dot mirrors that tree into the target directory, creating
each directory as a real directory and linking each file individually
(directories are never folded into a single symlink).`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n", err)
		_ = cmd.Usage()
		return err
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&globalCfg.targetDir, "target", "t", "", "target directory for symlinks (default: stow directory's parent)")
	flags.StringVarP(&globalCfg.stowDir, "dir", "d", "", "stow directory containing packages (default: $STOW_DIR or the working directory)")
	flags.BoolVarP(&globalCfg.stow, "stow", "S", false, "stow the named packages (default action)")
	flags.BoolVarP(&globalCfg.delete, "delete", "D", false, "delete the named packages")
	flags.BoolVarP(&globalCfg.restow, "restow", "R", false, "restow the named packages (delete, then stow)")
	flags.BoolVar(&globalCfg.adopt, "adopt", false, "move pre-existing target files into the package before linking")
	flags.BoolVar(&globalCfg.noFolding, "no-folding", false, "never fold directories; always link individual files")
	flags.BoolVar(&globalCfg.dotfiles, "dotfiles", false, "translate leading \"dot-\" in package file names to a leading dot")
	flags.StringArrayVar(&globalCfg.override, "override", nil, "force conflicting packages to defer to this one (regex, repeatable)")
	flags.StringArrayVar(&globalCfg.defer_, "defer", nil, "skip package items matching this pattern in favor of another package (regex, repeatable)")
	flags.StringArrayVar(&globalCfg.ignore, "ignore", nil, "ignore package items matching this pattern (regex, repeatable)")
	flags.BoolVarP(&globalCfg.simulate, "simulate", "n", false, "show what would be done without changing the filesystem")
	flags.CountVarP(&globalCfg.verbose, "verbose", "v", "increase verbosity: -v (info), -vv (debug)")
	flags.BoolVarP(&globalCfg.quiet, "quiet", "q", false, "suppress per-action output; print only the summary")
	flags.StringVar(&globalCfg.configFln, "config", "", "path to a dot.toml configuration file")
	flags.BoolVar(&globalCfg.logJSON, "log-json", false, "emit logs as JSON instead of text")
	flags.BoolVar(&globalCfg.noColor, "no-color", false, "disable colored output")

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	report.ConfigureColor(globalCfg.noColor)

	fc, err := config.LoadFile(globalCfg.configFln, globalCfg.stowDir)
	if err != nil {
		return fmt.Errorf("load config file: %w", err)
	}

	opts := config.Merge(config.Options{
		StowDir:   globalCfg.stowDir,
		TargetDir: globalCfg.targetDir,
		Delete:    globalCfg.delete,
		Restow:    globalCfg.restow,
		Adopt:     globalCfg.adopt,
		NoFold:    globalCfg.noFolding,
		Dotfile:   globalCfg.dotfiles,
		Override:  globalCfg.override,
		Defer:     globalCfg.defer_,
		Ignore:    globalCfg.ignore,
		Simulate:  globalCfg.simulate,
		Verbosity: globalCfg.verbose,
		Packages:  args,
	}, fc)

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	result := config.Load(opts, os.Getwd, home)
	if result.IsErr() {
		return result.UnwrapErr()
	}
	cfg := result.Unwrap()

	fs := adapters.NewOSFilesystem()
	logger := createLogger()
	ctx := cmd.Context()

	var summary domain.RunSummary
	switch cfg.Mode {
	case domain.ModeDelete:
		summary = orchestrator.Delete(ctx, fs, logger, cfg)
	case domain.ModeRestow:
		summary = orchestrator.Restow(ctx, fs, logger, cfg)
	default:
		summary = orchestrator.Stow(ctx, fs, logger, cfg)
	}

	report.Render(cmd.OutOrStdout(), summary, globalCfg.quiet)

	if summary.ExitNonZero() {
		exitCode = 1
	}
	return nil
}

func createLogger() domain.Logger {
	if globalCfg.quiet {
		return adapters.NewConsoleLogger(io.Discard, "error")
	}

	level := adapters.ParseLogLevel(verbosityToLevelName(globalCfg.verbose))

	if globalCfg.logJSON {
		return adapters.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	return adapters.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func verbosityToLevelName(v int) string {
	switch {
	case v >= 2:
		return "debug"
	case v == 1:
		return "info"
	default:
		return "warn"
	}
}
