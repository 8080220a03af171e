package dot

import (
	"context"
	"os"

	"github.com/dotweave/dot/internal/adapters"
	"github.com/dotweave/dot/internal/config"
	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/orchestrator"
)

// Client is the high-level facade over the planning and execution
// pipeline: Stow, Delete, and Restow one or more packages.
//
// A Client is safe for concurrent use: each call builds its own
// domain.Config and plan from scratch; no mutable state is shared across
// calls.
type Client struct {
	cfg Config
	fs  domain.FS
	log domain.Logger
}

// NewClient creates a Client from cfg, using the real OS filesystem and a
// console logger at the given verbosity.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		fs:  adapters.NewOSFilesystem(),
		log: adapters.NewConsoleLogger(os.Stderr, levelForVerbosity(cfg.Verbosity)),
	}
}

func levelForVerbosity(v int) string {
	switch {
	case v >= 2:
		return "debug"
	case v == 1:
		return "info"
	default:
		return "warn"
	}
}

// Stow installs the given packages.
func (c *Client) Stow(ctx context.Context, packages ...string) (RunSummary, error) {
	return c.run(ctx, packages, domain.ModeStow)
}

// Delete uninstalls the given packages.
func (c *Client) Delete(ctx context.Context, packages ...string) (RunSummary, error) {
	return c.run(ctx, packages, domain.ModeDelete)
}

// Restow uninstalls then reinstalls the given packages.
func (c *Client) Restow(ctx context.Context, packages ...string) (RunSummary, error) {
	return c.run(ctx, packages, domain.ModeRestow)
}

func (c *Client) run(ctx context.Context, packages []string, mode domain.Mode) (RunSummary, error) {
	opts := config.Options{
		StowDir:   c.cfg.StowDir,
		TargetDir: c.cfg.TargetDir,
		Delete:    mode == domain.ModeDelete,
		Restow:    mode == domain.ModeRestow,
		Adopt:     c.cfg.Adopt,
		NoFold:    c.cfg.NoFolding,
		Dotfile:   c.cfg.Dotfiles,
		Override:  c.cfg.Override,
		Defer:     c.cfg.Defer,
		Ignore:    c.cfg.Ignore,
		Simulate:  c.cfg.Simulate,
		Verbosity: c.cfg.Verbosity,
		Packages:  packages,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	result := config.Load(opts, os.Getwd, home)
	if result.IsErr() {
		return RunSummary{}, result.UnwrapErr()
	}
	domainCfg := result.Unwrap()

	switch mode {
	case domain.ModeDelete:
		return orchestrator.Delete(ctx, c.fs, c.log, domainCfg), nil
	case domain.ModeRestow:
		return orchestrator.Restow(ctx, c.fs, c.log, domainCfg), nil
	default:
		return orchestrator.Stow(ctx, c.fs, c.log, domainCfg), nil
	}
}
