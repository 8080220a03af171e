// Package config builds an immutable domain.Config from CLI options, an
// optional on-disk dot.toml layer, and the environment.
package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/dotweave/dot/internal/domain"
)

// Options carries the raw, unresolved values gathered from CLI flags (and,
// before that, merged with a FileConfig layer). Every field here mirrors a
// flag from the CLI surface one-to-one.
type Options struct {
	StowDir   string
	TargetDir string

	Delete  bool
	Restow  bool
	Adopt   bool
	NoFold  bool
	Dotfile bool

	Override []string
	Defer    []string
	Ignore   []string

	Simulate  bool
	Verbosity int

	Packages []string
}

// Load resolves Options into a domain.Config, canonicalizing the stow and
// target roots and compiling the override/defer/ignore pattern lists.
// getwd and home are injected so callers (and tests) do not depend on the
// real process environment; the CLI entry point passes os.Getwd and the
// user's home directory.
func Load(opts Options, getwd func() (string, error), home string) domain.Result[domain.Config] {
	if len(opts.Packages) == 0 {
		return domain.Err[domain.Config](domain.ErrInvalidPackageName{Name: ""})
	}

	stowDirRaw := opts.StowDir
	if stowDirRaw == "" {
		if env := os.Getenv("STOW_DIR"); env != "" {
			stowDirRaw = env
		} else {
			wd, err := getwd()
			if err != nil {
				return domain.Err[domain.Config](domain.ErrInvalidStowDir{Path: "", Reason: err.Error()})
			}
			stowDirRaw = wd
		}
	}

	canonStow, err := filepath.Abs(stowDirRaw)
	if err == nil {
		canonStow, err = filepath.EvalSymlinks(canonStow)
	}
	if err != nil {
		return domain.Err[domain.Config](domain.ErrInvalidStowDir{Path: stowDirRaw, Reason: err.Error()})
	}
	stowRootResult := domain.NewPackagePath(canonStow)
	if stowRootResult.IsErr() {
		return domain.Err[domain.Config](domain.ErrInvalidStowDir{Path: stowDirRaw, Reason: stowRootResult.UnwrapErr().Error()})
	}
	stowRoot := stowRootResult.Unwrap()

	targetDirRaw := opts.TargetDir
	if targetDirRaw == "" {
		targetDirRaw = stowRoot.Parent().String()
	}

	canonTarget, err := filepath.Abs(targetDirRaw)
	if err == nil {
		canonTarget, err = filepath.EvalSymlinks(canonTarget)
	}
	if err != nil {
		return domain.Err[domain.Config](domain.ErrInvalidTargetDir{Path: targetDirRaw, Reason: err.Error()})
	}
	targetRootResult := domain.NewTargetPath(canonTarget)
	if targetRootResult.IsErr() {
		return domain.Err[domain.Config](domain.ErrInvalidTargetDir{Path: targetDirRaw, Reason: targetRootResult.UnwrapErr().Error()})
	}
	targetRoot := targetRootResult.Unwrap()

	mode := domain.ModeStow
	if opts.Delete {
		mode = domain.ModeDelete
	} else if opts.Restow {
		mode = domain.ModeRestow
	}

	override, err := compileAll(opts.Override)
	if err != nil {
		return domain.Err[domain.Config](err)
	}
	defer_, err := compileAll(opts.Defer)
	if err != nil {
		return domain.Err[domain.Config](err)
	}
	ignore, err := compileAll(opts.Ignore)
	if err != nil {
		return domain.Err[domain.Config](err)
	}

	return domain.Ok(domain.Config{
		StowRoot:   stowRoot,
		TargetRoot: targetRoot,
		Home:       home,
		Packages:   opts.Packages,
		Mode:       mode,
		Dotfiles:   opts.Dotfile,
		NoFolding:  opts.NoFold,
		Adopt:      opts.Adopt,
		Simulate:   opts.Simulate,
		Verbosity:  opts.Verbosity,
		Override:   override,
		Defer:      defer_,
		CLIgnore:   ignore,
	})
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, domain.ErrInvalidRegexPattern{Pattern: p, Err: err}
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
