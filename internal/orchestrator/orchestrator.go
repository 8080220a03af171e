// Package orchestrator implements the three top-level entry points — stow,
// delete, restow — that wire the Planner, ConflictResolver, and Executor
// together per package.
package orchestrator

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/executor"
	"github.com/dotweave/dot/internal/ignore"
	"github.com/dotweave/dot/internal/planner"
	"github.com/dotweave/dot/internal/scanner"
)

// Stow loads each package's ignore set, plans it, merges the per-package
// plans through the ConflictResolver, and executes the result. Each
// package is run through the stow Pipeline built by buildPlanPipeline:
// name validation, existence check, ignore/traversal loading, and
// planning composed into one Pipeline[string, []domain.PlannedAction].
func Stow(ctx context.Context, fs domain.FS, log domain.Logger, cfg domain.Config) domain.RunSummary {
	var combined []domain.PlannedAction
	plan := buildPlanPipeline(ctx, fs, cfg)

	for _, pkg := range cfg.Packages {
		result := plan(ctx, pkg)
		if result.IsErr() {
			log.Error(ctx, "plan_package_failed", "package", pkg, "error", result.UnwrapErr())
			combined = append(combined, domain.PlannedAction{
				Package: pkg,
				Kind:    domain.ActionConflict,
				Detail:  result.UnwrapErr().Error(),
			})
			continue
		}
		combined = append(combined, result.Unwrap()...)
	}

	resolved := planner.ResolveConflicts(combined)
	return run(ctx, fs, log, resolved, cfg.Simulate)
}

// Delete loads each package's ignore set, walks its items, and emits
// DeleteSymlink/DeleteDirectory/Skip actions for whatever currently exists
// at the corresponding target paths, via the delete Pipeline built by
// buildDeletePlanPipeline.
func Delete(ctx context.Context, fs domain.FS, log domain.Logger, cfg domain.Config) domain.RunSummary {
	var combined []domain.PlannedAction
	plan := buildDeletePlanPipeline(ctx, fs, cfg)

	for _, pkg := range cfg.Packages {
		result := plan(ctx, pkg)
		if result.IsErr() {
			log.Error(ctx, "plan_delete_failed", "package", pkg, "error", result.UnwrapErr())
			continue
		}
		combined = append(combined, result.Unwrap()...)
	}

	ordered := executor.OrderDeletions(combined)
	return run(ctx, fs, log, ordered, cfg.Simulate)
}

// Restow deletes every symlink currently on disk that resolves into the
// package, based on the target tree as it actually exists (not on the
// package's current contents), then runs Stow.
func Restow(ctx context.Context, fs domain.FS, log domain.Logger, cfg domain.Config) domain.RunSummary {
	var combined []domain.PlannedAction

	for _, pkg := range cfg.Packages {
		actions, err := planRestowDeletions(ctx, fs, cfg, pkg)
		if err != nil {
			log.Error(ctx, "plan_restow_deletions_failed", "package", pkg, "error", err)
			continue
		}
		combined = append(combined, actions...)
	}

	ordered := executor.OrderDeletions(combined)
	deleteSummary := run(ctx, fs, log, ordered, cfg.Simulate)

	stowSummary := Stow(ctx, fs, log, cfg)
	stowSummary.Reports = append(deleteSummary.Reports, stowSummary.Reports...)
	stowSummary.Successful += deleteSummary.Successful
	stowSummary.Skipped += deleteSummary.Skipped
	stowSummary.Conflicts += deleteSummary.Conflicts
	stowSummary.Failures += deleteSummary.Failures
	return stowSummary
}

func run(ctx context.Context, fs domain.FS, log domain.Logger, plan []domain.PlannedAction, simulate bool) domain.RunSummary {
	runID := uuid.NewString()
	reports := executor.Execute(ctx, fs, log.With("run_id", runID), plan, simulate)
	summary := domain.Summarize(reports)
	summary.RunID = runID
	return summary
}

// toDeleteAction reinterprets a stow-oriented PlannedAction as a deletion:
// a target this package would have created (including a missing target,
// which the executor then reports as already absent) and a target already
// correctly linked to this package become something to remove; any other
// Skip keeps its verdict, and a Conflict (belongs to another package,
// non-stow content) becomes a Skip with the detail "not stow-managed by
// this package".
func toDeleteAction(a domain.PlannedAction) domain.PlannedAction {
	switch a.Kind {
	case domain.ActionCreateSymlink:
		a.Kind = domain.ActionDeleteSymlink
		a.LinkValue = ""
		return a
	case domain.ActionCreateDirectory:
		a.Kind = domain.ActionDeleteDirectory
		return a
	case domain.ActionSkip:
		if a.Detail == "already correctly linked" {
			a.Kind = domain.ActionDeleteSymlink
			a.LinkValue = ""
			return a
		}
		return a
	default:
		a.Kind = domain.ActionSkip
		a.Detail = "not stow-managed by this package"
		a.LinkValue = ""
		return a
	}
}

func planRestowDeletions(ctx context.Context, fs domain.FS, cfg domain.Config, pkg string) ([]domain.PlannedAction, error) {
	var actions []domain.PlannedAction
	err := walkTargetForPackage(ctx, fs, cfg.TargetRoot.String(), cfg.StowRoot, pkg, cfg.TargetRoot.String(), &actions)
	return actions, err
}

func walkTargetForPackage(ctx context.Context, fs domain.FS, dir string, stowRoot domain.PackagePath, pkg, targetRootStr string, actions *[]domain.PlannedAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := fs.ReadDir(ctx, dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		childPath := filepath.Join(dir, entry.Name())

		isLink, err := fs.IsSymlink(ctx, childPath)
		if err != nil {
			return err
		}
		if isLink {
			ref, err := scanner.ClassifyStowSymlink(ctx, fs, childPath, stowRoot)
			if err != nil {
				return err
			}
			matches := ref != nil && ref.Package == pkg
			if ref == nil && !fs.Exists(ctx, childPath) {
				// A link whose target was removed from the package cannot be
				// canonicalized; resolve its body lexically instead.
				if body, rerr := fs.ReadLink(ctx, childPath); rerr == nil {
					abs := domain.Lexical(filepath.Dir(childPath), body)
					rel, relErr := filepath.Rel(stowRoot.Join(pkg).String(), abs)
					matches = relErr == nil && rel != "." && filepath.IsLocal(rel)
				}
			}
			if matches {
				*actions = append(*actions, domain.PlannedAction{
					Package: pkg,
					Target:  domain.MustOk(domain.NewTargetPath(childPath)),
					Kind:    domain.ActionDeleteSymlink,
				})
			}
			continue
		}

		isDir, err := fs.IsDir(ctx, childPath)
		if err != nil {
			return err
		}
		if isDir {
			before := len(*actions)
			if err := walkTargetForPackage(ctx, fs, childPath, stowRoot, pkg, targetRootStr, actions); err != nil {
				return err
			}
			if len(*actions) > before {
				*actions = append(*actions, domain.PlannedAction{
					Package: pkg,
					Target:  domain.MustOk(domain.NewTargetPath(childPath)),
					Kind:    domain.ActionDeleteDirectory,
				})
			}
		}
	}

	return nil
}

// loadIgnoreSet selects the package's ignore source and appends any
// invocation-scoped --ignore patterns on top of it.
func loadIgnoreSet(ctx context.Context, fs domain.FS, cfg domain.Config, pkg string) (*domain.IgnorePatternSet, error) {
	result := ignore.Load(ctx, fs, cfg.StowRoot, pkg, cfg.Home)
	if result.IsErr() {
		return nil, result.UnwrapErr()
	}
	set := result.Unwrap()
	if len(cfg.CLIgnore) == 0 {
		return set, nil
	}
	return &domain.IgnorePatternSet{
		Origin:   set.Origin,
		Patterns: append(append([]*regexp.Regexp{}, set.Patterns...), cfg.CLIgnore...),
	}, nil
}
