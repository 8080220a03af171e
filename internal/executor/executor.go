// Package executor applies a finalized plan to the filesystem, one
// PlannedAction at a time, and reports the outcome of each.
package executor

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/dotweave/dot/internal/domain"
)

// Execute applies plan in order and returns one ActionReport per action.
// When simulate is true, no filesystem mutation occurs; every action is
// reported Skipped with a message noting the simulation.
//
// A failed action does not abort subsequent actions: each action's outcome
// is independent, matching the plan's lack of cross-action transactional
// semantics.
func Execute(ctx context.Context, fs domain.FS, log domain.Logger, plan []domain.PlannedAction, simulate bool) []domain.ActionReport {
	reports := make([]domain.ActionReport, 0, len(plan))

	for _, action := range plan {
		if err := ctx.Err(); err != nil {
			reports = append(reports, domain.ActionReport{
				Action:  action,
				Status:  domain.StatusFailure,
				Message: err.Error(),
			})
			continue
		}

		reports = append(reports, execOne(ctx, fs, log, action, simulate))
	}

	return reports
}

func execOne(ctx context.Context, fs domain.FS, log domain.Logger, action domain.PlannedAction, simulate bool) domain.ActionReport {
	if simulate {
		log.Debug(ctx, "simulated_action", "target", action.Target.String(), "kind", action.Kind.String())
		return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: "simulated, no changes made"}
	}

	switch action.Kind {
	case domain.ActionCreateDirectory:
		return execCreateDirectory(ctx, fs, action)
	case domain.ActionCreateSymlink:
		return execCreateSymlink(ctx, fs, action)
	case domain.ActionDeleteSymlink:
		return execDeleteSymlink(ctx, fs, action)
	case domain.ActionDeleteDirectory:
		return execDeleteDirectory(ctx, fs, action)
	case domain.ActionAdoptFile, domain.ActionAdoptDirectory:
		return execAdopt(ctx, fs, log, action)
	case domain.ActionSkip:
		return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: action.Detail}
	case domain.ActionConflict:
		return domain.ActionReport{Action: action, Status: domain.StatusConflictPrevented, Message: action.Detail}
	default:
		return domain.ActionReport{Action: action, Status: domain.StatusFailure, Message: "unknown action kind"}
	}
}

func execCreateDirectory(ctx context.Context, fs domain.FS, action domain.PlannedAction) domain.ActionReport {
	target := action.Target.String()
	if err := fs.MkdirAll(ctx, target, 0o755); err != nil {
		return fail(action, domain.ErrCreateDirectory{Path: target, Err: err})
	}
	return ok(action)
}

func execCreateSymlink(ctx context.Context, fs domain.FS, action domain.PlannedAction) domain.ActionReport {
	target := action.Target.String()
	parent := action.Target.Parent().String()

	if err := fs.MkdirAll(ctx, parent, 0o755); err != nil {
		return fail(action, domain.ErrCreateDirectory{Path: parent, Err: err})
	}

	if fs.Exists(ctx, target) {
		isLink, err := fs.IsSymlink(ctx, target)
		if err != nil {
			return fail(action, err)
		}
		if !isLink {
			return fail(action, domain.ErrCreateSymlink{
				Link:   target,
				Target: action.LinkValue,
				Err:    os.ErrExist,
			})
		}
		if err := fs.Remove(ctx, target); err != nil {
			return fail(action, domain.ErrDeleteSymlink{Path: target, Err: err})
		}
	}

	if err := fs.Symlink(ctx, action.LinkValue, target); err != nil {
		return fail(action, domain.ErrCreateSymlink{Link: target, Target: action.LinkValue, Err: err})
	}
	return ok(action)
}

func execDeleteSymlink(ctx context.Context, fs domain.FS, action domain.PlannedAction) domain.ActionReport {
	target := action.Target.String()

	if _, err := fs.Lstat(ctx, target); err != nil && os.IsNotExist(err) {
		return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: "already absent"}
	}

	if err := fs.Remove(ctx, target); err != nil {
		if os.IsNotExist(err) {
			return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: "already absent"}
		}
		return fail(action, domain.ErrDeleteSymlink{Path: target, Err: err})
	}
	return ok(action)
}

func execDeleteDirectory(ctx context.Context, fs domain.FS, action domain.PlannedAction) domain.ActionReport {
	target := action.Target.String()

	if !fs.Exists(ctx, target) {
		return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: "already absent"}
	}

	entries, err := fs.ReadDir(ctx, target)
	if err != nil {
		return fail(action, domain.ErrDeleteDirectory{Path: target, Err: err})
	}
	if len(entries) > 0 {
		return domain.ActionReport{Action: action, Status: domain.StatusSkipped, Message: "not empty"}
	}

	if err := fs.Remove(ctx, target); err != nil {
		return fail(action, domain.ErrDeleteDirectory{Path: target, Err: err})
	}
	return ok(action)
}

func execAdopt(ctx context.Context, fs domain.FS, log domain.Logger, action domain.PlannedAction) domain.ActionReport {
	if action.Source == nil {
		return fail(action, domain.ErrInvalidPackageStructure{Detail: "adopt action has no source item"})
	}

	target := action.Target.String()
	dest := action.Source.AbsPath.String()

	if err := fs.MkdirAll(ctx, filepath.Dir(dest), 0o755); err != nil {
		return fail(action, domain.ErrCreateDirectory{Path: filepath.Dir(dest), Err: err})
	}

	if fs.Exists(ctx, dest) {
		if err := fs.RemoveAll(ctx, dest); err != nil {
			return fail(action, domain.ErrMoveItem{Src: target, Dst: dest, Err: err})
		}
	}

	if err := fs.Rename(ctx, target, dest); err != nil {
		return fail(action, domain.ErrMoveItem{Src: target, Dst: dest, Err: err})
	}

	log.Info(ctx, "adopted_into_package", "target", target, "package_path", dest)

	return execCreateSymlink(ctx, fs, action)
}

func ok(action domain.PlannedAction) domain.ActionReport {
	return domain.ActionReport{Action: action, Status: domain.StatusSuccess}
}

func fail(action domain.PlannedAction, err error) domain.ActionReport {
	return domain.ActionReport{Action: action, Status: domain.StatusFailure, Message: err.Error()}
}

// OrderDeletions reorders a deletion-only plan so every DeleteSymlink action
// precedes every DeleteDirectory action, stable within each group. Other
// action kinds are left in their relative position after the symlinks and
// before the directories, matching how delete and restow build their plans.
func OrderDeletions(actions []domain.PlannedAction) []domain.PlannedAction {
	ordered := make([]domain.PlannedAction, len(actions))
	copy(ordered, actions)

	rank := func(k domain.ActionKind) int {
		switch k {
		case domain.ActionDeleteSymlink:
			return 0
		case domain.ActionDeleteDirectory:
			return 2
		default:
			return 1
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i].Kind) < rank(ordered[j].Kind)
	})

	return ordered
}
