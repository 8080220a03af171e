package orchestrator

import (
	"context"

	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/pipeline"
	"github.com/dotweave/dot/internal/planner"
	"github.com/dotweave/dot/internal/scanner"
)

// packageContext carries a package's loaded items and ignore set from the
// preparation stage to the planning stage.
type packageContext struct {
	pkg   string
	items []domain.RawItem
	set   *domain.IgnorePatternSet
}

// buildPlanPipeline composes the per-package stow planning stages — name
// validation, existence check, ignore/traversal loading, and planning —
// into a single Pipeline[string, []domain.PlannedAction], each stage
// checking ctx before running. ctx is bound once per invocation and shared
// by every package the caller runs through the returned pipeline.
func buildPlanPipeline(ctx context.Context, fs domain.FS, cfg domain.Config) pipeline.Pipeline[string, []domain.PlannedAction] {
	validateName := pipeline.Filter(func(pkg string) bool { return pkg != "" })

	prepare := pipeline.FlatMap(func(pkg string) domain.Result[packageContext] {
		return preparePackage(ctx, fs, cfg, pkg)
	})

	plan := pipeline.FlatMap(func(pc packageContext) domain.Result[[]domain.PlannedAction] {
		return planner.Plan(ctx, fs, cfg, pc.pkg, pc.items, pc.set)
	})

	return pipeline.Compose(pipeline.Compose(validateName, prepare), plan)
}

// buildDeletePlanPipeline reuses buildPlanPipeline's stow plan and maps
// each resulting action into its deletion counterpart via toDeleteAction.
func buildDeletePlanPipeline(ctx context.Context, fs domain.FS, cfg domain.Config) pipeline.Pipeline[string, []domain.PlannedAction] {
	toDeletions := pipeline.Map(func(actions []domain.PlannedAction) []domain.PlannedAction {
		deletions := make([]domain.PlannedAction, 0, len(actions))
		for _, a := range actions {
			deletions = append(deletions, toDeleteAction(a))
		}
		return deletions
	})

	return pipeline.Compose(buildPlanPipeline(ctx, fs, cfg), toDeletions)
}

func preparePackage(ctx context.Context, fs domain.FS, cfg domain.Config, pkg string) domain.Result[packageContext] {
	pkgRoot := cfg.StowRoot.Join(pkg)
	if !fs.Exists(ctx, pkgRoot.String()) {
		return domain.Err[packageContext](domain.ErrPackageNotFound{Package: pkg})
	}

	set, err := loadIgnoreSet(ctx, fs, cfg, pkg)
	if err != nil {
		return domain.Err[packageContext](err)
	}

	items := scanner.WalkPackage(ctx, fs, domain.MustParsePath(pkgRoot.String()))
	if items.IsErr() {
		return domain.Err[packageContext](items.UnwrapErr())
	}

	return domain.Ok(packageContext{pkg: pkg, items: items.Unwrap(), set: set})
}
