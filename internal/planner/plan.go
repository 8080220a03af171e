// Package planner implements the per-package Planner and the cross-package
// ConflictResolver.
package planner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/dotfiles"
	"github.com/dotweave/dot/internal/ignore"
	"github.com/dotweave/dot/internal/scanner"
)

// Plan computes the PlannedActions for a single package, given its raw
// traversal items and the ignore set selected for it.
func Plan(ctx context.Context, fsys domain.FS, cfg domain.Config, packageName string, items []domain.RawItem, ignoreSet *domain.IgnorePatternSet) domain.Result[[]domain.PlannedAction] {
	var actions []domain.PlannedAction

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return domain.Err[[]domain.PlannedAction](err)
		}

		targetRel := dotfiles.Rewrite(item.PackageRelPath, cfg.Dotfiles)

		itemPath := "/" + filepath.ToSlash(targetRel)
		basename := filepath.Base(targetRel)
		if ignore.IsIgnored(itemPath, basename, ignoreSet) {
			continue
		}

		action := planItem(ctx, fsys, cfg, packageName, item, targetRel)
		actions = append(actions, action)
	}

	cascadeParentConflicts(ctx, fsys, cfg, actions)

	return domain.Ok(actions)
}

func planItem(ctx context.Context, fsys domain.FS, cfg domain.Config, packageName string, item domain.RawItem, targetRel string) domain.PlannedAction {
	target := cfg.TargetRoot.Join(targetRel)
	linkValue := computeLinkValue(cfg, packageName, item, target)

	src := domain.StowItem{RawItem: item, TargetRelPath: targetRel}
	base := domain.PlannedAction{
		Package:   packageName,
		Source:    &src,
		Target:    target,
		LinkValue: linkValue,
	}

	switch item.Type {
	case domain.ItemDirectory:
		return planDirectory(ctx, fsys, cfg, packageName, base, target)
	default:
		return planFileOrSymlink(ctx, fsys, cfg, packageName, base, target, linkValue)
	}
}

// computeLinkValue computes the relative path from item.AbsPath to
// target.Parent(). If that computation fails, it falls back to
// ../<stow_root_basename>/<package>/<package_relative_path>.
func computeLinkValue(cfg domain.Config, packageName string, item domain.RawItem, target domain.TargetPath) string {
	parent := target.Parent()
	rel, err := filepath.Rel(parent.String(), item.AbsPath.String())
	if err == nil {
		return filepath.ToSlash(rel)
	}

	stowBase := filepath.Base(cfg.StowRoot.String())
	return filepath.ToSlash(filepath.Join("..", stowBase, packageName, item.PackageRelPath))
}

func planDirectory(ctx context.Context, fsys domain.FS, cfg domain.Config, packageName string, base domain.PlannedAction, target domain.TargetPath) domain.PlannedAction {
	exists := fsys.Exists(ctx, target.String())
	if !exists {
		base.Kind = domain.ActionCreateDirectory
		base.LinkValue = ""
		return base
	}

	isDir, err := fsys.IsDir(ctx, target.String())
	if err != nil || !isDir {
		base.Kind = domain.ActionConflict
		base.Detail = "target is a file"
		base.LinkValue = ""
		return base
	}

	onlyStowManaged, err := directoryOnlyStowManaged(ctx, fsys, target, cfg.StowRoot)
	if err != nil || !onlyStowManaged {
		base.Kind = domain.ActionConflict
		base.Detail = "contains non-stow managed files"
		base.LinkValue = ""
		return base
	}

	base.Kind = domain.ActionCreateDirectory
	base.LinkValue = ""
	return base
}

func directoryOnlyStowManaged(ctx context.Context, fsys domain.FS, target domain.TargetPath, stowRoot domain.PackagePath) (bool, error) {
	entries, err := fsys.ReadDir(ctx, target.String())
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		childPath := target.Join(entry.Name())
		isLink, err := fsys.IsSymlink(ctx, childPath.String())
		if err != nil {
			return false, err
		}
		if !isLink {
			return false, nil
		}
		ref, err := scanner.ClassifyStowSymlink(ctx, fsys, childPath.String(), stowRoot)
		if err != nil {
			return false, err
		}
		if ref == nil {
			return false, nil
		}
	}
	return true, nil
}

func planFileOrSymlink(ctx context.Context, fsys domain.FS, cfg domain.Config, packageName string, base domain.PlannedAction, target domain.TargetPath, linkValue string) domain.PlannedAction {
	exists := fsys.Exists(ctx, target.String())
	if !exists {
		base.Kind = domain.ActionCreateSymlink
		return base
	}

	isLink, err := fsys.IsSymlink(ctx, target.String())
	if err != nil {
		isLink = false
	}

	if !isLink {
		if isDir, derr := fsys.IsDir(ctx, target.String()); derr == nil && isDir {
			base.Kind = domain.ActionConflict
			base.Detail = "target is a directory"
			base.LinkValue = ""
			return base
		}
	}

	if isLink {
		ref, refErr := scanner.ClassifyStowSymlink(ctx, fsys, target.String(), cfg.StowRoot)
		if refErr == nil && ref != nil {
			if ref.Package == packageName && ref.ItemPath == base.Source.PackageRelPath {
				base.Kind = domain.ActionSkip
				base.Detail = "already correctly linked"
				return base
			}
			return resolveCollision(cfg, packageName, base, target, false)
		}
	}

	return resolveCollision(cfg, packageName, base, target, true)
}

// resolveCollision applies override/defer resolution (§4.5.1) and, when
// enabled, adopt (§4.5.2) to a target that exists and is not already a
// correctly-linked stow symlink. nonStowManaged distinguishes a plain file
// (or unrelated symlink) from a symlink managed by a different package.
func resolveCollision(cfg domain.Config, packageName string, base domain.PlannedAction, target domain.TargetPath, nonStowManaged bool) domain.PlannedAction {
	rel, err := cfg.TargetRoot.Rel(target)
	if err != nil {
		rel = target.String()
	}
	rel = filepath.ToSlash(rel)

	for _, re := range cfg.Defer {
		if re.MatchString(rel) {
			base.Kind = domain.ActionSkip
			base.Detail = "deferred"
			return base
		}
	}

	for _, re := range cfg.Override {
		if re.MatchString(rel) {
			base.Kind = domain.ActionCreateSymlink
			return base
		}
	}

	if cfg.Adopt && nonStowManaged {
		if base.Source.Type == domain.ItemDirectory {
			base.Kind = domain.ActionAdoptDirectory
			return base
		}
		base.Kind = domain.ActionAdoptFile
		return base
	}

	base.Kind = domain.ActionConflict
	base.LinkValue = ""
	if nonStowManaged {
		base.Detail = "target exists and is not stow-managed"
	} else {
		base.Detail = "managed by another package"
	}
	return base
}

// cascadeParentConflicts implements §4.5.4: for each non-Conflict action,
// walk lexical ancestors inside the target root; if an ancestor exists on
// disk as a non-directory, or another planned action at that ancestor path
// is already a Conflict, mark this action Conflict too. Stops at the first
// matching ancestor.
func cascadeParentConflicts(ctx context.Context, fsys domain.FS, cfg domain.Config, actions []domain.PlannedAction) {
	byTarget := make(map[string]int, len(actions))
	for i, a := range actions {
		byTarget[a.Target.String()] = i
	}

	for i := range actions {
		if actions[i].Kind == domain.ActionConflict {
			continue
		}

		ancestor := actions[i].Target.Parent()
		for strings.HasPrefix(ancestor.String(), cfg.TargetRoot.String()) && !ancestor.Equals(cfg.TargetRoot) {
			if idx, ok := byTarget[ancestor.String()]; ok && actions[idx].Kind == domain.ActionConflict {
				actions[i].Kind = domain.ActionConflict
				actions[i].Detail = "parent is part of a conflicting item tree"
				actions[i].LinkValue = ""
				break
			}

			if fsys.Exists(ctx, ancestor.String()) {
				if isDir, err := fsys.IsDir(ctx, ancestor.String()); err == nil && !isDir {
					actions[i].Kind = domain.ActionConflict
					actions[i].Detail = "parent is a file"
					actions[i].LinkValue = ""
					break
				}
			}

			ancestor = ancestor.Parent()
		}
	}
}
