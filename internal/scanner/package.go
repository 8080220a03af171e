// Package scanner implements the Traversal component: a thin walk over a
// package directory that yields RawItems without descending into symlinks.
package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dotweave/dot/internal/domain"
)

// WalkPackage yields every entry below packageRoot at depth >= 1. Symlinks
// inside the package are classified as RawItem entries of type ItemSymlink
// and are not descended into. Directories are emitted as entries in their
// own right so the Planner can decide whether to fold them.
func WalkPackage(ctx context.Context, fsys domain.FS, packageRoot domain.FilePath) domain.Result[[]domain.RawItem] {
	if err := ctx.Err(); err != nil {
		return domain.Err[[]domain.RawItem](err)
	}

	isDir, err := fsys.IsDir(ctx, packageRoot.String())
	if err != nil {
		return domain.Err[[]domain.RawItem](domain.ErrNotFound{Path: packageRoot.String()})
	}
	if !isDir {
		return domain.Err[[]domain.RawItem](domain.ErrNotADirectory{Path: packageRoot.String()})
	}

	var items []domain.RawItem
	if err := walk(ctx, fsys, packageRoot, packageRoot, &items); err != nil {
		return domain.Err[[]domain.RawItem](domain.ErrWalkDir{Path: packageRoot.String(), Err: err})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].PackageRelPath < items[j].PackageRelPath
	})

	return domain.Ok(items)
}

func walk(ctx context.Context, fsys domain.FS, root, dir domain.FilePath, items *[]domain.RawItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(ctx, dir.String())
	if err != nil {
		return err
	}

	for _, entry := range entries {
		childPath := dir.Join(entry.Name())
		relPath, err := relativeSlash(root.String(), childPath.String())
		if err != nil {
			return err
		}

		isLink, err := fsys.IsSymlink(ctx, childPath.String())
		if err != nil {
			return err
		}
		if isLink {
			*items = append(*items, domain.RawItem{
				AbsPath:        childPath,
				PackageRelPath: relPath,
				Type:           domain.ItemSymlink,
			})
			continue
		}

		isDir, err := fsys.IsDir(ctx, childPath.String())
		if err != nil {
			return err
		}

		if isDir {
			*items = append(*items, domain.RawItem{
				AbsPath:        childPath,
				PackageRelPath: relPath,
				Type:           domain.ItemDirectory,
			})
			if err := walk(ctx, fsys, root, childPath, items); err != nil {
				return err
			}
			continue
		}

		*items = append(*items, domain.RawItem{
			AbsPath:        childPath,
			PackageRelPath: relPath,
			Type:           domain.ItemFile,
		})
	}

	return nil
}

func relativeSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("compute relative path from %q to %q: %w", base, target, err)
	}
	return filepath.ToSlash(rel), nil
}
