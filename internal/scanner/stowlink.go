package scanner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dotweave/dot/internal/domain"
)

// StowSymlinkRef identifies the package and in-package item a stow-managed
// symlink resolves to.
type StowSymlinkRef struct {
	Package  string
	ItemPath string
}

// ClassifyStowSymlink canonicalizes stowRoot, reads link, resolves the link
// body to an absolute path, and canonicalizes that target. If the canonical
// target lies under the canonical stow root, it returns the first path
// component as the package name and the remainder as the item path.
// Otherwise it returns (nil, nil). A broken link (target cannot be
// canonicalized because it does not exist) also yields (nil, nil). Errors
// canonicalizing stowRoot itself are propagated.
func ClassifyStowSymlink(ctx context.Context, fsys domain.FS, link string, stowRoot domain.PackagePath) (*StowSymlinkRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canonStowRoot, err := fsys.Canonicalize(ctx, stowRoot.String())
	if err != nil {
		return nil, domain.ErrCanonicalize{Path: stowRoot.String(), Err: err}
	}

	body, err := fsys.ReadLink(ctx, link)
	if err != nil {
		return nil, domain.ErrReadSymlink{Path: link, Err: err}
	}

	absTarget := body
	if !filepath.IsAbs(absTarget) {
		absTarget = filepath.Join(filepath.Dir(link), body)
	}

	canonTarget, err := fsys.Canonicalize(ctx, absTarget)
	if err != nil {
		// A broken link (target does not exist) is not an error condition
		// for classification purposes; it simply isn't stow-managed.
		return nil, nil
	}

	rel, err := filepath.Rel(canonStowRoot, canonTarget)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil, nil
	}

	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	pkg := parts[0]
	itemPath := ""
	if len(parts) == 2 {
		itemPath = parts[1]
	}

	return &StowSymlinkRef{Package: pkg, ItemPath: itemPath}, nil
}
