// Package ignore implements the IgnoreEngine: loading an ignore pattern
// source with fixed precedence and classifying package items against it.
package ignore

import (
	"bufio"
	"context"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/dotweave/dot/internal/domain"
)

// DefaultPatterns are the built-in ignore patterns used when a package has
// neither a local nor a global ignore file.
var DefaultPatterns = []string{
	`\.git`,
	`CVS`,
	`\.svn`,
	`RCS`,
	`_darcs`,
	`.*~`,
	`#.*#`,
	`\.#.+`,
	`.+,v`,
	`\.stow-local-ignore`,
	`\.gitignore`,
	`\.cvsignore`,
	`^/README.*`,
	`^/LICENSE.*`,
	`^/COPYING$`,
}

// Load selects exactly one ignore source for packageName, with precedence:
//  1. <stowRoot>/<packageName>/.stow-local-ignore, if a regular file.
//  2. <home>/.stow-global-ignore, if a regular file.
//  3. the built-in defaults.
func Load(ctx context.Context, fsys domain.FS, stowRoot domain.PackagePath, packageName, home string) domain.Result[*domain.IgnorePatternSet] {
	localPath := stowRoot.Join(packageName, ".stow-local-ignore").String()
	if isRegularFile(ctx, fsys, localPath) {
		return compileFile(ctx, localPath, domain.OriginLocalPerPackage)
	}

	globalPath := path.Join(home, ".stow-global-ignore")
	if isRegularFile(ctx, fsys, globalPath) {
		return compileFile(ctx, globalPath, domain.OriginGlobalPerUser)
	}

	return compileLiterals(DefaultPatterns, domain.OriginBuiltInDefaults)
}

func isRegularFile(ctx context.Context, fsys domain.FS, p string) bool {
	info, err := fsys.Stat(ctx, p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func compileFile(ctx context.Context, sourcePath string, origin domain.IgnoreOrigin) domain.Result[*domain.IgnorePatternSet] {
	if err := ctx.Err(); err != nil {
		return domain.Err[*domain.IgnorePatternSet](err)
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return domain.Err[*domain.IgnorePatternSet](domain.ErrLoadPatterns{Path: sourcePath, Err: err})
	}
	defer f.Close()

	var raw []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		raw = append(raw, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return domain.Err[*domain.IgnorePatternSet](domain.ErrLoadPatterns{Path: sourcePath, Err: err})
	}

	return compileFrom(raw, sourcePath, origin)
}

func compileLiterals(raw []string, origin domain.IgnoreOrigin) domain.Result[*domain.IgnorePatternSet] {
	return compileFrom(raw, "<built-in>", origin)
}

func compileFrom(raw []string, source string, origin domain.IgnoreOrigin) domain.Result[*domain.IgnorePatternSet] {
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		re, err := regexp.Compile(p)
		if err != nil {
			return domain.Err[*domain.IgnorePatternSet](domain.ErrInvalidIgnorePattern{Source: source, Pattern: p, Err: err})
		}
		patterns = append(patterns, re)
	}
	return domain.Ok(&domain.IgnorePatternSet{Origin: origin, Patterns: patterns})
}
