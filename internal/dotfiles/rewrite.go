// Package dotfiles implements the dot- prefix rewriting rule applied to
// package-relative paths when the dotfiles policy is enabled.
package dotfiles

import (
	"path"
	"strings"
)

const prefix = "dot-"

// RewriteComponent rewrites a single path component. When enabled is true
// and c begins with the literal four-character prefix "dot-", the prefix is
// replaced with ".". Otherwise c is returned unchanged.
func RewriteComponent(c string, enabled bool) string {
	if !enabled {
		return c
	}
	if c == "." || c == ".." || c == "" {
		return c
	}
	if strings.HasPrefix(c, prefix) {
		return "." + c[len(prefix):]
	}
	return c
}

// Rewrite applies RewriteComponent independently to every component of a
// slash-separated package-relative path. Composition across components means
// "dot-config/dot-nvim/init.vim" becomes ".config/.nvim/init.vim".
func Rewrite(relPath string, enabled bool) string {
	if relPath == "" {
		return relPath
	}

	clean := path.Clean(relPath)
	parts := strings.Split(clean, "/")
	for i, p := range parts {
		parts[i] = RewriteComponent(p, enabled)
	}
	return strings.Join(parts, "/")
}
