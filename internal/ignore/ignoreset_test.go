package ignore_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/ignore"
)

func setOf(patterns ...string) *domain.IgnorePatternSet {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return &domain.IgnorePatternSet{Origin: domain.OriginBuiltInDefaults, Patterns: res}
}

func TestIsIgnored_EmptyPatterns(t *testing.T) {
	set := setOf()
	assert.False(t, ignore.IsIgnored("/foo.txt", "foo.txt", set))
}

func TestIsIgnored_BasenameMatch(t *testing.T) {
	set := setOf(`\.log$`, `temp`, `^exact_filename\.rs$`)

	assert.True(t, ignore.IsIgnored("/mylog.log", "mylog.log", set))
	assert.True(t, ignore.IsIgnored("/dir/access.log", "access.log", set))
	assert.False(t, ignore.IsIgnored("/logger.txt", "logger.txt", set))

	assert.True(t, ignore.IsIgnored("/foo/temporary_file.txt", "temporary_file.txt", set))
	assert.True(t, ignore.IsIgnored("/bar/my_temp_dir", "my_temp_dir", set))
	assert.False(t, ignore.IsIgnored("/qux/archive.zip", "archive.zip", set))

	assert.True(t, ignore.IsIgnored("/src/exact_filename.rs", "exact_filename.rs", set))
	assert.False(t, ignore.IsIgnored("/src/exact_filename_extra.rs", "exact_filename_extra.rs", set))
}

func TestIsIgnored_BasenameMatchesParentComponent(t *testing.T) {
	set := setOf(`\.git`)

	assert.True(t, ignore.IsIgnored("/.git", ".git", set))
	assert.True(t, ignore.IsIgnored("/.git/config", "config", set))
	assert.True(t, ignore.IsIgnored("/foo/.git/config", "config", set))
}

func TestIsIgnored_FullPathMatch(t *testing.T) {
	set := setOf(`^/specific/file\.txt$`, `^/config/`)

	assert.True(t, ignore.IsIgnored("/specific/file.txt", "file.txt", set))
	assert.False(t, ignore.IsIgnored("/notspecific/file.txt", "file.txt", set))
	assert.True(t, ignore.IsIgnored("/config/settings.json", "settings.json", set))
	assert.False(t, ignore.IsIgnored("/conf/settings.json", "settings.json", set))
}

func TestIsIgnored_DefaultPatterns(t *testing.T) {
	compiled := ignore.DefaultPatterns
	res := make([]*regexp.Regexp, len(compiled))
	for i, p := range compiled {
		res[i] = regexp.MustCompile(p)
	}
	set := &domain.IgnorePatternSet{Origin: domain.OriginBuiltInDefaults, Patterns: res}

	assert.True(t, ignore.IsIgnored("/.git", ".git", set))
	assert.True(t, ignore.IsIgnored("/some/dir/.git", ".git", set))
	assert.True(t, ignore.IsIgnored("/file.txt~", "file.txt~", set))
	assert.True(t, ignore.IsIgnored("/#save.txt#", "#save.txt#", set))
	assert.True(t, ignore.IsIgnored("/.#lockfile", ".#lockfile", set))
	assert.True(t, ignore.IsIgnored("/ver,v", "ver,v", set))
	assert.True(t, ignore.IsIgnored("/.stow-local-ignore", ".stow-local-ignore", set))

	assert.True(t, ignore.IsIgnored("/README.md", "README.md", set))
	assert.True(t, ignore.IsIgnored("/LICENSE.txt", "LICENSE.txt", set))
	assert.True(t, ignore.IsIgnored("/COPYING", "COPYING", set))
	assert.False(t, ignore.IsIgnored("/docs/README.md", "README.md", set))
	assert.False(t, ignore.IsIgnored("/src/COPYING", "COPYING", set))
	assert.False(t, ignore.IsIgnored("/COPYING.bak", "COPYING.bak", set))
}
