package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotweave/dot/internal/config"
)

func TestLoadFile_NoFileReturnsZeroValue(t *testing.T) {
	fc, err := config.LoadFile("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.FileConfig{}, fc)
}

func TestLoadFile_ReadsStowDirToml(t *testing.T) {
	stowDir := t.TempDir()
	content := "stow_dir = \"/custom/dir\"\ndotfiles = true\noverride = [\"^bin/\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(stowDir, "dot.toml"), []byte(content), 0o644))

	fc, err := config.LoadFile("", stowDir)
	require.NoError(t, err)
	assert.Equal(t, "/custom/dir", fc.StowDir)
	assert.True(t, fc.Dotfiles)
	assert.Equal(t, []string{"^bin/"}, fc.Override)
}

func TestLoadFile_ExplicitPathTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("adopt = true\n"), 0o644))

	fc, err := config.LoadFile(explicit, dir)
	require.NoError(t, err)
	assert.True(t, fc.Adopt)
}

func TestMerge_FlagsWinOverFile(t *testing.T) {
	opts := config.Options{StowDir: "/from-flag"}
	fc := config.FileConfig{StowDir: "/from-file", Dotfiles: true}

	merged := config.Merge(opts, fc)
	assert.Equal(t, "/from-flag", merged.StowDir)
	assert.True(t, merged.Dotfile)
}

func TestMerge_FilePatternsComeBeforeFlagPatterns(t *testing.T) {
	opts := config.Options{Override: []string{"flag-pattern"}}
	fc := config.FileConfig{Override: []string{"file-pattern"}}

	merged := config.Merge(opts, fc)
	assert.Equal(t, []string{"file-pattern", "flag-pattern"}, merged.Override)
}
