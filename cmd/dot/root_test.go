package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals clears the package-level flag and exit-code state between
// tests, since cobra binds flags onto the shared globalCfg var.
func resetGlobals() {
	globalCfg = globalConfig{}
	exitCode = 0
}

func execute(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	resetGlobals()

	cmd := NewRootCommand("test", "none", "unknown")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out, err
}

func TestRoot_StowsNamedPackage(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	pkgDir := filepath.Join(stowDir, "vim")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "vimrc"), []byte("x"), 0o644))

	out, err := execute(t, "-d", stowDir, "-t", targetDir, "vim")
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, out.String(), "1 successful")
	assert.FileExists(t, filepath.Join(targetDir, "vimrc"))
}

func TestRoot_MissingPackageArgIsUsageError(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestRoot_UnknownPackageSetsNonZeroExitCode(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	_, err := execute(t, "-d", stowDir, "-t", targetDir, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 1, exitCode)
}

func TestRoot_QuietSuppressesPerActionOutput(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	pkgDir := filepath.Join(stowDir, "vim")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "vimrc"), []byte("x"), 0o644))

	out, err := execute(t, "-d", stowDir, "-t", targetDir, "-q", "vim")
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "vimrc")
	assert.Contains(t, out.String(), "1 successful")
}

func TestRoot_SimulateMakesNoChanges(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	pkgDir := filepath.Join(stowDir, "vim")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "vimrc"), []byte("x"), 0o644))

	_, err := execute(t, "-d", stowDir, "-t", targetDir, "-n", "vim")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(targetDir, "vimrc"))
}

func TestRoot_DeleteRemovesSymlink(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	pkgDir := filepath.Join(stowDir, "vim")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "vimrc"), []byte("x"), 0o644))

	_, err := execute(t, "-d", stowDir, "-t", targetDir, "vim")
	require.NoError(t, err)

	_, err = execute(t, "-d", stowDir, "-t", targetDir, "-D", "vim")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(targetDir, "vimrc"))
}
