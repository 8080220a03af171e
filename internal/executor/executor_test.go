package executor_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotweave/dot/internal/adapters"
	"github.com/dotweave/dot/internal/domain"
	"github.com/dotweave/dot/internal/executor"
)

func newLogger() domain.Logger {
	return adapters.NewConsoleLogger(io.Discard, "error")
}

func createAction(target, linkValue string) domain.PlannedAction {
	return domain.PlannedAction{
		Target:    domain.MustOk(domain.NewTargetPath(target)),
		LinkValue: linkValue,
		Kind:      domain.ActionCreateSymlink,
	}
}

func TestExecute_CreateSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bashrc")

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{createAction(target, "../stow/p1/bashrc")}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSuccess, reports[0].Status)

	link, err := os.Readlink(target)
	require.NoError(t, err)
	assert.Equal(t, "../stow/p1/bashrc", link)
}

func TestExecute_CreateSymlinkReplacesExistingSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bashrc")
	require.NoError(t, os.Symlink("../old/location", target))

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{createAction(target, "../new/location")}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSuccess, reports[0].Status)

	link, err := os.Readlink(target)
	require.NoError(t, err)
	assert.Equal(t, "../new/location", link)
}

func TestExecute_CreateSymlinkFailsOnNonSymlinkTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bashrc")
	require.NoError(t, os.WriteFile(target, []byte("real file"), 0o644))

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{createAction(target, "../stow/p1/bashrc")}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusFailure, reports[0].Status)
}

func TestExecute_SimulateModeNeverTouchesDisk(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bashrc")

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{createAction(target, "../stow/p1/bashrc")}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, true)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSkipped, reports[0].Status)
	assert.NoFileExists(t, target)
}

func TestExecute_CreateDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "bin")

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{{
		Target: domain.MustOk(domain.NewTargetPath(target)),
		Kind:   domain.ActionCreateDirectory,
	}}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSuccess, reports[0].Status)
	assert.DirExists(t, target)
}

func TestExecute_DeleteSymlinkAlreadyAbsentIsSkipped(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gone")

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{{
		Target: domain.MustOk(domain.NewTargetPath(target)),
		Kind:   domain.ActionDeleteSymlink,
	}}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSkipped, reports[0].Status)
	assert.Equal(t, "already absent", reports[0].Message)
}

func TestExecute_DeleteDirectoryNonEmptyIsSkipped(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "leftover"), []byte("x"), 0o644))

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{{
		Target: domain.MustOk(domain.NewTargetPath(target)),
		Kind:   domain.ActionDeleteDirectory,
	}}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSkipped, reports[0].Status)
	assert.Equal(t, "not empty", reports[0].Message)
	assert.DirExists(t, target)
}

func TestExecute_DeleteDirectoryEmptyRemoved(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(target, 0o755))

	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{{
		Target: domain.MustOk(domain.NewTargetPath(target)),
		Kind:   domain.ActionDeleteDirectory,
	}}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSuccess, reports[0].Status)
	assert.NoDirExists(t, target)
}

func TestExecute_SkipAndConflictPassThrough(t *testing.T) {
	fsys := adapters.NewOSFilesystem()
	plan := []domain.PlannedAction{
		{Target: domain.MustOk(domain.NewTargetPath("/tmp/skip-me")), Kind: domain.ActionSkip, Detail: "deferred"},
		{Target: domain.MustOk(domain.NewTargetPath("/tmp/conflict-me")), Kind: domain.ActionConflict, Detail: "target exists and is not stow-managed"},
	}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 2)
	assert.Equal(t, domain.StatusSkipped, reports[0].Status)
	assert.Equal(t, "deferred", reports[0].Message)
	assert.Equal(t, domain.StatusConflictPrevented, reports[1].Status)
	assert.Equal(t, "target exists and is not stow-managed", reports[1].Message)
}

func TestExecute_AdoptFileMovesThenLinks(t *testing.T) {
	stowDir := t.TempDir()
	targetDir := t.TempDir()

	pkgFile := filepath.Join(stowDir, "p1", "bashrc")
	require.NoError(t, os.MkdirAll(filepath.Dir(pkgFile), 0o755))
	require.NoError(t, os.WriteFile(pkgFile, []byte("package version"), 0o644))

	targetFile := filepath.Join(targetDir, "bashrc")
	require.NoError(t, os.WriteFile(targetFile, []byte("local version"), 0o644))

	fsys := adapters.NewOSFilesystem()
	rel, err := filepath.Rel(targetDir, pkgFile)
	require.NoError(t, err)

	plan := []domain.PlannedAction{{
		Source: &domain.StowItem{
			RawItem: domain.RawItem{AbsPath: domain.MustParsePath(pkgFile)},
		},
		Target:    domain.MustOk(domain.NewTargetPath(targetFile)),
		LinkValue: rel,
		Kind:      domain.ActionAdoptFile,
	}}

	reports := executor.Execute(context.Background(), fsys, newLogger(), plan, false)

	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusSuccess, reports[0].Status)

	content, err := os.ReadFile(pkgFile)
	require.NoError(t, err)
	assert.Equal(t, "local version", string(content))

	link, err := os.Readlink(targetFile)
	require.NoError(t, err)
	assert.Equal(t, rel, link)
}

func TestOrderDeletions_SymlinksBeforeDirectories(t *testing.T) {
	plan := []domain.PlannedAction{
		{Target: domain.MustOk(domain.NewTargetPath("/t/conf")), Kind: domain.ActionDeleteDirectory},
		{Target: domain.MustOk(domain.NewTargetPath("/t/conf/init.vim")), Kind: domain.ActionDeleteSymlink},
	}

	ordered := executor.OrderDeletions(plan)

	require.Len(t, ordered, 2)
	assert.Equal(t, domain.ActionDeleteSymlink, ordered[0].Kind)
	assert.Equal(t, domain.ActionDeleteDirectory, ordered[1].Kind)
}
