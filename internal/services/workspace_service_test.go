package services_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/services"
)

func newTestWorkspace(t *testing.T) (*services.WorkspaceService, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	writeWorkspaceFile(t, dir, "main.go", "package main\n")

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("main.go")
	require.NoError(t, err)
	_, err = worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	svc := services.NewWorkspaceService()
	require.NoError(t, svc.SetRoot(dir))
	return svc, dir
}

func writeWorkspaceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestWorkspaceService_SetRootValidation(t *testing.T) {
	svc := services.NewWorkspaceService()

	require.Error(t, svc.SetRoot(""))
	require.Error(t, svc.SetRoot(filepath.Join(t.TempDir(), "missing")))
	require.Error(t, svc.SetRoot(t.TempDir())) // exists but no git repo
}

func TestWorkspaceService_CleanTreeHasNoModifications(t *testing.T) {
	svc, _ := newTestWorkspace(t)

	mods, err := svc.FileModifications()
	require.NoError(t, err)
	assert.Empty(t, mods)

	markup, err := svc.ModificationsMarkup()
	require.NoError(t, err)
	assert.Empty(t, markup)
}

func TestWorkspaceService_ReportsModifiedAndAddedFiles(t *testing.T) {
	svc, dir := newTestWorkspace(t)

	writeWorkspaceFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	writeWorkspaceFile(t, dir, "util.go", "package main\n")

	mods, err := svc.FileModifications()
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "main.go", mods[0].FilePath)
	assert.Equal(t, "modified", mods[0].Status)
	assert.Contains(t, mods[0].Content, "func main()")
	assert.Equal(t, "util.go", mods[1].FilePath)
	assert.Equal(t, "added", mods[1].Status)

	markup, err := svc.ModificationsMarkup()
	require.NoError(t, err)
	assert.Contains(t, markup, "<codeweave_file_modifications>")
	assert.Contains(t, markup, `<file path="main.go" status="modified">`)
	assert.Contains(t, markup, `<file path="util.go" status="added">`)
}

func TestWorkspaceService_ResetConsumesModifications(t *testing.T) {
	svc, dir := newTestWorkspace(t)

	writeWorkspaceFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	require.NoError(t, svc.ResetModifications())

	mods, err := svc.FileModifications()
	require.NoError(t, err)
	assert.Empty(t, mods)

	// a further edit surfaces again
	writeWorkspaceFile(t, dir, "main.go", "package main\n\nfunc main() { println(1) }\n")
	mods, err = svc.FileModifications()
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "modified", mods[0].Status)
}

func TestWorkspaceService_ReportsDeletedFiles(t *testing.T) {
	svc, dir := newTestWorkspace(t)

	require.NoError(t, os.Remove(filepath.Join(dir, "main.go")))

	mods, err := svc.FileModifications()
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "main.go", mods[0].FilePath)
	assert.Equal(t, "deleted", mods[0].Status)
	assert.Empty(t, mods[0].Content)
}

func TestWorkspaceService_CollectFiles(t *testing.T) {
	svc, dir := newTestWorkspace(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg"), 0o755))
	writeWorkspaceFile(t, dir, filepath.Join("pkg", "helper.go"), "package pkg\n")
	writeWorkspaceFile(t, dir, "README.md", "# readme\n")

	files, err := svc.CollectFiles([]string{"**/*.go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "pkg/helper.go"}, files)
}
