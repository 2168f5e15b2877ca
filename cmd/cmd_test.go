package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/git-lastseen/internal/config"
	"github.com/thiagokokada/git-lastseen/internal/git"
	"github.com/thiagokokada/git-lastseen/internal/testutil/gitrepo"
)

func exampleRepo(t *testing.T) *gitrepo.Repo {
	t.Helper()
	return gitrepo.New(t,
		gitrepo.Commit{Author: "Alice", When: gitrepo.Date(2023, 1, 1)},
		gitrepo.Commit{Author: "Bob", When: gitrepo.Date(2023, 1, 2)},
		gitrepo.Commit{Author: "Alice", When: gitrepo.Date(2023, 1, 3)},
	)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{config.EnvRepo, config.EnvBranch, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the working directory out of the picture.
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_PrettyPrintsExampleHistory(t *testing.T) {
	repo := exampleRepo(t)

	out, _, err := execute(t, repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, "{'Alice': 'Tue 03. Jan 2023', 'Bob': 'Mon 02. Jan 2023'}\n", out)
}

func TestRoot_DefaultsToParentDirectory(t *testing.T) {
	repo := exampleRepo(t)
	for _, key := range []string{config.EnvRepo, config.EnvBranch, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	tools := filepath.Join(repo.Dir, "tools")
	require.NoError(t, os.MkdirAll(tools, 0o755))
	t.Chdir(tools)

	cmd := NewRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "{'Alice': 'Tue 03. Jan 2023', 'Bob': 'Mon 02. Jan 2023'}\n", stdout.String())
}

func TestRoot_ColorDark(t *testing.T) {
	repo := exampleRepo(t)

	out, _, err := execute(t, "--color", "dark", repo.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Tue 03. Jan 2023")
}

func TestRoot_BranchFlag(t *testing.T) {
	repo := exampleRepo(t)
	repo.Branch("release")
	repo.Checkout("release")
	repo.Commit(gitrepo.Commit{Author: "Carol", When: gitrepo.Date(2023, 2, 1)})

	out, _, err := execute(t, "-b", "release", repo.Dir)
	require.NoError(t, err)
	want := "{   'Carol': 'Wed 01. Feb 2023',\n" +
		"    'Alice': 'Tue 03. Jan 2023',\n" +
		"    'Bob': 'Mon 02. Jan 2023'}\n"
	assert.Equal(t, want, out)
}

func TestRoot_BranchFromEnvironment(t *testing.T) {
	repo := exampleRepo(t)
	repo.Branch("trunk")
	repo.Checkout("trunk")
	repo.Commit(gitrepo.Commit{Author: "Dave", When: gitrepo.Date(2023, 1, 10)})

	for _, key := range []string{config.EnvRepo, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvBranch, "trunk")
	t.Setenv(config.EnvRepo, repo.Dir)
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	want := "{   'Dave': 'Tue 10. Jan 2023',\n" +
		"    'Alice': 'Tue 03. Jan 2023',\n" +
		"    'Bob': 'Mon 02. Jan 2023'}\n"
	assert.Equal(t, want, stdout.String())
}

func TestRoot_ListBranches(t *testing.T) {
	repo := exampleRepo(t)
	repo.Branch("feature")

	out, _, err := execute(t, "--list-branches", repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, "feature\nmaster\n", out)
}

func TestRoot_MissingBranch(t *testing.T) {
	repo := exampleRepo(t)

	out, _, err := execute(t, "--branch", "main", repo.Dir)
	var nf *git.BranchNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"master"}, nf.Available)
	assert.Empty(t, out, "no partial output on failure")
}

func TestRoot_NotARepository(t *testing.T) {
	out, _, err := execute(t, t.TempDir())
	var access *git.RepositoryAccessError
	require.ErrorAs(t, err, &access)
	assert.Empty(t, out)
}

func TestRoot_BlankBranch(t *testing.T) {
	repo := exampleRepo(t)

	out, _, err := execute(t, "--branch", "", repo.Dir)
	var nf *git.BranchNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, nf.Branch)
	assert.Empty(t, out)
}

func TestRoot_NoFormatFlag(t *testing.T) {
	repo := exampleRepo(t)

	out, _, err := execute(t, "--format", "yaml", repo.Dir)
	assert.EqualError(t, err, "unknown flag: --format")
	assert.Empty(t, out)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	repo := exampleRepo(t)

	out, errOut, err := execute(t, "-v", repo.Dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "level=")
	assert.Contains(t, errOut, "collected author dates")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "git-lastseen "), out)
	assert.Contains(t, out, "backend: ")
}

func TestRoot_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	for _, flag := range []string{"--branch", "--color", "--list-branches", "--watch", "--verbose", "--version"} {
		assert.Contains(t, out, flag)
	}
	assert.NotContains(t, out, "--format")
}
