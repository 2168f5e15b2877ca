package backend

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path string
}

// OpenCLI opens the repository containing repoPath through the git executable.
func OpenCLI(repoPath string) (Backend, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, &RepositoryAccessError{Path: repoPath, Err: err}
	}
	tmp := &gitCLI{path: abs}
	root, err := tmp.runGitCommand([]string{"rev-parse", "--show-toplevel"}, false, "git rev-parse")
	if err != nil || strings.TrimSpace(root) == "" {
		// Bare repositories have no toplevel.
		gitDir, dirErr := tmp.runGitCommand([]string{"rev-parse", "--absolute-git-dir"}, false, "git rev-parse")
		if dirErr != nil {
			if err == nil {
				err = dirErr
			}
			return nil, &RepositoryAccessError{Path: abs, Err: err}
		}
		root = gitDir
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, &RepositoryAccessError{Path: abs, Err: errors.New("git rev-parse returned empty root")}
	}
	slog.Debug("opened repository", slog.String("backend", "gitcli"), slog.String("path", root))
	return &gitCLI{path: root}, nil
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

func (g *gitCLI) runGitCommand(args []string, allowExit1 bool, context string) (string, error) {
	if g == nil || g.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmdArgs := append([]string{"-C", g.path}, args...)
	cmd := exec.Command("git", cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if allowExit1 && errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stderr.Len() == 0 {
			// quiet lookups (rev-parse -q, show-ref) report "nothing found" via exit code 1
		} else {
			if stderr.Len() > 0 {
				return "", fmt.Errorf("%s: %v: %s", context, err, strings.TrimSpace(stderr.String()))
			}
			return "", fmt.Errorf("%s: %w", context, err)
		}
	}
	return stdout.String(), nil
}

func (g *gitCLI) LocalBranches() ([]string, error) {
	if g == nil || g.path == "" {
		return nil, nil
	}
	out, err := g.runGitCommand([]string{"--no-pager", "show-ref"}, true, "git show-ref")
	if err != nil {
		return nil, err
	}
	return parseBranchesFromShowRef(out)
}

func (g *gitCLI) ResolveBranch(branch string) (string, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return "", &BranchNotFoundError{Branch: branch}
	}
	out, err := g.runGitCommand(
		[]string{"rev-parse", "-q", "--verify", "refs/heads/" + branch + "^{commit}"},
		true,
		"git rev-parse",
	)
	if err != nil {
		return "", err
	}
	hash := strings.TrimSpace(out)
	if hash == "" {
		return "", &BranchNotFoundError{Branch: branch}
	}
	slog.Debug("branch resolved",
		slog.String("backend", "gitcli"),
		slog.String("branch", branch),
		slog.String("head", hash),
	)
	return hash, nil
}

func (g *gitCLI) StartLogStream(fromHash string) (LogStream, error) {
	return startGitLogStream(g.path, fromHash)
}

// parseBranchesFromShowRef keeps the refs/heads entries of "git show-ref"
// output, by short name.
func parseBranchesFromShowRef(out string) ([]string, error) {
	var names []string
	for rawLine := range strings.SplitSeq(out, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unexpected show-ref output line: %q", rawLine)
		}
		if short, ok := strings.CutPrefix(parts[1], "refs/heads/"); ok && short != "" {
			names = append(names, short)
		}
	}
	return names, nil
}
