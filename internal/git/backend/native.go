package backend

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type goGit struct {
	repo *gitlib.Repository
	path string
}

// OpenNative opens the repository containing repoPath with go-git.
func OpenNative(repoPath string) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, &RepositoryAccessError{Path: repoPath, Err: err}
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &RepositoryAccessError{Path: abs, Err: err}
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	slog.Debug("opened repository", slog.String("backend", "native"), slog.String("path", root))
	return &goGit{repo: repo, path: root}, nil
}

func (g *goGit) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

func (g *goGit) LocalBranches() ([]string, error) {
	if g == nil || g.repo == nil {
		return nil, nil
	}
	iter, err := g.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return names, nil
}

func (g *goGit) ResolveBranch(branch string) (string, error) {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return "", &BranchNotFoundError{Branch: branch}
	}
	ref, err := g.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", &BranchNotFoundError{Branch: branch}
		}
		return "", fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	slog.Debug("branch resolved",
		slog.String("backend", "native"),
		slog.String("branch", branch),
		slog.String("head", ref.Hash().String()),
	)
	return ref.Hash().String(), nil
}

func (g *goGit) StartLogStream(fromHash string) (LogStream, error) {
	fromHash = strings.TrimSpace(fromHash)
	if !plumbing.IsHash(fromHash) {
		return nil, fmt.Errorf("invalid starting commit %q", fromHash)
	}
	iter, err := g.repo.Log(&gitlib.LogOptions{From: plumbing.NewHash(fromHash), Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	return &nativeLogStream{iter: iter}, nil
}

type nativeLogStream struct {
	iter object.CommitIter
}

func (s *nativeLogStream) Next() (*Commit, error) {
	if s.iter == nil {
		return nil, errors.New("log stream closed")
	}
	c, err := s.iter.Next()
	if err != nil {
		return nil, err
	}
	return fromObject(c), nil
}

func (s *nativeLogStream) Close() error {
	if s.iter != nil {
		s.iter.Close()
		s.iter = nil
	}
	return nil
}

func fromObject(c *object.Commit) *Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}
	return &Commit{
		Hash:         c.Hash.String(),
		ParentHashes: parents,
		Author:       Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer:    Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
		Message:      c.Message,
	}
}
