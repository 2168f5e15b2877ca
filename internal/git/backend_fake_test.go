package git

import (
	"errors"
	"io"

	gitbackend "github.com/thiagokokada/git-lastseen/internal/git/backend"
)

type fakeBackend struct {
	repoPath string

	localBranchesFunc  func() ([]string, error)
	resolveBranchFunc  func(branch string) (string, error)
	startLogStreamFunc func(fromHash string) (gitbackend.LogStream, error)

	lastBranch string
	lastFrom   string
	starts     int
}

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) LocalBranches() ([]string, error) {
	if f.localBranchesFunc != nil {
		return f.localBranchesFunc()
	}
	return nil, errors.New("unexpected LocalBranches call")
}

// ResolveBranch resolves every branch to "tip-<branch>" unless overridden.
func (f *fakeBackend) ResolveBranch(branch string) (string, error) {
	f.lastBranch = branch
	if f.resolveBranchFunc != nil {
		return f.resolveBranchFunc(branch)
	}
	return "tip-" + branch, nil
}

func (f *fakeBackend) StartLogStream(fromHash string) (gitbackend.LogStream, error) {
	f.lastFrom = fromHash
	f.starts++
	if f.startLogStreamFunc != nil {
		return f.startLogStreamFunc(fromHash)
	}
	return nil, errors.New("unexpected StartLogStream call")
}

// fakeLogStream replays commits, then returns err (io.EOF when nil).
type fakeLogStream struct {
	commits []*Commit
	err     error

	pos    int
	closed bool
}

func (s *fakeLogStream) Next() (*Commit, error) {
	if s.pos < len(s.commits) {
		c := s.commits[s.pos]
		s.pos++
		return c, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, io.EOF
}

func (s *fakeLogStream) Close() error {
	s.closed = true
	return nil
}
