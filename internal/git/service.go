package git

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	gitbackend "github.com/thiagokokada/git-lastseen/internal/git/backend"
)

// DefaultBranch is the branch inspected when none is given.
const DefaultBranch = "master"

var errLogConsumed = errors.New("commit log already consumed")

type Service struct {
	backend gitbackend.Backend
}

// Open opens the repository containing repoPath with the compiled-in backend.
// Failures are reported as *RepositoryAccessError.
func Open(repoPath string) (*Service, error) {
	b, err := openBackend(repoPath)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(b), nil
}

func NewWithBackend(b gitbackend.Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) RepoPath() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.RepoPath()
}

// Commits returns the commits reachable from branch, newest first.
//
// The branch is resolved immediately so a missing branch is reported here.
// The log itself is only opened once the sequence is ranged over, and is
// released when iteration stops. The sequence is single-pass: ranging over
// it a second time yields an error.
func (s *Service) Commits(branch string) (iter.Seq2[*Commit, error], error) {
	if s.RepoPath() == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	head, err := s.backend.ResolveBranch(branch)
	if err != nil {
		var nf *BranchNotFoundError
		if errors.As(err, &nf) && nf.Available == nil {
			if names, lerr := s.LocalBranchNames(); lerr == nil {
				nf.Available = names
			}
		}
		return nil, err
	}
	consumed := false
	return func(yield func(*Commit, error) bool) {
		if consumed {
			yield(nil, errLogConsumed)
			return
		}
		consumed = true
		stream, err := s.backend.StartLogStream(head)
		if err != nil {
			yield(nil, fmt.Errorf("start commit log: %w", err))
			return
		}
		defer func() {
			if err := stream.Close(); err != nil {
				slog.Debug("git log stream close", slog.Any("error", err))
			}
		}()
		count := 0
		for {
			commit, err := stream.Next()
			if err == io.EOF {
				slog.Debug("commit log exhausted", slog.String("branch", branch), slog.Int("commits", count))
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("iterate commits: %w", err))
				return
			}
			count++
			if !yield(commit, nil) {
				return
			}
		}
	}, nil
}
