package git

import gitbackend "github.com/thiagokokada/git-lastseen/internal/git/backend"

type (
	Commit    = gitbackend.Commit
	Signature = gitbackend.Signature

	RepositoryAccessError = gitbackend.RepositoryAccessError
	BranchNotFoundError   = gitbackend.BranchNotFoundError
)
