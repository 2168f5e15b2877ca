package backend

// Backend abstracts read access to repository history.
//
// The default implementation reads the object database through go-git; the
// gitcli build tag swaps in one that shells out to the git executable.
type Backend interface {
	RepoPath() string

	// LocalBranches lists the short names under refs/heads.
	LocalBranches() ([]string, error)

	// ResolveBranch returns the commit hash at the tip of the local branch.
	// It returns *BranchNotFoundError when the branch is missing or blank.
	ResolveBranch(branch string) (string, error)

	// StartLogStream walks the commits reachable from fromHash, newest first.
	StartLogStream(fromHash string) (LogStream, error)
}

// LogStream yields commits until io.EOF. It is single-pass.
type LogStream interface {
	Next() (*Commit, error)
	Close() error
}
