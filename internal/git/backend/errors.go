package backend

import (
	"fmt"
	"strings"
)

// RepositoryAccessError reports a path that is not a repository or cannot be
// opened for reading.
type RepositoryAccessError struct {
	Path string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("open repository %s", e.Path)
	}
	return fmt.Sprintf("open repository %s: %v", e.Path, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

// BranchNotFoundError reports a local branch that does not exist.
// Available lists the local branches when the caller could resolve them.
type BranchNotFoundError struct {
	Branch    string
	Available []string
}

func (e *BranchNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("branch %q not found", e.Branch)
	}
	return fmt.Sprintf("branch %q not found (available: %s)", e.Branch, strings.Join(e.Available, ", "))
}
