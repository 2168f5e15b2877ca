//go:build !gitcli

package git

import gitbackend "github.com/thiagokokada/git-lastseen/internal/git/backend"

func openBackend(repoPath string) (gitbackend.Backend, error) {
	return gitbackend.OpenNative(repoPath)
}

// BackendDescription names the repository backend compiled in.
func BackendDescription() string {
	return "native (go-git)"
}
