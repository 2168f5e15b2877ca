//go:build gitcli

package git

import (
	"fmt"

	gitbackend "github.com/thiagokokada/git-lastseen/internal/git/backend"
)

func openBackend(repoPath string) (gitbackend.Backend, error) {
	return gitbackend.OpenCLI(repoPath)
}

// BackendDescription names the repository backend compiled in.
func BackendDescription() string {
	version, err := gitbackend.GitVersion()
	if err != nil {
		return fmt.Sprintf("gitcli (requires git >= %s)", gitbackend.MinGitVersion())
	}
	return fmt.Sprintf("gitcli (%s)", version)
}
