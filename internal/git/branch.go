package git

import (
	"fmt"
	"slices"
	"strings"
)

// LocalBranchNames returns the sorted, deduplicated local branch names.
func (s *Service) LocalBranchNames() ([]string, error) {
	if s.RepoPath() == "" {
		return nil, fmt.Errorf("repository root not set")
	}
	names, err := s.backend.LocalBranches()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(names))
	branches := []string{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		branches = append(branches, name)
	}
	slices.Sort(branches)
	return branches, nil
}
