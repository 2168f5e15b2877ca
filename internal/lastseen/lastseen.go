// Package lastseen reports when each author last appeared on a branch.
package lastseen

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/thiagokokada/git-lastseen/internal/git"
)

// DateLayout renders e.g. "Tue 05. Mar 2024". Go's layout names are always
// English, so the output does not depend on the process locale.
const DateLayout = "Mon 02. Jan 2006"

// FormatDate formats t in its own offset using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Collect walks commits in the order given and records, for every author,
// the date of the first commit seen from them. Fed newest first, that is the
// author's most recent commit.
func Collect(commits iter.Seq2[*git.Commit, error]) (*AuthorDates, error) {
	dates := NewAuthorDates()
	seen := 0
	for commit, err := range commits {
		if err != nil {
			return nil, err
		}
		seen++
		name := commit.Author.Name
		if dates.Has(name) {
			continue
		}
		dates.Set(name, FormatDate(commit.CommittedAt()))
	}
	slog.Debug("collected author dates", slog.Int("commits", seen), slog.Int("authors", dates.Len()))
	return dates, nil
}

// Branch collects the author dates of branch in svc.
func Branch(svc *git.Service, branch string) (*AuthorDates, error) {
	commits, err := svc.Commits(branch)
	if err != nil {
		return nil, err
	}
	dates, err := Collect(commits)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", branch, err)
	}
	return dates, nil
}
