// Package gitrepo builds throwaway repositories for tests.
package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit describes one commit to record. Committer fields default to the
// author's when empty.
type Commit struct {
	Author     string
	Email      string
	When       time.Time
	Committer  string
	CommitWhen time.Time
	Message    string
}

type Repo struct {
	Dir string

	t    testing.TB
	repo *gitlib.Repository
	seq  int
}

// Init creates an empty non-bare repository whose HEAD points at master.
func Init(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Repo{Dir: dir, t: t, repo: repo}
}

// New creates a repository and records commits on master, oldest first.
func New(t testing.TB, commits ...Commit) *Repo {
	t.Helper()
	r := Init(t)
	for _, c := range commits {
		r.Commit(c)
	}
	return r
}

// Commit records c on the checked-out branch and returns its hash.
func (r *Repo) Commit(c Commit) string {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	r.seq++
	name := "history.txt"
	f, err := os.OpenFile(filepath.Join(r.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		r.t.Fatalf("open %s: %v", name, err)
	}
	if _, err := fmt.Fprintf(f, "%d %s\n", r.seq, c.Author); err != nil {
		_ = f.Close()
		r.t.Fatalf("write %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		r.t.Fatalf("close %s: %v", name, err)
	}
	if _, err := wt.Add(name); err != nil {
		r.t.Fatalf("add %s: %v", name, err)
	}

	email := c.Email
	if email == "" {
		email = fmt.Sprintf("%s@example.com", c.Author)
	}
	committer := object.Signature{Name: c.Committer, Email: email, When: c.CommitWhen}
	if committer.Name == "" {
		committer.Name = c.Author
	}
	if committer.When.IsZero() {
		committer.When = c.When
	}
	msg := c.Message
	if msg == "" {
		msg = fmt.Sprintf("commit %d", r.seq)
	}
	hash, err := wt.Commit(msg, &gitlib.CommitOptions{
		Author:    &object.Signature{Name: c.Author, Email: email, When: c.When},
		Committer: &committer,
	})
	if err != nil {
		r.t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

// Branch creates name at the current HEAD without switching to it.
func (r *Repo) Branch(name string) {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("resolve HEAD: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("create branch %s: %v", name, err)
	}
}

// Checkout switches the worktree to an existing branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if err := wt.Checkout(&gitlib.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}); err != nil {
		r.t.Fatalf("checkout %s: %v", name, err)
	}
}

// Date returns midday UTC on the given day, a convenient commit timestamp.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
