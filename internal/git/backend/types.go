package backend

import "time"

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

type Commit struct {
	Hash         string
	ParentHashes []string
	Author       Signature
	Committer    Signature
	Message      string
}

// CommittedAt returns the committer timestamp, falling back to the author
// timestamp for commits recorded without one.
func (c *Commit) CommittedAt() time.Time {
	if c.Committer.When.IsZero() {
		return c.Author.When
	}
	return c.Committer.When
}
