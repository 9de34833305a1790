package history

import (
	"errors"
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/masmgr/gecko-go/internal/git"
)

const (
	// DefaultPageSize is the number of commits per page when none is requested.
	DefaultPageSize = 20
	// DefaultMaxPageSize caps caller-supplied page sizes.
	DefaultMaxPageSize = 200
)

// Request selects a page of history.
type Request struct {
	// Ref is a branch name or commit id. Empty means HEAD.
	Ref string
	// Cursor is the id of the last commit of the previous page.
	Cursor   string
	PageSize int
}

// Page is one page of history, newest first.
type Page struct {
	Commits    []git.Commit
	HasMore    bool
	NextCursor string
}

// Pager pages through commit history.
type Pager struct {
	repo        git.ObjectGraph
	maxPageSize int
}

// NewPager creates a pager. maxPageSize <= 0 uses DefaultMaxPageSize.
func NewPager(repo git.ObjectGraph, maxPageSize int) *Pager {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &Pager{repo: repo, maxPageSize: maxPageSize}
}

// Page returns one page of history.
//
// Without a ref or cursor the full history of HEAD is walked in committer
// time order. Otherwise only first parents are followed, starting at the
// ref's commit or just past the cursor, so merged-in branches are not shown.
func (p *Pager) Page(req Request) (*Page, error) {
	size := p.pageSize(req.PageSize)

	var (
		commits []*object.Commit
		err     error
	)
	switch {
	case req.Cursor != "":
		commits, err = p.afterCursor(req.Cursor, size)
	case req.Ref != "":
		var start *object.Commit
		start, err = p.repo.Resolve(req.Ref)
		if err == nil {
			commits, err = p.firstParents(start, size)
		}
	default:
		commits, err = p.revwalk(size)
	}
	if err != nil {
		return nil, err
	}

	page := &Page{Commits: make([]git.Commit, 0, len(commits))}
	for _, c := range commits {
		page.Commits = append(page.Commits, git.NewCommit(c))
	}

	if len(commits) == 0 {
		return page, nil
	}

	last, err := p.repo.CommitObject(commits[len(commits)-1].Hash)
	if err != nil {
		return nil, err
	}
	if last.NumParents() > 0 {
		page.HasMore = true
		page.NextCursor = last.Hash.String()
	}

	return page, nil
}

func (p *Pager) pageSize(requested int) int {
	if requested <= 0 {
		return DefaultPageSize
	}
	if requested > p.maxPageSize {
		return p.maxPageSize
	}
	return requested
}

func (p *Pager) revwalk(size int) ([]*object.Commit, error) {
	head, err := p.repo.HeadCommit()
	if err != nil {
		if errors.Is(err, git.ErrRefNotFound) {
			return nil, nil
		}
		return nil, err
	}

	iter, err := p.repo.Log(head.Hash)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	commits := make([]*object.Commit, 0, size)
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		if len(commits) == size {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &git.ObjectReadError{Op: "walk history", Err: err}
	}
	return commits, nil
}

func (p *Pager) afterCursor(cursor string, size int) ([]*object.Commit, error) {
	if !plumbing.IsHash(cursor) {
		return nil, git.ErrRefNotFound
	}

	c, err := p.repo.CommitObject(plumbing.NewHash(cursor))
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, git.ErrRefNotFound
		}
		return nil, err
	}
	if c.NumParents() == 0 {
		return nil, nil
	}

	parent, err := p.repo.CommitObject(c.ParentHashes[0])
	if err != nil {
		return nil, err
	}
	return p.firstParents(parent, size)
}

// firstParents collects up to size commits following first parents only.
func (p *Pager) firstParents(start *object.Commit, size int) ([]*object.Commit, error) {
	commits := make([]*object.Commit, 0, size)
	for c := start; ; {
		commits = append(commits, c)
		if len(commits) == size || c.NumParents() == 0 {
			return commits, nil
		}

		next, err := p.repo.CommitObject(c.ParentHashes[0])
		if err != nil {
			return nil, err
		}
		c = next
	}
}
