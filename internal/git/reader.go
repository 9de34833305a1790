package git

import (
	"errors"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is a read handle on a Git repository. Open one per request;
// the handle holds no mutable state of its own.
type Repository struct {
	path string
	repo *gogit.Repository
}

// Open opens the repository at path. Both bare and non-bare layouts are accepted.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, repo: repo}, nil
}

// NewRepository wraps an already opened go-git repository.
func NewRepository(path string, repo *gogit.Repository) *Repository {
	return &Repository{path: path, repo: repo}
}

// Path returns the filesystem path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// HeadCommit returns the commit HEAD points to.
// An unborn HEAD (empty repository) yields ErrRefNotFound.
func (r *Repository) HeadCommit() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrRefNotFound
		}
		return nil, readErr("read HEAD", err)
	}
	return r.CommitObject(ref.Hash())
}

// CommitObject looks up a commit by id.
func (r *Repository) CommitObject(h plumbing.Hash) (*object.Commit, error) {
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, readErr("read commit "+h.String(), err)
	}
	return c, nil
}

// TreeObject looks up a tree by id.
func (r *Repository) TreeObject(h plumbing.Hash) (*object.Tree, error) {
	t, err := r.repo.TreeObject(h)
	if err != nil {
		return nil, readErr("read tree "+h.String(), err)
	}
	return t, nil
}

// BlobObject looks up a blob by id.
func (r *Repository) BlobObject(h plumbing.Hash) (*object.Blob, error) {
	b, err := r.repo.BlobObject(h)
	if err != nil {
		return nil, readErr("read blob "+h.String(), err)
	}
	return b, nil
}

// Log iterates history from a commit in reverse committer-time order.
func (r *Repository) Log(from plumbing.Hash) (object.CommitIter, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{From: from, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, readErr("walk history", err)
	}
	return iter, nil
}
