package git

import (
	"errors"
	"regexp"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// objectIDPattern matches full and abbreviated hex object ids.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{4,40}$`)

// Resolve maps a reference string to a commit.
//
// A local branch named ref is tried first, so a branch whose name happens
// to be a valid hex object id shadows the commit with that id. Only when no
// such branch exists is ref parsed as a (possibly abbreviated) object id.
// An empty ref or "HEAD" resolves the current HEAD.
func (r *Repository) Resolve(ref string) (*object.Commit, error) {
	if ref == "" || ref == plumbing.HEAD.String() {
		return r.HeadCommit()
	}

	branch, err := r.repo.Reference(plumbing.NewBranchReferenceName(ref), true)
	switch {
	case err == nil:
		return r.CommitObject(branch.Hash())
	case !errors.Is(err, plumbing.ErrReferenceNotFound):
		return nil, readErr("read branch "+ref, err)
	}

	if !objectIDPattern.MatchString(ref) {
		return nil, ErrRefNotFound
	}

	hash := plumbing.NewHash(ref)
	if len(ref) < 40 {
		resolved, err := r.repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return nil, ErrRefNotFound
		}
		hash = *resolved
	}

	c, err := r.repo.CommitObject(hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) || errors.Is(err, object.ErrUnsupportedObject) {
			return nil, ErrRefNotFound
		}
		return nil, readErr("read commit "+hash.String(), err)
	}
	return c, nil
}
