package git

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ObjectGraph defines the read-only view of a repository used by the browser.
// Every method is safe to call from concurrent request workers.
type ObjectGraph interface {
	// Resolve maps a branch name or object id to a commit.
	Resolve(ref string) (*object.Commit, error)
	// HeadCommit returns the commit HEAD points to.
	HeadCommit() (*object.Commit, error)
	// CommitObject looks up a commit by id.
	CommitObject(h plumbing.Hash) (*object.Commit, error)
	// TreeObject looks up a tree by id.
	TreeObject(h plumbing.Hash) (*object.Tree, error)
	// BlobObject looks up a blob by id.
	BlobObject(h plumbing.Hash) (*object.Blob, error)
	// Submodules returns the submodule registry recorded in the commit's root tree.
	Submodules(c *object.Commit) (*Submodules, error)
	// Log iterates history from a commit in reverse committer-time order.
	Log(from plumbing.Hash) (object.CommitIter, error)
	// Branches lists local and remote-tracking branches.
	Branches() ([]Branch, error)
}

// Compile-time interface conformance check.
var _ ObjectGraph = (*Repository)(nil)
