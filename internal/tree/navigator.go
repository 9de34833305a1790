package tree

import (
	"errors"
	"io"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/gecko-go/internal/git"
)

// Result is what a path resolves to: a directory listing or a single blob.
type Result struct {
	Commit     git.Commit
	Path       string
	Breadcrumb Breadcrumb

	// Set for directories.
	Entries []git.TreeEntry
	Readme  *Readme

	// Set for files.
	Blob     *object.Blob
	BlobName string
}

// IsBlob reports whether the path resolved to a file.
func (r *Result) IsBlob() bool {
	return r.Blob != nil
}

// Navigator resolves paths inside commit trees.
type Navigator struct {
	repo git.ObjectGraph
}

// NewNavigator creates a navigator reading from repo.
func NewNavigator(repo git.ObjectGraph) *Navigator {
	return &Navigator{repo: repo}
}

// Browse resolves ref and then path within the resolved commit.
func (n *Navigator) Browse(ref, path string) (*Result, error) {
	c, err := n.repo.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return n.Navigate(c, path)
}

// Navigate resolves path within the commit's tree. An empty path lists the root.
func (n *Navigator) Navigate(c *object.Commit, path string) (*Result, error) {
	path = CleanPath(path)

	root, err := n.repo.TreeObject(c.TreeHash)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Commit:     git.NewCommit(c),
		Path:       path,
		Breadcrumb: NewBreadcrumb(path),
	}

	if path == "" {
		return n.list(c, root, result)
	}

	entry, err := root.FindEntry(path)
	if err != nil {
		if errors.Is(err, object.ErrEntryNotFound) ||
			errors.Is(err, object.ErrDirectoryNotFound) ||
			errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &git.PathNotFoundError{Path: path}
		}
		return nil, &git.ObjectReadError{Op: "find " + path, Err: err}
	}

	switch entry.Mode {
	case filemode.Dir:
		sub, err := n.repo.TreeObject(entry.Hash)
		if err != nil {
			return nil, err
		}
		return n.list(c, sub, result)
	case filemode.Submodule:
		// The gitlink target lives in another repository.
		return nil, &git.PathNotFoundError{Path: path}
	}

	blob, err := n.repo.BlobObject(entry.Hash)
	if err != nil {
		return nil, err
	}
	result.Blob = blob
	result.BlobName = entry.Name
	return result, nil
}

func (n *Navigator) list(c *object.Commit, t *object.Tree, result *Result) (*Result, error) {
	modules, err := n.repo.Submodules(c)
	if err != nil {
		return nil, err
	}

	entries := make([]git.TreeEntry, 0, len(t.Entries))
	var readme *object.TreeEntry
	for i := range t.Entries {
		e := t.Entries[i]
		entries = append(entries, git.ClassifyEntry(result.Path, e, modules))

		if readme == nil && e.Mode.IsFile() && IsReadme(e.Name) {
			readme = &t.Entries[i]
		}
	}

	result.Entries = Partition(entries)

	if readme != nil {
		r, err := n.renderReadme(readme)
		if err != nil {
			return nil, err
		}
		result.Readme = r
	}

	return result, nil
}

func (n *Navigator) renderReadme(e *object.TreeEntry) (*Readme, error) {
	blob, err := n.repo.BlobObject(e.Hash)
	if err != nil {
		return nil, err
	}

	rd, err := blob.Reader()
	if err != nil {
		return nil, &git.ObjectReadError{Op: "read " + e.Name, Err: err}
	}
	defer rd.Close()

	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, &git.ObjectReadError{Op: "read " + e.Name, Err: err}
	}

	return newReadme(e.Name, content), nil
}

// Partition moves trees and submodules ahead of blobs, keeping the
// relative order inside each group.
func Partition(entries []git.TreeEntry) []git.TreeEntry {
	out := make([]git.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind.IsContainer() {
			out = append(out, e)
		}
	}
	for _, e := range entries {
		if !e.Kind.IsContainer() {
			out = append(out, e)
		}
	}
	return out
}

// CleanPath trims surrounding slashes and drops empty segments.
func CleanPath(p string) string {
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}
