package git

import (
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// kindOf classifies a tree entry by its own mode: directories are trees and
// everything else, gitlinks included, is a blob. Only the submodule registry
// makes an entry a submodule.
func kindOf(mode filemode.FileMode) EntryKind {
	if mode == filemode.Dir {
		return EntryKindTree
	}
	return EntryKindBlob
}

// ClassifyEntry builds a TreeEntry for a child of the directory at dir,
// overriding its kind to Submodule when the registry knows the child's path.
func ClassifyEntry(dir string, e object.TreeEntry, modules *Submodules) TreeEntry {
	kind := kindOf(e.Mode)
	if modules.Contains(JoinPath(dir, e.Name)) {
		kind = EntryKindSubmodule
	}
	return TreeEntry{Name: e.Name, Kind: kind, ID: e.Hash.String()}
}

// JoinPath joins a directory path and an entry name with '/'.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
