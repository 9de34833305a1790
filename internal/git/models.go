package git

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit represents the commit metadata exposed to views.
type Commit struct {
	ID            string
	Summary       string
	Message       string
	Author        AuthorInfo
	When          time.Time
	OffsetMinutes int
	ParentIDs     []string
}

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.ParentIDs) == 0
}

// NewCommit converts a go-git commit into a Commit.
func NewCommit(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}

	_, offset := c.Author.When.Zone()

	return Commit{
		ID:            c.Hash.String(),
		Summary:       summary(c.Message),
		Message:       c.Message,
		Author:        AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		When:          c.Author.When,
		OffsetMinutes: offset / 60,
		ParentIDs:     parents,
	}
}

// summary extracts the first paragraph of a commit message, joined onto one line.
func summary(message string) string {
	message = strings.TrimLeft(message, "\n")
	if idx := strings.Index(message, "\n\n"); idx != -1 {
		message = message[:idx]
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(message, "\n", " ")), " ")
}

// EntryKind classifies a tree entry.
type EntryKind int

const (
	EntryKindTree EntryKind = iota
	EntryKindBlob
	EntryKindSubmodule
)

// String returns a string representation of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryKindTree:
		return "tree"
	case EntryKindBlob:
		return "blob"
	case EntryKindSubmodule:
		return "submodule"
	default:
		return "unknown"
	}
}

// IsContainer reports whether the kind sorts ahead of blobs in listings.
func (k EntryKind) IsContainer() bool {
	return k == EntryKindTree || k == EntryKindSubmodule
}

// TreeEntry is a single child of a directory listing.
type TreeEntry struct {
	Name string
	Kind EntryKind
	ID   string
}

// BranchKind distinguishes local and remote-tracking branches.
type BranchKind int

const (
	BranchKindLocal BranchKind = iota
	BranchKindRemote
)

// String returns a string representation of the branch kind.
func (k BranchKind) String() string {
	if k == BranchKindRemote {
		return "remote"
	}
	return "local"
}

// Branch is a named branch and the commit it points to.
type Branch struct {
	Name   string
	Kind   BranchKind
	Target string
}
