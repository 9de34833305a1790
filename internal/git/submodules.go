package git

import (
	"errors"

	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const gitmodulesFile = ".gitmodules"

// Submodules is the submodule registry declared in a repository's root
// .gitmodules. Lookups accept either a submodule name or its path.
type Submodules struct {
	names map[string]struct{}
	paths map[string]struct{}
}

// NewSubmodules builds a registry from parsed module declarations.
func NewSubmodules(modules *gitconfig.Modules) *Submodules {
	s := &Submodules{
		names: make(map[string]struct{}),
		paths: make(map[string]struct{}),
	}
	if modules == nil {
		return s
	}
	for name, m := range modules.Submodules {
		s.names[name] = struct{}{}
		if m.Path != "" {
			s.paths[m.Path] = struct{}{}
		}
	}
	return s
}

// Contains reports whether key names a registered submodule.
func (s *Submodules) Contains(key string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.paths[key]; ok {
		return true
	}
	_, ok := s.names[key]
	return ok
}

// Len returns the number of registered submodules.
func (s *Submodules) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Submodules reads the registry from the commit's root tree. A missing or
// malformed .gitmodules yields an empty registry rather than an error.
func (r *Repository) Submodules(c *object.Commit) (*Submodules, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, readErr("read tree of "+c.Hash.String(), err)
	}

	f, err := tree.File(gitmodulesFile)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrEntryNotFound) {
			return NewSubmodules(nil), nil
		}
		return nil, readErr("read "+gitmodulesFile, err)
	}

	content, err := f.Contents()
	if err != nil {
		return nil, readErr("read "+gitmodulesFile, err)
	}

	modules := gitconfig.NewModules()
	if err := modules.Unmarshal([]byte(content)); err != nil {
		return NewSubmodules(nil), nil
	}
	return NewSubmodules(modules), nil
}
