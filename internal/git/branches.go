package git

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// Branches lists local branches followed by remote-tracking branches,
// each group sorted by name. Symbolic remote HEADs are skipped.
func (r *Repository) Branches() ([]Branch, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, readErr("list references", err)
	}
	defer refs.Close()

	var branches []Branch
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		name := ref.Name()
		switch {
		case name.IsBranch():
			branches = append(branches, Branch{Name: name.Short(), Kind: BranchKindLocal, Target: ref.Hash().String()})
		case name.IsRemote():
			branches = append(branches, Branch{Name: name.Short(), Kind: BranchKindRemote, Target: ref.Hash().String()})
		}
		return nil
	})
	if err != nil {
		return nil, readErr("list references", err)
	}

	sort.SliceStable(branches, func(i, j int) bool {
		if branches[i].Kind != branches[j].Kind {
			return branches[i].Kind < branches[j].Kind
		}
		return branches[i].Name < branches[j].Name
	})

	return branches, nil
}
