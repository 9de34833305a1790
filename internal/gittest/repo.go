// Package gittest builds throwaway repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/masmgr/gecko-go/internal/git"
)

// Repo is a non-bare repository rooted in a test temp dir.
type Repo struct {
	t     testing.TB
	Dir   string
	Repo  *gogit.Repository
	wt    *gogit.Worktree
	clock time.Time
}

// New initializes an empty repository.
func New(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	return &Repo{
		t:     t,
		Dir:   dir,
		Repo:  repo,
		wt:    wt,
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("", 2*60*60)),
	}
}

// Write creates or replaces a file and stages it.
func (r *Repo) Write(rel, content string) {
	r.t.Helper()
	r.WriteBytes(rel, []byte(content))
}

// WriteBytes creates or replaces a file with raw content and stages it.
func (r *Repo) WriteBytes(rel string, content []byte) {
	r.t.Helper()

	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add(%s): %v", rel, err)
	}
}

// Remove deletes a file and stages the removal.
func (r *Repo) Remove(rel string) {
	r.t.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.t.Fatalf("Remove(%s): %v", rel, err)
	}
}

// Commit records the staged changes. Each commit is one minute after the previous.
func (r *Repo) Commit(msg string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()

	r.clock = r.clock.Add(time.Minute)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: r.clock}

	opts := &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	}
	if len(parents) > 0 {
		head, err := r.Repo.Head()
		if err != nil {
			r.t.Fatalf("Head: %v", err)
		}
		opts.Parents = append([]plumbing.Hash{head.Hash()}, parents...)
	}

	h, err := r.wt.Commit(msg, opts)
	if err != nil {
		r.t.Fatalf("Commit(%q): %v", msg, err)
	}
	return h
}

// Linear creates n commits touching the same file and returns their ids oldest first.
func (r *Repo) Linear(n int) []plumbing.Hash {
	r.t.Helper()

	hashes := make([]plumbing.Hash, 0, n)
	for i := 0; i < n; i++ {
		r.Write("log.txt", strconv.Itoa(i)+"\n")
		hashes = append(hashes, r.Commit("commit "+strconv.Itoa(i)))
	}
	return hashes
}

// SetBranch points refs/heads/name at h without touching the worktree.
func (r *Repo) SetBranch(name string, h plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), h)
	if err := r.Repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("SetReference(%s): %v", name, err)
	}
}

// Checkout switches the worktree to a branch, optionally creating it.
func (r *Repo) Checkout(name string, create bool) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", name, err)
	}
}

// Open returns a fresh read handle on the repository.
func (r *Repo) Open() *git.Repository {
	r.t.Helper()
	repo, err := git.Open(r.Dir)
	if err != nil {
		r.t.Fatalf("Open: %v", err)
	}
	return repo
}
