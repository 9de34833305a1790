package tree_test

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/gittest"
	"github.com/masmgr/gecko-go/internal/tree"
)

func newFixture(t *testing.T) *gittest.Repo {
	t.Helper()
	r := gittest.New(t)
	r.Write("README.md", "# Project\n\nHello.\n")
	r.Write("b.txt", "b\n")
	r.Write("a/x.go", "package a\n")
	r.Write("c/y.go", "package c\n")
	r.Write("c/deep/README.markdown", "## Deep\n")
	r.Write("c/deep/notes.txt", "notes\n")
	r.Write("z.bin", "\x00\x01\x02")
	r.Commit("init")
	return r
}

func names(entries []git.TreeEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestNavigate_RootListing(t *testing.T) {
	r := newFixture(t)
	nav := tree.NewNavigator(r.Open())

	res, err := nav.Browse("master", "")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if res.IsBlob() {
		t.Fatal("root resolved to a blob")
	}

	got := strings.Join(names(res.Entries), ",")
	expected := "a,c,README.md,b.txt,z.bin"
	if got != expected {
		t.Fatalf("entries = %s, expected %s", got, expected)
	}

	if res.Readme == nil {
		t.Fatal("expected README to be detected")
	}
	if res.Readme.Title != "README.md" {
		t.Errorf("Readme.Title = %q, expected README.md", res.Readme.Title)
	}
	if !strings.Contains(res.Readme.HTML, "<h1") {
		t.Errorf("Readme.HTML = %q, expected rendered heading", res.Readme.HTML)
	}
	if len(res.Breadcrumb) != 0 {
		t.Errorf("Breadcrumb = %v, expected empty at root", res.Breadcrumb)
	}
	if res.Commit.Summary != "init" {
		t.Errorf("Commit.Summary = %q, expected init", res.Commit.Summary)
	}
}

func TestNavigate_NestedListing(t *testing.T) {
	r := newFixture(t)
	nav := tree.NewNavigator(r.Open())

	res, err := nav.Browse("master", "/c/deep/")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if res.Path != "c/deep" {
		t.Errorf("Path = %q, expected c/deep", res.Path)
	}
	if got := strings.Join(names(res.Entries), ","); got != "README.markdown,notes.txt" {
		t.Errorf("entries = %s", got)
	}
	if res.Readme == nil || !strings.Contains(res.Readme.HTML, "<h2") {
		t.Errorf("expected README.markdown to render, got %+v", res.Readme)
	}

	expected := tree.Breadcrumb{{Label: "c", Link: "c"}, {Label: "deep"}}
	if len(res.Breadcrumb) != len(expected) {
		t.Fatalf("Breadcrumb = %v, expected %v", res.Breadcrumb, expected)
	}
	for i := range expected {
		if res.Breadcrumb[i] != expected[i] {
			t.Errorf("Breadcrumb[%d] = %+v, expected %+v", i, res.Breadcrumb[i], expected[i])
		}
	}
}

func TestNavigate_ReadmePolicy(t *testing.T) {
	r := gittest.New(t)
	r.Write("README", "plain\n")
	r.Write("readme.md", "lowercase\n")
	r.Write("README.txt", "text\n")
	r.Commit("init")

	res, err := tree.NewNavigator(r.Open()).Browse("", "")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if res.Readme != nil {
		t.Fatalf("Readme = %+v, expected none for non-markdown or lowercase names", res.Readme)
	}
}

func TestNavigate_BlobRoundTrip(t *testing.T) {
	r := newFixture(t)
	nav := tree.NewNavigator(r.Open())

	for _, p := range []string{"b.txt", "a/x.go", "c/deep/notes.txt"} {
		res, err := nav.Browse("master", p)
		if err != nil {
			t.Fatalf("Browse(%s): %v", p, err)
		}
		if !res.IsBlob() {
			t.Fatalf("Browse(%s) did not resolve to a blob", p)
		}
		if res.BlobName != path.Base(p) {
			t.Errorf("BlobName = %q, expected %q", res.BlobName, path.Base(p))
		}
		if res.Breadcrumb.Current() != path.Base(p) {
			t.Errorf("Breadcrumb.Current() = %q, expected %q", res.Breadcrumb.Current(), path.Base(p))
		}

		dir := path.Dir(p)
		if dir == "." {
			dir = ""
		}
		parent, err := nav.Browse("master", dir)
		if err != nil {
			t.Fatalf("Browse(%s): %v", dir, err)
		}
		found := false
		for _, e := range parent.Entries {
			if e.Name == path.Base(p) && e.Kind == git.EntryKindBlob && e.ID == res.Blob.Hash.String() {
				found = true
			}
		}
		if !found {
			t.Errorf("listing of %q has no entry %s", dir, path.Base(p))
		}
	}
}

func TestNavigate_PathNotFound(t *testing.T) {
	r := newFixture(t)
	nav := tree.NewNavigator(r.Open())

	for _, p := range []string{"missing.txt", "a/missing.go", "nope/deeper/file", "b.txt/child"} {
		_, err := nav.Browse("master", p)
		var notFound *git.PathNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Browse(%s) error = %v, expected PathNotFoundError", p, err)
		}
		if notFound.Path != p {
			t.Errorf("PathNotFoundError.Path = %q, expected %q", notFound.Path, p)
		}
	}
}

func TestNavigate_RefNotFound(t *testing.T) {
	r := newFixture(t)
	_, err := tree.NewNavigator(r.Open()).Browse("no-such-branch", "")
	if !errors.Is(err, git.ErrRefNotFound) {
		t.Fatalf("error = %v, expected ErrRefNotFound", err)
	}
}

func TestNavigate_SubmoduleClassification(t *testing.T) {
	r := gittest.New(t)
	r.Write(".gitmodules", `[submodule "lib"]
	path = lib
	url = https://example.com/lib.git
`)
	r.Write("lib/placeholder", "x\n")
	r.Write("src/lib/code.go", "package lib\n")
	r.Write("main.go", "package main\n")
	r.Commit("init")
	nav := tree.NewNavigator(r.Open())

	root, err := nav.Browse("", "")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	kinds := map[string]git.EntryKind{}
	for _, e := range root.Entries {
		kinds[e.Name] = e.Kind
	}
	if kinds["lib"] != git.EntryKindSubmodule {
		t.Errorf("lib kind = %v, expected submodule", kinds["lib"])
	}
	if kinds["src"] != git.EntryKindTree {
		t.Errorf("src kind = %v, expected tree", kinds["src"])
	}

	nested, err := nav.Browse("", "src")
	if err != nil {
		t.Fatalf("Browse(src): %v", err)
	}
	if nested.Entries[0].Kind != git.EntryKindTree {
		t.Errorf("src/lib kind = %v, expected tree", nested.Entries[0].Kind)
	}
}

func TestBlobContentMatches(t *testing.T) {
	r := newFixture(t)
	res, err := tree.NewNavigator(r.Open()).Browse("master", "a/x.go")
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	rd, err := res.Blob.Reader()
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	defer rd.Close()
	b, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(b) != "package a\n" {
		t.Errorf("content = %q", b)
	}
}

func TestPartition_StableInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		entries := make([]git.TreeEntry, n)
		for i := range entries {
			kind := git.EntryKind(rapid.IntRange(0, 2).Draw(t, "kind"))
			entries[i] = git.TreeEntry{Name: fmt.Sprintf("e%02d", i), Kind: kind}
		}

		out := tree.Partition(entries)
		if len(out) != len(entries) {
			t.Fatalf("len = %d, expected %d", len(out), len(entries))
		}

		seenBlob := false
		lastContainer, lastBlob := -1, -1
		for _, e := range out {
			var idx int
			fmt.Sscanf(e.Name, "e%02d", &idx)
			if e.Kind.IsContainer() {
				if seenBlob {
					t.Fatalf("container %s after a blob", e.Name)
				}
				if idx < lastContainer {
					t.Fatalf("container order not preserved at %s", e.Name)
				}
				lastContainer = idx
			} else {
				seenBlob = true
				if idx < lastBlob {
					t.Fatalf("blob order not preserved at %s", e.Name)
				}
				lastBlob = idx
			}
		}
	})
}

func TestIsReadme(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"README.md", true},
		{"README.markdown", true},
		{"README", false},
		{"README.txt", false},
		{"readme.md", false},
		{"README.MD", false},
		{"README.tar.md", false},
		{".md", false},
	}

	for _, tt := range tests {
		if got := tree.IsReadme(tt.name); got != tt.expected {
			t.Errorf("IsReadme(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestCleanPath(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"/":        "",
		"a/b":      "a/b",
		"/a//b/":   "a/b",
		"dir/file": "dir/file",
	}
	for in, expected := range tests {
		if got := tree.CleanPath(in); got != expected {
			t.Errorf("CleanPath(%q) = %q, expected %q", in, got, expected)
		}
	}
}
