package diff

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/masmgr/gecko-go/internal/git"
)

// NoLine marks a line number absent on one side of the diff.
const NoLine = -1

// Line is one line of a file diff.
type Line struct {
	OldNumber int
	NewNumber int
	Text      string
	Origin    Origin
}

// Stats counts changed lines in one file.
type Stats struct {
	Insertions int
	Deletions  int
}

// Summary is the commit-level total across all files.
type Summary struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

// File is the diff of a single path.
type File struct {
	Path        string
	Change      ChangeKind
	Stats       Stats
	Fingerprint string
	Lines       []Line
}

// Result is the diff of a commit against its first parent.
type Result struct {
	Commit  git.Commit
	Files   []File
	Summary Summary
}

// Options configures a diff operation.
type Options struct {
	ContextLines      int
	LegacyFingerprint bool
	Include           []string
	Exclude           []string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{ContextLines: DefaultContextLines}
}

// Engine computes commit diffs.
type Engine struct {
	repo git.ObjectGraph
	opts Options
}

// NewEngine creates a diff engine reading from repo.
func NewEngine(repo git.ObjectGraph, opts Options) *Engine {
	return &Engine{repo: repo, opts: opts}
}

// Diff compares the commit named by id with its first parent. Root commits
// are compared with the empty tree, so every file shows up as added.
func (e *Engine) Diff(ctx context.Context, id string) (*Result, error) {
	c, err := e.repo.Resolve(id)
	if err != nil {
		return nil, err
	}

	to, err := e.repo.TreeObject(c.TreeHash)
	if err != nil {
		return nil, err
	}

	var from *object.Tree
	if c.NumParents() > 0 {
		parent, err := e.repo.CommitObject(c.ParentHashes[0])
		if err != nil {
			return nil, err
		}
		if from, err = e.repo.TreeObject(parent.TreeHash); err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, from, to, &object.DiffTreeOptions{DetectRenames: false})
	if err != nil {
		return nil, &git.ObjectReadError{Op: "diff " + c.Hash.String(), Err: err}
	}
	changes = e.filter(changes)

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, &git.ObjectReadError{Op: "patch " + c.Hash.String(), Err: err}
	}

	filePatches := patch.FilePatches()
	if len(filePatches) != len(changes) {
		return nil, fmt.Errorf("patch has %d files for %d changes", len(filePatches), len(changes))
	}

	byPath := make(map[string]*File, len(changes))
	for i, fp := range filePatches {
		f, err := e.file(changes[i], fp)
		if err != nil {
			return nil, err
		}
		byPath[f.Path] = f
	}

	result := &Result{
		Commit:  git.NewCommit(c),
		Files:   make([]File, 0, len(byPath)),
		Summary: summarize(len(filePatches), patch.Stats()),
	}
	for _, f := range byPath {
		result.Files = append(result.Files, *f)
	}
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	return result, nil
}

func (e *Engine) filter(changes object.Changes) object.Changes {
	if len(e.opts.Include) == 0 && len(e.opts.Exclude) == 0 {
		return changes
	}
	kept := changes[:0:0]
	for _, ch := range changes {
		if e.matchesFilters(changePath(ch)) {
			kept = append(kept, ch)
		}
	}
	return kept
}

// matchesFilters checks if a path matches the include/exclude filters.
func (e *Engine) matchesFilters(path string) bool {
	for _, pattern := range e.opts.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	if len(e.opts.Include) == 0 {
		return true
	}

	for _, pattern := range e.opts.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func changePath(ch *object.Change) string {
	if ch.To.Name != "" {
		return ch.To.Name
	}
	return ch.From.Name
}

func (e *Engine) file(ch *object.Change, fp fdiff.FilePatch) (*File, error) {
	action, err := ch.Action()
	if err != nil {
		return nil, &git.ObjectReadError{Op: "classify change", Err: err}
	}

	f := &File{Path: changePath(ch)}
	switch action {
	case merkletrie.Insert:
		f.Change = ChangeKindAdded
	case merkletrie.Delete:
		f.Change = ChangeKindDeleted
	default:
		f.Change = ChangeKindModified
	}

	from, to := fp.Files()
	f.emit('F', NoLine, NoLine, fileHeader(f.Path, from, to))

	switch {
	case fp.IsBinary() && !hasContentChange(from, to):
		// Empty files and mode-only changes have no chunks either.
	case fp.IsBinary():
		f.emit('B', NoLine, NoLine, binaryLine(f.Path, from, to))
	default:
		ops := expandChunks(fp.Chunks())
		for _, h := range groupHunks(ops, e.opts.ContextLines) {
			f.emit('H', NoLine, NoLine, h.header(ops))
			for _, o := range ops[h.start:h.end] {
				line, eof := o.code()
				f.emit(line, lineNo(o.oldNo), lineNo(o.newNo), o.text)
				if o.noNewline {
					f.emit(eof, NoLine, NoLine, noNewlineMarker)
				}
			}
		}
	}

	if e.opts.LegacyFingerprint {
		f.Fingerprint = pathFingerprint(f.Path)
	} else {
		f.Fingerprint = contentFingerprint(f.Lines)
	}
	return f, nil
}

// emit appends a line. Hunk headers get a two-space display prefix; only
// additions and deletions move the counters.
func (f *File) emit(code byte, oldNo, newNo int, text string) {
	origin, _ := ParseOrigin(code)
	switch origin {
	case OriginHunkHeader:
		text = "  " + text
	case OriginAddition:
		f.Stats.Insertions++
	case OriginDeletion:
		f.Stats.Deletions++
	}
	f.Lines = append(f.Lines, Line{OldNumber: oldNo, NewNumber: newNo, Text: text, Origin: origin})
}

func lineNo(n int) int {
	if n == 0 {
		return NoLine
	}
	return n
}

func fileHeader(path string, from, to fdiff.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s", path, path)

	switch {
	case from == nil && to != nil:
		fmt.Fprintf(&b, "\nnew file mode %s", modeString(to.Mode()))
		fmt.Fprintf(&b, "\nindex %s..%s", zeroHash, shortHash(to))
	case to == nil && from != nil:
		fmt.Fprintf(&b, "\ndeleted file mode %s", modeString(from.Mode()))
		fmt.Fprintf(&b, "\nindex %s..%s", shortHash(from), zeroHash)
	case from != nil && to != nil:
		if from.Mode() != to.Mode() {
			fmt.Fprintf(&b, "\nold mode %s\nnew mode %s", modeString(from.Mode()), modeString(to.Mode()))
			fmt.Fprintf(&b, "\nindex %s..%s", shortHash(from), shortHash(to))
		} else {
			fmt.Fprintf(&b, "\nindex %s..%s %s", shortHash(from), shortHash(to), modeString(to.Mode()))
		}
	}

	fmt.Fprintf(&b, "\n--- %s\n+++ %s", side("a", path, from), side("b", path, to))
	return b.String()
}

func binaryLine(path string, from, to fdiff.File) string {
	return fmt.Sprintf("Binary files %s and %s differ", side("a", path, from), side("b", path, to))
}

const zeroHash = "0000000"

var emptyBlobHash = plumbing.ComputeHash(plumbing.BlobObject, nil)

// hasContentChange reports whether the two sides differ in content. A
// missing side counts as empty.
func hasContentChange(from, to fdiff.File) bool {
	return blobHash(from) != blobHash(to)
}

func blobHash(f fdiff.File) plumbing.Hash {
	if f == nil {
		return emptyBlobHash
	}
	return f.Hash()
}

func shortHash(f fdiff.File) string {
	return f.Hash().String()[:7]
}

func modeString(m filemode.FileMode) string {
	return fmt.Sprintf("%o", uint32(m))
}

func side(prefix, path string, f fdiff.File) string {
	if f == nil {
		return "/dev/null"
	}
	return prefix + "/" + path
}

// summarize counts every changed file; line totals come from the patch stats,
// which leave out binary and empty files.
func summarize(files int, stats object.FileStats) Summary {
	s := Summary{FilesChanged: files}
	for _, st := range stats {
		s.Insertions += st.Addition
		s.Deletions += st.Deletion
	}
	return s
}
