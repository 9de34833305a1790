package output

import (
	"time"

	"github.com/masmgr/gecko-go/internal/blob"
	"github.com/masmgr/gecko-go/internal/diff"
	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/history"
	"github.com/masmgr/gecko-go/internal/timefmt"
	"github.com/masmgr/gecko-go/internal/tree"
)

// JSONCommit is the JSON output structure for a commit.
type JSONCommit struct {
	ID       string     `json:"id"`
	ShortID  string     `json:"shortId"`
	Summary  string     `json:"summary"`
	Message  string     `json:"message"`
	Author   JSONAuthor `json:"author"`
	Date     string     `json:"date"`
	Display  string     `json:"dateDisplay"`
	Relative string     `json:"relative"`
	Parents  []string   `json:"parents"`
}

// JSONAuthor is the JSON output structure for a commit author.
type JSONAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// JSONEntry is one tree entry.
type JSONEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// JSONCrumb is one breadcrumb segment.
type JSONCrumb struct {
	Label string `json:"label"`
	Link  string `json:"link,omitempty"`
}

// JSONReadme is a rendered README.
type JSONReadme struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// JSONListing is the JSON output structure for a directory listing.
type JSONListing struct {
	Ref        string      `json:"ref"`
	Path       string      `json:"path"`
	Commit     JSONCommit  `json:"commit"`
	Breadcrumb []JSONCrumb `json:"breadcrumb"`
	Entries    []JSONEntry `json:"entries"`
	Readme     *JSONReadme `json:"readme,omitempty"`
}

// JSONLine is one numbered line of a text blob.
type JSONLine struct {
	Number int    `json:"number"`
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

// JSONBlob is the JSON output structure for a rendered file.
type JSONBlob struct {
	Ref        string      `json:"ref"`
	Path       string      `json:"path"`
	Commit     JSONCommit  `json:"commit"`
	Breadcrumb []JSONCrumb `json:"breadcrumb"`
	Kind       string      `json:"kind"`
	Filename   string      `json:"filename"`
	Size       int64       `json:"size"`
	HumanSize  string      `json:"humanSize"`
	Language   string      `json:"language,omitempty"`
	RawLink    string      `json:"rawLink,omitempty"`
	HTML       string      `json:"html,omitempty"`
	Lines      []JSONLine  `json:"lines,omitempty"`
}

// JSONHistory is the JSON output structure for a page of commits.
type JSONHistory struct {
	Ref        string       `json:"ref,omitempty"`
	Commits    []JSONCommit `json:"commits"`
	HasMore    bool         `json:"hasMore"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// JSONDiffLine is one line of a file diff.
type JSONDiffLine struct {
	Old    int    `json:"old"`
	New    int    `json:"new"`
	Origin string `json:"origin"`
	Text   string `json:"text"`
}

// JSONDiffFile is the diff of one path.
type JSONDiffFile struct {
	Path        string         `json:"path"`
	Change      string         `json:"change"`
	Insertions  int            `json:"insertions"`
	Deletions   int            `json:"deletions"`
	Fingerprint string         `json:"fingerprint"`
	Lines       []JSONDiffLine `json:"lines"`
}

// JSONDiffSummary is the aggregate of a commit diff.
type JSONDiffSummary struct {
	FilesChanged int `json:"filesChanged"`
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
}

// JSONDiff is the JSON output structure for a commit diff.
type JSONDiff struct {
	Commit  JSONCommit      `json:"commit"`
	Summary JSONDiffSummary `json:"summary"`
	Files   []JSONDiffFile  `json:"files"`
}

// JSONBranch is one branch.
type JSONBranch struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// JSONBranches is the JSON output structure for the branch list.
type JSONBranches struct {
	Branches []JSONBranch `json:"branches"`
}

// NewJSONCommit converts a commit. now anchors the relative date.
func NewJSONCommit(c git.Commit, now time.Time) JSONCommit {
	parents := c.ParentIDs
	if parents == nil {
		parents = []string{}
	}
	return JSONCommit{
		ID:       c.ID,
		ShortID:  c.ShortID(),
		Summary:  c.Summary,
		Message:  c.Message,
		Author:   JSONAuthor{Name: c.Author.Name, Email: c.Author.Email},
		Date:     c.When.Format(time.RFC3339),
		Display:  timefmt.DateTime(timefmt.InZone(c.When, c.OffsetMinutes)),
		Relative: timefmt.Relative(c.When, now),
		Parents:  parents,
	}
}

func newJSONCrumbs(b tree.Breadcrumb) []JSONCrumb {
	crumbs := make([]JSONCrumb, 0, len(b))
	for _, c := range b {
		crumbs = append(crumbs, JSONCrumb{Label: c.Label, Link: c.Link})
	}
	return crumbs
}

// NewJSONListing converts a directory listing.
func NewJSONListing(ref string, res *tree.Result, now time.Time) JSONListing {
	entries := make([]JSONEntry, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, JSONEntry{Name: e.Name, Kind: e.Kind.String(), ID: e.ID})
	}

	listing := JSONListing{
		Ref:        ref,
		Path:       res.Path,
		Commit:     NewJSONCommit(res.Commit, now),
		Breadcrumb: newJSONCrumbs(res.Breadcrumb),
		Entries:    entries,
	}
	if res.Readme != nil {
		listing.Readme = &JSONReadme{Title: res.Readme.Title, HTML: res.Readme.HTML}
	}
	return listing
}

// NewJSONBlob converts a rendered file.
func NewJSONBlob(ref string, res *tree.Result, r *blob.Rendered, now time.Time) JSONBlob {
	b := JSONBlob{
		Ref:        ref,
		Path:       res.Path,
		Commit:     NewJSONCommit(res.Commit, now),
		Breadcrumb: newJSONCrumbs(res.Breadcrumb),
		Kind:       r.Kind.String(),
		Filename:   r.Filename,
		Size:       r.Size,
		HumanSize:  r.HumanSize,
		Language:   r.Language,
		RawLink:    r.RawLink,
		HTML:       r.HTML,
	}
	for _, l := range r.Lines {
		b.Lines = append(b.Lines, JSONLine{Number: l.Number, Anchor: l.Anchor, Text: l.Text})
	}
	return b
}

// NewJSONHistory converts a history page.
func NewJSONHistory(ref string, page *history.Page, now time.Time) JSONHistory {
	commits := make([]JSONCommit, 0, len(page.Commits))
	for _, c := range page.Commits {
		commits = append(commits, NewJSONCommit(c, now))
	}
	return JSONHistory{
		Ref:        ref,
		Commits:    commits,
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	}
}

// NewJSONDiff converts a commit diff.
func NewJSONDiff(res *diff.Result, now time.Time) JSONDiff {
	files := make([]JSONDiffFile, 0, len(res.Files))
	for _, f := range res.Files {
		lines := make([]JSONDiffLine, 0, len(f.Lines))
		for _, l := range f.Lines {
			lines = append(lines, JSONDiffLine{Old: l.OldNumber, New: l.NewNumber, Origin: l.Origin.String(), Text: l.Text})
		}
		files = append(files, JSONDiffFile{
			Path:        f.Path,
			Change:      f.Change.String(),
			Insertions:  f.Stats.Insertions,
			Deletions:   f.Stats.Deletions,
			Fingerprint: f.Fingerprint,
			Lines:       lines,
		})
	}
	return JSONDiff{
		Commit: NewJSONCommit(res.Commit, now),
		Summary: JSONDiffSummary{
			FilesChanged: res.Summary.FilesChanged,
			Insertions:   res.Summary.Insertions,
			Deletions:    res.Summary.Deletions,
		},
		Files: files,
	}
}

// NewJSONBranches converts a branch list.
func NewJSONBranches(branches []git.Branch) JSONBranches {
	out := JSONBranches{Branches: make([]JSONBranch, 0, len(branches))}
	for _, b := range branches {
		out.Branches = append(out.Branches, JSONBranch{Name: b.Name, Kind: b.Kind.String(), Target: b.Target})
	}
	return out
}
