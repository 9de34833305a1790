package output

import (
	"time"

	"github.com/masmgr/gecko-go/internal/blob"
	"github.com/masmgr/gecko-go/internal/diff"
	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/history"
	"github.com/masmgr/gecko-go/internal/tree"
)

// Compile-time interface conformance checks.
var (
	_ Writer = (*ConsoleWriter)(nil)
	_ Writer = (*JSONWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	OutputPath string
}

// ListingReport is a directory listing at a ref.
type ListingReport struct {
	RepoPath    string
	Ref         string
	GeneratedAt time.Time
	Result      *tree.Result
}

// BlobReport is a rendered file at a ref.
type BlobReport struct {
	RepoPath    string
	Ref         string
	GeneratedAt time.Time
	Result      *tree.Result
	Rendered    *blob.Rendered
}

// HistoryReport is one page of commit history.
type HistoryReport struct {
	RepoPath    string
	Ref         string
	GeneratedAt time.Time
	Page        *history.Page
}

// DiffReport is the diff of a single commit.
type DiffReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Result      *diff.Result
}

// BranchReport lists the repository's branches.
type BranchReport struct {
	RepoPath string
	Branches []git.Branch
}

// Writer writes browser reports in one output format.
type Writer interface {
	WriteListing(report *ListingReport, options OutputOptions) error
	WriteBlob(report *BlobReport, options OutputOptions) error
	WriteHistory(report *HistoryReport, options OutputOptions) error
	WriteDiff(report *DiffReport, options OutputOptions) error
	WriteBranches(report *BranchReport, options OutputOptions) error
}

// NewWriter creates a report writer for the specified format.
func NewWriter(format OutputFormat) Writer {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	default:
		return &ConsoleWriter{}
	}
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (OutputFormat, bool) {
	switch f := OutputFormat(s); f {
	case FormatConsole, FormatJSON:
		return f, true
	default:
		return "", false
	}
}
