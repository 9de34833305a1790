package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/masmgr/gecko-go/internal/blob"
	"github.com/masmgr/gecko-go/internal/diff"
	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/timefmt"
	"github.com/masmgr/gecko-go/internal/tree"
)

// ConsoleWriter writes reports as human-readable text.
type ConsoleWriter struct{}

// WriteListing outputs a directory listing.
func (w *ConsoleWriter) WriteListing(report *ListingReport, options OutputOptions) error {
	return withOutput(options.OutputPath, func(out io.Writer) error {
		res := report.Result
		writeLocation(out, report.Ref, res.Breadcrumb)
		writeCommitLine(out, res.Commit, report.GeneratedAt)
		fmt.Fprintln(out)

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Kind\tName\tID")
		for _, e := range res.Entries {
			name := e.Name
			if e.Kind.IsContainer() {
				name = color.BlueString(e.Name + "/")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind, name, shortObjectID(e.ID))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if res.Readme != nil {
			fmt.Fprintln(out)
			color.New(color.Bold).Fprintln(out, res.Readme.Title)
			fmt.Fprintln(out, res.Readme.HTML)
		}
		return nil
	})
}

// WriteBlob outputs a rendered file. Raw content is written unchanged.
func (w *ConsoleWriter) WriteBlob(report *BlobReport, options OutputOptions) error {
	return withOutput(options.OutputPath, func(out io.Writer) error {
		r := report.Rendered
		if r.Kind == blob.KindRaw {
			_, err := out.Write(r.Raw)
			return err
		}

		writeLocation(out, report.Ref, report.Result.Breadcrumb)
		fmt.Fprintf(out, "%s  %s", r.Filename, r.HumanSize)
		if r.Language != "" {
			fmt.Fprintf(out, "  %s", r.Language)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out)

		switch r.Kind {
		case blob.KindBinaryStub:
			fmt.Fprintf(out, "Binary file not shown. Use --raw to download (%s).\n", r.RawLink)
		case blob.KindMarkdown:
			fmt.Fprintln(out, r.HTML)
		default:
			width := len(fmt.Sprint(len(r.Lines)))
			for _, l := range r.Lines {
				fmt.Fprintf(out, "%s  %s\n", color.HiBlackString("%*d", width, l.Number), l.Text)
			}
		}
		return nil
	})
}

// WriteHistory outputs a page of commits.
func (w *ConsoleWriter) WriteHistory(report *HistoryReport, options OutputOptions) error {
	return withOutput(options.OutputPath, func(out io.Writer) error {
		page := report.Page
		if len(page.Commits) == 0 {
			fmt.Fprintln(out, "No commits.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, c := range page.Commits {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				color.YellowString(c.ShortID()),
				truncateMessage(c.Summary, 60),
				c.Author.Name,
				timefmt.Relative(c.When, report.GeneratedAt),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if page.HasMore {
			fmt.Fprintf(out, "\nMore commits: --from %s\n", page.NextCursor)
		}
		return nil
	})
}

// WriteDiff outputs a commit diff in unified form.
func (w *ConsoleWriter) WriteDiff(report *DiffReport, options OutputOptions) error {
	return withOutput(options.OutputPath, func(out io.Writer) error {
		res := report.Result
		color.New(color.FgYellow).Fprintf(out, "commit %s\n", res.Commit.ID)
		fmt.Fprintf(out, "Author: %s <%s>\n", res.Commit.Author.Name, res.Commit.Author.Email)
		fmt.Fprintf(out, "Date:   %s\n\n", timefmt.DateTime(timefmt.InZone(res.Commit.When, res.Commit.OffsetMinutes)))
		fmt.Fprintf(out, "    %s\n\n", res.Commit.Summary)

		for _, f := range res.Files {
			for _, l := range f.Lines {
				writeDiffLine(out, l)
			}
		}

		fmt.Fprintf(out, "\n%d files changed, %d insertions(+), %d deletions(-)\n",
			res.Summary.FilesChanged, res.Summary.Insertions, res.Summary.Deletions)
		return nil
	})
}

// WriteBranches outputs the branch list.
func (w *ConsoleWriter) WriteBranches(report *BranchReport, options OutputOptions) error {
	return withOutput(options.OutputPath, func(out io.Writer) error {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Branch\tKind\tTarget")
		for _, b := range report.Branches {
			name := b.Name
			if b.Kind == git.BranchKindLocal {
				name = color.GreenString(b.Name)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, b.Kind, shortObjectID(b.Target))
		}
		return tw.Flush()
	})
}

func writeLocation(out io.Writer, ref string, crumbs tree.Breadcrumb) {
	loc := ref
	for _, c := range crumbs {
		loc += "/" + c.Label
	}
	color.New(color.FgGreen).Fprintln(out, loc)
}

func writeCommitLine(out io.Writer, c git.Commit, now time.Time) {
	fmt.Fprintf(out, "%s %s (%s, %s)\n",
		color.YellowString(c.ShortID()), c.Summary, c.Author.Name, timefmt.Relative(c.When, now))
}

func writeDiffLine(out io.Writer, l diff.Line) {
	switch l.Origin {
	case diff.OriginFileHeader:
		color.New(color.Bold).Fprintln(out, l.Text)
	case diff.OriginHunkHeader:
		color.New(color.FgCyan).Fprintln(out, l.Text)
	case diff.OriginAddition:
		color.New(color.FgGreen).Fprintln(out, l.Origin.Prefix()+l.Text)
	case diff.OriginDeletion:
		color.New(color.FgRed).Fprintln(out, l.Origin.Prefix()+l.Text)
	default:
		fmt.Fprintln(out, l.Origin.Prefix()+l.Text)
	}
}

func shortObjectID(id string) string {
	if len(id) <= 7 {
		return id
	}
	return id[:7]
}
