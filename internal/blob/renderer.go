package blob

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-enry/go-enry/v2"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"

	"github.com/masmgr/gecko-go/internal/git"
	"github.com/masmgr/gecko-go/internal/markdown"
)

// RawQuery is the query string that requests raw binary content.
const RawQuery = "raw=true"

const (
	contentTypeOctetStream = "application/octet-stream"
	defaultLanguage        = "Text"
)

// Kind identifies how a blob is presented.
type Kind int

const (
	KindText Kind = iota
	KindMarkdown
	KindBinaryStub
	KindRaw
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMarkdown:
		return "markdown"
	case KindBinaryStub:
		return "binary"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Line is one numbered line of a text blob. Anchor is stable ("L<n>").
type Line struct {
	Number int
	Anchor string
	Text   string
}

// Rendered is the display form of a blob.
type Rendered struct {
	Kind      Kind
	Filename  string
	Size      int64
	HumanSize string
	Language  string

	// KindRaw
	ContentType string
	Disposition string
	Raw         []byte

	// KindBinaryStub
	RawLink string

	// KindMarkdown
	HTML string

	// KindText
	Lines []Line
}

// Render reads the blob and renders it under filename.
func Render(b *object.Blob, filename string, raw bool) (*Rendered, error) {
	rd, err := b.Reader()
	if err != nil {
		return nil, &git.ObjectReadError{Op: "read blob " + b.Hash.String(), Err: err}
	}
	defer rd.Close()

	content, err := io.ReadAll(rd)
	if err != nil {
		return nil, &git.ObjectReadError{Op: "read blob " + b.Hash.String(), Err: err}
	}

	return RenderBytes(content, filename, raw), nil
}

// RenderBytes renders already loaded blob content.
func RenderBytes(content []byte, filename string, raw bool) *Rendered {
	r := &Rendered{
		Filename:  filename,
		Size:      int64(len(content)),
		HumanSize: HumanSize(int64(len(content))),
	}

	if IsBinary(content) {
		if raw {
			r.Kind = KindRaw
			r.ContentType = contentTypeOctetStream
			r.Disposition = fmt.Sprintf("attachment; filename=%q", filename)
			r.Raw = content
			return r
		}
		r.Kind = KindBinaryStub
		r.RawLink = "?" + RawQuery
		return r
	}

	r.Language = DetectLanguage(filename, content)

	if IsMarkdown(filename) {
		r.Kind = KindMarkdown
		r.HTML = markdown.ToHTML(filename, content)
		return r
	}

	r.Kind = KindText
	r.Lines = SplitLines(string(content))
	return r
}

// IsBinary applies go-git's NUL-byte heuristic to content.
func IsBinary(content []byte) bool {
	isBinary, err := binary.IsBinary(bytes.NewReader(content))
	return err == nil && isBinary
}

// IsMarkdown reports whether filename has a markdown extension.
func IsMarkdown(filename string) bool {
	return strings.HasSuffix(filename, ".md") || strings.HasSuffix(filename, ".markdown")
}

// DetectLanguage returns the programming language of the file, or "Text".
func DetectLanguage(filename string, content []byte) string {
	if lang := enry.GetLanguage(filename, content); lang != "" {
		return lang
	}
	return defaultLanguage
}

// HumanSize formats n bytes in decimal units rounded to whole numbers, e.g. "12 kB".
func HumanSize(n int64) string {
	value, prefix := humanize.ComputeSI(float64(n))
	return fmt.Sprintf("%.0f %sB", value, prefix)
}

// SplitLines splits text into numbered lines. A trailing newline does not
// start a new line, and a carriage return before the newline is dropped.
func SplitLines(text string) []Line {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")

	parts := strings.Split(text, "\n")
	lines := make([]Line, 0, len(parts))
	for i, part := range parts {
		n := i + 1
		lines = append(lines, Line{
			Number: n,
			Anchor: "L" + strconv.Itoa(n),
			Text:   strings.TrimSuffix(part, "\r"),
		})
	}
	return lines
}
