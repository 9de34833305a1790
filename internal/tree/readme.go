package tree

import (
	"path"

	"github.com/masmgr/gecko-go/internal/markdown"
)

// Readme is the rendered README shown under a listing.
type Readme struct {
	Title string
	HTML  string
}

// IsReadme reports whether name is README.md or README.markdown.
// The match is case-sensitive and applies at every depth.
func IsReadme(name string) bool {
	ext := path.Ext(name)
	if ext != ".md" && ext != ".markdown" {
		return false
	}
	return name[:len(name)-len(ext)] == "README"
}

func newReadme(name string, content []byte) *Readme {
	return &Readme{Title: name, HTML: markdown.ToHTML(name, content)}
}
