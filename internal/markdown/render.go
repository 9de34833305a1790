// Package markdown renders GitHub-flavored markdown to HTML.
package markdown

import (
	"fmt"
	"html"

	"github.com/russross/blackfriday/v2"
	log "github.com/sirupsen/logrus"
)

// gfmExtensions approximates GitHub-flavored markdown. Newlines inside a
// paragraph do not become hard line breaks.
const gfmExtensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak |
	blackfriday.DefinitionLists |
	blackfriday.Footnotes

// RenderError reports a renderer failure. Callers never see it from ToHTML;
// it is logged and replaced by the escaped source.
type RenderError struct {
	Cause interface{}
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("markdown render failed: %v", e.Cause)
}

// Render converts markdown source to HTML.
func Render(source []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Cause: r}
		}
	}()

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	return string(blackfriday.Run(source,
		blackfriday.WithExtensions(gfmExtensions),
		blackfriday.WithRenderer(renderer),
	)), nil
}

// ToHTML renders source and falls back to the escaped raw text on failure.
func ToHTML(name string, source []byte) string {
	out, err := Render(source)
	if err != nil {
		log.WithError(err).WithField("file", name).Warn("Rendering markdown failed, showing raw text")
		return "<pre>" + html.EscapeString(string(source)) + "</pre>"
	}
	return out
}
