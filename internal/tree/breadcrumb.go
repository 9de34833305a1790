package tree

import "strings"

// Crumb is one breadcrumb segment. Link is empty for the current location.
type Crumb struct {
	Label string
	Link  string
}

// Breadcrumb is the trail from the repository root to the current path.
type Breadcrumb []Crumb

// NewBreadcrumb builds one crumb per path component; every crumb except
// the last links to the cumulative path up to and including it.
func NewBreadcrumb(p string) Breadcrumb {
	p = CleanPath(p)
	if p == "" {
		return nil
	}

	segments := strings.Split(p, "/")
	crumbs := make(Breadcrumb, 0, len(segments))
	for i, seg := range segments {
		c := Crumb{Label: seg}
		if i < len(segments)-1 {
			c.Link = strings.Join(segments[:i+1], "/")
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

// Current returns the label of the final crumb.
func (b Breadcrumb) Current() string {
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].Label
}
