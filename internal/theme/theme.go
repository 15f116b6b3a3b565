// Package theme holds the data structures that describe one visual theme.
// A Theme combines:
//
//   - Name      – the theme directory name (for example, "eyecare").
//   - FS        – the template and asset tree, embedded or on disk.
//   - AssetFunc – resolves `{{ asset "css/site.css" }}` to a URL.
//
// Layout of a theme tree:
//
//	layout.html        root template, defines "layout"
//	partials/*.html    shared blocks (header, footer, hours)
//	pages/<page>.html  one file per page, each defines "content"
//	assets/…           static files served under /themes/<name>/assets/
package theme

import (
	"io/fs"
	"path"
)

// Theme is returned by the Manager.
type Theme struct {
	Name      string
	FS        fs.FS
	AssetFunc func(string) string
}

// New constructs a Theme whose AssetFunc points at the assets folder.
func New(name string, fsys fs.FS) *Theme {
	prefix := "/themes/" + name + "/assets/"
	return &Theme{
		Name: name,
		FS:   fsys,
		AssetFunc: func(p string) string {
			return prefix + path.Clean("/" + p)[1:]
		},
	}
}

// Assets returns the sub-tree served as static files.
func (t *Theme) Assets() (fs.FS, error) {
	return fs.Sub(t.FS, "assets")
}

// PagePattern returns the patterns parsed for one page.
func (t *Theme) PagePattern(page string) []string {
	return []string{"layout.html", "partials/*.html", "pages/" + page + ".html"}
}
